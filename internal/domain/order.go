package domain

import "time"

// Order status values. There is deliberately no transition graph: any status
// may move to any other status, including backwards (delivered -> pending is
// legal). Fulfillment stays free to correct mistakes manually.
const (
	OrderStatusPending    = "pending"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

func ValidOrderStatus(status string) bool {
	for _, s := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// EventOrderCreated is published on the application event bus after an order
// commits. Subscribers must never fail the order write.
const EventOrderCreated = "order.created"

// OrderItem is an embedded line item. ProductName and Price are snapshots
// taken at order time so later catalog edits do not alter historical orders.
type OrderItem struct {
	ProductID   string            `json:"product_id"`
	ProductName string            `json:"product_name"`
	Quantity    int               `json:"quantity"`
	Price       float64           `json:"price"`
	Attributes  map[string]string `json:"attributes,omitempty"`
}

// Order owns its item list exclusively; items are not independently
// addressable and cannot be edited after creation.
type Order struct {
	ID              string     `gorm:"primaryKey;size:36" json:"id"`
	OrderNo         string     `gorm:"size:32;uniqueIndex" json:"order_no"`
	CustomerName    string     `gorm:"size:255" json:"customer_name"`
	CustomerPhone   string     `gorm:"size:20" json:"customer_phone"`
	CustomerEmail   string     `gorm:"size:255" json:"customer_email,omitempty"`
	CustomerAddress string     `gorm:"type:text" json:"customer_address"`
	CustomerCity    string     `gorm:"size:100" json:"customer_city"`
	CustomerPincode string     `gorm:"size:10" json:"customer_pincode"`
	Items           OrderItems `gorm:"type:text" json:"items"`
	TotalAmount     float64    `json:"total_amount"`
	Status          string     `gorm:"size:20;index" json:"status"`
	Message         string     `gorm:"type:text" json:"message,omitempty"`
	CreatedAt       time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// TableName Specify table name
func (Order) TableName() string {
	return "orders"
}
