package domain

import "time"

// Product categories form a closed set; anything else is rejected at
// validation time.
const (
	CategorySaree     = "saree"
	CategoryOrnament  = "ornament"
	CategoryBridalSet = "bridal-set"
)

var ProductCategories = []string{CategorySaree, CategoryOrnament, CategoryBridalSet}

func ValidCategory(category string) bool {
	for _, c := range ProductCategories {
		if c == category {
			return true
		}
	}
	return false
}

// Product is a catalog entry. OriginalPrice, when set, must strictly exceed
// Price; the pair is rendered as a discount by the storefront.
type Product struct {
	ID            string     `gorm:"primaryKey;size:36" json:"id"`
	Name          string     `gorm:"size:255;index" json:"name"`
	Description   string     `gorm:"type:text" json:"description"`
	Price         float64    `json:"price"`
	OriginalPrice *float64   `json:"original_price,omitempty"`
	Category      string     `gorm:"size:50;index" json:"category"`
	SubCategory   string     `gorm:"size:100" json:"sub_category"`
	Images        StringList `gorm:"type:text" json:"images"`
	Stock         int        `json:"stock"`
	Featured      bool       `json:"featured"`
	Attributes    AttrMap    `gorm:"type:text" json:"attributes,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// TableName Specify table name
func (Product) TableName() string {
	return "products"
}
