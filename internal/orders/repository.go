package orders

import (
	"context"
	"math"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/manthrakodi/bridalstore/internal/domain"
)

const (
	DefaultLimit = 100
	MaxLimit     = 500
)

// OrderInput carries a new order. Status is not accepted from callers; every
// order starts as pending.
type OrderInput struct {
	CustomerName    string
	CustomerPhone   string
	CustomerEmail   string
	CustomerAddress string
	CustomerCity    string
	CustomerPincode string
	Items           []domain.OrderItem
	TotalAmount     float64
	Message         string
}

// OrderRepository is the order store contract. Orders are created once with
// their full item set; only the status field is mutable afterwards.
type OrderRepository interface {
	Get(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context, skip, limit int, status string) ([]domain.Order, error)
	Create(ctx context.Context, in OrderInput) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id, status string) (*domain.Order, error)
}

// GormOrderRepository is the GORM implementation of OrderRepository.
type GormOrderRepository struct {
	db   *gorm.DB
	node *snowflake.Node
}

func NewGormOrderRepository(db *gorm.DB) (*GormOrderRepository, error) {
	node, err := snowflake.NewNode(1)
	if err != nil {
		return nil, errors.Wrap(err, "init order number generator")
	}
	return &GormOrderRepository{db: db, node: node}, nil
}

func (r *GormOrderRepository) Get(ctx context.Context, id string) (*domain.Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrInvalidID
	}
	var o domain.Order
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "query order")
	}
	return &o, nil
}

func (r *GormOrderRepository) List(ctx context.Context, skip, limit int, status string) ([]domain.Order, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	query := r.db.WithContext(ctx).Model(&domain.Order{})
	if status != "" {
		if !domain.ValidOrderStatus(status) {
			return nil, domain.NewValidationError("status", "unknown order status")
		}
		query = query.Where("status = ?", status)
	}

	var orders []domain.Order
	err := query.Order("created_at DESC, id").Offset(skip).Limit(limit).Find(&orders).Error
	if err != nil {
		return nil, errors.Wrap(err, "list orders")
	}
	return orders, nil
}

func (r *GormOrderRepository) Create(ctx context.Context, in OrderInput) (*domain.Order, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	// The total is caller-supplied by contract; a mismatch against the item
	// sum is logged for the shop operator but never rejected.
	if sum := itemSum(in.Items); math.Abs(sum-in.TotalAmount) > 0.01 {
		zap.L().Warn("order total does not match item sum",
			zap.Float64("total_amount", in.TotalAmount),
			zap.Float64("item_sum", sum))
	}

	now := time.Now()
	o := domain.Order{
		ID:              uuid.NewString(),
		OrderNo:         r.node.Generate().String(),
		CustomerName:    in.CustomerName,
		CustomerPhone:   in.CustomerPhone,
		CustomerEmail:   in.CustomerEmail,
		CustomerAddress: in.CustomerAddress,
		CustomerCity:    in.CustomerCity,
		CustomerPincode: in.CustomerPincode,
		Items:           in.Items,
		TotalAmount:     in.TotalAmount,
		Status:          domain.OrderStatusPending,
		Message:         in.Message,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := r.db.WithContext(ctx).Create(&o).Error; err != nil {
		return nil, errors.Wrap(err, "create order")
	}
	return &o, nil
}

func (r *GormOrderRepository) UpdateStatus(ctx context.Context, id, status string) (*domain.Order, error) {
	if !domain.ValidOrderStatus(status) {
		return nil, domain.NewValidationError("status", "unknown order status")
	}
	o, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	o.Status = status
	o.UpdatedAt = time.Now()
	if err := r.db.WithContext(ctx).Model(&domain.Order{}).
		Where("id = ?", o.ID).
		Updates(map[string]interface{}{
			"status":     o.Status,
			"updated_at": o.UpdatedAt,
		}).Error; err != nil {
		return nil, errors.Wrap(err, "update order status")
	}
	return o, nil
}

func itemSum(items []domain.OrderItem) float64 {
	var sum float64
	for _, it := range items {
		sum += float64(it.Quantity) * it.Price
	}
	return sum
}
