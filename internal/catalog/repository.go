package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/manthrakodi/bridalstore/internal/domain"
)

const (
	DefaultLimit = 100
	MaxLimit     = 500
)

// Filters narrow a product listing. All supplied filters are conjunctive;
// Search matches name, description or sub_category case-insensitively.
type Filters struct {
	Category string
	Featured *bool
	Search   string
}

// ProductInput carries a fully specified product for creation.
type ProductInput struct {
	Name          string
	Description   string
	Price         float64
	OriginalPrice *float64
	Category      string
	SubCategory   string
	Images        []string
	Stock         int
	Featured      bool
	Attributes    map[string]interface{}
}

// ProductPatch carries a partial update. Nil pointer fields are left
// untouched. OriginalPrice uses Optional so an explicit null clears the
// discount while an absent key leaves it alone.
type ProductPatch struct {
	Name          *string
	Description   *string
	Price         *float64
	OriginalPrice domain.Optional[float64]
	Category      *string
	SubCategory   *string
	Images        []string
	Stock         *int
	Featured      *bool
	Attributes    map[string]interface{}
}

// ProductRepository is the catalog store contract.
type ProductRepository interface {
	Get(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, skip, limit int, f Filters) ([]domain.Product, error)
	Create(ctx context.Context, in ProductInput) (*domain.Product, error)
	Update(ctx context.Context, id string, patch ProductPatch) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

// GormProductRepository is the GORM implementation of ProductRepository.
type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) Get(ctx context.Context, id string) (*domain.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrInvalidID
	}
	var p domain.Product
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "query product")
	}
	return &p, nil
}

func (r *GormProductRepository) List(ctx context.Context, skip, limit int, f Filters) ([]domain.Product, error) {
	skip, limit = clampPagination(skip, limit)

	query := r.db.WithContext(ctx).Model(&domain.Product{})
	if f.Category != "" {
		query = query.Where("category = ?", f.Category)
	}
	if f.Featured != nil {
		query = query.Where("featured = ?", *f.Featured)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		if query.Dialector.Name() == "postgres" {
			pattern := "%" + s + "%"
			query = query.Where("name ILIKE ? OR description ILIKE ? OR sub_category ILIKE ?",
				pattern, pattern, pattern)
		} else {
			pattern := "%" + strings.ToLower(s) + "%"
			query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(sub_category) LIKE ?",
				pattern, pattern, pattern)
		}
	}

	var products []domain.Product
	// created_at alone is not unique; the id tiebreak keeps pagination stable.
	err := query.Order("created_at DESC, id").Offset(skip).Limit(limit).Find(&products).Error
	if err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	return products, nil
}

func (r *GormProductRepository) Create(ctx context.Context, in ProductInput) (*domain.Product, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	now := time.Now()
	p := domain.Product{
		ID:            uuid.NewString(),
		Name:          in.Name,
		Description:   in.Description,
		Price:         in.Price,
		OriginalPrice: in.OriginalPrice,
		Category:      in.Category,
		SubCategory:   in.SubCategory,
		Images:        in.Images,
		Stock:         in.Stock,
		Featured:      in.Featured,
		Attributes:    in.Attributes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return nil, errors.Wrap(err, "create product")
	}
	return &p, nil
}

func (r *GormProductRepository) Update(ctx context.Context, id string, patch ProductPatch) (*domain.Product, error) {
	p, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		p.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.OriginalPrice.Set {
		p.OriginalPrice = patch.OriginalPrice.Value
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.SubCategory != nil {
		p.SubCategory = *patch.SubCategory
	}
	if patch.Images != nil {
		p.Images = patch.Images
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
	if patch.Featured != nil {
		p.Featured = *patch.Featured
	}
	if patch.Attributes != nil {
		p.Attributes = patch.Attributes
	}

	// Re-validate the merged state before touching storage.
	if err := validateInput(ProductInput{
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		Category:      p.Category,
		SubCategory:   p.SubCategory,
		Images:        p.Images,
		Stock:         p.Stock,
		Featured:      p.Featured,
		Attributes:    p.Attributes,
	}); err != nil {
		return nil, err
	}

	p.UpdatedAt = time.Now()
	if err := r.db.WithContext(ctx).Save(p).Error; err != nil {
		return nil, errors.Wrap(err, "update product")
	}
	return p, nil
}

func (r *GormProductRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrInvalidID
	}
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Product{})
	if res.Error != nil {
		return errors.Wrap(res.Error, "delete product")
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func clampPagination(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return skip, limit
}
