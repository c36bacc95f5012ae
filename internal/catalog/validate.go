package catalog

import (
	"fmt"

	"github.com/manthrakodi/bridalstore/internal/domain"
)

func validateInput(in ProductInput) error {
	if in.Name == "" {
		return domain.NewValidationError("name", "must not be empty")
	}
	if len(in.Name) > 255 {
		return domain.NewValidationError("name", "must be at most 255 characters")
	}
	if in.Price <= 0 {
		return domain.NewValidationError("price", "must be greater than zero")
	}
	if in.OriginalPrice != nil && *in.OriginalPrice <= in.Price {
		return domain.NewValidationError("original_price", "must be greater than price when provided")
	}
	if !domain.ValidCategory(in.Category) {
		return domain.NewValidationError("category",
			fmt.Sprintf("must be one of %v", domain.ProductCategories))
	}
	if len(in.Images) == 0 {
		return domain.NewValidationError("images", "at least one image is required")
	}
	if in.Stock < 0 {
		return domain.NewValidationError("stock", "must not be negative")
	}
	return nil
}
