package orders

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/manthrakodi/bridalstore/internal/domain"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func validateInput(in OrderInput) error {
	if strings.TrimSpace(in.CustomerName) == "" {
		return domain.NewValidationError("customer_name", "must not be empty")
	}
	if len(in.CustomerName) > 255 {
		return domain.NewValidationError("customer_name", "must be at most 255 characters")
	}
	if len(in.CustomerPhone) < 10 || len(in.CustomerPhone) > 20 {
		return domain.NewValidationError("customer_phone", "must be 10 to 20 characters")
	}
	if in.CustomerEmail != "" && !emailPattern.MatchString(in.CustomerEmail) {
		return domain.NewValidationError("customer_email", "must be a valid email address")
	}
	if strings.TrimSpace(in.CustomerAddress) == "" {
		return domain.NewValidationError("customer_address", "must not be empty")
	}
	if strings.TrimSpace(in.CustomerCity) == "" || len(in.CustomerCity) > 100 {
		return domain.NewValidationError("customer_city", "must be 1 to 100 characters")
	}
	if len(in.CustomerPincode) < 6 || len(in.CustomerPincode) > 10 {
		return domain.NewValidationError("customer_pincode", "must be 6 to 10 characters")
	}
	if len(in.Items) == 0 {
		return domain.NewValidationError("items", "at least one item is required")
	}
	for i, it := range in.Items {
		if it.Quantity <= 0 {
			return domain.NewValidationError(fmt.Sprintf("items[%d].quantity", i), "must be greater than zero")
		}
		if it.Price <= 0 {
			return domain.NewValidationError(fmt.Sprintf("items[%d].price", i), "must be greater than zero")
		}
	}
	if in.TotalAmount <= 0 {
		return domain.NewValidationError("total_amount", "must be greater than zero")
	}
	return nil
}
