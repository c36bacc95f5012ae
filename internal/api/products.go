package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/labstack/echo/v4"

	"github.com/manthrakodi/bridalstore/internal/catalog"
	"github.com/manthrakodi/bridalstore/internal/domain"
	"github.com/manthrakodi/bridalstore/internal/webserver"
)

type productPayload struct {
	Name          string                 `json:"name" validate:"required,min=1,max=255"`
	Description   string                 `json:"description"`
	Price         float64                `json:"price" validate:"required,gt=0"`
	OriginalPrice *float64               `json:"original_price" validate:"omitempty,gt=0"`
	Category      string                 `json:"category" validate:"required,oneof=saree ornament bridal-set"`
	SubCategory   string                 `json:"sub_category"`
	Images        []string               `json:"images" validate:"required,min=1"`
	Stock         int                    `json:"stock" validate:"gte=0"`
	Featured      bool                   `json:"featured"`
	Attributes    map[string]interface{} `json:"attributes"`
}

type productUpdatePayload struct {
	Name          *string                  `json:"name" validate:"omitempty,min=1,max=255"`
	Description   *string                  `json:"description"`
	Price         *float64                 `json:"price" validate:"omitempty,gt=0"`
	OriginalPrice domain.Optional[float64] `json:"original_price"`
	Category      *string                  `json:"category" validate:"omitempty,oneof=saree ornament bridal-set"`
	SubCategory   *string                  `json:"sub_category"`
	Images        []string                 `json:"images" validate:"omitempty,min=1"`
	Stock         *int                     `json:"stock" validate:"omitempty,gte=0"`
	Featured      *bool                    `json:"featured"`
	Attributes    map[string]interface{}   `json:"attributes"`
}

type validateImagesPayload struct {
	URLs []string `json:"urls" validate:"required,min=1"`
}

func (h *Handler) registerProductRoutes(ws *webserver.WebServer) {
	ws.ApiGET("/products", h.listProducts)
	ws.ApiGET("/products/search", h.searchProducts)
	ws.ApiGET("/products/export", h.exportProducts)
	ws.ApiPOST("/products/validate-images", h.validateProductImages)
	ws.ApiGET("/products/:id", h.getProduct)
	ws.ApiPOST("/products", h.createProduct)
	ws.ApiPUT("/products/:id", h.updateProduct)
	ws.ApiDELETE("/products/:id", h.deleteProduct)
}

func (h *Handler) listProducts(c echo.Context) error {
	skip, limit := parsePagination(c)
	filters, err := parseProductFilters(c)
	if err != nil {
		return failFor(c, err, "Product")
	}
	products, err := h.products.List(c.Request().Context(), skip, limit, filters)
	if err != nil {
		return failFor(c, err, "Product")
	}
	return ok(c, products)
}

func (h *Handler) searchProducts(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		return fail(c, http.StatusBadRequest, "MISSING_QUERY", "Search term q is required", nil)
	}
	skip, limit := parsePagination(c)
	filters, err := parseProductFilters(c)
	if err != nil {
		return failFor(c, err, "Product")
	}
	filters.Search = q
	products, err := h.products.List(c.Request().Context(), skip, limit, filters)
	if err != nil {
		return failFor(c, err, "Product")
	}
	return ok(c, products)
}

func (h *Handler) getProduct(c echo.Context) error {
	p, err := h.products.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return failFor(c, err, "Product")
	}
	return ok(c, p)
}

func (h *Handler) createProduct(c echo.Context) error {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	p, err := h.products.Create(c.Request().Context(), catalog.ProductInput{
		Name:          payload.Name,
		Description:   payload.Description,
		Price:         payload.Price,
		OriginalPrice: payload.OriginalPrice,
		Category:      payload.Category,
		SubCategory:   payload.SubCategory,
		Images:        payload.Images,
		Stock:         payload.Stock,
		Featured:      payload.Featured,
		Attributes:    payload.Attributes,
	})
	if err != nil {
		return failFor(c, err, "Product")
	}
	return ok(c, p)
}

func (h *Handler) updateProduct(c echo.Context) error {
	var payload productUpdatePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	p, err := h.products.Update(c.Request().Context(), c.Param("id"), catalog.ProductPatch{
		Name:          payload.Name,
		Description:   payload.Description,
		Price:         payload.Price,
		OriginalPrice: payload.OriginalPrice,
		Category:      payload.Category,
		SubCategory:   payload.SubCategory,
		Images:        payload.Images,
		Stock:         payload.Stock,
		Featured:      payload.Featured,
		Attributes:    payload.Attributes,
	})
	if err != nil {
		return failFor(c, err, "Product")
	}
	return ok(c, p)
}

func (h *Handler) deleteProduct(c echo.Context) error {
	id := c.Param("id")
	if err := h.products.Delete(c.Request().Context(), id); err != nil {
		return failFor(c, err, "Product")
	}
	return ok(c, map[string]string{"message": "Product deleted successfully", "id": id})
}

func (h *Handler) validateProductImages(c echo.Context) error {
	var payload validateImagesPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse url list", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	valid, invalid := h.images.ValidateURLs(payload.URLs)
	return ok(c, map[string]interface{}{
		"valid":   valid,
		"invalid": invalid,
		"message": strconv.Itoa(len(valid)) + " of " + strconv.Itoa(len(payload.URLs)) + " image URLs accepted",
	})
}

type productCSVRow struct {
	ID            string  `csv:"id"`
	Name          string  `csv:"name"`
	Category      string  `csv:"category"`
	SubCategory   string  `csv:"sub_category"`
	Price         float64 `csv:"price"`
	OriginalPrice float64 `csv:"original_price"`
	Stock         int     `csv:"stock"`
	Featured      bool    `csv:"featured"`
	CreatedAt     string  `csv:"created_at"`
}

// exportProducts streams the filtered catalog as CSV for the shop operator.
func (h *Handler) exportProducts(c echo.Context) error {
	filters, err := parseProductFilters(c)
	if err != nil {
		return failFor(c, err, "Product")
	}
	products, err := h.products.List(c.Request().Context(), 0, catalog.MaxLimit, filters)
	if err != nil {
		return failFor(c, err, "Product")
	}

	rows := make([]productCSVRow, 0, len(products))
	for _, p := range products {
		row := productCSVRow{
			ID:          p.ID,
			Name:        p.Name,
			Category:    p.Category,
			SubCategory: p.SubCategory,
			Price:       p.Price,
			Stock:       p.Stock,
			Featured:    p.Featured,
			CreatedAt:   p.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if p.OriginalPrice != nil {
			row.OriginalPrice = *p.OriginalPrice
		}
		rows = append(rows, row)
	}

	data, err := gocsv.MarshalString(&rows)
	if err != nil {
		return failFor(c, err, "Product")
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="products.csv"`)
	return c.Blob(http.StatusOK, "text/csv", []byte(data))
}

func parseProductFilters(c echo.Context) (catalog.Filters, error) {
	var filters catalog.Filters
	if category := c.QueryParam("category"); category != "" {
		if !domain.ValidCategory(category) {
			return filters, domain.NewValidationError("category", "unknown category")
		}
		filters.Category = category
	}
	if featured := c.QueryParam("featured"); featured != "" {
		v, err := strconv.ParseBool(featured)
		if err != nil {
			return filters, domain.NewValidationError("featured", "must be a boolean")
		}
		filters.Featured = &v
	}
	filters.Search = strings.TrimSpace(c.QueryParam("search"))
	return filters, nil
}
