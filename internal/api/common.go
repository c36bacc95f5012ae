package api

import (
	"net/http"
	"strconv"

	"github.com/asaskevich/EventBus"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/manthrakodi/bridalstore/config"
	"github.com/manthrakodi/bridalstore/internal/analytics"
	"github.com/manthrakodi/bridalstore/internal/catalog"
	"github.com/manthrakodi/bridalstore/internal/domain"
	"github.com/manthrakodi/bridalstore/internal/images"
	"github.com/manthrakodi/bridalstore/internal/orders"
	"github.com/manthrakodi/bridalstore/internal/webserver"
	"github.com/manthrakodi/bridalstore/internal/whatsapp"
)

// Handler carries the wired components for all HTTP endpoints. Everything is
// passed in explicitly; there is no package-level state.
type Handler struct {
	cfg       *config.AppConfig
	products  catalog.ProductRepository
	orders    orders.OrderRepository
	analytics *analytics.Service
	images    *images.Service
	notifier  *whatsapp.Service
	bus       EventBus.Bus
}

func NewHandler(
	cfg *config.AppConfig,
	products catalog.ProductRepository,
	orderRepo orders.OrderRepository,
	analyticsSvc *analytics.Service,
	imagesSvc *images.Service,
	notifier *whatsapp.Service,
	bus EventBus.Bus,
) *Handler {
	return &Handler{
		cfg:       cfg,
		products:  products,
		orders:    orderRepo,
		analytics: analyticsSvc,
		images:    imagesSvc,
		notifier:  notifier,
		bus:       bus,
	}
}

// Register attaches every endpoint to the web server.
func (h *Handler) Register(ws *webserver.WebServer) {
	h.registerProductRoutes(ws)
	h.registerOrderRoutes(ws)
	h.registerAnalyticsRoutes(ws)
	h.registerUploadRoutes(ws)
	h.registerWhatsAppRoutes(ws)
}

func ok(c echo.Context, v interface{}) error {
	return c.JSON(http.StatusOK, v)
}

func fail(c echo.Context, status int, code, message string, detail interface{}) error {
	return c.JSON(status, map[string]interface{}{
		"code":    code,
		"message": message,
		"detail":  detail,
	})
}

// failFor maps the domain error taxonomy onto HTTP responses. Upstream
// failures are logged and surfaced as a generic 500 without internal detail.
func failFor(c echo.Context, err error, subject string) error {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", ve.Reason,
			map[string]string{"field": ve.Field})
	case errors.Is(err, domain.ErrInvalidID):
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid "+subject+" ID", nil)
	case errors.Is(err, domain.ErrNotFound):
		return fail(c, http.StatusNotFound, "NOT_FOUND", subject+" not found", nil)
	default:
		zap.L().Error("request failed", zap.String("subject", subject), zap.Error(err))
		return fail(c, http.StatusInternalServerError, "INTERNAL_ERROR",
			"Failed to process "+subject, nil)
	}
}

func handleValidationError(c echo.Context, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		detail := make([]map[string]string, 0, len(verrs))
		for _, fe := range verrs {
			detail = append(detail, map[string]string{
				"field":  fe.Field(),
				"reason": fe.Tag(),
			})
		}
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Request validation failed", detail)
	}
	return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Request validation failed", err.Error())
}

// parsePagination reads skip/limit query parameters; the repositories clamp
// the final values.
func parsePagination(c echo.Context) (skip, limit int) {
	if v, err := strconv.Atoi(c.QueryParam("skip")); err == nil && v > 0 {
		skip = v
	}
	limit = catalog.DefaultLimit
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil && v > 0 {
		limit = v
	}
	return skip, limit
}
