package api

import (
	"fmt"
	"net/http"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/manthrakodi/bridalstore/internal/domain"
	"github.com/manthrakodi/bridalstore/internal/orders"
	"github.com/manthrakodi/bridalstore/internal/webserver"
)

type orderItemPayload struct {
	ProductID   string            `json:"product_id" validate:"required"`
	ProductName string            `json:"product_name" validate:"required"`
	Quantity    int               `json:"quantity" validate:"required,gt=0"`
	Price       float64           `json:"price" validate:"required,gt=0"`
	Attributes  map[string]string `json:"attributes"`
}

type orderPayload struct {
	CustomerName    string             `json:"customer_name" validate:"required,min=1,max=255"`
	CustomerPhone   string             `json:"customer_phone" validate:"required,min=10,max=20"`
	CustomerEmail   string             `json:"customer_email" validate:"omitempty,email"`
	CustomerAddress string             `json:"customer_address" validate:"required,min=1"`
	CustomerCity    string             `json:"customer_city" validate:"required,min=1,max=100"`
	CustomerPincode string             `json:"customer_pincode" validate:"required,min=6,max=10"`
	Items           []orderItemPayload `json:"items" validate:"required,min=1,dive"`
	TotalAmount     float64            `json:"total_amount" validate:"required,gt=0"`
	Message         string             `json:"message"`
	// Accepted for wire compatibility with older clients, always ignored:
	// a new order starts as pending no matter what the caller sends.
	Status string `json:"status"`
}

type orderStatusPayload struct {
	Status string `json:"status" validate:"required"`
}

func (h *Handler) registerOrderRoutes(ws *webserver.WebServer) {
	ws.ApiGET("/orders", h.listOrders)
	ws.ApiGET("/orders/export", h.exportOrders)
	ws.ApiGET("/orders/:id", h.getOrder)
	ws.ApiPOST("/orders", h.createOrder)
	ws.ApiPUT("/orders/:id/status", h.updateOrderStatus)
}

func (h *Handler) listOrders(c echo.Context) error {
	skip, limit := parsePagination(c)
	list, err := h.orders.List(c.Request().Context(), skip, limit, c.QueryParam("status"))
	if err != nil {
		return failFor(c, err, "Order")
	}
	return ok(c, list)
}

func (h *Handler) getOrder(c echo.Context) error {
	o, err := h.orders.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return failFor(c, err, "Order")
	}
	return ok(c, o)
}

func (h *Handler) createOrder(c echo.Context) error {
	var payload orderPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse order", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	items := make([]domain.OrderItem, 0, len(payload.Items))
	for _, it := range payload.Items {
		items = append(items, domain.OrderItem{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Price:       it.Price,
			Attributes:  it.Attributes,
		})
	}

	o, err := h.orders.Create(c.Request().Context(), orders.OrderInput{
		CustomerName:    payload.CustomerName,
		CustomerPhone:   payload.CustomerPhone,
		CustomerEmail:   payload.CustomerEmail,
		CustomerAddress: payload.CustomerAddress,
		CustomerCity:    payload.CustomerCity,
		CustomerPincode: payload.CustomerPincode,
		Items:           items,
		TotalAmount:     payload.TotalAmount,
		Message:         payload.Message,
	})
	if err != nil {
		return failFor(c, err, "Order")
	}

	// Notification dispatch is decoupled through the bus; a subscriber
	// failure can never fail the committed order.
	if h.bus != nil {
		h.bus.Publish(domain.EventOrderCreated, o)
	}
	return ok(c, o)
}

func (h *Handler) updateOrderStatus(c echo.Context) error {
	var payload orderStatusPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse status", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	o, err := h.orders.UpdateStatus(c.Request().Context(), c.Param("id"), payload.Status)
	if err != nil {
		return failFor(c, err, "Order")
	}
	return ok(c, o)
}

// exportOrders streams recent orders as an XLSX workbook for the shop
// operator.
func (h *Handler) exportOrders(c echo.Context) error {
	list, err := h.orders.List(c.Request().Context(), 0, orders.MaxLimit, c.QueryParam("status"))
	if err != nil {
		return failFor(c, err, "Order")
	}

	const sheet = "Orders"
	xlsx := excelize.NewFile()
	xlsx.SetSheetName("Sheet1", sheet)
	headers := []string{"Order No", "Customer", "Phone", "City", "Pincode", "Items", "Total", "Status", "Created At"}
	for i, title := range headers {
		xlsx.SetCellValue(sheet, fmt.Sprintf("%c1", 'A'+i), title)
	}
	for row, o := range list {
		values := []interface{}{
			o.OrderNo,
			o.CustomerName,
			o.CustomerPhone,
			o.CustomerCity,
			o.CustomerPincode,
			len(o.Items),
			o.TotalAmount,
			o.Status,
			o.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, v := range values {
			xlsx.SetCellValue(sheet, fmt.Sprintf("%c%d", 'A'+col, row+2), v)
		}
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="orders.xlsx"`)
	c.Response().Header().Set(echo.HeaderContentType,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().WriteHeader(http.StatusOK)
	if err := xlsx.Write(c.Response()); err != nil {
		zap.L().Error("order export failed", zap.Error(err))
		return err
	}
	return nil
}
