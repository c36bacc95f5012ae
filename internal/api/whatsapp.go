package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/manthrakodi/bridalstore/internal/webserver"
)

type inboundMessagePayload struct {
	Body string `json:"Body" form:"Body"`
	From string `json:"From" form:"From"`
}

type sendOrderPayload struct {
	OrderID       string `json:"order_id" validate:"required"`
	PaymentMethod string `json:"payment_method"`
}

func (h *Handler) registerWhatsAppRoutes(ws *webserver.WebServer) {
	ws.ApiPOST("/whatsapp/webhook", h.whatsappWebhook)
	ws.ApiPOST("/whatsapp/send-order", h.whatsappSendOrder)
}

// whatsappWebhook answers inbound customer messages with a canned reply
// selected by keyword.
func (h *Handler) whatsappWebhook(c echo.Context) error {
	var payload inboundMessagePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse message", err.Error())
	}
	reply := h.notifier.HandleInbound(payload.From, payload.Body)
	return ok(c, map[string]string{"status": "success", "reply": reply})
}

// whatsappSendOrder sends the confirmation template for an existing order.
func (h *Handler) whatsappSendOrder(c echo.Context) error {
	var payload sendOrderPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse request", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}
	if !h.notifier.Enabled() {
		return fail(c, http.StatusServiceUnavailable, "WA_NOT_CONFIGURED",
			"WhatsApp dispatcher is not configured", nil)
	}

	o, err := h.orders.Get(c.Request().Context(), payload.OrderID)
	if err != nil {
		return failFor(c, err, "Order")
	}

	method := payload.PaymentMethod
	if method == "" {
		method = "Online"
	}
	if err := h.notifier.SendOrderConfirmation(c.Request().Context(),
		o.OrderNo, o.CustomerPhone, o.TotalAmount, method); err != nil {
		return fail(c, http.StatusInternalServerError, "SEND_FAILED",
			"Failed to send WhatsApp notification", nil)
	}
	return ok(c, map[string]string{"status": "success", "message": "WhatsApp notification sent"})
}
