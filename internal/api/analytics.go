package api

import (
	"github.com/labstack/echo/v4"

	"github.com/manthrakodi/bridalstore/internal/webserver"
)

func (h *Handler) registerAnalyticsRoutes(ws *webserver.WebServer) {
	ws.ApiGET("/analytics/dashboard-stats", h.dashboardStats)
	ws.ApiGET("/analytics/sales-analytics", h.salesAnalytics)
	ws.ApiGET("/analytics/category-analytics", h.categoryAnalytics)
}

func (h *Handler) dashboardStats(c echo.Context) error {
	stats, err := h.analytics.DashboardStats(c.Request().Context())
	if err != nil {
		return failFor(c, err, "Analytics")
	}
	return ok(c, stats)
}

func (h *Handler) salesAnalytics(c echo.Context) error {
	period := c.QueryParam("period")
	if period == "" {
		period = "month"
	}
	report, err := h.analytics.SalesAnalytics(c.Request().Context(), period)
	if err != nil {
		return failFor(c, err, "Analytics")
	}
	return ok(c, report)
}

func (h *Handler) categoryAnalytics(c echo.Context) error {
	report, err := h.analytics.CategoryAnalytics(c.Request().Context())
	if err != nil {
		return failFor(c, err, "Analytics")
	}
	return ok(c, report)
}
