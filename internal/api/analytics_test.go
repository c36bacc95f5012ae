package api

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manthrakodi/bridalstore/internal/domain"
)

func TestDashboardStatsEndpoint(t *testing.T) {
	srv := newTestServer(t, &mockProductRepo{}, &mockOrderRepo{})

	require.NoError(t, srv.db.Create(&domain.Product{
		ID:       uuid.NewString(),
		Name:     "Silk Saree",
		Price:    12999,
		Category: domain.CategorySaree,
		Images:   domain.StringList{"https://i.ibb.co/x/p.jpg"},
		Stock:    3,
	}).Error)
	require.NoError(t, srv.db.Create(&domain.Order{
		ID:              uuid.NewString(),
		OrderNo:         "1001",
		CustomerName:    "Priya Raman",
		CustomerPhone:   "9876543210",
		CustomerAddress: "12 Temple Street",
		CustomerCity:    "Chennai",
		CustomerPincode: "600001",
		Items:           domain.OrderItems{{ProductID: "p1", ProductName: "Silk Saree", Quantity: 1, Price: 12999}},
		TotalAmount:     12999,
		Status:          domain.OrderStatusPending,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}).Error)

	rec := srv.do(http.MethodGet, "/api/analytics/dashboard-stats", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		TotalProducts    int64   `json:"total_products"`
		TotalOrders      int64   `json:"total_orders"`
		TotalRevenue     float64 `json:"total_revenue"`
		TodayOrders      int64   `json:"today_orders"`
		LowStockProducts int64   `json:"low_stock_products"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, int64(1), resp.TotalProducts)
	assert.Equal(t, int64(1), resp.TotalOrders)
	assert.InDelta(t, 12999, resp.TotalRevenue, 0.001)
	assert.Equal(t, int64(1), resp.TodayOrders)
	assert.Equal(t, int64(1), resp.LowStockProducts)
}

func TestSalesAnalyticsEndpointDefaultsToMonth(t *testing.T) {
	srv := newTestServer(t, &mockProductRepo{}, &mockOrderRepo{})

	rec := srv.do(http.MethodGet, "/api/analytics/sales-analytics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		SalesData   []json.RawMessage `json:"sales_data"`
		TopProducts []json.RawMessage `json:"top_products"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Empty(t, resp.SalesData)
	assert.Empty(t, resp.TopProducts)
}

func TestCategoryAnalyticsEndpoint(t *testing.T) {
	srv := newTestServer(t, &mockProductRepo{}, &mockOrderRepo{})

	rec := srv.do(http.MethodGet, "/api/analytics/category-analytics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		ProductsByCategory []json.RawMessage `json:"products_by_category"`
		SalesByCategory    []json.RawMessage `json:"sales_by_category"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotNil(t, resp.ProductsByCategory)
}
