package analytics

import (
	"context"
	"sort"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/manthrakodi/bridalstore/internal/domain"
)

// Service computes read-only rollups over the product and order stores. Every
// call recomputes from storage; there is no caching layer.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

const lowStockThreshold = 10

type DashboardStats struct {
	TotalProducts    int64   `json:"total_products"`
	TotalOrders      int64   `json:"total_orders"`
	TotalRevenue     float64 `json:"total_revenue"`
	TodayOrders      int64   `json:"today_orders"`
	LowStockProducts int64   `json:"low_stock_products"`
}

func (s *Service) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}
	db := s.db.WithContext(ctx)

	if err := db.Model(&domain.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, errors.Wrap(err, "count products")
	}
	if err := db.Model(&domain.Order{}).Count(&stats.TotalOrders).Error; err != nil {
		return nil, errors.Wrap(err, "count orders")
	}
	if err := db.Model(&domain.Order{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&stats.TotalRevenue).Error; err != nil {
		return nil, errors.Wrap(err, "sum revenue")
	}

	// The calendar-day window is computed here rather than with dialect
	// specific date() SQL so postgres and sqlite agree.
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if err := db.Model(&domain.Order{}).
		Where("created_at >= ? AND created_at < ?", dayStart, dayStart.Add(24*time.Hour)).
		Count(&stats.TodayOrders).Error; err != nil {
		return nil, errors.Wrap(err, "count today orders")
	}

	if err := db.Model(&domain.Product{}).
		Where("stock < ?", lowStockThreshold).
		Count(&stats.LowStockProducts).Error; err != nil {
		return nil, errors.Wrap(err, "count low stock")
	}
	return stats, nil
}

type SalesPoint struct {
	Period  string  `json:"period"`
	Orders  int64   `json:"orders"`
	Revenue float64 `json:"revenue"`
}

type TopProduct struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Sales     int64  `json:"sales"`
}

type SalesReport struct {
	SalesData   []SalesPoint `json:"sales_data"`
	TopProducts []TopProduct `json:"top_products"`
}

// SalesAnalytics buckets orders over a trailing window selected by period:
// day -> last 24h hourly, week -> last 7d daily, month -> last 30d daily,
// anything else -> last 365d monthly.
func (s *Service) SalesAnalytics(ctx context.Context, period string) (*SalesReport, error) {
	end := time.Now()
	var start time.Time
	var bucket func(t time.Time) string

	switch period {
	case "day":
		start = end.Add(-24 * time.Hour)
		bucket = func(t time.Time) string { return t.Format("2006-01-02 15:00") }
	case "week":
		start = end.AddDate(0, 0, -7)
		bucket = func(t time.Time) string { return t.Format("2006-01-02") }
	case "month":
		start = end.AddDate(0, 0, -30)
		bucket = func(t time.Time) string { return t.Format("2006-01-02") }
	default:
		start = end.AddDate(-1, 0, 0)
		bucket = func(t time.Time) string { return t.Format("2006-01") }
	}

	var windowed []domain.Order
	if err := s.db.WithContext(ctx).
		Select("created_at", "total_amount").
		Where("created_at BETWEEN ? AND ?", start, end).
		Order("created_at").
		Find(&windowed).Error; err != nil {
		return nil, errors.Wrap(err, "query orders in window")
	}

	byBucket := map[string]*SalesPoint{}
	var keys []string
	for _, o := range windowed {
		key := bucket(o.CreatedAt)
		point, ok := byBucket[key]
		if !ok {
			point = &SalesPoint{Period: key}
			byBucket[key] = point
			keys = append(keys, key)
		}
		point.Orders++
		point.Revenue += o.TotalAmount
	}
	salesData := make([]SalesPoint, 0, len(keys))
	for _, key := range keys {
		salesData = append(salesData, *byBucket[key])
	}

	topProducts, err := s.topProducts(ctx, 10)
	if err != nil {
		return nil, err
	}
	return &SalesReport{SalesData: salesData, TopProducts: topProducts}, nil
}

// topProducts ranks products by the number of orders referencing them. The
// join against the JSON item list runs in application code; the denormalized
// name snapshot stands in when the product has since been deleted.
func (s *Service) topProducts(ctx context.Context, limit int) ([]TopProduct, error) {
	var all []domain.Order
	if err := s.db.WithContext(ctx).Select("items").Find(&all).Error; err != nil {
		return nil, errors.Wrap(err, "query order items")
	}

	sales := map[string]int64{}
	names := map[string]string{}
	for _, o := range all {
		seen := map[string]bool{}
		for _, it := range o.Items {
			if seen[it.ProductID] {
				continue
			}
			seen[it.ProductID] = true
			sales[it.ProductID]++
			names[it.ProductID] = it.ProductName
		}
	}

	top := make([]TopProduct, 0, len(sales))
	for id, count := range sales {
		top = append(top, TopProduct{ProductID: id, Name: names[id], Sales: count})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Sales != top[j].Sales {
			return top[i].Sales > top[j].Sales
		}
		return top[i].Name < top[j].Name
	})
	if len(top) > limit {
		top = top[:limit]
	}
	return top, nil
}

type CategoryProducts struct {
	Category string  `json:"category"`
	Count    int64   `json:"count"`
	AvgPrice float64 `json:"avg_price"`
}

type CategorySales struct {
	Category string  `json:"category"`
	Sales    int64   `json:"sales"`
	Revenue  float64 `json:"revenue"`
}

type CategoryReport struct {
	ProductsByCategory []CategoryProducts `json:"products_by_category"`
	SalesByCategory    []CategorySales    `json:"sales_by_category"`
}

func (s *Service) CategoryAnalytics(ctx context.Context) (*CategoryReport, error) {
	var products []CategoryProducts
	if err := s.db.WithContext(ctx).Model(&domain.Product{}).
		Select("category, COUNT(*) AS count, COALESCE(AVG(price), 0) AS avg_price").
		Group("category").
		Order("category").
		Scan(&products).Error; err != nil {
		return nil, errors.Wrap(err, "products by category")
	}

	// An order belongs to a category when any of its items references a
	// product in that category; each order is counted once per category.
	categoryOf := map[string]string{}
	var rows []domain.Product
	if err := s.db.WithContext(ctx).Select("id", "category").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "load product categories")
	}
	for _, p := range rows {
		categoryOf[p.ID] = p.Category
	}

	var all []domain.Order
	if err := s.db.WithContext(ctx).Select("items", "total_amount").Find(&all).Error; err != nil {
		return nil, errors.Wrap(err, "load orders")
	}

	byCategory := map[string]*CategorySales{}
	for _, o := range all {
		seen := map[string]bool{}
		for _, it := range o.Items {
			category, ok := categoryOf[it.ProductID]
			if !ok || seen[category] {
				continue
			}
			seen[category] = true
			cs, ok := byCategory[category]
			if !ok {
				cs = &CategorySales{Category: category}
				byCategory[category] = cs
			}
			cs.Sales++
			cs.Revenue += o.TotalAmount
		}
	}

	sales := make([]CategorySales, 0, len(byCategory))
	for _, cs := range byCategory {
		sales = append(sales, *cs)
	}
	sort.Slice(sales, func(i, j int) bool { return sales[i].Category < sales[j].Category })

	if products == nil {
		products = []CategoryProducts{}
	}
	return &CategoryReport{ProductsByCategory: products, SalesByCategory: sales}, nil
}
