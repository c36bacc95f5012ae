package api

import (
	"context"
	"io"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/asaskevich/EventBus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/manthrakodi/bridalstore/config"
	"github.com/manthrakodi/bridalstore/internal/analytics"
	"github.com/manthrakodi/bridalstore/internal/catalog"
	"github.com/manthrakodi/bridalstore/internal/domain"
	"github.com/manthrakodi/bridalstore/internal/images"
	"github.com/manthrakodi/bridalstore/internal/orders"
	"github.com/manthrakodi/bridalstore/internal/webserver"
	"github.com/manthrakodi/bridalstore/internal/whatsapp"
)

// mockProductRepo records the last call and replays canned results.
type mockProductRepo struct {
	getResult    *domain.Product
	listResult   []domain.Product
	createResult *domain.Product
	updateResult *domain.Product
	err          error

	lastID      string
	lastInput   catalog.ProductInput
	lastPatch   catalog.ProductPatch
	lastFilters catalog.Filters
	lastSkip    int
	lastLimit   int
}

func (m *mockProductRepo) Get(ctx context.Context, id string) (*domain.Product, error) {
	m.lastID = id
	return m.getResult, m.err
}

func (m *mockProductRepo) List(ctx context.Context, skip, limit int, f catalog.Filters) ([]domain.Product, error) {
	m.lastSkip, m.lastLimit, m.lastFilters = skip, limit, f
	return m.listResult, m.err
}

func (m *mockProductRepo) Create(ctx context.Context, in catalog.ProductInput) (*domain.Product, error) {
	m.lastInput = in
	return m.createResult, m.err
}

func (m *mockProductRepo) Update(ctx context.Context, id string, patch catalog.ProductPatch) (*domain.Product, error) {
	m.lastID, m.lastPatch = id, patch
	return m.updateResult, m.err
}

func (m *mockProductRepo) Delete(ctx context.Context, id string) error {
	m.lastID = id
	return m.err
}

type mockOrderRepo struct {
	getResult    *domain.Order
	listResult   []domain.Order
	createResult *domain.Order
	updateResult *domain.Order
	err          error

	lastID     string
	lastInput  orders.OrderInput
	lastStatus string
}

func (m *mockOrderRepo) Get(ctx context.Context, id string) (*domain.Order, error) {
	m.lastID = id
	return m.getResult, m.err
}

func (m *mockOrderRepo) List(ctx context.Context, skip, limit int, status string) ([]domain.Order, error) {
	m.lastStatus = status
	return m.listResult, m.err
}

func (m *mockOrderRepo) Create(ctx context.Context, in orders.OrderInput) (*domain.Order, error) {
	m.lastInput = in
	return m.createResult, m.err
}

func (m *mockOrderRepo) UpdateStatus(ctx context.Context, id, status string) (*domain.Order, error) {
	m.lastID, m.lastStatus = id, status
	return m.updateResult, m.err
}

type testServer struct {
	ws  *webserver.WebServer
	db  *gorm.DB
	bus EventBus.Bus
}

// newTestServer wires a handler with the supplied mock repositories and a
// throwaway sqlite database behind the analytics service.
func newTestServer(t *testing.T, products catalog.ProductRepository, orderRepo orders.OrderRepository) *testServer {
	t.Helper()
	cfg := config.DefaultAppConfig()
	cfg.Upload.Dir = t.TempDir()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "api.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(domain.Tables...))

	bus := EventBus.New()
	notifier, err := whatsapp.New(cfg.WhatsApp, nil)
	require.NoError(t, err)
	t.Cleanup(notifier.Release)

	ws := webserver.New(cfg)
	h := NewHandler(cfg, products, orderRepo, analytics.NewService(db), images.NewService(cfg), notifier, bus)
	h.Register(ws)
	return &testServer{ws: ws, db: db, bus: bus}
}

func (s *testServer) do(method, target, contentType string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	s.ws.Echo().ServeHTTP(rec, req)
	return rec
}
