package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/manthrakodi/bridalstore/config"
	"github.com/manthrakodi/bridalstore/internal/analytics"
	"github.com/manthrakodi/bridalstore/internal/api"
	"github.com/manthrakodi/bridalstore/internal/app"
	"github.com/manthrakodi/bridalstore/internal/catalog"
	"github.com/manthrakodi/bridalstore/internal/images"
	"github.com/manthrakodi/bridalstore/internal/orders"
	"github.com/manthrakodi/bridalstore/internal/webserver"
	"github.com/manthrakodi/bridalstore/internal/whatsapp"
)

func main() {
	cfile := flag.String("c", os.Getenv("BRIDALSTORE_CONFIG"), "config file path")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.LoadConfig(*cfile)

	application := app.NewApplication(cfg)
	application.Init()
	defer application.Release()

	productRepo := catalog.NewGormProductRepository(application.DB())
	orderRepo, err := orders.NewGormOrderRepository(application.DB())
	if err != nil {
		zap.S().Fatalf("order repository init failed: %v", err)
	}
	analyticsSvc := analytics.NewService(application.DB())
	imagesSvc := images.NewService(cfg)
	notifier, err := whatsapp.New(cfg.WhatsApp, application.Bus())
	if err != nil {
		zap.S().Fatalf("whatsapp dispatcher init failed: %v", err)
	}
	defer notifier.Release()

	application.InitJob(imagesSvc)

	ws := webserver.New(cfg)
	handler := api.NewHandler(cfg, productRepo, orderRepo, analyticsSvc, imagesSvc, notifier, application.Bus())
	handler.Register(ws)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return ws.Start(ctx)
	})

	if err := g.Wait(); err != nil {
		zap.S().Errorf("server stopped: %v", err)
	}
}
