package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"github.com/angelmondragon/organics-storefront/api/routes"
	"github.com/angelmondragon/organics-storefront/internal/cart"
	"github.com/angelmondragon/organics-storefront/internal/checkout"
	"github.com/angelmondragon/organics-storefront/pkg/config"
	"github.com/angelmondragon/organics-storefront/pkg/logger"
	"github.com/angelmondragon/organics-storefront/pkg/metrics"
	"github.com/angelmondragon/organics-storefront/pkg/storefrontapi"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment", nil)
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	be, err := openBackend(ctx, cfg, logg)
	if err != nil {
		logg.Error(ctx, "failed to open cart storage", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	store, err := cart.NewStore(cart.StoreParams{
		Storage: be.storage,
		Key:     cfg.Storage.CartKey,
		Logger:  logg,
		Metrics: metrics.NewCartMetrics(registry),
	})
	if err != nil {
		logg.Error(ctx, "failed to create cart store", err)
		os.Exit(1)
	}
	store.Load(ctx)

	apiClient := storefrontapi.NewClient(
		storefrontapi.WithBaseURL(cfg.API.BaseURL),
		storefrontapi.WithTimeout(cfg.API.Timeout),
	)

	checkoutService, err := checkout.NewService(checkout.Params{
		Cart:           store,
		Orders:         apiClient,
		DeliveryFee:    decimal.NewFromInt(cfg.Checkout.DeliveryFee),
		PaymentMethods: cfg.Checkout.PaymentMethods,
		Logger:         logg,
	})
	if err != nil {
		logg.Error(ctx, "failed to create checkout service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx = logg.WithFields(ctx, map[string]any{
		"env":        cfg.App.Env,
		"addr":       addr,
		"storage":    cfg.Storage.NormalizedBackend(),
		"cart_lines": store.Len(),
	})
	logg.Info(ctx, "starting storefront server")

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(cfg, logg, be.storage, store, checkoutService, apiClient, registry),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	exitCode := 0
	select {
	case err := <-serveErr:
		if err != nil {
			logg.Error(ctx, "storefront server stopped unexpectedly", err)
			exitCode = 1
		}
	case <-ctx.Done():
		logg.Info(ctx, "storefront server shutting down gracefully")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	errs := server.Shutdown(shutdownCtx)
	for _, closeFn := range be.closers {
		errs = multierr.Append(errs, closeFn())
	}
	if errs != nil {
		logg.Error(ctx, "error during shutdown", errs)
		exitCode = 1
	}
	if exitCode != 0 {
		stop()
		os.Exit(exitCode)
	}
}
