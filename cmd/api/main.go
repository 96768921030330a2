package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/bakeria/bakeria-backend/api/routes"
	cartsvc "github.com/bakeria/bakeria-backend/internal/cart"
	"github.com/bakeria/bakeria-backend/internal/catalog"
	checkoutsvc "github.com/bakeria/bakeria-backend/internal/checkout"
	"github.com/bakeria/bakeria-backend/internal/events"
	ordersvc "github.com/bakeria/bakeria-backend/internal/orders"
	"github.com/bakeria/bakeria-backend/pkg/config"
	"github.com/bakeria/bakeria-backend/pkg/db"
	"github.com/bakeria/bakeria-backend/pkg/logger"
	"github.com/bakeria/bakeria-backend/pkg/metrics"
	"github.com/bakeria/bakeria-backend/pkg/migrate"
	pkgpubsub "github.com/bakeria/bakeria-backend/pkg/pubsub"
	pkgredis "github.com/bakeria/bakeria-backend/pkg/redis"
)

const shutdownGrace = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := pkgredis.New(ctx, cfg.Redis, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap redis", err)
		os.Exit(1)
	}

	var pubsubClient *pkgpubsub.Client
	if cfg.GCP.ProjectID != "" {
		pubsubClient, err = pkgpubsub.NewClient(ctx, cfg.GCP, cfg.PubSub, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap pubsub", err)
			os.Exit(1)
		}
	}

	location, err := time.LoadLocation(cfg.Orders.Timezone)
	if err != nil {
		logg.Error(ctx, "failed to load orders timezone", err)
		os.Exit(1)
	}

	catalogClient, err := catalog.NewClient(cfg.Catalog)
	if err != nil {
		logg.Error(ctx, "failed to create catalog client", err)
		os.Exit(1)
	}

	var publisher events.Publisher
	if pubsubClient != nil {
		publisher = events.NewPublisher(pubsubClient.OrdersPublisher(), logg)
	} else {
		publisher = events.NewPublisher(nil, logg)
	}

	cartStore := cartsvc.NewStore(dbClient.DB())
	orderStore := ordersvc.NewStore(dbClient.DB())

	cartService, err := cartsvc.NewService(cartStore, catalogClient)
	if err != nil {
		logg.Error(ctx, "failed to create cart service", err)
		os.Exit(1)
	}

	checkoutService, err := checkoutsvc.NewService(cartStore, orderStore, publisher, location)
	if err != nil {
		logg.Error(ctx, "failed to create checkout service", err)
		os.Exit(1)
	}

	ordersService, err := ordersvc.NewService(orderStore, publisher, location)
	if err != nil {
		logg.Error(ctx, "failed to create orders service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx = logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:     cfg,
			Logger:     logg,
			DB:         dbClient,
			Redis:      redisClient,
			Cart:       cartService,
			Checkout:   checkoutService,
			Orders:     ordersService,
			Metrics:    httpMetrics,
			Registry:   registry,
			Idempotent: redisClient,
		}),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logg.Info(ctx, "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error(ctx, "error during server shutdown", err)
	}

	if err := closeAll(dbClient, redisClient, pubsubClient); err != nil {
		logg.Error(ctx, "error closing resources", err)
	}
	logg.Info(ctx, "api server stopped")
}

func closeAll(dbClient *db.Client, redisClient *pkgredis.Client, pubsubClient *pkgpubsub.Client) error {
	var errs []error
	if dbClient != nil {
		errs = append(errs, dbClient.Close())
	}
	if redisClient != nil {
		errs = append(errs, redisClient.Close())
	}
	if pubsubClient != nil {
		errs = append(errs, pubsubClient.Close())
	}
	return multierr.Combine(errs...)
}
