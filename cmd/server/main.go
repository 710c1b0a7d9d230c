// Package main is the entry point for the service. It wires all dependencies
// using samber/do v2, starts the HTTP server, and handles graceful shutdown
// on SIGINT/SIGTERM.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/do/v2"

	adapthttp "github.com/baskit-app/baskit/internal/adapters/http"
	"github.com/baskit-app/baskit/internal/adapters/http/handlers"
	"github.com/baskit-app/baskit/internal/adapters/http/middleware"

	"github.com/baskit-app/baskit/internal/adapters/clients/intent"
	"github.com/baskit-app/baskit/internal/adapters/store/sqlite"
	"github.com/baskit-app/baskit/internal/app"
	"github.com/baskit-app/baskit/internal/platform/config"
	"github.com/baskit-app/baskit/internal/platform/health"
	"github.com/baskit-app/baskit/internal/platform/httpclient"
	"github.com/baskit-app/baskit/internal/platform/logging"
	"github.com/baskit-app/baskit/internal/platform/telemetry"
	"github.com/baskit-app/baskit/internal/ports"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const (
	serverShutdownTimeout = 15 * time.Second
	otelShutdownTimeout   = 5 * time.Second
	storeOpenTimeout      = 30 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	profile := os.Getenv("APP_PROFILE")
	if profile == "" {
		return errors.New("APP_PROFILE environment variable is required (e.g. local, dev, qa, prod)")
	}

	// Bootstrap: config, logger, telemetry.
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	ctx := context.Background()
	otel, err := initTelemetry(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	// Storage is opened outside the container so its migrations run, and
	// fail, before anything else starts.
	storeCtx, storeCancel := context.WithTimeout(ctx, storeOpenTimeout)
	store, err := sqlite.Open(storeCtx, sqlite.Config{
		Path:            cfg.Store.Path,
		MaxOpenConns:    cfg.Store.MaxOpenConns,
		MaxIdleConns:    cfg.Store.MaxIdleConns,
		ConnMaxLifetime: cfg.Store.ConnMaxLifetime,
		BusyTimeout:     cfg.Store.BusyTimeout,
	})
	storeCancel()
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("store close error", slog.Any("error", err))
		}
	}()

	// DI container.
	injector := do.New()

	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)
	do.ProvideValue(injector, otel.metrics)
	do.ProvideValue(injector, store)

	registerDependencies(injector, cfg, logger)

	// Resolve the server (eagerly wires the full graph).
	server, err := do.Invoke[*adapthttp.Server](injector)
	if err != nil {
		return fmt.Errorf("resolving server: %w", err)
	}

	// Register health checkers after the graph is wired.
	registry := do.MustInvoke[ports.HealthRegistry](injector)
	registry.Register(store)
	if !cfg.Intent.Mock {
		registry.Register(do.MustInvoke[*httpclient.Client](injector))
	}

	// Start server in background.
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	// Wait for shutdown signal or server error.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	}

	// Graceful shutdown: drain HTTP requests.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	}

	// Wait for Start() goroutine to return.
	<-serverErr

	// Flush telemetry.
	otelCtx, otelCancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
	defer otelCancel()

	if err := otel.Shutdown(otelCtx); err != nil {
		logger.Error("telemetry shutdown error", slog.Any("error", err))
	}

	logger.Info("shutdown complete")
	return nil
}

// otelProviders bundles OpenTelemetry provider lifecycle. All fields are nil
// when telemetry is disabled.
type otelProviders struct {
	tracer  *sdktrace.TracerProvider
	meter   *sdkmetric.MeterProvider
	metrics *telemetry.Metrics
}

// Shutdown flushes both providers. Nil-safe.
func (o *otelProviders) Shutdown(ctx context.Context) error {
	var errs []error
	if o.tracer != nil {
		if err := o.tracer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
	}
	if o.meter != nil {
		if err := o.meter.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter shutdown: %w", err))
		}
	}
	return errors.Join(errs...)
}

func initTelemetry(ctx context.Context, cfg *config.Config) (*otelProviders, error) {
	if !cfg.Telemetry.Enabled {
		return &otelProviders{}, nil
	}

	tp, err := telemetry.InitTracer(ctx,
		cfg.Telemetry.ServiceName,
		cfg.Telemetry.Exporter,
		cfg.Telemetry.Endpoint,
	)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	mp, err := telemetry.InitMeter(ctx,
		cfg.Telemetry.ServiceName,
		cfg.Telemetry.Exporter,
		cfg.Telemetry.Endpoint,
	)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, fmt.Errorf("init meter: %w", err)
	}

	metrics, err := telemetry.NewMetrics(mp, cfg.Telemetry.ServiceName)
	if err != nil {
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
		return nil, fmt.Errorf("creating metrics: %w", err)
	}

	return &otelProviders{
		tracer:  tp,
		meter:   mp,
		metrics: metrics,
	}, nil
}

// policyFromConfig maps engine settings onto the application policy.
func policyFromConfig(cfg config.EngineConfig) app.Policy {
	return app.Policy{
		ConfidenceThreshold: cfg.ConfidenceThreshold,
		ToolTimeout:         cfg.ToolTimeout,
		AllowDuplicateItems: cfg.AllowDuplicateItems,
		AutoMergeSimilar:    cfg.AutoMergeSimilar,
		RemoveMarksBought:   cfg.RemoveMarksBought,
		DefaultUnit:         cfg.DefaultUnit,
		MinHebrewRatio:      cfg.MinHebrewRatio,
		SummaryWorkers:      cfg.SummaryWorkers,
	}
}

func registerDependencies(injector *do.RootScope, cfg *config.Config, logger *slog.Logger) {
	policy := policyFromConfig(cfg.Engine)

	do.Provide(injector, func(i do.Injector) (*httpclient.Client, error) {
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return httpclient.New(&cfg.Intent.Client, "intent-api", metrics, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.IntentSource, error) {
		if cfg.Intent.Mock {
			return intent.NewMock(logger), nil
		}
		client := do.MustInvoke[*httpclient.Client](i)
		return intent.New(client, &cfg.Intent, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (*app.ItemService, error) {
		store := do.MustInvoke[*sqlite.Store](i)
		return app.NewItemService(store, policy, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (*app.ListService, error) {
		store := do.MustInvoke[*sqlite.Store](i)
		return app.NewListService(store, policy, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.Dispatcher, error) {
		items := do.MustInvoke[*app.ItemService](i)
		lists := do.MustInvoke[*app.ListService](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return app.NewDispatcher(items, lists, policy, metrics, logger)
	})

	do.Provide(injector, func(i do.Injector) (ports.Assistant, error) {
		source := do.MustInvoke[ports.IntentSource](i)
		dispatcher := do.MustInvoke[ports.Dispatcher](i)
		return app.NewAssistantService(source, dispatcher, policy, logger), nil
	})

	do.Provide(injector, func(_ do.Injector) (ports.HealthRegistry, error) {
		return health.New(), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.AssistantHandler, error) {
		assistant := do.MustInvoke[ports.Assistant](i)
		dispatcher := do.MustInvoke[ports.Dispatcher](i)
		return handlers.NewAssistantHandler(assistant, dispatcher, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.ListHandler, error) {
		lists := do.MustInvoke[*app.ListService](i)
		return handlers.NewListHandler(lists, lists, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.HealthHandler, error) {
		registry := do.MustInvoke[ports.HealthRegistry](i)
		return handlers.NewHealthHandler(registry), nil
	})

	do.Provide(injector, func(i do.Injector) (nethttp.Handler, error) {
		assistantH := do.MustInvoke[*handlers.AssistantHandler](i)
		listH := do.MustInvoke[*handlers.ListHandler](i)
		healthH := do.MustInvoke[*handlers.HealthHandler](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)

		return adapthttp.NewRouter(assistantH, listH, healthH,
			middleware.Recovery(logger),
			middleware.RequestID(),
			middleware.CorrelationID(),
			middleware.OpenTelemetry(metrics),
			middleware.Logging(logger),
			middleware.Timeout(cfg.Server.WriteTimeout),
		), nil
	})

	do.Provide(injector, func(i do.Injector) (*adapthttp.Server, error) {
		handler := do.MustInvoke[nethttp.Handler](i)
		return adapthttp.NewServer(cfg.Server, handler, logger), nil
	})
}
