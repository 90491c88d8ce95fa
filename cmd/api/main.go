package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"

	"github.com/samirrijal/venuehub/internal/adapters/http"
	natsadapter "github.com/samirrijal/venuehub/internal/adapters/nats"
	"github.com/samirrijal/venuehub/internal/adapters/postgres"
	"github.com/samirrijal/venuehub/internal/adapters/valkey"
	"github.com/samirrijal/venuehub/internal/core/ports"
	"github.com/samirrijal/venuehub/internal/core/usecases"
	"github.com/samirrijal/venuehub/internal/pkg/config"
	"github.com/samirrijal/venuehub/internal/pkg/logging"
	"github.com/samirrijal/venuehub/internal/pkg/telemetry"
	"github.com/samirrijal/venuehub/internal/workflows"
)

func main() {
	cfg, err := config.Load("venuehub-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logging.Setup("venuehub-api", cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.TempoAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	db, err := postgres.New(ctx, cfg.Database.DSN(), cfg.Database.MaxConns)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Optional infrastructure. Interfaces stay nil when a backend is missing.
	var (
		cacheSvc  ports.CacheService
		publisher ports.EventPublisher
		mapCtl    ports.MapControl
	)

	cache, err := valkey.New(cfg.Valkey.Addr, cfg.Valkey.KeyPrefix)
	if err != nil {
		slog.Warn("valkey unavailable", "error", err)
	} else {
		defer cache.Close()
		cacheSvc = cache
	}

	nc, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats unavailable", "error", err)
	} else {
		defer nc.Close()
		publisher = nc
		mapCtl = nc
	}

	venueRepo := postgres.NewVenueRepo(db)
	configRepo := postgres.NewConfigRepo(db, cfg.Venues.Solution)

	configSvc := usecases.NewAppConfigService(configRepo, publisher)
	venueSvc := usecases.NewVenueService(venueRepo, mapCtl, configSvc, publisher, cacheSvc,
		usecases.WithFitVenues(cfg.Venues.FitOnActivate),
		usecases.WithCacheTTL(cfg.Venues.CacheTTL),
	)

	// Venues are normalized against the app config, so load it first.
	if err := configSvc.SetAppConfig(ctx); err != nil {
		slog.Warn("initial app config load failed", "error", err)
	}
	if id := cfg.Venues.InitVenue; id != "" {
		activateInitVenue(ctx, venueSvc, configSvc, id)
	}

	// Temporal worker for durable activations queued by the activator.
	tc, err := client.Dial(client.Options{
		HostPort:  cfg.Temporal.HostPort,
		Namespace: cfg.Temporal.Namespace,
		Logger:    slog.Default(),
	})
	if err != nil {
		slog.Warn("temporal unavailable, durable activation disabled", "error", err)
	} else {
		defer tc.Close()
		w := worker.New(tc, cfg.Temporal.TaskQueue, worker.Options{})
		w.RegisterWorkflow(workflows.VenueActivationWorkflow)
		w.RegisterActivity(&workflows.ActivationActivities{Venues: venueSvc, Configs: configSvc})
		if err := w.Start(); err != nil {
			slog.Warn("temporal worker start failed", "error", err)
		} else {
			defer w.Stop()
		}
	}

	deps := &http.Dependencies{
		Venues:  venueSvc,
		Configs: configSvc,
		DB:      db,
		Cache:   cache,
	}
	if nc != nil {
		deps.NATS = nc.Conn()
		deps.Activations = nc
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    1024 * 1024,
		AppName:      "VenueHub API",
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "http://localhost:3000, http://localhost:4200",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		MaxAge:       3600,
	}))

	http.SetupRoutes(app, deps)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}

func activateInitVenue(ctx context.Context, venues *usecases.VenueService, configs *usecases.AppConfigService, id string) {
	venue, err := venues.GetVenueByID(ctx, id)
	if err != nil {
		slog.Warn("init venue lookup failed", "venue_id", id, "error", err)
		return
	}
	configs.SetInitVenue(venue)

	if _, err := venues.ActivateByID(ctx, id); err != nil {
		slog.Warn("init venue activation failed", "venue_id", id, "error", err)
	}
}
