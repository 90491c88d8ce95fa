package main

import (
	"context"
	"log"
	"log/slog"
	"os/signal"
	"syscall"

	"go.temporal.io/sdk/client"

	natsadapter "github.com/samirrijal/venuehub/internal/adapters/nats"
	"github.com/samirrijal/venuehub/internal/core/domain"
	"github.com/samirrijal/venuehub/internal/pkg/config"
	"github.com/samirrijal/venuehub/internal/pkg/logging"
)

// The activator turns queued activation requests into durable Temporal
// workflows executed by the API's worker.
func main() {
	cfg, err := config.Load("venuehub-activator")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logging.Setup("venuehub-activator", cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	tc, err := client.Dial(client.Options{
		HostPort:  cfg.Temporal.HostPort,
		Namespace: cfg.Temporal.Namespace,
		Logger:    slog.Default(),
	})
	if err != nil {
		log.Fatalf("temporal client: %v", err)
	}
	defer tc.Close()

	sub, err := natsadapter.NewSubscriber(cfg.NATS.URL)
	if err != nil {
		log.Fatalf("nats: %v", err)
	}
	defer sub.Close()

	err = sub.SubscribeActivationRequests(ctx, func(ctx context.Context, venueID string, reloadConfig bool) error {
		return startActivation(ctx, tc, cfg.Temporal.TaskQueue, venueID, reloadConfig)
	})
	if err != nil {
		log.Fatalf("subscribe activation requests: %v", err)
	}

	err = sub.SubscribeVenueActivated(ctx, func(ctx context.Context, venue *domain.Venue) error {
		slog.Info("venue activated", "venue_id", venue.ID, "name", venue.Name, "only_venue", venue.OnlyVenue)
		return nil
	})
	if err != nil {
		log.Fatalf("subscribe venue events: %v", err)
	}

	slog.Info("activator started", "task_queue", cfg.Temporal.TaskQueue)
	<-ctx.Done()
	slog.Info("activator stopped")
}
