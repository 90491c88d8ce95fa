package http

import (
	"context"

	"github.com/nats-io/nats.go"
	"github.com/samirrijal/venuehub/internal/adapters/postgres"
	"github.com/samirrijal/venuehub/internal/adapters/valkey"
	"github.com/samirrijal/venuehub/internal/core/usecases"
)

// ActivationQueue accepts venue activations for asynchronous processing.
type ActivationQueue interface {
	RequestActivation(ctx context.Context, venueID string, reloadConfig bool) error
}

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Venues      *usecases.VenueService
	Configs     *usecases.AppConfigService
	Activations ActivationQueue // optional
	NATS        *nats.Conn
	DB          *postgres.DB
	Cache       *valkey.Cache
}
