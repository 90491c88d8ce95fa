package ports

import (
	"context"

	"github.com/samirrijal/venuehub/internal/core/domain"
)

// VenueProvider is the mapping backend's venue store.
type VenueProvider interface {
	GetVenues(ctx context.Context) ([]domain.Venue, error)
	GetVenue(ctx context.Context, id string) (*domain.Venue, error)
	GetBuilding(ctx context.Context, id string) (*domain.Building, error)
}

// ConfigProvider returns the solution's application configuration.
type ConfigProvider interface {
	GetConfig(ctx context.Context) (*domain.RawAppConfig, error)
}

// MapControl drives the map shown to the user. Calls are fire-and-forget:
// they do not wait for camera animations to finish.
type MapControl interface {
	SetVenue(ctx context.Context, venue *domain.Venue) error
	FitVenue(ctx context.Context, venueID string) error
	// SetVenueAsReturnToValue records the target of the "return to venue" button.
	SetVenueAsReturnToValue(ctx context.Context, venue *domain.Venue) error
}

// VenueStore persists venues and buildings (used by the importer).
type VenueStore interface {
	UpsertVenue(ctx context.Context, venue *domain.Venue) error
	UpsertBuilding(ctx context.Context, building *domain.Building) error
}
