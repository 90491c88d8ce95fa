package ports

import (
	"context"

	"github.com/samirrijal/venuehub/internal/core/domain"
)

// EventPublisher publishes domain events to a message broker.
type EventPublisher interface {
	PublishVenueActivated(ctx context.Context, venue *domain.Venue) error
	PublishAppConfig(ctx context.Context, cfg *domain.AppConfig) error
}

// EventSubscriber subscribes to domain events from a message broker.
type EventSubscriber interface {
	SubscribeActivationRequests(ctx context.Context, handler func(ctx context.Context, venueID string, reloadConfig bool) error) error
	SubscribeVenueActivated(ctx context.Context, handler func(ctx context.Context, venue *domain.Venue) error) error
}

// CacheService provides read-through caching.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}
