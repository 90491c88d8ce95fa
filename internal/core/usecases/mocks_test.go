package usecases_test

import (
	"context"
	"errors"
	"sync"

	"github.com/samirrijal/venuehub/internal/core/domain"
)

// --- Mock VenueProvider ---

type mockVenueProvider struct {
	getVenuesFn   func(ctx context.Context) ([]domain.Venue, error)
	getVenueFn    func(ctx context.Context, id string) (*domain.Venue, error)
	getBuildingFn func(ctx context.Context, id string) (*domain.Building, error)

	mu            sync.Mutex
	getVenueCalls int
}

func (m *mockVenueProvider) GetVenues(ctx context.Context) ([]domain.Venue, error) {
	if m.getVenuesFn != nil {
		return m.getVenuesFn(ctx)
	}
	return nil, nil
}

func (m *mockVenueProvider) GetVenue(ctx context.Context, id string) (*domain.Venue, error) {
	m.mu.Lock()
	m.getVenueCalls++
	m.mu.Unlock()
	if m.getVenueFn != nil {
		return m.getVenueFn(ctx, id)
	}
	return nil, nil
}

func (m *mockVenueProvider) GetBuilding(ctx context.Context, id string) (*domain.Building, error) {
	if m.getBuildingFn != nil {
		return m.getBuildingFn(ctx, id)
	}
	return nil, nil
}

// --- Mock ConfigProvider ---

type mockConfigProvider struct {
	getConfigFn func(ctx context.Context) (*domain.RawAppConfig, error)
}

func (m *mockConfigProvider) GetConfig(ctx context.Context) (*domain.RawAppConfig, error) {
	if m.getConfigFn != nil {
		return m.getConfigFn(ctx)
	}
	return &domain.RawAppConfig{}, nil
}

// --- Mock MapControl ---

type mockMapControl struct {
	mu       sync.Mutex
	calls    []string
	failWith error

	// afterCall, when set, runs after each call is recorded.
	afterCall func(ctx context.Context, call string)
}

func (m *mockMapControl) record(ctx context.Context, call string) error {
	m.mu.Lock()
	m.calls = append(m.calls, call)
	hook, err := m.afterCall, m.failWith
	m.mu.Unlock()

	if hook != nil {
		hook(ctx, call)
	}
	return err
}

func (m *mockMapControl) SetVenue(ctx context.Context, venue *domain.Venue) error {
	return m.record(ctx, "set_venue:"+venue.ID)
}

func (m *mockMapControl) FitVenue(ctx context.Context, venueID string) error {
	return m.record(ctx, "fit_venue:"+venueID)
}

func (m *mockMapControl) SetVenueAsReturnToValue(ctx context.Context, venue *domain.Venue) error {
	return m.record(ctx, "return_to:"+venue.ID)
}

func (m *mockMapControl) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// --- Mock EventPublisher ---

type mockPublisher struct {
	mu        sync.Mutex
	activated []string
	configs   int
}

func (m *mockPublisher) PublishVenueActivated(ctx context.Context, venue *domain.Venue) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.activated = append(m.activated, venue.ID)
	return nil
}

func (m *mockPublisher) PublishAppConfig(ctx context.Context, cfg *domain.AppConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.configs++
	return nil
}

// --- Mock CacheService ---

var errCacheMiss = errors.New("cache miss")

type mockCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMockCache() *mockCache { return &mockCache{data: make(map[string][]byte)} }

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.data[key]
	if !ok {
		return nil, errCacheMiss
	}
	return b, nil
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttlSeconds int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// --- Fixtures ---

func squareVenue(id, name string) *domain.Venue {
	return &domain.Venue{
		ID:     id,
		Name:   name,
		Anchor: domain.Point{Type: "Point", Coordinates: []float64{12.34, 56.78}},
		Geometry: domain.Polygon{
			Type:        "Polygon",
			Coordinates: [][][2]float64{{{10, 50}, {15, 50}, {15, 55}, {10, 55}}},
		},
	}
}
