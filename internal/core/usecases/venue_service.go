package usecases

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/samirrijal/venuehub/internal/core/domain"
	"github.com/samirrijal/venuehub/internal/core/ports"
	"github.com/samirrijal/venuehub/internal/pkg/broadcast"
	apperrors "github.com/samirrijal/venuehub/internal/pkg/errors"
	"github.com/samirrijal/venuehub/internal/pkg/geospatial"
	"github.com/samirrijal/venuehub/internal/pkg/metrics"
	"github.com/samirrijal/venuehub/internal/pkg/telemetry"
)

// ActivationState is the lifecycle of the current venue.
type ActivationState int

const (
	StateIdle ActivationState = iota
	StateActivating
	StateActive
)

func (s ActivationState) String() string {
	switch s {
	case StateActivating:
		return "activating"
	case StateActive:
		return "active"
	default:
		return "idle"
	}
}

// VenueSnapshot is a point-in-time view of the activation state.
type VenueSnapshot struct {
	State              ActivationState `json:"-"`
	StateName          string          `json:"state"`
	Venue              *domain.Venue   `json:"venue,omitempty"`
	ReturnButtonActive bool            `json:"return_button_active"`
	FavouredVenue      bool            `json:"favoured_venue"`
	FitVenues          bool            `json:"fit_venues"`
}

// VenueOption configures a VenueService.
type VenueOption func(*VenueService)

// WithFitVenues controls whether activation fits the map camera to the venue.
func WithFitVenues(fit bool) VenueOption {
	return func(s *VenueService) { s.fitVenues = fit }
}

// WithCacheTTL sets the read-through cache TTL for single venue/building lookups.
func WithCacheTTL(seconds int) VenueOption {
	return func(s *VenueService) { s.cacheTTL = seconds }
}

// VenueService fetches, normalizes and activates venues.
//
// Activations are serialized per instance: a new SetVenue cancels the one in
// flight, and only the newest activation is committed and published.
type VenueService struct {
	venues    ports.VenueProvider
	mapCtl    ports.MapControl
	configs   *AppConfigService    // optional
	publisher ports.EventPublisher // optional
	cache     ports.CacheService   // optional
	cacheTTL  int

	commitMu sync.Mutex // orders commit+publish across activations
	mapMu    sync.Mutex // orders map commands across activations

	mu              sync.Mutex
	state           ActivationState
	venue           *domain.Venue
	returnBtnActive bool
	favouredVenue   bool
	fitVenues       bool
	generation      uint64
	cancelInflight  context.CancelFunc

	venueObservable broadcast.Latest[*domain.Venue]
}

// NewVenueService creates a new VenueService. configs, publisher and cache may be nil.
func NewVenueService(
	venues ports.VenueProvider,
	mapCtl ports.MapControl,
	configs *AppConfigService,
	publisher ports.EventPublisher,
	cache ports.CacheService,
	opts ...VenueOption,
) *VenueService {
	s := &VenueService{
		venues:          venues,
		mapCtl:          mapCtl,
		configs:         configs,
		publisher:       publisher,
		cache:           cache,
		cacheTTL:        600,
		returnBtnActive: true,
		fitVenues:       true,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// GetVenues returns every venue in the solution with center and image set
// from the current app config.
func (s *VenueService) GetVenues(ctx context.Context) ([]domain.Venue, error) {
	venues, err := s.venues.GetVenues(ctx)
	if err != nil {
		return nil, apperrors.ErrProvider("get venues", err)
	}

	cfg := s.currentConfig()
	for i := range venues {
		if err := NormalizeVenue(&venues[i], cfg); err != nil {
			return nil, err
		}
	}
	return venues, nil
}

// GetVenueByID returns a single venue as stored by the provider.
func (s *VenueService) GetVenueByID(ctx context.Context, id string) (*domain.Venue, error) {
	cacheKey := venueCacheKey(id)
	var cached domain.Venue
	if s.cacheGet(ctx, "venue", cacheKey, &cached) {
		return &cached, nil
	}

	venue, err := s.venues.GetVenue(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, cacheKey, venue)
	return venue, nil
}

// GetBuildingByID returns a single building as stored by the provider.
func (s *VenueService) GetBuildingByID(ctx context.Context, id string) (*domain.Building, error) {
	cacheKey := buildingCacheKey(id)
	var cached domain.Building
	if s.cacheGet(ctx, "building", cacheKey, &cached) {
		return &cached, nil
	}

	building, err := s.venues.GetBuilding(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, cacheKey, building)
	return building, nil
}

// InvalidateVenue drops the cached copy of a venue so the next lookup reads
// the provider. Call it after the stored venue changes.
func (s *VenueService) InvalidateVenue(ctx context.Context, id string) error {
	return s.cacheDelete(ctx, venueCacheKey(id))
}

// InvalidateBuilding drops the cached copy of a building.
func (s *VenueService) InvalidateBuilding(ctx context.Context, id string) error {
	return s.cacheDelete(ctx, buildingCacheKey(id))
}

// VenueObservable returns the current-venue channel. New subscribers
// immediately receive the latest activated venue, if any. Published venues
// are shared and must be treated as read-only.
func (s *VenueService) VenueObservable() *broadcast.Latest[*domain.Venue] {
	return &s.venueObservable
}

// Snapshot returns the current activation state.
func (s *VenueService) Snapshot() VenueSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return VenueSnapshot{
		State:              s.state,
		StateName:          s.state.String(),
		Venue:              s.venue,
		ReturnButtonActive: s.returnBtnActive,
		FavouredVenue:      s.favouredVenue,
		FitVenues:          s.fitVenues,
	}
}

// ActivateByID looks up a venue and activates it with the current app config.
func (s *VenueService) ActivateByID(ctx context.Context, id string) (*domain.Venue, error) {
	venue, err := s.GetVenueByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.setVenue(ctx, venue, s.currentConfig())
}

// SetVenue makes venue the current one: it normalizes a copy, drives the map,
// computes the bounding box and the only-venue flag, then commits and
// publishes. On failure no state changes and nothing is published.
func (s *VenueService) SetVenue(ctx context.Context, venue *domain.Venue, cfg *domain.AppConfig) error {
	_, err := s.setVenue(ctx, venue, cfg)
	return err
}

func (s *VenueService) setVenue(ctx context.Context, venue *domain.Venue, cfg *domain.AppConfig) (*domain.Venue, error) {
	start := time.Now()
	ctx, span := telemetry.Tracer().Start(ctx, "VenueService.SetVenue",
		trace.WithAttributes(attribute.String("venue.id", venue.ID)))
	defer span.End()

	gen, ctx, cancel := s.begin(ctx)
	defer cancel()

	v, err := s.activate(ctx, gen, venue, cfg)
	switch {
	case err == nil:
		metrics.VenueActivations.WithLabelValues("ok").Inc()
		metrics.ActivationDuration.Observe(time.Since(start).Seconds())
	case apperrors.HasCode(err, apperrors.ErrCodeActivationSuperseded):
		metrics.VenueActivations.WithLabelValues("superseded").Inc()
		span.SetAttributes(attribute.Bool("venue.superseded", true))
	default:
		metrics.VenueActivations.WithLabelValues("failed").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return v, err
}

func (s *VenueService) activate(ctx context.Context, gen uint64, venue *domain.Venue, cfg *domain.AppConfig) (*domain.Venue, error) {
	v := venue.Clone()
	if err := NormalizeVenue(v, cfg); err != nil {
		return nil, s.abort(gen, v.ID, err)
	}

	// Return-to bookkeeping and camera moves do not gate the remaining steps,
	// but a superseded activation stops driving the map.
	if !s.mapCommand(ctx, gen, "return_to", func() error { return s.mapCtl.SetVenueAsReturnToValue(ctx, v) }) ||
		!s.mapCommand(ctx, gen, "set_venue", func() error { return s.mapCtl.SetVenue(ctx, v) }) ||
		(s.fitEnabled() && !s.mapCommand(ctx, gen, "fit_venue", func() error { return s.mapCtl.FitVenue(ctx, v.ID) })) {
		return nil, apperrors.ErrActivationSuperseded(v.ID)
	}

	bounds := geospatial.ComputeBoundingBox(v.Geometry.Coordinates)
	v.BoundingBox = &bounds

	all, err := s.venues.GetVenues(ctx)
	if err != nil {
		return nil, s.abort(gen, v.ID, apperrors.ErrProvider("count venues", err))
	}
	v.OnlyVenue = len(all) == 1

	if !s.commit(gen, v) {
		return nil, apperrors.ErrActivationSuperseded(v.ID)
	}

	slog.InfoContext(ctx, "venue activated", "venue_id", v.ID, "only_venue", v.OnlyVenue)
	if s.publisher != nil {
		if err := s.publisher.PublishVenueActivated(ctx, v); err != nil {
			slog.WarnContext(ctx, "publish venue activated", "venue_id", v.ID, "error", err)
		}
	}
	return v, nil
}

// begin starts a new activation generation, cancelling the one in flight.
func (s *VenueService) begin(ctx context.Context) (uint64, context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancelInflight != nil {
		s.cancelInflight()
	}
	s.generation++
	s.cancelInflight = cancel
	s.state = StateActivating
	return s.generation, ctx, cancel
}

// commit stores v and publishes it if gen is still the newest activation.
func (s *VenueService) commit(gen uint64, v *domain.Venue) bool {
	s.commitMu.Lock()
	defer s.commitMu.Unlock()

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		return false
	}
	s.venue = v
	s.returnBtnActive = true
	s.favouredVenue = true
	s.state = StateActive
	s.cancelInflight = nil
	s.mu.Unlock()

	s.venueObservable.Publish(v)
	return true
}

// abort restores the pre-activation state. A stale generation reports
// supersession instead of err.
func (s *VenueService) abort(gen uint64, venueID string, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return apperrors.ErrActivationSuperseded(venueID)
	}
	s.cancelInflight = nil
	if s.venue != nil {
		s.state = StateActive
	} else {
		s.state = StateIdle
	}
	return err
}

// mapCommand sends one map command on behalf of activation gen. It reports
// false, without sending, once gen is no longer the newest activation.
// Commands are serialized so none from a stale activation follows a newer one.
func (s *VenueService) mapCommand(ctx context.Context, gen uint64, name string, fn func() error) bool {
	s.mapMu.Lock()
	defer s.mapMu.Unlock()

	if !s.isCurrent(gen) {
		return false
	}
	if s.mapCtl == nil {
		return true
	}
	if err := fn(); err != nil {
		metrics.MapCommandErrors.WithLabelValues(name).Inc()
		slog.WarnContext(ctx, "map command failed", "command", name, "error", err)
	}
	return true
}

func (s *VenueService) isCurrent(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return gen == s.generation
}

func (s *VenueService) fitEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fitVenues
}

func (s *VenueService) currentConfig() *domain.AppConfig {
	if s.configs == nil {
		return nil
	}
	return s.configs.Current()
}

func (s *VenueService) cacheGet(ctx context.Context, op, key string, dst any) bool {
	if s.cache == nil {
		return false
	}
	data, err := s.cache.Get(ctx, key)
	if err == nil && json.Unmarshal(data, dst) == nil {
		metrics.CacheHits.WithLabelValues(op).Inc()
		return true
	}
	metrics.CacheMisses.WithLabelValues(op).Inc()
	return false
}

func (s *VenueService) cacheSet(ctx context.Context, key string, v any) {
	if s.cache == nil {
		return
	}
	if data, err := json.Marshal(v); err == nil {
		_ = s.cache.Set(ctx, key, data, s.cacheTTL)
	}
}

func (s *VenueService) cacheDelete(ctx context.Context, key string) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Delete(ctx, key)
}

func venueCacheKey(id string) string { return "venues:id:" + id }
func buildingCacheKey(id string) string { return "buildings:id:" + id }
