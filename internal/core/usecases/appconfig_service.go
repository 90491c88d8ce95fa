package usecases

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/samirrijal/venuehub/internal/core/domain"
	"github.com/samirrijal/venuehub/internal/core/ports"
	"github.com/samirrijal/venuehub/internal/pkg/broadcast"
	apperrors "github.com/samirrijal/venuehub/internal/pkg/errors"
	"github.com/samirrijal/venuehub/internal/pkg/metrics"
)

// AppConfigService caches the solution's app configuration and the venue the
// application was initialised with, and broadcasts both to subscribers.
type AppConfigService struct {
	provider  ports.ConfigProvider
	publisher ports.EventPublisher // optional

	appConfig broadcast.Latest[*domain.AppConfig]
	initVenue broadcast.Latest[*domain.Venue]
}

// NewAppConfigService creates a new AppConfigService. publisher may be nil.
func NewAppConfigService(provider ports.ConfigProvider, publisher ports.EventPublisher) *AppConfigService {
	return &AppConfigService{provider: provider, publisher: publisher}
}

// SetAppConfig fetches the configuration, applies defaults and publishes it.
// Nothing is published when the fetch or parsing fails.
func (s *AppConfigService) SetAppConfig(ctx context.Context) error {
	raw, err := s.provider.GetConfig(ctx)
	if err != nil {
		metrics.ConfigLoads.WithLabelValues("failed").Inc()
		return apperrors.ErrConfigUnavailable(err)
	}

	cfg, err := buildAppConfig(raw)
	if err != nil {
		metrics.ConfigLoads.WithLabelValues("invalid").Inc()
		return err
	}

	s.appConfig.Publish(cfg)
	metrics.ConfigLoads.WithLabelValues("ok").Inc()

	if s.publisher != nil {
		if err := s.publisher.PublishAppConfig(ctx, cfg); err != nil {
			slog.WarnContext(ctx, "publish app config", "error", err)
		}
	}
	return nil
}

// AppConfig returns the app config channel. New subscribers immediately
// receive the latest config, if any.
func (s *AppConfigService) AppConfig() *broadcast.Latest[*domain.AppConfig] {
	return &s.appConfig
}

// Current returns the latest published config, or nil.
func (s *AppConfigService) Current() *domain.AppConfig {
	cfg, _ := s.appConfig.Last()
	return cfg
}

// SetInitVenue records the venue the application started with.
func (s *AppConfigService) SetInitVenue(venue *domain.Venue) {
	s.initVenue.Publish(venue)
}

// InitVenue returns the initial venue channel.
func (s *AppConfigService) InitVenue() *broadcast.Latest[*domain.Venue] {
	return &s.initVenue
}

func buildAppConfig(raw *domain.RawAppConfig) (*domain.AppConfig, error) {
	if raw == nil {
		return nil, apperrors.ErrInvalidConfig("empty response", nil)
	}

	displayAliases, err := parseDisplayAliases(string(raw.AppSettings.DisplayAliases))
	if err != nil {
		return nil, err
	}

	cfg := &domain.AppConfig{
		AppSettings: domain.AppSettings{
			Title:          raw.AppSettings.Title,
			DisplayAliases: displayAliases,
		},
		VenueImages: make(map[string]string, len(raw.VenueImages)),
	}
	if cfg.AppSettings.Title == "" {
		cfg.AppSettings.Title = domain.DefaultAppTitle
	}
	for name, img := range raw.VenueImages {
		cfg.VenueImages[name] = img
	}
	return cfg, nil
}

// parseDisplayAliases decodes the serialized flag. Absent or empty means false.
func parseDisplayAliases(serialized string) (bool, error) {
	serialized = strings.TrimSpace(serialized)
	if serialized == "" {
		return false, nil
	}

	var v any
	if err := json.Unmarshal([]byte(serialized), &v); err != nil {
		return false, apperrors.ErrInvalidConfig("displayAliases is not valid JSON", err)
	}

	switch b := v.(type) {
	case nil:
		return false, nil
	case bool:
		return b, nil
	case float64:
		return b != 0, nil
	default:
		return false, apperrors.ErrInvalidConfig("displayAliases must be a boolean", nil)
	}
}
