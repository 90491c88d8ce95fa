package usecases_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samirrijal/venuehub/internal/core/domain"
	"github.com/samirrijal/venuehub/internal/core/usecases"
	apperrors "github.com/samirrijal/venuehub/internal/pkg/errors"
)

func TestAppConfigService_SetAppConfig_Defaults(t *testing.T) {
	provider := &mockConfigProvider{
		getConfigFn: func(ctx context.Context) (*domain.RawAppConfig, error) {
			return &domain.RawAppConfig{VenueImages: map[string]string{}}, nil
		},
	}
	pub := &mockPublisher{}
	svc := usecases.NewAppConfigService(provider, pub)

	require.NoError(t, svc.SetAppConfig(context.Background()))

	cfg := svc.Current()
	require.NotNil(t, cfg)
	assert.Equal(t, "MapsIndoors", cfg.AppSettings.Title)
	assert.False(t, cfg.AppSettings.DisplayAliases)
	assert.Equal(t, 1, pub.configs)
}

func TestAppConfigService_SetAppConfig_ParsesSettings(t *testing.T) {
	cases := []struct {
		name    string
		payload string
		want    bool
	}{
		{"string true", `{"appSettings":{"title":"Campus","displayAliases":"true"}}`, true},
		{"string false", `{"appSettings":{"displayAliases":"false"}}`, false},
		{"bare boolean", `{"appSettings":{"displayAliases":true}}`, true},
		{"null", `{"appSettings":{"displayAliases":null}}`, false},
		{"numeric one", `{"appSettings":{"displayAliases":"1"}}`, true},
		{"absent", `{"appSettings":{}}`, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var raw domain.RawAppConfig
			require.NoError(t, json.Unmarshal([]byte(tc.payload), &raw))

			svc := usecases.NewAppConfigService(&mockConfigProvider{
				getConfigFn: func(ctx context.Context) (*domain.RawAppConfig, error) { return &raw, nil },
			}, nil)

			require.NoError(t, svc.SetAppConfig(context.Background()))
			assert.Equal(t, tc.want, svc.Current().AppSettings.DisplayAliases)
		})
	}
}

func TestAppConfigService_SetAppConfig_KeepsTitle(t *testing.T) {
	svc := usecases.NewAppConfigService(&mockConfigProvider{
		getConfigFn: func(ctx context.Context) (*domain.RawAppConfig, error) {
			return &domain.RawAppConfig{
				AppSettings: domain.RawAppSettings{Title: "North Campus"},
				VenueImages: map[string]string{"hq": "https://img/hq.png"},
			}, nil
		},
	}, nil)

	require.NoError(t, svc.SetAppConfig(context.Background()))
	assert.Equal(t, "North Campus", svc.Current().AppSettings.Title)
	assert.Equal(t, "https://img/hq.png", svc.Current().VenueImages["hq"])
}

func TestAppConfigService_SetAppConfig_FetchFailure(t *testing.T) {
	svc := usecases.NewAppConfigService(&mockConfigProvider{
		getConfigFn: func(ctx context.Context) (*domain.RawAppConfig, error) {
			return nil, errors.New("backend down")
		},
	}, nil)

	received := 0
	cancel := svc.AppConfig().Subscribe(func(*domain.AppConfig) { received++ })
	defer cancel()

	err := svc.SetAppConfig(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeConfigUnavailable))
	assert.Zero(t, received, "nothing may be published on failure")
	assert.Nil(t, svc.Current())
}

func TestAppConfigService_SetAppConfig_InvalidDisplayAliases(t *testing.T) {
	svc := usecases.NewAppConfigService(&mockConfigProvider{
		getConfigFn: func(ctx context.Context) (*domain.RawAppConfig, error) {
			return &domain.RawAppConfig{AppSettings: domain.RawAppSettings{DisplayAliases: "yes"}}, nil
		},
	}, nil)

	err := svc.SetAppConfig(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidConfig))
	assert.Nil(t, svc.Current())
}

func TestAppConfigService_LateSubscriberGetsLatest(t *testing.T) {
	title := "first"
	svc := usecases.NewAppConfigService(&mockConfigProvider{
		getConfigFn: func(ctx context.Context) (*domain.RawAppConfig, error) {
			return &domain.RawAppConfig{AppSettings: domain.RawAppSettings{Title: title}}, nil
		},
	}, nil)

	require.NoError(t, svc.SetAppConfig(context.Background()))
	title = "second"
	require.NoError(t, svc.SetAppConfig(context.Background()))

	var got []string
	cancel := svc.AppConfig().Subscribe(func(cfg *domain.AppConfig) { got = append(got, cfg.AppSettings.Title) })
	defer cancel()

	assert.Equal(t, []string{"second"}, got)
}

func TestAppConfigService_InitVenue(t *testing.T) {
	svc := usecases.NewAppConfigService(&mockConfigProvider{}, nil)

	var got []string
	early := svc.InitVenue().Subscribe(func(v *domain.Venue) { got = append(got, "early:"+v.ID) })
	defer early()

	svc.SetInitVenue(&domain.Venue{ID: "v1"})

	late := svc.InitVenue().Subscribe(func(v *domain.Venue) { got = append(got, "late:"+v.ID) })
	defer late()

	assert.Equal(t, []string{"early:v1", "late:v1"}, got)
}
