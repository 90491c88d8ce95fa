package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir()) // no config.yaml or .env

	cfg, err := Load("venuehub-test")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "venuehub-test", cfg.Telemetry.ServiceName)
	assert.Equal(t, "default", cfg.Venues.Solution)
	assert.True(t, cfg.Venues.FitOnActivate)
	assert.Equal(t, 600, cfg.Venues.CacheTTL)
	assert.Equal(t, "venue-activation", cfg.Temporal.TaskQueue)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("VENUEHUB_SERVER_PORT", "9090")
	t.Setenv("VENUEHUB_VENUES_FIT_ON_ACTIVATE", "false")
	t.Setenv("VENUEHUB_VENUES_SOLUTION", "campus")

	cfg, err := Load("venuehub-test")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.False(t, cfg.Venues.FitOnActivate)
	assert.Equal(t, "campus", cfg.Venues.Solution)
}

func TestValidate_CollectsErrors(t *testing.T) {
	cfg := &Config{}

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"server.port", "database.host", "nats.url", "venues.solution", "venues.cache_ttl"} {
		assert.True(t, strings.Contains(err.Error(), want), "missing %q in %q", want, err.Error())
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{User: "u", Password: "p", Host: "db", Port: 5432, DBName: "venues", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@db:5432/venues?sslmode=disable", d.DSN())
}
