//go:build integration
// +build integration

package postgres_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/samirrijal/venuehub/internal/adapters/postgres"
	"github.com/samirrijal/venuehub/internal/core/domain"
	"github.com/samirrijal/venuehub/internal/pkg/config"
	apperrors "github.com/samirrijal/venuehub/internal/pkg/errors"
)

// setupTestDB connects to the database configured for venuehub-test.
// Tables must exist (run `migrate up` first).
func setupTestDB(t *testing.T) *postgres.DB {
	t.Helper()
	cfg, err := config.Load("venuehub-test")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := postgres.New(ctx, cfg.Database.DSN(), 4)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(db.Close)
	return db
}

func TestIntegration_VenueRepo(t *testing.T) {
	db := setupTestDB(t)
	repo := postgres.NewVenueRepo(db)
	ctx := context.Background()

	venue := &domain.Venue{
		ID:     "it-venue",
		Name:   "Integration HQ",
		Anchor: domain.Point{Type: "Point", Coordinates: []float64{12.34, 56.78}},
		Geometry: domain.Polygon{
			Type:        "Polygon",
			Coordinates: [][][2]float64{{{10, 50}, {15, 50}, {15, 55}, {10, 55}}},
		},
	}
	if err := repo.UpsertVenue(ctx, venue); err != nil {
		t.Fatalf("upsert venue: %v", err)
	}
	building := &domain.Building{ID: "it-building", VenueID: venue.ID, Name: "Tower", Anchor: venue.Anchor, Geometry: venue.Geometry}
	if err := repo.UpsertBuilding(ctx, building); err != nil {
		t.Fatalf("upsert building: %v", err)
	}
	t.Cleanup(func() {
		_, _ = db.Pool.Exec(context.Background(), `DELETE FROM venues WHERE id = $1`, venue.ID)
	})

	got, err := repo.GetVenue(ctx, venue.ID)
	if err != nil {
		t.Fatalf("get venue: %v", err)
	}
	if got.Name != venue.Name || len(got.Geometry.Coordinates[0]) != 4 {
		t.Errorf("unexpected venue %+v", got)
	}

	b, err := repo.GetBuilding(ctx, building.ID)
	if err != nil {
		t.Fatalf("get building: %v", err)
	}
	if b.VenueID != venue.ID {
		t.Errorf("expected venue_id %s, got %s", venue.ID, b.VenueID)
	}

	venues, err := repo.GetVenues(ctx)
	if err != nil {
		t.Fatalf("get venues: %v", err)
	}
	found := false
	for _, v := range venues {
		if v.ID == venue.ID {
			found = true
		}
	}
	if !found {
		t.Error("upserted venue missing from GetVenues")
	}

	if _, err := repo.GetVenue(ctx, "does-not-exist"); !apperrors.HasCode(err, apperrors.ErrCodeVenueNotFound) {
		t.Errorf("expected VENUE_NOT_FOUND, got %v", err)
	}
}

func TestIntegration_ConfigRepo(t *testing.T) {
	db := setupTestDB(t)
	repo := postgres.NewConfigRepo(db, "it-solution")
	ctx := context.Background()
	t.Cleanup(func() {
		_, _ = db.Pool.Exec(context.Background(), `DELETE FROM app_config WHERE solution = 'it-solution'`)
	})

	doc := json.RawMessage(`{"appSettings":{"title":"IT","displayAliases":"true"},"venueImages":{"hq":"https://img/hq.png"}}`)
	if err := repo.SaveConfig(ctx, doc); err != nil {
		t.Fatalf("save config: %v", err)
	}

	cfg, err := repo.GetConfig(ctx)
	if err != nil {
		t.Fatalf("get config: %v", err)
	}
	if cfg.AppSettings.Title != "IT" || cfg.AppSettings.DisplayAliases != "true" {
		t.Errorf("unexpected settings %+v", cfg.AppSettings)
	}
	if cfg.VenueImages["hq"] != "https://img/hq.png" {
		t.Errorf("unexpected images %v", cfg.VenueImages)
	}
}
