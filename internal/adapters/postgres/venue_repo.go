package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/samirrijal/venuehub/internal/core/domain"
	apperrors "github.com/samirrijal/venuehub/internal/pkg/errors"
)

// VenueRepo implements ports.VenueProvider and ports.VenueStore.
type VenueRepo struct {
	db *DB
}

// NewVenueRepo creates a new VenueRepo.
func NewVenueRepo(db *DB) *VenueRepo {
	return &VenueRepo{db: db}
}

// GetVenues returns every venue of the solution ordered by name.
func (r *VenueRepo) GetVenues(ctx context.Context) ([]domain.Venue, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, name, anchor, geometry
		FROM venues ORDER BY name, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var venues []domain.Venue
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, err
		}
		venues = append(venues, *v)
	}
	return venues, rows.Err()
}

// GetVenue returns a venue by id.
func (r *VenueRepo) GetVenue(ctx context.Context, id string) (*domain.Venue, error) {
	row := r.db.Pool.QueryRow(ctx, `
		SELECT id, name, anchor, geometry
		FROM venues WHERE id = $1
	`, id)
	v, err := scanVenue(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrVenueNotFound(id, err)
	}
	return v, err
}

// GetBuilding returns a building by id.
func (r *VenueRepo) GetBuilding(ctx context.Context, id string) (*domain.Building, error) {
	var (
		b                  domain.Building
		anchorRaw, geomRaw []byte
	)
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, venue_id, name, anchor, geometry
		FROM buildings WHERE id = $1
	`, id).Scan(&b.ID, &b.VenueID, &b.Name, &anchorRaw, &geomRaw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrBuildingNotFound(id, err)
	}
	if err != nil {
		return nil, err
	}
	if err := decodeShape(anchorRaw, geomRaw, &b.Anchor, &b.Geometry); err != nil {
		return nil, fmt.Errorf("building %s: %w", id, err)
	}
	return &b, nil
}

// UpsertVenue inserts or replaces a venue.
func (r *VenueRepo) UpsertVenue(ctx context.Context, v *domain.Venue) error {
	anchor, geom, err := encodeShape(v.Anchor, v.Geometry)
	if err != nil {
		return err
	}
	_, err = r.db.Pool.Exec(ctx, `
		INSERT INTO venues (id, name, anchor, geometry)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, anchor = EXCLUDED.anchor, geometry = EXCLUDED.geometry,
		    updated_at = now()
	`, v.ID, v.Name, anchor, geom)
	return err
}

// UpsertBuilding inserts or replaces a building.
func (r *VenueRepo) UpsertBuilding(ctx context.Context, b *domain.Building) error {
	anchor, geom, err := encodeShape(b.Anchor, b.Geometry)
	if err != nil {
		return err
	}
	_, err = r.db.Pool.Exec(ctx, `
		INSERT INTO buildings (id, venue_id, name, anchor, geometry)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET venue_id = EXCLUDED.venue_id, name = EXCLUDED.name,
		    anchor = EXCLUDED.anchor, geometry = EXCLUDED.geometry,
		    updated_at = now()
	`, b.ID, b.VenueID, b.Name, anchor, geom)
	return err
}

func scanVenue(row pgx.Row) (*domain.Venue, error) {
	var (
		v                  domain.Venue
		anchorRaw, geomRaw []byte
	)
	if err := row.Scan(&v.ID, &v.Name, &anchorRaw, &geomRaw); err != nil {
		return nil, err
	}
	if err := decodeShape(anchorRaw, geomRaw, &v.Anchor, &v.Geometry); err != nil {
		return nil, fmt.Errorf("venue %s: %w", v.ID, err)
	}
	return &v, nil
}

func decodeShape(anchorRaw, geomRaw []byte, anchor *domain.Point, geom *domain.Polygon) error {
	if err := json.Unmarshal(anchorRaw, anchor); err != nil {
		return fmt.Errorf("decode anchor: %w", err)
	}
	if len(geomRaw) > 0 {
		if err := json.Unmarshal(geomRaw, geom); err != nil {
			return fmt.Errorf("decode geometry: %w", err)
		}
	}
	return nil
}

func encodeShape(anchor domain.Point, geom domain.Polygon) ([]byte, []byte, error) {
	a, err := json.Marshal(anchor)
	if err != nil {
		return nil, nil, fmt.Errorf("encode anchor: %w", err)
	}
	g, err := json.Marshal(geom)
	if err != nil {
		return nil, nil, fmt.Errorf("encode geometry: %w", err)
	}
	return a, g, nil
}
