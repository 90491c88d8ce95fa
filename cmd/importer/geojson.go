package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samirrijal/venuehub/internal/core/domain"
	"github.com/samirrijal/venuehub/internal/pkg/geospatial"
)

type featureCollection struct {
	Type     string    `json:"type"`
	Features []feature `json:"features"`
}

type feature struct {
	Type       string            `json:"type"`
	ID         json.RawMessage   `json:"id"`
	Geometry   domain.Polygon    `json:"geometry"`
	Properties featureProperties `json:"properties"`
}

type featureProperties struct {
	ID      string    `json:"id"`
	Kind    string    `json:"kind"` // "venue" | "building"
	Name    string    `json:"name"`
	VenueID string    `json:"venue_id"`
	Anchor  []float64 `json:"anchor"` // [lon, lat], optional
}

// parsed holds the venues and buildings found in one source.
type parsed struct {
	Venues    []domain.Venue
	Buildings []domain.Building
}

// parseFeatureCollection reads venues and buildings from a GeoJSON
// FeatureCollection. Features of any other kind are skipped. A missing anchor
// defaults to the centre of the feature's bounding box.
func parseFeatureCollection(data []byte) (*parsed, error) {
	var fc featureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("decode geojson: %w", err)
	}
	if fc.Type != "FeatureCollection" {
		return nil, fmt.Errorf("expected FeatureCollection, got %q", fc.Type)
	}

	out := &parsed{}
	for i, f := range fc.Features {
		if f.Geometry.Type != "Polygon" || len(f.Geometry.Coordinates) == 0 {
			return nil, fmt.Errorf("feature %d: polygon geometry required, got %q", i, f.Geometry.Type)
		}

		id := f.Properties.ID
		if id == "" {
			id = featureID(f.ID)
		}
		if id == "" {
			return nil, fmt.Errorf("feature %d: missing id", i)
		}

		anchor, err := anchorFor(f)
		if err != nil {
			return nil, fmt.Errorf("feature %s: %w", id, err)
		}

		switch strings.ToLower(f.Properties.Kind) {
		case "venue":
			out.Venues = append(out.Venues, domain.Venue{
				ID: id, Name: f.Properties.Name, Anchor: anchor, Geometry: f.Geometry,
			})
		case "building":
			if f.Properties.VenueID == "" {
				return nil, fmt.Errorf("building %s: venue_id required", id)
			}
			out.Buildings = append(out.Buildings, domain.Building{
				ID: id, VenueID: f.Properties.VenueID, Name: f.Properties.Name, Anchor: anchor, Geometry: f.Geometry,
			})
		}
	}
	return out, nil
}

func anchorFor(f feature) (domain.Point, error) {
	if a := f.Properties.Anchor; a != nil {
		if len(a) != 2 {
			return domain.Point{}, fmt.Errorf("anchor must be [lon, lat], got %d values", len(a))
		}
		return domain.Point{Type: "Point", Coordinates: []float64{a[0], a[1]}}, nil
	}
	c := geospatial.ComputeBoundingBox(f.Geometry.Coordinates).Center()
	return domain.Point{Type: "Point", Coordinates: []float64{c[1], c[0]}}, nil
}

// featureID accepts both string and numeric GeoJSON ids.
func featureID(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}
