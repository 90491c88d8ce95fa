package postgres

import (
	"testing"

	"github.com/samirrijal/venuehub/internal/core/domain"
)

func TestShapeRoundTrip(t *testing.T) {
	anchor := domain.Point{Type: "Point", Coordinates: []float64{-2.935, 43.263}}
	geom := domain.Polygon{Type: "Polygon", Coordinates: [][][2]float64{{{-2.94, 43.26}, {-2.93, 43.26}, {-2.93, 43.27}}}}

	a, g, err := encodeShape(anchor, geom)
	if err != nil {
		t.Fatalf("encodeShape: %v", err)
	}

	var gotAnchor domain.Point
	var gotGeom domain.Polygon
	if err := decodeShape(a, g, &gotAnchor, &gotGeom); err != nil {
		t.Fatalf("decodeShape: %v", err)
	}
	if gotAnchor.Coordinates[0] != -2.935 || gotAnchor.Coordinates[1] != 43.263 {
		t.Errorf("anchor = %v", gotAnchor.Coordinates)
	}
	if len(gotGeom.Coordinates) != 1 || len(gotGeom.Coordinates[0]) != 3 {
		t.Fatalf("geometry = %v", gotGeom.Coordinates)
	}
	if gotGeom.Coordinates[0][2] != [2]float64{-2.93, 43.27} {
		t.Errorf("vertex = %v", gotGeom.Coordinates[0][2])
	}
}

func TestDecodeShape_EmptyGeometry(t *testing.T) {
	var anchor domain.Point
	var geom domain.Polygon
	if err := decodeShape([]byte(`{"type":"Point","coordinates":[1,2]}`), nil, &anchor, &geom); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if geom.Coordinates != nil {
		t.Errorf("expected no rings, got %v", geom.Coordinates)
	}
}

func TestDecodeShape_BadAnchor(t *testing.T) {
	var anchor domain.Point
	var geom domain.Polygon
	if err := decodeShape([]byte(`not json`), nil, &anchor, &geom); err == nil {
		t.Fatal("expected error for malformed anchor")
	}
}
