package geospatial

import (
	"testing"

	"github.com/samirrijal/venuehub/internal/core/domain"
)

func TestComputeBoundingBox_Square(t *testing.T) {
	rings := [][][2]float64{{{10, 50}, {15, 50}, {15, 55}, {10, 55}}}

	got := ComputeBoundingBox(rings)
	want := domain.BoundingBox{East: 15, West: 10, North: 55, South: 50}
	if got != want {
		t.Fatalf("ComputeBoundingBox() = %+v, want %+v", got, want)
	}
}

func TestComputeBoundingBox_Empty(t *testing.T) {
	got := ComputeBoundingBox(nil)
	want := domain.BoundingBox{East: -180, West: 180, North: -90, South: 90}
	if got != want {
		t.Fatalf("ComputeBoundingBox(nil) = %+v, want sentinel %+v", got, want)
	}
	if !got.IsEmpty() {
		t.Error("sentinel box should report IsEmpty")
	}

	if got := ComputeBoundingBox([][][2]float64{{}}); got != want {
		t.Errorf("ring without vertices should keep the sentinel, got %+v", got)
	}
}

func TestComputeBoundingBox_EnclosesAllVertices(t *testing.T) {
	rings := [][][2]float64{
		{{-2.94, 43.26}, {-2.93, 43.27}, {-2.92, 43.25}},
		{{-2.935, 43.262}, {-2.931, 43.268}}, // hole
		{{12.5, -33.1}, {-179.9, 89.9}},
	}

	b := ComputeBoundingBox(rings)
	for _, ring := range rings {
		for _, c := range ring {
			if c[0] > b.East || c[0] < b.West || c[1] > b.North || c[1] < b.South {
				t.Errorf("vertex %v outside box %+v", c, b)
			}
		}
	}
	if b.West != -179.9 || b.North != 89.9 || b.East != 12.5 || b.South != -33.1 {
		t.Errorf("unexpected extents %+v", b)
	}
}

func TestComputeBoundingBox_SinglePoint(t *testing.T) {
	b := ComputeBoundingBox([][][2]float64{{{7, 8}}})
	if b.East != 7 || b.West != 7 || b.North != 8 || b.South != 8 {
		t.Fatalf("single vertex should collapse the box, got %+v", b)
	}
	if b.IsEmpty() {
		t.Error("degenerate point box is not empty")
	}
	if !b.Contains(7, 8) {
		t.Error("box should contain its only vertex")
	}
}

func TestReverseCoordinates(t *testing.T) {
	r, ok := ReverseCoordinates([]float64{12.34, 56.78})
	if !ok {
		t.Fatal("expected ok for 2-element position")
	}
	if r[0] != 56.78 || r[1] != 12.34 {
		t.Errorf("ReverseCoordinates() = %v, want [56.78 12.34]", r)
	}

	for _, p := range [][]float64{nil, {1}, {1, 2, 3}} {
		if _, ok := ReverseCoordinates(p); ok {
			t.Errorf("ReverseCoordinates(%v) should fail", p)
		}
	}
}
