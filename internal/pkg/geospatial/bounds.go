package geospatial

import "github.com/samirrijal/venuehub/internal/core/domain"

// ComputeBoundingBox folds every [x, y] vertex of every ring into an
// axis-aligned box. An empty ring set yields domain.EmptyBoundingBox().
func ComputeBoundingBox(rings [][][2]float64) domain.BoundingBox {
	b := domain.EmptyBoundingBox()
	for _, ring := range rings {
		for _, c := range ring {
			if c[0] >= b.East {
				b.East = c[0]
			}
			if c[0] <= b.West {
				b.West = c[0]
			}
			if c[1] >= b.North {
				b.North = c[1]
			}
			if c[1] <= b.South {
				b.South = c[1]
			}
		}
	}
	return b
}

// ReverseCoordinates swaps a 2-element position, turning [lon, lat] into
// [lat, lon]. ok is false when p does not hold exactly two values.
func ReverseCoordinates(p []float64) (r []float64, ok bool) {
	if len(p) != 2 {
		return nil, false
	}
	return []float64{p[1], p[0]}, true
}
