package domain

// Point is a GeoJSON-style position. Anchors arrive in SDK-native order
// (x=longitude, y=latitude).
type Point struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// Polygon holds an ordered list of rings, each an ordered list of [x, y] pairs.
type Polygon struct {
	Type        string         `json:"type"`
	Coordinates [][][2]float64 `json:"coordinates"`
}

// Venue represents a named, geographically bounded area (building, campus).
type Venue struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Anchor   Point   `json:"anchor"`
	Geometry Polygon `json:"geometry"`

	// Derived fields, attached by the venue service.
	Center      []float64    `json:"center,omitempty"` // [lat, lon]
	Image       string       `json:"image,omitempty"`
	BoundingBox *BoundingBox `json:"bounding_box,omitempty"`
	OnlyVenue   bool         `json:"only_venue"`
}

// Clone returns a copy whose slices can be mutated without touching v.
func (v *Venue) Clone() *Venue {
	c := *v
	c.Anchor.Coordinates = append([]float64(nil), v.Anchor.Coordinates...)
	if v.Geometry.Coordinates != nil {
		c.Geometry.Coordinates = make([][][2]float64, len(v.Geometry.Coordinates))
		for i, ring := range v.Geometry.Coordinates {
			c.Geometry.Coordinates[i] = append([][2]float64(nil), ring...)
		}
	}
	if v.Center != nil {
		c.Center = append([]float64(nil), v.Center...)
	}
	if v.BoundingBox != nil {
		bb := *v.BoundingBox
		c.BoundingBox = &bb
	}
	return &c
}

// Building is a structure inside a venue.
type Building struct {
	ID       string  `json:"id"`
	VenueID  string  `json:"venue_id"`
	Name     string  `json:"name"`
	Anchor   Point   `json:"anchor"`
	Geometry Polygon `json:"geometry"`
}
