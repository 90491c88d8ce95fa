package domain

// BoundingBox is an axis-aligned rectangle enclosing a polygon's vertices.
type BoundingBox struct {
	East  float64 `json:"east"`
	West  float64 `json:"west"`
	North float64 `json:"north"`
	South float64 `json:"south"`
}

// EmptyBoundingBox returns the inverted sentinel box. Any real coordinate
// displaces every field.
func EmptyBoundingBox() BoundingBox {
	return BoundingBox{East: -180, West: 180, North: -90, South: 90}
}

// IsEmpty reports whether b is still inverted, i.e. no coordinate was folded in.
func (b BoundingBox) IsEmpty() bool {
	return b.West > b.East || b.South > b.North
}

// Contains reports whether (lon, lat) lies inside b, edges included.
func (b BoundingBox) Contains(lon, lat float64) bool {
	if b.IsEmpty() {
		return false
	}
	return lon >= b.West && lon <= b.East && lat >= b.South && lat <= b.North
}

// Center returns the midpoint as [lat, lon].
func (b BoundingBox) Center() [2]float64 {
	return [2]float64{(b.North + b.South) / 2, (b.East + b.West) / 2}
}
