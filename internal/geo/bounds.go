package geo

import "github.com/mekedron/logtrip/internal/domain"

// Bounds represents the coordinate boundaries of a set of positions.
type Bounds struct {
	MinLat float64 `json:"min_latitude" yaml:"min_latitude"`
	MinLon float64 `json:"min_longitude" yaml:"min_longitude"`
	MaxLat float64 `json:"max_latitude" yaml:"max_latitude"`
	MaxLon float64 `json:"max_longitude" yaml:"max_longitude"`

	set bool
}

// Extend grows the boundaries to include p.
func (b Bounds) Extend(p domain.Position) Bounds {
	if !b.set {
		return Bounds{MinLat: p.Lat, MinLon: p.Lon, MaxLat: p.Lat, MaxLon: p.Lon, set: true}
	}
	if p.Lat < b.MinLat {
		b.MinLat = p.Lat
	}
	if p.Lat > b.MaxLat {
		b.MaxLat = p.Lat
	}
	if p.Lon < b.MinLon {
		b.MinLon = p.Lon
	}
	if p.Lon > b.MaxLon {
		b.MaxLon = p.Lon
	}
	return b
}

// Empty reports whether no position was added.
func (b Bounds) Empty() bool {
	return !b.set
}

// Centre returns the midpoint of the box. It does not account for boxes
// crossing the antimeridian.
func (b Bounds) Centre() domain.Position {
	return domain.Position{
		Lat: b.MinLat + (b.MaxLat-b.MinLat)/2,
		Lon: b.MinLon + (b.MaxLon-b.MinLon)/2,
	}
}
