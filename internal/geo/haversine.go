// Package geo implements spherical-earth distances between positions.
package geo

import (
	"fmt"
	"math"
	"strings"

	"github.com/golang/geo/s1"

	"github.com/mekedron/logtrip/internal/domain"
)

// EarthRadiusKm is the mean Earth radius (IUGG) in kilometres.
const EarthRadiusKm = 6371.0088

// Unit is a length unit for reported distances.
type Unit string

const (
	Kilometers    Unit = "km"
	Meters        Unit = "m"
	Miles         Unit = "mi"
	NauticalMiles Unit = "nmi"
	Feet          Unit = "ft"
)

var perKilometer = map[Unit]float64{
	Kilometers:    1.0,
	Meters:        1000.0,
	Miles:         0.621371192,
	NauticalMiles: 0.539956803,
	Feet:          3280.839895013,
}

// ParseUnit validates unit values. Empty input selects kilometres.
func ParseUnit(v string) (Unit, error) {
	u := Unit(strings.ToLower(strings.TrimSpace(v)))
	if u == "" {
		return Kilometers, nil
	}
	if _, ok := perKilometer[u]; !ok {
		return "", fmt.Errorf("unsupported unit %q", v)
	}
	return u, nil
}

// Radius returns the mean Earth radius expressed in u.
func (u Unit) Radius() float64 {
	factor, ok := perKilometer[u]
	if !ok {
		factor = 1.0
	}
	return EarthRadiusKm * factor
}

// Distance returns the great-circle distance between a and b in unit u,
// computed with the haversine formula.
func Distance(a, b domain.Position, u Unit) float64 {
	return u.Radius() * CentralAngle(a, b).Radians()
}

// CentralAngle returns the angle subtended at the centre of the sphere by a
// and b.
func CentralAngle(a, b domain.Position) s1.Angle {
	lat1 := radians(a.Lat)
	lon1 := radians(a.Lon)
	lat2 := radians(b.Lat)
	lon2 := radians(b.Lon)

	dLat := lat2 - lat1
	dLon := lon2 - lon1

	sinLat := math.Sin(dLat * 0.5)
	sinLon := math.Sin(dLon * 0.5)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon

	return s1.Angle(2 * math.Asin(math.Sqrt(h)))
}

func radians(deg float64) float64 {
	return (s1.Angle(deg) * s1.Degree).Radians()
}

// Valid reports whether p lies within [-90, 90] latitude and [-180, 180]
// longitude.
func Valid(p domain.Position) bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}
