package domain

import "math"

// Coordinate is a point in decimal degrees.
type Coordinate struct {
	Lat float64
	Lng float64
}

// coordinateOf returns the coordinate for an optional lat/lng pair.
// ok is false when either component is missing or NaN.
func coordinateOf(lat, lng *float64) (Coordinate, bool) {
	if lat == nil || lng == nil {
		return Coordinate{}, false
	}
	if math.IsNaN(*lat) || math.IsNaN(*lng) {
		return Coordinate{}, false
	}
	return Coordinate{Lat: *lat, Lng: *lng}, true
}
