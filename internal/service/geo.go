package service

import (
	"math"

	"hopeplates/internal/domain"
)

const earthRadiusKm = 6371.0

// Haversine returns the great-circle distance between a and b in kilometers.
// Inputs are not validated.
func Haversine(a, b domain.Coordinate) float64 {
	dLat := toRadians(b.Lat - a.Lat)
	dLng := toRadians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(a.Lat))*math.Cos(toRadians(b.Lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// roundTo rounds v to the given number of decimal places.
func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func isValidLatitude(lat float64) bool {
	return lat >= -90 && lat <= 90
}

func isValidLongitude(lng float64) bool {
	return lng >= -180 && lng <= 180
}

// validOptionalCoordinate checks a lat/lng pair that may be absent.
// Both or neither must be set.
func validOptionalCoordinate(lat, lng *float64) error {
	if lat == nil && lng == nil {
		return nil
	}
	if lat == nil || lng == nil {
		return ErrInvalidLocation
	}
	if math.IsNaN(*lat) || math.IsNaN(*lng) || !isValidLatitude(*lat) || !isValidLongitude(*lng) {
		return ErrInvalidLocation
	}
	return nil
}
