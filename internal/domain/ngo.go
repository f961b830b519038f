package domain

import "time"

const (
	DefaultServiceRadiusKm = 20.0
	DefaultCapacity        = 50
)

// NGO represents a recipient organization.
// Its reliability score is derived from match history on every read and is
// never stored here.
type NGO struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId,omitempty"`
	Name            string    `json:"name"`
	Email           string    `json:"email,omitempty"`
	ContactNumber   string    `json:"contactNumber,omitempty"`
	Location        string    `json:"location,omitempty"`
	Latitude        *float64  `json:"latitude,omitempty"`
	Longitude       *float64  `json:"longitude,omitempty"`
	ServiceRadius   float64   `json:"serviceRadius"` // km
	Capacity        int       `json:"capacity"`
	IsActive        bool      `json:"isActive"`
	TotalDeliveries int       `json:"totalDeliveries"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Coordinate returns the NGO's base location, if it has a usable one.
func (n *NGO) Coordinate() (Coordinate, bool) {
	return coordinateOf(n.Latitude, n.Longitude)
}
