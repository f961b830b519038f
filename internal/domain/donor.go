package domain

import "time"

// DonorStatus represents where a donation is in its pickup lifecycle.
type DonorStatus string

const (
	DonorStatusAvailable DonorStatus = "Available"
	DonorStatusAccepted  DonorStatus = "Accepted"
	DonorStatusPickedUp  DonorStatus = "Picked Up"
	DonorStatusDelivered DonorStatus = "Delivered"
)

var donorStatusRank = map[DonorStatus]int{
	DonorStatusAvailable: 0,
	DonorStatusAccepted:  1,
	DonorStatusPickedUp:  2,
	DonorStatusDelivered: 3,
}

// Advances reports whether moving from s to next keeps the status monotonic.
func (s DonorStatus) Advances(next DonorStatus) bool {
	return donorStatusRank[next] > donorStatusRank[s]
}

// Donor represents a surplus food donation and the party offering it.
type Donor struct {
	ID            string      `json:"id"`
	Name          string      `json:"name,omitempty"`
	ContactNumber string      `json:"contactNumber,omitempty"`
	Email         string      `json:"email,omitempty"`
	FoodType      string      `json:"foodType,omitempty"`
	Quantity      string      `json:"quantity,omitempty"` // free-form, e.g. "10" or "10 kg"
	Location      string      `json:"location,omitempty"`
	Latitude      *float64    `json:"latitude,omitempty"`
	Longitude     *float64    `json:"longitude,omitempty"`
	ExpiryTime    string      `json:"expiryTime,omitempty"`
	Status        DonorStatus `json:"status"`
	AcceptedBy    string      `json:"acceptedBy,omitempty"` // NGO ID
	CreatedAt     time.Time   `json:"createdAt"`
}

// Coordinate returns the donor's pickup point, if it has a usable one.
func (d *Donor) Coordinate() (Coordinate, bool) {
	return coordinateOf(d.Latitude, d.Longitude)
}
