package domain

import "time"

// MatchStatus represents the current status of a donor-to-NGO match.
type MatchStatus string

const (
	MatchStatusSuggested MatchStatus = "Suggested"
	MatchStatusAccepted  MatchStatus = "Accepted"
	MatchStatusPickedUp  MatchStatus = "Picked Up"
	MatchStatusDelivered MatchStatus = "Delivered"
)

// Match links one donation to one NGO.
// Distance and CompatibilityScore are fixed when the match is suggested.
type Match struct {
	ID                 string      `json:"id"`
	DonorID            string      `json:"donorId"`
	NGOID              string      `json:"ngoId"`
	Distance           float64     `json:"distance"` // km, 2 decimals
	CompatibilityScore int         `json:"compatibilityScore"`
	Status             MatchStatus `json:"status"`
	CreatedAt          time.Time   `json:"createdAt"`
	AcceptedAt         *time.Time  `json:"acceptedAt,omitempty"`
	PickedUpAt         *time.Time  `json:"pickedUpAt,omitempty"`
	DeliveredAt        *time.Time  `json:"deliveredAt,omitempty"`
	DeliveredOnTime    *bool       `json:"deliveredOnTime,omitempty"`
	RecipientName      string      `json:"recipientName,omitempty"`
	PeopleServed       int         `json:"peopleServed,omitempty"`
}

// OnTime reports whether a delivered match was recorded as on time.
func (m *Match) OnTime() bool {
	return m.DeliveredOnTime != nil && *m.DeliveredOnTime
}
