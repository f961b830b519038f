package service

import (
	"math"

	"hopeplates/internal/domain"
)

const (
	completionWeight = 0.6
	onTimeWeight     = 0.4

	// newNGOReliability is the score of an NGO without any match history.
	newNGOReliability = 100
)

// ReliabilityScore derives an NGO's 0-100 trust score from the full match
// history. It is recomputed on every call and never stored.
func ReliabilityScore(ngoID string, matches []*domain.Match) int {
	var total, engaged, completed, onTime int

	for _, m := range matches {
		if m.NGOID != ngoID {
			continue
		}
		total++
		if m.Status != domain.MatchStatusSuggested {
			engaged++
		}
		if m.Status == domain.MatchStatusDelivered {
			completed++
			if m.OnTime() {
				onTime++
			}
		}
	}

	if total == 0 {
		return newNGOReliability
	}

	completionRate := 100.0
	if engaged > 0 {
		completionRate = float64(completed) / float64(engaged) * 100
	}

	onTimeRate := 100.0
	if completed > 0 {
		onTimeRate = float64(onTime) / float64(completed) * 100
	}

	return int(math.Round(completionRate*completionWeight + onTimeRate*onTimeWeight))
}
