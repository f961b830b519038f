package service

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"hopeplates/internal/domain"
)

// MaxSuggestions is how many ranked NGOs become Suggested matches.
const MaxSuggestions = 3

const reliabilityWeight = 0.5

// Candidate is one NGO scored against a donation.
type Candidate struct {
	NGO                *domain.NGO
	Distance           float64 // km, rounded to 2 decimals
	ReliabilityScore   int
	CompatibilityScore int
}

// MatchingService ranks NGOs for a donation.
type MatchingService struct {
	now func() time.Time
}

// NewMatchingService creates a new MatchingService.
func NewMatchingService() *MatchingService {
	return &MatchingService{now: time.Now}
}

// DistanceScore returns the proximity component of the compatibility score.
func DistanceScore(distanceKm float64) float64 {
	switch {
	case distanceKm <= 5:
		return 50
	case distanceKm <= 10:
		return 35
	case distanceKm <= 20:
		return 20
	default:
		return 5
	}
}

// CompatibilityScore combines proximity and reliability into one integer.
func CompatibilityScore(distanceKm float64, reliability int) int {
	return int(math.Round(DistanceScore(distanceKm) + float64(reliability)*reliabilityWeight))
}

// Rank scores every active NGO with coordinates against donor and returns
// them by descending compatibility. Ties keep the order of ngos.
// A donor without coordinates yields no candidates.
func (s *MatchingService) Rank(donor *domain.Donor, ngos []*domain.NGO, history []*domain.Match) []Candidate {
	origin, ok := donor.Coordinate()
	if !ok {
		return []Candidate{}
	}

	candidates := make([]Candidate, 0, len(ngos))
	for _, ngo := range ngos {
		if !ngo.IsActive {
			continue
		}
		point, ok := ngo.Coordinate()
		if !ok {
			continue
		}

		distance := Haversine(origin, point)
		reliability := ReliabilityScore(ngo.ID, history)

		candidates = append(candidates, Candidate{
			NGO:                ngo,
			Distance:           roundTo(distance, 2),
			ReliabilityScore:   reliability,
			CompatibilityScore: CompatibilityScore(distance, reliability),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].CompatibilityScore > candidates[j].CompatibilityScore
	})

	return candidates
}

// Suggest ranks NGOs for donor and materializes the top MaxSuggestions as
// new Suggested matches. The returned slices are parallel.
func (s *MatchingService) Suggest(donor *domain.Donor, ngos []*domain.NGO, history []*domain.Match) ([]Candidate, []*domain.Match) {
	ranked := s.Rank(donor, ngos, history)
	if len(ranked) > MaxSuggestions {
		ranked = ranked[:MaxSuggestions]
	}

	now := s.now()
	matches := make([]*domain.Match, 0, len(ranked))
	for _, c := range ranked {
		matches = append(matches, &domain.Match{
			ID:                 uuid.New().String(),
			DonorID:            donor.ID,
			NGOID:              c.NGO.ID,
			Distance:           c.Distance,
			CompatibilityScore: c.CompatibilityScore,
			Status:             domain.MatchStatusSuggested,
			CreatedAt:          now,
		})
	}

	return ranked, matches
}
