package service

import (
	"context"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"hopeplates/internal/domain"
	"hopeplates/internal/redis"
)

const (
	zeroHungerFactor             = 0.8
	responsibleConsumptionFactor = 0.7
)

// SDGImpact maps totals onto the UN Sustainable Development Goals.
type SDGImpact struct {
	ZeroHunger             int `json:"zeroHunger"`
	ResponsibleConsumption int `json:"responsibleConsumption"`
	Partnerships           int `json:"partnerships"`
}

// Summary is a point-in-time analytics report.
type Summary struct {
	TotalDonors            int       `json:"totalDonors"`
	TotalNGOs              int       `json:"totalNGOs"`
	ActiveNGOs             int       `json:"activeNGOs"`
	CompletedDeliveries    int       `json:"completedDeliveries"`
	TotalMealsServed       int       `json:"totalMealsServed"`
	TotalFoodSaved         int       `json:"totalFoodSaved"`
	AverageResponseTime    string    `json:"averageResponseTime"`
	AverageResponseMinutes float64   `json:"averageResponseMinutes"`
	SDGImpact              SDGImpact `json:"sdgImpact"`
	GeneratedAt            time.Time `json:"generatedAt"`
}

// Aggregate scans the donor, NGO and match collections. It ignores the
// running counters stored in the document.
func Aggregate(state *domain.State, now time.Time) Summary {
	summary := Summary{
		TotalDonors: len(state.Donors),
		TotalNGOs:   len(state.NGOs),
		GeneratedAt: now,
	}

	for _, ngo := range state.NGOs {
		if ngo.IsActive {
			summary.ActiveNGOs++
		}
	}

	var responseTotal time.Duration
	var responded int
	for _, m := range state.Matches {
		if m.Status == domain.MatchStatusDelivered {
			summary.CompletedDeliveries++
			summary.TotalMealsServed += m.PeopleServed
		}
		if m.AcceptedAt != nil {
			responseTotal += m.AcceptedAt.Sub(m.CreatedAt)
			responded++
		}
	}

	for _, d := range state.Donors {
		summary.TotalFoodSaved += parseQuantity(d.Quantity)
	}

	summary.AverageResponseTime = "n/a"
	if responded > 0 {
		minutes := (responseTotal / time.Duration(responded)).Minutes()
		summary.AverageResponseMinutes = roundTo(minutes, 2)
		summary.AverageResponseTime = fmt.Sprintf("%d mins", int(math.Round(minutes)))
	}

	summary.SDGImpact = SDGImpact{
		ZeroHunger:             int(math.Round(float64(summary.TotalMealsServed) * zeroHungerFactor)),
		ResponsibleConsumption: int(math.Round(float64(summary.TotalFoodSaved) * responsibleConsumptionFactor)),
		Partnerships:           summary.TotalNGOs,
	}

	return summary
}

// parseQuantity reads the leading integer of a free-form quantity such as
// "12 kg". Anything without a leading integer counts as 0.
func parseQuantity(raw string) int {
	s := strings.TrimSpace(raw)

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

// AnalyticsService serves analytics summaries.
type AnalyticsService struct {
	state      *StateManager
	cacheStore redis.CacheStoreInterface
	now        func() time.Time
}

// NewAnalyticsService creates a new AnalyticsService. cacheStore may be nil.
func NewAnalyticsService(state *StateManager, cacheStore redis.CacheStoreInterface) *AnalyticsService {
	return &AnalyticsService{
		state:      state,
		cacheStore: cacheStore,
		now:        time.Now,
	}
}

// Summary returns the current analytics report. A cached report is served
// until the next state write invalidates it.
func (s *AnalyticsService) Summary(ctx context.Context) (*Summary, error) {
	if s.cacheStore != nil {
		var cached Summary
		hit, err := s.cacheStore.GetAnalytics(ctx, &cached)
		if err != nil {
			log.Printf("failed to read analytics cache: %v", err)
		} else if hit {
			return &cached, nil
		}
	}

	state, err := s.state.Read(ctx)
	if err != nil {
		return nil, err
	}

	summary := Aggregate(state, s.now())

	if s.cacheStore != nil {
		if err := s.cacheStore.SetAnalytics(ctx, summary); err != nil {
			log.Printf("failed to write analytics cache: %v", err)
		}
	}

	return &summary, nil
}
