package service

import (
	"context"
	"time"

	"hopeplates/internal/domain"
	"hopeplates/internal/statemachine"
	"hopeplates/internal/store"
)

// MatchService drives matches through the pickup/delivery lifecycle.
type MatchService struct {
	state    *StateManager
	notifier Notifier
	now      func() time.Time
}

// NewMatchService creates a new MatchService. notifier may be nil.
func NewMatchService(state *StateManager, notifier Notifier) *MatchService {
	return &MatchService{
		state:    state,
		notifier: notifier,
		now:      time.Now,
	}
}

// AcceptMatch moves a Suggested match to Accepted and claims the donation
// for the match's NGO.
func (s *MatchService) AcceptMatch(ctx context.Context, matchID string) (*domain.Match, error) {
	match, err := s.transition(ctx, matchID, statemachine.ActionAccept, func(state *domain.State, match *domain.Match, now time.Time) {
		match.AcceptedAt = &now
		if donor := state.FindDonor(match.DonorID); donor != nil {
			donor.AcceptedBy = match.NGOID
		}
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		_ = s.notifier.NotifyMatchAccepted(ctx, match)
	}
	return match, nil
}

// PickupMatch moves an Accepted match to Picked Up.
func (s *MatchService) PickupMatch(ctx context.Context, matchID string) (*domain.Match, error) {
	match, err := s.transition(ctx, matchID, statemachine.ActionPickup, func(_ *domain.State, match *domain.Match, now time.Time) {
		match.PickedUpAt = &now
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		_ = s.notifier.NotifyMatchPickedUp(ctx, match)
	}
	return match, nil
}

// DeliverMatchRequest contains the delivery details reported by the NGO.
type DeliverMatchRequest struct {
	MatchID         string
	DeliveredOnTime *bool // Optional: defaults to true
	RecipientName   string
	PeopleServed    *int // Optional: counts as 0
}

// DeliverMatch completes a Picked Up match and updates the NGO's delivery
// counter and the global totals.
func (s *MatchService) DeliverMatch(ctx context.Context, req DeliverMatchRequest) (*domain.Match, error) {
	peopleServed := 0
	if req.PeopleServed != nil {
		peopleServed = *req.PeopleServed
	}
	if peopleServed < 0 {
		return nil, ErrInvalidPeopleServed
	}

	onTime := req.DeliveredOnTime == nil || *req.DeliveredOnTime

	match, err := s.transition(ctx, req.MatchID, statemachine.ActionDeliver, func(state *domain.State, match *domain.Match, now time.Time) {
		match.DeliveredAt = &now
		match.DeliveredOnTime = &onTime
		match.RecipientName = req.RecipientName
		match.PeopleServed = peopleServed

		if ngo := state.FindNGO(match.NGOID); ngo != nil {
			ngo.TotalDeliveries++
		}

		state.Analytics.CompletedDeliveries++
		state.Analytics.TotalMealsServed += peopleServed
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		_ = s.notifier.NotifyMatchDelivered(ctx, match)
	}
	return match, nil
}

// transition applies action to the match inside one state update.
// Nothing is saved when the match is missing or the action is out of order.
// A missing donor or NGO only skips its propagation step.
func (s *MatchService) transition(
	ctx context.Context,
	matchID string,
	action statemachine.Action,
	apply func(state *domain.State, match *domain.Match, now time.Time),
) (*domain.Match, error) {
	if matchID == "" {
		return nil, ErrInvalidMatchID
	}

	var result *domain.Match
	err := s.state.Update(ctx, func(state *domain.State) error {
		match := state.FindMatch(matchID)
		if match == nil {
			return store.ErrNotFound
		}

		next, err := statemachine.Next(match.Status, action)
		if err != nil {
			return err
		}

		donor := state.FindDonor(match.DonorID)
		if action == statemachine.ActionAccept && donor != nil && donor.Status != domain.DonorStatusAvailable {
			return ErrDonationAlreadyClaimed
		}

		match.Status = next
		apply(state, match, s.now())

		if donor != nil {
			if donorStatus, ok := statemachine.DonorStatusFor(next); ok && donor.Status.Advances(donorStatus) {
				donor.Status = donorStatus
			}
		}

		result = match
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// ListMatches retrieves all matches.
func (s *MatchService) ListMatches(ctx context.Context) ([]*domain.Match, error) {
	state, err := s.state.Read(ctx)
	if err != nil {
		return nil, err
	}
	return state.Matches, nil
}

// MatchWithDonor is a match joined with its donor. Donor is nil if the donor
// record no longer exists.
type MatchWithDonor struct {
	Match *domain.Match
	Donor *domain.Donor
}

// ListNGOMatches retrieves an NGO's matches joined with donor details.
// An unknown NGO simply has no matches.
func (s *MatchService) ListNGOMatches(ctx context.Context, ngoID string) ([]MatchWithDonor, error) {
	if ngoID == "" {
		return nil, ErrInvalidNGOID
	}

	state, err := s.state.Read(ctx)
	if err != nil {
		return nil, err
	}

	matches := state.MatchesForNGO(ngoID)
	result := make([]MatchWithDonor, 0, len(matches))
	for _, m := range matches {
		result = append(result, MatchWithDonor{
			Match: m,
			Donor: state.FindDonor(m.DonorID),
		})
	}
	return result, nil
}
