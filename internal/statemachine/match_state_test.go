package statemachine

import (
	"errors"
	"testing"

	"hopeplates/internal/domain"
)

func TestNext_AllowedTransitions(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		from   domain.MatchStatus
		action Action
		want   domain.MatchStatus
	}{
		{domain.MatchStatusSuggested, ActionAccept, domain.MatchStatusAccepted},
		{domain.MatchStatusAccepted, ActionPickup, domain.MatchStatusPickedUp},
		{domain.MatchStatusPickedUp, ActionDeliver, domain.MatchStatusDelivered},
	}

	for _, tc := range testCases {
		got, err := Next(tc.from, tc.action)
		if err != nil {
			t.Fatalf("%s from %s: unexpected error: %v", tc.action, tc.from, err)
		}
		if got != tc.want {
			t.Errorf("%s from %s: expected %s, got %s", tc.action, tc.from, tc.want, got)
		}
	}
}

func TestNext_RejectsOutOfOrderActions(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		from   domain.MatchStatus
		action Action
	}{
		{"deliver suggested", domain.MatchStatusSuggested, ActionDeliver},
		{"pickup suggested", domain.MatchStatusSuggested, ActionPickup},
		{"accept twice", domain.MatchStatusAccepted, ActionAccept},
		{"deliver accepted", domain.MatchStatusAccepted, ActionDeliver},
		{"accept delivered", domain.MatchStatusDelivered, ActionAccept},
		{"deliver twice", domain.MatchStatusDelivered, ActionDeliver},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Next(tc.from, tc.action)
			if !errors.Is(err, ErrInvalidTransition) {
				t.Errorf("expected ErrInvalidTransition, got %v", err)
			}
		})
	}
}

func TestIsTerminal(t *testing.T) {
	t.Parallel()

	if !IsTerminal(domain.MatchStatusDelivered) {
		t.Error("delivered should be terminal")
	}
	if IsTerminal(domain.MatchStatusSuggested) {
		t.Error("suggested should not be terminal")
	}
}

func TestDonorStatusFor(t *testing.T) {
	t.Parallel()

	if _, ok := DonorStatusFor(domain.MatchStatusSuggested); ok {
		t.Error("suggested matches must not propagate to the donor")
	}
	got, ok := DonorStatusFor(domain.MatchStatusPickedUp)
	if !ok || got != domain.DonorStatusPickedUp {
		t.Errorf("expected %q, got %q", domain.DonorStatusPickedUp, got)
	}
}
