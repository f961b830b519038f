package tests

import (
	"context"
	"errors"
	"testing"

	"hopeplates/internal/domain"
	"hopeplates/internal/service"
	"hopeplates/internal/store"
)

// ──────────────────────────────────────────────
// 4. MATCH LIFECYCLE
// ──────────────────────────────────────────────

// lifecycleFixture seeds one donor, one NGO and one Suggested match.
func lifecycleFixture() (*MockStore, *MockNotifier, *service.MatchService) {
	st := NewMockStore()
	state := domain.NewState()
	state.Donors = append(state.Donors, newDonor("donor-1", 12.97, 77.59))
	state.NGOs = append(state.NGOs, newNGO("ngo-1", 12.98, 77.60))
	state.Matches = append(state.Matches, newMatch("match-1", "donor-1", "ngo-1", domain.MatchStatusSuggested))
	st.SetState(state)

	notifier := NewMockNotifier()
	matchService := service.NewMatchService(service.NewStateManager(st, nil, nil), notifier)
	return st, notifier, matchService
}

func TestLifecycle_FullHappyPath(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st, notifier, matchService := lifecycleFixture()

	match, err := matchService.AcceptMatch(ctx, "match-1")
	if err != nil {
		t.Fatalf("accept: unexpected error: %v", err)
	}
	if match.Status != domain.MatchStatusAccepted || match.AcceptedAt == nil {
		t.Errorf("expected Accepted with acceptedAt, got %s / %v", match.Status, match.AcceptedAt)
	}
	donor := st.State().FindDonor("donor-1")
	if donor.Status != domain.DonorStatusAccepted || donor.AcceptedBy != "ngo-1" {
		t.Errorf("expected donor Accepted by ngo-1, got %s / %q", donor.Status, donor.AcceptedBy)
	}

	match, err = matchService.PickupMatch(ctx, "match-1")
	if err != nil {
		t.Fatalf("pickup: unexpected error: %v", err)
	}
	if match.Status != domain.MatchStatusPickedUp || match.PickedUpAt == nil {
		t.Errorf("expected Picked Up with pickedUpAt, got %s / %v", match.Status, match.PickedUpAt)
	}
	if s := st.State().FindDonor("donor-1").Status; s != domain.DonorStatusPickedUp {
		t.Errorf("expected donor Picked Up, got %s", s)
	}

	match, err = matchService.DeliverMatch(ctx, service.DeliverMatchRequest{
		MatchID:       "match-1",
		RecipientName: "City Shelter",
		PeopleServed:  ptr(25),
	})
	if err != nil {
		t.Fatalf("deliver: unexpected error: %v", err)
	}
	if match.Status != domain.MatchStatusDelivered || match.DeliveredAt == nil {
		t.Errorf("expected Delivered with deliveredAt, got %s / %v", match.Status, match.DeliveredAt)
	}
	if match.RecipientName != "City Shelter" || match.PeopleServed != 25 {
		t.Errorf("delivery details not recorded: %+v", match)
	}

	state := st.State()
	if s := state.FindDonor("donor-1").Status; s != domain.DonorStatusDelivered {
		t.Errorf("expected donor Delivered, got %s", s)
	}
	if n := state.FindNGO("ngo-1").TotalDeliveries; n != 1 {
		t.Errorf("expected totalDeliveries 1, got %d", n)
	}
	if state.Analytics.CompletedDeliveries != 1 {
		t.Errorf("expected completedDeliveries 1, got %d", state.Analytics.CompletedDeliveries)
	}
	if state.Analytics.TotalMealsServed != 25 {
		t.Errorf("expected totalMealsServed 25, got %d", state.Analytics.TotalMealsServed)
	}

	for _, typ := range []service.NotificationType{
		service.NotificationMatchAccepted,
		service.NotificationMatchPickedUp,
		service.NotificationMatchDelivered,
	} {
		if n := notifier.CountByType(typ); n != 1 {
			t.Errorf("expected one %s notification, got %d", typ, n)
		}
	}
}

func TestLifecycle_DeliveredOnTimeDefaultsToTrue(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tests := []struct {
		name     string
		onTime   *bool
		expected bool
	}{
		{"omitted", nil, true},
		{"explicit true", ptr(true), true},
		{"explicit false", ptr(false), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, _, matchService := lifecycleFixture()
			if _, err := matchService.AcceptMatch(ctx, "match-1"); err != nil {
				t.Fatal(err)
			}
			if _, err := matchService.PickupMatch(ctx, "match-1"); err != nil {
				t.Fatal(err)
			}
			if _, err := matchService.DeliverMatch(ctx, service.DeliverMatchRequest{
				MatchID:         "match-1",
				DeliveredOnTime: tt.onTime,
			}); err != nil {
				t.Fatal(err)
			}

			m := st.State().FindMatch("match-1")
			if m.DeliveredOnTime == nil || *m.DeliveredOnTime != tt.expected {
				t.Errorf("expected deliveredOnTime=%v, got %v", tt.expected, m.DeliveredOnTime)
			}
			if m.PeopleServed != 0 {
				t.Errorf("expected peopleServed 0 when omitted, got %d", m.PeopleServed)
			}
		})
	}
}

func TestLifecycle_UnknownMatchIsNotFoundAndNothingSaved(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st, notifier, matchService := lifecycleFixture()

	_, err := matchService.AcceptMatch(ctx, "does-not-exist")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if st.Saves() != 0 {
		t.Errorf("expected no save, got %d", st.Saves())
	}
	if len(notifier.Records()) != 0 {
		t.Errorf("expected no notifications, got %d", len(notifier.Records()))
	}
}

func TestLifecycle_EmptyMatchIDRejected(t *testing.T) {
	t.Parallel()
	_, _, matchService := lifecycleFixture()

	if _, err := matchService.PickupMatch(context.Background(), ""); !errors.Is(err, service.ErrInvalidMatchID) {
		t.Errorf("expected ErrInvalidMatchID, got %v", err)
	}
}

func TestLifecycle_OutOfOrderActionsRejected(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st, _, matchService := lifecycleFixture()

	if _, err := matchService.PickupMatch(ctx, "match-1"); !errors.Is(err, service.ErrInvalidTransition) {
		t.Errorf("pickup from Suggested: expected ErrInvalidTransition, got %v", err)
	}
	if _, err := matchService.DeliverMatch(ctx, service.DeliverMatchRequest{MatchID: "match-1"}); !errors.Is(err, service.ErrInvalidTransition) {
		t.Errorf("deliver from Suggested: expected ErrInvalidTransition, got %v", err)
	}
	if st.Saves() != 0 {
		t.Errorf("rejected transitions must not save, got %d saves", st.Saves())
	}

	if _, err := matchService.AcceptMatch(ctx, "match-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := matchService.AcceptMatch(ctx, "match-1"); !errors.Is(err, service.ErrInvalidTransition) {
		t.Errorf("second accept: expected ErrInvalidTransition, got %v", err)
	}

	state := st.State()
	if s := state.FindMatch("match-1").Status; s != domain.MatchStatusAccepted {
		t.Errorf("expected match to stay Accepted, got %s", s)
	}
	if n := state.FindNGO("ngo-1").TotalDeliveries; n != 0 {
		t.Errorf("expected no deliveries counted, got %d", n)
	}
}

func TestLifecycle_DeliveredIsTerminal(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st, _, matchService := lifecycleFixture()

	_, _ = matchService.AcceptMatch(ctx, "match-1")
	_, _ = matchService.PickupMatch(ctx, "match-1")
	if _, err := matchService.DeliverMatch(ctx, service.DeliverMatchRequest{MatchID: "match-1", PeopleServed: ptr(4)}); err != nil {
		t.Fatal(err)
	}

	_, err := matchService.DeliverMatch(ctx, service.DeliverMatchRequest{MatchID: "match-1", PeopleServed: ptr(4)})
	if !errors.Is(err, service.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition on repeated delivery, got %v", err)
	}

	state := st.State()
	if n := state.FindNGO("ngo-1").TotalDeliveries; n != 1 {
		t.Errorf("expected totalDeliveries to stay 1, got %d", n)
	}
	if state.Analytics.TotalMealsServed != 4 {
		t.Errorf("expected totalMealsServed to stay 4, got %d", state.Analytics.TotalMealsServed)
	}
}

func TestLifecycle_SecondNGOCannotClaimDonation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st, _, matchService := lifecycleFixture()

	state := st.State()
	state.NGOs = append(state.NGOs, newNGO("ngo-2", 12.99, 77.61))
	state.Matches = append(state.Matches, newMatch("match-2", "donor-1", "ngo-2", domain.MatchStatusSuggested))
	st.SetState(state)

	if _, err := matchService.AcceptMatch(ctx, "match-1"); err != nil {
		t.Fatal(err)
	}
	_, err := matchService.AcceptMatch(ctx, "match-2")
	if !errors.Is(err, service.ErrDonationAlreadyClaimed) {
		t.Fatalf("expected ErrDonationAlreadyClaimed, got %v", err)
	}

	state = st.State()
	if s := state.FindMatch("match-2").Status; s != domain.MatchStatusSuggested {
		t.Errorf("expected match-2 to stay Suggested, got %s", s)
	}
	if by := state.FindDonor("donor-1").AcceptedBy; by != "ngo-1" {
		t.Errorf("expected donor to stay claimed by ngo-1, got %s", by)
	}
}

func TestLifecycle_MissingDonorAndNGOAreSkipped(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	st := NewMockStore()
	state := domain.NewState()
	state.Matches = append(state.Matches, newMatch("orphan", "gone-donor", "gone-ngo", domain.MatchStatusSuggested))
	st.SetState(state)

	matchService := service.NewMatchService(service.NewStateManager(st, nil, nil), nil)

	if _, err := matchService.AcceptMatch(ctx, "orphan"); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if _, err := matchService.PickupMatch(ctx, "orphan"); err != nil {
		t.Fatalf("pickup: %v", err)
	}
	if _, err := matchService.DeliverMatch(ctx, service.DeliverMatchRequest{MatchID: "orphan", PeopleServed: ptr(7)}); err != nil {
		t.Fatalf("deliver: %v", err)
	}

	state = st.State()
	if s := state.FindMatch("orphan").Status; s != domain.MatchStatusDelivered {
		t.Errorf("expected Delivered, got %s", s)
	}
	if state.Analytics.CompletedDeliveries != 1 || state.Analytics.TotalMealsServed != 7 {
		t.Errorf("expected global counters to move, got %+v", state.Analytics)
	}
}

func TestLifecycle_NegativePeopleServedRejected(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st, _, matchService := lifecycleFixture()

	_, _ = matchService.AcceptMatch(ctx, "match-1")
	_, _ = matchService.PickupMatch(ctx, "match-1")
	saves := st.Saves()

	_, err := matchService.DeliverMatch(ctx, service.DeliverMatchRequest{MatchID: "match-1", PeopleServed: ptr(-3)})
	if !errors.Is(err, service.ErrInvalidPeopleServed) {
		t.Fatalf("expected ErrInvalidPeopleServed, got %v", err)
	}
	if st.Saves() != saves {
		t.Error("rejected delivery must not save")
	}
}

func TestLifecycle_SaveFailureSurfaces(t *testing.T) {
	t.Parallel()
	st, notifier, matchService := lifecycleFixture()
	st.SaveError = errors.New("disk full")

	if _, err := matchService.AcceptMatch(context.Background(), "match-1"); err == nil {
		t.Fatal("expected save error to surface")
	}
	if len(notifier.Records()) != 0 {
		t.Error("no notification should be sent when the save fails")
	}
}

func TestListNGOMatches_JoinsDonor(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st, _, matchService := lifecycleFixture()

	state := st.State()
	state.Matches = append(state.Matches,
		newMatch("match-orphan", "gone-donor", "ngo-1", domain.MatchStatusSuggested),
		newMatch("match-other", "donor-1", "ngo-2", domain.MatchStatusSuggested),
	)
	st.SetState(state)

	rows, err := matchService.ListNGOMatches(ctx, "ngo-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 matches for ngo-1, got %d", len(rows))
	}
	if rows[0].Donor == nil || rows[0].Donor.ID != "donor-1" {
		t.Errorf("expected donor-1 joined on first match, got %+v", rows[0].Donor)
	}
	if rows[1].Donor != nil {
		t.Errorf("expected nil donor for orphan match, got %+v", rows[1].Donor)
	}

	rows, err = matchService.ListNGOMatches(ctx, "unknown-ngo")
	if err != nil {
		t.Fatal(err)
	}
	if rows == nil || len(rows) != 0 {
		t.Errorf("expected empty list for unknown NGO, got %v", rows)
	}
}
