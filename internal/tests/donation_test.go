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
// 5. DONATION SUBMISSION
// ──────────────────────────────────────────────

func newDonationService(st *MockStore, notifier service.Notifier) *service.DonationService {
	return service.NewDonationService(service.NewStateManager(st, nil, nil), service.NewMatchingService(), notifier)
}

func TestCreateDonation_SuggestsNearbyNGO(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	st := NewMockStore()
	state := domain.NewState()
	state.NGOs = append(state.NGOs, newNGO("ngo-1", 12.98, 77.60))
	st.SetState(state)

	notifier := NewMockNotifier()
	donations := newDonationService(st, notifier)

	res, err := donations.CreateDonation(ctx, service.CreateDonationRequest{
		Name:      "Green Bistro",
		FoodType:  "Cooked Meals",
		Quantity:  "10",
		Latitude:  ptr(12.97),
		Longitude: ptr(77.59),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Donor.Status != domain.DonorStatusAvailable {
		t.Errorf("expected Available donor, got %s", res.Donor.Status)
	}
	if len(res.Suggestions) != 1 || len(res.Matches) != 1 {
		t.Fatalf("expected one suggestion and one match, got %d / %d", len(res.Suggestions), len(res.Matches))
	}

	s := res.Suggestions[0]
	if s.NGOID != "ngo-1" || s.Name != "NGO ngo-1" || s.Reliability != 100 || s.CompatibilityScore != 100 {
		t.Errorf("unexpected suggestion: %+v", s)
	}

	stored := st.State()
	if len(stored.Donors) != 1 || len(stored.Matches) != 1 {
		t.Fatalf("expected donor and match persisted, got %d / %d", len(stored.Donors), len(stored.Matches))
	}
	if stored.Matches[0].Status != domain.MatchStatusSuggested || stored.Matches[0].DonorID != res.Donor.ID {
		t.Errorf("unexpected stored match: %+v", stored.Matches[0])
	}
	if notifier.CountByType(service.NotificationMatchSuggested) != 1 {
		t.Errorf("expected one suggestion notification, got %d", notifier.CountByType(service.NotificationMatchSuggested))
	}
}

func TestCreateDonation_WithoutCoordinatesCreatesNoMatches(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	st := NewMockStore()
	state := domain.NewState()
	state.NGOs = append(state.NGOs, newNGO("ngo-1", 12.98, 77.60))
	st.SetState(state)

	res, err := newDonationService(st, nil).CreateDonation(ctx, service.CreateDonationRequest{
		Name:     "Anonymous",
		Quantity: "5 kg",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.Suggestions) != 0 || len(res.Matches) != 0 {
		t.Errorf("expected no suggestions, got %d / %d", len(res.Suggestions), len(res.Matches))
	}

	stored := st.State()
	if len(stored.Donors) != 1 {
		t.Errorf("expected the donor to be persisted, got %d", len(stored.Donors))
	}
	if len(stored.Matches) != 0 {
		t.Errorf("expected no matches persisted, got %d", len(stored.Matches))
	}
}

func TestCreateDonation_NoEligibleNGOs(t *testing.T) {
	t.Parallel()

	st := NewMockStore()
	state := domain.NewState()
	inactive := newNGO("ngo-1", 12.98, 77.60)
	inactive.IsActive = false
	state.NGOs = append(state.NGOs, inactive)
	st.SetState(state)

	res, err := newDonationService(st, nil).CreateDonation(context.Background(), service.CreateDonationRequest{
		Latitude:  ptr(12.97),
		Longitude: ptr(77.59),
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Suggestions) != 0 {
		t.Errorf("expected empty suggestions, got %d", len(res.Suggestions))
	}
	if st.Saves() != 1 {
		t.Errorf("expected the donor to be saved once, got %d saves", st.Saves())
	}
}

func TestCreateDonation_InvalidCoordinates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		lat, lng *float64
	}{
		{"latitude only", ptr(12.97), nil},
		{"longitude only", nil, ptr(77.59)},
		{"latitude out of range", ptr(91.0), ptr(0.0)},
		{"longitude out of range", ptr(0.0), ptr(-181.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := NewMockStore()
			_, err := newDonationService(st, nil).CreateDonation(context.Background(), service.CreateDonationRequest{
				Latitude:  tt.lat,
				Longitude: tt.lng,
			})
			if !errors.Is(err, service.ErrInvalidLocation) {
				t.Errorf("expected ErrInvalidLocation, got %v", err)
			}
			if st.Saves() != 0 {
				t.Error("invalid donation must not be saved")
			}
		})
	}
}

func TestCreateDonation_SkipsHistoryOfOtherDonations(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	st := NewMockStore()
	state := domain.NewState()
	state.NGOs = append(state.NGOs, newNGO("ngo-1", 12.98, 77.60))
	state.Matches = append(state.Matches,
		newMatch("h1", "old", "ngo-1", domain.MatchStatusAccepted),
		newMatch("h2", "old", "ngo-1", domain.MatchStatusAccepted),
	)
	st.SetState(state)

	res, err := newDonationService(st, nil).CreateDonation(ctx, service.CreateDonationRequest{
		Latitude:  ptr(12.97),
		Longitude: ptr(77.59),
	})
	if err != nil {
		t.Fatal(err)
	}

	// Two abandoned acceptances: reliability 40, compatibility 50 + 20.
	if got := res.Suggestions[0].Reliability; got != 40 {
		t.Errorf("expected reliability 40, got %d", got)
	}
	if got := res.Suggestions[0].CompatibilityScore; got != 70 {
		t.Errorf("expected compatibility 70, got %d", got)
	}
}

func TestDonor_GetAndUpdate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	st := NewMockStore()
	state := domain.NewState()
	donor := newDonor("donor-1", 12.97, 77.59)
	donor.Status = domain.DonorStatusAccepted
	donor.AcceptedBy = "ngo-1"
	state.Donors = append(state.Donors, donor)
	st.SetState(state)

	donations := newDonationService(st, nil)

	if _, err := donations.GetDonor(ctx, "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	updated, err := donations.UpdateDonor(ctx, service.UpdateDonorRequest{
		DonorID:  "donor-1",
		Quantity: ptr("20 kg"),
		Latitude: ptr(0.0),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Quantity != "20 kg" || *updated.Latitude != 0 || *updated.Longitude != 77.59 {
		t.Errorf("patch not merged: %+v", updated)
	}
	if updated.Status != domain.DonorStatusAccepted || updated.AcceptedBy != "ngo-1" {
		t.Errorf("lifecycle fields must be untouched, got %s / %s", updated.Status, updated.AcceptedBy)
	}

	got, err := donations.GetDonor(ctx, "donor-1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Quantity != "20 kg" {
		t.Errorf("expected persisted quantity, got %q", got.Quantity)
	}

	if _, err := donations.UpdateDonor(ctx, service.UpdateDonorRequest{DonorID: "missing"}); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound on update, got %v", err)
	}
}

// ──────────────────────────────────────────────
// 6. NGO DIRECTORY
// ──────────────────────────────────────────────

func TestNGOs_ReliabilityComputedOnRead(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	st := NewMockStore()
	state := domain.NewState()
	state.NGOs = append(state.NGOs, newNGO("ngo-1", 12.98, 77.60), newNGO("ngo-2", 13.0, 77.6))
	state.Matches = append(state.Matches,
		delivered("m1", "ngo-1", true, 10),
		delivered("m2", "ngo-1", true, 10),
		delivered("m3", "ngo-1", false, 10),
		newMatch("m4", "d4", "ngo-1", domain.MatchStatusAccepted),
	)
	st.SetState(state)

	ngos := service.NewNGOService(service.NewStateManager(st, nil, nil))

	views, err := ngos.ListNGOs(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 NGOs, got %d", len(views))
	}
	if views[0].ReliabilityScore != 72 || views[1].ReliabilityScore != 100 {
		t.Errorf("expected scores 72 and 100, got %d and %d", views[0].ReliabilityScore, views[1].ReliabilityScore)
	}

	again, err := ngos.GetNGO(ctx, "ngo-1")
	if err != nil {
		t.Fatal(err)
	}
	if again.ReliabilityScore != views[0].ReliabilityScore {
		t.Errorf("two reads must agree: %d vs %d", again.ReliabilityScore, views[0].ReliabilityScore)
	}

	if _, err := ngos.GetNGO(ctx, "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestNGOs_Update(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	st := NewMockStore()
	state := domain.NewState()
	ngo := newNGO("ngo-1", 12.98, 77.60)
	ngo.TotalDeliveries = 4
	state.NGOs = append(state.NGOs, ngo)
	st.SetState(state)

	ngos := service.NewNGOService(service.NewStateManager(st, nil, nil))

	view, err := ngos.UpdateNGO(ctx, service.UpdateNGORequest{
		NGOID:    "ngo-1",
		IsActive: ptr(false),
		Capacity: ptr(80),
	})
	if err != nil {
		t.Fatal(err)
	}
	if view.NGO.IsActive || view.NGO.Capacity != 80 || view.NGO.TotalDeliveries != 4 {
		t.Errorf("unexpected NGO after update: %+v", view.NGO)
	}

	if _, err := ngos.UpdateNGO(ctx, service.UpdateNGORequest{NGOID: "ngo-1", ServiceRadius: ptr(-1.0)}); !errors.Is(err, service.ErrInvalidNGOProfile) {
		t.Errorf("expected ErrInvalidNGOProfile, got %v", err)
	}
	if _, err := ngos.UpdateNGO(ctx, service.UpdateNGORequest{NGOID: "ngo-1", Latitude: ptr(200.0)}); !errors.Is(err, service.ErrInvalidLocation) {
		t.Errorf("expected ErrInvalidLocation, got %v", err)
	}
}
