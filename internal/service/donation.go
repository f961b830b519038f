package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"hopeplates/internal/domain"
	"hopeplates/internal/store"
)

// DonationService handles donation submission and donor records.
type DonationService struct {
	state           *StateManager
	matchingService *MatchingService
	notifier        Notifier
}

// NewDonationService creates a new DonationService. notifier may be nil.
func NewDonationService(state *StateManager, matchingService *MatchingService, notifier Notifier) *DonationService {
	return &DonationService{
		state:           state,
		matchingService: matchingService,
		notifier:        notifier,
	}
}

// CreateDonationRequest contains the parameters for submitting a donation.
type CreateDonationRequest struct {
	Name          string
	ContactNumber string
	Email         string
	FoodType      string
	Quantity      string
	Location      string
	Latitude      *float64 // Optional: without coordinates no NGO can be matched
	Longitude     *float64
	ExpiryTime    string
}

// Suggestion summarizes one suggested NGO for the donor.
type Suggestion struct {
	NGOID              string
	Name               string
	Distance           float64
	Reliability        int
	CompatibilityScore int
}

// CreateDonationResponse contains the result of submitting a donation.
type CreateDonationResponse struct {
	Donor       *domain.Donor
	Suggestions []Suggestion
	Matches     []*domain.Match
}

// CreateDonation stores a new donor and suggests up to MaxSuggestions NGOs.
func (s *DonationService) CreateDonation(ctx context.Context, req CreateDonationRequest) (*CreateDonationResponse, error) {
	if err := validOptionalCoordinate(req.Latitude, req.Longitude); err != nil {
		return nil, err
	}

	donor := &domain.Donor{
		ID:            uuid.New().String(),
		Name:          req.Name,
		ContactNumber: req.ContactNumber,
		Email:         req.Email,
		FoodType:      req.FoodType,
		Quantity:      req.Quantity,
		Location:      req.Location,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		ExpiryTime:    req.ExpiryTime,
		Status:        domain.DonorStatusAvailable,
		CreatedAt:     time.Now(),
	}

	var (
		ranked  []Candidate
		matches []*domain.Match
	)
	err := s.state.Update(ctx, func(state *domain.State) error {
		state.Donors = append(state.Donors, donor)
		ranked, matches = s.matchingService.Suggest(donor, state.NGOs, state.Matches)
		state.Matches = append(state.Matches, matches...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	suggestions := make([]Suggestion, 0, len(ranked))
	for _, c := range ranked {
		suggestions = append(suggestions, Suggestion{
			NGOID:              c.NGO.ID,
			Name:               c.NGO.Name,
			Distance:           c.Distance,
			Reliability:        c.ReliabilityScore,
			CompatibilityScore: c.CompatibilityScore,
		})
	}

	if s.notifier != nil {
		for _, m := range matches {
			_ = s.notifier.NotifyMatchSuggested(ctx, m, donor)
		}
	}

	return &CreateDonationResponse{
		Donor:       donor,
		Suggestions: suggestions,
		Matches:     matches,
	}, nil
}

// GetDonor retrieves a donor by ID.
func (s *DonationService) GetDonor(ctx context.Context, donorID string) (*domain.Donor, error) {
	if donorID == "" {
		return nil, ErrInvalidDonorID
	}

	state, err := s.state.Read(ctx)
	if err != nil {
		return nil, err
	}

	donor := state.FindDonor(donorID)
	if donor == nil {
		return nil, store.ErrNotFound
	}
	return donor, nil
}

// ListDonors retrieves all donors in submission order.
func (s *DonationService) ListDonors(ctx context.Context) ([]*domain.Donor, error) {
	state, err := s.state.Read(ctx)
	if err != nil {
		return nil, err
	}
	return state.Donors, nil
}

// UpdateDonorRequest contains the descriptive fields a donor may change.
// Status and AcceptedBy are owned by the match lifecycle.
type UpdateDonorRequest struct {
	DonorID       string
	Name          *string
	ContactNumber *string
	Email         *string
	FoodType      *string
	Quantity      *string
	Location      *string
	Latitude      *float64
	Longitude     *float64
	ExpiryTime    *string
}

// UpdateDonor merges the set fields of req into the stored donor.
// Existing matches keep the distance they were created with.
func (s *DonationService) UpdateDonor(ctx context.Context, req UpdateDonorRequest) (*domain.Donor, error) {
	if req.DonorID == "" {
		return nil, ErrInvalidDonorID
	}

	var updated *domain.Donor
	err := s.state.Update(ctx, func(state *domain.State) error {
		donor := state.FindDonor(req.DonorID)
		if donor == nil {
			return store.ErrNotFound
		}

		lat, lng := donor.Latitude, donor.Longitude
		if req.Latitude != nil {
			lat = req.Latitude
		}
		if req.Longitude != nil {
			lng = req.Longitude
		}
		if err := validOptionalCoordinate(lat, lng); err != nil {
			return err
		}
		donor.Latitude, donor.Longitude = lat, lng

		setString(&donor.Name, req.Name)
		setString(&donor.ContactNumber, req.ContactNumber)
		setString(&donor.Email, req.Email)
		setString(&donor.FoodType, req.FoodType)
		setString(&donor.Quantity, req.Quantity)
		setString(&donor.Location, req.Location)
		setString(&donor.ExpiryTime, req.ExpiryTime)

		updated = donor
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
