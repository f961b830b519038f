package service

import (
	"context"

	"hopeplates/internal/domain"
	"hopeplates/internal/store"
)

// NGOService handles the NGO directory.
type NGOService struct {
	state *StateManager
}

// NewNGOService creates a new NGOService.
func NewNGOService(state *StateManager) *NGOService {
	return &NGOService{state: state}
}

// NGOView is an NGO with its reliability score computed at read time.
type NGOView struct {
	NGO              *domain.NGO
	ReliabilityScore int
}

// ListNGOs retrieves all NGOs with freshly computed reliability scores.
func (s *NGOService) ListNGOs(ctx context.Context) ([]NGOView, error) {
	state, err := s.state.Read(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]NGOView, 0, len(state.NGOs))
	for _, ngo := range state.NGOs {
		views = append(views, NGOView{
			NGO:              ngo,
			ReliabilityScore: ReliabilityScore(ngo.ID, state.Matches),
		})
	}
	return views, nil
}

// GetNGO retrieves one NGO with its reliability score.
func (s *NGOService) GetNGO(ctx context.Context, ngoID string) (*NGOView, error) {
	if ngoID == "" {
		return nil, ErrInvalidNGOID
	}

	state, err := s.state.Read(ctx)
	if err != nil {
		return nil, err
	}

	ngo := state.FindNGO(ngoID)
	if ngo == nil {
		return nil, store.ErrNotFound
	}

	return &NGOView{
		NGO:              ngo,
		ReliabilityScore: ReliabilityScore(ngo.ID, state.Matches),
	}, nil
}

// UpdateNGORequest contains the profile fields an NGO may change.
// TotalDeliveries is owned by the match lifecycle.
type UpdateNGORequest struct {
	NGOID         string
	Name          *string
	Email         *string
	ContactNumber *string
	Location      *string
	Latitude      *float64
	Longitude     *float64
	IsActive      *bool
	ServiceRadius *float64
	Capacity      *int
}

// UpdateNGO merges the set fields of req into the stored NGO.
func (s *NGOService) UpdateNGO(ctx context.Context, req UpdateNGORequest) (*NGOView, error) {
	if req.NGOID == "" {
		return nil, ErrInvalidNGOID
	}
	if (req.ServiceRadius != nil && *req.ServiceRadius < 0) || (req.Capacity != nil && *req.Capacity < 0) {
		return nil, ErrInvalidNGOProfile
	}

	var view *NGOView
	err := s.state.Update(ctx, func(state *domain.State) error {
		ngo := state.FindNGO(req.NGOID)
		if ngo == nil {
			return store.ErrNotFound
		}

		lat, lng := ngo.Latitude, ngo.Longitude
		if req.Latitude != nil {
			lat = req.Latitude
		}
		if req.Longitude != nil {
			lng = req.Longitude
		}
		if err := validOptionalCoordinate(lat, lng); err != nil {
			return err
		}
		ngo.Latitude, ngo.Longitude = lat, lng

		setString(&ngo.Name, req.Name)
		setString(&ngo.Email, req.Email)
		setString(&ngo.ContactNumber, req.ContactNumber)
		setString(&ngo.Location, req.Location)
		if req.IsActive != nil {
			ngo.IsActive = *req.IsActive
		}
		if req.ServiceRadius != nil {
			ngo.ServiceRadius = *req.ServiceRadius
		}
		if req.Capacity != nil {
			ngo.Capacity = *req.Capacity
		}

		view = &NGOView{
			NGO:              ngo,
			ReliabilityScore: ReliabilityScore(ngo.ID, state.Matches),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return view, nil
}
