package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hopeplates/internal/domain"
	"hopeplates/internal/service"
)

// DonorHandler handles HTTP requests for donations.
type DonorHandler struct {
	donationService *service.DonationService
}

// NewDonorHandler creates a new DonorHandler.
func NewDonorHandler(donationService *service.DonationService) *DonorHandler {
	return &DonorHandler{donationService: donationService}
}

// flexString accepts either a JSON string or a JSON number.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

func (f *flexString) ptr() *string {
	if f == nil {
		return nil
	}
	s := string(*f)
	return &s
}

// CreateDonorRequest is the HTTP request body for submitting a donation.
type CreateDonorRequest struct {
	Name          string     `json:"name"`
	ContactNumber string     `json:"contactNumber"`
	Email         string     `json:"email"`
	FoodType      string     `json:"foodType"`
	Quantity      flexString `json:"quantity"`
	Location      string     `json:"location"`
	Latitude      *float64   `json:"latitude"`
	Longitude     *float64   `json:"longitude"`
	ExpiryTime    string     `json:"expiryTime"`
}

// UpdateDonorRequest is the HTTP request body for editing a donation.
type UpdateDonorRequest struct {
	Name          *string     `json:"name"`
	ContactNumber *string     `json:"contactNumber"`
	Email         *string     `json:"email"`
	FoodType      *string     `json:"foodType"`
	Quantity      *flexString `json:"quantity"`
	Location      *string     `json:"location"`
	Latitude      *float64    `json:"latitude"`
	Longitude     *float64    `json:"longitude"`
	ExpiryTime    *string     `json:"expiryTime"`
}

// SuggestedNGOResponse describes one suggested NGO.
type SuggestedNGOResponse struct {
	NGOID              string `json:"ngoId"`
	Name               string `json:"name"`
	Distance           string `json:"distance"`
	Reliability        int    `json:"reliability"`
	CompatibilityScore int    `json:"compatibilityScore"`
}

// CreateDonorResponse is the HTTP response for submitting a donation.
type CreateDonorResponse struct {
	Success       bool                   `json:"success"`
	Donor         *domain.Donor          `json:"donor"`
	SuggestedNGOs []SuggestedNGOResponse `json:"suggestedNGOs"`
	Matches       []*domain.Match        `json:"matches"`
}

// Create handles POST /api/donor
func (h *DonorHandler) Create(c *gin.Context) {
	var req CreateDonorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	result, err := h.donationService.CreateDonation(c.Request.Context(), service.CreateDonationRequest{
		Name:          req.Name,
		ContactNumber: req.ContactNumber,
		Email:         req.Email,
		FoodType:      req.FoodType,
		Quantity:      string(req.Quantity),
		Location:      req.Location,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		ExpiryTime:    req.ExpiryTime,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	suggested := make([]SuggestedNGOResponse, 0, len(result.Suggestions))
	for _, s := range result.Suggestions {
		suggested = append(suggested, SuggestedNGOResponse{
			NGOID:              s.NGOID,
			Name:               s.Name,
			Distance:           strconv.FormatFloat(s.Distance, 'f', 2, 64),
			Reliability:        s.Reliability,
			CompatibilityScore: s.CompatibilityScore,
		})
	}

	respondJSON(c, http.StatusCreated, CreateDonorResponse{
		Success:       true,
		Donor:         result.Donor,
		SuggestedNGOs: suggested,
		Matches:       result.Matches,
	})
}

// GetAll handles GET /api/donor
func (h *DonorHandler) GetAll(c *gin.Context) {
	donors, err := h.donationService.ListDonors(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, donors)
}

// Get handles GET /api/donor/:id
func (h *DonorHandler) Get(c *gin.Context) {
	donor, err := h.donationService.GetDonor(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, donor)
}

// Update handles PUT /api/donor/:id
func (h *DonorHandler) Update(c *gin.Context) {
	var req UpdateDonorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	donor, err := h.donationService.UpdateDonor(c.Request.Context(), service.UpdateDonorRequest{
		DonorID:       c.Param("id"),
		Name:          req.Name,
		ContactNumber: req.ContactNumber,
		Email:         req.Email,
		FoodType:      req.FoodType,
		Quantity:      req.Quantity.ptr(),
		Location:      req.Location,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		ExpiryTime:    req.ExpiryTime,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{"success": true, "donor": donor})
}
