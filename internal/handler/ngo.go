package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hopeplates/internal/domain"
	"hopeplates/internal/service"
)

// NGOHandler handles HTTP requests for NGO profiles.
type NGOHandler struct {
	ngoService *service.NGOService
}

// NewNGOHandler creates a new NGOHandler.
func NewNGOHandler(ngoService *service.NGOService) *NGOHandler {
	return &NGOHandler{ngoService: ngoService}
}

// NGOResponse is an NGO profile with its current reliability score.
type NGOResponse struct {
	*domain.NGO
	ReliabilityScore int `json:"reliabilityScore"`
}

func toNGOResponse(v service.NGOView) NGOResponse {
	return NGOResponse{NGO: v.NGO, ReliabilityScore: v.ReliabilityScore}
}

// UpdateNGORequest is the HTTP request body for editing an NGO profile.
type UpdateNGORequest struct {
	Name          *string  `json:"name"`
	Email         *string  `json:"email"`
	ContactNumber *string  `json:"contactNumber"`
	Location      *string  `json:"location"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	IsActive      *bool    `json:"isActive"`
	ServiceRadius *float64 `json:"serviceRadius"`
	Capacity      *int     `json:"capacity"`
}

// GetAll handles GET /api/ngo
func (h *NGOHandler) GetAll(c *gin.Context) {
	views, err := h.ngoService.ListNGOs(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]NGOResponse, 0, len(views))
	for _, v := range views {
		resp = append(resp, toNGOResponse(v))
	}

	respondJSON(c, http.StatusOK, resp)
}

// Get handles GET /api/ngo/:id
func (h *NGOHandler) Get(c *gin.Context) {
	view, err := h.ngoService.GetNGO(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toNGOResponse(*view))
}

// Update handles PUT /api/ngo/:id
func (h *NGOHandler) Update(c *gin.Context) {
	var req UpdateNGORequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	view, err := h.ngoService.UpdateNGO(c.Request.Context(), service.UpdateNGORequest{
		NGOID:         c.Param("id"),
		Name:          req.Name,
		Email:         req.Email,
		ContactNumber: req.ContactNumber,
		Location:      req.Location,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		IsActive:      req.IsActive,
		ServiceRadius: req.ServiceRadius,
		Capacity:      req.Capacity,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{"success": true, "ngo": toNGOResponse(*view)})
}
