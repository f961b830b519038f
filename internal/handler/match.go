package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"hopeplates/internal/domain"
	"hopeplates/internal/service"
)

// MatchHandler handles HTTP requests for the match lifecycle.
type MatchHandler struct {
	matchService *service.MatchService
}

// NewMatchHandler creates a new MatchHandler.
func NewMatchHandler(matchService *service.MatchService) *MatchHandler {
	return &MatchHandler{matchService: matchService}
}

// DeliverMatchRequest is the HTTP request body for completing a delivery.
type DeliverMatchRequest struct {
	DeliveredOnTime *bool  `json:"deliveredOnTime"`
	RecipientName   string `json:"recipientName"`
	PeopleServed    *int   `json:"peopleServed"`
}

// MatchDetailResponse is a match joined with its donor.
type MatchDetailResponse struct {
	*domain.Match
	Donor *domain.Donor `json:"donor"`
}

// MatchActionResponse is returned by every lifecycle transition.
type MatchActionResponse struct {
	Success bool          `json:"success"`
	Match   *domain.Match `json:"match"`
}

// GetAll handles GET /api/matches
func (h *MatchHandler) GetAll(c *gin.Context) {
	matches, err := h.matchService.ListMatches(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, matches)
}

// GetForNGO handles GET /api/matches/ngo/:ngoId
func (h *MatchHandler) GetForNGO(c *gin.Context) {
	rows, err := h.matchService.ListNGOMatches(c.Request.Context(), c.Param("ngoId"))
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]MatchDetailResponse, 0, len(rows))
	for _, r := range rows {
		resp = append(resp, MatchDetailResponse{Match: r.Match, Donor: r.Donor})
	}

	respondJSON(c, http.StatusOK, resp)
}

// Accept handles POST /api/matches/:id/accept
func (h *MatchHandler) Accept(c *gin.Context) {
	match, err := h.matchService.AcceptMatch(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, MatchActionResponse{Success: true, Match: match})
}

// Pickup handles POST /api/matches/:id/pickup
func (h *MatchHandler) Pickup(c *gin.Context) {
	match, err := h.matchService.PickupMatch(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, MatchActionResponse{Success: true, Match: match})
}

// Deliver handles POST /api/matches/:id/deliver
func (h *MatchHandler) Deliver(c *gin.Context) {
	var req DeliverMatchRequest
	// The body is optional; an empty one means "on time, nobody counted".
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondBadRequest(c, err)
		return
	}

	match, err := h.matchService.DeliverMatch(c.Request.Context(), service.DeliverMatchRequest{
		MatchID:         c.Param("id"),
		DeliveredOnTime: req.DeliveredOnTime,
		RecipientName:   req.RecipientName,
		PeopleServed:    req.PeopleServed,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, MatchActionResponse{Success: true, Match: match})
}
