package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hopeplates/internal/domain"
	"hopeplates/internal/service"
)

// AuthHandler handles account registration and login.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest is the HTTP request body for registering.
type RegisterRequest struct {
	Email         string   `json:"email" binding:"required"`
	Password      string   `json:"password" binding:"required"`
	Role          string   `json:"role" binding:"required,oneof=donor ngo"`
	Name          string   `json:"name"`
	ContactNumber string   `json:"contactNumber"`
	Location      string   `json:"location"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
}

// RegisterResponse is the HTTP response for registering.
type RegisterResponse struct {
	Success bool        `json:"success"`
	UserID  string      `json:"userId"`
	Email   string      `json:"email"`
	Role    domain.Role `json:"role"`
	NGO     *domain.NGO `json:"ngo,omitempty"`
}

// LoginRequest is the HTTP request body for logging in.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=donor ngo"`
}

// LoginResponse is the HTTP response for logging in.
type LoginResponse struct {
	Success   bool        `json:"success"`
	Token     string      `json:"token"`
	UserID    string      `json:"userId"`
	Role      domain.Role `json:"role"`
	NGOID     string      `json:"ngoId,omitempty"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

// Register handles POST /api/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	result, err := h.authService.Register(c.Request.Context(), service.RegisterRequest{
		Email:         req.Email,
		Password:      req.Password,
		Role:          domain.Role(req.Role),
		Name:          req.Name,
		ContactNumber: req.ContactNumber,
		Location:      req.Location,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, RegisterResponse{
		Success: true,
		UserID:  result.User.ID,
		Email:   result.User.Email,
		Role:    result.User.Role,
		NGO:     result.NGO,
	})
}

// Login handles POST /api/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), service.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, LoginResponse{
		Success:   true,
		Token:     result.Token,
		UserID:    result.UserID,
		Role:      result.Role,
		NGOID:     result.NGOID,
		ExpiresAt: result.ExpiresAt,
	})
}
