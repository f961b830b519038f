package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hopeplates/internal/service"
	"hopeplates/internal/store"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	if code == http.StatusInternalServerError {
		_ = c.Error(err)
		c.JSON(code, ErrorResponse{Error: "internal server error"})
		return
	}
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// respondBadRequest rejects a body that could not be bound.
func respondBadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body: " + err.Error()})
}

// mapErrorToHTTPStatus maps service/store errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Invalid input
	case errors.Is(err, service.ErrInvalidDonorID),
		errors.Is(err, service.ErrInvalidNGOID),
		errors.Is(err, service.ErrInvalidMatchID),
		errors.Is(err, service.ErrInvalidLocation),
		errors.Is(err, service.ErrInvalidNGOProfile),
		errors.Is(err, service.ErrInvalidPeopleServed),
		errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrInvalidPassword),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrUserAlreadyExists):
		return http.StatusBadRequest

	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized

	// Lifecycle conflicts
	case errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrDonationAlreadyClaimed):
		return http.StatusConflict

	case errors.Is(err, service.ErrStateBusy):
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}
