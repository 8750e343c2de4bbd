package handler

import (
	"errors"
	"net/http"
	"strings"

	"restaurant-picker-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error" example:"invalid filter: location is required"`
}

// respondError maps service errors to status codes. Unknown errors are logged
// and hidden behind a generic 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": clientMessage(err)})
	case errors.Is(err, service.ErrInvalidFilter),
		errors.Is(err, service.ErrInvalidStrategy),
		errors.Is(err, service.ErrInvalidLimit),
		errors.Is(err, service.ErrInvalidCandidate),
		errors.Is(err, service.ErrInvalidRestaurant):
		c.JSON(http.StatusBadRequest, gin.H{"error": clientMessage(err)})
	default:
		zerolog.Ctx(c.Request.Context()).Error().Err(err).
			Str("path", c.Request.URL.Path).
			Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// clientMessage drops the layer prefix from a wrapped service error.
func clientMessage(err error) string {
	return strings.TrimPrefix(err.Error(), "service: ")
}
