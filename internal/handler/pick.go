package handler

import (
	"context"
	"net/http"

	"restaurant-picker-api/internal/models"

	"github.com/gin-gonic/gin"
)

// PickHandler handles pick requests
type PickHandler struct {
	service PickService
}

// PickService interface for dependency injection
type PickService interface {
	Pick(context.Context, models.PickRequest) ([]models.Restaurant, error)
}

// NewPickHandler creates a new pick handler
func NewPickHandler(svc PickService) *PickHandler {
	return &PickHandler{service: svc}
}

// Pick handles POST /restaurants/pick requests
//
//	@Summary		Pick restaurants from candidates
//	@Description	Strategy "top" returns the best ranked candidates. "weighted_random" (default) draws without replacement with probability proportional to rating.
//	@Tags			restaurants
//	@Accept			json
//	@Produce		json
//	@Param			request	body		models.PickRequest	true	"Candidates, limit (default 3), strategy, optional seed"
//	@Success		200		{array}		models.Restaurant
//	@Failure		400		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/restaurants/pick [post]
func (h *PickHandler) Pick(c *gin.Context) {
	var req models.PickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	picked, err := h.service.Pick(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, picked)
}
