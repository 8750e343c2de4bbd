package handler

import (
	"context"
	"net/http"

	"restaurant-picker-api/internal/models"

	"github.com/gin-gonic/gin"
)

// RestaurantHandler serves single records, listings and stats.
type RestaurantHandler struct {
	service RestaurantService
}

// RestaurantService interface for dependency injection
type RestaurantService interface {
	Get(context.Context, string) (*models.Restaurant, error)
	List(context.Context, models.Page) ([]models.Restaurant, error)
	Count(context.Context) (int, error)
	Cuisines(context.Context) ([]string, error)
	Cities(context.Context) ([]string, error)
}

// CountResponse is the body of GET /restaurants/stats/count.
type CountResponse struct {
	Count int `json:"count" example:"100"`
}

// NewRestaurantHandler creates a new restaurant handler
func NewRestaurantHandler(svc RestaurantService) *RestaurantHandler {
	return &RestaurantHandler{service: svc}
}

// Get handles GET /restaurants/:id requests
//
//	@Summary	Get a restaurant
//	@Tags		restaurants
//	@Produce	json
//	@Param		id	path		string	true	"Restaurant id"
//	@Success	200	{object}	models.Restaurant
//	@Failure	404	{object}	ErrorResponse
//	@Failure	500	{object}	ErrorResponse
//	@Router		/restaurants/{id} [get]
func (h *RestaurantHandler) Get(c *gin.Context) {
	restaurant, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, restaurant)
}

// List handles GET /restaurants requests
//
//	@Summary	List restaurants
//	@Tags		restaurants
//	@Produce	json
//	@Param		offset	query		int	false	"Records to skip"	default(0)
//	@Param		limit	query		int	false	"Page size (1-500)"	default(100)
//	@Success	200		{array}		models.Restaurant
//	@Failure	400		{object}	ErrorResponse
//	@Failure	500		{object}	ErrorResponse
//	@Router		/restaurants [get]
func (h *RestaurantHandler) List(c *gin.Context) {
	offset, err := queryIntDefault(c, "offset", 0)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	limit, err := queryIntDefault(c, "limit", models.DefaultPageSize)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	restaurants, err := h.service.List(c.Request.Context(), models.Page{Offset: offset, Limit: limit})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, restaurants)
}

// Cuisines handles GET /restaurants/stats/cuisines requests
//
//	@Summary	Distinct cuisines
//	@Tags		stats
//	@Produce	json
//	@Success	200	{array}		string
//	@Failure	500	{object}	ErrorResponse
//	@Router		/restaurants/stats/cuisines [get]
func (h *RestaurantHandler) Cuisines(c *gin.Context) {
	cuisines, err := h.service.Cuisines(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, cuisines)
}

// Cities handles GET /restaurants/stats/cities requests
//
//	@Summary	Distinct cities
//	@Tags		stats
//	@Produce	json
//	@Success	200	{array}		string
//	@Failure	500	{object}	ErrorResponse
//	@Router		/restaurants/stats/cities [get]
func (h *RestaurantHandler) Cities(c *gin.Context) {
	cities, err := h.service.Cities(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, cities)
}

// Count handles GET /restaurants/stats/count requests
//
//	@Summary	Number of stored restaurants
//	@Tags		stats
//	@Produce	json
//	@Success	200	{object}	CountResponse
//	@Failure	500	{object}	ErrorResponse
//	@Router		/restaurants/stats/count [get]
func (h *RestaurantHandler) Count(c *gin.Context) {
	count, err := h.service.Count(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, CountResponse{Count: count})
}
