package handler

import (
	"context"
	"net/http"

	"restaurant-picker-api/internal/models"

	"github.com/gin-gonic/gin"
)

// SearchHandler handles restaurant search requests
type SearchHandler struct {
	service SearchService
}

// SearchService interface for dependency injection
type SearchService interface {
	Search(context.Context, models.SearchFilter) ([]models.Restaurant, error)
	SearchNearby(context.Context, models.NearbyFilter) ([]models.Restaurant, error)
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(svc SearchService) *SearchHandler {
	return &SearchHandler{service: svc}
}

// Search handles GET /restaurants/search requests
//
//	@Summary		Search restaurants
//	@Description	Case-insensitive match of location against city, address or name, best rated first.
//	@Tags			restaurants
//	@Produce		json
//	@Param			location		query		string	true	"City, address or name fragment"
//	@Param			cuisine			query		string	false	"Exact cuisine, case-insensitive"
//	@Param			min_rating		query		number	false	"Minimum rating (0-5)"
//	@Param			max_price_level	query		int		false	"Maximum price level (1-4)"
//	@Param			max_results		query		int		false	"Result cap (1-50)"	default(20)
//	@Success		200				{array}		models.Restaurant
//	@Failure		400				{object}	ErrorResponse
//	@Failure		500				{object}	ErrorResponse
//	@Router			/restaurants/search [get]
func (h *SearchHandler) Search(c *gin.Context) {
	location := c.Query("location")
	if location == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameter 'location'"})
		return
	}

	attrs, err := parseAttributeParams(c, models.DefaultMaxResults)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	restaurants, err := h.service.Search(c.Request.Context(), models.SearchFilter{
		Location:      location,
		Cuisine:       attrs.cuisine,
		MinRating:     attrs.minRating,
		MaxPriceLevel: attrs.maxPriceLevel,
		MaxResults:    attrs.maxResults,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, restaurants)
}

// Nearby handles GET /restaurants/nearby requests
//
//	@Summary		Restaurants near a point
//	@Description	Bounding-box approximation of a radius around lat/lng, best rated first.
//	@Tags			restaurants
//	@Produce		json
//	@Param			lat				query		number	true	"Latitude (-90..90)"
//	@Param			lng				query		number	true	"Longitude (-180..180)"
//	@Param			radius_km		query		number	false	"Radius in km (0-500]"	default(5)
//	@Param			cuisine			query		string	false	"Exact cuisine, case-insensitive"
//	@Param			min_rating		query		number	false	"Minimum rating (0-5)"
//	@Param			max_price_level	query		int		false	"Maximum price level (1-4)"
//	@Param			max_results		query		int		false	"Result cap (1-50)"	default(20)
//	@Success		200				{array}		models.Restaurant
//	@Failure		400				{object}	ErrorResponse
//	@Failure		500				{object}	ErrorResponse
//	@Router			/restaurants/nearby [get]
func (h *SearchHandler) Nearby(c *gin.Context) {
	lat, err := queryFloat(c, "lat")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	lng, err := queryFloat(c, "lng")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if lat == nil || lng == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameters 'lat' and 'lng'"})
		return
	}

	radius, err := queryFloatDefault(c, "radius_km", models.DefaultRadiusKM)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	attrs, err := parseAttributeParams(c, models.DefaultMaxResults)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	restaurants, err := h.service.SearchNearby(c.Request.Context(), models.NearbyFilter{
		Lat:           *lat,
		Lng:           *lng,
		RadiusKM:      radius,
		Cuisine:       attrs.cuisine,
		MinRating:     attrs.minRating,
		MaxPriceLevel: attrs.maxPriceLevel,
		MaxResults:    attrs.maxResults,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, restaurants)
}
