package models

const (
	DefaultMaxResults = 20
	MaxResultsLimit   = 50
	DefaultRadiusKM   = 5.0
	MaxRadiusKM       = 500.0

	DefaultPageSize = 100
	MaxPageSize     = 500
)

// SearchFilter selects restaurants whose city, address or name contains Location.
type SearchFilter struct {
	Location      string   `json:"location" validate:"required"`
	Cuisine       string   `json:"cuisine"`
	MinRating     *float64 `json:"min_rating" validate:"omitempty,gte=0,lte=5"`
	MaxPriceLevel *int     `json:"max_price_level" validate:"omitempty,gte=1,lte=4"`
	MaxResults    int      `json:"max_results" validate:"gte=1,lte=50"`
}

// NearbyFilter selects restaurants inside the bounding box around a point.
type NearbyFilter struct {
	Lat           float64  `json:"lat" validate:"gte=-90,lte=90"`
	Lng           float64  `json:"lng" validate:"gte=-180,lte=180"`
	RadiusKM      float64  `json:"radius_km" validate:"gt=0,lte=500"`
	Cuisine       string   `json:"cuisine"`
	MinRating     *float64 `json:"min_rating" validate:"omitempty,gte=0,lte=5"`
	MaxPriceLevel *int     `json:"max_price_level" validate:"omitempty,gte=1,lte=4"`
	MaxResults    int      `json:"max_results" validate:"gte=1,lte=50"`
}

// Page is an offset/limit window over the whole collection.
type Page struct {
	Offset int `json:"offset" validate:"gte=0"`
	Limit  int `json:"limit" validate:"gte=1,lte=500"`
}
