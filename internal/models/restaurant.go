package models

import "time"

// DefaultSource is stored when a restaurant arrives without a provenance tag.
const DefaultSource = "manual"

// Restaurant represents a stored eatery and its optional quality signals.
type Restaurant struct {
	ID         string   `json:"id" validate:"required"`
	Name       string   `json:"name" validate:"required"`
	Address    string   `json:"address"`
	Lat        float64  `json:"lat" validate:"gte=-90,lte=90"`
	Lng        float64  `json:"lng" validate:"gte=-180,lte=180"`
	Rating     *float64 `json:"rating" validate:"omitempty,gte=0,lte=5"`
	PriceLevel *int     `json:"price_level" validate:"omitempty,gte=1,lte=4"`
	Cuisine    *string  `json:"cuisine"`
	Source     string   `json:"source"`
	URL        *string  `json:"url"`
	NumReviews *int     `json:"num_reviews" validate:"omitempty,gte=0"`

	// City and Country only feed text search.
	City    *string `json:"-"`
	Country *string `json:"-"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// PickRequest is the body of POST /restaurants/pick.
type PickRequest struct {
	Candidates []Restaurant `json:"candidates" validate:"dive"`
	Limit      *int         `json:"limit"`
	Strategy   string       `json:"strategy"`
	// Seed makes a single weighted pick reproducible.
	Seed *uint64 `json:"seed"`
}

// Ptr returns a pointer to v. Handy for the optional fields above.
func Ptr[T any](v T) *T {
	return &v
}
