package service

import (
	"errors"

	"restaurant-picker-api/internal/picker"
)

// Errors returned by the services. Handlers map them to HTTP status codes
// with errors.Is, so they are always wrapped, never replaced.
var (
	ErrInvalidFilter     = errors.New("invalid filter")
	ErrInvalidCandidate  = errors.New("invalid candidate")
	ErrInvalidRestaurant = errors.New("invalid restaurant")
	ErrNotFound          = errors.New("restaurant not found")

	ErrInvalidStrategy = picker.ErrInvalidStrategy
	ErrInvalidLimit    = picker.ErrInvalidLimit
)
