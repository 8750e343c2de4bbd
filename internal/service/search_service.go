package service

import (
	"context"
	"fmt"
	"strings"

	"restaurant-picker-api/internal/metrics"
	"restaurant-picker-api/internal/models"
	"restaurant-picker-api/internal/validation"
)

// SearchService answers filtered restaurant queries.
type SearchService struct {
	repo SearchRepository
}

// SearchRepository is the storage the search service reads from.
type SearchRepository interface {
	Search(ctx context.Context, filter models.SearchFilter) ([]models.Restaurant, error)
	SearchNearby(ctx context.Context, filter models.NearbyFilter) ([]models.Restaurant, error)
}

// NewSearchService creates a new search service
func NewSearchService(repo SearchRepository) *SearchService {
	return &SearchService{repo: repo}
}

// Search returns at most filter.MaxResults restaurants whose city, address or
// name contains filter.Location, best ranked first.
func (s *SearchService) Search(ctx context.Context, filter models.SearchFilter) ([]models.Restaurant, error) {
	filter.Location = strings.TrimSpace(filter.Location)
	filter.Cuisine = strings.TrimSpace(filter.Cuisine)

	if err := validation.Struct(filter); err != nil {
		return nil, fmt.Errorf("service: %w: %v", ErrInvalidFilter, err)
	}

	restaurants, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("service: failed to search restaurants: %w", err)
	}

	metrics.RecordSearch("text", len(restaurants))
	return restaurants, nil
}

// SearchNearby returns restaurants inside the bounding box of the radius
// around (filter.Lat, filter.Lng), best ranked first.
func (s *SearchService) SearchNearby(ctx context.Context, filter models.NearbyFilter) ([]models.Restaurant, error) {
	filter.Cuisine = strings.TrimSpace(filter.Cuisine)

	if err := validation.Struct(filter); err != nil {
		return nil, fmt.Errorf("service: %w: %v", ErrInvalidFilter, err)
	}

	restaurants, err := s.repo.SearchNearby(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("service: failed to search nearby restaurants: %w", err)
	}

	metrics.RecordSearch("nearby", len(restaurants))
	return restaurants, nil
}
