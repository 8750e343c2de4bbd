package service

import (
	"context"
	"errors"
	"fmt"

	"restaurant-picker-api/internal/models"
	"restaurant-picker-api/internal/repository"
	"restaurant-picker-api/internal/validation"
)

// RestaurantService covers lookups, listing, stats and imports.
type RestaurantService struct {
	repo RestaurantRepository
}

// RestaurantRepository is the storage the restaurant service works on.
type RestaurantRepository interface {
	GetByID(ctx context.Context, id string) (*models.Restaurant, error)
	List(ctx context.Context, page models.Page) ([]models.Restaurant, error)
	BulkCreate(ctx context.Context, restaurants []models.Restaurant) (int, error)
	Count(ctx context.Context) (int, error)
	Cuisines(ctx context.Context) ([]string, error)
	Cities(ctx context.Context) ([]string, error)
}

// NewRestaurantService creates a new restaurant service
func NewRestaurantService(repo RestaurantRepository) *RestaurantService {
	return &RestaurantService{repo: repo}
}

// Get returns ErrNotFound when no restaurant has the id.
func (s *RestaurantService) Get(ctx context.Context, id string) (*models.Restaurant, error) {
	if id == "" {
		return nil, fmt.Errorf("service: %w: empty id", ErrNotFound)
	}

	restaurant, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("service: %w: %q", ErrNotFound, id)
		}
		return nil, fmt.Errorf("service: failed to get restaurant: %w", err)
	}
	return restaurant, nil
}

// List returns one page of restaurants in insertion order.
func (s *RestaurantService) List(ctx context.Context, page models.Page) ([]models.Restaurant, error) {
	if err := validation.Struct(page); err != nil {
		return nil, fmt.Errorf("service: %w: %v", ErrInvalidFilter, err)
	}

	restaurants, err := s.repo.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list restaurants: %w", err)
	}
	return restaurants, nil
}

// Import validates every record and stores the batch, skipping ids that are
// already present. Nothing is written when any record is invalid.
func (s *RestaurantService) Import(ctx context.Context, restaurants []models.Restaurant) (int, error) {
	for i := range restaurants {
		if err := validation.Struct(restaurants[i]); err != nil {
			return 0, fmt.Errorf("service: %w: record %d: %v", ErrInvalidRestaurant, i, err)
		}
	}

	inserted, err := s.repo.BulkCreate(ctx, restaurants)
	if err != nil {
		return 0, fmt.Errorf("service: failed to import restaurants: %w", err)
	}
	return inserted, nil
}

// Count returns the number of stored restaurants.
func (s *RestaurantService) Count(ctx context.Context) (int, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("service: failed to count restaurants: %w", err)
	}
	return count, nil
}

// Cuisines returns the sorted distinct cuisines.
func (s *RestaurantService) Cuisines(ctx context.Context) ([]string, error) {
	cuisines, err := s.repo.Cuisines(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list cuisines: %w", err)
	}
	return cuisines, nil
}

// Cities returns the sorted distinct cities.
func (s *RestaurantService) Cities(ctx context.Context) ([]string, error) {
	cities, err := s.repo.Cities(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list cities: %w", err)
	}
	return cities, nil
}
