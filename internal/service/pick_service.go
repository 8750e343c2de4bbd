package service

import (
	"context"
	"fmt"

	"restaurant-picker-api/internal/metrics"
	"restaurant-picker-api/internal/models"
	"restaurant-picker-api/internal/picker"
	"restaurant-picker-api/internal/validation"
)

// PickService selects restaurants from a client supplied candidate list.
// It holds no state besides the shared random source.
type PickService struct {
	picker *picker.Picker
}

// NewPickService creates a new pick service
func NewPickService(p *picker.Picker) *PickService {
	return &PickService{picker: p}
}

// Pick applies the request defaults (limit 3, weighted_random) and runs the
// picker. A request seed switches to a private, seeded random source.
func (s *PickService) Pick(ctx context.Context, req models.PickRequest) ([]models.Restaurant, error) {
	strategy, err := picker.ParseStrategy(req.Strategy)
	if err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}

	limit := picker.DefaultLimit
	if req.Limit != nil {
		limit = *req.Limit
	}

	if err := validation.Struct(req); err != nil {
		return nil, fmt.Errorf("service: %w: %v", ErrInvalidCandidate, err)
	}

	p := s.picker
	if req.Seed != nil {
		p = picker.NewSeeded(*req.Seed)
	}

	picked, err := p.Pick(req.Candidates, limit, strategy)
	if err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}

	metrics.RecordPick(string(strategy))
	return picked, nil
}
