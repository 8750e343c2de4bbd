// Package picker chooses a few restaurants out of a candidate list, either
// the best ranked ones or a rating-weighted random sample.
package picker

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"restaurant-picker-api/internal/models"
)

// Strategy names a selection rule.
type Strategy string

const (
	StrategyTop            Strategy = "top"
	StrategyWeightedRandom Strategy = "weighted_random"
)

const (
	// DefaultLimit is used when a request does not say how many to pick.
	DefaultLimit = 3

	// MinWeight keeps unrated and zero-rated candidates selectable.
	MinWeight = 0.01
)

var (
	ErrInvalidStrategy = errors.New("invalid strategy")
	ErrInvalidLimit    = errors.New("invalid limit")
)

// ParseStrategy maps a wire value to a Strategy. The empty string selects
// weighted_random.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case "":
		return StrategyWeightedRandom, nil
	case StrategyTop, StrategyWeightedRandom:
		return Strategy(s), nil
	default:
		return "", fmt.Errorf("%w: %q (expected %q or %q)", ErrInvalidStrategy, s, StrategyTop, StrategyWeightedRandom)
	}
}

// Picker owns a random source. It is safe for concurrent use.
type Picker struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New returns a Picker drawing from src. A nil src gets a randomly seeded PCG.
func New(src rand.Source) *Picker {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Picker{rng: rand.New(src)}
}

// NewSeeded returns a Picker whose output is fully determined by seed.
func NewSeeded(seed uint64) *Picker {
	return New(rand.NewPCG(seed, seed))
}

// Pick selects up to limit candidates with the given strategy. The input
// slice is never modified.
func (p *Picker) Pick(candidates []models.Restaurant, limit int, strategy Strategy) ([]models.Restaurant, error) {
	if limit < 0 {
		return nil, fmt.Errorf("%w: %d must not be negative", ErrInvalidLimit, limit)
	}

	pool := uniqueByID(candidates)

	switch strategy {
	case StrategyTop:
		return Top(pool, limit), nil
	case StrategyWeightedRandom:
		p.mu.Lock()
		defer p.mu.Unlock()
		return WeightedRandom(p.rng, pool, limit), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidStrategy, strategy)
	}
}

// Top returns the first limit candidates in rank order.
func Top(candidates []models.Restaurant, limit int) []models.Restaurant {
	sorted := make([]models.Restaurant, len(candidates))
	copy(sorted, candidates)
	models.SortByRank(sorted)
	return sorted[:min(limit, len(sorted))]
}

// Weight is the relative chance of a candidate being drawn.
func Weight(r models.Restaurant) float64 {
	if r.Rating == nil {
		return MinWeight
	}
	return max(*r.Rating, MinWeight)
}

// WeightedRandom samples limit candidates without replacement. Each draw is
// proportional to Weight over the candidates still in the pool, and the drawn
// one leaves the pool before the next draw. The result is in draw order.
func WeightedRandom(rng *rand.Rand, candidates []models.Restaurant, limit int) []models.Restaurant {
	n := min(limit, len(candidates))
	chosen := make([]models.Restaurant, 0, n)
	if n == 0 {
		return chosen
	}

	pool := make([]models.Restaurant, len(candidates))
	copy(pool, candidates)
	weights := make([]float64, len(pool))
	for i, r := range pool {
		weights[i] = Weight(r)
	}

	for len(chosen) < n {
		idx := draw(rng, weights)
		chosen = append(chosen, pool[idx])

		// keep pool order so a given seed always walks the same sequence
		pool = append(pool[:idx], pool[idx+1:]...)
		weights = append(weights[:idx], weights[idx+1:]...)
	}
	return chosen
}

// draw returns the index i whose cumulative weight first exceeds a uniform
// point in [0, sum(weights)).
func draw(rng *rand.Rand, weights []float64) int {
	var total float64
	for _, w := range weights {
		total += w
	}

	target := rng.Float64() * total
	var cumulative float64
	for i, w := range weights {
		cumulative += w
		if target < cumulative {
			return i
		}
	}
	// float rounding can leave target just past the last boundary
	return len(weights) - 1
}

func uniqueByID(candidates []models.Restaurant) []models.Restaurant {
	seen := make(map[string]struct{}, len(candidates))
	out := make([]models.Restaurant, 0, len(candidates))
	for _, c := range candidates {
		if _, ok := seen[c.ID]; ok {
			continue
		}
		seen[c.ID] = struct{}{}
		out = append(out, c)
	}
	return out
}
