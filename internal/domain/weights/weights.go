// Package weights validates user-supplied pillar weightings and normalizes
// them for aggregation.
package weights

import (
	"fmt"
	"math"

	"github.com/okian/riskradar/internal/domain/model"
)

// Tolerance within which a normalized configuration's sum is considered 1.0.
const SumTolerance = 1e-9

// Configuration is a validated weighting whose values sum to 1.0. Two
// requests that differ only by a positive scalar multiple normalize to the
// same Configuration. Treat as immutable; build via Normalize or Equal.
type Configuration map[model.Pillar]float64

// Normalize validates a requested weighting and scales it to sum to 1.0.
// The request may use any positive scale convention (slider units 0-100,
// fractions, etc.). The pillar key set must equal pillars exactly: unknown
// or missing keys fail rather than being silently ignored.
func Normalize(requested map[model.Pillar]float64, pillars []model.Pillar) (Configuration, error) {
	expected := make(map[model.Pillar]struct{}, len(pillars))
	for _, p := range pillars {
		expected[p] = struct{}{}
	}
	for p := range requested {
		if _, ok := expected[p]; !ok {
			return nil, fmt.Errorf("%w: unknown pillar %q", ErrPillarMismatch, p)
		}
	}
	for _, p := range pillars {
		if _, ok := requested[p]; !ok {
			return nil, fmt.Errorf("%w: missing pillar %q", ErrPillarMismatch, p)
		}
	}

	var total float64
	for p, w := range requested {
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
			return nil, fmt.Errorf("%w: pillar %q has weight %v", ErrNegativeWeight, p, w)
		}
		total += w
	}
	if total <= 0 {
		return nil, ErrNoPositiveWeight
	}

	cfg := make(Configuration, len(requested))
	for p, w := range requested {
		cfg[p] = w / total
	}
	return cfg, nil
}

// Equal builds the default configuration: the same weight on every pillar.
func Equal(pillars []model.Pillar) Configuration {
	cfg := make(Configuration, len(pillars))
	for _, p := range pillars {
		cfg[p] = 1 / float64(len(pillars))
	}
	return cfg
}

// Sum returns the total of all weights. A valid Configuration sums to 1.0
// within SumTolerance.
func (c Configuration) Sum() float64 {
	var total float64
	for _, w := range c {
		total += w
	}
	return total
}

// Clone returns an independent copy of the configuration.
func (c Configuration) Clone() Configuration {
	out := make(Configuration, len(c))
	for p, w := range c {
		out[p] = w
	}
	return out
}
