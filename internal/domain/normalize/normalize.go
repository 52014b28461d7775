// Package normalize converts raw per-pillar indicators into bounded
// shortfall ("gap") values in [0,1], where 0 is the best reference
// condition and 1 the worst.
package normalize

import (
	"fmt"
	"math"

	"github.com/okian/riskradar/internal/domain/model"
)

// Default reference bounds. These are fixed, documented constants rather
// than observed dataset extremes so that identical inputs score identically
// across runs and datasets.
const (
	defaultIndexBest  = 100.0 // quality-style indices: road, grid, water, healthcare, preparedness
	defaultIndexWorst = 0.0
	defaultGDPBest    = 60_000.0 // USD per capita at which economic shortfall reaches zero
	defaultGDPWorst   = 0.0
	defaultPopCeiling = 40.0 // millions; reference ceiling for population pressure
)

// Bounds is the reference pair for one pillar. Direction is encoded by
// ordering: for higher-is-better indicators Best sits above Worst, and the
// gap formula flips sign accordingly.
type Bounds struct {
	Best  float64
	Worst float64
}

// Gap maps a raw value onto [0,1] against the reference pair:
// clamp((value - best) / (worst - best), 0, 1).
// Values at Best map to 0 and values at Worst map to 1.
func Gap(value float64, b Bounds) (float64, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%w: %v", ErrMissingValue, value)
	}
	if b.Best == b.Worst {
		return 0, fmt.Errorf("%w: best == worst == %v", ErrDegenerateBounds, b.Best)
	}
	g := (value - b.Best) / (b.Worst - b.Best)
	return math.Max(0, math.Min(1, g)), nil
}

// Option applies a configuration option to the Normalizer.
type Option func(*Normalizer)

// WithBounds overrides the reference pair for a single pillar.
func WithBounds(p model.Pillar, b Bounds) Option {
	return func(n *Normalizer) {
		n.bounds[p] = b
	}
}

// WithGDPTarget sets the per-capita GDP at which the economic gap closes.
func WithGDPTarget(usd float64) Option {
	return func(n *Normalizer) {
		if usd > 0 {
			n.bounds[model.PillarEconomic] = Bounds{Best: usd, Worst: 0}
		}
	}
}

// WithPopulationCeiling sets the reference population (millions) treated as
// maximal pressure.
func WithPopulationCeiling(millions float64) Option {
	return func(n *Normalizer) {
		if millions > 0 {
			n.bounds[model.PillarPopulation] = Bounds{Best: 0, Worst: millions}
		}
	}
}

// Normalizer derives a city's GapVector from its raw indicators using a
// fixed per-pillar reference table.
type Normalizer struct {
	bounds map[model.Pillar]Bounds
}

// New creates a Normalizer with the documented default reference bounds.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{
		bounds: map[model.Pillar]Bounds{
			model.PillarTransport:    {Best: defaultIndexBest, Worst: defaultIndexWorst},
			model.PillarUtilities:    {Best: defaultIndexBest, Worst: defaultIndexWorst},
			model.PillarWater:        {Best: defaultIndexBest, Worst: defaultIndexWorst},
			model.PillarHealthcare:   {Best: defaultIndexBest, Worst: defaultIndexWorst},
			model.PillarPreparedness: {Best: defaultIndexBest, Worst: defaultIndexWorst},
			model.PillarEconomic:     {Best: defaultGDPBest, Worst: defaultGDPWorst},
			model.PillarPopulation:   {Best: 0, Worst: defaultPopCeiling},
		},
	}

	for _, opt := range opts {
		opt(n)
	}

	return n
}

// Bounds returns the reference pair in effect for a pillar.
func (n *Normalizer) Bounds(p model.Pillar) (Bounds, bool) {
	b, ok := n.bounds[p]
	return b, ok
}

// Pillars returns the pillar set this normalizer produces, in name order.
func (n *Normalizer) Pillars() []model.Pillar {
	return model.AllPillars()
}

// Vector computes the full gap vector for one city: six raw pillar gaps
// plus the derived population-pressure gap. Any invalid value or degenerate
// reference range fails the whole record.
func (n *Normalizer) Vector(rec model.IndicatorRecord) (model.GapVector, error) {
	raw := map[model.Pillar]float64{
		model.PillarTransport:    rec.RoadQuality,
		model.PillarUtilities:    rec.GridStability,
		model.PillarWater:        rec.WaterSecurity,
		model.PillarHealthcare:   rec.HealthcareCapacity,
		model.PillarPreparedness: rec.Preparedness,
		model.PillarEconomic:     rec.GDPPerCapita,
		model.PillarPopulation:   rec.PopulationMillions,
	}

	out := make(model.GapVector, len(raw))
	for _, p := range model.AllPillars() {
		g, err := Gap(raw[p], n.bounds[p])
		if err != nil {
			return nil, fmt.Errorf("pillar %s for %s: %w", p, rec.ID, err)
		}
		out[p] = g
	}
	return out, nil
}
