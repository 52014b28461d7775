// Package scoring combines per-pillar gaps and validated weights into one
// composite risk score per city and maps it to a discrete risk tier.
package scoring

import (
	"fmt"
	"math"

	"github.com/okian/riskradar/internal/domain/model"
	"github.com/okian/riskradar/internal/domain/weights"
)

// Default classification thresholds. Boundary values belong to the higher
// tier: composite < low is Low, low <= composite < high is Moderate,
// composite >= high is High.
const (
	DefaultLowThreshold  = 0.33
	DefaultHighThreshold = 0.66
)

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithThresholds sets the two classification cut points. Ignored unless
// 0 < low < high < 1.
func WithThresholds(low, high float64) Option {
	return func(s *Scorer) {
		if low > 0 && low < high && high < 1 {
			s.lowThreshold = low
			s.highThreshold = high
		}
	}
}

// Scorer computes composite scores and risk tiers. It is stateless apart
// from its thresholds and safe for concurrent use.
type Scorer struct {
	lowThreshold  float64
	highThreshold float64
}

// New creates a Scorer with the default thresholds.
func New(opts ...Option) *Scorer {
	s := &Scorer{
		lowThreshold:  DefaultLowThreshold,
		highThreshold: DefaultHighThreshold,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Thresholds returns the active (low, high) cut points.
func (s *Scorer) Thresholds() (float64, float64) {
	return s.lowThreshold, s.highThreshold
}

// Score computes the weighted composite for one gap vector:
// composite = sum over pillars of weight * gap. Since weights sum to 1 and
// gaps lie in [0,1], the composite is a convex combination and lies in
// [0,1]. Accumulation runs in pillar-name order so repeated calls are
// bit-for-bit reproducible regardless of map iteration order.
func (s *Scorer) Score(gaps model.GapVector, cfg weights.Configuration) (float64, []model.PillarContribution, error) {
	if len(gaps) != len(cfg) {
		return 0, nil, fmt.Errorf("%w: %d gaps vs %d weights", ErrPillarMismatch, len(gaps), len(cfg))
	}

	breakdown := make([]model.PillarContribution, 0, len(gaps))
	var composite float64
	for _, p := range gaps.Pillars() {
		w, ok := cfg[p]
		if !ok {
			return 0, nil, fmt.Errorf("%w: no weight for pillar %q", ErrPillarMismatch, p)
		}
		c := w * gaps[p]
		composite += c
		breakdown = append(breakdown, model.PillarContribution{
			Pillar:       p,
			Weight:       w,
			Gap:          gaps[p],
			Contribution: c,
		})
	}

	// Guard against floating-point drift at the edges.
	composite = math.Max(0, math.Min(1, composite))
	return composite, breakdown, nil
}

// Classify maps a composite score onto a risk tier using the configured
// thresholds.
func (s *Scorer) Classify(composite float64) model.RiskLevel {
	switch {
	case composite >= s.highThreshold:
		return model.RiskHigh
	case composite >= s.lowThreshold:
		return model.RiskModerate
	default:
		return model.RiskLow
	}
}
