// Package app provides the core assessment service that implements the
// dependencies required by the HTTP API: it owns the loaded dataset, the
// derived gap vectors, and the active weight scenario.
package app

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/riskradar/internal/adapters/dataset"
	"github.com/okian/riskradar/internal/adapters/repository"
	"github.com/okian/riskradar/internal/domain/model"
	"github.com/okian/riskradar/internal/domain/normalize"
	"github.com/okian/riskradar/internal/domain/scoring"
	"github.com/okian/riskradar/internal/domain/types"
	"github.com/okian/riskradar/internal/domain/weights"
	"github.com/okian/riskradar/pkg/logger"
	"github.com/okian/riskradar/pkg/metrics"
)

// Service holds the immutable dataset state and the single mutable piece:
// the active weight configuration. It re-aggregates and re-classifies every
// city on each scenario change without re-deriving gaps from raw data.
type Service struct {
	mu sync.RWMutex

	// Collaborators
	loader     *dataset.Loader
	normalizer *normalize.Normalizer
	scorer     *scoring.Scorer
	store      repository.Store

	// Configuration
	datasetPath    string
	defaultWeights map[string]float64

	// Immutable after Start
	records []model.IndicatorRecord
	byID    map[string]model.IndicatorRecord
	gaps    map[string]model.GapVector
	order   []string // city ids, name order
	dropped []dataset.DroppedRow

	// Active scenario, replaced wholesale on each change
	scenarioID string
	current    weights.Configuration

	started bool
	logger  logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDatasetPath sets the indicator CSV location.
func WithDatasetPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.datasetPath = path
		}
	}
}

// WithLoader replaces the dataset loader.
func WithLoader(l *dataset.Loader) Option {
	return func(s *Service) {
		if l != nil {
			s.loader = l
		}
	}
}

// WithNormalizer replaces the indicator normalizer.
func WithNormalizer(n *normalize.Normalizer) Option {
	return func(s *Service) {
		if n != nil {
			s.normalizer = n
		}
	}
}

// WithScorer replaces the aggregator/classifier.
func WithScorer(sc *scoring.Scorer) Option {
	return func(s *Service) {
		if sc != nil {
			s.scorer = sc
		}
	}
}

// WithStore replaces the ranking store.
func WithStore(st repository.Store) Option {
	return func(s *Service) {
		if st != nil {
			s.store = st
		}
	}
}

// WithDefaultWeights seeds the startup scenario. Keys are pillar names in
// any non-negative scale; empty means equal weights.
func WithDefaultWeights(w map[string]float64) Option {
	return func(s *Service) {
		s.defaultWeights = w
	}
}

// New constructs a Service with default collaborators.
func New(opts ...Option) *Service {
	s := &Service{
		loader:     dataset.New(),
		normalizer: normalize.New(),
		scorer:     scoring.New(),
		store:      repository.NewMemStore(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start loads the dataset, derives each city's gap vector once, and applies
// the startup scenario. Load-time failures surface here and leave the
// service unstarted; nothing is partially scored.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "loading indicator dataset", logger.String("path", s.datasetPath))

	res, err := s.loader.LoadFile(ctx, s.datasetPath)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}

	// Normalization failures follow the same row policy as parse failures:
	// reject aborts the load, drop reports the row and continues.
	gaps := make(map[string]model.GapVector, len(res.Records))
	records := make([]model.IndicatorRecord, 0, len(res.Records))
	dropped := res.Dropped
	for _, rec := range res.Records {
		gv, err := s.normalizer.Vector(rec)
		if err != nil {
			if s.loader.Policy() == dataset.PolicyReject {
				return fmt.Errorf("normalize dataset: %w", err)
			}
			dropped = append(dropped, dataset.DroppedRow{City: rec.City, Reason: err.Error()})
			continue
		}
		gaps[rec.ID] = gv
		records = append(records, rec)
	}
	if len(records) == 0 {
		return fmt.Errorf("normalize dataset: %w", dataset.ErrEmptyDataset)
	}

	order := make([]string, 0, len(records))
	byID := make(map[string]model.IndicatorRecord, len(records))
	for _, rec := range records {
		order = append(order, rec.ID)
		byID[rec.ID] = rec
	}
	sort.Strings(order)

	s.records = records
	s.byID = byID
	s.gaps = gaps
	s.order = order
	s.dropped = dropped

	cfg, err := s.startupWeights()
	if err != nil {
		return err
	}
	if err := s.applyLocked(ctx, cfg); err != nil {
		return err
	}

	s.started = true
	metrics.UpdateCitiesTracked(len(records))
	metrics.RecordRowsDropped(len(dropped))
	s.logger.Info(ctx, "assessment service started",
		logger.Int("cities", len(records)),
		logger.Int("droppedRows", len(dropped)),
	)
	for _, d := range dropped {
		s.logger.Warn(ctx, "dropped dataset row",
			logger.Int("line", d.Line),
			logger.String("city", d.City),
			logger.String("reason", d.Reason),
		)
	}

	return nil
}

// startupWeights builds the initial configuration: configured defaults when
// present, otherwise equal weights across all pillars.
func (s *Service) startupWeights() (weights.Configuration, error) {
	if len(s.defaultWeights) == 0 {
		return weights.Equal(s.normalizer.Pillars()), nil
	}
	requested := make(map[model.Pillar]float64, len(s.defaultWeights))
	for name, w := range s.defaultWeights {
		requested[model.Pillar(name)] = w
	}
	cfg, err := weights.Normalize(requested, s.normalizer.Pillars())
	if err != nil {
		return nil, fmt.Errorf("default weights: %w", err)
	}
	return cfg, nil
}

// ApplyScenario validates a requested weighting and re-scores every city
// against the held gap vectors. A rejected request leaves the previous
// scenario active and is reported back to the caller.
func (s *Service) ApplyScenario(ctx context.Context, requested map[model.Pillar]float64) (types.Scenario, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := weights.Normalize(requested, s.normalizer.Pillars())
	if err != nil {
		metrics.RecordScenarioRejected()
		s.logger.Warn(ctx, "scenario rejected", logger.Error(err))
		return types.Scenario{}, err
	}

	if err := s.applyLocked(ctx, cfg); err != nil {
		return types.Scenario{}, err
	}

	metrics.RecordScenarioApplied()
	s.logger.Info(ctx, "scenario applied",
		logger.String("scenarioID", s.scenarioID),
		logger.Int("cities", len(s.order)),
	)
	return types.Scenario{ID: s.scenarioID, Weights: s.current.Clone()}, nil
}

// applyLocked scores every city under cfg and swaps in the new scenario.
// Caller must hold the write lock.
func (s *Service) applyLocked(ctx context.Context, cfg weights.Configuration) error {
	start := time.Now()

	scored := make([]model.CompositeScoreRecord, 0, len(s.order))
	for _, id := range s.order {
		composite, breakdown, err := s.scorer.Score(s.gaps[id], cfg)
		if err != nil {
			metrics.RecordScoringError()
			return fmt.Errorf("score %s: %w", id, err)
		}
		rec := s.byID[id]
		scored = append(scored, model.CompositeScoreRecord{
			ID:        id,
			City:      rec.City,
			Country:   rec.Country,
			Composite: composite,
			Level:     s.scorer.Classify(composite),
			Breakdown: breakdown,
		})
	}

	s.current = cfg
	s.scenarioID = uuid.NewString()
	s.store.Replace(ctx, scored)

	metrics.RecordRescoreLatency(float64(time.Since(start).Milliseconds()))
	return nil
}

// ActiveScenario returns the scenario currently driving the ranking.
func (s *Service) ActiveScenario() types.Scenario {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return types.Scenario{ID: s.scenarioID, Weights: s.current.Clone()}
}

// TopN returns the n highest-risk cities under the active scenario.
func (s *Service) TopN(ctx context.Context, n int) ([]model.CompositeScoreRecord, error) {
	return s.store.TopN(ctx, n)
}

// City returns one city's scored record with its full breakdown.
func (s *Service) City(ctx context.Context, id string) (model.CompositeScoreRecord, error) {
	return s.store.City(ctx, id)
}

// GetStats returns service statistics for monitoring and the overview pane.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"cities":      len(s.records),
		"droppedRows": len(s.dropped),
	}
	if !s.started {
		return stats
	}

	stats["scenarioID"] = s.scenarioID
	stats["weights"] = s.current.Clone()

	var population float64
	for _, rec := range s.records {
		population += rec.PopulationMillions
	}
	stats["populationMillions"] = population

	ranked, err := s.store.TopN(ctx, s.store.Count(ctx))
	if err != nil || len(ranked) == 0 {
		return stats
	}
	var mean float64
	for _, r := range ranked {
		mean += r.Composite
	}
	mean /= float64(len(ranked))
	stats["meanComposite"] = mean
	stats["highestRiskCity"] = ranked[0].City
	stats["mostResilientCity"] = ranked[len(ranked)-1].City

	return stats
}
