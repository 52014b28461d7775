// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/riskradar/internal/adapters/repository"
	"github.com/okian/riskradar/internal/domain/model"
	"github.com/okian/riskradar/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// ApplyScenario validates and applies a new pillar weighting.
	ApplyScenario(ctx context.Context, requested map[model.Pillar]float64) (types.Scenario, error)

	// ActiveScenario returns the weighting currently driving the ranking.
	ActiveScenario() types.Scenario

	// Read operations expose the scored ranking.
	TopN(ctx context.Context, n int) ([]model.CompositeScoreRecord, error)
	City(ctx context.Context, id string) (model.CompositeScoreRecord, error)
}

// Scenario mirrors the shape returned by scenario endpoints.
type Scenario = types.Scenario

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	rankingHandler  *RankingHandler
	cityHandler     *CityHandler
	scenarioHandler *ScenarioHandler
}

// NewServer creates a new API server with all handlers. maxLimit caps the
// ranking page size.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLimit int) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		rankingHandler:  NewRankingHandler(deps, maxLimit),
		cityHandler:     NewCityHandler(deps),
		scenarioHandler: NewScenarioHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/ranking", MetricsMiddleware(s.rankingHandler.HandleGetRanking, "ranking"))
	mux.HandleFunc("/cities/", MetricsMiddleware(s.cityHandler.HandleGetCity, "cities"))
	mux.HandleFunc("/scenario", MetricsMiddleware(s.scenarioHandler.HandleScenario, "scenario"))
}

// scenarioRequest mirrors the POST /scenario body. Weight values may use
// any non-negative scale; the engine normalizes internally.
type scenarioRequest struct {
	Weights map[string]float64 `json:"weights"`
}

func (r scenarioRequest) validate() error {
	if len(r.Weights) == 0 {
		return errors.New("missing weights")
	}
	return nil
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// isNotFound translates upstream not-found errors to 404.
func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
