// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/riskradar/internal/domain/model"
	"github.com/okian/riskradar/internal/domain/types"
	"github.com/okian/riskradar/internal/domain/weights"
)

// ScenarioDependencies defines the interface for scenario operations.
type ScenarioDependencies interface {
	ApplyScenario(ctx context.Context, requested map[model.Pillar]float64) (types.Scenario, error)
	ActiveScenario() types.Scenario
}

// ScenarioHandler handles weight scenario requests.
type ScenarioHandler struct {
	deps ScenarioDependencies
}

// NewScenarioHandler creates a new scenario handler.
func NewScenarioHandler(deps ScenarioDependencies) *ScenarioHandler {
	return &ScenarioHandler{deps: deps}
}

// HandleScenario handles GET and POST /scenario requests. A rejected POST
// leaves the previously active scenario in place; the error body reports
// why the request was refused.
func (h *ScenarioHandler) HandleScenario(w http.ResponseWriter, r *http.Request) {
	const op = "api.scenario"
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.deps.ActiveScenario())
	case http.MethodPost:
		var req scenarioRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		if err := req.validate(); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}

		requested := make(map[model.Pillar]float64, len(req.Weights))
		for name, wgt := range req.Weights {
			requested[model.Pillar(name)] = wgt
		}
		scenario, err := h.deps.ApplyScenario(r.Context(), requested)
		if err != nil {
			if errors.Is(err, weights.ErrConfiguration) {
				writeError(w, http.StatusBadRequest, "invalid_weights", err)
				return
			}
			writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
			return
		}
		writeJSON(w, http.StatusOK, scenario)
	default:
		http.NotFound(w, r)
	}
}
