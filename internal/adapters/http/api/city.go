// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/okian/riskradar/internal/domain/model"
)

// CityDependencies defines the interface for single-city reads.
type CityDependencies interface {
	City(ctx context.Context, id string) (model.CompositeScoreRecord, error)
}

// CityHandler handles per-city breakdown requests.
type CityHandler struct {
	deps CityDependencies
}

// NewCityHandler creates a new city handler.
func NewCityHandler(deps CityDependencies) *CityHandler {
	return &CityHandler{deps: deps}
}

// HandleGetCity handles GET /cities/{id} requests, where id is the stable
// record identifier, e.g. "tokyo-japan".
func (h *CityHandler) HandleGetCity(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_city"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/cities/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	record, err := h.deps.City(r.Context(), id)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, record)
}
