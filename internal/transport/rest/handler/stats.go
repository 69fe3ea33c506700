package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"clinscore/internal/service"
)

// StatsHandler serves dashboard aggregates
type StatsHandler struct {
	statsSvc *service.StatsService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(statsSvc *service.StatsService) *StatsHandler {
	return &StatsHandler{statsSvc: statsSvc}
}

// ForQuestionnaire handles GET /v1/questionnaires/{id}/stats
func (h *StatsHandler) ForQuestionnaire(w http.ResponseWriter, r *http.Request) {
	questionnaireID := mux.Vars(r)["id"]

	stats, err := h.statsSvc.ForQuestionnaire(r.Context(), questionnaireID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
