package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"clinscore/internal/model"
	"clinscore/internal/scoring"
	"clinscore/internal/service"
)

// ResponseHandler handles response submission and retrieval
type ResponseHandler struct {
	responseSvc *service.ResponseService
}

// NewResponseHandler creates a new response handler
func NewResponseHandler(responseSvc *service.ResponseService) *ResponseHandler {
	return &ResponseHandler{responseSvc: responseSvc}
}

// Submit handles POST /v1/questionnaires/{id}/responses
func (h *ResponseHandler) Submit(w http.ResponseWriter, r *http.Request) {
	questionnaireID := mux.Vars(r)["id"]

	var sub model.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.responseSvc.Submit(r.Context(), questionnaireID, &sub)
	if err != nil {
		writeSubmitError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// Get handles GET /v1/responses/{id}
func (h *ResponseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	resp, err := h.responseSvc.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrResponseNotFound) {
			writeError(w, http.StatusNotFound, "response not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// List handles GET /v1/questionnaires/{id}/responses
func (h *ResponseHandler) List(w http.ResponseWriter, r *http.Request) {
	questionnaireID := mux.Vars(r)["id"]

	responses, err := h.responseSvc.ListByQuestionnaire(r.Context(), questionnaireID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"responses": responses})
}

// Recalculate handles POST /v1/questionnaires/{id}/recalculate
func (h *ResponseHandler) Recalculate(w http.ResponseWriter, r *http.Request) {
	questionnaireID := mux.Vars(r)["id"]

	summary, err := h.responseSvc.RecalculateAll(r.Context(), questionnaireID)
	if err != nil {
		writeSubmitError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// writeSubmitError maps scoring-pipeline errors onto HTTP statuses:
// rejected submissions carry their full validation error list back to the
// submitter, configuration faults surface as admin-facing server errors.
func writeSubmitError(w http.ResponseWriter, err error) {
	var failure *scoring.ScoringFailure
	if errors.As(err, &failure) {
		if failure.Rejected() {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
				"error":            "submission rejected",
				"validationErrors": failure.ValidationErrors,
			})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"error":       "scoring configuration is invalid for this questionnaire",
			"configError": failure.ConfigError,
		})
		return
	}

	switch {
	case errors.Is(err, service.ErrQuestionnaireNotFound):
		writeError(w, http.StatusNotFound, "questionnaire not found")
	case errors.Is(err, service.ErrNoScoringConfig):
		writeError(w, http.StatusConflict, "no scoring config for questionnaire")
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
