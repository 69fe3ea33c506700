package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"clinscore/internal/model"
	"clinscore/internal/service"
)

// QuestionnaireHandler handles catalog endpoints
type QuestionnaireHandler struct {
	catalogSvc *service.CatalogService
}

// NewQuestionnaireHandler creates a new questionnaire handler
func NewQuestionnaireHandler(catalogSvc *service.CatalogService) *QuestionnaireHandler {
	return &QuestionnaireHandler{catalogSvc: catalogSvc}
}

// CreateQuestionnaireRequest is the request body for creating a questionnaire
type CreateQuestionnaireRequest struct {
	Title     string           `json:"title"`
	Questions []model.Question `json:"questions"`
}

// Create handles POST /v1/questionnaires
func (h *QuestionnaireHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateQuestionnaireRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == "" || len(req.Questions) == 0 {
		writeError(w, http.StatusBadRequest, "title and questions are required")
		return
	}

	q := &model.Questionnaire{
		Title:     req.Title,
		Questions: req.Questions,
	}

	id, err := h.catalogSvc.CreateQuestionnaire(r.Context(), q)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"questionnaireId": id})
}

// Get handles GET /v1/questionnaires/{id}
func (h *QuestionnaireHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	q, err := h.catalogSvc.GetQuestionnaire(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrQuestionnaireNotFound) {
			writeError(w, http.StatusNotFound, "questionnaire not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, q)
}

// SetScoringConfigRequest is the request body for configuring scoring
type SetScoringConfigRequest struct {
	Method     model.ScoringMethod `json:"method"`
	CustomFunc string              `json:"customFunc,omitempty"`
	MaxScore   *int                `json:"maxScore,omitempty"`
	RiskLevels []model.RiskBand    `json:"riskLevels"`
}

// SetScoringConfig handles PUT /v1/questionnaires/{id}/scoring-config
func (h *QuestionnaireHandler) SetScoringConfig(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req SetScoringConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cfg := &model.ScoringConfig{
		QuestionnaireID: id,
		Method:          req.Method,
		CustomFunc:      req.CustomFunc,
		MaxScore:        req.MaxScore,
		RiskLevels:      req.RiskLevels,
	}

	if err := h.catalogSvc.SetScoringConfig(r.Context(), cfg); err != nil {
		if errors.Is(err, service.ErrQuestionnaireNotFound) {
			writeError(w, http.StatusNotFound, "questionnaire not found")
			return
		}
		// Band/method validation problems are the author's to fix
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, cfg)
}
