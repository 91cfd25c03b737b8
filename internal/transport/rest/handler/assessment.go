package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/Nexuses/mazars-cybersecurity-assessment/internal/model"
	"github.com/Nexuses/mazars-cybersecurity-assessment/internal/repository"
	"github.com/Nexuses/mazars-cybersecurity-assessment/internal/service"
	"github.com/Nexuses/mazars-cybersecurity-assessment/internal/transport/rest/middleware"
)

// AssessmentHandler handles assessment endpoints
type AssessmentHandler struct {
	assessmentSvc *service.AssessmentService
}

// NewAssessmentHandler creates a new assessment handler
func NewAssessmentHandler(assessmentSvc *service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{assessmentSvc: assessmentSvc}
}

// SubmitAssessmentRequest is the request body for storing an assessment.
// Score and CompletedQuestions are accepted for compatibility but always
// recomputed server-side.
type SubmitAssessmentRequest struct {
	PersonalInfo       model.PersonalInfo       `json:"personalInfo"`
	SelectedCategories []string                 `json:"selectedCategories"`
	SelectedAreas      []string                 `json:"selectedAreas"`
	Answers            map[string]string        `json:"answers"`
	Score              int                      `json:"score"`
	TotalQuestions     int                      `json:"totalQuestions"`
	CompletedQuestions int                      `json:"completedQuestions"`
	Metadata           model.AssessmentMetadata `json:"assessmentMetadata"`
	QuestionDetails    []model.QuestionDetail   `json:"questionDetails"`
}

// Submit handles POST /v1/assessments
func (h *AssessmentHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitAssessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	stored, created, err := h.assessmentSvc.Submit(r.Context(), service.SubmitInput{
		PersonalInfo:       req.PersonalInfo,
		SelectedCategories: req.SelectedCategories,
		SelectedAreas:      req.SelectedAreas,
		Answers:            req.Answers,
		TotalQuestions:     req.TotalQuestions,
		Metadata:           req.Metadata,
		QuestionDetails:    req.QuestionDetails,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	message := "Assessment stored successfully"
	if !created {
		message = "Assessment already submitted"
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":      message,
		"assessmentId": stored.ID,
		"data": map[string]interface{}{
			"score":              stored.Score,
			"totalQuestions":     stored.TotalQuestions,
			"completedQuestions": stored.CompletedQuestions,
			"selectedCategories": len(stored.SelectedCategories),
			"selectedAreas":      len(stored.SelectedAreas),
		},
	})
}

// List handles GET /v1/assessments
func (h *AssessmentHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page := repository.Page{
		Limit: intParam(query.Get("limit"), 10),
		Skip:  intParam(query.Get("skip"), 0),
	}
	filter := repository.Filter{
		Email:           query.Get("email"),
		EnvironmentName: query.Get("environmentName"),
	}
	if from, ok := dateParam(query.Get("dateFrom")); ok {
		filter.DateFrom = &from
	}
	if to, ok := dateParam(query.Get("dateTo")); ok {
		filter.DateTo = &to
	}

	result, err := h.assessmentSvc.List(r.Context(), filter, page)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"assessments": result.Items,
		"pagination": map[string]interface{}{
			"total":   result.Total,
			"limit":   result.Limit,
			"skip":    result.Skip,
			"hasMore": result.HasMore,
		},
		"statistics": result.Statistics,
	})
}

// Get handles GET /v1/assessments/{id}
func (h *AssessmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	assessment, err := h.assessmentSvc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, assessment)
}

// Report handles GET /v1/assessments/{id}/report
func (h *AssessmentHandler) Report(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	rep, err := h.assessmentSvc.Report(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, rep)
}

// Delete handles DELETE /v1/assessments/{id}
func (h *AssessmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	deleted, err := h.assessmentSvc.Delete(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":      "Assessment deleted successfully",
		"deletedCount": deleted,
	})
}

func intParam(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

func dateParam(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// writeServiceError maps service errors onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, model.ErrValidation), errors.Is(err, model.ErrInvalidID):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, model.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		log.Printf("request %s failed: %v", middleware.GetRequestID(r.Context()), err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// Helper functions
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
