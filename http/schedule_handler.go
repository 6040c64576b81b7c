package http

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"emi-planner/domain"
	"emi-planner/service"
)

type ScheduleRequest struct {
	Terms     domain.LoanTerms   `json:"terms"`
	Overrides domain.OverrideSet `json:"overrides,omitempty"`
}

type ScheduleHandler struct {
	service   *service.ScheduleService
	aiService *service.AIService
}

func NewScheduleHandler(
	scheduleService *service.ScheduleService,
	aiService *service.AIService,
) *ScheduleHandler {
	return &ScheduleHandler{service: scheduleService, aiService: aiService}
}

// Baseline computes the reference schedule for the given terms.
func (h *ScheduleHandler) Baseline(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var terms domain.LoanTerms
	if err := json.NewDecoder(r.Body).Decode(&terms); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.Baseline(terms)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, result)
}

// Recompute re-runs the schedule with the sparse overrides applied.
func (h *ScheduleHandler) Recompute(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Validar Content-Type
	contentType := r.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		http.Error(w, "Content-Type must be application/json", http.StatusUnsupportedMediaType)
		return
	}

	var req ScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding request body: %v", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.Recompute(req.Terms, req.Overrides)
	if err != nil {
		log.Printf("Error recomputing schedule: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result.Explanation = h.aiService.GenerateScheduleExplanation(req.Terms, result)

	writeJSON(w, result)
}

// writeJSON codifica en buffer primero para evitar escribir el header si
// la codificación falla.
func writeJSON(w http.ResponseWriter, payload any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		log.Printf("Error encoding response: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("Error writing response: %v", err)
	}
}
