package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"emi-planner/domain"
	"emi-planner/repository"
	"emi-planner/service"
)

func newScenarioHandler() *ScenarioHandler {
	scheduleService := service.NewScheduleService(repository.NewMockCache())
	scenarioService := service.NewScenarioService(
		repository.NewScenarioRepositoryMemory(),
		scheduleService,
	)
	return NewScenarioHandler(scenarioService)
}

func TestScenarioHandler_SaveAndGet(t *testing.T) {

	handler := newScenarioHandler()

	body := []byte(`{
		"loanAmount": 1000000,
		"roiStart": 7.5,
		"tenureMonths": 60,
		"disbursements": {},
		"prepayments": {"12": 100000},
		"roiChanges": {}
	}`)

	req := httptest.NewRequest(http.MethodPost, "/scenario/save", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	handler.Save(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var saved domain.Scenario
	if err := json.NewDecoder(w.Result().Body).Decode(&saved); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if saved.ID == "" {
		t.Fatal("expected an assigned id")
	}

	req = httptest.NewRequest(http.MethodGet, "/scenario/get?id="+saved.ID, nil)
	w = httptest.NewRecorder()

	handler.Get(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var loaded domain.Scenario
	if err := json.NewDecoder(w.Result().Body).Decode(&loaded); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if loaded.Prepayments["12"] != 100000 {
		t.Errorf("expected prepayment to round-trip, got %+v", loaded.Prepayments)
	}
}

func TestScenarioHandler_GetNotFound(t *testing.T) {

	handler := newScenarioHandler()

	req := httptest.NewRequest(http.MethodGet, "/scenario/get?id=missing", nil)
	w := httptest.NewRecorder()

	handler.Get(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestScenarioHandler_RecomputeMissingID(t *testing.T) {

	handler := newScenarioHandler()

	req := httptest.NewRequest(http.MethodPost, "/scenario/recompute", nil)
	w := httptest.NewRecorder()

	handler.Recompute(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}
