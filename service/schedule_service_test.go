package service

import (
	"reflect"
	"testing"

	"emi-planner/domain"
	"emi-planner/repository"
)

func TestScheduleService_InvalidTerms(t *testing.T) {

	service := NewScheduleService(repository.NewMockCache())

	cases := []struct {
		name  string
		terms domain.LoanTerms
	}{
		{"zero principal", domain.LoanTerms{Principal: 0, AnnualRatePercent: 7.5, TenureMonths: 60}},
		{"excessive principal", domain.LoanTerms{Principal: 2_000_000_000, AnnualRatePercent: 7.5, TenureMonths: 60}},
		{"negative rate", domain.LoanTerms{Principal: 1000, AnnualRatePercent: -1, TenureMonths: 60}},
		{"excessive rate", domain.LoanTerms{Principal: 1000, AnnualRatePercent: 60, TenureMonths: 60}},
		{"zero tenure", domain.LoanTerms{Principal: 1000, AnnualRatePercent: 7.5, TenureMonths: 0}},
		{"excessive tenure", domain.LoanTerms{Principal: 1000, AnnualRatePercent: 7.5, TenureMonths: 601}},
	}

	for _, tc := range cases {
		if _, err := service.Baseline(tc.terms); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}

func TestScheduleService_InvalidOverrides(t *testing.T) {

	service := NewScheduleService(repository.NewMockCache())
	badRate := 99.0

	cases := []struct {
		name      string
		overrides domain.OverrideSet
	}{
		{"month zero", domain.OverrideSet{0: {Prepayment: 100}}},
		{"negative disbursement", domain.OverrideSet{3: {Disbursement: -1}}},
		{"negative prepayment", domain.OverrideSet{3: {Prepayment: -1}}},
		{"excessive rate", domain.OverrideSet{3: {RateChange: &badRate}}},
	}

	for _, tc := range cases {
		if _, err := service.Recompute(testTerms, tc.overrides); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}

func TestScheduleService_RecomputeCaches(t *testing.T) {

	cache := repository.NewMockCache()
	service := NewScheduleService(cache)
	overrides := domain.OverrideSet{12: {Prepayment: 100_000}}

	first, err := service.Recompute(testTerms, overrides)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(cache.Data) != 1 {
		t.Fatalf("expected one cached entry, got %d", len(cache.Data))
	}

	second, err := service.Recompute(testTerms, overrides)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("expected cached result to match the computed one")
	}
}

func TestScheduleService_CorruptCacheEntryRecovers(t *testing.T) {

	cache := repository.NewMockCache()
	service := NewScheduleService(cache)

	result, err := service.Recompute(testTerms, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Corromper la única entrada y volver a pedir el mismo cronograma
	for key := range cache.Data {
		cache.Data[key] = "{not-json"
	}

	recovered, err := service.Recompute(testTerms, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if recovered.CompletionMonth != result.CompletionMonth {
		t.Errorf("expected completion %d after recompute, got %d",
			result.CompletionMonth, recovered.CompletionMonth)
	}
}
