package service

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"emi-planner/domain"
	"emi-planner/repository"
)

type ScheduleService struct {
	cache repository.CacheRepository
}

// NewScheduleService creates a new ScheduleService backed by the given cache.
func NewScheduleService(cache repository.CacheRepository) *ScheduleService {
	return &ScheduleService{cache: cache}
}

// Baseline validates the terms and computes the reference schedule.
func (s *ScheduleService) Baseline(terms domain.LoanTerms) (domain.ScheduleResult, error) {
	if err := validateTerms(terms); err != nil {
		return domain.ScheduleResult{}, err
	}
	return RunBaseline(terms), nil
}

// Recompute validates the inputs and re-runs the full schedule with the
// sparse overrides applied, consulting the cache first.
func (s *ScheduleService) Recompute(
	terms domain.LoanTerms,
	overrides domain.OverrideSet,
) (domain.ScheduleResult, error) {

	if err := validateTerms(terms); err != nil {
		return domain.ScheduleResult{}, err
	}
	if err := validateOverrides(overrides); err != nil {
		return domain.ScheduleResult{}, err
	}

	key, keyErr := cacheKey(terms, overrides)
	if keyErr == nil {
		if cached, ok := s.cache.Get(key); ok {
			var result domain.ScheduleResult
			if err := json.Unmarshal([]byte(cached), &result); err == nil {
				return result, nil
			}
			// Entrada corrupta en cache: se recalcula
		}
	}

	result := RunWithOverrides(terms, overrides)

	// Guardar en cache (no crítico si falla)
	if keyErr == nil {
		if encoded, err := json.Marshal(result); err == nil {
			if err := s.cache.Set(key, string(encoded)); err != nil {
				log.Printf("Warning: failed to cache schedule: %v", err)
			}
		}
	}

	return result, nil
}

func validateTerms(terms domain.LoanTerms) error {
	if terms.Principal <= 0 {
		return errors.New("monto inválido")
	}
	if terms.Principal > MaxLoanAmount {
		return fmt.Errorf("monto excede el máximo permitido de $%.2f", MaxLoanAmount)
	}
	if terms.AnnualRatePercent < 0 {
		return errors.New("tasa inválida")
	}
	if terms.AnnualRatePercent > MaxAnnualRatePercent {
		return fmt.Errorf("tasa de interés excede el máximo permitido de %.2f%%", MaxAnnualRatePercent)
	}
	if terms.TenureMonths < MinTenureMonths {
		return errors.New("plazo inválido")
	}
	if terms.TenureMonths > MaxTenureMonths {
		return fmt.Errorf("plazo excede el máximo permitido de %d meses", MaxTenureMonths)
	}
	return nil
}

func validateOverrides(overrides domain.OverrideSet) error {
	for month, override := range overrides {
		if month < 1 {
			return fmt.Errorf("índice de mes inválido: %d", month)
		}
		if override.Disbursement < 0 {
			return fmt.Errorf("mes %d: desembolso inválido", month)
		}
		if override.Prepayment < 0 {
			return fmt.Errorf("mes %d: prepago inválido", month)
		}
		if override.RateChange != nil {
			if *override.RateChange < 0 || *override.RateChange > MaxAnnualRatePercent {
				return fmt.Errorf("mes %d: tasa inválida", month)
			}
		}
	}
	return nil
}

// cacheKey derives a stable key from the canonical JSON of the inputs.
// Go serializes int-keyed maps in sorted key order, so equal override sets
// always hash the same.
func cacheKey(terms domain.LoanTerms, overrides domain.OverrideSet) (string, error) {
	payload, err := json.Marshal(struct {
		Terms     domain.LoanTerms   `json:"terms"`
		Overrides domain.OverrideSet `json:"overrides"`
	}{terms, overrides})
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return "schedule:" + hex.EncodeToString(sum[:]), nil
}
