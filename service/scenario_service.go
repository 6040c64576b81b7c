package service

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"emi-planner/domain"
	"emi-planner/repository"
)

type ScenarioService struct {
	repo      repository.ScenarioRepository
	schedules *ScheduleService
}

func NewScenarioService(
	repo repository.ScenarioRepository,
	schedules *ScheduleService,
) *ScenarioService {
	return &ScenarioService{repo: repo, schedules: schedules}
}

// Save validates and persists a scenario, assigning an id and the current
// schema version when missing.
func (s *ScenarioService) Save(scenario domain.Scenario) (domain.Scenario, error) {
	if err := validateTerms(scenario.Terms()); err != nil {
		return domain.Scenario{}, err
	}
	if _, err := MergeOverrides(scenario); err != nil {
		return domain.Scenario{}, err
	}

	if scenario.ID == "" {
		scenario.ID = uuid.NewString()
	}
	if scenario.SchemaVersion == 0 {
		scenario.SchemaVersion = ScenarioSchemaVersion
	}

	if err := s.repo.Save(scenario); err != nil {
		return domain.Scenario{}, fmt.Errorf("no se pudo guardar el escenario: %w", err)
	}
	return scenario, nil
}

func (s *ScenarioService) Get(id string) (domain.Scenario, error) {
	return s.repo.FindByID(id)
}

// Recompute loads a scenario by id and runs the full schedule with its
// sparse maps merged into an override set.
func (s *ScenarioService) Recompute(id string) (domain.ScheduleResult, error) {
	scenario, err := s.repo.FindByID(id)
	if err != nil {
		return domain.ScheduleResult{}, err
	}

	overrides, err := MergeOverrides(scenario)
	if err != nil {
		return domain.ScheduleResult{}, err
	}

	return s.schedules.Recompute(scenario.Terms(), overrides)
}

// MergeOverrides folds the scenario's three sparse maps into a single
// override set keyed by month index. Keys that do not parse to a month
// index >= 1 are skipped.
func MergeOverrides(scenario domain.Scenario) (domain.OverrideSet, error) {
	overrides := domain.OverrideSet{}

	for key, amount := range scenario.Disbursements {
		month, ok := parseMonthKey(key)
		if !ok {
			continue
		}
		if amount < 0 {
			return nil, fmt.Errorf("mes %d: desembolso inválido", month)
		}
		override := overrides[month]
		override.Disbursement = amount
		overrides[month] = override
	}

	for key, amount := range scenario.Prepayments {
		month, ok := parseMonthKey(key)
		if !ok {
			continue
		}
		if amount < 0 {
			return nil, fmt.Errorf("mes %d: prepago inválido", month)
		}
		override := overrides[month]
		override.Prepayment = amount
		overrides[month] = override
	}

	for key, rate := range scenario.ROIChanges {
		month, ok := parseMonthKey(key)
		if !ok {
			continue
		}
		if rate < 0 || rate > MaxAnnualRatePercent {
			return nil, fmt.Errorf("mes %d: tasa inválida", month)
		}
		newRate := rate
		override := overrides[month]
		override.RateChange = &newRate
		overrides[month] = override
	}

	return overrides, nil
}

func parseMonthKey(key string) (int, bool) {
	month, err := strconv.Atoi(key)
	if err != nil || month < 1 {
		return 0, false
	}
	return month, true
}
