package repository

import (
	"sync"

	"emi-planner/domain"
)

// ScenarioRepositoryMemory is an in-memory implementation of ScenarioRepository.
type ScenarioRepositoryMemory struct {
	mu   sync.RWMutex
	data map[string]domain.Scenario
}

// NewScenarioRepositoryMemory creates a new in-memory scenario repository.
func NewScenarioRepositoryMemory() *ScenarioRepositoryMemory {
	return &ScenarioRepositoryMemory{
		data: make(map[string]domain.Scenario),
	}
}

// Save stores the scenario in memory, replacing any previous version.
func (r *ScenarioRepositoryMemory) Save(scenario domain.Scenario) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[scenario.ID] = scenario
	return nil
}

func (r *ScenarioRepositoryMemory) FindByID(id string) (domain.Scenario, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	scenario, ok := r.data[id]
	if !ok {
		return domain.Scenario{}, ErrScenarioNotFound
	}
	return scenario, nil
}
