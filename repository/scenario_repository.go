package repository

import (
	"errors"

	"emi-planner/domain"
)

// ErrScenarioNotFound is returned when no scenario exists for the given id.
var ErrScenarioNotFound = errors.New("escenario no encontrado")

type ScenarioRepository interface {
	Save(scenario domain.Scenario) error
	FindByID(id string) (domain.Scenario, error)
}
