package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/lib/pq"

	"emi-planner/domain"
)

const scenarioSchema = `
CREATE TABLE IF NOT EXISTS scenarios (
	id             TEXT PRIMARY KEY,
	schema_version INTEGER NOT NULL,
	loan_amount    DOUBLE PRECISION NOT NULL,
	roi_start      DOUBLE PRECISION NOT NULL,
	tenure_months  INTEGER NOT NULL,
	disbursements  JSONB NOT NULL DEFAULT '{}',
	prepayments    JSONB NOT NULL DEFAULT '{}',
	roi_changes    JSONB NOT NULL DEFAULT '{}'
)`

// ScenarioRepositoryPostgres persists scenarios in Postgres. The sparse
// maps round-trip through jsonb columns without loss.
type ScenarioRepositoryPostgres struct {
	db *sql.DB
}

// NewScenarioRepositoryPostgres opens the connection and ensures the schema.
func NewScenarioRepositoryPostgres(connStr string) (*ScenarioRepositoryPostgres, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("no se pudo abrir la base de datos: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("no se pudo conectar a la base de datos: %w", err)
	}
	if _, err := db.Exec(scenarioSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("no se pudo crear el esquema: %w", err)
	}
	return &ScenarioRepositoryPostgres{db: db}, nil
}

func (r *ScenarioRepositoryPostgres) Save(scenario domain.Scenario) error {
	disbursements, err := json.Marshal(scenario.Disbursements)
	if err != nil {
		return err
	}
	prepayments, err := json.Marshal(scenario.Prepayments)
	if err != nil {
		return err
	}
	roiChanges, err := json.Marshal(scenario.ROIChanges)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(`
		INSERT INTO scenarios
			(id, schema_version, loan_amount, roi_start, tenure_months,
			 disbursements, prepayments, roi_changes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			schema_version = EXCLUDED.schema_version,
			loan_amount    = EXCLUDED.loan_amount,
			roi_start      = EXCLUDED.roi_start,
			tenure_months  = EXCLUDED.tenure_months,
			disbursements  = EXCLUDED.disbursements,
			prepayments    = EXCLUDED.prepayments,
			roi_changes    = EXCLUDED.roi_changes`,
		scenario.ID, scenario.SchemaVersion, scenario.LoanAmount,
		scenario.ROIStart, scenario.TenureMonths,
		disbursements, prepayments, roiChanges)
	return err
}

func (r *ScenarioRepositoryPostgres) FindByID(id string) (domain.Scenario, error) {
	var scenario domain.Scenario
	var disbursements, prepayments, roiChanges []byte

	err := r.db.QueryRow(`
		SELECT id, schema_version, loan_amount, roi_start, tenure_months,
		       disbursements, prepayments, roi_changes
		FROM scenarios WHERE id = $1`, id).Scan(
		&scenario.ID, &scenario.SchemaVersion, &scenario.LoanAmount,
		&scenario.ROIStart, &scenario.TenureMonths,
		&disbursements, &prepayments, &roiChanges)
	if err == sql.ErrNoRows {
		return domain.Scenario{}, ErrScenarioNotFound
	}
	if err != nil {
		return domain.Scenario{}, err
	}

	if err := json.Unmarshal(disbursements, &scenario.Disbursements); err != nil {
		return domain.Scenario{}, err
	}
	if err := json.Unmarshal(prepayments, &scenario.Prepayments); err != nil {
		return domain.Scenario{}, err
	}
	if err := json.Unmarshal(roiChanges, &scenario.ROIChanges); err != nil {
		return domain.Scenario{}, err
	}
	return scenario, nil
}

func (r *ScenarioRepositoryPostgres) Close() error {
	return r.db.Close()
}
