package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"finsim/internal/domain/simulation"
)

type SimulationRepository struct {
	db *DB
}

func NewSimulationRepository(db *DB) *SimulationRepository {
	return &SimulationRepository{db: db}
}

// InsertSimulation persists a simulation header. The identifier is generated
// here, in the storage layer; the pipeline never invents ids.
func (r *SimulationRepository) InsertSimulation(ctx context.Context, params simulation.CreateSimulationParams) (*simulation.Simulation, error) {
	paramsJSON, err := json.Marshal(params.Parameters)
	if err != nil {
		return nil, fmt.Errorf("failed to encode parameters: %w", err)
	}

	query := `
		INSERT INTO simulations (id, user_id, name, parameters)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, name, parameters, created_at
	`

	var sim simulation.Simulation
	var rawParams []byte

	err = r.db.QueryRowContext(ctx, query, uuid.NewString(), params.UserID, params.Name, paramsJSON).Scan(
		&sim.ID, &sim.UserID, &sim.Name, &rawParams, &sim.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert simulation: %w", err)
	}

	if err := json.Unmarshal(rawParams, &sim.Parameters); err != nil {
		return nil, fmt.Errorf("failed to decode parameters: %w", err)
	}

	return &sim, nil
}

// InsertResults appends a projection row for an existing simulation.
func (r *SimulationRepository) InsertResults(ctx context.Context, params simulation.CreateResultsParams) error {
	projectedJSON, err := json.Marshal(params.ProjectedData)
	if err != nil {
		return fmt.Errorf("failed to encode projected data: %w", err)
	}

	query := `
		INSERT INTO simulation_results (simulation_id, projected_data, summary_insight)
		VALUES ($1, $2, $3)
	`

	if _, err := r.db.ExecContext(ctx, query, params.SimulationID, projectedJSON, params.Summary); err != nil {
		return fmt.Errorf("failed to insert simulation results: %w", err)
	}

	return nil
}

// ListSimulations returns all stored simulation headers, oldest first.
// Used by the scheduler to refresh saved projections.
func (r *SimulationRepository) ListSimulations(ctx context.Context) ([]*simulation.Simulation, error) {
	query := `
		SELECT id, user_id, name, parameters, created_at
		FROM simulations
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list simulations: %w", err)
	}
	defer rows.Close()

	var sims []*simulation.Simulation
	for rows.Next() {
		var sim simulation.Simulation
		var rawParams []byte
		if err := rows.Scan(&sim.ID, &sim.UserID, &sim.Name, &rawParams, &sim.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan simulation: %w", err)
		}
		if err := json.Unmarshal(rawParams, &sim.Parameters); err != nil {
			return nil, fmt.Errorf("failed to decode parameters for simulation %s: %w", sim.ID, err)
		}
		sims = append(sims, &sim)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating simulations: %w", err)
	}

	return sims, nil
}
