package scheduler

import (
	"context"
	"fmt"
	"log"

	"finsim/internal/domain/simulation"
)

// SimulationRefresher re-projects a saved simulation against current history.
type SimulationRefresher interface {
	Refresh(ctx context.Context, sim *simulation.Simulation) error
}

// RefreshJob implements the Job interface for re-projecting one saved
// simulation. Transaction history moves daily; the stored parameters do not.
type RefreshJob struct {
	sim       *simulation.Simulation
	refresher SimulationRefresher
}

// NewRefreshJob creates a refresh job for a saved simulation.
func NewRefreshJob(sim *simulation.Simulation, refresher SimulationRefresher) *RefreshJob {
	return &RefreshJob{
		sim:       sim,
		refresher: refresher,
	}
}

// Execute re-runs the projection and appends a fresh results row.
func (j *RefreshJob) Execute(ctx context.Context) error {
	log.Printf("Starting projection refresh for simulation %s", j.sim.ID)

	if err := j.refresher.Refresh(ctx, j.sim); err != nil {
		log.Printf("Projection refresh failed for simulation %s: %v", j.sim.ID, err)
		return fmt.Errorf("refresh failed: %w", err)
	}

	log.Printf("Projection refresh completed for simulation %s", j.sim.ID)

	return nil
}

// UserID returns the user that owns the refreshed simulation.
func (j *RefreshJob) UserID() string {
	return j.sim.UserID
}

// Description returns a human-readable description of the job.
func (j *RefreshJob) Description() string {
	return fmt.Sprintf("Projection refresh for simulation %q", j.sim.Name)
}
