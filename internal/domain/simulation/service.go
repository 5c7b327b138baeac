package simulation

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var simTracer = otel.Tracer("finsim/simulation")

// DefaultHorizonMonths is the number of future months projected per run.
const DefaultHorizonMonths = 12

// Service orchestrates the simulation pipeline: fetch transactions,
// normalize, forecast, adjust, persist.
type Service struct {
	transactions TransactionReader
	forecaster   Forecaster
	repo         Repository
	horizon      int

	// now is swappable for tests; the empty-history baseline ends at the
	// current month.
	now func() time.Time
}

// NewService creates a new simulation service. A horizon below 1 falls back
// to DefaultHorizonMonths.
func NewService(transactions TransactionReader, forecaster Forecaster, repo Repository, horizon int) *Service {
	if horizon < 1 {
		horizon = DefaultHorizonMonths
	}
	return &Service{
		transactions: transactions,
		forecaster:   forecaster,
		repo:         repo,
		horizon:      horizon,
		now:          time.Now,
	}
}

// Run executes one what-if simulation for a user and persists the outcome.
//
// The header row is written before the results row; if the results write
// fails the header remains without results and the whole run is reported as
// failed. Reconciling that window is left to the storage layer.
func (s *Service) Run(ctx context.Context, userID, name string, params Parameters) (*Result, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}
	if name == "" {
		return nil, ErrEmptyName
	}

	ctx, span := simTracer.Start(ctx, "simulation.run", trace.WithAttributes(
		attribute.String("simulation.user_id", userID),
		attribute.String("simulation.name", name),
	))
	defer span.End()

	projected, err := s.project(ctx, userID, params)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	sim, err := s.repo.InsertSimulation(ctx, CreateSimulationParams{
		UserID:     userID,
		Name:       name,
		Parameters: params,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("insert simulation: %w", err)
	}

	summary := buildSummary(len(projected))

	if err := s.repo.InsertResults(ctx, CreateResultsParams{
		SimulationID:  sim.ID,
		ProjectedData: projected,
		Summary:       summary,
	}); err != nil {
		// The header for sim.ID now exists without a results row.
		log.Printf("Simulation %s: results write failed after header was persisted: %v", sim.ID, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("insert results for simulation %s: %w", sim.ID, err)
	}

	span.SetAttributes(attribute.String("simulation.id", sim.ID))
	log.Printf("Simulation %s completed for user %s: %d projected periods", sim.ID, userID, len(projected))

	return &Result{
		SimulationID:  sim.ID,
		Summary:       summary,
		ProjectedData: projected,
	}, nil
}

// Refresh recomputes the projection of an existing simulation with its
// stored parameters and appends a fresh results row under the same id.
func (s *Service) Refresh(ctx context.Context, sim *Simulation) error {
	ctx, span := simTracer.Start(ctx, "simulation.refresh", trace.WithAttributes(
		attribute.String("simulation.id", sim.ID),
		attribute.String("simulation.user_id", sim.UserID),
	))
	defer span.End()

	projected, err := s.project(ctx, sim.UserID, sim.Parameters)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	if err := s.repo.InsertResults(ctx, CreateResultsParams{
		SimulationID:  sim.ID,
		ProjectedData: projected,
		Summary:       buildSummary(len(projected)),
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("insert results for simulation %s: %w", sim.ID, err)
	}

	return nil
}

// project runs the computation half of the pipeline: transactions in,
// adjusted future window out. No persistence happens here.
func (s *Service) project(ctx context.Context, userID string, params Parameters) ([]ProjectedPoint, error) {
	transactions, err := s.transactions.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch transactions: %w", err)
	}

	series := Normalize(s.now(), transactions)

	model, err := s.forecaster.Fit(ctx, series)
	if err != nil {
		return nil, fmt.Errorf("fit forecast model: %w", err)
	}

	forecast, err := model.Predict(ctx, s.horizon)
	if err != nil {
		return nil, fmt.Errorf("predict: %w", err)
	}

	// The forecaster returns history plus future concatenated; the future
	// window is the trailing horizon entries.
	future := trailingWindow(forecast, s.horizon)
	adjusted := AdjustForecast(future, params)

	projected := make([]ProjectedPoint, len(adjusted))
	for i, p := range adjusted {
		projected[i] = ProjectedPoint{
			Date:            p.Month.Format("2006-01"),
			ProjectedAmount: p.Estimate,
			LowerBound:      p.Lower,
			UpperBound:      p.Upper,
		}
	}
	return projected, nil
}

func trailingWindow(points []ForecastPoint, n int) []ForecastPoint {
	if len(points) <= n {
		return points
	}
	return points[len(points)-n:]
}

func buildSummary(periods int) string {
	return fmt.Sprintf("Projection generated from the provided parameters; %d future periods estimated.", periods)
}
