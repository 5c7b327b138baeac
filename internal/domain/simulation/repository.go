package simulation

import "context"

// TransactionReader provides read access to a user's transaction history.
type TransactionReader interface {
	// ListByUserID returns all transactions for a user ordered ascending by date.
	// An empty result is not an error.
	ListByUserID(ctx context.Context, userID string) ([]Transaction, error)
}

// Forecaster fits a statistical model to a regularized monthly series.
// The model internals are opaque to the pipeline; any implementation that
// honors the Fit/Predict contract can be injected.
type Forecaster interface {
	Fit(ctx context.Context, series TimeSeries) (ForecastModel, error)
}

// ForecastModel is a fitted model ready to produce predictions.
type ForecastModel interface {
	// Predict returns one point per month for the fitted history followed by
	// horizon future months, ascending by month. Callers that only want the
	// future take the trailing horizon entries.
	Predict(ctx context.Context, horizon int) ([]ForecastPoint, error)
}

// Repository defines the interface for simulation persistence.
type Repository interface {
	// InsertSimulation persists a simulation header and returns it with the
	// storage-generated identifier.
	InsertSimulation(ctx context.Context, params CreateSimulationParams) (*Simulation, error)
	// InsertResults persists a projection for an existing simulation.
	InsertResults(ctx context.Context, params CreateResultsParams) error
	// ListSimulations returns all stored simulation headers, oldest first.
	ListSimulations(ctx context.Context) ([]*Simulation, error)
}
