package simulation

import (
	"errors"
	"time"
)

// Domain errors
var (
	ErrInvalidUserID       = errors.New("valid user ID is required")
	ErrEmptyName           = errors.New("simulation name is required")
	ErrInsufficientHistory = errors.New("insufficient history to fit forecast model")
)

// Transaction is a single dated cash movement, read-only input to the
// simulation pipeline. Positive amounts are income, negative are expenses.
type Transaction struct {
	Date   time.Time `json:"date"`
	Amount float64   `json:"amount"`
}

// MonthlyPoint is the net cash flow of one calendar month. Month is always
// the first day of the month at midnight UTC.
type MonthlyPoint struct {
	Month  time.Time `json:"month"`
	Amount float64   `json:"amount"`
}

// TimeSeries is an ordered, gap-free monthly series. A normalized series
// holds at least six points with strictly increasing, contiguous months.
type TimeSeries []MonthlyPoint

// Validate checks the regularity invariants of a normalized series.
func (ts TimeSeries) Validate() error {
	if len(ts) < minHistoryMonths {
		return errors.New("time series must contain at least 6 months")
	}
	for i := 1; i < len(ts); i++ {
		if !ts[i].Month.Equal(ts[i-1].Month.AddDate(0, 1, 0)) {
			return errors.New("time series months must be contiguous and ascending")
		}
	}
	return nil
}

// ForecastPoint is one month of a forecast: a point estimate with its
// lower and upper confidence bounds.
type ForecastPoint struct {
	Month    time.Time `json:"month"`
	Estimate float64   `json:"estimate"`
	Lower    float64   `json:"lower"`
	Upper    float64   `json:"upper"`
}

// Parameters is the open key-value mapping of what-if adjustments.
// Only income_change_percent and expense_cut_flat have defined semantics;
// unrecognized keys are carried through untouched and ignored.
type Parameters map[string]any

// IncomeChangePercent returns the income_change_percent parameter, 0 when absent.
func (p Parameters) IncomeChangePercent() float64 {
	return p.number("income_change_percent")
}

// ExpenseCutFlat returns the expense_cut_flat parameter, 0 when absent.
func (p Parameters) ExpenseCutFlat() float64 {
	return p.number("expense_cut_flat")
}

// number extracts a numeric parameter value. Values are not validated or
// clamped: a what-if tool accepts arbitrarily large or negative inputs.
func (p Parameters) number(key string) float64 {
	switch v := p[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return 0
}

// ProjectedPoint is one month of the persisted projection.
type ProjectedPoint struct {
	Date            string  `json:"date"` // YYYY-MM
	ProjectedAmount float64 `json:"projected_amount"`
	LowerBound      float64 `json:"lower_bound"`
	UpperBound      float64 `json:"upper_bound"`
}

// Simulation is a persisted simulation header. The ID is generated by the
// storage layer, never by the pipeline.
type Simulation struct {
	ID         string     `json:"id"`
	UserID     string     `json:"userId"`
	Name       string     `json:"name"`
	Parameters Parameters `json:"parameters"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// Result is the outcome of one simulation run.
type Result struct {
	SimulationID  string           `json:"simulation_id"`
	Summary       string           `json:"summary"`
	ProjectedData []ProjectedPoint `json:"projected_data"`
}

// CreateSimulationParams contains parameters for persisting a simulation header.
type CreateSimulationParams struct {
	UserID     string
	Name       string
	Parameters Parameters
}

// CreateResultsParams contains parameters for persisting a projection.
type CreateResultsParams struct {
	SimulationID  string
	ProjectedData []ProjectedPoint
	Summary       string
}
