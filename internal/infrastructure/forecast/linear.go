// Package forecast provides a concrete forecasting model for the simulation
// pipeline. The pipeline only depends on the Fit/Predict contract, so this
// implementation can be swapped for any other model with the same shape.
package forecast

import (
	"context"
	"fmt"
	"math"
	"time"

	"finsim/internal/domain/simulation"
)

// zBand is the normal quantile used for the ~95% confidence band.
const zBand = 1.96

// LinearTrend fits an ordinary least squares line over the monthly series.
// Confidence bounds are symmetric at zBand residual standard errors, which
// degenerates to a zero-width band for a perfectly linear history.
type LinearTrend struct{}

// NewLinearTrend creates a linear trend forecaster.
func NewLinearTrend() *LinearTrend {
	return &LinearTrend{}
}

// Fit estimates slope and intercept of the series against the month index.
func (f *LinearTrend) Fit(ctx context.Context, series simulation.TimeSeries) (simulation.ForecastModel, error) {
	if len(series) < 2 {
		return nil, fmt.Errorf("%w: got %d points, need at least 2", simulation.ErrInsufficientHistory, len(series))
	}

	n := float64(len(series))
	var sumX, sumY, sumXY, sumXX float64
	for i, p := range series {
		x := float64(i)
		sumX += x
		sumY += p.Amount
		sumXY += x * p.Amount
		sumXX += x * x
	}

	// The denominator is only zero when all x values coincide, which cannot
	// happen for a series of two or more indexed months.
	denom := n*sumXX - sumX*sumX
	slope := (n*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / n

	var sse float64
	for i, p := range series {
		residual := p.Amount - (intercept + slope*float64(i))
		sse += residual * residual
	}
	var band float64
	if len(series) > 2 {
		band = zBand * math.Sqrt(sse/(n-2))
	}
	if math.IsNaN(slope) || math.IsNaN(intercept) || math.IsNaN(band) {
		return nil, fmt.Errorf("numeric failure fitting trend over %d points", len(series))
	}

	return &linearModel{
		start:     series[0].Month,
		history:   len(series),
		slope:     slope,
		intercept: intercept,
		band:      band,
	}, nil
}

// linearModel is a fitted trend line. Predict extrapolates it over the
// history months plus the requested horizon.
type linearModel struct {
	start     time.Time
	history   int
	slope     float64
	intercept float64
	band      float64
}

func (m *linearModel) Predict(ctx context.Context, horizon int) ([]simulation.ForecastPoint, error) {
	if horizon < 0 {
		return nil, fmt.Errorf("horizon must be non-negative, got %d", horizon)
	}

	total := m.history + horizon
	points := make([]simulation.ForecastPoint, 0, total)
	for i := 0; i < total; i++ {
		estimate := m.intercept + m.slope*float64(i)
		points = append(points, simulation.ForecastPoint{
			Month:    m.start.AddDate(0, i, 0),
			Estimate: estimate,
			Lower:    estimate - m.band,
			Upper:    estimate + m.band,
		})
	}
	return points, nil
}
