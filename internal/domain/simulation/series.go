package simulation

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	// minHistoryMonths is the shortest series the forecaster will accept.
	minHistoryMonths = 6
	// emptyHistoryMonths is the length of the zero-filled series produced
	// for users with no transactions at all.
	emptyHistoryMonths = 12
)

// MonthStart truncates a date to the first day of its calendar month in UTC.
func MonthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// Normalize converts a raw transaction list into a regular monthly series
// suitable for forecasting.
//
// With no transactions it returns 12 zero-amount months ending at the month
// of now, so a brand-new user still gets a flat baseline forecast instead of
// an error. Otherwise transactions are grouped by calendar month and summed;
// when fewer than six distinct months were observed the range is extended
// back to five months before the earliest one. Months inside the range with
// no transactions are filled with zero, so the output is always contiguous,
// ascending, and at least six months long.
func Normalize(now time.Time, transactions []Transaction) TimeSeries {
	if len(transactions) == 0 {
		end := MonthStart(now)
		series := make(TimeSeries, 0, emptyHistoryMonths)
		for i := emptyHistoryMonths - 1; i >= 0; i-- {
			series = append(series, MonthlyPoint{Month: end.AddDate(0, -i, 0)})
		}
		return series
	}

	// Net amounts per month. Sums are accumulated as decimals so that long
	// histories of cent-denominated amounts don't pick up float drift.
	sums := make(map[time.Time]decimal.Decimal)
	var earliest, latest time.Time
	for _, tx := range transactions {
		m := MonthStart(tx.Date)
		sums[m] = sums[m].Add(decimal.NewFromFloat(tx.Amount))
		if earliest.IsZero() || m.Before(earliest) {
			earliest = m
		}
		if m.After(latest) {
			latest = m
		}
	}

	start := earliest
	if len(sums) < minHistoryMonths {
		start = earliest.AddDate(0, -(minHistoryMonths - 1), 0)
	}

	var series TimeSeries
	for m := start; !m.After(latest); m = m.AddDate(0, 1, 0) {
		series = append(series, MonthlyPoint{
			Month:  m,
			Amount: sums[m].InexactFloat64(),
		})
	}
	return series
}
