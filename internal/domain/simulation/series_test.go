package simulation

import (
	"math"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func month(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func TestNormalizeEmpty(t *testing.T) {
	now := date(2024, time.June, 17)

	series := Normalize(now, nil)

	if len(series) != 12 {
		t.Fatalf("Normalize() with no transactions returned %d points, want 12", len(series))
	}
	if !series[len(series)-1].Month.Equal(month(2024, time.June)) {
		t.Errorf("last month = %v, want 2024-06", series[len(series)-1].Month)
	}
	if !series[0].Month.Equal(month(2023, time.July)) {
		t.Errorf("first month = %v, want 2023-07", series[0].Month)
	}
	for i, p := range series {
		if p.Amount != 0 {
			t.Errorf("point %d amount = %v, want 0", i, p.Amount)
		}
	}
	if err := series.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestNormalizeGroupsAndFillsGaps(t *testing.T) {
	// January 700 net, February missing, March 500.
	transactions := []Transaction{
		{Date: date(2024, time.January, 15), Amount: 1000},
		{Date: date(2024, time.January, 20), Amount: -300},
		{Date: date(2024, time.March, 5), Amount: 500},
	}

	series := Normalize(date(2024, time.April, 1), transactions)

	// Two observed months, so the range is padded back five months from January.
	if len(series) != 8 {
		t.Fatalf("Normalize() returned %d points, want 8", len(series))
	}
	if !series[0].Month.Equal(month(2023, time.August)) {
		t.Errorf("first month = %v, want 2023-08", series[0].Month)
	}

	byMonth := make(map[time.Time]float64, len(series))
	for _, p := range series {
		byMonth[p.Month] = p.Amount
	}
	if got := byMonth[month(2024, time.January)]; got != 700 {
		t.Errorf("January amount = %v, want 700", got)
	}
	if got := byMonth[month(2024, time.February)]; got != 0 {
		t.Errorf("February amount = %v, want 0", got)
	}
	if got := byMonth[month(2024, time.March)]; got != 500 {
		t.Errorf("March amount = %v, want 500", got)
	}
	if err := series.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestNormalizeLongHistoryKeepsExactRange(t *testing.T) {
	// Seven distinct months with a hole in the middle.
	var transactions []Transaction
	for i := 0; i < 8; i++ {
		if i == 3 {
			continue // skip one month entirely
		}
		transactions = append(transactions, Transaction{
			Date:   month(2023, time.March).AddDate(0, i, 12),
			Amount: 100,
		})
	}

	series := Normalize(date(2024, time.January, 1), transactions)

	if len(series) != 8 {
		t.Fatalf("Normalize() returned %d points, want 8", len(series))
	}
	if !series[0].Month.Equal(month(2023, time.March)) {
		t.Errorf("first month = %v, want 2023-03 (no left padding for long histories)", series[0].Month)
	}
	if !series[len(series)-1].Month.Equal(month(2023, time.October)) {
		t.Errorf("last month = %v, want 2023-10", series[len(series)-1].Month)
	}
	if got := series[3].Amount; got != 0 {
		t.Errorf("skipped month amount = %v, want 0", got)
	}
}

func TestNormalizeSumsDuplicates(t *testing.T) {
	// Exact duplicate records are summed, not deduplicated: recurring
	// identical amounts are legitimate.
	transactions := []Transaction{
		{Date: date(2024, time.May, 3), Amount: 49.99},
		{Date: date(2024, time.May, 3), Amount: 49.99},
		{Date: date(2024, time.May, 3), Amount: 49.99},
	}

	series := Normalize(date(2024, time.June, 1), transactions)

	var got float64
	for _, p := range series {
		if p.Month.Equal(month(2024, time.May)) {
			got = p.Amount
		}
	}
	if math.Abs(got-149.97) > 1e-9 {
		t.Errorf("May amount = %v, want 149.97", got)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	transactions := []Transaction{
		{Date: date(2023, time.November, 2), Amount: 1200},
		{Date: date(2023, time.December, 9), Amount: -340.5},
		{Date: date(2024, time.February, 28), Amount: 89.9},
		{Date: date(2024, time.April, 1), Amount: 2000},
	}

	first := Normalize(date(2024, time.May, 1), transactions)

	// Re-feed the series' own monthly totals; grouping must lose nothing.
	refed := make([]Transaction, len(first))
	for i, p := range first {
		refed[i] = Transaction{Date: p.Month, Amount: p.Amount}
	}
	second := Normalize(date(2024, time.May, 1), refed)

	if len(second) != len(first) {
		t.Fatalf("re-normalized length = %d, want %d", len(second), len(first))
	}
	for i := range first {
		if !second[i].Month.Equal(first[i].Month) {
			t.Errorf("point %d month = %v, want %v", i, second[i].Month, first[i].Month)
		}
		if math.Abs(second[i].Amount-first[i].Amount) > 1e-9 {
			t.Errorf("point %d amount = %v, want %v", i, second[i].Amount, first[i].Amount)
		}
	}
}

func TestNormalizeSingleMonth(t *testing.T) {
	transactions := []Transaction{
		{Date: date(2024, time.January, 10), Amount: 500},
	}

	series := Normalize(date(2024, time.February, 1), transactions)

	if len(series) != 6 {
		t.Fatalf("Normalize() returned %d points, want 6", len(series))
	}
	if !series[0].Month.Equal(month(2023, time.August)) {
		t.Errorf("first month = %v, want 2023-08", series[0].Month)
	}
	if series[5].Amount != 500 {
		t.Errorf("observed month amount = %v, want 500", series[5].Amount)
	}
	if err := series.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestMonthStartTruncation(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "mid month",
			in:   time.Date(2024, time.March, 17, 14, 30, 0, 0, time.UTC),
			want: month(2024, time.March),
		},
		{
			name: "first of month",
			in:   month(2024, time.March),
			want: month(2024, time.March),
		},
		{
			name: "non UTC location normalizes to UTC month",
			in:   time.Date(2024, time.March, 31, 23, 0, 0, 0, time.FixedZone("UTC-5", -5*3600)),
			want: month(2024, time.April),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MonthStart(tt.in); !got.Equal(tt.want) {
				t.Errorf("MonthStart(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
