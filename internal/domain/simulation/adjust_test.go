package simulation

import (
	"math"
	"testing"
	"time"
)

func baseForecast() []ForecastPoint {
	points := make([]ForecastPoint, 4)
	for i := range points {
		points[i] = ForecastPoint{
			Month:    month(2024, time.July).AddDate(0, i, 0),
			Estimate: 1000 + float64(i)*50,
			Lower:    900 + float64(i)*50,
			Upper:    1100 + float64(i)*50,
		}
	}
	return points
}

func TestAdjustForecast(t *testing.T) {
	tests := []struct {
		name   string
		params Parameters
		check  func(t *testing.T, in, out []ForecastPoint)
	}{
		{
			name:   "zero parameters are identity",
			params: Parameters{"income_change_percent": 0.0, "expense_cut_flat": 0.0},
			check: func(t *testing.T, in, out []ForecastPoint) {
				for i := range in {
					if out[i] != in[i] {
						t.Errorf("point %d = %+v, want unchanged %+v", i, out[i], in[i])
					}
				}
			},
		},
		{
			name:   "nil parameters are identity",
			params: nil,
			check: func(t *testing.T, in, out []ForecastPoint) {
				for i := range in {
					if out[i] != in[i] {
						t.Errorf("point %d = %+v, want unchanged %+v", i, out[i], in[i])
					}
				}
			},
		},
		{
			name:   "income change scales all fields",
			params: Parameters{"income_change_percent": 10.0},
			check: func(t *testing.T, in, out []ForecastPoint) {
				for i := range in {
					if !closeTo(out[i].Estimate, in[i].Estimate*1.10) {
						t.Errorf("point %d estimate = %v, want %v", i, out[i].Estimate, in[i].Estimate*1.10)
					}
					if !closeTo(out[i].Lower, in[i].Lower*1.10) {
						t.Errorf("point %d lower = %v, want %v", i, out[i].Lower, in[i].Lower*1.10)
					}
					if !closeTo(out[i].Upper, in[i].Upper*1.10) {
						t.Errorf("point %d upper = %v, want %v", i, out[i].Upper, in[i].Upper*1.10)
					}
				}
			},
		},
		{
			name:   "expense cut shifts all fields",
			params: Parameters{"expense_cut_flat": 50.0},
			check: func(t *testing.T, in, out []ForecastPoint) {
				for i := range in {
					if !closeTo(out[i].Estimate, in[i].Estimate-50) {
						t.Errorf("point %d estimate = %v, want %v", i, out[i].Estimate, in[i].Estimate-50)
					}
					if !closeTo(out[i].Lower, in[i].Lower-50) {
						t.Errorf("point %d lower = %v, want %v", i, out[i].Lower, in[i].Lower-50)
					}
					if !closeTo(out[i].Upper, in[i].Upper-50) {
						t.Errorf("point %d upper = %v, want %v", i, out[i].Upper, in[i].Upper-50)
					}
				}
			},
		},
		{
			name:   "combined scale then shift",
			params: Parameters{"income_change_percent": -20.0, "expense_cut_flat": 100.0},
			check: func(t *testing.T, in, out []ForecastPoint) {
				for i := range in {
					want := in[i].Estimate*0.80 - 100
					if !closeTo(out[i].Estimate, want) {
						t.Errorf("point %d estimate = %v, want %v", i, out[i].Estimate, want)
					}
				}
			},
		},
		{
			name:   "unrecognized keys are ignored",
			params: Parameters{"inflation_percent": 99.0, "expense_cut_flat": 50.0},
			check: func(t *testing.T, in, out []ForecastPoint) {
				for i := range in {
					if !closeTo(out[i].Estimate, in[i].Estimate-50) {
						t.Errorf("point %d estimate = %v, want %v", i, out[i].Estimate, in[i].Estimate-50)
					}
				}
			},
		},
		{
			name:   "large cut preserves bound ordering",
			params: Parameters{"expense_cut_flat": 100000.0},
			check: func(t *testing.T, in, out []ForecastPoint) {
				for i := range out {
					if out[i].Lower > out[i].Estimate || out[i].Estimate > out[i].Upper {
						t.Errorf("point %d ordering broken: lower=%v estimate=%v upper=%v",
							i, out[i].Lower, out[i].Estimate, out[i].Upper)
					}
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := baseForecast()
			out := AdjustForecast(in, tt.params)

			if len(out) != len(in) {
				t.Fatalf("AdjustForecast() returned %d points, want %d", len(out), len(in))
			}
			for i := range out {
				if !out[i].Month.Equal(in[i].Month) {
					t.Errorf("point %d month = %v, want %v", i, out[i].Month, in[i].Month)
				}
			}
			tt.check(t, in, out)
		})
	}
}

func TestAdjustForecastDoesNotMutateInput(t *testing.T) {
	in := baseForecast()
	want := in[0]

	AdjustForecast(in, Parameters{"income_change_percent": 50.0})

	if in[0] != want {
		t.Errorf("input forecast was mutated: %+v", in[0])
	}
}

func closeTo(got, want float64) bool {
	return math.Abs(got-want) <= 1e-9*math.Max(1, math.Abs(want))
}
