package simulation

// AdjustForecast applies the what-if parameters to a base forecast.
//
// Every point's estimate and both confidence bounds get the same affine
// transform: value * (1 + income_change_percent/100) - expense_cut_flat.
// Parameter values are not validated or clamped. The input slice is never
// mutated.
func AdjustForecast(forecast []ForecastPoint, params Parameters) []ForecastPoint {
	scale := 1 + params.IncomeChangePercent()/100
	cut := params.ExpenseCutFlat()

	adjusted := make([]ForecastPoint, len(forecast))
	for i, p := range forecast {
		adjusted[i] = ForecastPoint{
			Month:    p.Month,
			Estimate: p.Estimate*scale - cut,
			Lower:    p.Lower*scale - cut,
			Upper:    p.Upper*scale - cut,
		}
	}
	return adjusted
}
