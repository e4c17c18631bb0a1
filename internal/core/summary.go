package core

// DaySummary is the derived view of one day record. It is always
// recomputed from the record, never cached or persisted.
type DaySummary struct {
	Date         Date
	Distance     float64
	FuelCost     float64
	TotalIncome  float64
	ExtraExpense float64
	TotalExpense float64
	NetProfit    float64
}

// Summarize derives the financial metrics of a day record:
//
//	distance     = max(0, endKm - startKm)
//	fuelCost     = distance * fuelCostPerKm
//	totalExpense = fuelCost + sum(expense amounts)
//	netProfit    = sum(income amounts) - totalExpense
//
// Distance is clamped, not rejected, when the end reading is below the
// start reading; warning the user about that is a presentation concern.
// Malformed numeric fields parse to 0 (ParseLenient), so Summarize is
// total: a fresh or fully absent record yields an all-zero summary.
func Summarize(date Date, r DayRecord) DaySummary {
	start := ParseLenient(string(r.StartKm))
	end := ParseLenient(string(r.EndKm))
	rate := ParseLenient(string(r.FuelCost))

	var distance float64
	if end > start {
		distance = end - start
	}
	fuel := distance * rate

	var income float64
	for _, e := range r.Incomes {
		income += e.Amount
	}
	var extra float64
	for _, e := range r.Expenses {
		extra += e.Amount
	}
	totalExpense := fuel + extra

	return DaySummary{
		Date:         date,
		Distance:     distance,
		FuelCost:     fuel,
		TotalIncome:  income,
		ExtraExpense: extra,
		TotalExpense: totalExpense,
		NetProfit:    income - totalExpense,
	}
}
