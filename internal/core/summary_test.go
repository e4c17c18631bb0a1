package core

import (
	"reflect"
	"testing"
)

func TestSummarize(t *testing.T) {
	date := NewDate(2025, 6, 10)
	rec := DayRecord{
		StartKm:  "150000",
		EndKm:    "150250",
		FuelCost: "4.0",
		Incomes:  []Entry{{ID: "1", Amount: 500}, {ID: "2", Amount: 800}},
		Expenses: []Entry{{ID: "3", Amount: 100}},
	}
	got := Summarize(date, rec)
	want := DaySummary{
		Date:         date,
		Distance:     250,
		FuelCost:     1000, // 250 km * 4.0
		TotalIncome:  1300,
		ExtraExpense: 100,
		TotalExpense: 1100,
		NetProfit:    200,
	}
	if got != want {
		t.Fatalf("Summarize = %+v, want %+v", got, want)
	}
}

func TestSummarizeNetProfitIdentity(t *testing.T) {
	cases := []DayRecord{
		{},
		NewDayRecord(),
		{StartKm: "100", EndKm: "200", FuelCost: "4", Incomes: []Entry{{Amount: 50}}},
		{Incomes: []Entry{{Amount: 10}, {Amount: 20}}, Expenses: []Entry{{Amount: 100}}},
	}
	date := NewDate(2025, 1, 1)
	for i, rec := range cases {
		s := Summarize(date, rec)
		if s.NetProfit != s.TotalIncome-s.TotalExpense {
			t.Fatalf("case %d: netProfit %v != income %v - expense %v", i, s.NetProfit, s.TotalIncome, s.TotalExpense)
		}
	}
}

func TestSummarizeClampsNegativeDistance(t *testing.T) {
	rec := DayRecord{StartKm: "150250", EndKm: "150000", FuelCost: "4.0"}
	s := Summarize(NewDate(2025, 6, 10), rec)
	if s.Distance != 0 {
		t.Fatalf("Distance = %v, want 0 when end < start", s.Distance)
	}
	if s.FuelCost != 0 {
		t.Fatalf("FuelCost = %v, want 0 when distance is clamped", s.FuelCost)
	}
}

func TestSummarizeFreshDayIsAllZero(t *testing.T) {
	s := Summarize(NewDate(2025, 6, 10), DayRecord{})
	want := DaySummary{Date: NewDate(2025, 6, 10)}
	if s != want {
		t.Fatalf("fresh day summary = %+v, want all-zero", s)
	}
}

func TestSummarizeMalformedFieldsParseToZero(t *testing.T) {
	rec := DayRecord{StartKm: "garbage", EndKm: "also garbage", FuelCost: "??", Incomes: []Entry{{Amount: 100}}}
	s := Summarize(NewDate(2025, 6, 10), rec)
	if s.Distance != 0 || s.FuelCost != 0 {
		t.Fatalf("malformed odometer fields must contribute nothing: %+v", s)
	}
	if s.NetProfit != 100 {
		t.Fatalf("NetProfit = %v, want 100", s.NetProfit)
	}
}

func TestSummarizeIdempotent(t *testing.T) {
	rec := DayRecord{StartKm: "10", EndKm: "60", FuelCost: "4,5", Incomes: []Entry{{Amount: 75}}}
	date := NewDate(2025, 6, 10)
	first := Summarize(date, rec)
	second := Summarize(date, rec)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("Summarize not deterministic: %+v vs %+v", first, second)
	}
}
