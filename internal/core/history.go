package core

import "sort"

type (
	// Rollups are windowed sums of daily income. Windows are independent:
	// a day inside the 7-day window and the current month contributes to
	// both. Net profit is deliberately not rolled up.
	Rollups struct {
		Last7Days float64
		ThisMonth float64
		AllTime   float64
	}

	// History is the aggregate view over all finished days.
	History struct {
		Days    []DaySummary // date descending, most recent first
		Rollups Rollups
	}
)

// BuildHistory summarizes every record except the one keyed by exclude
// (the in-progress day, which must never surface in history) and rolls
// daily income into the three windows measured against now:
//
//	last7Days: inclusive calendar window [now-6, now]
//	thisMonth: [first day of now's month, now]
//	allTime:   everything
func BuildHistory(records map[Date]DayRecord, exclude, now Date) History {
	h := History{Days: make([]DaySummary, 0, len(records))}
	for date, rec := range records {
		if date == exclude {
			continue
		}
		s := Summarize(date, rec)
		h.Days = append(h.Days, s)

		h.Rollups.AllTime += s.TotalIncome
		if date.InLastDays(now, 7) {
			h.Rollups.Last7Days += s.TotalIncome
		}
		if date.InMonthToDate(now) {
			h.Rollups.ThisMonth += s.TotalIncome
		}
	}
	// Date keys are unique, so no tie-break is needed.
	sort.Slice(h.Days, func(i, j int) bool {
		return h.Days[i].Date.After(h.Days[j].Date)
	})
	return h
}
