// Package calendar derives month grids for the events view. A grid is
// a fixed-width (7 column) matrix of day cells covering a full month
// plus adjacent-month padding to complete whole weeks.
package calendar

import "time"

// Day is one cell of a month grid
type Day struct {
	Day     int       `json:"day"`
	InMonth bool      `json:"in_month"`
	Date    time.Time `json:"date"`
	Today   bool      `json:"today"`
}

// Month is a displayed year/month reference
type Month struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// BuildGrid produces the cells for one month: leading cells from the
// previous month (one per weekday before day 1, Sunday-first), one cell
// per day of the target month, then trailing next-month cells up to the
// next multiple of 7 and never beyond it. today marks the matching cell.
func BuildGrid(year int, month time.Month, today time.Time) []Day {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()
	lead := int(first.Weekday()) // 0=Sunday

	total := ((lead + daysInMonth + 6) / 7) * 7
	grid := make([]Day, 0, total)

	// Leading days, numbered backward from the previous month's last day
	prevLast := first.AddDate(0, 0, -1).Day()
	for i := 0; i < lead; i++ {
		dayNum := prevLast - lead + i + 1
		grid = append(grid, Day{
			Day:     dayNum,
			InMonth: false,
			Date:    first.AddDate(0, 0, dayNum-prevLast-1),
		})
	}

	// Target month
	ty, tm, td := today.Date()
	for d := 1; d <= daysInMonth; d++ {
		grid = append(grid, Day{
			Day:     d,
			InMonth: true,
			Date:    time.Date(year, month, d, 0, 0, 0, 0, time.UTC),
			Today:   ty == year && tm == month && td == d,
		})
	}

	// Trailing days from the next month
	for d := 1; len(grid) < total; d++ {
		grid = append(grid, Day{
			Day:     d,
			InMonth: false,
			Date:    first.AddDate(0, 1, d-1),
		})
	}

	return grid
}

// SameDay reports calendar-date equality, time of day stripped
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Next returns the following month, rolling December into January
func (m Month) Next() Month {
	t := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return Month{Year: t.Year(), Month: t.Month()}
}

// Prev returns the preceding month, rolling January into December
func (m Month) Prev() Month {
	t := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	return Month{Year: t.Year(), Month: t.Month()}
}

// Current returns the month containing now
func Current(now time.Time) Month {
	return Month{Year: now.Year(), Month: now.Month()}
}
