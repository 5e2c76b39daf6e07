package dialogue

import "time"

const dateLayout = "2006-01-02"

// MonthRange returns the first and last day of t's calendar month as
// YYYY-MM-DD strings.
func MonthRange(t time.Time) (string, string) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, -1)
	return first.Format(dateLayout), last.Format(dateLayout)
}

// NextMonthRange returns the first and last day of the month after t's,
// rolling the year over after December.
func NextMonthRange(t time.Time) (string, string) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, 1, 0)
	last := first.AddDate(0, 1, -1)
	return first.Format(dateLayout), last.Format(dateLayout)
}
