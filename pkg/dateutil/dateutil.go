package dateutil

import "time"

// DayLayout is the canonical wire format for calendar days.
const DayLayout = "2006-01-02"

// Day truncates a timestamp to its calendar day in UTC.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AddDays shifts a calendar day by the given number of days.
func AddDays(d time.Time, days int) time.Time {
	return Day(d).AddDate(0, 0, days)
}

// DaysBetween returns the whole number of days from start to end.
func DaysBetween(start, end time.Time) int {
	return int(Day(end).Sub(Day(start)).Hours() / 24)
}

// Range generates n consecutive calendar days starting at from.
func Range(from time.Time, n int) []time.Time {
	days := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		days = append(days, AddDays(from, i))
	}
	return days
}

// FormatDisplay renders a day for human readable output, e.g. "25 Jan 2026".
func FormatDisplay(d time.Time) string {
	return d.Format("02 Jan 2006")
}

// NowUTC exposes time.Now for deterministic testing.
func NowUTC() time.Time {
	return time.Now().UTC()
}
