package rules

import "time"

// DisplaySeason is the human-facing seasonal label used for favorability
// judgments and reports. It is deliberately NOT the same vocabulary as
// pricing.Season: the Oct-Nov bucket is spelled "Post-Monsoon" here, while
// the model encoder was trained on "PostMonsoon". The two enumerations must
// stay separate or the trained category codes silently change.
type DisplaySeason string

const (
	DisplayWinter      DisplaySeason = "Winter"
	DisplaySummer      DisplaySeason = "Summer"
	DisplayMonsoon     DisplaySeason = "Monsoon"
	DisplayPostMonsoon DisplaySeason = "Post-Monsoon"
)

// SeasonForDate maps a calendar date to its display season.
func SeasonForDate(date time.Time) DisplaySeason {
	switch date.Month() {
	case time.December, time.January, time.February:
		return DisplayWinter
	case time.March, time.April, time.May:
		return DisplaySummer
	case time.June, time.July, time.August, time.September:
		return DisplayMonsoon
	default:
		return DisplayPostMonsoon
	}
}

// IsFavorable reports whether a date falls in a season suited to rearing.
// Monsoon humidity is regarded as unfavorable.
func IsFavorable(date time.Time) bool {
	return SeasonForDate(date) != DisplayMonsoon
}
