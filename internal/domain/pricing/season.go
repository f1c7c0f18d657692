package pricing

import "time"

// Season is the model-facing categorical value. The spellings here must
// match the vocabulary the season encoder was built with; in particular the
// Oct-Nov bucket is "PostMonsoon" without a hyphen, unlike the display
// vocabulary in the rules package. Do not unify the two.
type Season string

const (
	SeasonWinter      Season = "Winter"
	SeasonSummer      Season = "Summer"
	SeasonMonsoon     Season = "Monsoon"
	SeasonPostMonsoon Season = "PostMonsoon"
)

// SeasonForMonth buckets a calendar month the same way the training data
// did: Winter {12,1,2}, Summer {3,4,5}, Monsoon {6,7,8,9}, PostMonsoon
// {10,11}. Total over all twelve months.
func SeasonForMonth(month time.Month) Season {
	switch month {
	case time.December, time.January, time.February:
		return SeasonWinter
	case time.March, time.April, time.May:
		return SeasonSummer
	case time.June, time.July, time.August, time.September:
		return SeasonMonsoon
	default:
		return SeasonPostMonsoon
	}
}
