package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSeasonForDate_CoversAllMonths(t *testing.T) {
	want := map[time.Month]DisplaySeason{
		time.January:   DisplayWinter,
		time.February:  DisplayWinter,
		time.March:     DisplaySummer,
		time.April:     DisplaySummer,
		time.May:       DisplaySummer,
		time.June:      DisplayMonsoon,
		time.July:      DisplayMonsoon,
		time.August:    DisplayMonsoon,
		time.September: DisplayMonsoon,
		time.October:   DisplayPostMonsoon,
		time.November:  DisplayPostMonsoon,
		time.December:  DisplayWinter,
	}
	for month, season := range want {
		date := time.Date(2025, month, 15, 0, 0, 0, 0, time.UTC)
		require.Equal(t, season, SeasonForDate(date), "month=%s", month)
	}
}

func TestDisplayVocabularyUsesHyphen(t *testing.T) {
	require.Equal(t, DisplaySeason("Post-Monsoon"), DisplayPostMonsoon)
}

func TestIsFavorable(t *testing.T) {
	require.False(t, IsFavorable(time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)))
	require.True(t, IsFavorable(time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC)))
	require.True(t, IsFavorable(time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)))
}
