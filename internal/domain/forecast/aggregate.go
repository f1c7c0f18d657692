package forecast

import (
	"time"

	"github.com/seristack/cocoon-recommender/pkg/dateutil"
)

// Aggregate partitions a time-ordered sample series into contiguous runs
// sharing the same calendar day and condenses each run into a DailySummary.
// The input is assumed already ordered; no re-sorting is performed. A day
// whose samples carry no valid readings still emits a summary built from the
// field defaults, so downstream consumers never see a hole in the sequence.
func Aggregate(samples []Sample) []DailySummary {
	if len(samples) == 0 {
		return nil
	}

	summaries := make([]DailySummary, 0, len(samples)/24+1)
	runStart := 0
	runDay := dateutil.Day(samples[0].Timestamp)

	for i := 1; i <= len(samples); i++ {
		if i < len(samples) && dateutil.Day(samples[i].Timestamp).Equal(runDay) {
			continue
		}
		summaries = append(summaries, summarizeRun(runDay, samples[runStart:i]))
		if i < len(samples) {
			runStart = i
			runDay = dateutil.Day(samples[i].Timestamp)
		}
	}
	return summaries
}

// DefaultSummary returns the degraded summary for a day without usable data.
func DefaultSummary(day time.Time) DailySummary {
	return DailySummary{
		Date:        dateutil.Day(day),
		AvgTemp:     DefaultAvgTemp,
		MaxTemp:     DefaultMaxTemp,
		MinTemp:     DefaultMinTemp,
		AvgHumidity: DefaultAvgHumidity,
		Rainfall:    DefaultRainfall,
	}
}

// DefaultHorizon substitutes a full run of default summaries starting at
// from. Used when the upstream weather fetch fails entirely.
func DefaultHorizon(from time.Time, days int) []DailySummary {
	summaries := make([]DailySummary, 0, days)
	for _, day := range dateutil.Range(from, days) {
		summaries = append(summaries, DefaultSummary(day))
	}
	return summaries
}

func summarizeRun(day time.Time, run []Sample) DailySummary {
	summary := DefaultSummary(day)

	var (
		tempSum, humiditySum, rainSum float64
		tempCount, humidityCount      int
		rainSeen                      bool
		minTemp, maxTemp              float64
	)
	for _, s := range run {
		if s.Temperature != nil {
			t := *s.Temperature
			tempSum += t
			if tempCount == 0 || t < minTemp {
				minTemp = t
			}
			if tempCount == 0 || t > maxTemp {
				maxTemp = t
			}
			tempCount++
		}
		if s.Humidity != nil {
			humiditySum += *s.Humidity
			humidityCount++
		}
		if s.Precipitation != nil {
			rainSum += *s.Precipitation
			rainSeen = true
		}
	}

	if tempCount > 0 {
		summary.AvgTemp = tempSum / float64(tempCount)
		summary.MaxTemp = maxTemp
		summary.MinTemp = minTemp
	}
	if humidityCount > 0 {
		summary.AvgHumidity = humiditySum / float64(humidityCount)
	}
	if rainSeen {
		summary.Rainfall = rainSum
	}
	return summary
}
