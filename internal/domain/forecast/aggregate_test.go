package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func hourly(day time.Time, hour int, temp, humidity, rain *float64) Sample {
	return Sample{
		Timestamp:     day.Add(time.Duration(hour) * time.Hour),
		Temperature:   temp,
		Humidity:      humidity,
		Precipitation: rain,
	}
}

func TestAggregate_PartitionsByCalendarDay(t *testing.T) {
	day1 := time.Date(2025, time.April, 10, 0, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	samples := []Sample{
		hourly(day1, 6, ptr(20), ptr(60), ptr(0)),
		hourly(day1, 12, ptr(30), ptr(70), ptr(1.5)),
		hourly(day2, 6, ptr(18), ptr(80), ptr(0.5)),
	}

	summaries := Aggregate(samples)
	require.Len(t, summaries, 2)

	require.True(t, summaries[0].Date.Equal(day1))
	require.InDelta(t, 25.0, summaries[0].AvgTemp, 1e-9)
	require.InDelta(t, 30.0, summaries[0].MaxTemp, 1e-9)
	require.InDelta(t, 20.0, summaries[0].MinTemp, 1e-9)
	require.InDelta(t, 65.0, summaries[0].AvgHumidity, 1e-9)
	require.InDelta(t, 1.5, summaries[0].Rainfall, 1e-9)

	require.True(t, summaries[1].Date.Equal(day2))
	require.InDelta(t, 18.0, summaries[1].AvgTemp, 1e-9)
}

func TestAggregate_NilReadingsSkipped(t *testing.T) {
	day := time.Date(2025, time.April, 10, 0, 0, 0, 0, time.UTC)

	samples := []Sample{
		hourly(day, 0, nil, ptr(50), nil),
		hourly(day, 1, ptr(22), nil, ptr(2)),
		hourly(day, 2, ptr(26), ptr(70), nil),
	}

	summaries := Aggregate(samples)
	require.Len(t, summaries, 1)

	got := summaries[0]
	require.InDelta(t, 24.0, got.AvgTemp, 1e-9)
	require.InDelta(t, 26.0, got.MaxTemp, 1e-9)
	require.InDelta(t, 22.0, got.MinTemp, 1e-9)
	require.InDelta(t, 60.0, got.AvgHumidity, 1e-9)
	require.InDelta(t, 2.0, got.Rainfall, 1e-9)
}

func TestAggregate_DayWithoutReadingsGetsDefaults(t *testing.T) {
	day := time.Date(2025, time.April, 10, 0, 0, 0, 0, time.UTC)

	samples := []Sample{
		hourly(day, 0, nil, nil, nil),
		hourly(day, 1, nil, nil, nil),
	}

	summaries := Aggregate(samples)
	require.Len(t, summaries, 1)
	require.Equal(t, DefaultSummary(day), summaries[0])
}

func TestAggregate_Empty(t *testing.T) {
	require.Nil(t, Aggregate(nil))
}

func TestAggregate_NoReordering(t *testing.T) {
	day1 := time.Date(2025, time.April, 10, 0, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	// Day1 appears again after day2: contiguous-run semantics must emit
	// three summaries, not merge the two day1 runs.
	samples := []Sample{
		hourly(day1, 6, ptr(20), nil, nil),
		hourly(day2, 6, ptr(21), nil, nil),
		hourly(day1, 18, ptr(30), nil, nil),
	}

	summaries := Aggregate(samples)
	require.Len(t, summaries, 3)
	require.True(t, summaries[0].Date.Equal(day1))
	require.True(t, summaries[1].Date.Equal(day2))
	require.True(t, summaries[2].Date.Equal(day1))
}

func TestDefaultSummaryValues(t *testing.T) {
	day := time.Date(2025, time.January, 2, 13, 45, 0, 0, time.UTC)
	got := DefaultSummary(day)

	require.True(t, got.Date.Equal(time.Date(2025, time.January, 2, 0, 0, 0, 0, time.UTC)))
	require.Equal(t, 25.0, got.AvgTemp)
	require.Equal(t, 28.0, got.MaxTemp)
	require.Equal(t, 22.0, got.MinTemp)
	require.Equal(t, 65.0, got.AvgHumidity)
	require.Equal(t, 0.0, got.Rainfall)
}

func TestDefaultHorizon_ConsecutiveDays(t *testing.T) {
	from := time.Date(2025, time.April, 10, 0, 0, 0, 0, time.UTC)

	summaries := DefaultHorizon(from, 5)
	require.Len(t, summaries, 5)
	for i, s := range summaries {
		require.True(t, s.Date.Equal(from.AddDate(0, 0, i)))
		require.Equal(t, DefaultAvgTemp, s.AvgTemp)
	}
}
