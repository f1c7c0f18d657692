// Package rules holds the agronomic constraints applied to rearing windows.
// Everything here is a pure lookup or branch on its inputs.
package rules

import (
	"time"

	"github.com/seristack/cocoon-recommender/pkg/dateutil"
)

// Optimal temperature band for silkworm rearing (Celsius). Values exactly at
// a bound count as inside the band.
const (
	OptimalTempMin = 20.0
	OptimalTempMax = 28.0
)

// Rearing duration bounds in days.
const (
	MinRearingDuration      = 25
	MaxRearingDuration      = 30
	StandardRearingDuration = 28
)

// DelayForTemperature returns how many days to push the start date out.
// Cold weather needs a longer buffer than hot weather.
func DelayForTemperature(temp float64) int {
	switch {
	case temp < OptimalTempMin:
		return 3
	case temp > OptimalTempMax:
		return 2
	default:
		return 0
	}
}

// DurationForTemperature returns the rearing duration in days. Cold slows
// larval development so the window stretches; heat shortens it, at the cost
// of a riskier batch (see IsRisky).
func DurationForTemperature(temp float64) int {
	switch {
	case temp < OptimalTempMin:
		return MaxRearingDuration
	case temp > OptimalTempMax:
		return MinRearingDuration
	default:
		return StandardRearingDuration
	}
}

// IsRisky reports whether a rearing window driven by this temperature should
// be flagged to the grower. Only the hot band qualifies: development speeds
// up but cocoon quality becomes less predictable.
func IsRisky(temp float64) bool {
	return temp > OptimalTempMax
}

// IsValidWindow reports whether (start, end) spans an acceptable rearing
// duration.
func IsValidWindow(start, end time.Time) bool {
	days := dateutil.DaysBetween(start, end)
	return days >= MinRearingDuration && days <= MaxRearingDuration
}
