package forecast

import (
	"context"
	"time"
)

// Sample is one sub-daily weather observation from the upstream provider.
// Pointer fields stay nil when the provider omitted the reading.
type Sample struct {
	Timestamp     time.Time
	Temperature   *float64
	Humidity      *float64
	Precipitation *float64
}

// DailySummary condenses the samples of one calendar day. Immutable once
// produced; every numeric field except the temperatures is non-negative.
type DailySummary struct {
	Date        time.Time `json:"date"`
	AvgTemp     float64   `json:"avgTemp"`
	MaxTemp     float64   `json:"maxTemp"`
	MinTemp     float64   `json:"minTemp"`
	AvgHumidity float64   `json:"avgHumidity"`
	Rainfall    float64   `json:"rainfall"`
}

// Defaults used when a day has no valid readings for a field. They match the
// values the price model was calibrated against.
const (
	DefaultAvgTemp     = 25.0
	DefaultMaxTemp     = 28.0
	DefaultMinTemp     = 22.0
	DefaultAvgHumidity = 65.0
	DefaultRainfall    = 0.0
)

// Provider fetches a multi-day forecast for a city as daily summaries.
type Provider interface {
	Forecast(ctx context.Context, city string, days int) ([]DailySummary, error)
}

// Store caches aggregated forecasts keyed by city and horizon.
type Store interface {
	Get(ctx context.Context, key string) ([]DailySummary, bool, error)
	Set(ctx context.Context, key string, summaries []DailySummary) error
}
