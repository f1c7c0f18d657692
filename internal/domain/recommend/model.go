package recommend

import (
	"context"
	"time"

	"github.com/seristack/cocoon-recommender/internal/domain/pricing"
)

// Candidate is one possible rearing start day inside a search horizon.
// Exactly one candidate per horizon carries IsBest after ranking.
type Candidate struct {
	Date           time.Time      `json:"date"`
	PredictedPrice float64        `json:"predictedPrice"`
	EndDate        time.Time      `json:"endDate"`
	AvgTemp        float64        `json:"avgTemp"`
	Status         pricing.Status `json:"status"`
	IsBest         bool           `json:"isBest"`
}

// WeatherConditions snapshots the inputs a recommendation was based on.
type WeatherConditions struct {
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
}

// Recommendation is the persisted outcome of one prediction request. It is
// owned by the requesting user and immutable after creation.
type Recommendation struct {
	ID              string            `json:"id"`
	UserID          int64             `json:"-"`
	City            string            `json:"city"`
	StartDate       time.Time         `json:"startDate"`
	EndDate         time.Time         `json:"endDate"`
	PredictedPrice  float64           `json:"predictedPrice"`
	ConfidenceScore float64           `json:"confidenceScore"`
	Status          pricing.Status    `json:"status"`
	Risky           bool              `json:"risky"`
	Weather         WeatherConditions `json:"weatherConditions"`
	CreatedAt       time.Time         `json:"createdAt"`

	// WeatherDegraded marks a recommendation priced from default weather
	// after an upstream forecast failure.
	WeatherDegraded bool `json:"weatherDegraded"`
}

// WindowResult bundles the candidate graph with the headline pick.
type WindowResult struct {
	City               string      `json:"city"`
	Candidates         []Candidate `json:"predictions"`
	BestStartDate      time.Time   `json:"bestStartDate"`
	BestPredictedPrice float64     `json:"bestPredictedPrice"`

	// WeatherDegraded marks results built from default summaries after an
	// upstream forecast failure.
	WeatherDegraded bool `json:"weatherDegraded"`
}

// Repository persists recommendations. Records are append-only; no update
// or delete is ever issued.
type Repository interface {
	Insert(ctx context.Context, rec Recommendation) error
	ListByUser(ctx context.Context, userID int64, limit int) ([]Recommendation, error)
}

// PriceOracle produces a prediction for one candidate day.
type PriceOracle interface {
	PredictPrice(ctx context.Context, in pricing.Input) (pricing.Prediction, error)
}
