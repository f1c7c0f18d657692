package pricing

import (
	"context"
	"fmt"
	"log/slog"
	"math"
)

// Status marks whether a prediction came from the live model or the
// degraded fallback path.
type Status string

const (
	StatusActive   Status = "active"
	StatusFallback Status = "fallback"
)

// Reference deployment constants. The confidence is a static "model is
// active" flag, not a model-derived uncertainty.
const (
	ActiveConfidence     = 0.85
	DefaultFallbackPrice = 450.0
)

// Prediction is the ephemeral result of one pricing attempt. A fallback
// carries the fixed price and zero confidence so consumers can always tell
// a degraded estimate from a real one.
type Prediction struct {
	PredictedPrice  float64 `json:"predictedPrice"`
	ConfidenceScore float64 `json:"confidenceScore"`
	Status          Status  `json:"status"`
	Reason          string  `json:"reason,omitempty"`
}

// ModelHealth summarizes the loaded artifact for the health endpoint.
type ModelHealth struct {
	Status      string `json:"status"`
	CityVocab   int    `json:"cityVocab"`
	SeasonVocab int    `json:"seasonVocab"`
}

// Config tunes oracle behavior.
type Config struct {
	FallbackPrice float64
}

// Oracle wraps the prediction collaborator. It never fails a request for
// inference reasons: anything that goes wrong past encoding degrades to a
// fallback Prediction. Unknown-category encoding errors do propagate, since
// silently substituting a vocabulary miss would hide a config mismatch.
type Oracle struct {
	encoders      Encoders
	predictor     Predictor
	fallbackPrice float64
	logger        *slog.Logger
}

// NewOracle builds the pricing service around a loaded artifact.
func NewOracle(cfg Config, encoders Encoders, predictor Predictor, logger *slog.Logger) *Oracle {
	fallback := cfg.FallbackPrice
	if fallback <= 0 {
		fallback = DefaultFallbackPrice
	}
	return &Oracle{
		encoders:      encoders,
		predictor:     predictor,
		fallbackPrice: fallback,
		logger:        logger.With("component", "pricing.oracle"),
	}
}

// Encoders exposes the artifact vocabulary for input validation upstream.
func (o *Oracle) Encoders() Encoders {
	return o.encoders
}

// PredictPrice encodes the input and runs inference. The returned error is
// non-nil only for unsupported_category.
func (o *Oracle) PredictPrice(ctx context.Context, in Input) (Prediction, error) {
	features, err := Encode(o.encoders, in)
	if err != nil {
		return Prediction{}, err
	}

	price, err := o.predictor.Predict(ctx, features)
	if err != nil {
		o.logger.Warn("inference failed, using fallback", "city", in.City, "error", err)
		return o.fallback(fmt.Sprintf("inference_failed: %v", err)), nil
	}
	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		o.logger.Warn("inference returned malformed price, using fallback", "city", in.City, "price", price)
		return o.fallback("malformed_model_output"), nil
	}

	return Prediction{
		PredictedPrice:  price,
		ConfidenceScore: ActiveConfidence,
		Status:          StatusActive,
	}, nil
}

// Health reports the loaded vocabulary sizes.
func (o *Oracle) Health() ModelHealth {
	status := "healthy"
	if len(o.encoders.City) == 0 || len(o.encoders.Season) == 0 {
		status = "encoders_missing"
	}
	return ModelHealth{
		Status:      status,
		CityVocab:   len(o.encoders.City),
		SeasonVocab: len(o.encoders.Season),
	}
}

func (o *Oracle) fallback(reason string) Prediction {
	return Prediction{
		PredictedPrice:  o.fallbackPrice,
		ConfidenceScore: 0,
		Status:          StatusFallback,
		Reason:          reason,
	}
}
