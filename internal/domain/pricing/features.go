package pricing

import (
	"context"
	"time"

	"github.com/seristack/cocoon-recommender/internal/domain/forecast"
	apperrors "github.com/seristack/cocoon-recommender/pkg/errors"
)

// FeatureNames lists the model's input columns in training order.
var FeatureNames = []string{
	"city",
	"month",
	"season",
	"avg_temp",
	"max_temp",
	"avg_humidity",
	"rainfall",
}

// FeatureVector is the fixed-order numeric input the price model consumes.
type FeatureVector struct {
	CityCode    float64
	Month       float64
	SeasonCode  float64
	AvgTemp     float64
	MaxTemp     float64
	AvgHumidity float64
	Rainfall    float64
}

// Values flattens the vector in training order. This method and
// FeatureNames are the only places the column order is defined; the model
// accepts positional input, so a reordering produces wrong predictions
// rather than an error.
func (v FeatureVector) Values() []float64 {
	return []float64{
		v.CityCode,
		v.Month,
		v.SeasonCode,
		v.AvgTemp,
		v.MaxTemp,
		v.AvgHumidity,
		v.Rainfall,
	}
}

// Encoders holds the categorical lookup tables shipped with the trained
// artifact. Their vocabularies are fixed at artifact build time; lookups on
// unknown categories fail rather than substitute a default.
type Encoders struct {
	City   map[string]int `json:"city"`
	Season map[string]int `json:"season"`
}

// Cities returns the supported city vocabulary.
func (e Encoders) Cities() []string {
	names := make([]string, 0, len(e.City))
	for name := range e.City {
		names = append(names, name)
	}
	return names
}

// Input carries everything the encoder needs for one prediction.
type Input struct {
	City    string
	Date    time.Time
	Summary forecast.DailySummary

	// Month overrides Date's month when predictions target a day other
	// than "today". Zero means derive from Date.
	Month time.Month
}

// Predictor is the externally trained numeric function over a FeatureVector.
// Implementations must be safe for concurrent read-only inference.
type Predictor interface {
	Predict(ctx context.Context, features FeatureVector) (float64, error)
}

// Encode maps an Input into the model's feature vector. An unknown city or
// season surfaces as an unsupported_category error; it indicates a
// caller/config mismatch rather than missing data, so no guessing happens.
func Encode(enc Encoders, in Input) (FeatureVector, error) {
	month := in.Month
	if month == 0 {
		month = in.Date.Month()
	}

	cityCode, ok := enc.City[in.City]
	if !ok {
		return FeatureVector{}, apperrors.Wrap("unsupported_category",
			"city "+in.City+" is not in the trained vocabulary", nil)
	}
	season := SeasonForMonth(month)
	seasonCode, ok := enc.Season[string(season)]
	if !ok {
		return FeatureVector{}, apperrors.Wrap("unsupported_category",
			"season "+string(season)+" is not in the trained vocabulary", nil)
	}

	return FeatureVector{
		CityCode:    float64(cityCode),
		Month:       float64(month),
		SeasonCode:  float64(seasonCode),
		AvgTemp:     in.Summary.AvgTemp,
		MaxTemp:     in.Summary.MaxTemp,
		AvgHumidity: in.Summary.AvgHumidity,
		Rainfall:    in.Summary.Rainfall,
	}, nil
}

// IsUnsupportedCategory reports whether err is a vocabulary miss.
func IsUnsupportedCategory(err error) bool {
	return apperrors.IsCode(err, "unsupported_category")
}
