package recommend

import (
	"context"

	"github.com/seristack/cocoon-recommender/internal/domain/forecast"
	"github.com/seristack/cocoon-recommender/internal/domain/pricing"
	"github.com/seristack/cocoon-recommender/internal/domain/rules"
	"github.com/seristack/cocoon-recommender/pkg/dateutil"
)

// searchWindow evaluates every day of a forecast horizon as a candidate
// start date. Each day is priced with its own calendar month so the season
// feature is computed per-day, not from "today". Days are never reordered or
// dropped: a day whose prediction degraded to fallback stays in the list and
// can still win the ranking.
func searchWindow(ctx context.Context, oracle PriceOracle, city string, summaries []forecast.DailySummary) ([]Candidate, error) {
	candidates := make([]Candidate, 0, len(summaries))
	for _, summary := range summaries {
		prediction, err := oracle.PredictPrice(ctx, pricing.Input{
			City:    city,
			Date:    summary.Date,
			Month:   summary.Date.Month(),
			Summary: summary,
		})
		if err != nil {
			return nil, err
		}

		duration := rules.DurationForTemperature(summary.AvgTemp)
		candidates = append(candidates, Candidate{
			Date:           summary.Date,
			PredictedPrice: prediction.PredictedPrice,
			EndDate:        dateutil.AddDays(summary.Date, duration),
			AvgTemp:        summary.AvgTemp,
			Status:         prediction.Status,
		})
	}

	markBest(candidates)
	return candidates, nil
}

// markBest flags the candidate with the maximum predicted price. Ties keep
// the first occurrence, so the earliest date wins.
func markBest(candidates []Candidate) {
	if len(candidates) == 0 {
		return
	}
	best := 0
	for i := 1; i < len(candidates); i++ {
		if candidates[i].PredictedPrice > candidates[best].PredictedPrice {
			best = i
		}
	}
	candidates[best].IsBest = true
}
