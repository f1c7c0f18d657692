package unit

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/seristack/cocoon-recommender/internal/domain/forecast"
	"github.com/seristack/cocoon-recommender/internal/domain/pricing"
	"github.com/seristack/cocoon-recommender/internal/domain/recommend"
	"github.com/seristack/cocoon-recommender/internal/infra/forecastcache"
	"github.com/seristack/cocoon-recommender/internal/infra/recrepo"
	apperrors "github.com/seristack/cocoon-recommender/pkg/errors"
)

// These tests wire the real oracle, cache and repository together, stubbing
// only the two external processes (weather API and model server).

type stubProvider struct {
	summaries []forecast.DailySummary
	err       error
	calls     int
}

func (s *stubProvider) Forecast(_ context.Context, _ string, days int) ([]forecast.DailySummary, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if len(s.summaries) > days {
		return s.summaries[:days], nil
	}
	return s.summaries, nil
}

type stubPredictor struct {
	prices map[int]float64 // month -> price
	err    error
}

func (s *stubPredictor) Predict(_ context.Context, features pricing.FeatureVector) (float64, error) {
	if s.err != nil {
		return 0, s.err
	}
	if price, ok := s.prices[int(features.Month)]; ok {
		return price, nil
	}
	return 500, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testEncoders() pricing.Encoders {
	return pricing.Encoders{
		City:   map[string]int{"Bengaluru": 0, "Ramanagar": 1, "Siddlaghatta": 2},
		Season: map[string]int{"Monsoon": 0, "PostMonsoon": 1, "Summer": 2, "Winter": 3},
	}
}

func horizon(from time.Time, temps ...float64) []forecast.DailySummary {
	out := make([]forecast.DailySummary, 0, len(temps))
	for i, temp := range temps {
		out = append(out, forecast.DailySummary{
			Date:        from.AddDate(0, 0, i),
			AvgTemp:     temp,
			MaxTemp:     temp + 3,
			AvgHumidity: 65,
		})
	}
	return out
}

func TestFullFlow_PredictThenHistory(t *testing.T) {
	today := time.Date(2025, time.April, 10, 0, 0, 0, 0, time.UTC)
	provider := &stubProvider{summaries: horizon(today, 24.0)}
	oracle := pricing.NewOracle(pricing.Config{}, testEncoders(), &stubPredictor{}, testLogger())
	repo := recrepo.NewMemoryRepository()

	svc := recommend.NewService(recommend.Config{}, provider, forecastcache.NewMemoryStore(time.Minute), oracle, repo, testLogger())

	rec, err := svc.RecommendNow(context.Background(), "Bengaluru", 1)
	require.NoError(t, err)
	require.Equal(t, pricing.StatusActive, rec.Status)
	require.Equal(t, pricing.ActiveConfidence, rec.ConfidenceScore)
	require.False(t, rec.Risky)

	history, err := svc.History(context.Background(), 1, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, rec.ID, history[0].ID)
}

func TestFullFlow_UnknownCityLeavesNoTrace(t *testing.T) {
	today := time.Date(2025, time.April, 10, 0, 0, 0, 0, time.UTC)
	provider := &stubProvider{summaries: horizon(today, 24.0)}
	oracle := pricing.NewOracle(pricing.Config{}, testEncoders(), &stubPredictor{}, testLogger())
	repo := recrepo.NewMemoryRepository()

	svc := recommend.NewService(recommend.Config{}, provider, nil, oracle, repo, testLogger())

	_, err := svc.RecommendNow(context.Background(), "Atlantis", 1)
	require.True(t, apperrors.IsCode(err, "unsupported_category"))

	history, err := svc.History(context.Background(), 1, 0)
	require.NoError(t, err)
	require.Empty(t, history)
}

func TestFullFlow_ModelOutageDegradesButPersists(t *testing.T) {
	today := time.Date(2025, time.April, 10, 0, 0, 0, 0, time.UTC)
	provider := &stubProvider{summaries: horizon(today, 24.0)}
	oracle := pricing.NewOracle(pricing.Config{}, testEncoders(), &stubPredictor{err: errors.New("serving down")}, testLogger())
	repo := recrepo.NewMemoryRepository()

	svc := recommend.NewService(recommend.Config{}, provider, nil, oracle, repo, testLogger())

	rec, err := svc.RecommendNow(context.Background(), "Bengaluru", 1)
	require.NoError(t, err)
	require.Equal(t, pricing.StatusFallback, rec.Status)
	require.Equal(t, pricing.DefaultFallbackPrice, rec.PredictedPrice)
	require.Equal(t, 0.0, rec.ConfidenceScore)

	history, err := svc.History(context.Background(), 1, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
}

func TestFullFlow_WindowSeasonShiftsAcrossMonthBoundary(t *testing.T) {
	// Horizon starting May 29 crosses into June: the per-day month must move
	// the season feature from Summer to Monsoon mid-window.
	start := time.Date(2025, time.May, 29, 0, 0, 0, 0, time.UTC)
	provider := &stubProvider{summaries: horizon(start, 24, 24, 24, 24, 24)}
	predictor := &stubPredictor{prices: map[int]float64{5: 490, 6: 520}}
	oracle := pricing.NewOracle(pricing.Config{}, testEncoders(), predictor, testLogger())

	svc := recommend.NewService(recommend.Config{}, provider, nil, oracle, recrepo.NewMemoryRepository(), testLogger())

	result, err := svc.RecommendWindow(context.Background(), "Ramanagar", 5)
	require.NoError(t, err)
	require.Len(t, result.Candidates, 5)

	// June days price higher; the earliest June day must win.
	require.True(t, result.BestStartDate.Equal(time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)))
	require.Equal(t, 520.0, result.BestPredictedPrice)
}

func TestFullFlow_CacheSkipsSecondFetch(t *testing.T) {
	today := time.Date(2025, time.April, 10, 0, 0, 0, 0, time.UTC)
	provider := &stubProvider{summaries: horizon(today, 24, 25, 26)}
	oracle := pricing.NewOracle(pricing.Config{}, testEncoders(), &stubPredictor{}, testLogger())
	cache := forecastcache.NewMemoryStore(time.Minute)

	svc := recommend.NewService(recommend.Config{}, provider, cache, oracle, recrepo.NewMemoryRepository(), testLogger())

	_, err := svc.RecommendWindow(context.Background(), "Bengaluru", 3)
	require.NoError(t, err)
	_, err = svc.RecommendWindow(context.Background(), "Bengaluru", 3)
	require.NoError(t, err)
	require.Equal(t, 1, provider.calls)
}
