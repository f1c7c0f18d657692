package recommend

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
	apperrors "github.com/seristack/cocoon-recommender/pkg/errors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubProvider struct {
	forecastFn func(ctx context.Context, city string, days int) ([]forecast.DailySummary, error)
}

func (s *stubProvider) Forecast(ctx context.Context, city string, days int) ([]forecast.DailySummary, error) {
	return s.forecastFn(ctx, city, days)
}

type stubOracle struct {
	inputs    []pricing.Input
	predictFn func(in pricing.Input) (pricing.Prediction, error)
}

func (s *stubOracle) PredictPrice(_ context.Context, in pricing.Input) (pricing.Prediction, error) {
	s.inputs = append(s.inputs, in)
	if s.predictFn != nil {
		return s.predictFn(in)
	}
	return pricing.Prediction{PredictedPrice: 500, ConfidenceScore: pricing.ActiveConfidence, Status: pricing.StatusActive}, nil
}

type stubRepo struct {
	inserted []Recommendation
	insertFn func(rec Recommendation) error
	listFn   func(userID int64, limit int) ([]Recommendation, error)
}

func (s *stubRepo) Insert(_ context.Context, rec Recommendation) error {
	if s.insertFn != nil {
		if err := s.insertFn(rec); err != nil {
			return err
		}
	}
	s.inserted = append(s.inserted, rec)
	return nil
}

func (s *stubRepo) ListByUser(_ context.Context, userID int64, limit int) ([]Recommendation, error) {
	if s.listFn != nil {
		return s.listFn(userID, limit)
	}
	return nil, nil
}

func fixedSummaries(from time.Time, temps ...float64) []forecast.DailySummary {
	out := make([]forecast.DailySummary, 0, len(temps))
	for i, temp := range temps {
		out = append(out, forecast.DailySummary{
			Date:        from.AddDate(0, 0, i),
			AvgTemp:     temp,
			MaxTemp:     temp + 4,
			AvgHumidity: 65,
		})
	}
	return out
}

func newServiceUnderTest(provider forecast.Provider, oracle PriceOracle, repo Repository, today time.Time) *service {
	svc := NewService(Config{}, provider, nil, oracle, repo, testLogger()).(*service)
	svc.now = func() time.Time { return today }
	return svc
}

func TestRecommendNow_OptimalTemperature(t *testing.T) {
	today := time.Date(2025, time.April, 10, 9, 30, 0, 0, time.UTC)
	provider := &stubProvider{forecastFn: func(ctx context.Context, city string, days int) ([]forecast.DailySummary, error) {
		require.Equal(t, 1, days)
		return fixedSummaries(time.Date(2025, time.April, 10, 0, 0, 0, 0, time.UTC), 24.0), nil
	}}
	oracle := &stubOracle{}
	repo := &stubRepo{}

	svc := newServiceUnderTest(provider, oracle, repo, today)
	rec, err := svc.RecommendNow(context.Background(), "Bengaluru", 7)
	require.NoError(t, err)

	require.True(t, rec.StartDate.Equal(time.Date(2025, time.April, 11, 0, 0, 0, 0, time.UTC)))
	require.True(t, rec.EndDate.Equal(time.Date(2025, time.May, 9, 0, 0, 0, 0, time.UTC)))
	require.Equal(t, 500.0, rec.PredictedPrice)
	require.Equal(t, pricing.ActiveConfidence, rec.ConfidenceScore)
	require.Equal(t, pricing.StatusActive, rec.Status)
	require.False(t, rec.Risky)
	require.False(t, rec.WeatherDegraded)
	require.NotEmpty(t, rec.ID)
	require.Equal(t, int64(7), rec.UserID)
	require.Equal(t, 24.0, rec.Weather.Temperature)
	require.Len(t, repo.inserted, 1)
	require.Equal(t, rec.ID, repo.inserted[0].ID)
}

func TestRecommendNow_HotWeatherDelaysAndFlagsRisk(t *testing.T) {
	today := time.Date(2025, time.April, 10, 0, 0, 0, 0, time.UTC)
	provider := &stubProvider{forecastFn: func(ctx context.Context, city string, days int) ([]forecast.DailySummary, error) {
		return fixedSummaries(today, 30.0), nil
	}}
	repo := &stubRepo{}

	svc := newServiceUnderTest(provider, &stubOracle{}, repo, today)
	rec, err := svc.RecommendNow(context.Background(), "Bengaluru", 1)
	require.NoError(t, err)

	// Delay 2 for hot weather, duration shortened to 25 days.
	require.True(t, rec.StartDate.Equal(time.Date(2025, time.April, 13, 0, 0, 0, 0, time.UTC)))
	require.True(t, rec.EndDate.Equal(time.Date(2025, time.May, 8, 0, 0, 0, 0, time.UTC)))
	require.True(t, rec.Risky)
}

func TestRecommendNow_UnknownCityWritesNothing(t *testing.T) {
	today := time.Date(2025, time.April, 10, 0, 0, 0, 0, time.UTC)
	provider := &stubProvider{forecastFn: func(ctx context.Context, city string, days int) ([]forecast.DailySummary, error) {
		return fixedSummaries(today, 24.0), nil
	}}
	oracle := &stubOracle{predictFn: func(in pricing.Input) (pricing.Prediction, error) {
		return pricing.Prediction{}, apperrors.Wrap("unsupported_category", "unknown city: Atlantis", nil)
	}}
	repo := &stubRepo{}

	svc := newServiceUnderTest(provider, oracle, repo, today)
	_, err := svc.RecommendNow(context.Background(), "Atlantis", 1)
	require.True(t, apperrors.IsCode(err, "unsupported_category"))
	require.Empty(t, repo.inserted)
}

func TestRecommendNow_WeatherFailureDegrades(t *testing.T) {
	today := time.Date(2025, time.April, 10, 0, 0, 0, 0, time.UTC)
	provider := &stubProvider{forecastFn: func(ctx context.Context, city string, days int) ([]forecast.DailySummary, error) {
		return nil, errors.New("upstream timeout")
	}}
	oracle := &stubOracle{}
	repo := &stubRepo{}

	svc := newServiceUnderTest(provider, oracle, repo, today)
	rec, err := svc.RecommendNow(context.Background(), "Bengaluru", 1)
	require.NoError(t, err)

	// Defaults put today's average at 25.0: no delay, standard duration.
	require.Equal(t, 25.0, rec.Weather.Temperature)
	require.True(t, rec.StartDate.Equal(time.Date(2025, time.April, 11, 0, 0, 0, 0, time.UTC)))
	require.True(t, rec.WeatherDegraded)
	require.Len(t, repo.inserted, 1)
	require.True(t, repo.inserted[0].WeatherDegraded)
}

func TestRecommendNow_PersistenceErrorFailsRequest(t *testing.T) {
	today := time.Date(2025, time.April, 10, 0, 0, 0, 0, time.UTC)
	provider := &stubProvider{forecastFn: func(ctx context.Context, city string, days int) ([]forecast.DailySummary, error) {
		return fixedSummaries(today, 24.0), nil
	}}
	repo := &stubRepo{insertFn: func(rec Recommendation) error {
		return errors.New("connection reset")
	}}

	svc := newServiceUnderTest(provider, &stubOracle{}, repo, today)
	_, err := svc.RecommendNow(context.Background(), "Bengaluru", 1)
	require.True(t, apperrors.IsCode(err, "persistence_error"))
}

func TestRecommendNow_EmptyCity(t *testing.T) {
	svc := newServiceUnderTest(nil, &stubOracle{}, &stubRepo{}, time.Now().UTC())
	_, err := svc.RecommendNow(context.Background(), "   ", 1)
	require.True(t, apperrors.IsCode(err, "invalid_input"))
}

func TestRecommendWindow_RanksAndPricesPerDay(t *testing.T) {
	today := time.Date(2025, time.April, 10, 0, 0, 0, 0, time.UTC)
	provider := &stubProvider{forecastFn: func(ctx context.Context, city string, days int) ([]forecast.DailySummary, error) {
		require.Equal(t, 3, days)
		return fixedSummaries(today, 24.0, 26.0, 22.0), nil
	}}
	prices := map[string]float64{"2025-04-10": 480, "2025-04-11": 530, "2025-04-12": 510}
	oracle := &stubOracle{predictFn: func(in pricing.Input) (pricing.Prediction, error) {
		return pricing.Prediction{
			PredictedPrice:  prices[in.Date.Format("2006-01-02")],
			ConfidenceScore: pricing.ActiveConfidence,
			Status:          pricing.StatusActive,
		}, nil
	}}

	svc := newServiceUnderTest(provider, oracle, &stubRepo{}, today)
	result, err := svc.RecommendWindow(context.Background(), "Bengaluru", 3)
	require.NoError(t, err)

	require.Len(t, result.Candidates, 3)
	require.False(t, result.WeatherDegraded)

	// Each candidate day is priced with its own calendar month.
	for i, in := range oracle.inputs {
		require.Equal(t, today.AddDate(0, 0, i).Month(), in.Month)
	}

	bestCount := 0
	for _, c := range result.Candidates {
		if c.IsBest {
			bestCount++
			require.True(t, c.Date.Equal(time.Date(2025, time.April, 11, 0, 0, 0, 0, time.UTC)))
		}
	}
	require.Equal(t, 1, bestCount)
	require.Equal(t, 530.0, result.BestPredictedPrice)
	require.True(t, result.BestStartDate.Equal(time.Date(2025, time.April, 11, 0, 0, 0, 0, time.UTC)))
}

func TestRecommendWindow_TieKeepsEarliestDate(t *testing.T) {
	today := time.Date(2025, time.April, 10, 0, 0, 0, 0, time.UTC)
	provider := &stubProvider{forecastFn: func(ctx context.Context, city string, days int) ([]forecast.DailySummary, error) {
		return fixedSummaries(today, 24.0, 24.0, 24.0), nil
	}}

	svc := newServiceUnderTest(provider, &stubOracle{}, &stubRepo{}, today)
	result, err := svc.RecommendWindow(context.Background(), "Bengaluru", 3)
	require.NoError(t, err)
	require.True(t, result.BestStartDate.Equal(today))
}

func TestRecommendWindow_ProviderFailureStillFullHorizon(t *testing.T) {
	today := time.Date(2025, time.April, 10, 0, 0, 0, 0, time.UTC)
	provider := &stubProvider{forecastFn: func(ctx context.Context, city string, days int) ([]forecast.DailySummary, error) {
		return nil, errors.New("upstream down")
	}}

	svc := newServiceUnderTest(provider, &stubOracle{}, &stubRepo{}, today)
	result, err := svc.RecommendWindow(context.Background(), "Bengaluru", 0)
	require.NoError(t, err)

	require.Len(t, result.Candidates, DefaultHorizon)
	require.True(t, result.WeatherDegraded)
	for i, c := range result.Candidates {
		require.True(t, c.Date.Equal(today.AddDate(0, 0, i)))
	}
}

func TestRecommendWindow_OversizedHorizonClamped(t *testing.T) {
	today := time.Date(2025, time.April, 10, 0, 0, 0, 0, time.UTC)
	provider := &stubProvider{forecastFn: func(ctx context.Context, city string, days int) ([]forecast.DailySummary, error) {
		require.Equal(t, MaxHorizon, days)
		return nil, errors.New("upstream down")
	}}
	oracle := &stubOracle{}

	svc := newServiceUnderTest(provider, oracle, &stubRepo{}, today)
	result, err := svc.RecommendWindow(context.Background(), "Bengaluru", 10000)
	require.NoError(t, err)

	// One candidate and one oracle call per capped day, nothing beyond the
	// longest forecast the provider can serve.
	require.Len(t, result.Candidates, MaxHorizon)
	require.Len(t, oracle.inputs, MaxHorizon)
}

func TestRecommendWindow_ShortHorizonPaddedWithDefaults(t *testing.T) {
	today := time.Date(2025, time.April, 10, 0, 0, 0, 0, time.UTC)
	provider := &stubProvider{forecastFn: func(ctx context.Context, city string, days int) ([]forecast.DailySummary, error) {
		return fixedSummaries(today, 24.0, 26.0), nil
	}}

	svc := newServiceUnderTest(provider, &stubOracle{}, &stubRepo{}, today)
	result, err := svc.RecommendWindow(context.Background(), "Bengaluru", 5)
	require.NoError(t, err)

	require.Len(t, result.Candidates, 5)
	require.False(t, result.WeatherDegraded)
	require.Equal(t, forecast.DefaultAvgTemp, result.Candidates[4].AvgTemp)
	require.True(t, result.Candidates[4].Date.Equal(today.AddDate(0, 0, 4)))
}

func TestRecommendWindow_UsesCachedForecast(t *testing.T) {
	today := time.Date(2025, time.April, 10, 0, 0, 0, 0, time.UTC)
	providerCalls := 0
	provider := &stubProvider{forecastFn: func(ctx context.Context, city string, days int) ([]forecast.DailySummary, error) {
		providerCalls++
		return fixedSummaries(today, 24.0, 26.0, 22.0), nil
	}}
	cache := newMemoryCache()

	svc := NewService(Config{}, provider, cache, &stubOracle{}, &stubRepo{}, testLogger()).(*service)
	svc.now = func() time.Time { return today }

	_, err := svc.RecommendWindow(context.Background(), "Bengaluru", 3)
	require.NoError(t, err)
	_, err = svc.RecommendWindow(context.Background(), "Bengaluru", 3)
	require.NoError(t, err)
	require.Equal(t, 1, providerCalls)
}

func TestHistory_DefaultLimit(t *testing.T) {
	repo := &stubRepo{listFn: func(userID int64, limit int) ([]Recommendation, error) {
		require.Equal(t, int64(7), userID)
		require.Equal(t, 10, limit)
		return []Recommendation{{ID: "a"}}, nil
	}}

	svc := newServiceUnderTest(nil, &stubOracle{}, repo, time.Now().UTC())
	recs, err := svc.History(context.Background(), 7, 0)
	require.NoError(t, err)
	require.Len(t, recs, 1)
}

type memoryCache struct {
	entries map[string][]forecast.DailySummary
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]forecast.DailySummary)}
}

func (m *memoryCache) Get(_ context.Context, key string) ([]forecast.DailySummary, bool, error) {
	v, ok := m.entries[key]
	return v, ok, nil
}

func (m *memoryCache) Set(_ context.Context, key string, summaries []forecast.DailySummary) error {
	m.entries[key] = summaries
	return nil
}
