package recommend

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/seristack/cocoon-recommender/internal/domain/forecast"
	"github.com/seristack/cocoon-recommender/internal/domain/pricing"
	"github.com/seristack/cocoon-recommender/internal/domain/rules"
	"github.com/seristack/cocoon-recommender/pkg/dateutil"
	apperrors "github.com/seristack/cocoon-recommender/pkg/errors"
)

// DefaultHorizon is the number of days evaluated when the caller does not
// ask for a specific window length.
const DefaultHorizon = 10

// MaxHorizon caps the window length at the longest forecast the upstream
// weather API serves.
const MaxHorizon = 16

const defaultHistoryLimit = 10

// Config wires runtime settings for the recommendation domain.
type Config struct {
	Horizon int
}

// Service orchestrates forecast ingestion, pricing and the rule engine into
// rearing recommendations.
type Service interface {
	RecommendNow(ctx context.Context, city string, userID int64) (Recommendation, error)
	RecommendWindow(ctx context.Context, city string, days int) (WindowResult, error)
	History(ctx context.Context, userID int64, limit int) ([]Recommendation, error)
}

type service struct {
	cfg      Config
	provider forecast.Provider
	cache    forecast.Store
	oracle   PriceOracle
	repo     Repository
	logger   *slog.Logger
	now      func() time.Time
}

// NewService builds the recommendation service.
func NewService(cfg Config, provider forecast.Provider, cache forecast.Store, oracle PriceOracle, repo Repository, logger *slog.Logger) Service {
	if cfg.Horizon <= 0 {
		cfg.Horizon = DefaultHorizon
	}
	return &service{
		cfg:      cfg,
		provider: provider,
		cache:    cache,
		oracle:   oracle,
		repo:     repo,
		logger:   logger.With("component", "recommend.service"),
		now:      dateutil.NowUTC,
	}
}

// RecommendNow produces and persists a recommendation from today's weather.
// Exactly one persistence write happens per call; an unknown city fails the
// request before anything is written.
func (s *service) RecommendNow(ctx context.Context, city string, userID int64) (Recommendation, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return Recommendation{}, apperrors.Wrap("invalid_input", "city cannot be empty", nil)
	}

	today := dateutil.Day(s.now())
	summaries, degraded := s.fetchForecast(ctx, city, 1)
	current := summaries[0]

	prediction, err := s.oracle.PredictPrice(ctx, pricing.Input{
		City:    city,
		Date:    current.Date,
		Summary: current,
	})
	if err != nil {
		return Recommendation{}, err
	}

	startDate := dateutil.AddDays(today, 1+rules.DelayForTemperature(current.AvgTemp))
	duration := rules.DurationForTemperature(current.AvgTemp)
	endDate := dateutil.AddDays(startDate, duration)

	rec := Recommendation{
		ID:              uuid.NewString(),
		UserID:          userID,
		City:            city,
		StartDate:       startDate,
		EndDate:         endDate,
		PredictedPrice:  prediction.PredictedPrice,
		ConfidenceScore: prediction.ConfidenceScore,
		Status:          prediction.Status,
		Risky:           rules.IsRisky(current.AvgTemp),
		WeatherDegraded: degraded,
		Weather: WeatherConditions{
			Temperature: current.AvgTemp,
			Humidity:    current.AvgHumidity,
		},
		CreatedAt: s.now(),
	}

	if err := s.repo.Insert(ctx, rec); err != nil {
		return Recommendation{}, apperrors.Wrap("persistence_error", "failed to store recommendation", err)
	}
	s.logger.Info("recommendation created",
		"city", city, "start", rec.StartDate.Format(dateutil.DayLayout),
		"end", rec.EndDate.Format(dateutil.DayLayout), "status", rec.Status)
	return rec, nil
}

// RecommendWindow evaluates the next N days and ranks them. The graph view
// is exploratory, so nothing is persisted here.
func (s *service) RecommendWindow(ctx context.Context, city string, days int) (WindowResult, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return WindowResult{}, apperrors.Wrap("invalid_input", "city cannot be empty", nil)
	}
	if days <= 0 {
		days = s.cfg.Horizon
	}
	if days > MaxHorizon {
		days = MaxHorizon
	}

	summaries, degraded := s.fetchForecast(ctx, city, days)
	candidates, err := searchWindow(ctx, s.oracle, city, summaries)
	if err != nil {
		return WindowResult{}, err
	}

	result := WindowResult{
		City:            city,
		Candidates:      candidates,
		WeatherDegraded: degraded,
	}
	for _, c := range candidates {
		if c.IsBest {
			result.BestStartDate = c.Date
			result.BestPredictedPrice = c.PredictedPrice
			break
		}
	}
	return result, nil
}

// History returns the caller's recommendations, newest first.
func (s *service) History(ctx context.Context, userID int64, limit int) ([]Recommendation, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	recs, err := s.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, apperrors.Wrap("persistence_error", "failed to load history", err)
	}
	return recs, nil
}

// fetchForecast returns daily summaries for the horizon, substituting a full
// default horizon when the upstream provider fails. The boolean reports the
// degraded case.
func (s *service) fetchForecast(ctx context.Context, city string, days int) ([]forecast.DailySummary, bool) {
	today := dateutil.Day(s.now())
	key := fmt.Sprintf("forecast:%s:%s:%d", strings.ToLower(city), today.Format(dateutil.DayLayout), days)

	if s.cache != nil {
		if cached, ok, err := s.cache.Get(ctx, key); err == nil && ok && len(cached) >= days {
			return cached[:days], false
		}
	}

	summaries, err := s.provider.Forecast(ctx, city, days)
	if err != nil || len(summaries) == 0 {
		s.logger.Warn("weather fetch failed, substituting default horizon", "city", city, "days", days, "error", err)
		return forecast.DefaultHorizon(today, days), true
	}
	if len(summaries) < days {
		// Provider returned a short horizon; pad the tail with defaults so
		// downstream never sees a hole in the day sequence.
		from := dateutil.AddDays(summaries[len(summaries)-1].Date, 1)
		summaries = append(summaries, forecast.DefaultHorizon(from, days-len(summaries))...)
	}
	summaries = summaries[:days]

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, summaries); err != nil {
			s.logger.Warn("forecast cache write failed", "city", city, "error", err)
		}
	}
	return summaries, false
}
