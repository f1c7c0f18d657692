package market

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/seristack/cocoon-recommender/pkg/dateutil"
	apperrors "github.com/seristack/cocoon-recommender/pkg/errors"
)

const defaultListLimit = 100
const maxListLimit = 1000

// Service manages market price observations uploaded by admins.
type Service interface {
	Upload(ctx context.Context, uploadedBy int64, req UploadRequest) (Record, error)
	List(ctx context.Context, filter Filter) ([]Record, error)
}

type service struct {
	repo   Repository
	cities map[string]struct{}
	logger *slog.Logger
}

// NewService builds the market data service over the supported city set.
func NewService(repo Repository, cities []string, logger *slog.Logger) Service {
	allowed := make(map[string]struct{}, len(cities))
	for _, c := range cities {
		allowed[c] = struct{}{}
	}
	return &service{
		repo:   repo,
		cities: allowed,
		logger: logger.With("component", "market.service"),
	}
}

func (s *service) Upload(ctx context.Context, uploadedBy int64, req UploadRequest) (Record, error) {
	city := strings.TrimSpace(req.City)
	if _, ok := s.cities[city]; !ok {
		return Record{}, apperrors.Wrap("invalid_input", "city "+city+" is not supported", nil)
	}
	if req.Date.IsZero() {
		return Record{}, apperrors.Wrap("invalid_input", "date is required", nil)
	}
	if req.MarketPrice < 0 || req.AvgHumidity < 0 || req.Rainfall < 0 {
		return Record{}, apperrors.Wrap("invalid_input", "price, humidity and rainfall must be non-negative", nil)
	}

	rec := Record{
		ID:          uuid.NewString(),
		City:        city,
		Date:        dateutil.Day(req.Date),
		MarketPrice: req.MarketPrice,
		AvgTemp:     req.AvgTemp,
		MaxTemp:     req.MaxTemp,
		AvgHumidity: req.AvgHumidity,
		Rainfall:    req.Rainfall,
		UploadedBy:  uploadedBy,
		CreatedAt:   dateutil.NowUTC(),
	}
	if err := s.repo.Insert(ctx, rec); err != nil {
		return Record{}, apperrors.Wrap("persistence_error", "failed to store market record", err)
	}
	s.logger.Info("market record stored", "city", rec.City, "date", rec.Date.Format(dateutil.DayLayout))
	return rec, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]Record, error) {
	if filter.City != "" {
		if _, ok := s.cities[filter.City]; !ok {
			return nil, apperrors.Wrap("invalid_input", "city "+filter.City+" is not supported", nil)
		}
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}
	records, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apperrors.Wrap("persistence_error", "failed to list market records", err)
	}
	return records, nil
}
