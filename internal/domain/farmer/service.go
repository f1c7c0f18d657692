package farmer

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/seristack/cocoon-recommender/pkg/dateutil"
	apperrors "github.com/seristack/cocoon-recommender/pkg/errors"
)

// Service manages farmer profiles.
type Service interface {
	Upsert(ctx context.Context, userID int64, req UpsertRequest) (Profile, error)
	Get(ctx context.Context, userID int64) (Profile, error)
}

type service struct {
	repo      Repository
	districts map[string]struct{}
	logger    *slog.Logger
}

// NewService builds the profile service. Districts come from the city
// vocabulary the price model supports, so a profile can always be priced.
func NewService(repo Repository, districts []string, logger *slog.Logger) Service {
	allowed := make(map[string]struct{}, len(districts))
	for _, d := range districts {
		allowed[d] = struct{}{}
	}
	return &service{
		repo:      repo,
		districts: allowed,
		logger:    logger.With("component", "farmer.service"),
	}
}

func (s *service) Upsert(ctx context.Context, userID int64, req UpsertRequest) (Profile, error) {
	district := strings.TrimSpace(req.District)
	if _, ok := s.districts[district]; !ok {
		return Profile{}, apperrors.Wrap("invalid_input", "district "+district+" is not supported", nil)
	}
	if req.ExperienceYears < 0 {
		return Profile{}, apperrors.Wrap("invalid_input", "experienceYears cannot be negative", nil)
	}
	if req.FarmSizeAcres < 0 {
		return Profile{}, apperrors.Wrap("invalid_input", "farmSizeAcres cannot be negative", nil)
	}

	now := dateutil.NowUTC()
	profile := Profile{
		ID:              uuid.NewString(),
		UserID:          userID,
		District:        district,
		ExperienceYears: req.ExperienceYears,
		FarmSizeAcres:   req.FarmSizeAcres,
		PhoneNumber:     strings.TrimSpace(req.PhoneNumber),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	stored, err := s.repo.Upsert(ctx, profile)
	if err != nil {
		return Profile{}, apperrors.Wrap("persistence_error", "failed to store profile", err)
	}
	return stored, nil
}

func (s *service) Get(ctx context.Context, userID int64) (Profile, error) {
	profile, found, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return Profile{}, apperrors.Wrap("persistence_error", "failed to load profile", err)
	}
	if !found {
		return Profile{}, apperrors.Wrap("not_found", "farmer profile not found", nil)
	}
	return profile, nil
}
