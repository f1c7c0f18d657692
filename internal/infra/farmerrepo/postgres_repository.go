package farmerrepo

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/seristack/cocoon-recommender/internal/domain/farmer"
)

// PostgresRepository persists farmer profiles in Postgres.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Upsert inserts or updates the single profile row for a user.
func (r *PostgresRepository) Upsert(ctx context.Context, profile farmer.Profile) (farmer.Profile, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO farmer_profiles
			(id, user_id, district, experience_years, farm_size_acres, phone_number, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		ON CONFLICT (user_id) DO UPDATE SET
			district = EXCLUDED.district,
			experience_years = EXCLUDED.experience_years,
			farm_size_acres = EXCLUDED.farm_size_acres,
			phone_number = EXCLUDED.phone_number,
			updated_at = EXCLUDED.updated_at
		RETURNING id, user_id, district, experience_years, farm_size_acres, phone_number, created_at, updated_at
	`, profile.ID, profile.UserID, profile.District, profile.ExperienceYears,
		profile.FarmSizeAcres, profile.PhoneNumber, profile.UpdatedAt)
	return scanProfile(row)
}

// GetByUser fetches the profile for a user.
func (r *PostgresRepository) GetByUser(ctx context.Context, userID int64) (farmer.Profile, bool, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, district, experience_years, farm_size_acres, phone_number, created_at, updated_at
		FROM farmer_profiles
		WHERE user_id = $1
		LIMIT 1
	`, userID)
	if err != nil {
		return farmer.Profile{}, false, err
	}
	defer rows.Close()
	if !rows.Next() {
		return farmer.Profile{}, false, rows.Err()
	}
	profile, err := scanProfile(rows)
	if err != nil {
		return farmer.Profile{}, false, err
	}
	return profile, true, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (farmer.Profile, error) {
	var (
		profile          farmer.Profile
		created, updated time.Time
	)
	if err := row.Scan(&profile.ID, &profile.UserID, &profile.District, &profile.ExperienceYears,
		&profile.FarmSizeAcres, &profile.PhoneNumber, &created, &updated); err != nil {
		return farmer.Profile{}, err
	}
	profile.CreatedAt = created.UTC()
	profile.UpdatedAt = updated.UTC()
	return profile, nil
}

var _ farmer.Repository = (*PostgresRepository)(nil)
