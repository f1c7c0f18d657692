package recrepo

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/seristack/cocoon-recommender/internal/domain/pricing"
	"github.com/seristack/cocoon-recommender/internal/domain/recommend"
)

// PostgresRepository persists recommendations in Postgres. Records are
// append-only; no update or delete statements exist here.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Insert stores one recommendation row.
func (r *PostgresRepository) Insert(ctx context.Context, rec recommend.Recommendation) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO recommendations
			(id, user_id, city, start_date, end_date, predicted_price,
			 confidence_score, status, risky, weather_degraded,
			 weather_temp, weather_humidity, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, rec.ID, rec.UserID, rec.City, rec.StartDate, rec.EndDate, rec.PredictedPrice,
		rec.ConfidenceScore, string(rec.Status), rec.Risky, rec.WeatherDegraded,
		rec.Weather.Temperature, rec.Weather.Humidity, rec.CreatedAt)
	return err
}

// ListByUser returns a user's recommendations, newest first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]recommend.Recommendation, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, city, start_date, end_date, predicted_price,
		       confidence_score, status, risky, weather_degraded,
		       weather_temp, weather_humidity, created_at
		FROM recommendations
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []recommend.Recommendation
	for rows.Next() {
		var (
			rec                 recommend.Recommendation
			status              string
			start, end, created time.Time
		)
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.City, &start, &end, &rec.PredictedPrice,
			&rec.ConfidenceScore, &status, &rec.Risky, &rec.WeatherDegraded,
			&rec.Weather.Temperature, &rec.Weather.Humidity, &created); err != nil {
			return nil, err
		}
		rec.StartDate = start.UTC()
		rec.EndDate = end.UTC()
		rec.CreatedAt = created.UTC()
		rec.Status = pricing.Status(status)
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

var _ recommend.Repository = (*PostgresRepository)(nil)
