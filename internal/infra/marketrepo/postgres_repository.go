package marketrepo

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/seristack/cocoon-recommender/internal/domain/market"
)

// PostgresRepository persists market-weather observations in Postgres.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Insert stores one observation row.
func (r *PostgresRepository) Insert(ctx context.Context, rec market.Record) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO market_weather
			(id, city, date, market_price, avg_temp, max_temp, avg_humidity, rainfall, uploaded_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, rec.ID, rec.City, rec.Date, rec.MarketPrice, rec.AvgTemp, rec.MaxTemp,
		rec.AvgHumidity, rec.Rainfall, rec.UploadedBy, rec.CreatedAt)
	return err
}

// List returns observations matching the filter, newest date first.
func (r *PostgresRepository) List(ctx context.Context, filter market.Filter) ([]market.Record, error) {
	var (
		conditions []string
		args       []any
	)
	if filter.City != "" {
		args = append(args, filter.City)
		conditions = append(conditions, "city = $"+strconv.Itoa(len(args)))
	}
	if !filter.From.IsZero() {
		args = append(args, filter.From)
		conditions = append(conditions, "date >= $"+strconv.Itoa(len(args)))
	}
	if !filter.To.IsZero() {
		args = append(args, filter.To)
		conditions = append(conditions, "date <= $"+strconv.Itoa(len(args)))
	}

	query := `
		SELECT id, city, date, market_price, avg_temp, max_temp, avg_humidity, rainfall, uploaded_by, created_at
		FROM market_weather`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	args = append(args, filter.Limit)
	query += " ORDER BY date DESC LIMIT $" + strconv.Itoa(len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []market.Record
	for rows.Next() {
		var (
			rec           market.Record
			date, created time.Time
		)
		if err := rows.Scan(&rec.ID, &rec.City, &date, &rec.MarketPrice, &rec.AvgTemp,
			&rec.MaxTemp, &rec.AvgHumidity, &rec.Rainfall, &rec.UploadedBy, &created); err != nil {
			return nil, err
		}
		rec.Date = date.UTC()
		rec.CreatedAt = created.UTC()
		records = append(records, rec)
	}
	return records, rows.Err()
}

var _ market.Repository = (*PostgresRepository)(nil)
