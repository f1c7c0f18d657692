package market

import (
	"context"
	"time"
)

// Record is one observed market price together with that day's weather.
// These rows feed offline model retraining and are append-only.
type Record struct {
	ID          string    `json:"id"`
	City        string    `json:"city"`
	Date        time.Time `json:"date"`
	MarketPrice float64   `json:"marketPrice"`
	AvgTemp     float64   `json:"avgTemp"`
	MaxTemp     float64   `json:"maxTemp"`
	AvgHumidity float64   `json:"avgHumidity"`
	Rainfall    float64   `json:"rainfall"`
	UploadedBy  int64     `json:"uploadedBy"`
	CreatedAt   time.Time `json:"createdAt"`
}

// UploadRequest captures an admin upload.
type UploadRequest struct {
	City        string    `json:"city"`
	Date        time.Time `json:"date"`
	MarketPrice float64   `json:"marketPrice"`
	AvgTemp     float64   `json:"avgTemp"`
	MaxTemp     float64   `json:"maxTemp"`
	AvgHumidity float64   `json:"avgHumidity"`
	Rainfall    float64   `json:"rainfall"`
}

// Filter narrows a listing.
type Filter struct {
	City  string
	From  time.Time
	To    time.Time
	Limit int
}

// Repository abstracts record persistence.
type Repository interface {
	Insert(ctx context.Context, rec Record) error
	List(ctx context.Context, filter Filter) ([]Record, error)
}
