package marketrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/seristack/cocoon-recommender/internal/domain/market"
)

// MemoryRepository keeps observations in process memory for tests/dev.
type MemoryRepository struct {
	mu      sync.RWMutex
	records []market.Record
}

// NewMemoryRepository constructs a new in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// Insert appends one observation.
func (r *MemoryRepository) Insert(_ context.Context, rec market.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
	return nil
}

// List returns observations matching the filter, newest date first.
func (r *MemoryRepository) List(_ context.Context, filter market.Filter) ([]market.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matched := make([]market.Record, 0, len(r.records))
	for _, rec := range r.records {
		if filter.City != "" && rec.City != filter.City {
			continue
		}
		if !filter.From.IsZero() && rec.Date.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && rec.Date.After(filter.To) {
			continue
		}
		matched = append(matched, rec)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Date.After(matched[j].Date)
	})
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

var _ market.Repository = (*MemoryRepository)(nil)
