package recrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/seristack/cocoon-recommender/internal/domain/recommend"
)

// MemoryRepository keeps recommendations in process memory for tests/dev.
type MemoryRepository struct {
	mu   sync.RWMutex
	recs []recommend.Recommendation
}

// NewMemoryRepository constructs a new in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// Insert appends one recommendation.
func (r *MemoryRepository) Insert(_ context.Context, rec recommend.Recommendation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recs = append(r.recs, rec)
	return nil
}

// ListByUser returns a user's recommendations, newest first.
func (r *MemoryRepository) ListByUser(_ context.Context, userID int64, limit int) ([]recommend.Recommendation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matched := make([]recommend.Recommendation, 0, limit)
	for _, rec := range r.recs {
		if rec.UserID == userID {
			matched = append(matched, rec)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

var _ recommend.Repository = (*MemoryRepository)(nil)
