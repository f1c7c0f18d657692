package farmerrepo

import (
	"context"
	"sync"

	"github.com/seristack/cocoon-recommender/internal/domain/farmer"
)

// MemoryRepository keeps profiles in process memory for tests/dev.
type MemoryRepository struct {
	mu       sync.RWMutex
	profiles map[int64]farmer.Profile
}

// NewMemoryRepository constructs a new in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{profiles: make(map[int64]farmer.Profile)}
}

// Upsert stores or replaces the profile for a user, preserving CreatedAt.
func (r *MemoryRepository) Upsert(_ context.Context, profile farmer.Profile) (farmer.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.profiles[profile.UserID]; ok {
		profile.ID = existing.ID
		profile.CreatedAt = existing.CreatedAt
	}
	r.profiles[profile.UserID] = profile
	return profile, nil
}

// GetByUser fetches the profile for a user.
func (r *MemoryRepository) GetByUser(_ context.Context, userID int64) (farmer.Profile, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	profile, ok := r.profiles[userID]
	return profile, ok, nil
}

var _ farmer.Repository = (*MemoryRepository)(nil)
