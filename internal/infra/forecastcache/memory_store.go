package forecastcache

import (
	"context"
	"sync"
	"time"

	"github.com/seristack/cocoon-recommender/internal/domain/forecast"
)

type entry struct {
	summaries []forecast.DailySummary
	expiresAt time.Time
}

// MemoryStore is an in-process forecast cache for tests/dev.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
}

// NewMemoryStore constructs a cache backed by process memory.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &MemoryStore{
		entries: make(map[string]entry),
		ttl:     ttl,
	}
}

// Get implements forecast.Store.
func (s *MemoryStore) Get(_ context.Context, key string) ([]forecast.DailySummary, bool, error) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if e.expiresAt.Before(time.Now()) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return nil, false, nil
	}
	return e.summaries, true, nil
}

// Set implements forecast.Store.
func (s *MemoryStore) Set(_ context.Context, key string, summaries []forecast.DailySummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry{
		summaries: summaries,
		expiresAt: time.Now().Add(s.ttl),
	}
	return nil
}

var _ forecast.Store = (*MemoryStore)(nil)
