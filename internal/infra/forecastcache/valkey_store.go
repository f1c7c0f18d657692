package forecastcache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/seristack/cocoon-recommender/internal/domain/forecast"
)

// ValkeyStore caches aggregated daily summaries in a Valkey-compatible
// database so consecutive requests for the same city and horizon skip the
// upstream fetch.
type ValkeyStore struct {
	client valkey.Client
	prefix string
	ttl    time.Duration
}

// NewValkeyStore constructs a cache backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string, ttl time.Duration) *ValkeyStore {
	if prefix == "" {
		prefix = "wx"
	}
	if ttl <= time.Second {
		ttl = time.Hour
	}
	return &ValkeyStore{client: client, prefix: prefix, ttl: ttl}
}

// Get implements forecast.Store.
func (s *ValkeyStore) Get(ctx context.Context, key string) ([]forecast.DailySummary, bool, error) {
	cmd := s.client.B().Get().Key(s.prefix + ":" + key).Build()
	payload, err := s.client.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var summaries []forecast.DailySummary
	if err := json.Unmarshal([]byte(payload), &summaries); err != nil {
		return nil, false, err
	}
	return summaries, true, nil
}

// Set implements forecast.Store.
func (s *ValkeyStore) Set(ctx context.Context, key string, summaries []forecast.DailySummary) error {
	payload, err := json.Marshal(summaries)
	if err != nil {
		return err
	}
	cmd := s.client.B().Set().Key(s.prefix + ":" + key).Value(string(payload)).Ex(s.ttl).Build()
	return s.client.Do(ctx, cmd).Error()
}

var _ forecast.Store = (*ValkeyStore)(nil)
