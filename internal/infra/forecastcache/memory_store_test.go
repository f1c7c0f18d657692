package forecastcache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/seristack/cocoon-recommender/internal/domain/forecast"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	summaries := []forecast.DailySummary{
		{Date: time.Date(2025, time.April, 10, 0, 0, 0, 0, time.UTC), AvgTemp: 24},
	}
	require.NoError(t, store.Set(ctx, "forecast:bengaluru:2025-04-10:1", summaries))

	got, ok, err := store.Get(ctx, "forecast:bengaluru:2025-04-10:1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, summaries, got)
}

func TestMemoryStore_MissingKey(t *testing.T) {
	store := NewMemoryStore(time.Minute)

	_, ok, err := store.Get(context.Background(), "nope")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore(10 * time.Millisecond)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []forecast.DailySummary{{AvgTemp: 24}}))
	time.Sleep(20 * time.Millisecond)

	_, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok)
}
