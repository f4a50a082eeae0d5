package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySet_MarkIfNew(t *testing.T) {
	ctx := context.Background()
	s := NewMemorySet(10, 0)

	ok, err := s.MarkIfNew(ctx, "reminder:1:2025-01-15")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.MarkIfNew(ctx, "reminder:1:2025-01-15")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, _ = s.MarkIfNew(ctx, "reminder:1:2025-01-16")
	assert.True(t, ok)
	assert.Equal(t, 2, s.Len())
}

func TestMemorySet_EvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	s := NewMemorySet(2, 0)

	s.MarkIfNew(ctx, "a")
	s.MarkIfNew(ctx, "b")
	s.MarkIfNew(ctx, "a") // a снова свежий
	s.MarkIfNew(ctx, "c") // вытесняет b

	assert.Equal(t, 2, s.Len())
	ok, _ := s.MarkIfNew(ctx, "a")
	assert.False(t, ok, "a must survive")
	ok, _ = s.MarkIfNew(ctx, "b")
	assert.True(t, ok, "b must have been evicted")
}

func TestMemorySet_TTL(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	s := NewMemorySet(10, time.Hour)
	s.now = func() time.Time { return now }

	ok, _ := s.MarkIfNew(ctx, "k")
	assert.True(t, ok)

	now = now.Add(59 * time.Minute)
	ok, _ = s.MarkIfNew(ctx, "k")
	assert.False(t, ok)

	now = now.Add(2 * time.Minute)
	ok, _ = s.MarkIfNew(ctx, "k")
	assert.True(t, ok, "expired key counts as new")
}

func TestMemorySet_ConcurrentSingleWinner(t *testing.T) {
	ctx := context.Background()
	s := NewMemorySet(100, 0)

	var wins int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := s.MarkIfNew(ctx, "same"); ok {
				atomic.AddInt32(&wins, 1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), wins)
}
