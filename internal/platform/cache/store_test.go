package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_GetOrLoadCachesSuccess(t *testing.T) {
	ctx := context.Background()
	store := NewStore(time.Minute)
	var loads int32

	loader := func(context.Context) (any, error) {
		atomic.AddInt32(&loads, 1)
		return []int64{1, 2}, nil
	}

	for i := 0; i < 3; i++ {
		v, err := store.GetOrLoad(ctx, "player:list", loader)
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 2}, v)
	}

	assert.EqualValues(t, 1, atomic.LoadInt32(&loads))
	stats := store.Stats()
	assert.Equal(t, 1, stats.Entries)
	assert.EqualValues(t, 2, stats.Hits)
	assert.EqualValues(t, 1, stats.Misses)
}

func TestStore_FailedLoadsAreNotCached(t *testing.T) {
	ctx := context.Background()
	store := NewStore(time.Minute)
	boom := errors.New("database unavailable")

	_, err := store.GetOrLoad(ctx, "player:id:1", func(context.Context) (any, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)

	v, err := store.GetOrLoad(ctx, "player:id:1", func(context.Context) (any, error) { return "ok", nil })
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
}

func TestStore_EntriesExpire(t *testing.T) {
	ctx := context.Background()
	store := NewStore(time.Second)
	now := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	store.Set(ctx, "k", 1)
	_, ok := store.Get(ctx, "k")
	assert.True(t, ok)

	now = now.Add(2 * time.Second)
	_, ok = store.Get(ctx, "k")
	assert.False(t, ok)
	assert.Zero(t, store.Stats().Entries)
}

func TestStore_ConcurrentMissesShareOneLoad(t *testing.T) {
	store := NewStore(time.Minute)
	var loads int32

	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, _ = store.GetOrLoad(context.Background(), "stats:wide:8", func(context.Context) (any, error) {
				atomic.AddInt32(&loads, 1)
				time.Sleep(20 * time.Millisecond)
				return "row", nil
			})
		}()
	}
	close(start)
	wg.Wait()

	assert.EqualValues(t, 1, atomic.LoadInt32(&loads))
}

type traceKey struct{}

func TestStore_CancelledCallerDoesNotFailSharedLoad(t *testing.T) {
	store := NewStore(time.Minute)
	entered := make(chan struct{})
	release := make(chan struct{})
	loader := func(ctx context.Context) (any, error) {
		close(entered)
		<-release
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return ctx.Value(traceKey{}), nil
	}

	firstCtx, cancel := context.WithCancel(context.WithValue(context.Background(), traceKey{}, "req-1"))
	first := make(chan error, 1)
	go func() {
		_, err := store.GetOrLoad(firstCtx, "player:list", loader)
		first <- err
	}()
	<-entered
	cancel()

	type result struct {
		value any
		err   error
	}
	waiter := make(chan result, 1)
	go func() {
		v, err := store.GetOrLoad(context.Background(), "player:list", func(context.Context) (any, error) {
			return nil, errors.New("waiter must not run its own load")
		})
		waiter <- result{value: v, err: err}
	}()
	time.Sleep(20 * time.Millisecond)
	close(release)

	require.NoError(t, <-first)
	got := <-waiter
	require.NoError(t, got.err)
	assert.Equal(t, "req-1", got.value, "loader keeps the first caller's context values")
	assert.Equal(t, 1, store.Stats().Entries)
}

func TestStore_RequiresLoader(t *testing.T) {
	_, err := NewStore(time.Minute).GetOrLoad(context.Background(), "k", nil)
	assert.Error(t, err)
}
