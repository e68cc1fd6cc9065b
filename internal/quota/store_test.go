package quota

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMiniredisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisStore(client, "design_counter", time.Hour), mr
}

func TestGate_BlocksAtLimit(t *testing.T) {
	ctx := context.Background()
	gate := NewGate(NewMemoryStore(), 3)

	for i := 0; i < 3; i++ {
		assert.True(t, gate.CanGenerate(ctx, "session-1"), "generation %d should be allowed", i+1)
		require.NoError(t, gate.Record(ctx, "session-1"))
	}

	assert.False(t, gate.CanGenerate(ctx, "session-1"))

	count, err := gate.Count(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestGate_SessionsAreIndependent(t *testing.T) {
	ctx := context.Background()
	gate := NewGate(NewMemoryStore(), 3)

	for i := 0; i < 3; i++ {
		require.NoError(t, gate.Record(ctx, "session-a"))
	}

	assert.False(t, gate.CanGenerate(ctx, "session-a"))
	assert.True(t, gate.CanGenerate(ctx, "session-b"))
}

// failingStore simulates a broken counter backend.
type failingStore struct{}

func (failingStore) Get(ctx context.Context, sessionID string) (int, error) {
	return 0, errors.New("backend down")
}

func (failingStore) Increment(ctx context.Context, sessionID string) (int, error) {
	return 0, errors.New("backend down")
}

func (failingStore) Reset(ctx context.Context, sessionID string) error {
	return errors.New("backend down")
}

func TestGate_FailsOpenOnStoreError(t *testing.T) {
	gate := NewGate(failingStore{}, 3)
	assert.True(t, gate.CanGenerate(context.Background(), "session-1"))
}

func TestMemoryStore_ConcurrentIncrements(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.Increment(ctx, "session-1")
		}()
	}
	wg.Wait()

	count, err := store.Get(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, 50, count)
}

func TestRedisStore_IncrementAndGet(t *testing.T) {
	ctx := context.Background()
	store, mr := newMiniredisStore(t)

	// Unset counter reads as zero
	count, err := store.Get(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	for want := 1; want <= 3; want++ {
		got, err := store.Increment(ctx, "session-1")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	count, err = store.Get(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	// TTL is set on first increment
	assert.Greater(t, mr.TTL("design_counter:session-1"), time.Duration(0))
}

func TestRedisStore_Reset(t *testing.T) {
	ctx := context.Background()
	store, _ := newMiniredisStore(t)

	_, err := store.Increment(ctx, "session-1")
	require.NoError(t, err)

	require.NoError(t, store.Reset(ctx, "session-1"))

	count, err := store.Get(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestProperty_CounterMatchesRecordedGenerations(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("after n records the count is n and the gate state follows the limit", prop.ForAll(
		func(n int, limit int) bool {
			ctx := context.Background()
			gate := NewGate(NewMemoryStore(), limit)

			for i := 0; i < n; i++ {
				if err := gate.Record(ctx, "s"); err != nil {
					return false
				}
			}

			count, err := gate.Count(ctx, "s")
			if err != nil || count != n {
				return false
			}
			return gate.CanGenerate(ctx, "s") == (n < limit)
		},
		gen.IntRange(0, 10),
		gen.IntRange(1, 5),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
