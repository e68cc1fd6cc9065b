package quota

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store persists the per-session count of successful generations. It exists
// as an explicit injectable dependency (rather than package state) so tests
// can construct isolated instances.
type Store interface {
	Get(ctx context.Context, sessionID string) (int, error)
	Increment(ctx context.Context, sessionID string) (int, error)
	Reset(ctx context.Context, sessionID string) error
}

// Gate wraps a Store with the generation limit.
type Gate struct {
	store Store
	limit int
}

func NewGate(store Store, limit int) *Gate {
	return &Gate{store: store, limit: limit}
}

// CanGenerate reports whether the session is still under its generation
// limit. Store errors fail open: a broken counter backend must not take the
// generator down.
func (g *Gate) CanGenerate(ctx context.Context, sessionID string) bool {
	count, err := g.store.Get(ctx, sessionID)
	if err != nil {
		return true
	}
	return count < g.limit
}

// Record counts one successful generation.
func (g *Gate) Record(ctx context.Context, sessionID string) error {
	_, err := g.store.Increment(ctx, sessionID)
	return err
}

// Count returns the current counter value.
func (g *Gate) Count(ctx context.Context, sessionID string) (int, error) {
	return g.store.Get(ctx, sessionID)
}

// Limit returns the configured generation limit.
func (g *Gate) Limit() int {
	return g.limit
}

// RedisStore keeps counters in Redis so they survive server restarts, the
// way the browser build persisted its counter in local storage.
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

func NewRedisStore(client *redis.Client, keyPrefix string, ttl time.Duration) *RedisStore {
	if keyPrefix == "" {
		keyPrefix = "design_counter"
	}
	return &RedisStore{client: client, keyPrefix: keyPrefix, ttl: ttl}
}

func (s *RedisStore) key(sessionID string) string {
	return fmt.Sprintf("%s:%s", s.keyPrefix, sessionID)
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (int, error) {
	count, err := s.client.Get(ctx, s.key(sessionID)).Int()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read counter: %w", err)
	}
	return count, nil
}

func (s *RedisStore) Increment(ctx context.Context, sessionID string) (int, error) {
	key := s.key(sessionID)
	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment counter: %w", err)
	}
	if count == 1 && s.ttl > 0 {
		s.client.Expire(ctx, key, s.ttl)
	}
	return int(count), nil
}

func (s *RedisStore) Reset(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to reset counter: %w", err)
	}
	return nil
}

// MemoryStore is the in-process fallback used when Redis is not configured,
// and in tests.
type MemoryStore struct {
	mu     sync.Mutex
	counts map[string]int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{counts: make(map[string]int)}
}

func (s *MemoryStore) Get(ctx context.Context, sessionID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[sessionID], nil
}

func (s *MemoryStore) Increment(ctx context.Context, sessionID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts[sessionID]++
	return s.counts[sessionID], nil
}

func (s *MemoryStore) Reset(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.counts, sessionID)
	return nil
}
