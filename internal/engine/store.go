package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Key addresses one cached result: the collection version it was computed from and a
// hash of the operation and its filters.
type Key struct {
	Version uint64
	Op      uint64
}

func (k Key) String() string {
	return fmt.Sprintf("footstats:%016x:%016x", k.Version, k.Op)
}

// Store holds JSON-encoded results. Get returns nil, nil on a miss.
type Store interface {
	Get(ctx context.Context, k Key) ([]byte, error)
	Set(ctx context.Context, k Key, data []byte) error
}

// MemoryStore keeps results of the most recent collection version only; writing an
// entry for a new version drops everything cached for older ones.
type MemoryStore struct {
	mu      sync.RWMutex
	version uint64
	entries map[uint64][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[uint64][]byte)}
}

func (s *MemoryStore) Get(_ context.Context, k Key) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if k.Version != s.version {
		return nil, nil
	}
	return s.entries[k.Op], nil
}

func (s *MemoryStore) Set(_ context.Context, k Key, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if k.Version != s.version {
		s.version = k.Version
		s.entries = make(map[uint64][]byte)
	}
	s.entries[k.Op] = data
	return nil
}

// Len reports the number of cached entries.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore caches results in Redis. Stale versions are left to expire with ttl.
func NewRedisStore(client *redis.Client, ttl time.Duration) Store {
	return &redisStore{client: client, ttl: ttl}
}

func (s *redisStore) Get(ctx context.Context, k Key) ([]byte, error) {
	data, err := s.client.Get(ctx, k.String()).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *redisStore) Set(ctx context.Context, k Key, data []byte) error {
	return s.client.Set(ctx, k.String(), data, s.ttl).Err()
}
