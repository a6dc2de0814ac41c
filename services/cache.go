package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/EGarpxMaster/analisis-aforo-vehicular/config"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ErrCacheMiss is returned by Get when the key holds no live value.
var ErrCacheMiss = errors.New("cache miss")

// Cache memoizes parsed files. Values round-trip through JSON so every
// backend returns the same shapes.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// CacheKey identifies a parsed file by kind, resolved path and mtime, so an
// edited file is never served from a stale entry.
func CacheKey(kind, path string, modTime time.Time) string {
	return fmt.Sprintf("aforo:%s:%s:%d", kind, path, modTime.UnixNano())
}

// CacheService is the Redis backend. A service without a client misses on
// every Get and drops every Set.
type CacheService struct {
	client *redis.Client
}

func NewCacheService(ctx context.Context, cfg config.RedisConfig, logger *zerolog.Logger) (*CacheService, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	var lastErr error
	for i := 0; i < 3; i++ {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		lastErr = client.Ping(pingCtx).Err()
		cancel()
		if lastErr == nil {
			return &CacheService{client: client}, nil
		}
		logger.Warn().Err(lastErr).Int("attempt", i+1).Msg("redis ping failed")
		time.Sleep(time.Second)
	}

	_ = client.Close()
	return &CacheService{client: nil}, fmt.Errorf("redis ping failed after 3 attempts: %w", lastErr)
}

// NoCache returns a cache that never hits.
func NoCache() *CacheService {
	return &CacheService{}
}

func (s *CacheService) Available() bool {
	return s.client != nil
}

func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) error {
	if s.client == nil {
		return ErrCacheMiss
	}
	val, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return ErrCacheMiss
	}
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(val), dest)
}

func (s *CacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if s.client == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *CacheService) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

type memoryEntry struct {
	data    []byte
	expires time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expires.IsZero() && !now.Before(e.expires)
}

// keyFamily is a CacheKey without its mtime suffix.
func keyFamily(key string) string {
	i := strings.LastIndex(key, ":")
	if i < 0 {
		return ""
	}
	return key[:i]
}

// MemoryCache is the in-process backend used when Redis is not configured.
// Set evicts expired entries and entries for older versions of the same file.
type MemoryCache struct {
	mu    sync.Mutex
	store map[string]memoryEntry
	now   func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		store: make(map[string]memoryEntry),
		now:   time.Now,
	}
}

func (m *MemoryCache) Get(_ context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	entry, ok := m.store[key]
	if ok && entry.expired(m.now()) {
		delete(m.store, key)
		ok = false
	}
	m.mu.Unlock()

	if !ok {
		return ErrCacheMiss
	}
	return json.Unmarshal(entry.data, dest)
}

func (m *MemoryCache) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	now := m.now()
	entry := memoryEntry{data: data}
	if ttl > 0 {
		entry.expires = now.Add(ttl)
	}
	family := keyFamily(key)

	m.mu.Lock()
	for k, e := range m.store {
		if e.expired(now) || (family != "" && k != key && keyFamily(k) == family) {
			delete(m.store, k)
		}
	}
	m.store[key] = entry
	m.mu.Unlock()
	return nil
}

// Len reports the number of stored entries, expired ones not yet swept included.
func (m *MemoryCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.store)
}
