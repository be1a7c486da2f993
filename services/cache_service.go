package services

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Arihaan/ZKShop/structs"
	"github.com/MonkyMars/gecho"
	"github.com/redis/go-redis/v9"
)

// CacheService stores carts and rate-limit counters. It talks to Redis when
// the cache is enabled and keeps everything in process memory otherwise.
type CacheService struct {
	logger *gecho.Logger
	config *structs.CacheConfig
	client *redis.Client
	memory *memoryStore
}

func NewCacheService(logger *gecho.Logger, cfg *structs.CacheConfig) *CacheService {
	cs := &CacheService{
		logger: logger,
		config: cfg,
	}

	if cfg == nil || !cfg.Enabled {
		logger.Info("Cache disabled, using in-memory store")
		cs.memory = newMemoryStore()
		return cs
	}

	cs.client = redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,

		PoolSize: cfg.PoolSize,

		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})
	return cs
}

// Enabled reports whether a Redis server backs the cache.
func (cs *CacheService) Enabled() bool {
	return cs.client != nil
}

func (cs *CacheService) Close() error {
	if cs.client != nil {
		return cs.client.Close()
	}
	return nil
}

// withRetry executes a Redis operation with exponential backoff and jitter
func (cs *CacheService) withRetry(ctx context.Context, operation func() error, maxRetries int) error {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}
		lastErr = err

		if attempt == maxRetries || !isRetryableCacheError(err) {
			break
		}

		backoff := min(100*(1<<attempt), 2000) // ms
		wait := time.Duration(backoff/2+jitter(backoff/2+1)) * time.Millisecond

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}

	return lastErr
}

func jitter(n int) int {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0
	}
	return int(binary.BigEndian.Uint32(b[:]) % uint32(n))
}

// isRetryableCacheError reports network failures worth another attempt
func isRetryableCacheError(err error) bool {
	if err == nil || errors.Is(err, redis.Nil) {
		return false
	}

	errStr := err.Error()
	for _, retryable := range []string{
		"connection refused",
		"connection reset",
		"timeout",
		"broken pipe",
		"no such host",
		"network is unreachable",
	} {
		if strings.Contains(errStr, retryable) {
			return true
		}
	}
	return false
}

// Set stores value under key with ttl; a zero ttl never expires.
func (cs *CacheService) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	if cs.client == nil {
		cs.memory.set(key, value, ttl)
		return nil
	}
	return cs.withRetry(ctx, func() error {
		return cs.client.Set(ctx, key, value, ttl).Err()
	}, 3)
}

// Get returns the stored value, or "" when key is absent.
func (cs *CacheService) Get(ctx context.Context, key string) (string, error) {
	if cs.client == nil {
		val, _ := cs.memory.get(key)
		return val, nil
	}

	var result string
	err := cs.withRetry(ctx, func() error {
		val, err := cs.client.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			result = ""
			return nil
		}
		if err != nil {
			return err
		}
		result = val
		return nil
	}, 3)
	return result, err
}

func (cs *CacheService) Delete(ctx context.Context, key string) error {
	if cs.client == nil {
		cs.memory.delete(key)
		return nil
	}
	return cs.withRetry(ctx, func() error {
		return cs.client.Del(ctx, key).Err()
	}, 3)
}

func (cs *CacheService) Exists(ctx context.Context, key string) (bool, error) {
	if cs.client == nil {
		_, ok := cs.memory.get(key)
		return ok, nil
	}

	var result bool
	err := cs.withRetry(ctx, func() error {
		count, err := cs.client.Exists(ctx, key).Result()
		if err != nil {
			return err
		}
		result = count > 0
		return nil
	}, 3)
	return result, err
}

// setJSON marshals value and stores it under key
func setJSON[T any](ctx context.Context, cs *CacheService, key string, value *T, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return cs.Set(ctx, key, string(data), ttl)
}

// getJSON loads key into a T, returning nil when the key is absent
func getJSON[T any](ctx context.Context, cs *CacheService, key string) (*T, error) {
	val, err := cs.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if val == "" {
		return nil, nil
	}

	var out T
	if err := json.Unmarshal([]byte(val), &out); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", key, err)
	}
	return &out, nil
}

// IncrementRateLimit atomically increments the counter of ip on endpoint and
// returns the new count. The window starts with the first hit.
func (cs *CacheService) IncrementRateLimit(ctx context.Context, ip, endpoint string, window time.Duration) (int, error) {
	key := fmt.Sprintf("ratelimit:%s:%s", ip, endpoint)

	if cs.client == nil {
		return cs.memory.incr(key, window), nil
	}

	var result int64
	err := cs.withRetry(ctx, func() error {
		val, err := cs.client.Incr(ctx, key).Result()
		if err != nil {
			return err
		}
		result = val

		// Set expiration only on first increment
		if val == 1 {
			return cs.client.Expire(ctx, key, window).Err()
		}
		return nil
	}, 3)

	return int(result), err
}

// Ping tests the Redis connection; the in-memory store is always reachable.
func (cs *CacheService) Ping(ctx context.Context) error {
	if cs.client == nil {
		return nil
	}
	return cs.withRetry(ctx, func() error {
		return cs.client.Ping(ctx).Err()
	}, 3)
}

// GetConnectionStats returns Redis connection pool statistics
func (cs *CacheService) GetConnectionStats() map[string]any {
	if cs.client == nil {
		return map[string]any{"backend": "memory", "keys": cs.memory.len()}
	}

	stats := cs.client.PoolStats()
	return map[string]any{
		"backend":     "redis",
		"hits":        stats.Hits,
		"misses":      stats.Misses,
		"timeouts":    stats.Timeouts,
		"total_conns": stats.TotalConns,
		"idle_conns":  stats.IdleConns,
		"stale_conns": stats.StaleConns,
	}
}

type memoryEntry struct {
	value   string
	counter int
	expires time.Time // zero means no expiry
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expires.IsZero() && now.After(e.expires)
}

type memoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func newMemoryStore() *memoryStore {
	return &memoryStore{entries: make(map[string]memoryEntry), now: time.Now}
}

func (m *memoryStore) expiry(ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return m.now().Add(ttl)
}

func (m *memoryStore) set(key, value string, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memoryEntry{value: value, expires: m.expiry(ttl)}
}

func (m *memoryStore) get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return "", false
	}
	if e.expired(m.now()) {
		delete(m.entries, key)
		return "", false
	}
	return e.value, true
}

func (m *memoryStore) delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
}

func (m *memoryStore) incr(key string, window time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok || e.expired(m.now()) {
		e = memoryEntry{expires: m.expiry(window)}
	}
	e.counter++
	m.entries[key] = e
	return e.counter
}

func (m *memoryStore) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
