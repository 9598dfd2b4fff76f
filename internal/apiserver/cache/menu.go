// Package cache keeps rendered public menu documents so the read-heavy
// diner pages do not rebuild the document on every view.
package cache

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const redisKeyPrefix = "sofra:menu:"

// Config holds the cache settings. RedisClient is optional; when set it
// acts as a second layer shared across apiserver instances.
type Config struct {
	RedisClient redis.Cmdable
	TTL         time.Duration
	MaxEntries  int
}

type entry struct {
	doc       []byte
	expiresAt time.Time
}

// Stats reports cache effectiveness.
type Stats struct {
	Entries   int
	Hits      int64
	Misses    int64
	Evictions int64
}

// MenuCache is a two-layer cache for rendered menu documents, keyed by
// restaurant id. The memory layer answers most views; the Redis layer,
// when configured, survives restarts and keeps instances consistent.
// Every mutation of menu content invalidates the owning restaurant's
// entry. A nil *MenuCache is valid and caches nothing.
type MenuCache struct {
	logger *zap.Logger
	redis  redis.Cmdable
	ttl    time.Duration
	max    int

	mu      sync.Mutex
	entries map[uint]*entry
	order   []uint // least recently used first
	stats   Stats
}

// New creates a menu cache. TTL defaults to five minutes, MaxEntries to
// 1024; a menu document is a few kilobytes, so the memory layer stays
// small even at the cap.
func New(cfg Config, logger *zap.Logger) *MenuCache {
	if cfg.TTL <= 0 {
		cfg.TTL = 5 * time.Minute
	}
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = 1024
	}
	return &MenuCache{
		logger:  logger.Named("apiserver.cache.menu"),
		redis:   cfg.RedisClient,
		ttl:     cfg.TTL,
		max:     cfg.MaxEntries,
		entries: make(map[uint]*entry),
	}
}

func redisKey(restaurantID uint) string {
	return redisKeyPrefix + strconv.FormatUint(uint64(restaurantID), 10)
}

// Get returns the cached document for the restaurant, checking memory
// first and Redis second. A Redis hit is promoted into memory.
func (m *MenuCache) Get(ctx context.Context, restaurantID uint) ([]byte, bool) {
	if m == nil {
		return nil, false
	}

	m.mu.Lock()
	if e, ok := m.entries[restaurantID]; ok {
		if e.expiresAt.After(time.Now()) {
			m.touch(restaurantID)
			m.stats.Hits++
			doc := e.doc
			m.mu.Unlock()
			return doc, true
		}
		m.remove(restaurantID)
	}
	m.stats.Misses++
	m.mu.Unlock()

	if m.redis == nil {
		return nil, false
	}
	doc, err := m.redis.Get(ctx, redisKey(restaurantID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			m.logger.Warn("menu cache read failed",
				zap.Uint("restaurant_id", restaurantID),
				zap.Error(err))
		}
		return nil, false
	}

	m.mu.Lock()
	m.store(restaurantID, doc)
	m.mu.Unlock()
	return doc, true
}

// Set stores the rendered document in both layers.
func (m *MenuCache) Set(ctx context.Context, restaurantID uint, doc []byte) {
	if m == nil {
		return
	}

	m.mu.Lock()
	m.store(restaurantID, doc)
	m.mu.Unlock()

	if m.redis != nil {
		if err := m.redis.Set(ctx, redisKey(restaurantID), doc, m.ttl).Err(); err != nil {
			m.logger.Warn("menu cache write failed",
				zap.Uint("restaurant_id", restaurantID),
				zap.Error(err))
		}
	}
}

// Invalidate drops the restaurant's entry from both layers. Called after
// every change to the restaurant or its menu content.
func (m *MenuCache) Invalidate(ctx context.Context, restaurantID uint) {
	if m == nil {
		return
	}

	m.mu.Lock()
	m.remove(restaurantID)
	m.mu.Unlock()

	if m.redis != nil {
		if err := m.redis.Del(ctx, redisKey(restaurantID)).Err(); err != nil {
			m.logger.Warn("menu cache invalidation failed",
				zap.Uint("restaurant_id", restaurantID),
				zap.Error(err))
		}
	}
}

// GetStats returns a snapshot of the counters.
func (m *MenuCache) GetStats() Stats {
	if m == nil {
		return Stats{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.stats
	s.Entries = len(m.entries)
	return s
}

// store inserts under the lock, evicting the least recently used entry
// when the cap is reached.
func (m *MenuCache) store(restaurantID uint, doc []byte) {
	if _, ok := m.entries[restaurantID]; !ok && len(m.entries) >= m.max {
		lru := m.order[0]
		m.remove(lru)
		m.stats.Evictions++
	}
	m.entries[restaurantID] = &entry{doc: doc, expiresAt: time.Now().Add(m.ttl)}
	m.touch(restaurantID)
}

// touch moves the id to the most recently used end, under the lock.
func (m *MenuCache) touch(restaurantID uint) {
	for i, id := range m.order {
		if id == restaurantID {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	m.order = append(m.order, restaurantID)
}

// remove drops the entry and its order slot, under the lock.
func (m *MenuCache) remove(restaurantID uint) {
	delete(m.entries, restaurantID)
	for i, id := range m.order {
		if id == restaurantID {
			m.order = append(m.order[:i], m.order[i+1:]...)
			return
		}
	}
}
