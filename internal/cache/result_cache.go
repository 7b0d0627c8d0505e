// Package cache memoizes analysis results by file content, so files that
// are saved without changes are not parsed again.
package cache

import (
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
)

// DefaultMaxEntries bounds a cache built with DefaultConfig.
const DefaultMaxEntries = 1000

// Config defines configuration options
type Config struct {
	MaxEntries int
	// TTL expires entries lazily on lookup. Zero keeps entries until they
	// are evicted.
	TTL time.Duration
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{MaxEntries: DefaultMaxEntries}
}

type entry[V any] struct {
	value       V
	cachedAt    int64 // Unix nano for atomic compare
	accessCount int64
}

// ResultCache is a bounded, concurrency-safe map from content keys to
// results. When full, the oldest entry is evicted.
type ResultCache[V any] struct {
	entries sync.Map // map[string]*entry[V]

	maxEntries int
	ttlNanos   int64

	count     int64
	hits      int64
	misses    int64
	evictions int64
}

// Stats is a snapshot of cache counters
type Stats struct {
	Entries   int64   `json:"entries"`
	Hits      int64   `json:"hits"`
	Misses    int64   `json:"misses"`
	Evictions int64   `json:"evictions"`
	HitRate   float64 `json:"hit_rate"`
}

// New creates a cache. A non-positive MaxEntries uses DefaultMaxEntries.
func New[V any](config Config) *ResultCache[V] {
	if config.MaxEntries <= 0 {
		config.MaxEntries = DefaultMaxEntries
	}
	return &ResultCache[V]{
		maxEntries: config.MaxEntries,
		ttlNanos:   config.TTL.Nanoseconds(),
	}
}

// Key derives the cache key for content parsed as language. The length is
// part of the key alongside the 64-bit hash.
func Key(language string, content []byte) string {
	var b strings.Builder
	b.Grow(len(language) + 1 + 16 + 1 + 10)
	b.WriteString(language)
	b.WriteByte(':')
	b.WriteString(strconv.FormatUint(xxhash.Sum64(content), 16))
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(len(content)))
	return b.String()
}

// Get returns the value stored under key.
func (c *ResultCache[V]) Get(key string) (V, bool) {
	if val, ok := c.entries.Load(key); ok {
		e := val.(*entry[V])
		if c.ttlNanos <= 0 || time.Now().UnixNano()-atomic.LoadInt64(&e.cachedAt) <= c.ttlNanos {
			atomic.AddInt64(&e.accessCount, 1)
			atomic.AddInt64(&c.hits, 1)
			return e.value, true
		}
		// Expired - delete lazily
		if c.entries.CompareAndDelete(key, val) {
			atomic.AddInt64(&c.count, -1)
		}
	}
	atomic.AddInt64(&c.misses, 1)
	var zero V
	return zero, false
}

// Put stores value under key, evicting the oldest entry when the cache is
// over its limit.
func (c *ResultCache[V]) Put(key string, value V) {
	e := &entry[V]{value: value, cachedAt: time.Now().UnixNano(), accessCount: 1}
	if _, loaded := c.entries.Swap(key, e); loaded {
		return
	}
	atomic.AddInt64(&c.count, 1)
	for atomic.LoadInt64(&c.count) > int64(c.maxEntries) {
		if !c.evictOldest() {
			break
		}
	}
}

// evictOldest reports false when the cache had nothing to evict.
func (c *ResultCache[V]) evictOldest() bool {
	var oldestKey any
	var oldest *entry[V]
	oldestTime := time.Now().UnixNano() + 1

	c.entries.Range(func(key, value any) bool {
		e := value.(*entry[V])
		if at := atomic.LoadInt64(&e.cachedAt); at < oldestTime {
			oldestTime = at
			oldestKey = key
			oldest = e
		}
		return true
	})

	if oldestKey == nil {
		return false
	}
	if c.entries.CompareAndDelete(oldestKey, oldest) {
		atomic.AddInt64(&c.count, -1)
		atomic.AddInt64(&c.evictions, 1)
	}
	return true
}

// Len returns the approximate number of entries.
func (c *ResultCache[V]) Len() int {
	return int(atomic.LoadInt64(&c.count))
}

// Clear drops every entry. Counters are kept.
func (c *ResultCache[V]) Clear() {
	c.entries.Range(func(key, value any) bool {
		if c.entries.CompareAndDelete(key, value) {
			atomic.AddInt64(&c.count, -1)
		}
		return true
	})
}

// Stats returns a snapshot of the counters.
func (c *ResultCache[V]) Stats() Stats {
	s := Stats{
		Entries:   atomic.LoadInt64(&c.count),
		Hits:      atomic.LoadInt64(&c.hits),
		Misses:    atomic.LoadInt64(&c.misses),
		Evictions: atomic.LoadInt64(&c.evictions),
	}
	if total := s.Hits + s.Misses; total > 0 {
		s.HitRate = float64(s.Hits) / float64(total)
	}
	return s
}
