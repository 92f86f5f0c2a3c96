// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

package cache

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	json "github.com/goccy/go-json"

	"github.com/gameedge/intelligence/internal/metrics"
)

// janitorInterval is how often the background sweep removes expired entries.
// Expired entries are also removed lazily on Get, so the sweep only bounds
// how long dead data can linger for keys nobody asks for again.
const janitorInterval = time.Minute

// Entry is a cached value together with its expiry instant.
type Entry struct {
	Data      interface{}
	ExpiresAt time.Time
}

// Stats is a point-in-time snapshot of cache activity. It carries no locks
// and is safe to retain after the cache has moved on.
type Stats struct {
	Hits        int64
	Misses      int64
	Evictions   int64
	TotalKeys   int64
	LastCleanup time.Time
}

// Cache is a bounded, thread-safe in-memory TTL cache. API read handlers
// store rendered responses here keyed by GenerateKey; writes that change the
// underlying data call Clear to invalidate everything at once.
//
// Capacity is enforced on insert: when the cache is full and a new key
// arrives, expired entries are swept first, then the entry closest to expiry
// is evicted. A maxEntries of zero or less means unbounded.
//
// Hit, miss, and eviction counts are mirrored to Prometheus under the cache's
// name label.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]Entry

	name       string
	ttl        time.Duration
	maxEntries int

	statsMu     sync.Mutex
	hits        int64
	misses      int64
	evictions   int64
	lastCleanup time.Time
}

// New creates a cache with the given default TTL and capacity and starts the
// background janitor. The name labels this cache's Prometheus series.
//
//	c := cache.New("api", cfg.Cache.TTL, cfg.Cache.MaxEntries)
//	c.Set(cache.GenerateKey("GetSegments", params), payload)
func New(name string, ttl time.Duration, maxEntries int) *Cache {
	c := &Cache{
		entries:     make(map[string]Entry),
		name:        name,
		ttl:         ttl,
		maxEntries:  maxEntries,
		lastCleanup: time.Now(),
	}

	go c.janitor()

	return c
}

// Get retrieves a value by key. Expired entries are deleted on access and
// reported as misses.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists {
		c.recordMiss()
		return nil, false
	}

	if time.Now().After(entry.ExpiresAt) {
		c.mu.Lock()
		// Re-check under the write lock; another goroutine may have
		// replaced the entry with a fresh one in the meantime.
		if cur, ok := c.entries[key]; ok && time.Now().After(cur.ExpiresAt) {
			delete(c.entries, key)
			c.recordEvictions(1)
		}
		size := len(c.entries)
		c.mu.Unlock()

		metrics.SetCacheSize(c.name, size)
		c.recordMiss()
		return nil, false
	}

	c.recordHit()
	return entry.Data, true
}

// Set stores a value with the default TTL, overwriting any existing entry.
func (c *Cache) Set(key string, value interface{}) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores a value with a custom TTL. Inserting a new key into a
// full cache evicts expired entries first, then the entry closest to expiry.
func (c *Cache) SetWithTTL(key string, value interface{}, ttl time.Duration) {
	now := time.Now()

	c.mu.Lock()
	if _, exists := c.entries[key]; !exists && c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		evicted := c.evictExpiredLocked(now)
		if len(c.entries) >= c.maxEntries {
			evicted += c.evictNearestExpiryLocked()
		}
		c.recordEvictions(evicted)
	}
	c.entries[key] = Entry{
		Data:      value,
		ExpiresAt: now.Add(ttl),
	}
	size := len(c.entries)
	c.mu.Unlock()

	metrics.SetCacheSize(c.name, size)
}

// Delete removes one entry. Removing a missing key is a no-op.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	_, existed := c.entries[key]
	delete(c.entries, key)
	size := len(c.entries)
	c.mu.Unlock()

	if existed {
		c.recordEvictions(1)
	}
	metrics.SetCacheSize(c.name, size)
}

// Clear drops every entry in one operation. Write handlers call this after
// mutating customers, bets, feedback, or segments so the next read of any
// endpoint sees fresh data.
func (c *Cache) Clear() {
	c.mu.Lock()
	evicted := len(c.entries)
	c.entries = make(map[string]Entry)
	c.mu.Unlock()

	c.recordEvictions(evicted)
	metrics.SetCacheSize(c.name, 0)
}

// Len reports the current number of entries, expired or not.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// GetStats returns a snapshot of cache counters.
func (c *Cache) GetStats() Stats {
	c.mu.RLock()
	total := int64(len(c.entries))
	c.mu.RUnlock()

	c.statsMu.Lock()
	defer c.statsMu.Unlock()

	return Stats{
		Hits:        c.hits,
		Misses:      c.misses,
		Evictions:   c.evictions,
		TotalKeys:   total,
		LastCleanup: c.lastCleanup,
	}
}

// HitRate returns the hit percentage across the cache's lifetime, or zero
// when nothing has been looked up yet.
func (c *Cache) HitRate() float64 {
	c.statsMu.Lock()
	hits, misses := c.hits, c.misses
	c.statsMu.Unlock()

	total := hits + misses
	if total == 0 {
		return 0.0
	}
	return float64(hits) / float64(total) * 100.0
}

// janitor sweeps expired entries for the lifetime of the cache.
func (c *Cache) janitor() {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()

	for range ticker.C {
		c.cleanup()
	}
}

// cleanup removes all expired entries and stamps LastCleanup.
func (c *Cache) cleanup() {
	now := time.Now()

	c.mu.Lock()
	evicted := c.evictExpiredLocked(now)
	size := len(c.entries)
	c.mu.Unlock()

	c.recordEvictions(evicted)
	metrics.SetCacheSize(c.name, size)

	c.statsMu.Lock()
	c.lastCleanup = now
	c.statsMu.Unlock()
}

// evictExpiredLocked deletes entries past their expiry. Caller holds mu.
func (c *Cache) evictExpiredLocked(now time.Time) int {
	evicted := 0
	for key, entry := range c.entries {
		if now.After(entry.ExpiresAt) {
			delete(c.entries, key)
			evicted++
		}
	}
	return evicted
}

// evictNearestExpiryLocked deletes the entry closest to expiry. With TTL
// inserts this approximates oldest-first. Caller holds mu.
func (c *Cache) evictNearestExpiryLocked() int {
	var victim string
	var earliest time.Time
	found := false
	for key, entry := range c.entries {
		if !found || entry.ExpiresAt.Before(earliest) {
			victim = key
			earliest = entry.ExpiresAt
			found = true
		}
	}
	if !found {
		return 0
	}
	delete(c.entries, victim)
	return 1
}

func (c *Cache) recordHit() {
	c.statsMu.Lock()
	c.hits++
	c.statsMu.Unlock()
	metrics.RecordCacheHit(c.name)
}

func (c *Cache) recordMiss() {
	c.statsMu.Lock()
	c.misses++
	c.statsMu.Unlock()
	metrics.RecordCacheMiss(c.name)
}

func (c *Cache) recordEvictions(n int) {
	if n <= 0 {
		return
	}
	c.statsMu.Lock()
	c.evictions += int64(n)
	c.statsMu.Unlock()
	for i := 0; i < n; i++ {
		metrics.RecordCacheEviction(c.name)
	}
}

// GenerateKey builds a cache key from a method name and its parameters. The
// parameters are serialized to JSON and hashed so structurally equal inputs
// map to the same key regardless of size. Unserializable parameters fall
// back to their fmt representation rather than failing the lookup.
func GenerateKey(method string, params interface{}) string {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprintf("%s:%v", method, params)
	}

	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%x", method, hash[:16])
}
