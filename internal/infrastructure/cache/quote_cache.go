// Package cache provides an optional in-memory cache for daily quotations.
// It is off by default: repeating the full backward search for every request
// is a documented property of the resolver, and the cache is an opt-in
// deployment choice, not core behavior.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/pometrix/ledger-export/internal/domain/entity"
	"github.com/pometrix/ledger-export/internal/domain/service"
)

type entry struct {
	rate     *entity.ExchangeRate
	storedAt time.Time
}

// QuoteCache is a thread-safe per-day cache of published quotations.
// Only positive answers are cached; "nothing published" is re-asked so a
// late-publishing day becomes visible.
type QuoteCache struct {
	mu         sync.RWMutex
	entries    map[string]entry
	expiration time.Duration
}

// NewQuoteCache creates a cache with the given entry lifetime. A zero or
// negative lifetime defaults to 24 hours.
func NewQuoteCache(expiration time.Duration) *QuoteCache {
	if expiration <= 0 {
		expiration = 24 * time.Hour
	}
	return &QuoteCache{
		entries:    make(map[string]entry),
		expiration: expiration,
	}
}

func cacheKey(date time.Time) string {
	return date.Format("2006-01-02")
}

// Get returns the cached quotation for the day, or nil when absent or
// expired.
func (c *QuoteCache) Get(date time.Time) *entity.ExchangeRate {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[cacheKey(date)]
	if !ok || time.Since(e.storedAt) > c.expiration {
		return nil
	}
	return e.rate
}

// Put stores a quotation under the day it was asked for.
func (c *QuoteCache) Put(forDate time.Time, rate *entity.ExchangeRate) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[cacheKey(forDate)] = entry{rate: rate, storedAt: time.Now()}
}

// Size returns the number of cached days.
func (c *QuoteCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// Clear drops every entry.
func (c *QuoteCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]entry)
}

// CachingQuoteSource decorates a QuoteSource with a QuoteCache.
type CachingQuoteSource struct {
	source service.QuoteSource
	cache  *QuoteCache
}

// NewCachingQuoteSource wraps source with the given cache.
func NewCachingQuoteSource(source service.QuoteSource, cache *QuoteCache) *CachingQuoteSource {
	return &CachingQuoteSource{source: source, cache: cache}
}

// Query serves from the cache when possible and delegates otherwise.
// Errors are never cached.
func (s *CachingQuoteSource) Query(ctx context.Context, date time.Time) (*entity.ExchangeRate, error) {
	if rate := s.cache.Get(date); rate != nil {
		return rate, nil
	}

	rate, err := s.source.Query(ctx, date)
	if err != nil {
		return nil, err
	}
	if rate != nil {
		s.cache.Put(date, rate)
	}
	return rate, nil
}
