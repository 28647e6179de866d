package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"StockAnalyzer/internal/cache"
	"StockAnalyzer/internal/model"
)

// CachedFetcher decorates a Fetcher with a TTL cache keyed by source,
// provider symbol and window. Errors are never cached.
type CachedFetcher struct {
	next  Fetcher
	store cache.Store
	ttl   time.Duration
}

// NewCachedFetcher wraps next. A non-positive ttl disables caching.
func NewCachedFetcher(next Fetcher, store cache.Store, ttl time.Duration) *CachedFetcher {
	return &CachedFetcher{next: next, store: store, ttl: ttl}
}

func (c *CachedFetcher) Name() string { return c.next.Name() }

func (c *CachedFetcher) key(symbol string, days int) string {
	return fmt.Sprintf("history:%s:%s:%d", c.next.Name(), MapSymbol(symbol), days)
}

func (c *CachedFetcher) FetchHistory(ctx context.Context, symbol string, days int) (*model.PriceSeries, error) {
	if c.ttl <= 0 {
		return c.next.FetchHistory(ctx, symbol, days)
	}
	key := c.key(symbol, days)

	var cached model.PriceSeries
	ok, err := c.store.Get(ctx, key, &cached)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache read failed, fetching upstream")
	}
	if ok {
		cached.Cached = true
		return &cached, nil
	}

	series, err := c.next.FetchHistory(ctx, symbol, days)
	if err != nil {
		return nil, err
	}
	if err := c.store.Set(ctx, key, series, c.ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
	return series, nil
}

// Invalidate drops the cached entry for symbol and days.
func (c *CachedFetcher) Invalidate(ctx context.Context, symbol string, days int) error {
	return c.store.Delete(ctx, c.key(symbol, days))
}

// Purge drops every cached entry.
func (c *CachedFetcher) Purge(ctx context.Context) error {
	return c.store.Purge(ctx)
}
