// Package lru caches fetched pages in memory with
// github.com/hashicorp/golang-lru/v2.
package lru

import (
	"context"
	"time"

	"github.com/fwojciec/amzcrawl"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Cache defaults for the API server.
const (
	DefaultSize = 256
	DefaultTTL  = 10 * time.Minute
)

var _ amzcrawl.Fetcher = (*Fetcher)(nil)

// Fetcher serves repeated requests for the same URL from memory until the
// entry expires. Failed fetches are not cached.
type Fetcher struct {
	next  amzcrawl.Fetcher
	cache *expirable.LRU[string, string]
}

// NewFetcher wraps next with a cache of size entries that expire after ttl.
func NewFetcher(next amzcrawl.Fetcher, size int, ttl time.Duration) *Fetcher {
	if size <= 0 {
		size = DefaultSize
	}
	return &Fetcher{
		next:  next,
		cache: expirable.NewLRU[string, string](size, nil, ttl),
	}
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if html, ok := f.cache.Get(url); ok {
		return html, nil
	}
	html, err := f.next.Fetch(ctx, url)
	if err != nil {
		return "", err
	}
	f.cache.Add(url, html)
	return html, nil
}

// Len returns the number of cached pages.
func (f *Fetcher) Len() int {
	return f.cache.Len()
}

// Close purges the cache and closes the wrapped fetcher.
func (f *Fetcher) Close() error {
	f.cache.Purge()
	return f.next.Close()
}
