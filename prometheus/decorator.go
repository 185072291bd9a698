package prometheus

import (
	"context"
	"time"

	"github.com/fwojciec/amzcrawl"
)

var (
	_ amzcrawl.Fetcher          = (*Fetcher)(nil)
	_ amzcrawl.SearchExtractor  = (*SearchExtractor)(nil)
	_ amzcrawl.ProductExtractor = (*ProductExtractor)(nil)
)

// Fetcher records fetch outcomes and latency.
type Fetcher struct {
	next    amzcrawl.Fetcher
	metrics *Metrics
}

// NewFetcher wraps next.
func NewFetcher(next amzcrawl.Fetcher, m *Metrics) *Fetcher {
	return &Fetcher{next: next, metrics: m}
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		f.metrics.ObserveFetch(time.Since(begin), err)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.next.Close()
}

// SearchExtractor counts extracted search pages and products.
type SearchExtractor struct {
	next    amzcrawl.SearchExtractor
	metrics *Metrics
}

// NewSearchExtractor wraps next.
func NewSearchExtractor(next amzcrawl.SearchExtractor, m *Metrics) *SearchExtractor {
	return &SearchExtractor{next: next, metrics: m}
}

func (e *SearchExtractor) ExtractSearch(html string, region amzcrawl.Region, query string, page int) (*amzcrawl.SearchResults, error) {
	r, err := e.next.ExtractSearch(html, region, query, page)
	var n int
	if r != nil {
		n = r.Count()
	}
	e.metrics.ObservePage("search", n, err)
	return r, err
}

// ProductExtractor counts extracted detail pages.
type ProductExtractor struct {
	next    amzcrawl.ProductExtractor
	metrics *Metrics
}

// NewProductExtractor wraps next.
func NewProductExtractor(next amzcrawl.ProductExtractor, m *Metrics) *ProductExtractor {
	return &ProductExtractor{next: next, metrics: m}
}

func (e *ProductExtractor) ExtractProduct(html string, region amzcrawl.Region, asin string) (*amzcrawl.Product, error) {
	p, err := e.next.ExtractProduct(html, region, asin)
	var n int
	if p != nil {
		n = 1
	}
	e.metrics.ObservePage("product", n, err)
	return p, err
}
