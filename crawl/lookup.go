package crawl

import (
	"context"

	"github.com/fwojciec/amzcrawl"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of detail pages fetched at once.
const DefaultConcurrency = 3

var _ amzcrawl.ProductService = (*Lookup)(nil)

// Lookup fetches and extracts product detail pages.
type Lookup struct {
	Storefronts amzcrawl.StorefrontFunc
	Extractor   amzcrawl.ProductExtractor

	// Concurrency defaults to DefaultConcurrency.
	Concurrency int
}

// FindProduct returns the product for asin.
func (l *Lookup) FindProduct(ctx context.Context, region amzcrawl.Region, asin string) (*amzcrawl.Product, error) {
	asin, err := amzcrawl.ValidateASIN(asin)
	if err != nil {
		return nil, err
	}
	store, err := l.Storefronts(region)
	if err != nil {
		return nil, err
	}
	html, err := store.Product(ctx, asin)
	if err != nil {
		return nil, err
	}
	return l.Extractor.ExtractProduct(html, region, asin)
}

// FindProducts looks up asins concurrently. The result keeps input order
// and records each failure on its entry; only cancellation of ctx fails
// the whole call.
func (l *Lookup) FindProducts(ctx context.Context, region amzcrawl.Region, asins []string) ([]amzcrawl.ProductLookup, error) {
	concurrency := l.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	results := make([]amzcrawl.ProductLookup, len(asins))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, asin := range asins {
		g.Go(func() error {
			p, err := l.FindProduct(gctx, region, asin)
			results[i] = amzcrawl.ProductLookup{ASIN: asin, Product: p, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
