package mock

import (
	"context"

	"github.com/fwojciec/amzcrawl"
)

var _ amzcrawl.Storefront = (*Storefront)(nil)

// Storefront is a mock implementation of amzcrawl.Storefront.
type Storefront struct {
	SearchFn  func(ctx context.Context, query string, page int) (string, error)
	ProductFn func(ctx context.Context, asin string) (string, error)
	RegionFn  func() amzcrawl.Region
}

func (s *Storefront) Search(ctx context.Context, query string, page int) (string, error) {
	return s.SearchFn(ctx, query, page)
}

func (s *Storefront) Product(ctx context.Context, asin string) (string, error) {
	return s.ProductFn(ctx, asin)
}

func (s *Storefront) Region() amzcrawl.Region {
	return s.RegionFn()
}
