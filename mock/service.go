package mock

import (
	"context"

	"github.com/fwojciec/amzcrawl"
)

var (
	_ amzcrawl.SearchService   = (*SearchService)(nil)
	_ amzcrawl.ProductService  = (*ProductService)(nil)
	_ amzcrawl.TropicalService = (*TropicalService)(nil)
	_ amzcrawl.SnapshotService = (*SnapshotService)(nil)
)

// SearchService is a mock implementation of amzcrawl.SearchService.
type SearchService struct {
	SearchPageFn func(ctx context.Context, region amzcrawl.Region, query string, page int) (*amzcrawl.SearchResults, error)
	SearchFn     func(ctx context.Context, region amzcrawl.Region, query string, opts amzcrawl.SearchOptions) ([]*amzcrawl.Product, error)
}

func (s *SearchService) SearchPage(ctx context.Context, region amzcrawl.Region, query string, page int) (*amzcrawl.SearchResults, error) {
	return s.SearchPageFn(ctx, region, query, page)
}

func (s *SearchService) Search(ctx context.Context, region amzcrawl.Region, query string, opts amzcrawl.SearchOptions) ([]*amzcrawl.Product, error) {
	return s.SearchFn(ctx, region, query, opts)
}

// ProductService is a mock implementation of amzcrawl.ProductService.
type ProductService struct {
	FindProductFn  func(ctx context.Context, region amzcrawl.Region, asin string) (*amzcrawl.Product, error)
	FindProductsFn func(ctx context.Context, region amzcrawl.Region, asins []string) ([]amzcrawl.ProductLookup, error)
}

func (s *ProductService) FindProduct(ctx context.Context, region amzcrawl.Region, asin string) (*amzcrawl.Product, error) {
	return s.FindProductFn(ctx, region, asin)
}

func (s *ProductService) FindProducts(ctx context.Context, region amzcrawl.Region, asins []string) ([]amzcrawl.ProductLookup, error) {
	return s.FindProductsFn(ctx, region, asins)
}

// TropicalService is a mock implementation of amzcrawl.TropicalService.
type TropicalService struct {
	SearchTropicalFn func(ctx context.Context, query string, limit int) ([]*amzcrawl.TropicalProduct, error)
	ComparePricesFn  func(ctx context.Context, asin string) (*amzcrawl.PriceComparison, error)
}

func (s *TropicalService) SearchTropical(ctx context.Context, query string, limit int) ([]*amzcrawl.TropicalProduct, error) {
	return s.SearchTropicalFn(ctx, query, limit)
}

func (s *TropicalService) ComparePrices(ctx context.Context, asin string) (*amzcrawl.PriceComparison, error) {
	return s.ComparePricesFn(ctx, asin)
}

// SnapshotService is a mock implementation of amzcrawl.SnapshotService.
type SnapshotService struct {
	CreateSnapshotFn  func(ctx context.Context, s *amzcrawl.Snapshot) (bool, error)
	FindSnapshotsFn   func(ctx context.Context, filter amzcrawl.SnapshotFilter) ([]*amzcrawl.Snapshot, error)
	DeleteSnapshotsFn func(ctx context.Context, asin string) error
}

func (s *SnapshotService) CreateSnapshot(ctx context.Context, snap *amzcrawl.Snapshot) (bool, error) {
	return s.CreateSnapshotFn(ctx, snap)
}

func (s *SnapshotService) FindSnapshots(ctx context.Context, filter amzcrawl.SnapshotFilter) ([]*amzcrawl.Snapshot, error) {
	return s.FindSnapshotsFn(ctx, filter)
}

func (s *SnapshotService) DeleteSnapshots(ctx context.Context, asin string) error {
	return s.DeleteSnapshotsFn(ctx, asin)
}
