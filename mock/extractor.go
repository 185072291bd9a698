package mock

import "github.com/fwojciec/amzcrawl"

var (
	_ amzcrawl.SearchExtractor   = (*SearchExtractor)(nil)
	_ amzcrawl.ProductExtractor  = (*ProductExtractor)(nil)
	_ amzcrawl.TropicalExtractor = (*TropicalExtractor)(nil)
)

// SearchExtractor is a mock implementation of amzcrawl.SearchExtractor.
type SearchExtractor struct {
	ExtractSearchFn func(html string, region amzcrawl.Region, query string, page int) (*amzcrawl.SearchResults, error)
}

func (e *SearchExtractor) ExtractSearch(html string, region amzcrawl.Region, query string, page int) (*amzcrawl.SearchResults, error) {
	return e.ExtractSearchFn(html, region, query, page)
}

// ProductExtractor is a mock implementation of amzcrawl.ProductExtractor.
type ProductExtractor struct {
	ExtractProductFn func(html string, region amzcrawl.Region, asin string) (*amzcrawl.Product, error)
}

func (e *ProductExtractor) ExtractProduct(html string, region amzcrawl.Region, asin string) (*amzcrawl.Product, error) {
	return e.ExtractProductFn(html, region, asin)
}

// TropicalExtractor is a mock implementation of amzcrawl.TropicalExtractor.
type TropicalExtractor struct {
	ExtractSearchFn     func(html string, limit int) ([]*amzcrawl.TropicalProduct, error)
	ExtractComparisonFn func(html string, asin string) (*amzcrawl.PriceComparison, error)
}

func (e *TropicalExtractor) ExtractSearch(html string, limit int) ([]*amzcrawl.TropicalProduct, error) {
	return e.ExtractSearchFn(html, limit)
}

func (e *TropicalExtractor) ExtractComparison(html string, asin string) (*amzcrawl.PriceComparison, error) {
	return e.ExtractComparisonFn(html, asin)
}
