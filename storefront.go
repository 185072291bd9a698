package amzcrawl

import "context"

// Storefront fetches raw pages from one regional marketplace.
type Storefront interface {
	// Search returns the HTML of results page n (1-based) for query.
	Search(ctx context.Context, query string, page int) (string, error)

	// Product returns the HTML of the detail page for asin.
	Product(ctx context.Context, asin string) (string, error)

	// Region returns the marketplace the storefront talks to.
	Region() Region
}

// StorefrontFunc returns the storefront for a region.
type StorefrontFunc func(region Region) (Storefront, error)

// SearchOptions controls a multi-page search.
type SearchOptions struct {
	// MaxResults caps the number of products returned. Zero means DefaultMaxResults.
	MaxResults int

	// Filters, when set, is applied to each page before counting results.
	Filters *FilterChain
}

// DefaultMaxResults is the result cap used when none is given.
const DefaultMaxResults = 20

// SearchService searches a marketplace.
type SearchService interface {
	// SearchPage fetches and extracts a single results page.
	SearchPage(ctx context.Context, region Region, query string, page int) (*SearchResults, error)

	// Search walks result pages until enough filtered products are found
	// or no more pages remain. Products keep display order.
	Search(ctx context.Context, region Region, query string, opts SearchOptions) ([]*Product, error)
}

// ProductLookup is the outcome of looking up one ASIN in a batch.
type ProductLookup struct {
	ASIN    string
	Product *Product
	Err     error
}

// ProductService looks up product detail pages.
type ProductService interface {
	// FindProduct returns the product for asin.
	// Returns EINVALID for a malformed ASIN.
	FindProduct(ctx context.Context, region Region, asin string) (*Product, error)

	// FindProducts looks up several ASINs. The result has one entry per
	// input in input order; individual failures are reported per entry.
	FindProducts(ctx context.Context, region Region, asins []string) ([]ProductLookup, error)
}

// ASINSet remembers ASINs already returned by a multi-page search.
type ASINSet interface {
	// Add records asin and reports whether it was new.
	Add(asin string) bool
}

// ASINSetFunc creates an empty ASINSet for one search.
type ASINSetFunc func() ASINSet
