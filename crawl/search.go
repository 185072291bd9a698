// Package crawl orchestrates storefront requests: multi-page searches,
// batch product lookups and request pacing.
package crawl

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/amzcrawl"
)

// DefaultMaxPages bounds how many result pages a search walks.
const DefaultMaxPages = 10

var _ amzcrawl.SearchService = (*Searcher)(nil)

// Searcher walks search result pages of a storefront.
type Searcher struct {
	Storefronts amzcrawl.StorefrontFunc
	Extractor   amzcrawl.SearchExtractor

	// NewSet creates the per-search ASIN set used to drop products that
	// reappear on later pages. Without it duplicates are kept.
	NewSet amzcrawl.ASINSetFunc

	// MaxPages defaults to DefaultMaxPages.
	MaxPages int

	Logger *slog.Logger
}

func (s *Searcher) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s.Logger
}

// SearchPage fetches and extracts results page n for query.
func (s *Searcher) SearchPage(ctx context.Context, region amzcrawl.Region, query string, page int) (*amzcrawl.SearchResults, error) {
	if page < 1 {
		page = 1
	}
	store, err := s.Storefronts(region)
	if err != nil {
		return nil, err
	}
	html, err := store.Search(ctx, query, page)
	if err != nil {
		return nil, err
	}
	return s.Extractor.ExtractSearch(html, region, query, page)
}

// Search fetches pages until opts.MaxResults filtered products are
// collected, a page comes back empty, no next page is offered or the page
// cap is reached. An error on any page fails the search.
func (s *Searcher) Search(ctx context.Context, region amzcrawl.Region, query string, opts amzcrawl.SearchOptions) ([]*amzcrawl.Product, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = amzcrawl.DefaultMaxResults
	}
	maxPages := s.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	var seen amzcrawl.ASINSet
	if s.NewSet != nil {
		seen = s.NewSet()
	}

	log := s.logger()
	if n := opts.Filters.Len(); n > 0 {
		log.Debug("active filters", "filters", opts.Filters.Descriptions())
	}

	var products []*amzcrawl.Product
	for page := 1; len(products) < maxResults && page <= maxPages; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		results, err := s.SearchPage(ctx, region, query, page)
		if err != nil {
			return nil, err
		}
		if results.IsEmpty() {
			log.Debug("no results on page, stopping", "page", page)
			break
		}

		fresh := results.Products
		if seen != nil {
			fresh = fresh[:0:0]
			for _, p := range results.Products {
				if seen.Add(p.ASIN) {
					fresh = append(fresh, p)
				}
			}
		}
		filtered := opts.Filters.Apply(fresh)
		log.Debug("page extracted",
			"page", page,
			"products", results.Count(),
			"new", len(fresh),
			"kept", len(filtered),
		)
		products = append(products, filtered...)

		if !results.HasMore {
			log.Debug("no more pages available", "page", page)
			break
		}
	}

	if len(products) > maxResults {
		products = products[:maxResults]
	}
	return products, nil
}
