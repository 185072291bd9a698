package http

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/fwojciec/amzcrawl"
)

var _ amzcrawl.Storefront = (*Storefront)(nil)

// Storefront builds marketplace URLs for one region and fetches them.
type Storefront struct {
	fetcher amzcrawl.Fetcher
	region  amzcrawl.Region
	baseURL string
}

// NewStorefront returns a Storefront for region. baseURL overrides
// region.BaseURL() when non-empty, which lets tests point at a local server.
func NewStorefront(fetcher amzcrawl.Fetcher, region amzcrawl.Region, baseURL string) *Storefront {
	if baseURL == "" {
		baseURL = region.BaseURL()
	}
	return &Storefront{
		fetcher: fetcher,
		region:  region,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// StorefrontFunc returns an amzcrawl.StorefrontFunc building storefronts
// over a shared fetcher.
func StorefrontFunc(fetcher amzcrawl.Fetcher) amzcrawl.StorefrontFunc {
	return func(region amzcrawl.Region) (amzcrawl.Storefront, error) {
		return NewStorefront(fetcher, region, ""), nil
	}
}

// SearchURL returns the URL of results page n for query.
func (s *Storefront) SearchURL(query string, page int) string {
	v := url.Values{}
	v.Set("k", query)
	if page > 1 {
		v.Set("page", strconv.Itoa(page))
	}
	return s.baseURL + "/s?" + v.Encode()
}

// ProductURL returns the detail page URL for asin.
func (s *Storefront) ProductURL(asin string) string {
	return s.baseURL + "/dp/" + url.PathEscape(asin)
}

func (s *Storefront) Search(ctx context.Context, query string, page int) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", amzcrawl.Errorf(amzcrawl.EINVALID, "search query required")
	}
	if page < 1 {
		page = 1
	}
	return s.fetcher.Fetch(ctx, s.SearchURL(query, page))
}

func (s *Storefront) Product(ctx context.Context, asin string) (string, error) {
	asin, err := amzcrawl.ValidateASIN(asin)
	if err != nil {
		return "", err
	}
	return s.fetcher.Fetch(ctx, s.ProductURL(asin))
}

func (s *Storefront) Region() amzcrawl.Region {
	return s.region
}
