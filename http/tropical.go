package http

import (
	"context"
	"net/url"
	"strings"

	"github.com/fwojciec/amzcrawl"
)

var _ amzcrawl.TropicalService = (*TropicalClient)(nil)

// TropicalOptions returns the fetcher options the comparison site expects.
// It serves its listings to XHR requests.
func TropicalOptions() []Option {
	return []Option{
		WithHeader("Accept", "*/*"),
		WithAcceptLanguage("en-US,en;q=0.9"),
		WithHeader("X-Requested-With", "XMLHttpRequest"),
	}
}

// TropicalClient searches and compares EU prices on the comparison site.
type TropicalClient struct {
	fetcher   amzcrawl.Fetcher
	extractor amzcrawl.TropicalExtractor
	baseURL   string
}

// NewTropicalClient returns a client rooted at baseURL.
func NewTropicalClient(fetcher amzcrawl.Fetcher, extractor amzcrawl.TropicalExtractor, baseURL string) *TropicalClient {
	return &TropicalClient{
		fetcher:   fetcher,
		extractor: extractor,
		baseURL:   strings.TrimSuffix(baseURL, "/"),
	}
}

// SearchTropical returns up to limit products matching query.
func (c *TropicalClient) SearchTropical(ctx context.Context, query string, limit int) ([]*amzcrawl.TropicalProduct, error) {
	if strings.TrimSpace(query) == "" {
		return nil, amzcrawl.Errorf(amzcrawl.EINVALID, "search query required")
	}
	html, err := c.fetcher.Fetch(ctx, c.baseURL+"/search/es?q="+url.QueryEscape(query)+"&p=1")
	if err != nil {
		return nil, err
	}
	return c.extractor.ExtractSearch(html, limit)
}

// ComparePrices returns the per-country offers for asin.
func (c *TropicalClient) ComparePrices(ctx context.Context, asin string) (*amzcrawl.PriceComparison, error) {
	asin, err := amzcrawl.ValidateASIN(asin)
	if err != nil {
		return nil, err
	}
	html, err := c.fetcher.Fetch(ctx, c.baseURL+"/product/"+asin)
	if err != nil {
		return nil, err
	}
	return c.extractor.ExtractComparison(html, asin)
}
