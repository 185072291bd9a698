package crawl_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/amzcrawl"
	"github.com/fwojciec/amzcrawl/crawl"
	"github.com/fwojciec/amzcrawl/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ amzcrawl.ProductService = (*crawl.Lookup)(nil)

func productStorefront(fetch func(asin string) (string, error)) amzcrawl.StorefrontFunc {
	return func(region amzcrawl.Region) (amzcrawl.Storefront, error) {
		return &mock.Storefront{
			ProductFn: func(_ context.Context, asin string) (string, error) { return fetch(asin) },
			RegionFn:  func() amzcrawl.Region { return region },
		}, nil
	}
}

// echoExtractor returns a product titled with the page HTML.
var echoExtractor = &mock.ProductExtractor{
	ExtractProductFn: func(html string, _ amzcrawl.Region, asin string) (*amzcrawl.Product, error) {
		return &amzcrawl.Product{ASIN: asin, Title: html}, nil
	},
}

func TestLookup_FindProduct(t *testing.T) {
	t.Parallel()

	t.Run("fetches and extracts the normalized ASIN", func(t *testing.T) {
		t.Parallel()

		var fetched string
		l := &crawl.Lookup{
			Storefronts: productStorefront(func(asin string) (string, error) {
				fetched = asin
				return "page", nil
			}),
			Extractor: echoExtractor,
		}

		p, err := l.FindProduct(context.Background(), usRegion(t), "b08n5wrwnw")
		require.NoError(t, err)
		assert.Equal(t, "B08N5WRWNW", fetched)
		assert.Equal(t, "B08N5WRWNW", p.ASIN)
		assert.Equal(t, "page", p.Title)
	})

	t.Run("rejects malformed ASINs", func(t *testing.T) {
		t.Parallel()

		l := &crawl.Lookup{
			Storefronts: productStorefront(func(string) (string, error) {
				t.Fatal("unexpected fetch")
				return "", nil
			}),
			Extractor: echoExtractor,
		}

		_, err := l.FindProduct(context.Background(), usRegion(t), "123")
		assert.Equal(t, amzcrawl.EINVALID, amzcrawl.ErrorCode(err))
	})
}

func TestLookup_FindProducts(t *testing.T) {
	t.Parallel()

	t.Run("keeps input order and reports failures per entry", func(t *testing.T) {
		t.Parallel()

		l := &crawl.Lookup{
			Storefronts: productStorefront(func(asin string) (string, error) {
				if asin == "B000000002" {
					return "", amzcrawl.Errorf(amzcrawl.ENOTFOUND, "HTTP 404")
				}
				// Finish out of order.
				if asin == "B000000001" {
					time.Sleep(20 * time.Millisecond)
				}
				return "page " + asin, nil
			}),
			Extractor:   echoExtractor,
			Concurrency: 3,
		}

		got, err := l.FindProducts(context.Background(), usRegion(t), []string{"B000000001", "B000000002", "bad", "B000000003"})
		require.NoError(t, err)
		require.Len(t, got, 4)

		assert.Equal(t, "B000000001", got[0].ASIN)
		require.NoError(t, got[0].Err)
		assert.Equal(t, "page B000000001", got[0].Product.Title)

		assert.Equal(t, amzcrawl.ENOTFOUND, amzcrawl.ErrorCode(got[1].Err))
		assert.Nil(t, got[1].Product)

		assert.Equal(t, "bad", got[2].ASIN)
		assert.Equal(t, amzcrawl.EINVALID, amzcrawl.ErrorCode(got[2].Err))

		require.NoError(t, got[3].Err)
		assert.Equal(t, "B000000003", got[3].Product.ASIN)
	})

	t.Run("limits concurrent fetches", func(t *testing.T) {
		t.Parallel()

		var active, peak atomic.Int32
		l := &crawl.Lookup{
			Storefronts: productStorefront(func(string) (string, error) {
				n := active.Add(1)
				defer active.Add(-1)
				for {
					p := peak.Load()
					if n <= p || peak.CompareAndSwap(p, n) {
						break
					}
				}
				time.Sleep(10 * time.Millisecond)
				return "", nil
			}),
			Extractor:   echoExtractor,
			Concurrency: 2,
		}

		asins := []string{"B000000001", "B000000002", "B000000003", "B000000004", "B000000005"}
		got, err := l.FindProducts(context.Background(), usRegion(t), asins)
		require.NoError(t, err)
		assert.Len(t, got, len(asins))
		assert.LessOrEqual(t, peak.Load(), int32(2))
	})

	t.Run("returns an empty result for no input", func(t *testing.T) {
		t.Parallel()

		l := &crawl.Lookup{Storefronts: productStorefront(nil), Extractor: echoExtractor}

		got, err := l.FindProducts(context.Background(), usRegion(t), nil)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("fails when the context is canceled", func(t *testing.T) {
		t.Parallel()

		l := &crawl.Lookup{
			Storefronts: productStorefront(func(string) (string, error) { return "", context.Canceled }),
			Extractor:   echoExtractor,
		}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := l.FindProducts(ctx, usRegion(t), []string{"B000000001"})
		require.ErrorIs(t, err, context.Canceled)
	})
}
