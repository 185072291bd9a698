package goquery_test

import (
	"testing"

	"github.com/fwojciec/amzcrawl"
	"github.com/fwojciec/amzcrawl/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure TropicalExtractor implements amzcrawl.TropicalExtractor at compile time.
var _ amzcrawl.TropicalExtractor = (*goquery.TropicalExtractor)(nil)

const tropicalSearchHTML = `<html><body>
<ul class="nav"><li><a href="/about">About</a></li></ul>
<ul class="results">
  <li><a href="/product/B08N5WRWNW"><h2>Logitech MX Master 3S</h2></a><a class="price" href="/product/B08N5WRWNW">89,99 €</a></li>
  <li><a href="/product/B09HMZ6S1Y"><h2>Razer Basilisk V3</h2></a></li>
  <li><a href="/product/B000000003"></a><a class="price">1.299,00 €</a></li>
  <li><a href="/product/B08N5WRWNW?ref=dup"><h2>Duplicate</h2></a></li>
</ul>
</body></html>`

const tropicalComparisonHTML = `<html><body>
<h2>Logitech MX Master 3S</h2>
<table class="product-table">
  <tr><th>Country</th><th>Price</th></tr>
  <tr><td class="product-table-flag"><img alt="de"></td><td class="product-table-price"><span class="product-table-price-amount">99,99 €</span></td></tr>
  <tr><td class="product-table-flag"><img alt="es"></td><td class="product-table-price"><span class="product-table-price-amount">84,50 € **</span></td></tr>
  <tr><td class="product-table-flag"><img alt="uk"></td><td class="product-table-price"><span class="product-table-price-amount">€102.10</span></td></tr>
  <tr><td class="product-table-flag"><img alt="it"></td><td class="product-table-price"><span class="product-table-price-amount">n/a</span></td></tr>
</table>
</body></html>`

func TestTropicalExtractor_ExtractSearch(t *testing.T) {
	t.Parallel()

	e := goquery.NewTropicalExtractor()

	t.Run("extracts products with ASIN, title and price", func(t *testing.T) {
		t.Parallel()

		products, err := e.ExtractSearch(tropicalSearchHTML, 0)

		require.NoError(t, err)
		require.Len(t, products, 3)
		assert.Equal(t, "B08N5WRWNW", products[0].ASIN)
		assert.Equal(t, "Logitech MX Master 3S", products[0].Title)
		assert.Equal(t, "https://tropicalprice.com/product/B08N5WRWNW", products[0].URL)
		assert.Equal(t, "EUR", products[0].Currency)
		require.NotNil(t, products[0].Price)
		assert.InDelta(t, 89.99, *products[0].Price, 0.001)

		assert.Nil(t, products[1].Price)
		assert.Equal(t, goquery.UnknownTitle, products[2].Title)
		require.NotNil(t, products[2].Price)
		assert.InDelta(t, 1299.0, *products[2].Price, 0.001)
	})

	t.Run("stops at the limit", func(t *testing.T) {
		t.Parallel()

		products, err := e.ExtractSearch(tropicalSearchHTML, 2)

		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, "B09HMZ6S1Y", products[1].ASIN)
	})
}

func TestTropicalExtractor_ExtractComparison(t *testing.T) {
	t.Parallel()

	e := goquery.NewTropicalExtractor()

	t.Run("returns offers sorted cheapest first", func(t *testing.T) {
		t.Parallel()

		c, err := e.ExtractComparison(tropicalComparisonHTML, "B08N5WRWNW")

		require.NoError(t, err)
		assert.Equal(t, "Logitech MX Master 3S", c.Title)
		assert.Equal(t, 3, c.TotalStores)
		require.Len(t, c.Prices, 3)

		assert.Equal(t, "ES", c.Prices[0].Country)
		assert.InDelta(t, 84.50, c.Prices[0].Price, 0.001)
		assert.True(t, c.Prices[0].IsMarketplace)
		assert.Equal(t, "https://www.amazon.es/dp/B08N5WRWNW", c.Prices[0].AmazonURL)

		assert.Equal(t, "DE", c.Prices[1].Country)
		assert.False(t, c.Prices[1].IsMarketplace)

		assert.Equal(t, "UK", c.Prices[2].Country)
		assert.InDelta(t, 102.10, c.Prices[2].Price, 0.001)
		assert.Equal(t, "https://www.amazon.co.uk/dp/B08N5WRWNW", c.Prices[2].AmazonURL)

		savings, ok := c.MaxSavings()
		require.True(t, ok)
		assert.InDelta(t, 17.60, savings, 0.001)
	})

	t.Run("returns ENOTFOUND when no offers are listed", func(t *testing.T) {
		t.Parallel()

		_, err := e.ExtractComparison(`<html><body><h2>Nothing</h2></body></html>`, "B08N5WRWNW")

		assert.Equal(t, amzcrawl.ENOTFOUND, amzcrawl.ErrorCode(err))
	})

	t.Run("defaults the title", func(t *testing.T) {
		t.Parallel()

		html := `<table class="product-table"><tr><td class="product-table-flag"><img alt="fr"></td><td class="product-table-price"><span class="product-table-price-amount">10,00 €</span></td></tr></table>`

		c, err := e.ExtractComparison(html, "B08N5WRWNW")

		require.NoError(t, err)
		assert.Equal(t, "Unknown Product", c.Title)
	})
}

func TestParseEURPrice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"99,99 €", 99.99, true},
		{"€99.99", 99.99, true},
		{"1.234,56 €", 1234.56, true},
		{"1,234.56", 1234.56, true},
		{"42", 42, true},
		{"", 0, false},
		{"n/a", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, ok := goquery.ParseEURPrice(tt.in)

			assert.Equal(t, tt.ok, ok)
			assert.InDelta(t, tt.want, got, 0.001)
		})
	}
}
