package goquery_test

import (
	"testing"

	"github.com/fwojciec/amzcrawl"
	"github.com/fwojciec/amzcrawl/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardExtractor_Extract(t *testing.T) {
	t.Parallel()

	e := goquery.NewCardExtractor(goquery.NewCatalog())

	t.Run("returns nil without error for a card with an empty ASIN", func(t *testing.T) {
		t.Parallel()

		html := `<div data-component-type="s-search-result" data-asin=""><h2><a href="/dp/x"><span>Filler</span></a></h2></div>`

		p, err := e.Extract(card(t, html), region(t, "us"))

		require.NoError(t, err)
		assert.Nil(t, p)
	})

	t.Run("returns nil without error for a card with no ASIN attribute", func(t *testing.T) {
		t.Parallel()

		html := `<div data-component-type="s-search-result"><span>Related searches</span></div>`

		p, err := e.Extract(card(t, html), region(t, "us"))

		require.NoError(t, err)
		assert.Nil(t, p)
	})

	t.Run("returns EINVALID for a malformed ASIN", func(t *testing.T) {
		t.Parallel()

		html := `<div data-component-type="s-search-result" data-asin="B12"></div>`

		_, err := e.Extract(card(t, html), region(t, "us"))

		assert.Equal(t, amzcrawl.EINVALID, amzcrawl.ErrorCode(err))
	})

	t.Run("falls back to placeholder title and constructed URL", func(t *testing.T) {
		t.Parallel()

		html := `<div data-component-type="s-search-result" data-asin="B000TEST01"></div>`

		p, err := e.Extract(card(t, html), region(t, "uk"))

		require.NoError(t, err)
		assert.Equal(t, "B000TEST01", p.ASIN)
		assert.Equal(t, goquery.UnknownTitle, p.Title)
		assert.Equal(t, "https://www.amazon.co.uk/dp/B000TEST01", p.URL)
		assert.Empty(t, p.ImageURL)
		assert.Nil(t, p.Price)
		assert.Nil(t, p.Rating)
		assert.False(t, p.InStock)
	})

	t.Run("parses comma decimal prices for DE", func(t *testing.T) {
		t.Parallel()

		html := `<div data-component-type="s-search-result" data-asin="B0DETEST01">
<h2><a class="a-link-normal" href="/dp/B0DETEST01"><span>Kabellose Maus</span></a></h2>
<span class="a-price"><span class="a-offscreen">49,99 €</span></span>
<span class="a-price a-text-price" data-a-strike="true"><span class="a-offscreen">1.299,00 €</span></span>
<i class="a-icon a-icon-star-small"><span class="a-icon-alt">4,3 von 5 Sternen</span></i>
<a href="/product-reviews/B0DETEST01#customerReviews"><span>1.234</span></a>
</div>`

		p, err := e.Extract(card(t, html), region(t, "de"))

		require.NoError(t, err)
		require.NotNil(t, p.Price)
		assert.InDelta(t, 49.99, p.Price.Current, 0.001)
		require.NotNil(t, p.Price.Original)
		assert.InDelta(t, 1299.0, *p.Price.Original, 0.001)
		assert.Equal(t, "EUR", p.Price.Currency)
		assert.Equal(t, "https://www.amazon.de/dp/B0DETEST01", p.URL)
		require.NotNil(t, p.Rating)
		assert.InDelta(t, 4.3, p.Rating.Stars, 0.001)
		assert.Equal(t, 1234, p.Rating.ReviewCount)
		assert.True(t, p.InStock)
	})

	t.Run("marks a see price in cart card as hidden", func(t *testing.T) {
		t.Parallel()

		html := `<div data-component-type="s-search-result" data-asin="B0HIDDEN01">
<span class="a-size-base a-color-base">See price in cart</span>
</div>`

		p, err := e.Extract(card(t, html), region(t, "us"))

		require.NoError(t, err)
		require.NotNil(t, p.Price)
		assert.True(t, p.Price.IsHidden)
		assert.Equal(t, "USD", p.Price.Currency)
		_, ok := p.CurrentPrice()
		assert.False(t, ok)
	})

	t.Run("leaves the price absent when the text is unparsable", func(t *testing.T) {
		t.Parallel()

		html := `<div data-component-type="s-search-result" data-asin="B0NOPRICE1">
<span class="a-price"><span class="a-offscreen">Currently unavailable</span></span>
<span class="a-icon-alt">4.0 out of 5 stars</span>
</div>`

		p, err := e.Extract(card(t, html), region(t, "us"))

		require.NoError(t, err)
		assert.Nil(t, p.Price)
		assert.False(t, p.InStock)
		require.NotNil(t, p.Rating)
		assert.InDelta(t, 4.0, p.Rating.Stars, 0.001)
		assert.Equal(t, 0, p.Rating.ReviewCount)
	})

	t.Run("detects a price range with a larger second price", func(t *testing.T) {
		t.Parallel()

		html := `<div data-component-type="s-search-result" data-asin="B0RANGE001">
<span class="a-price-range">
<span class="a-price"><span class="a-offscreen">$10.00</span></span> - <span class="a-price"><span class="a-offscreen">$25.50</span></span>
</span>
</div>`

		p, err := e.Extract(card(t, html), region(t, "us"))

		require.NoError(t, err)
		require.NotNil(t, p.Price)
		assert.InDelta(t, 10.0, p.Price.Current, 0.001)
		require.NotNil(t, p.Price.Range)
		assert.InDelta(t, 10.0, p.Price.Range.Min, 0.001)
		require.NotNil(t, p.Price.Range.Max)
		assert.InDelta(t, 25.5, *p.Price.Range.Max, 0.001)
	})

	t.Run("ignores a range whose second price is not larger", func(t *testing.T) {
		t.Parallel()

		html := `<div data-component-type="s-search-result" data-asin="B0RANGE002">
<span class="a-price-range">
<span class="a-price"><span class="a-offscreen">$30.00</span></span> - <span class="a-price"><span class="a-offscreen">$30.00</span></span>
</span>
</div>`

		p, err := e.Extract(card(t, html), region(t, "us"))

		require.NoError(t, err)
		require.NotNil(t, p.Price)
		assert.Nil(t, p.Price.Range)
	})

	t.Run("falls back to card text for the sponsored flag", func(t *testing.T) {
		t.Parallel()

		html := `<div data-component-type="s-search-result" data-asin="B0SPONS001"><div class="ad-label">SPONSORED</div></div>`

		p, err := e.Extract(card(t, html), region(t, "us"))

		require.NoError(t, err)
		assert.True(t, p.IsSponsored)
	})

	t.Run("detects the Amazon's Choice badge and its text", func(t *testing.T) {
		t.Parallel()

		badge := `<div data-component-type="s-search-result" data-asin="B0CHOICE01"><span class="a-badge-text">Amazon's Choice</span></div>`
		text := `<div data-component-type="s-search-result" data-asin="B0CHOICE02"><div>Overall Pick: Amazon's Choice</div></div>`

		p1, err := e.Extract(card(t, badge), region(t, "us"))
		require.NoError(t, err)
		p2, err := e.Extract(card(t, text), region(t, "us"))
		require.NoError(t, err)

		assert.True(t, p1.IsAmazonChoice)
		assert.True(t, p2.IsAmazonChoice)
	})

	t.Run("strips the by prefix from the brand", func(t *testing.T) {
		t.Parallel()

		html := `<div data-component-type="s-search-result" data-asin="B0BRAND001">
<div class="a-row a-size-base a-color-secondary"><span>by Anker</span></div>
</div>`

		p, err := e.Extract(card(t, html), region(t, "us"))

		require.NoError(t, err)
		assert.Equal(t, "Anker", p.Brand)
	})
}
