package amzcrawl_test

import (
	"testing"

	"github.com/fwojciec/amzcrawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrice(t *testing.T) {
	t.Parallel()

	t.Run("plain price has no original or range", func(t *testing.T) {
		t.Parallel()

		p := amzcrawl.NewPrice(29.99, "USD")

		assert.Equal(t, 29.99, p.Current)
		assert.Equal(t, "USD", p.Currency)
		assert.Nil(t, p.Original)
		assert.Nil(t, p.Range)
		assert.False(t, p.IsHidden)
	})

	t.Run("discounted price keeps the original", func(t *testing.T) {
		t.Parallel()

		p := amzcrawl.NewDiscountedPrice(19.99, 29.99, "USD")

		require.NotNil(t, p.Original)
		assert.Equal(t, 29.99, *p.Original)
	})

	t.Run("hidden price carries only the currency", func(t *testing.T) {
		t.Parallel()

		p := amzcrawl.NewHiddenPrice("EUR")

		assert.True(t, p.IsHidden)
		assert.Equal(t, "EUR", p.Currency)
		assert.Zero(t, p.Current)
	})

	t.Run("range price mirrors the minimum as current", func(t *testing.T) {
		t.Parallel()

		high := 39.99
		p := amzcrawl.NewRangePrice(19.99, &high, "USD")

		assert.Equal(t, 19.99, p.Current)
		require.NotNil(t, p.Range)
		assert.Equal(t, 19.99, p.Range.Min)
		require.NotNil(t, p.Range.Max)
		assert.Equal(t, 39.99, *p.Range.Max)
	})

	t.Run("range price may be open-ended", func(t *testing.T) {
		t.Parallel()

		p := amzcrawl.NewRangePrice(5, nil, "USD")

		require.NotNil(t, p.Range)
		assert.Nil(t, p.Range.Max)
	})
}

func TestNewRating(t *testing.T) {
	t.Parallel()

	t.Run("keeps values in range", func(t *testing.T) {
		t.Parallel()

		r := amzcrawl.NewRating(4.5, 1234)

		assert.Equal(t, 4.5, r.Stars)
		assert.Equal(t, 1234, r.ReviewCount)
	})

	t.Run("clamps stars above five to exactly five", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, 5.0, amzcrawl.NewRating(6.5, 0).Stars)
	})

	t.Run("clamps negative stars to exactly zero", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, 0.0, amzcrawl.NewRating(-1, 0).Stars)
	})

	t.Run("floors negative review counts at zero", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, 0, amzcrawl.NewRating(3, -7).ReviewCount)
	})
}

func TestProduct(t *testing.T) {
	t.Parallel()

	t.Run("current price is absent when hidden", func(t *testing.T) {
		t.Parallel()

		p := &amzcrawl.Product{Price: amzcrawl.NewHiddenPrice("USD")}

		_, ok := p.CurrentPrice()
		assert.False(t, ok)
	})

	t.Run("current price is absent without a price", func(t *testing.T) {
		t.Parallel()

		_, ok := (&amzcrawl.Product{}).CurrentPrice()
		assert.False(t, ok)
	})

	t.Run("reports current price and stars", func(t *testing.T) {
		t.Parallel()

		p := &amzcrawl.Product{
			Price:  amzcrawl.NewPrice(9.99, "USD"),
			Rating: amzcrawl.NewRating(4.2, 10),
		}

		price, ok := p.CurrentPrice()
		require.True(t, ok)
		assert.Equal(t, 9.99, price)

		stars, ok := p.Stars()
		require.True(t, ok)
		assert.Equal(t, 4.2, stars)
	})

	t.Run("computes rounded discount", func(t *testing.T) {
		t.Parallel()

		p := &amzcrawl.Product{Price: amzcrawl.NewDiscountedPrice(75, 100, "USD")}

		pct, ok := p.DiscountPercent()
		require.True(t, ok)
		assert.Equal(t, 25, pct)
	})

	t.Run("caps discount at ninety-nine", func(t *testing.T) {
		t.Parallel()

		p := &amzcrawl.Product{Price: amzcrawl.NewDiscountedPrice(1, 1000, "USD")}

		pct, ok := p.DiscountPercent()
		require.True(t, ok)
		assert.Equal(t, 99, pct)
	})

	t.Run("tolerates an original below current", func(t *testing.T) {
		t.Parallel()

		p := &amzcrawl.Product{Price: amzcrawl.NewDiscountedPrice(120, 100, "USD")}

		pct, ok := p.DiscountPercent()
		require.True(t, ok)
		assert.Equal(t, 0, pct)
	})

	t.Run("discount is absent without an original price", func(t *testing.T) {
		t.Parallel()

		p := &amzcrawl.Product{Price: amzcrawl.NewPrice(10, "USD")}

		_, ok := p.DiscountPercent()
		assert.False(t, ok)
	})
}

func TestSearchResults(t *testing.T) {
	t.Parallel()

	r := amzcrawl.NewSearchResults("keyboard", "us")

	assert.Equal(t, 1, r.Page)
	assert.True(t, r.IsEmpty())
	assert.Equal(t, 0, r.Count())

	r.Products = append(r.Products, &amzcrawl.Product{ASIN: "B000000001"})

	assert.False(t, r.IsEmpty())
	assert.Equal(t, 1, r.Count())
}

func TestValidateASIN(t *testing.T) {
	t.Parallel()

	t.Run("normalizes case and whitespace", func(t *testing.T) {
		t.Parallel()

		asin, err := amzcrawl.ValidateASIN("  b08n5wrwnw ")

		require.NoError(t, err)
		assert.Equal(t, "B08N5WRWNW", asin)
	})

	t.Run("rejects wrong length and punctuation", func(t *testing.T) {
		t.Parallel()

		for _, in := range []string{"", "B08N5", "B08N5WRWNW1", "B08N5-RWNW", "B08N5 RWNW"} {
			_, err := amzcrawl.ValidateASIN(in)
			require.Error(t, err, in)
			assert.Equal(t, amzcrawl.EINVALID, amzcrawl.ErrorCode(err))
			assert.Contains(t, amzcrawl.ErrorMessage(err), "Invalid ASIN format")
		}
	})
}
