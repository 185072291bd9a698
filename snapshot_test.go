package amzcrawl_test

import (
	"testing"

	"github.com/fwojciec/amzcrawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSnapshot(t *testing.T) {
	t.Parallel()

	t.Run("captures price, original and rating", func(t *testing.T) {
		t.Parallel()

		p := &amzcrawl.Product{
			ASIN:    "B08N5WRWNW",
			Title:   "Mouse",
			Price:   amzcrawl.NewDiscountedPrice(99.99, 129.99, "USD"),
			Rating:  amzcrawl.NewRating(4.7, 12345),
			InStock: true,
		}

		s := amzcrawl.NewSnapshot(p, "us")

		assert.Equal(t, "B08N5WRWNW", s.ASIN)
		assert.Equal(t, "us", s.Region)
		require.NotNil(t, s.Price)
		assert.Equal(t, 99.99, *s.Price)
		require.NotNil(t, s.OriginalPrice)
		assert.Equal(t, 129.99, *s.OriginalPrice)
		assert.Equal(t, "USD", s.Currency)
		require.NotNil(t, s.Stars)
		assert.Equal(t, 4.7, *s.Stars)
		assert.Equal(t, 12345, s.ReviewCount)
		assert.True(t, s.InStock)
	})

	t.Run("leaves price empty when hidden", func(t *testing.T) {
		t.Parallel()

		s := amzcrawl.NewSnapshot(&amzcrawl.Product{ASIN: "B000000001", Price: amzcrawl.NewHiddenPrice("EUR")}, "de")

		assert.Nil(t, s.Price)
		assert.True(t, s.PriceHidden)
		assert.Equal(t, "EUR", s.Currency)
	})

	t.Run("validates identity fields", func(t *testing.T) {
		t.Parallel()

		assert.Error(t, (&amzcrawl.Snapshot{Region: "us"}).Validate())
		assert.Error(t, (&amzcrawl.Snapshot{ASIN: "B000000001"}).Validate())
		assert.NoError(t, (&amzcrawl.Snapshot{ASIN: "B000000001", Region: "us"}).Validate())
	})
}
