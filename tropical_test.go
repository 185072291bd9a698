package amzcrawl_test

import (
	"testing"

	"github.com/fwojciec/amzcrawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceComparison(t *testing.T) {
	t.Parallel()

	t.Run("reports cheapest, dearest and savings", func(t *testing.T) {
		t.Parallel()

		c := &amzcrawl.PriceComparison{
			ASIN: "B08N5WRWNW",
			Prices: []amzcrawl.CountryPrice{
				{Country: "DE", Price: 40},
				{Country: "FR", Price: 45},
				{Country: "IT", Price: 50},
			},
			TotalStores: 3,
		}

		cheap, ok := c.Cheapest()
		require.True(t, ok)
		assert.Equal(t, "DE", cheap.Country)

		dear, ok := c.MostExpensive()
		require.True(t, ok)
		assert.Equal(t, "IT", dear.Country)

		savings, ok := c.MaxSavings()
		require.True(t, ok)
		assert.InDelta(t, 10.0, savings, 1e-9)

		pct, ok := c.MaxSavingsPercent()
		require.True(t, ok)
		assert.InDelta(t, 20.0, pct, 1e-9)
	})

	t.Run("reports nothing without prices", func(t *testing.T) {
		t.Parallel()

		c := &amzcrawl.PriceComparison{}

		_, ok := c.Cheapest()
		assert.False(t, ok)
		_, ok = c.MaxSavings()
		assert.False(t, ok)
		_, ok = c.MaxSavingsPercent()
		assert.False(t, ok)
	})
}

func TestCountryFlag(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "🇩🇪", amzcrawl.CountryFlag("DE"))
	assert.Equal(t, "🇩🇪", amzcrawl.CountryFlag("de"))
	assert.Equal(t, "🇬🇧", amzcrawl.CountryFlag("co.uk"))
	assert.Equal(t, "🇬🇧", amzcrawl.CountryFlag("UK"))
	assert.Equal(t, "🏳️", amzcrawl.CountryFlag("XX"))
	assert.Equal(t, "🇸🇪", amzcrawl.CountryPrice{Country: "SE"}.Flag())
}
