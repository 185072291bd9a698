package format_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/fwojciec/amzcrawl"
	"github.com/fwojciec/amzcrawl/format"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullProduct() *amzcrawl.Product {
	return &amzcrawl.Product{
		ASIN:           "B08N5WRWNW",
		Title:          "Test Product Title",
		URL:            "https://www.amazon.com/dp/B08N5WRWNW",
		Price:          amzcrawl.NewDiscountedPrice(29.99, 39.99, "USD"),
		Rating:         amzcrawl.NewRating(4.5, 1234),
		IsPrime:        true,
		IsAmazonChoice: true,
		InStock:        true,
		Brand:          "TestBrand",
	}
}

func minimalProduct() *amzcrawl.Product {
	return &amzcrawl.Product{
		ASIN:  "MINIMAL123",
		Title: "Minimal Product",
		URL:   "https://www.amazon.com/dp/MINIMAL123",
	}
}

func hiddenPriceProduct() *amzcrawl.Product {
	return &amzcrawl.Product{
		ASIN:    "HIDDEN1234",
		Title:   "Hidden Price Product",
		URL:     "https://www.amazon.com/dp/HIDDEN1234",
		Price:   amzcrawl.NewHiddenPrice("USD"),
		IsPrime: true,
		InStock: true,
	}
}

func newFormatter(t *testing.T, f amzcrawl.OutputFormat) *format.Formatter {
	t.Helper()
	fm, err := format.NewFormatter(f)
	require.NoError(t, err)
	return fm
}

func TestNewFormatter(t *testing.T) {
	t.Parallel()

	_, err := format.NewFormatter(amzcrawl.FormatXML)
	assert.Equal(t, amzcrawl.EINVALID, amzcrawl.ErrorCode(err))
}

func TestFormatter_FormatProducts(t *testing.T) {
	t.Parallel()

	t.Run("renders the empty form of each format", func(t *testing.T) {
		t.Parallel()

		for f, want := range map[amzcrawl.OutputFormat]string{
			amzcrawl.FormatJSON:     "[]",
			amzcrawl.FormatCSV:      "asin,title,price,original_price,currency,rating,reviews,prime,sponsored,amazon_choice,in_stock,brand,url",
			amzcrawl.FormatTable:    "No products found.",
			amzcrawl.FormatMarkdown: "No products found.",
		} {
			got, err := newFormatter(t, f).FormatProducts(nil)
			require.NoError(t, err)
			assert.Equal(t, want, got, f)
		}
	})

	t.Run("renders a table with a total", func(t *testing.T) {
		t.Parallel()

		out, err := newFormatter(t, amzcrawl.FormatTable).FormatProducts([]*amzcrawl.Product{
			fullProduct(), minimalProduct(), hiddenPriceProduct(),
		})
		require.NoError(t, err)

		lines := strings.Split(out, "\n")
		assert.True(t, strings.HasPrefix(lines[0], "ASIN        Price"))
		assert.Contains(t, lines[1], "----------")
		assert.Contains(t, lines[2], "B08N5WRWNW")
		assert.Contains(t, lines[2], "       29.99")
		assert.Contains(t, lines[2], "Yes")
		assert.Contains(t, lines[3], "N/A")
		assert.Contains(t, lines[3], "No")
		assert.Contains(t, lines[4], "In cart")
		assert.Equal(t, "Total: 3 products", lines[len(lines)-1])
	})

	t.Run("truncates long titles in the table", func(t *testing.T) {
		t.Parallel()

		p := minimalProduct()
		p.Title = "This is a very long product title that exceeds fifty characters and should be truncated"

		out, err := newFormatter(t, amzcrawl.FormatTable).FormatProducts([]*amzcrawl.Product{p})
		require.NoError(t, err)
		assert.Contains(t, out, "This is a very long product title that exceeds ...")
		assert.NotContains(t, out, "truncated")
	})

	t.Run("renders a markdown table", func(t *testing.T) {
		t.Parallel()

		out, err := newFormatter(t, amzcrawl.FormatMarkdown).FormatProducts([]*amzcrawl.Product{
			fullProduct(), minimalProduct(),
		})
		require.NoError(t, err)

		assert.Contains(t, out, "| ASIN | Price | Rating | Prime | Title |")
		assert.Contains(t, out, "|------|-------|--------|-------|-------|")
		assert.Contains(t, out, "| B08N5WRWNW | 29.99 | 4.5 | ✓ | [Test Product Title](https://www.amazon.com/dp/B08N5WRWNW) |")
		assert.Contains(t, out, "| MINIMAL123 | N/A | N/A |  |")
		assert.Contains(t, out, "*2 products found*")
	})

	t.Run("renders JSON arrays", func(t *testing.T) {
		t.Parallel()

		out, err := newFormatter(t, amzcrawl.FormatJSON).FormatProducts([]*amzcrawl.Product{fullProduct()})
		require.NoError(t, err)

		var got []*amzcrawl.Product
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		require.Len(t, got, 1)
		assert.Equal(t, "B08N5WRWNW", got[0].ASIN)
	})

	t.Run("renders CSV rows", func(t *testing.T) {
		t.Parallel()

		out, err := newFormatter(t, amzcrawl.FormatCSV).FormatProducts([]*amzcrawl.Product{
			fullProduct(), minimalProduct(), hiddenPriceProduct(),
		})
		require.NoError(t, err)

		lines := strings.Split(out, "\n")
		require.Len(t, lines, 4)
		assert.Equal(t, "B08N5WRWNW,Test Product Title,29.99,39.99,USD,4.5,1234,true,false,true,true,TestBrand,https://www.amazon.com/dp/B08N5WRWNW", lines[1])
		assert.Equal(t, "MINIMAL123,Minimal Product,,,,,,false,false,false,false,,https://www.amazon.com/dp/MINIMAL123", lines[2])
		assert.Equal(t, "HIDDEN1234,Hidden Price Product,,,USD,,,true,false,false,true,,https://www.amazon.com/dp/HIDDEN1234", lines[3])
	})

	t.Run("quotes CSV fields with special characters", func(t *testing.T) {
		t.Parallel()

		p := fullProduct()
		p.Title = "Product, with \"quotes\" and\nnewlines"
		p.Brand = "Brand, Inc."

		out, err := newFormatter(t, amzcrawl.FormatCSV).FormatProducts([]*amzcrawl.Product{p})
		require.NoError(t, err)
		assert.Contains(t, out, "\"Product, with \"\"quotes\"\" and\nnewlines\"")
		assert.Contains(t, out, "\"Brand, Inc.\"")
	})
}

func TestFormatter_FormatProduct(t *testing.T) {
	t.Parallel()

	t.Run("renders a detail table", func(t *testing.T) {
		t.Parallel()

		out, err := newFormatter(t, amzcrawl.FormatTable).FormatProduct(fullProduct())
		require.NoError(t, err)

		assert.Contains(t, out, "ASIN:    B08N5WRWNW")
		assert.Contains(t, out, "Title:   Test Product Title")
		assert.Contains(t, out, "URL:     https://www.amazon.com/dp/B08N5WRWNW")
		assert.Contains(t, out, "Price:   USD 29.99 (was 39.99)")
		assert.Contains(t, out, "Rating:  4.5/5 (1234 reviews)")
		assert.Contains(t, out, "Badges:  Prime, Amazon's Choice")
		assert.Contains(t, out, "Brand:   TestBrand")
		assert.Contains(t, out, "Stock:   In Stock")
	})

	t.Run("marks missing fields in the detail table", func(t *testing.T) {
		t.Parallel()

		out, err := newFormatter(t, amzcrawl.FormatTable).FormatProduct(minimalProduct())
		require.NoError(t, err)

		assert.Contains(t, out, "Price:   N/A")
		assert.Contains(t, out, "Rating:  N/A")
		assert.Contains(t, out, "Stock:   Out of Stock")
		assert.NotContains(t, out, "Badges:")
		assert.NotContains(t, out, "Brand:")
	})

	t.Run("shows hidden prices and sponsored badges", func(t *testing.T) {
		t.Parallel()

		p := hiddenPriceProduct()
		p.IsSponsored = true

		out, err := newFormatter(t, amzcrawl.FormatTable).FormatProduct(p)
		require.NoError(t, err)
		assert.Contains(t, out, "Price:   See price in cart")
		assert.Contains(t, out, "Badges:  Prime, Sponsored")
	})

	t.Run("lists detail page features", func(t *testing.T) {
		t.Parallel()

		p := fullProduct()
		p.Features = []string{"Quiet clicks", "USB-C"}

		out, err := newFormatter(t, amzcrawl.FormatTable).FormatProduct(p)
		require.NoError(t, err)
		assert.Contains(t, out, "Features:\n  - Quiet clicks\n  - USB-C")
	})

	t.Run("renders markdown detail", func(t *testing.T) {
		t.Parallel()

		p := fullProduct()
		p.Description = "Designed for **work**."

		out, err := newFormatter(t, amzcrawl.FormatMarkdown).FormatProduct(p)
		require.NoError(t, err)

		assert.Contains(t, out, "## Test Product Title")
		assert.Contains(t, out, "- **ASIN:** B08N5WRWNW")
		assert.Contains(t, out, "- **URL:** [View on Amazon](https://www.amazon.com/dp/B08N5WRWNW)")
		assert.Contains(t, out, "- **Price:** USD 29.99 ~~39.99~~")
		assert.Contains(t, out, "- **Rating:** 4.5/5 (1234 reviews)")
		assert.Contains(t, out, "- **Brand:** TestBrand")
		assert.Contains(t, out, "- **Badges:** ✓ Prime, ⭐ Amazon's Choice")
		assert.Contains(t, out, "### Description\n\nDesigned for **work**.")
	})

	t.Run("omits missing fields in markdown", func(t *testing.T) {
		t.Parallel()

		out, err := newFormatter(t, amzcrawl.FormatMarkdown).FormatProduct(minimalProduct())
		require.NoError(t, err)

		assert.NotContains(t, out, "**Price:**")
		assert.NotContains(t, out, "**Rating:**")
		assert.NotContains(t, out, "**Brand:**")
		assert.NotContains(t, out, "**Badges:**")
	})

	t.Run("renders CSV with header", func(t *testing.T) {
		t.Parallel()

		out, err := newFormatter(t, amzcrawl.FormatCSV).FormatProduct(fullProduct())
		require.NoError(t, err)

		lines := strings.Split(out, "\n")
		require.Len(t, lines, 2)
		assert.True(t, strings.HasPrefix(lines[0], "asin,title,price"))
		assert.True(t, strings.HasPrefix(lines[1], "B08N5WRWNW,"))
	})

	t.Run("renders a JSON object", func(t *testing.T) {
		t.Parallel()

		out, err := newFormatter(t, amzcrawl.FormatJSON).FormatProduct(fullProduct())
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out, "{"))
		assert.Contains(t, out, `"asin": "B08N5WRWNW"`)
		assert.Contains(t, out, `"brand": "TestBrand"`)
	})
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", format.Truncate("short", 10))
	assert.Equal(t, "exactly10!", format.Truncate("exactly10!", 10))
	assert.Equal(t, "abcdefg...", format.Truncate("abcdefghijkl", 10))
	assert.Equal(t, "Größe S...", format.Truncate("Größe S Schwarz", 10))
}
