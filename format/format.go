// Package format renders products as text tables, JSON, Markdown and CSV.
package format

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/fwojciec/amzcrawl"
)

// Ensure Formatter implements amzcrawl.Formatter at compile time.
var _ amzcrawl.Formatter = (*Formatter)(nil)

// NoProducts is printed in place of an empty table or Markdown list.
const NoProducts = "No products found."

// Column widths of the product table.
const (
	asinWidth   = 10
	priceWidth  = 12
	ratingWidth = 8
	primeWidth  = 5
	titleWidth  = 50

	markdownTitleWidth = 40
)

// CSVHeader is the first row of CSV output.
var CSVHeader = []string{
	"asin", "title", "price", "original_price", "currency", "rating", "reviews",
	"prime", "sponsored", "amazon_choice", "in_stock", "brand", "url",
}

// Formatter renders products in one text format. XML is handled by the
// etree package.
type Formatter struct {
	format amzcrawl.OutputFormat
}

// NewFormatter returns a Formatter for f.
func NewFormatter(f amzcrawl.OutputFormat) (*Formatter, error) {
	switch f {
	case amzcrawl.FormatTable, amzcrawl.FormatJSON, amzcrawl.FormatMarkdown, amzcrawl.FormatCSV:
		return &Formatter{format: f}, nil
	}
	return nil, amzcrawl.Errorf(amzcrawl.EINVALID, "format %q is not a text format", f)
}

// FormatProducts renders a list of products.
func (f *Formatter) FormatProducts(products []*amzcrawl.Product) (string, error) {
	if len(products) == 0 {
		switch f.format {
		case amzcrawl.FormatJSON:
			return "[]", nil
		case amzcrawl.FormatCSV:
			return strings.Join(CSVHeader, ","), nil
		}
		return NoProducts, nil
	}

	switch f.format {
	case amzcrawl.FormatJSON:
		return JSON(products)
	case amzcrawl.FormatMarkdown:
		return markdownProducts(products), nil
	case amzcrawl.FormatCSV:
		return csvProducts(products)
	}
	return tableProducts(products), nil
}

// FormatProduct renders one product in detail. CSV renders a header and a
// single row.
func (f *Formatter) FormatProduct(p *amzcrawl.Product) (string, error) {
	switch f.format {
	case amzcrawl.FormatJSON:
		return JSON(p)
	case amzcrawl.FormatMarkdown:
		return markdownProduct(p), nil
	case amzcrawl.FormatCSV:
		return csvProducts([]*amzcrawl.Product{p})
	}
	return tableProduct(p), nil
}

// JSON renders v as indented JSON.
func JSON(v any) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func tableProduct(p *amzcrawl.Product) string {
	var lines []string
	add := func(label, value string) {
		lines = append(lines, fmt.Sprintf("%-9s%s", label+":", value))
	}

	add("ASIN", p.ASIN)
	add("Title", p.Title)
	add("URL", p.URL)

	switch {
	case p.Price == nil:
		add("Price", "N/A")
	case p.Price.IsHidden:
		add("Price", "See price in cart")
	case p.Price.Original != nil:
		add("Price", fmt.Sprintf("%s %.2f (was %.2f)", p.Price.Currency, p.Price.Current, *p.Price.Original))
	default:
		add("Price", fmt.Sprintf("%s %.2f", p.Price.Currency, p.Price.Current))
	}

	if p.Rating != nil {
		add("Rating", fmt.Sprintf("%.1f/5 (%d reviews)", p.Rating.Stars, p.Rating.ReviewCount))
	} else {
		add("Rating", "N/A")
	}

	var badges []string
	if p.IsPrime {
		badges = append(badges, "Prime")
	}
	if p.IsAmazonChoice {
		badges = append(badges, "Amazon's Choice")
	}
	if p.IsSponsored {
		badges = append(badges, "Sponsored")
	}
	if len(badges) > 0 {
		add("Badges", strings.Join(badges, ", "))
	}

	if p.Brand != "" {
		add("Brand", p.Brand)
	}

	if p.InStock {
		add("Stock", "In Stock")
	} else {
		add("Stock", "Out of Stock")
	}

	if len(p.Features) > 0 {
		lines = append(lines, "", "Features:")
		for _, feature := range p.Features {
			lines = append(lines, "  - "+feature)
		}
	}

	return strings.Join(lines, "\n")
}

func tableProducts(products []*amzcrawl.Product) string {
	lines := []string{
		fmt.Sprintf("%-*s  %-*s  %-*s  %-*s  %s",
			asinWidth, "ASIN", priceWidth, "Price", ratingWidth, "Rating", primeWidth, "Prime", "Title"),
		strings.Join([]string{
			strings.Repeat("-", asinWidth),
			strings.Repeat("-", priceWidth),
			strings.Repeat("-", ratingWidth),
			strings.Repeat("-", primeWidth),
			strings.Repeat("-", titleWidth),
		}, "  "),
	}

	for _, p := range products {
		prime := "No"
		if p.IsPrime {
			prime = "Yes"
		}
		lines = append(lines, fmt.Sprintf("%-*s  %*s  %*s  %-*s  %s",
			asinWidth, p.ASIN,
			priceWidth, shortPrice(p),
			ratingWidth, shortRating(p),
			primeWidth, prime,
			Truncate(p.Title, titleWidth)))
	}

	lines = append(lines, "", fmt.Sprintf("Total: %d products", len(products)))
	return strings.Join(lines, "\n")
}

func markdownProduct(p *amzcrawl.Product) string {
	lines := []string{
		"## " + p.Title,
		"",
		"- **ASIN:** " + p.ASIN,
		fmt.Sprintf("- **URL:** [View on Amazon](%s)", p.URL),
	}

	if p.Price != nil {
		switch {
		case p.Price.IsHidden:
			lines = append(lines, "- **Price:** See price in cart")
		case p.Price.Original != nil:
			lines = append(lines, fmt.Sprintf("- **Price:** %s %.2f ~~%.2f~~", p.Price.Currency, p.Price.Current, *p.Price.Original))
		default:
			lines = append(lines, fmt.Sprintf("- **Price:** %s %.2f", p.Price.Currency, p.Price.Current))
		}
	}

	if p.Rating != nil {
		lines = append(lines, fmt.Sprintf("- **Rating:** %.1f/5 (%d reviews)", p.Rating.Stars, p.Rating.ReviewCount))
	}

	if p.Brand != "" {
		lines = append(lines, "- **Brand:** "+p.Brand)
	}

	var badges []string
	if p.IsPrime {
		badges = append(badges, "✓ Prime")
	}
	if p.IsAmazonChoice {
		badges = append(badges, "⭐ Amazon's Choice")
	}
	if len(badges) > 0 {
		lines = append(lines, "- **Badges:** "+strings.Join(badges, ", "))
	}

	if len(p.Features) > 0 {
		lines = append(lines, "", "### Features", "")
		for _, feature := range p.Features {
			lines = append(lines, "- "+feature)
		}
	}

	if p.Description != "" {
		lines = append(lines, "", "### Description", "", p.Description)
	}

	return strings.Join(lines, "\n")
}

func markdownProducts(products []*amzcrawl.Product) string {
	lines := []string{
		"| ASIN | Price | Rating | Prime | Title |",
		"|------|-------|--------|-------|-------|",
	}

	for _, p := range products {
		prime := ""
		if p.IsPrime {
			prime = "✓"
		}
		lines = append(lines, fmt.Sprintf("| %s | %s | %s | %s | [%s](%s) |",
			p.ASIN, shortPrice(p), shortRating(p), prime,
			Truncate(p.Title, markdownTitleWidth), p.URL))
	}

	lines = append(lines, "", fmt.Sprintf("*%d products found*", len(products)))
	return strings.Join(lines, "\n")
}

func csvProducts(products []*amzcrawl.Product) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(CSVHeader); err != nil {
		return "", err
	}
	for _, p := range products {
		var price, original, currency, rating, reviews string
		if p.Price != nil {
			currency = p.Price.Currency
			if !p.Price.IsHidden {
				price = formatFloat(p.Price.Current)
			}
			if p.Price.Original != nil {
				original = formatFloat(*p.Price.Original)
			}
		}
		if p.Rating != nil {
			rating = formatFloat(p.Rating.Stars)
			reviews = strconv.Itoa(p.Rating.ReviewCount)
		}

		if err := w.Write([]string{
			p.ASIN, p.Title, price, original, currency, rating, reviews,
			strconv.FormatBool(p.IsPrime),
			strconv.FormatBool(p.IsSponsored),
			strconv.FormatBool(p.IsAmazonChoice),
			strconv.FormatBool(p.InStock),
			p.Brand, p.URL,
		}); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// shortPrice is the price cell used by list views.
func shortPrice(p *amzcrawl.Product) string {
	switch {
	case p.Price == nil:
		return "N/A"
	case p.Price.IsHidden:
		return "In cart"
	}
	return fmt.Sprintf("%.2f", p.Price.Current)
}

func shortRating(p *amzcrawl.Product) string {
	if p.Rating == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.1f", p.Rating.Stars)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Truncate shortens s to at most width runes, ending in "..." when cut.
func Truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 3 {
		return string(r[:width])
	}
	return string(r[:width-3]) + "..."
}
