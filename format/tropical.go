package format

import (
	"fmt"
	"strings"

	"github.com/fwojciec/amzcrawl"
)

// NoTropicalProducts is printed for an empty price comparison search.
const NoTropicalProducts = "No products found on TropicalPrice."

const tropicalTitleWidth = 55

// TropicalProducts renders price comparison search hits as a numbered table.
func TropicalProducts(products []*amzcrawl.TropicalProduct) string {
	if len(products) == 0 {
		return NoTropicalProducts
	}

	rule := strings.Repeat("-", 80)
	lines := []string{
		"TropicalPrice Search Results:",
		strings.Repeat("=", 80),
		fmt.Sprintf("%-3s %-12s %-10s %s", "#", "ASIN", "Price", "Title"),
		rule,
	}

	for i, p := range products {
		price := "N/A"
		if p.Price != nil {
			price = fmt.Sprintf("€%.2f", *p.Price)
		}
		lines = append(lines, fmt.Sprintf("%-3d %-12s %-10s %s",
			i+1, p.ASIN, price, Truncate(p.Title, tropicalTitleWidth)))
	}

	lines = append(lines,
		"",
		"💡 To compare EU prices: amzcrawl compare <ASIN>",
		"💡 TropicalPrice URL: https://tropicalprice.com/product/<ASIN>",
	)
	return strings.Join(lines, "\n")
}

// Comparison renders an EU price comparison, cheapest first, with the
// surcharge of each storefront over the cheapest one.
func Comparison(c *amzcrawl.PriceComparison) string {
	lines := []string{"📦 " + c.Title, ""}

	cheapest, ok := c.Cheapest()
	if ok {
		lines = append(lines,
			fmt.Sprintf("Best at %s %s: €%.2f%s", cheapest.Flag(), cheapest.Country, cheapest.Price, marketplaceMark(cheapest)),
			"🛒 "+cheapest.AmazonURL,
			"",
		)
	}

	for _, p := range c.Prices {
		extra := p.Price - cheapest.Price
		if extra == 0 {
			lines = append(lines, fmt.Sprintf("🏆%s %s: €%.2f%s", p.Flag(), p.Country, p.Price, marketplaceMark(p)))
			continue
		}
		var pct float64
		if cheapest.Price > 0 {
			pct = extra / cheapest.Price * 100
		}
		lines = append(lines, fmt.Sprintf("  %s %s: €%.2f (+€%.0f, +%.0f%%)%s",
			p.Flag(), p.Country, p.Price, extra, pct, marketplaceMark(p)))
	}

	savings, ok1 := c.MaxSavings()
	pct, ok2 := c.MaxSavingsPercent()
	if ok1 && ok2 && savings > 0 {
		lines = append(lines, "", fmt.Sprintf("💰 Max savings: €%.2f (%.0f%%)", savings, pct))
	}

	lines = append(lines, "", "🔗 Links:")
	for _, p := range c.Prices {
		lines = append(lines, fmt.Sprintf("   %s %s: %s", p.Flag(), p.Country, p.AmazonURL))
	}

	return strings.Join(lines, "\n")
}

// marketplaceMark flags offers from third-party sellers.
func marketplaceMark(p amzcrawl.CountryPrice) string {
	if p.IsMarketplace {
		return " ⚠️"
	}
	return ""
}
