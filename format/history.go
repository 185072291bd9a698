package format

import (
	"fmt"
	"strings"

	"github.com/fwojciec/amzcrawl"
)

// NoHistory is printed when no snapshots were recorded.
const NoHistory = "No price history recorded."

// History renders recorded snapshots as a table, in the order given.
func History(snaps []*amzcrawl.Snapshot) string {
	if len(snaps) == 0 {
		return NoHistory
	}

	lines := []string{
		fmt.Sprintf("%-20s  %-6s  %-10s  %12s  %6s  %s", "Observed", "Region", "ASIN", "Price", "Rating", "Stock"),
		strings.Join([]string{
			strings.Repeat("-", 20),
			strings.Repeat("-", 6),
			strings.Repeat("-", 10),
			strings.Repeat("-", 12),
			strings.Repeat("-", 6),
			strings.Repeat("-", 5),
		}, "  "),
	}

	for _, s := range snaps {
		price := "N/A"
		switch {
		case s.PriceHidden:
			price = "In cart"
		case s.Price != nil:
			price = fmt.Sprintf("%s %.2f", s.Currency, *s.Price)
		}
		rating := "N/A"
		if s.Stars != nil {
			rating = fmt.Sprintf("%.1f", *s.Stars)
		}
		stock := "Out"
		if s.InStock {
			stock = "In"
		}
		lines = append(lines, fmt.Sprintf("%-20s  %-6s  %-10s  %12s  %6s  %s",
			s.ObservedAt.UTC().Format("2006-01-02 15:04:05"), s.Region, s.ASIN, price, rating, stock))
	}

	lines = append(lines, "", fmt.Sprintf("Total: %d snapshots", len(snaps)))
	return strings.Join(lines, "\n")
}
