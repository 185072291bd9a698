package amzcrawl

import (
	"context"
	"strings"
)

// TropicalProduct is a search hit on the EU price comparison site.
type TropicalProduct struct {
	ASIN     string   `json:"asin"`
	Title    string   `json:"title"`
	Price    *float64 `json:"price,omitempty"`
	Currency string   `json:"currency"`
	URL      string   `json:"url"`
}

// CountryPrice is the price of one ASIN in one EU storefront.
type CountryPrice struct {
	Country string  `json:"country"`
	Price   float64 `json:"price"`

	Currency string `json:"currency"`

	// IsMarketplace is true when the offer comes from a third-party seller.
	IsMarketplace bool   `json:"isMarketplace"`
	AmazonURL     string `json:"amazonUrl"`
}

// Flag returns the flag emoji for the country.
func (p CountryPrice) Flag() string {
	return CountryFlag(p.Country)
}

// PriceComparison lists an ASIN's prices across EU storefronts, cheapest first.
type PriceComparison struct {
	ASIN        string         `json:"asin"`
	Title       string         `json:"title"`
	Prices      []CountryPrice `json:"prices"`
	TotalStores int            `json:"totalStores"`
}

// Cheapest returns the lowest offer.
func (c *PriceComparison) Cheapest() (CountryPrice, bool) {
	if len(c.Prices) == 0 {
		return CountryPrice{}, false
	}
	return c.Prices[0], true
}

// MostExpensive returns the highest offer.
func (c *PriceComparison) MostExpensive() (CountryPrice, bool) {
	if len(c.Prices) == 0 {
		return CountryPrice{}, false
	}
	return c.Prices[len(c.Prices)-1], true
}

// MaxSavings returns the spread between the highest and lowest offer.
func (c *PriceComparison) MaxSavings() (float64, bool) {
	cheap, ok := c.Cheapest()
	if !ok {
		return 0, false
	}
	dear, _ := c.MostExpensive()
	return dear.Price - cheap.Price, true
}

// MaxSavingsPercent returns MaxSavings relative to the highest offer.
func (c *PriceComparison) MaxSavingsPercent() (float64, bool) {
	cheap, ok := c.Cheapest()
	if !ok {
		return 0, false
	}
	dear, _ := c.MostExpensive()
	if dear.Price <= 0 {
		return 0, false
	}
	return (dear.Price - cheap.Price) / dear.Price * 100, true
}

// CountryFlag maps an EU storefront country code to its flag emoji.
func CountryFlag(code string) string {
	switch strings.ToUpper(code) {
	case "DE":
		return "🇩🇪"
	case "ES":
		return "🇪🇸"
	case "FR":
		return "🇫🇷"
	case "IT":
		return "🇮🇹"
	case "NL":
		return "🇳🇱"
	case "BE":
		return "🇧🇪"
	case "AT":
		return "🇦🇹"
	case "PL":
		return "🇵🇱"
	case "SE":
		return "🇸🇪"
	case "UK", "CO.UK":
		return "🇬🇧"
	}
	return "🏳️"
}

// TropicalExtractor parses EU price comparison pages.
type TropicalExtractor interface {
	// ExtractSearch returns at most limit search hits.
	ExtractSearch(html string, limit int) ([]*TropicalProduct, error)

	// ExtractComparison returns the per-country prices for asin.
	// Returns ENOTFOUND when the page lists no prices.
	ExtractComparison(html string, asin string) (*PriceComparison, error)
}

// TropicalService searches and compares prices across EU storefronts.
type TropicalService interface {
	SearchTropical(ctx context.Context, query string, limit int) ([]*TropicalProduct, error)
	ComparePrices(ctx context.Context, asin string) (*PriceComparison, error)
}
