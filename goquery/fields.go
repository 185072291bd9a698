package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/amzcrawl"
)

// priceFields selects the catalog fields used to read a price block.
// Empty fields are skipped.
type priceFields struct {
	current  Field
	original Field
	span     Field
	hidden   Field
}

var (
	cardPriceFields = priceFields{
		current:  FieldPriceCurrent,
		original: FieldPriceOriginal,
		span:     FieldPriceRange,
		hidden:   FieldPriceHidden,
	}
	productPriceFields = priceFields{
		current:  FieldProductPrice,
		original: FieldProductPriceOriginal,
	}
)

// extractPrice reads a price from scope. A "see price in cart" marker wins
// over any number; otherwise an unparsable current price means no price.
func extractPrice(c *Catalog, scope *goquery.Selection, region amzcrawl.Region, f priceFields) *amzcrawl.Price {
	current, found := c.Find(scope, f.current)

	if f.hidden != "" && c.Has(scope, f.hidden) {
		return amzcrawl.NewHiddenPrice(region.Currency)
	}
	if !found {
		return nil
	}
	text := current.First().Text()
	if isHiddenPriceText(text) {
		return amzcrawl.NewHiddenPrice(region.Currency)
	}

	value, ok := amzcrawl.ParsePrice(text, region)
	if !ok {
		return nil
	}
	price := amzcrawl.NewPrice(value, region.Currency)

	if f.original != "" {
		if text, ok := c.Text(scope, f.original); ok {
			if orig, ok := amzcrawl.ParsePrice(text, region); ok {
				price.Original = &orig
			}
		}
	}

	// A range needs its container plus a second, larger price.
	if f.span != "" && c.Has(scope, f.span) && current.Length() >= 2 {
		if high, ok := amzcrawl.ParsePrice(current.Eq(1).Text(), region); ok && high > value {
			price.Range = &amzcrawl.PriceRange{Min: value, Max: &high}
		}
	}

	return price
}

func isHiddenPriceText(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "cart") || strings.Contains(lower, "see price")
}

// extractRating reads the star value and review count. Without a parsable
// star value there is no rating; a missing count is zero.
func extractRating(c *Catalog, scope *goquery.Selection, stars, count Field) *amzcrawl.Rating {
	text, ok := c.Text(scope, stars)
	if !ok {
		return nil
	}
	value, ok := amzcrawl.ParseStars(text)
	if !ok {
		return nil
	}
	countText, _ := c.Text(scope, count)
	return amzcrawl.NewRating(value, amzcrawl.ParseReviewCount(countText))
}

var (
	brandPrefixes = []string{"by ", "Brand:", "Marke:", "Visit the", "Besuche den"}
	brandSuffixes = []string{"-Store", "Store"}
)

// cleanBrand strips byline wrappers such as "by Acme" or "Visit the Acme Store".
func cleanBrand(text string) string {
	brand := strings.TrimSpace(text)
	for _, p := range brandPrefixes {
		if strings.HasPrefix(brand, p) {
			brand = strings.TrimSpace(strings.TrimPrefix(brand, p))
			break
		}
	}
	for _, s := range brandSuffixes {
		if strings.HasSuffix(brand, s) {
			brand = strings.TrimSpace(strings.TrimSuffix(brand, s))
			break
		}
	}
	return brand
}

// absoluteURL resolves href against the region's storefront.
func absoluteURL(region amzcrawl.Region, href string) string {
	if strings.HasPrefix(href, "http") {
		return href
	}
	if !strings.HasPrefix(href, "/") {
		href = "/" + href
	}
	return region.BaseURL() + href
}

func productURL(region amzcrawl.Region, asin string) string {
	return region.BaseURL() + "/dp/" + asin
}
