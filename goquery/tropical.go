package goquery

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/amzcrawl"
)

var _ amzcrawl.TropicalExtractor = (*TropicalExtractor)(nil)

// TropicalBaseURL is the EU price comparison site.
const TropicalBaseURL = "https://tropicalprice.com"

// TropicalCurrency is the currency every comparison price is quoted in.
const TropicalCurrency = "EUR"

var (
	tropicalItem        = cascadia.MustCompile("li:has(a[href*='/product/'])")
	tropicalProductLink = cascadia.MustCompile("a[href*='/product/']")
	tropicalTitle       = cascadia.MustCompile("h2")
	tropicalPrice       = cascadia.MustCompile("a.price")
	tropicalTable       = cascadia.MustCompile("table.product-table")
	tropicalRow         = cascadia.MustCompile("tr")
	tropicalFlag        = cascadia.MustCompile("td.product-table-flag img[alt]")
	tropicalAmount      = cascadia.MustCompile("td.product-table-price span.product-table-price-amount")

	tropicalASIN = regexp.MustCompile(`/product/([A-Z0-9]{10})`)
)

// TropicalExtractor reads tropicalprice.com search and comparison pages.
type TropicalExtractor struct {
	opts options
}

// NewTropicalExtractor creates a TropicalExtractor.
func NewTropicalExtractor(opts ...Option) *TropicalExtractor {
	return &TropicalExtractor{opts: newOptions(opts)}
}

// ExtractSearch returns up to limit products in page order. A limit of
// zero or less means no limit. Items without a product link are skipped.
func (e *TropicalExtractor) ExtractSearch(html string, limit int) ([]*amzcrawl.TropicalProduct, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, amzcrawl.Errorf(amzcrawl.EINVALID, "failed to parse HTML: %v", err)
	}

	var products []*amzcrawl.TropicalProduct
	seen := make(map[string]bool)
	doc.FindMatcher(tropicalItem).EachWithBreak(func(_ int, item *goquery.Selection) bool {
		href, _ := item.FindMatcher(tropicalProductLink).First().Attr("href")
		asin := tropicalASINFromURL(href)
		if asin == "" || seen[asin] {
			return true
		}
		seen[asin] = true

		p := &amzcrawl.TropicalProduct{
			ASIN:     asin,
			Title:    strings.TrimSpace(item.FindMatcher(tropicalTitle).First().Text()),
			Currency: TropicalCurrency,
			URL:      TropicalBaseURL + href,
		}
		if p.Title == "" {
			p.Title = UnknownTitle
		}
		if price, ok := ParseEURPrice(item.FindMatcher(tropicalPrice).First().Text()); ok {
			p.Price = &price
		}
		products = append(products, p)

		return limit <= 0 || len(products) < limit
	})

	e.opts.logger.Debug("parsed tropical search", "products", len(products))
	return products, nil
}

// ExtractComparison returns the per-country offers for asin, cheapest first.
// Prices marked with "**" come from marketplace sellers.
func (e *TropicalExtractor) ExtractComparison(html string, asin string) (*amzcrawl.PriceComparison, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, amzcrawl.Errorf(amzcrawl.EINVALID, "failed to parse HTML: %v", err)
	}

	title := strings.TrimSpace(doc.FindMatcher(tropicalTitle).First().Text())
	if title == "" {
		title = "Unknown Product"
	}

	var prices []amzcrawl.CountryPrice
	doc.FindMatcher(tropicalTable).First().FindMatcher(tropicalRow).Each(func(_ int, row *goquery.Selection) {
		country, ok := row.FindMatcher(tropicalFlag).First().Attr("alt")
		if !ok || strings.TrimSpace(country) == "" {
			return
		}
		country = strings.ToUpper(strings.TrimSpace(country))

		amount := row.FindMatcher(tropicalAmount).First()
		if amount.Length() == 0 {
			return
		}
		text := amount.Text()
		price, ok := ParseEURPrice(text)
		if !ok {
			return
		}

		prices = append(prices, amzcrawl.CountryPrice{
			Country:       country,
			Price:         price,
			Currency:      TropicalCurrency,
			IsMarketplace: strings.Contains(text, "**"),
			AmazonURL:     "https://www.amazon." + storefrontTLD(country) + "/dp/" + asin,
		})
	})

	if len(prices) == 0 {
		e.opts.logger.Debug("no comparison prices", "asin", asin)
		return nil, amzcrawl.Errorf(amzcrawl.ENOTFOUND, "No EU prices found for %s", asin)
	}

	sort.SliceStable(prices, func(i, j int) bool { return prices[i].Price < prices[j].Price })

	return &amzcrawl.PriceComparison{
		ASIN:        asin,
		Title:       title,
		Prices:      prices,
		TotalStores: len(prices),
	}, nil
}

func tropicalASINFromURL(href string) string {
	m := tropicalASIN.FindStringSubmatch(href)
	if m == nil {
		return ""
	}
	return m[1]
}

func storefrontTLD(country string) string {
	switch country {
	case "UK", "CO.UK":
		return "co.uk"
	}
	return strings.ToLower(country)
}

// ParseEURPrice parses a price whose decimal separator is whichever of
// '.' or ',' comes last, so both "1.234,56 €" and "€1,234.56" read as
// 1234.56.
func ParseEURPrice(text string) (float64, bool) {
	cleaned := strings.Map(func(r rune) rune {
		if ('0' <= r && r <= '9') || r == '.' || r == ',' {
			return r
		}
		return -1
	}, text)
	if cleaned == "" {
		return 0, false
	}

	comma := strings.LastIndexByte(cleaned, ',')
	period := strings.LastIndexByte(cleaned, '.')
	switch {
	case comma > period:
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	case period > comma:
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
