package amzcrawl

import (
	"math"
	"strings"
)

// Product is one listing extracted from a search card or a detail page.
type Product struct {
	ASIN     string  `json:"asin"`
	Title    string  `json:"title"`
	URL      string  `json:"url"`
	ImageURL string  `json:"imageUrl,omitempty"`
	Price    *Price  `json:"price,omitempty"`
	Rating   *Rating `json:"rating,omitempty"`

	IsSponsored    bool `json:"isSponsored"`
	IsPrime        bool `json:"isPrime"`
	IsAmazonChoice bool `json:"isAmazonChoice"`
	InStock        bool `json:"inStock"`

	Brand string `json:"brand,omitempty"`

	// Features and Description are only populated from detail pages.
	Features    []string `json:"features,omitempty"`
	Description string   `json:"description,omitempty"`
}

// CurrentPrice returns the current price. A hidden price is reported as absent.
func (p *Product) CurrentPrice() (float64, bool) {
	if p.Price == nil || p.Price.IsHidden {
		return 0, false
	}
	return p.Price.Current, true
}

// Stars returns the star rating if the product is rated.
func (p *Product) Stars() (float64, bool) {
	if p.Rating == nil {
		return 0, false
	}
	return p.Rating.Stars, true
}

// DiscountPercent returns the rounded discount relative to the original
// price. The result is capped at 99 and floored at 0; no check is made
// that the original price exceeds the current one.
func (p *Product) DiscountPercent() (int, bool) {
	if p.Price == nil || p.Price.Original == nil {
		return 0, false
	}
	orig := *p.Price.Original
	pct := math.Round((orig - p.Price.Current) / orig * 100)
	switch {
	case math.IsNaN(pct), pct < 0:
		return 0, true
	case pct > 99:
		return 99, true
	}
	return int(pct), true
}

// Price holds current, original and range pricing for a product.
//
// When IsHidden is true the storefront requires adding the item to the cart
// to see the price, and Current carries no meaning.
type Price struct {
	Current  float64     `json:"current"`
	Original *float64    `json:"original,omitempty"`
	Currency string      `json:"currency"`
	Range    *PriceRange `json:"range,omitempty"`
	IsHidden bool        `json:"isHidden"`
}

// PriceRange is a "from - to" price span. Min mirrors Price.Current.
type PriceRange struct {
	Min float64  `json:"min"`
	Max *float64 `json:"max,omitempty"`
}

// NewPrice returns a plain price.
func NewPrice(current float64, currency string) *Price {
	return &Price{Current: current, Currency: currency}
}

// NewDiscountedPrice returns a price with a pre-discount original value.
func NewDiscountedPrice(current, original float64, currency string) *Price {
	return &Price{Current: current, Original: &original, Currency: currency}
}

// NewHiddenPrice returns a price that must be revealed in the cart.
func NewHiddenPrice(currency string) *Price {
	return &Price{Currency: currency, IsHidden: true}
}

// NewRangePrice returns a price spanning low to high. A nil high is an open range.
func NewRangePrice(low float64, high *float64, currency string) *Price {
	return &Price{
		Current:  low,
		Currency: currency,
		Range:    &PriceRange{Min: low, Max: high},
	}
}

// Rating is a star rating with its review count.
type Rating struct {
	Stars       float64 `json:"stars"`
	ReviewCount int     `json:"reviewCount"`
}

// NewRating returns a Rating with stars clamped to [0, 5] and a
// non-negative review count.
func NewRating(stars float64, reviewCount int) *Rating {
	return &Rating{
		Stars:       math.Max(0, math.Min(5, stars)),
		ReviewCount: max(0, reviewCount),
	}
}

// SearchResults is one page of search results.
type SearchResults struct {
	Query        string     `json:"query"`
	Region       string     `json:"region"`
	TotalResults *int       `json:"totalResults,omitempty"`
	Products     []*Product `json:"products"`
	Page         int        `json:"page"`
	HasMore      bool       `json:"hasMore"`
}

// NewSearchResults returns an empty first page for query in region.
func NewSearchResults(query, region string) *SearchResults {
	return &SearchResults{
		Query:    query,
		Region:   region,
		Products: []*Product{},
		Page:     1,
	}
}

// Count returns the number of products on the page.
func (r *SearchResults) Count() int {
	return len(r.Products)
}

// IsEmpty reports whether the page has no products.
func (r *SearchResults) IsEmpty() bool {
	return len(r.Products) == 0
}

// ASINLength is the fixed length of a listing identifier.
const ASINLength = 10

// ValidateASIN normalizes an ASIN to upper case and checks it is
// ten ASCII letters or digits.
func ValidateASIN(s string) (string, error) {
	asin := strings.ToUpper(strings.TrimSpace(s))
	if !isASIN(asin) {
		return "", Errorf(EINVALID, "Invalid ASIN format: '%s'. ASIN should be 10 alphanumeric characters.", asin)
	}
	return asin, nil
}

func isASIN(s string) bool {
	if len(s) != ASINLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !('0' <= c && c <= '9' || 'A' <= c && c <= 'Z' || 'a' <= c && c <= 'z') {
			return false
		}
	}
	return true
}
