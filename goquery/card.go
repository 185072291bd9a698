package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/amzcrawl"
)

// UnknownTitle is used for cards whose title cannot be located.
const UnknownTitle = "Unknown"

// CardExtractor turns one search result card into a product.
type CardExtractor struct {
	catalog *Catalog
}

// NewCardExtractor creates a CardExtractor reading fields through catalog.
func NewCardExtractor(catalog *Catalog) *CardExtractor {
	return &CardExtractor{catalog: catalog}
}

// Extract reads the card rooted at card.
//
// A card with no ASIN attribute, or an empty one, is not a listing: Extract
// returns nil, nil and the caller skips it. A card whose ASIN is present but
// malformed returns an EINVALID error.
func (e *CardExtractor) Extract(card *goquery.Selection, region amzcrawl.Region) (*amzcrawl.Product, error) {
	raw, _ := card.Attr(ASINAttr)
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	asin, err := amzcrawl.ValidateASIN(raw)
	if err != nil {
		return nil, err
	}

	c := e.catalog
	p := &amzcrawl.Product{ASIN: asin}

	if title, ok := c.Text(card, FieldTitle); ok {
		p.Title = title
	} else {
		p.Title = UnknownTitle
	}

	if href, ok := c.Attr(card, FieldTitleLink, "href"); ok {
		p.URL = absoluteURL(region, href)
	} else {
		p.URL = productURL(region, asin)
	}

	if src, ok := c.Attr(card, FieldImage, "src"); ok {
		p.ImageURL = src
	}

	p.Price = extractPrice(c, card, region, cardPriceFields)
	p.Rating = extractRating(c, card, FieldRatingStars, FieldReviewCount)

	text := card.Text()
	p.IsSponsored = c.Has(card, FieldSponsored) ||
		strings.Contains(strings.ToLower(text), "sponsored")
	p.IsPrime = c.Has(card, FieldPrime)
	p.IsAmazonChoice = c.Has(card, FieldAmazonChoice) ||
		strings.Contains(text, "Amazon's Choice") ||
		strings.Contains(text, "Amazon Choice")

	if brand, ok := c.Text(card, FieldBrand); ok {
		p.Brand = cleanBrand(brand)
	}

	// Listed without a price is treated as unavailable.
	p.InStock = p.Price != nil

	return p, nil
}
