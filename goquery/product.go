package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/amzcrawl"
)

var _ amzcrawl.ProductExtractor = (*ProductExtractor)(nil)

var (
	availablePhrases   = []string{"in stock", "available"}
	unavailablePhrases = []string{"unavailable", "out of stock"}
)

// ProductExtractor reads product detail pages.
type ProductExtractor struct {
	catalog  *Catalog
	detector *Detector
	opts     options
}

// NewProductExtractor creates a ProductExtractor backed by catalog.
func NewProductExtractor(catalog *Catalog, opts ...Option) *ProductExtractor {
	return &ProductExtractor{
		catalog:  catalog,
		detector: NewDetector(catalog),
		opts:     newOptions(opts),
	}
}

// ExtractProduct parses a product detail page for asin.
//
// When asin is empty the identifier is read from the page. The title is
// required; a page without one fails with EMISSINGFIELD. Every other field
// is optional.
func (e *ProductExtractor) ExtractProduct(html string, region amzcrawl.Region, asin string) (*amzcrawl.Product, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, amzcrawl.Errorf(amzcrawl.EINVALID, "failed to parse HTML: %v", err)
	}

	if kind := e.detector.DetectDocument(doc); kind != amzcrawl.BlockNone {
		e.opts.observer.ObserveBlock(kind)
		return nil, kind.Err()
	}

	c := e.catalog
	page := doc.Selection

	if asin == "" {
		asin = e.pageASIN(page)
		if asin == "" {
			return nil, amzcrawl.Errorf(amzcrawl.EMISSINGFIELD, "Could not find product ASIN")
		}
	}
	asin, err = amzcrawl.ValidateASIN(asin)
	if err != nil {
		return nil, err
	}

	title, ok := c.Text(page, FieldProductTitle)
	if !ok {
		return nil, amzcrawl.Errorf(amzcrawl.EMISSINGFIELD, "Could not find product title for %s", asin)
	}

	p := &amzcrawl.Product{
		ASIN:  asin,
		Title: title,
		URL:   productURL(region, asin),
	}

	if src, ok := c.Attr(page, FieldProductImage, "src", "data-old-hires"); ok {
		p.ImageURL = src
	}

	p.Price = extractPrice(c, page, region, productPriceFields)
	p.Rating = extractRating(c, page, FieldProductRating, FieldProductReviewCount)

	if brand, ok := c.Text(page, FieldProductBrand); ok {
		p.Brand = cleanBrand(brand)
	}

	if text, ok := c.Text(page, FieldProductAvailability); ok {
		p.InStock = inStock(text)
	}

	p.IsPrime = c.Has(page, FieldProductPrime)
	p.IsAmazonChoice = c.Has(page, FieldProductAmazonChoice)
	p.Features = e.features(page)
	p.Description = e.description(page, asin)

	return p, nil
}

// inStock reports whether availability text announces the item as
// available. "Currently unavailable" contains "available" and is checked
// first.
func inStock(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range unavailablePhrases {
		if strings.Contains(lower, phrase) {
			return false
		}
	}
	for _, phrase := range availablePhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// pageASIN reads the identifier from the hidden form input or the
// product details table.
func (e *ProductExtractor) pageASIN(page *goquery.Selection) string {
	sel, ok := e.catalog.Find(page, FieldProductASIN)
	if !ok {
		return ""
	}
	first := sel.First()
	if v, ok := first.Attr("value"); ok {
		return strings.TrimSpace(v)
	}
	return strings.TrimSpace(first.Text())
}

func (e *ProductExtractor) features(page *goquery.Selection) []string {
	sel, ok := e.catalog.Find(page, FieldProductFeatures)
	if !ok {
		return nil
	}
	var features []string
	sel.Each(func(_ int, s *goquery.Selection) {
		if text := strings.Join(strings.Fields(s.Text()), " "); text != "" {
			features = append(features, text)
		}
	})
	return features
}

func (e *ProductExtractor) description(page *goquery.Selection, asin string) string {
	sel, ok := e.catalog.Find(page, FieldProductDescription)
	if !ok {
		return ""
	}
	first := sel.First()
	text := strings.Join(strings.Fields(first.Text()), " ")
	if text == "" || e.opts.converter == nil {
		return text
	}

	fragment, err := goquery.OuterHtml(first)
	if err != nil {
		return text
	}
	md, err := e.opts.converter.Convert(fragment)
	if err != nil {
		e.opts.logger.Debug("description conversion failed", "asin", asin, "err", err)
		return text
	}
	return strings.TrimSpace(md)
}
