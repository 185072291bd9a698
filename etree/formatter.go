// Package etree renders products as XML documents using beevik/etree.
package etree

import (
	"strconv"

	"github.com/beevik/etree"
	"github.com/fwojciec/amzcrawl"
)

// Ensure Formatter implements amzcrawl.Formatter at compile time.
var _ amzcrawl.Formatter = (*Formatter)(nil)

// Formatter renders products as an indented XML document.
type Formatter struct {
	indent int
}

// NewFormatter creates a new Formatter.
func NewFormatter() *Formatter {
	return &Formatter{indent: 2}
}

// FormatProducts renders a <products> document. An empty list renders an
// empty root element.
func (f *Formatter) FormatProducts(products []*amzcrawl.Product) (string, error) {
	doc := newDocument()
	root := doc.CreateElement("products")
	root.CreateAttr("count", strconv.Itoa(len(products)))
	for _, p := range products {
		writeProduct(root, p)
	}
	return f.write(doc)
}

// FormatProduct renders a document with a single <product> root.
func (f *Formatter) FormatProduct(p *amzcrawl.Product) (string, error) {
	doc := newDocument()
	writeProduct(&doc.Element, p)
	return f.write(doc)
}

func newDocument() *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	return doc
}

func (f *Formatter) write(doc *etree.Document) (string, error) {
	doc.Indent(f.indent)
	return doc.WriteToString()
}

func writeProduct(parent *etree.Element, p *amzcrawl.Product) {
	el := parent.CreateElement("product")
	el.CreateAttr("asin", p.ASIN)

	el.CreateElement("title").SetText(p.Title)
	el.CreateElement("url").SetText(p.URL)
	if p.ImageURL != "" {
		el.CreateElement("image").SetText(p.ImageURL)
	}

	if p.Price != nil {
		price := el.CreateElement("price")
		price.CreateAttr("currency", p.Price.Currency)
		if p.Price.IsHidden {
			price.CreateAttr("hidden", "true")
		} else {
			price.CreateElement("current").SetText(formatFloat(p.Price.Current))
		}
		if p.Price.Original != nil {
			price.CreateElement("original").SetText(formatFloat(*p.Price.Original))
		}
		if pct, ok := p.DiscountPercent(); ok {
			price.CreateElement("discount").SetText(strconv.Itoa(pct))
		}
		if r := p.Price.Range; r != nil && r.Max != nil {
			price.CreateElement("max").SetText(formatFloat(*r.Max))
		}
	}

	if p.Rating != nil {
		rating := el.CreateElement("rating")
		rating.CreateAttr("stars", formatFloat(p.Rating.Stars))
		rating.CreateAttr("reviews", strconv.Itoa(p.Rating.ReviewCount))
	}

	flags := el.CreateElement("flags")
	flags.CreateAttr("prime", strconv.FormatBool(p.IsPrime))
	flags.CreateAttr("sponsored", strconv.FormatBool(p.IsSponsored))
	flags.CreateAttr("amazonChoice", strconv.FormatBool(p.IsAmazonChoice))
	flags.CreateAttr("inStock", strconv.FormatBool(p.InStock))

	if p.Brand != "" {
		el.CreateElement("brand").SetText(p.Brand)
	}

	if len(p.Features) > 0 {
		features := el.CreateElement("features")
		for _, f := range p.Features {
			features.CreateElement("feature").SetText(f)
		}
	}

	if p.Description != "" {
		el.CreateElement("description").SetText(p.Description)
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
