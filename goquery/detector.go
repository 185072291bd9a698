package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/amzcrawl"
)

var _ amzcrawl.BlockDetector = (*Detector)(nil)

// Detector recognizes pages the marketplace serves instead of real content:
// the automated-traffic challenge and the "something went wrong" error page.
type Detector struct {
	catalog *Catalog
}

// NewDetector creates a Detector using the marker rules in catalog.
func NewDetector(catalog *Catalog) *Detector {
	return &Detector{catalog: catalog}
}

// Detect parses html and classifies it.
// Unparseable input is reported as BlockNone; the extractors surface parse
// failures themselves.
func (d *Detector) Detect(html string) amzcrawl.BlockKind {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return amzcrawl.BlockNone
	}
	return d.DetectDocument(doc)
}

// DetectDocument classifies an already parsed document.
// The challenge check runs before the error page check.
func (d *Detector) DetectDocument(doc *goquery.Document) amzcrawl.BlockKind {
	if d.catalog.Has(doc.Selection, FieldCaptcha) {
		return amzcrawl.BlockCaptcha
	}
	if d.catalog.Has(doc.Selection, FieldServicePage) {
		return amzcrawl.BlockServicePage
	}
	return amzcrawl.BlockNone
}
