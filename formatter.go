package amzcrawl

import (
	"strings"
)

// OutputFormat names a rendering of product records.
type OutputFormat string

// OutputFormat constants.
const (
	FormatTable    OutputFormat = "table"
	FormatJSON     OutputFormat = "json"
	FormatMarkdown OutputFormat = "markdown"
	FormatCSV      OutputFormat = "csv"
	FormatXML      OutputFormat = "xml"
)

// OutputFormats lists the supported formats.
var OutputFormats = []OutputFormat{FormatTable, FormatJSON, FormatMarkdown, FormatCSV, FormatXML}

// ParseOutputFormat resolves a format name, case-insensitively.
// "md" is accepted for markdown.
func ParseOutputFormat(s string) (OutputFormat, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "md" {
		return FormatMarkdown, nil
	}
	for _, f := range OutputFormats {
		if string(f) == name {
			return f, nil
		}
	}
	return "", Errorf(EINVALID, "Unknown format '%s'. Valid formats: table, json, markdown, csv, xml", s)
}

// Formatter renders products for output.
type Formatter interface {
	// FormatProducts renders a list of products.
	// An empty list renders the format's empty form, never an error.
	FormatProducts(products []*Product) (string, error)

	// FormatProduct renders a single product in detail.
	FormatProduct(p *Product) (string, error)
}
