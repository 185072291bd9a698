package amzcrawl

// Converter converts HTML fragments to Markdown.
type Converter interface {
	// Convert transforms an HTML fragment, such as a product description
	// block, into Markdown.
	Convert(html string) (string, error)
}
