package mock

import "github.com/fwojciec/amzcrawl"

var _ amzcrawl.Converter = (*Converter)(nil)

// Converter is a mock implementation of amzcrawl.Converter. A nil
// ConvertFn returns the description HTML unchanged.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	if c.ConvertFn == nil {
		return html, nil
	}
	return c.ConvertFn(html)
}
