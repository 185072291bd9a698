package mock

import "github.com/fwojciec/amzcrawl"

var _ amzcrawl.Formatter = (*Formatter)(nil)

// Formatter is a mock implementation of amzcrawl.Formatter.
type Formatter struct {
	FormatProductsFn func(products []*amzcrawl.Product) (string, error)
	FormatProductFn  func(p *amzcrawl.Product) (string, error)
}

func (f *Formatter) FormatProducts(products []*amzcrawl.Product) (string, error) {
	return f.FormatProductsFn(products)
}

func (f *Formatter) FormatProduct(p *amzcrawl.Product) (string, error) {
	return f.FormatProductFn(p)
}
