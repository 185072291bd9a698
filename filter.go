package amzcrawl

import (
	"fmt"
	"strings"
)

// Filter is a predicate over products.
type Filter interface {
	// Matches reports whether the product should be kept.
	Matches(p *Product) bool

	// Description returns a short human-readable summary of the filter.
	Description() string
}

// PriceFilter keeps products priced within [Min, Max].
// Products without a visible price pass.
type PriceFilter struct {
	Min *float64
	Max *float64
}

func (f *PriceFilter) Matches(p *Product) bool {
	price, ok := p.CurrentPrice()
	if !ok {
		return true
	}
	if f.Min != nil && price < *f.Min {
		return false
	}
	if f.Max != nil && price > *f.Max {
		return false
	}
	return true
}

func (f *PriceFilter) Description() string {
	switch {
	case f.Min != nil && f.Max != nil:
		return fmt.Sprintf("Price: $%.2f - $%.2f", *f.Min, *f.Max)
	case f.Min != nil:
		return fmt.Sprintf("Price: >= $%.2f", *f.Min)
	case f.Max != nil:
		return fmt.Sprintf("Price: <= $%.2f", *f.Max)
	}
	return "Price: any"
}

// RatingFilter keeps products rated at least Min stars.
// Unrated products pass.
type RatingFilter struct {
	Min float64
}

func (f *RatingFilter) Matches(p *Product) bool {
	stars, ok := p.Stars()
	if !ok {
		return true
	}
	return stars >= f.Min
}

func (f *RatingFilter) Description() string {
	return fmt.Sprintf("Rating: >= %.1f stars", f.Min)
}

// PrimeFilter keeps Prime-eligible products.
type PrimeFilter struct{}

func (PrimeFilter) Matches(p *Product) bool { return p.IsPrime }

func (PrimeFilter) Description() string { return "Prime only" }

// SponsoredFilter drops sponsored listings.
type SponsoredFilter struct{}

func (SponsoredFilter) Matches(p *Product) bool { return !p.IsSponsored }

func (SponsoredFilter) Description() string { return "Exclude sponsored" }

// KeywordFilter matches titles case-insensitively. Every Required keyword
// must appear and no Excluded keyword may appear.
type KeywordFilter struct {
	required []string
	excluded []string
}

// NewKeywordFilter returns a KeywordFilter. Keywords are lower-cased and
// blank entries dropped.
func NewKeywordFilter(required, excluded []string) *KeywordFilter {
	return &KeywordFilter{
		required: normalizeKeywords(required),
		excluded: normalizeKeywords(excluded),
	}
}

func (f *KeywordFilter) Matches(p *Product) bool {
	title := strings.ToLower(p.Title)
	for _, kw := range f.required {
		if !strings.Contains(title, kw) {
			return false
		}
	}
	for _, kw := range f.excluded {
		if strings.Contains(title, kw) {
			return false
		}
	}
	return true
}

func (f *KeywordFilter) Description() string {
	var parts []string
	if len(f.required) > 0 {
		parts = append(parts, "Must contain: "+strings.Join(f.required, ", "))
	}
	if len(f.excluded) > 0 {
		parts = append(parts, "Must not contain: "+strings.Join(f.excluded, ", "))
	}
	if len(parts) == 0 {
		return "Keywords: any"
	}
	return strings.Join(parts, "; ")
}

func normalizeKeywords(keywords []string) []string {
	var out []string
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			out = append(out, kw)
		}
	}
	return out
}

// FilterChain applies filters in order; a product is kept only if every
// filter matches. An empty chain keeps everything.
type FilterChain struct {
	filters []Filter
}

// FilterOptions selects the filters NewFilterChain builds.
// Zero values leave the corresponding filter out.
type FilterOptions struct {
	MinPrice        *float64
	MaxPrice        *float64
	MinRating       *float64
	PrimeOnly       bool
	NoSponsored     bool
	Keywords        []string
	ExcludeKeywords []string
}

// NewFilterChain builds a chain from opts.
func NewFilterChain(opts FilterOptions) *FilterChain {
	c := &FilterChain{}
	if opts.MinPrice != nil || opts.MaxPrice != nil {
		c.Add(&PriceFilter{Min: opts.MinPrice, Max: opts.MaxPrice})
	}
	if opts.MinRating != nil {
		c.Add(&RatingFilter{Min: *opts.MinRating})
	}
	if opts.PrimeOnly {
		c.Add(PrimeFilter{})
	}
	if opts.NoSponsored {
		c.Add(SponsoredFilter{})
	}
	if len(normalizeKeywords(opts.Keywords)) > 0 {
		c.Add(NewKeywordFilter(opts.Keywords, nil))
	}
	if len(normalizeKeywords(opts.ExcludeKeywords)) > 0 {
		c.Add(NewKeywordFilter(nil, opts.ExcludeKeywords))
	}
	return c
}

// Add appends a filter to the chain.
func (c *FilterChain) Add(f Filter) {
	c.filters = append(c.filters, f)
}

// Matches reports whether every filter keeps p.
func (c *FilterChain) Matches(p *Product) bool {
	if c == nil {
		return true
	}
	for _, f := range c.filters {
		if !f.Matches(p) {
			return false
		}
	}
	return true
}

// Apply returns the products that pass every filter, in input order.
// A nil chain keeps everything.
func (c *FilterChain) Apply(products []*Product) []*Product {
	out := make([]*Product, 0, len(products))
	for _, p := range products {
		if c.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}

// Len returns the number of filters.
func (c *FilterChain) Len() int {
	if c == nil {
		return 0
	}
	return len(c.filters)
}

// Descriptions returns each filter's description in chain order.
func (c *FilterChain) Descriptions() []string {
	if c == nil {
		return nil
	}
	out := make([]string, len(c.filters))
	for i, f := range c.filters {
		out[i] = f.Description()
	}
	return out
}
