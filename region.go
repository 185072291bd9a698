package amzcrawl

import (
	"strings"
)

// DefaultRegionCode is the region used when none is configured.
const DefaultRegionCode = "us"

// Region is a regional storefront with its fixed locale conventions.
type Region struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Domain   string `json:"domain"`
	Currency string `json:"currency"`

	// CommaDecimal is true when the storefront writes "1.234,56"
	// rather than "1,234.56".
	CommaDecimal bool `json:"commaDecimal"`

	// AcceptLanguage is the header value a browser in this region sends.
	AcceptLanguage string `json:"acceptLanguage"`
}

// BaseURL returns the storefront root, e.g. "https://www.amazon.de".
func (r Region) BaseURL() string {
	return "https://www." + r.Domain
}

// String returns the region code.
func (r Region) String() string {
	return r.Code
}

// IsZero reports whether r is the zero Region.
func (r Region) IsZero() bool {
	return r.Code == ""
}

// Locales is the read-only table of supported regions.
// It is built once with NewLocales and shared; it is never mutated
// after construction, so it is safe for concurrent use.
type Locales struct {
	regions []Region
	byCode  map[string]int
	aliases map[string]string
}

// NewLocales builds the table of supported regions.
func NewLocales() *Locales {
	regions := []Region{
		{Code: "us", Name: "United States", Domain: "amazon.com", Currency: "USD", AcceptLanguage: "en-US,en;q=0.9"},
		{Code: "uk", Name: "United Kingdom", Domain: "amazon.co.uk", Currency: "GBP", AcceptLanguage: "en-GB,en;q=0.9"},
		{Code: "de", Name: "Germany", Domain: "amazon.de", Currency: "EUR", CommaDecimal: true, AcceptLanguage: "de-DE,de;q=0.9,en;q=0.8"},
		{Code: "fr", Name: "France", Domain: "amazon.fr", Currency: "EUR", CommaDecimal: true, AcceptLanguage: "fr-FR,fr;q=0.9,en;q=0.8"},
		{Code: "es", Name: "Spain", Domain: "amazon.es", Currency: "EUR", CommaDecimal: true, AcceptLanguage: "es-ES,es;q=0.9,en;q=0.8"},
		{Code: "it", Name: "Italy", Domain: "amazon.it", Currency: "EUR", CommaDecimal: true, AcceptLanguage: "it-IT,it;q=0.9,en;q=0.8"},
		{Code: "ca", Name: "Canada", Domain: "amazon.ca", Currency: "CAD", AcceptLanguage: "en-US,en;q=0.9"},
		{Code: "au", Name: "Australia", Domain: "amazon.com.au", Currency: "AUD", AcceptLanguage: "en-US,en;q=0.9"},
		{Code: "jp", Name: "Japan", Domain: "amazon.co.jp", Currency: "JPY", AcceptLanguage: "ja-JP,ja;q=0.9,en;q=0.8"},
		{Code: "in", Name: "India", Domain: "amazon.in", Currency: "INR", AcceptLanguage: "en-IN,en;q=0.9,hi;q=0.8"},
		{Code: "br", Name: "Brazil", Domain: "amazon.com.br", Currency: "BRL", CommaDecimal: true, AcceptLanguage: "pt-BR,pt;q=0.9,en;q=0.8"},
		{Code: "mx", Name: "Mexico", Domain: "amazon.com.mx", Currency: "MXN", AcceptLanguage: "es-ES,es;q=0.9,en;q=0.8"},
		{Code: "nl", Name: "Netherlands", Domain: "amazon.nl", Currency: "EUR", CommaDecimal: true, AcceptLanguage: "nl-NL,nl;q=0.9,en;q=0.8"},
		{Code: "se", Name: "Sweden", Domain: "amazon.se", Currency: "SEK", CommaDecimal: true, AcceptLanguage: "sv-SE,sv;q=0.9,en;q=0.8"},
		{Code: "pl", Name: "Poland", Domain: "amazon.pl", Currency: "PLN", CommaDecimal: true, AcceptLanguage: "pl-PL,pl;q=0.9,en;q=0.8"},
	}

	l := &Locales{
		regions: regions,
		byCode:  make(map[string]int, len(regions)),
		aliases: map[string]string{
			"usa":            "us",
			"united states":  "us",
			"gb":             "uk",
			"united kingdom": "uk",
			"germany":        "de",
			"france":         "fr",
			"spain":          "es",
			"italy":          "it",
			"canada":         "ca",
			"australia":      "au",
			"japan":          "jp",
			"india":          "in",
			"brazil":         "br",
			"mexico":         "mx",
			"netherlands":    "nl",
			"sweden":         "se",
			"poland":         "pl",
		},
	}
	for i, r := range regions {
		l.byCode[r.Code] = i
	}
	return l
}

// Lookup returns the region with the exact code.
func (l *Locales) Lookup(code string) (Region, bool) {
	i, ok := l.byCode[code]
	if !ok {
		return Region{}, false
	}
	return l.regions[i], true
}

// Parse resolves a region code or country name, case-insensitively.
// Returns EINVALID listing the valid codes when s matches nothing.
func (l *Locales) Parse(s string) (Region, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if alias, ok := l.aliases[key]; ok {
		key = alias
	}
	if r, ok := l.Lookup(key); ok {
		return r, nil
	}
	return Region{}, Errorf(EINVALID, "Unknown region '%s'. Valid regions: %s", s, strings.Join(l.Codes(), ", "))
}

// Default returns the default region.
func (l *Locales) Default() Region {
	r, _ := l.Lookup(DefaultRegionCode)
	return r
}

// All returns every supported region in table order.
func (l *Locales) All() []Region {
	out := make([]Region, len(l.regions))
	copy(out, l.regions)
	return out
}

// Codes returns the supported region codes in table order.
func (l *Locales) Codes() []string {
	codes := make([]string, len(l.regions))
	for i, r := range l.regions {
		codes[i] = r.Code
	}
	return codes
}
