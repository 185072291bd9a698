package amzcrawl

// BlockKind classifies a page served in place of real content.
type BlockKind int

// BlockKind constants.
const (
	// BlockNone means the page carries no blocking markers.
	BlockNone BlockKind = iota

	// BlockCaptcha is an automated-traffic challenge.
	BlockCaptcha

	// BlockServicePage is the "service temporarily degraded" error page.
	BlockServicePage
)

// String returns a short name for the kind, suitable for logs and metrics.
func (k BlockKind) String() string {
	switch k {
	case BlockCaptcha:
		return "captcha"
	case BlockServicePage:
		return "service_page"
	default:
		return "none"
	}
}

// Err returns the EBLOCKED error describing k, or nil for BlockNone.
// The message tells the two cases apart so callers can suggest the
// right remedy.
func (k BlockKind) Err() error {
	switch k {
	case BlockCaptcha:
		return Errorf(EBLOCKED, "CAPTCHA detected. Amazon is blocking requests. Try using a proxy or waiting before retrying.")
	case BlockServicePage:
		return Errorf(EBLOCKED, "Amazon error page detected (503). The service may be temporarily unavailable.")
	default:
		return nil
	}
}

// BlockDetector recognizes challenge and error pages.
type BlockDetector interface {
	// Detect returns BlockNone for a normal page.
	Detect(html string) BlockKind
}

// SearchExtractor turns a search results page into records.
type SearchExtractor interface {
	// ExtractSearch returns the products on one results page in display order.
	// Returns EBLOCKED when the page is a challenge or error page.
	// Malformed listings are dropped without error.
	ExtractSearch(html string, region Region, query string, page int) (*SearchResults, error)
}

// ProductExtractor turns a product detail page into a record.
type ProductExtractor interface {
	// ExtractProduct returns the product described by the page.
	// Returns EBLOCKED for challenge or error pages and EMISSINGFIELD
	// when the page has no title.
	ExtractProduct(html string, region Region, asin string) (*Product, error)
}

// ExtractionObserver is notified of outcomes that do not surface as errors
// or records, such as dropped listings.
type ExtractionObserver interface {
	// ObserveBlock is called when a page is rejected as a block page.
	ObserveBlock(kind BlockKind)

	// ObserveSkippedCard is called for every search card that yields no
	// record. Reason is "no_asin" or "invalid".
	ObserveSkippedCard(reason string)
}
