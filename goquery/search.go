package goquery

import (
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/amzcrawl"
)

var _ amzcrawl.SearchExtractor = (*SearchExtractor)(nil)

// Option configures the extractors in this package.
type Option func(*options)

type options struct {
	logger    *slog.Logger
	observer  amzcrawl.ExtractionObserver
	converter amzcrawl.Converter
}

// WithLogger sets the logger used for per-card diagnostics.
// Defaults to a logger that discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithObserver reports blocks and skipped cards to o.
func WithObserver(o amzcrawl.ExtractionObserver) Option {
	return func(opts *options) {
		opts.observer = o
	}
}

// WithConverter renders detail page descriptions as Markdown through c.
// Without a converter the description is kept as plain text.
func WithConverter(c amzcrawl.Converter) Option {
	return func(o *options) {
		o.converter = c
	}
}

func newOptions(opts []Option) options {
	o := options{
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

type nopObserver struct{}

func (nopObserver) ObserveBlock(amzcrawl.BlockKind) {}
func (nopObserver) ObserveSkippedCard(string)       {}

// SearchExtractor reads search result pages.
type SearchExtractor struct {
	catalog  *Catalog
	detector *Detector
	cards    *CardExtractor
	opts     options
}

// NewSearchExtractor creates a SearchExtractor backed by catalog.
func NewSearchExtractor(catalog *Catalog, opts ...Option) *SearchExtractor {
	return &SearchExtractor{
		catalog:  catalog,
		detector: NewDetector(catalog),
		cards:    NewCardExtractor(catalog),
		opts:     newOptions(opts),
	}
}

// ExtractSearch parses one search results page.
//
// Block pages fail the whole call with EBLOCKED. Cards are extracted in
// display order; a card without an ASIN is dropped silently and a card that
// fails extraction is logged and dropped.
func (e *SearchExtractor) ExtractSearch(html string, region amzcrawl.Region, query string, page int) (*amzcrawl.SearchResults, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, amzcrawl.Errorf(amzcrawl.EINVALID, "failed to parse HTML: %v", err)
	}

	if kind := e.detector.DetectDocument(doc); kind != amzcrawl.BlockNone {
		e.opts.observer.ObserveBlock(kind)
		return nil, kind.Err()
	}

	results := amzcrawl.NewSearchResults(query, region.Code)
	results.Page = page
	results.TotalResults = e.totalResults(doc)

	if cards, ok := e.catalog.Find(doc.Selection, FieldResult); ok {
		cards.Each(func(i int, card *goquery.Selection) {
			p, err := e.cards.Extract(card, region)
			switch {
			case err != nil:
				e.opts.logger.Warn("skipping card", "index", i, "err", amzcrawl.ErrorMessage(err))
				e.opts.observer.ObserveSkippedCard("invalid")
			case p == nil:
				e.opts.logger.Debug("skipping card without asin", "index", i)
				e.opts.observer.ObserveSkippedCard("no_asin")
			default:
				results.Products = append(results.Products, p)
			}
		})
	}

	results.HasMore = e.catalog.Has(doc.Selection, FieldNextPage)

	if results.IsEmpty() && e.catalog.Has(doc.Selection, FieldNoResults) {
		e.opts.logger.Info("no results for query", "query", query, "page", page)
	}

	e.opts.logger.Debug("parsed search page",
		"query", query,
		"page", page,
		"products", results.Count(),
		"has_more", results.HasMore,
	)

	return results, nil
}

// totalResults reads counts such as "1-48 of over 10,000 results for".
func (e *SearchExtractor) totalResults(doc *goquery.Document) *int {
	text, ok := e.catalog.Text(doc.Selection, FieldTotalResults)
	if !ok {
		return nil
	}
	_, after, found := strings.Cut(text, "of")
	if !found {
		return nil
	}
	// The query is echoed after "results for" and may contain digits.
	if i := strings.Index(after, "result"); i >= 0 {
		after = after[:i]
	}
	digits := strings.Map(func(r rune) rune {
		if '0' <= r && r <= '9' {
			return r
		}
		return -1
	}, after)
	n, err := strconv.Atoi(digits)
	if err != nil {
		return nil
	}
	return &n
}
