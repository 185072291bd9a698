package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/amzcrawl"
)

var (
	_ amzcrawl.SearchExtractor  = (*LoggingSearchExtractor)(nil)
	_ amzcrawl.ProductExtractor = (*LoggingProductExtractor)(nil)
)

// LoggingSearchExtractor wraps a SearchExtractor with logging.
type LoggingSearchExtractor struct {
	next   amzcrawl.SearchExtractor
	logger *slog.Logger
}

// NewLoggingSearchExtractor creates a new LoggingSearchExtractor.
func NewLoggingSearchExtractor(next amzcrawl.SearchExtractor, logger *slog.Logger) *LoggingSearchExtractor {
	return &LoggingSearchExtractor{next: next, logger: logger}
}

// ExtractSearch logs the page outcome and delegates to the wrapped extractor.
func (e *LoggingSearchExtractor) ExtractSearch(html string, region amzcrawl.Region, query string, page int) (results *amzcrawl.SearchResults, err error) {
	defer func(begin time.Time) {
		var products int
		var hasMore bool
		if results != nil {
			products = results.Count()
			hasMore = results.HasMore
		}
		e.logger.Info("extract search",
			"region", region.Code,
			"page", page,
			"products", products,
			"has_more", hasMore,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractSearch(html, region, query, page)
}

// LoggingProductExtractor wraps a ProductExtractor with logging.
type LoggingProductExtractor struct {
	next   amzcrawl.ProductExtractor
	logger *slog.Logger
}

// NewLoggingProductExtractor creates a new LoggingProductExtractor.
func NewLoggingProductExtractor(next amzcrawl.ProductExtractor, logger *slog.Logger) *LoggingProductExtractor {
	return &LoggingProductExtractor{next: next, logger: logger}
}

// ExtractProduct logs the outcome and delegates to the wrapped extractor.
func (e *LoggingProductExtractor) ExtractProduct(html string, region amzcrawl.Region, asin string) (p *amzcrawl.Product, err error) {
	defer func(begin time.Time) {
		e.logger.Info("extract product",
			"region", region.Code,
			"asin", asin,
			"found", p != nil,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractProduct(html, region, asin)
}
