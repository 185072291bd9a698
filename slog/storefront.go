package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/amzcrawl"
)

// Ensure LoggingStorefront implements amzcrawl.Storefront.
var _ amzcrawl.Storefront = (*LoggingStorefront)(nil)

// LoggingStorefront wraps a Storefront with logging.
type LoggingStorefront struct {
	next   amzcrawl.Storefront
	logger *slog.Logger
}

// NewLoggingStorefront creates a new LoggingStorefront.
func NewLoggingStorefront(next amzcrawl.Storefront, logger *slog.Logger) *LoggingStorefront {
	return &LoggingStorefront{next: next, logger: logger}
}

// LoggingStorefrontFunc wraps every storefront fn returns.
func LoggingStorefrontFunc(fn amzcrawl.StorefrontFunc, logger *slog.Logger) amzcrawl.StorefrontFunc {
	return func(region amzcrawl.Region) (amzcrawl.Storefront, error) {
		s, err := fn(region)
		if err != nil {
			return nil, err
		}
		return NewLoggingStorefront(s, logger), nil
	}
}

func (s *LoggingStorefront) Search(ctx context.Context, query string, page int) (html string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("storefront search",
			"region", s.next.Region().Code,
			"query", query,
			"page", page,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Search(ctx, query, page)
}

func (s *LoggingStorefront) Product(ctx context.Context, asin string) (html string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("storefront product",
			"region", s.next.Region().Code,
			"asin", asin,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Product(ctx, asin)
}

func (s *LoggingStorefront) Region() amzcrawl.Region {
	return s.next.Region()
}
