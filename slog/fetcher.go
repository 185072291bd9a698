// Package slog provides log/slog decorators for amzcrawl services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/amzcrawl"
)

// Ensure LoggingFetcher implements amzcrawl.Fetcher.
var _ amzcrawl.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher logs every page request made through the wrapped Fetcher.
type LoggingFetcher struct {
	next   amzcrawl.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next amzcrawl.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs successful fetches at debug level and failures as warnings
// tagged with their error code.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		attrs := []any{"url", url, "bytes", len(html), "duration", time.Since(begin)}
		if err != nil {
			f.logger.Warn("fetch failed", append(attrs, "code", amzcrawl.ErrorCode(err), "err", err)...)
			return
		}
		f.logger.Debug("fetched page", attrs...)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
