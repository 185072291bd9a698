package amzcrawl

import "context"

// Fetcher retrieves HTML from URLs.
type Fetcher interface {
	// Fetch returns the response body for url.
	// Implementations report non-success responses as errors, so a
	// returned body is always one the server considered successful.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// Pacer spaces out requests to the same host.
type Pacer interface {
	// Wait blocks until a request to host may be sent.
	// Returns the context error if ctx ends first.
	Wait(ctx context.Context, host string) error
}
