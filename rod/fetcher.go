// Package rod fetches storefront pages through headless Chrome using
// github.com/go-rod/rod. It serves pages that only render correctly with
// JavaScript or that refuse plain HTTP clients.
package rod

import (
	"context"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/fwojciec/amzcrawl"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Fetcher implements amzcrawl.Fetcher at compile time.
var _ amzcrawl.Fetcher = (*Fetcher)(nil)

// DefaultFetchTimeout bounds a single navigation.
const DefaultFetchTimeout = 45 * time.Second

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	browser      *browser
	timeout      time.Duration
	userAgent    string
	language     string
	proxy        string
	recycleAfter int64
	pacer        amzcrawl.Pacer
	isBlocked    func(html string) bool
	closed       atomic.Bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the timeout for a single page load.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides the browser's user agent.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithAcceptLanguage sets the Accept-Language the browser sends.
func WithAcceptLanguage(lang string) Option {
	return func(f *Fetcher) {
		f.language = lang
	}
}

// WithProxy routes browser traffic through proxy.
func WithProxy(proxy string) Option {
	return func(f *Fetcher) {
		f.proxy = proxy
	}
}

// WithPacer waits on p before every navigation.
func WithPacer(p amzcrawl.Pacer) Option {
	return func(f *Fetcher) {
		f.pacer = p
	}
}

// WithRecycleAfter replaces the browser after n pages. Zero disables
// recycling by count.
func WithRecycleAfter(n int64) Option {
	return func(f *Fetcher) {
		f.recycleAfter = n
	}
}

// WithBlockCheck inspects every rendered page. When fn reports a block page
// the browser is replaced before the next navigation. The block page itself
// is still returned so the caller can classify it.
func WithBlockCheck(fn func(html string) bool) Option {
	return func(f *Fetcher) {
		f.isBlocked = fn
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout:      DefaultFetchTimeout,
		recycleAfter: DefaultRecycleAfter,
	}
	for _, opt := range opts {
		opt(f)
	}

	b, err := newBrowser(f.proxy, f.recycleAfter)
	if err != nil {
		return nil, err
	}
	f.browser = b

	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	if f.closed.Load() {
		return "", amzcrawl.Errorf(amzcrawl.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if f.pacer != nil {
		u, err := url.Parse(rawURL)
		if err != nil {
			return "", amzcrawl.Errorf(amzcrawl.EINVALID, "invalid URL %q", rawURL)
		}
		if err := f.pacer.Wait(ctx, u.Host); err != nil {
			return "", err
		}
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	b, err := f.browser.get()
	if err != nil {
		return "", amzcrawl.Errorf(amzcrawl.EUNAVAILABLE, "%s", err)
	}
	page, err := b.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx)

	if f.userAgent != "" || f.language != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
			UserAgent:      f.userAgent,
			AcceptLanguage: f.language,
		}); err != nil {
			return "", err
		}
	}

	if err := page.Navigate(rawURL); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	html, err := page.HTML()
	if err != nil {
		return "", err
	}
	f.browser.done(f.isBlocked != nil && f.isBlocked(html))

	return html, nil
}

// LauncherPID returns the process ID of the current browser launcher.
func (f *Fetcher) LauncherPID() int {
	return f.browser.pid()
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.browser.close()
}
