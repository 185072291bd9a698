// Package http provides net/http implementations of amzcrawl's transport
// interfaces and the JSON API server.
package http

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/amzcrawl"
	"golang.org/x/net/publicsuffix"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 30 * time.Second

// DefaultUserAgent is a current desktop Chrome user agent.
const DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// Ensure Fetcher implements amzcrawl.Fetcher at compile time.
var _ amzcrawl.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML over HTTP with browser-like headers, a cookie jar
// and optional per-host pacing.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	transport http.RoundTripper
	proxy     *url.URL
	header    http.Header
	pacer     amzcrawl.Pacer
	logger    *slog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (30s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithProxy routes requests through u. Both HTTP and SOCKS5 proxies work.
func WithProxy(u *url.URL) Option {
	return func(f *Fetcher) {
		f.proxy = u
	}
}

// WithTransport replaces the underlying round tripper. WithProxy is
// ignored when a transport is set.
func WithTransport(rt http.RoundTripper) Option {
	return func(f *Fetcher) {
		f.transport = rt
	}
}

// WithHeader sets a request header, replacing the default value.
func WithHeader(key, value string) Option {
	return func(f *Fetcher) {
		f.header.Set(key, value)
	}
}

// WithAcceptLanguage sets the Accept-Language header.
func WithAcceptLanguage(lang string) Option {
	return WithHeader("Accept-Language", lang)
}

// WithPacer waits on p before every request.
func WithPacer(p amzcrawl.Pacer) Option {
	return func(f *Fetcher) {
		f.pacer = p
	}
}

// WithLogger sets the logger used for redirect warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
		header:  defaultHeader(),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(f)
	}

	transport := f.transport
	if transport == nil {
		t := http.DefaultTransport.(*http.Transport).Clone()
		if f.proxy != nil {
			t.Proxy = http.ProxyURL(f.proxy)
		}
		transport = t
	}

	jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})

	f.client = &http.Client{
		Timeout:   f.timeout,
		Transport: transport,
		Jar:       jar,
	}

	return f
}

func defaultHeader() http.Header {
	h := make(http.Header)
	h.Set("User-Agent", DefaultUserAgent)
	h.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8")
	h.Set("Accept-Language", "en-US,en;q=0.9")
	h.Set("Cache-Control", "no-cache")
	h.Set("Pragma", "no-cache")
	h.Set("Sec-Ch-Ua", `"Chromium";v="131", "Not_A Brand";v="24"`)
	h.Set("Sec-Ch-Ua-Mobile", "?0")
	h.Set("Sec-Ch-Ua-Platform", `"macOS"`)
	h.Set("Sec-Fetch-Dest", "document")
	h.Set("Sec-Fetch-Mode", "navigate")
	h.Set("Sec-Fetch-Site", "none")
	h.Set("Sec-Fetch-User", "?1")
	h.Set("Upgrade-Insecure-Requests", "1")
	return h
}

// ParseProxy validates a proxy URL such as "http://host:8080" or
// "socks5://host:1080".
func ParseProxy(s string) (*url.URL, error) {
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return nil, amzcrawl.Errorf(amzcrawl.EINVALID, "Invalid proxy URL: '%s'", s)
	}
	switch u.Scheme {
	case "http", "https", "socks5", "socks5h":
		return u, nil
	}
	return nil, amzcrawl.Errorf(amzcrawl.EINVALID, "Unsupported proxy scheme '%s'. Use http, https or socks5.", u.Scheme)
}

// Fetch retrieves the HTML content from the given URL.
//
// A 503 is reported as EUNAVAILABLE, a 404 as ENOTFOUND and any other
// non-2xx status as an internal error naming the status.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	req.Header = f.header.Clone()

	if f.pacer != nil {
		if err := f.pacer.Wait(ctx, req.URL.Host); err != nil {
			return "", err
		}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusServiceUnavailable:
		return "", amzcrawl.Errorf(amzcrawl.EUNAVAILABLE, "Rate limited by Amazon. Try increasing --delay or using a proxy.")
	case resp.StatusCode == http.StatusNotFound:
		return "", amzcrawl.Errorf(amzcrawl.ENOTFOUND, "HTTP %d for %s", resp.StatusCode, rawURL)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, rawURL)
	}

	if resp.Request != nil && !sameSite(req.URL.Host, resp.Request.URL.Host) {
		f.logger.Warn("redirected to a different domain; your IP may be associated with another region",
			"requested", req.URL.Host,
			"final", resp.Request.URL.String(),
		)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// Close releases idle connections.
func (f *Fetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}

// sameSite reports whether two hosts share a registrable domain, so
// www.amazon.de and smile.amazon.de match while amazon.com does not.
func sameSite(a, b string) bool {
	a, b = hostname(a), hostname(b)
	if a == b {
		return true
	}
	ea, err := publicsuffix.EffectiveTLDPlusOne(a)
	if err != nil {
		return false
	}
	eb, err := publicsuffix.EffectiveTLDPlusOne(b)
	if err != nil {
		return false
	}
	return ea == eb
}

func hostname(hostport string) string {
	if h, _, found := strings.Cut(hostport, ":"); found {
		return strings.ToLower(h)
	}
	return strings.ToLower(hostport)
}
