// Package fs saves fetched storefront pages to disk so they can be replayed
// as test fixtures.
package fs

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fwojciec/amzcrawl"
)

// Ensure CaptureFetcher implements amzcrawl.Fetcher at compile time.
var _ amzcrawl.Fetcher = (*CaptureFetcher)(nil)

// URLToPath converts a page URL to a relative file path under a directory
// named after the host. Query parameters become part of the file name so
// each results page gets its own file.
// Example: https://www.amazon.de/s?k=maus&page=2 → www.amazon.de/s_k-maus_page-2.html
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	if u.Host == "" {
		return "", amzcrawl.Errorf(amzcrawl.EINVALID, "URL has no host: %q", rawURL)
	}

	p := strings.Trim(u.Path, "/")
	if p == "" {
		p = "index"
	}

	if q := u.Query(); len(q) > 0 {
		keys := make([]string, 0, len(q))
		for k := range q {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			p += "_" + sanitize(k) + "-" + sanitize(strings.Join(q[k], ","))
		}
	}

	return filepath.Join(sanitize(u.Host), filepath.FromSlash(p)+".html"), nil
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_', r == '/':
			return r
		case r == ' ', r == '+':
			return '+'
		}
		return '_'
	}, s)
}

// CaptureFetcher writes every successfully fetched page below a directory
// before returning it.
type CaptureFetcher struct {
	next amzcrawl.Fetcher
	dir  string
}

// NewCaptureFetcher wraps next, saving pages below dir.
func NewCaptureFetcher(next amzcrawl.Fetcher, dir string) *CaptureFetcher {
	return &CaptureFetcher{next: next, dir: dir}
}

func (f *CaptureFetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	html, err := f.next.Fetch(ctx, rawURL)
	if err != nil {
		return "", err
	}
	if err := f.save(rawURL, html); err != nil {
		return "", err
	}
	return html, nil
}

// save writes atomically: a temp file in the target directory is renamed
// into place so a reader never sees a partial page.
func (f *CaptureFetcher) save(rawURL, html string) error {
	rel, err := URLToPath(rawURL)
	if err != nil {
		return err
	}
	fullPath := filepath.Join(f.dir, rel)

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".page-*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.WriteString(html); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), fullPath)
}

func (f *CaptureFetcher) Close() error {
	return f.next.Close()
}
