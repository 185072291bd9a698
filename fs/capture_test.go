package fs_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/amzcrawl"
	"github.com/fwojciec/amzcrawl/fs"
	"github.com/fwojciec/amzcrawl/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURLToPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{
			name: "product page",
			url:  "https://www.amazon.com/dp/B08N5WRWNW",
			want: "www.amazon.com/dp/B08N5WRWNW.html",
		},
		{
			name: "search page folds sorted query into name",
			url:  "https://www.amazon.de/s?page=2&k=maus",
			want: "www.amazon.de/s_k-maus_page-2.html",
		},
		{
			name: "spaces in queries",
			url:  "https://www.amazon.co.uk/s?k=usb+c+hub",
			want: "www.amazon.co.uk/s_k-usb+c+hub.html",
		},
		{
			name: "root path becomes index",
			url:  "https://tropicalprice.com/",
			want: "tropicalprice.com/index.html",
		},
		{
			name: "ignores fragment",
			url:  "https://www.amazon.com/dp/B08N5WRWNW#reviews",
			want: "www.amazon.com/dp/B08N5WRWNW.html",
		},
		{
			name: "replaces unsafe characters",
			url:  "https://www.amazon.com/s?k=a%3A%2A",
			want: "www.amazon.com/s_k-a__.html",
		},
		{
			name:    "relative URL",
			url:     "/dp/B08N5WRWNW",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := fs.URLToPath(tt.url)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, filepath.FromSlash(tt.want), got)
		})
	}
}

// Story: Capturing Pages For Fixtures

func TestCaptureFetcher_SavesFetchedPages(t *testing.T) {
	t.Parallel()

	// Given a capture fetcher over a fetcher returning HTML
	dir := t.TempDir()
	f := fs.NewCaptureFetcher(&mock.Fetcher{
		FetchFn: func(context.Context, string) (string, error) {
			return "<html>results</html>", nil
		},
	}, dir)

	// When I fetch a search page
	html, err := f.Fetch(context.Background(), "https://www.amazon.com/s?k=mouse")

	// Then the page is returned unchanged
	require.NoError(t, err)
	assert.Equal(t, "<html>results</html>", html)

	// And saved under the host directory
	data, err := os.ReadFile(filepath.Join(dir, "www.amazon.com", "s_k-mouse.html"))
	require.NoError(t, err)
	assert.Equal(t, "<html>results</html>", string(data))

	// And no temp files are left behind
	entries, err := os.ReadDir(filepath.Join(dir, "www.amazon.com"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestCaptureFetcher_OverwritesEarlierCaptures(t *testing.T) {
	t.Parallel()

	// Given a page captured once
	dir := t.TempDir()
	body := "first"
	f := fs.NewCaptureFetcher(&mock.Fetcher{
		FetchFn: func(context.Context, string) (string, error) { return body, nil },
	}, dir)
	_, err := f.Fetch(context.Background(), "https://www.amazon.com/dp/B08N5WRWNW")
	require.NoError(t, err)

	// When it is fetched again with new content
	body = "second"
	_, err = f.Fetch(context.Background(), "https://www.amazon.com/dp/B08N5WRWNW")
	require.NoError(t, err)

	// Then the file holds the latest content
	data, err := os.ReadFile(filepath.Join(dir, "www.amazon.com", "dp", "B08N5WRWNW.html"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestCaptureFetcher_SkipsFailedFetches(t *testing.T) {
	t.Parallel()

	// Given a fetcher that is rate limited
	dir := t.TempDir()
	f := fs.NewCaptureFetcher(&mock.Fetcher{
		FetchFn: func(context.Context, string) (string, error) {
			return "", amzcrawl.Errorf(amzcrawl.EUNAVAILABLE, "Rate limited")
		},
	}, dir)

	// When I fetch
	_, err := f.Fetch(context.Background(), "https://www.amazon.com/s?k=mouse")

	// Then the error is returned and nothing is written
	assert.Equal(t, amzcrawl.EUNAVAILABLE, amzcrawl.ErrorCode(err))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCaptureFetcher_Close(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	f := fs.NewCaptureFetcher(&mock.Fetcher{CloseFn: func() error { return boom }}, t.TempDir())

	assert.ErrorIs(t, f.Close(), boom)
}
