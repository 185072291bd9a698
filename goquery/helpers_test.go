package goquery_test

import (
	"os"
	"strings"
	"testing"

	gq "github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/amzcrawl"
	"github.com/stretchr/testify/require"
)

var locales = amzcrawl.NewLocales()

func region(t *testing.T, code string) amzcrawl.Region {
	t.Helper()
	r, ok := locales.Lookup(code)
	require.True(t, ok, "unknown region %s", code)
	return r
}

func parse(t *testing.T, html string) *gq.Document {
	t.Helper()
	doc, err := gq.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

// card returns the first search result card in html.
func card(t *testing.T, html string) *gq.Selection {
	t.Helper()
	sel := parse(t, html).Find("[data-component-type='s-search-result']").First()
	require.Equal(t, 1, sel.Length(), "no card in fixture")
	return sel
}

func fixture(t *testing.T, name string) string {
	t.Helper()
	b, err := os.ReadFile("testdata/" + name)
	require.NoError(t, err)
	return string(b)
}
