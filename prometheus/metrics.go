// Package prometheus exports extraction and fetch metrics with
// github.com/prometheus/client_golang.
package prometheus

import (
	"net/http"
	"time"

	"github.com/fwojciec/amzcrawl"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ amzcrawl.ExtractionObserver = (*Metrics)(nil)

// Metrics bundles Prometheus collectors for fetching and extraction.
type Metrics struct {
	Registry      *prometheus.Registry
	FetchesTotal  *prometheus.CounterVec
	FetchDuration prometheus.Histogram
	PagesTotal    *prometheus.CounterVec
	ProductsTotal *prometheus.CounterVec
	SkippedCards  *prometheus.CounterVec
	BlocksTotal   *prometheus.CounterVec
}

// NewMetrics constructs and registers all metrics on a dedicated registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	fetches := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "amzcrawl_fetches_total",
			Help: "Total page fetches by outcome code.",
		},
		[]string{"code"},
	)
	fetchDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "amzcrawl_fetch_duration_seconds",
			Help:    "Page fetch latency, including pacing.",
			Buckets: prometheus.DefBuckets,
		},
	)
	pages := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "amzcrawl_pages_extracted_total",
			Help: "Total pages run through an extractor by page type and outcome code.",
		},
		[]string{"type", "code"},
	)
	products := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "amzcrawl_products_extracted_total",
			Help: "Total products extracted by page type.",
		},
		[]string{"type"},
	)
	skipped := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "amzcrawl_skipped_cards_total",
			Help: "Total search cards dropped by reason.",
		},
		[]string{"reason"},
	)
	blocks := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "amzcrawl_blocks_total",
			Help: "Total block pages detected by kind.",
		},
		[]string{"kind"},
	)

	registry.MustRegister(fetches, fetchDuration, pages, products, skipped, blocks)

	return &Metrics{
		Registry:      registry,
		FetchesTotal:  fetches,
		FetchDuration: fetchDuration,
		PagesTotal:    pages,
		ProductsTotal: products,
		SkippedCards:  skipped,
		BlocksTotal:   blocks,
	}
}

// ObserveBlock counts a detected block page.
func (m *Metrics) ObserveBlock(kind amzcrawl.BlockKind) {
	if m == nil {
		return
	}
	m.BlocksTotal.WithLabelValues(kind.String()).Inc()
}

// ObserveSkippedCard counts a dropped search card.
func (m *Metrics) ObserveSkippedCard(reason string) {
	if m == nil {
		return
	}
	m.SkippedCards.WithLabelValues(reason).Inc()
}

// ObserveFetch records a fetch outcome and its duration.
func (m *Metrics) ObserveFetch(d time.Duration, err error) {
	if m == nil {
		return
	}
	m.FetchesTotal.WithLabelValues(codeLabel(err)).Inc()
	m.FetchDuration.Observe(d.Seconds())
}

// ObservePage records an extracted page and the products it yielded.
func (m *Metrics) ObservePage(pageType string, products int, err error) {
	if m == nil {
		return
	}
	m.PagesTotal.WithLabelValues(pageType, codeLabel(err)).Inc()
	if products > 0 {
		m.ProductsTotal.WithLabelValues(pageType).Add(float64(products))
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// WriteTextfile writes the current values to path in the text format read
// by the node exporter's textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}

func codeLabel(err error) string {
	if err == nil {
		return "ok"
	}
	return amzcrawl.ErrorCode(err)
}
