package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/amzcrawl"
	"github.com/fwojciec/amzcrawl/prometheus"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Config    *Config
	Locales   *amzcrawl.Locales
	Region    amzcrawl.Region
	Formatter amzcrawl.Formatter

	Search    amzcrawl.SearchService
	Products  amzcrawl.ProductService
	Tropical  amzcrawl.TropicalService
	Snapshots amzcrawl.SnapshotService
	Metrics   *prometheus.Metrics

	// Record saves search and product results as price snapshots.
	Record bool
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Region      string `short:"r" help:"Marketplace region code or country name (default: us)"`
	Proxy       string `env:"AMZ_PROXY" help:"Proxy URL, e.g. socks5://host:port"`
	Delay       int    `default:"-1" env:"AMZ_DELAY" help:"Delay between requests in milliseconds (default: 2000)"`
	Config      string `short:"c" type:"path" help:"Path to config file"`
	Format      string `short:"f" help:"Output format: table, json, markdown, csv, xml"`
	Verbose     bool   `short:"v" help:"Log requests and extraction to stderr"`
	Browser     bool   `help:"Fetch pages with a headless browser"`
	SaveHTML    string `name:"save-html" type:"path" help:"Save fetched pages below this directory"`
	MetricsFile string `type:"path" help:"Write Prometheus metrics to this file on exit"`
	DB          string `env:"AMZCRAWL_DB" type:"path" help:"Price history database path"`
	Record      bool   `help:"Record search and product results as price snapshots"`

	Search   SearchCmd   `cmd:"" aliases:"s" help:"Search for products"`
	Product  ProductCmd  `cmd:"" aliases:"p" help:"Look up products by ASIN"`
	Regions  RegionsCmd  `cmd:"" help:"List supported regions"`
	Compare  CompareCmd  `cmd:"" help:"Compare prices across EU stores"`
	Tropical TropicalCmd `cmd:"" help:"Search the EU price comparison site"`
	History  HistoryCmd  `cmd:"" help:"Show recorded price history for an ASIN"`
	Serve    ServeCmd    `cmd:"" help:"Serve the JSON API"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query       string   `arg:"" help:"Search query"`
	Max         int      `short:"m" help:"Maximum number of results (default: 20)"`
	MinPrice    *float64 `help:"Minimum price"`
	MaxPrice    *float64 `help:"Maximum price"`
	MinRating   *float64 `help:"Minimum rating (0-5)"`
	PrimeOnly   bool     `help:"Only Prime-eligible products"`
	NoSponsored bool     `help:"Exclude sponsored products"`
	Keywords    []string `help:"Keywords the title must contain (comma-separated)"`
	Exclude     []string `help:"Keywords the title must not contain (comma-separated)"`
}

// ProductCmd is the "product" subcommand.
type ProductCmd struct {
	ASINs []string `arg:"" name:"asin" help:"ASINs to look up"`
}

// RegionsCmd is the "regions" subcommand.
type RegionsCmd struct{}

// CompareCmd is the "compare" subcommand.
type CompareCmd struct {
	ASIN string `arg:"" help:"ASIN to compare"`
}

// TropicalCmd is the "tropical" subcommand.
type TropicalCmd struct {
	Query string `arg:"" help:"Search query"`
	Max   int    `short:"m" default:"10" help:"Maximum number of results"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	ASIN  string `arg:"" help:"ASIN to show"`
	Limit int    `short:"n" default:"50" help:"Maximum number of snapshots"`
	All   bool   `help:"Show every region instead of the selected one"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `default:"127.0.0.1:8080" help:"Listen address"`
}

// apply copies flags that were given onto cfg.
func (c *CLI) apply(cfg *Config) {
	if c.Region != "" {
		cfg.Region = c.Region
	}
	if c.Proxy != "" {
		cfg.Proxy = c.Proxy
	}
	if c.Delay >= 0 {
		cfg.DelayMS = c.Delay
	}
	if c.Format != "" {
		cfg.Format = c.Format
	}
	if c.Browser {
		cfg.Browser = true
	}
	if c.DB != "" {
		cfg.DBPath = c.DB
	}
}

// apply copies search flags that were given onto cfg.
func (c *SearchCmd) apply(cfg *Config) {
	if c.Max > 0 {
		cfg.MaxResults = c.Max
	}
	if c.MinPrice != nil {
		cfg.MinPrice = c.MinPrice
	}
	if c.MaxPrice != nil {
		cfg.MaxPrice = c.MaxPrice
	}
	if c.MinRating != nil {
		cfg.MinRating = c.MinRating
	}
	if c.PrimeOnly {
		cfg.PrimeOnly = true
	}
	if c.NoSponsored {
		cfg.NoSponsored = true
	}
	if len(c.Keywords) > 0 {
		cfg.Keywords = c.Keywords
	}
	if len(c.Exclude) > 0 {
		cfg.ExcludeKeywords = c.Exclude
	}
}
