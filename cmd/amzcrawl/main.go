package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/amzcrawl"
	"github.com/fwojciec/amzcrawl/bloom"
	"github.com/fwojciec/amzcrawl/crawl"
	"github.com/fwojciec/amzcrawl/etree"
	"github.com/fwojciec/amzcrawl/format"
	"github.com/fwojciec/amzcrawl/fs"
	"github.com/fwojciec/amzcrawl/goquery"
	"github.com/fwojciec/amzcrawl/htmltomarkdown"
	amzhttp "github.com/fwojciec/amzcrawl/http"
	"github.com/fwojciec/amzcrawl/lru"
	"github.com/fwojciec/amzcrawl/prometheus"
	"github.com/fwojciec/amzcrawl/rod"
	amzslog "github.com/fwojciec/amzcrawl/slog"
	"github.com/fwojciec/amzcrawl/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Getenv looks up environment variables for config discovery.
	Getenv func(string) string

	// Fetcher replaces the network fetchers when set. Used by tests.
	Fetcher amzcrawl.Fetcher

	// SQLite database used by the snapshot service.
	DB *sqlite.DB

	closers []func() error
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Getenv: os.Getenv}
}

// Close releases fetchers and the database in reverse order of creation.
func (m *Main) Close() error {
	var first error
	for i := len(m.closers) - 1; i >= 0; i-- {
		if err := m.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	m.closers = nil
	return first
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:     ctx,
		Stdout:  stdout,
		Stderr:  stderr,
		Locales: amzcrawl.NewLocales(),
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("amzcrawl"),
		kong.Description("Search Amazon marketplaces and extract product data"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'amzcrawl --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", err)
		return err
	}

	cfg, err := LoadConfig(cli.Config, m.Getenv)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", amzcrawl.ErrorMessage(err))
		return err
	}
	cli.apply(cfg)
	cli.Search.apply(cfg)
	if err := cfg.Validate(deps.Locales); err != nil {
		fmt.Fprintf(stderr, "error: %s\n", amzcrawl.ErrorMessage(err))
		return err
	}
	deps.Config = cfg
	deps.Record = cli.Record

	defer m.Close()
	if err := m.wire(cli, kongCtx.Command(), deps); err != nil {
		fmt.Fprintf(stderr, "error: %s\n", amzcrawl.ErrorMessage(err))
		return err
	}

	runErr := kongCtx.Run(deps)

	if cli.MetricsFile != "" {
		if err := deps.Metrics.WriteTextfile(cli.MetricsFile); err != nil {
			fmt.Fprintf(stderr, "error: failed to write metrics: %s\n", err)
			if runErr == nil {
				runErr = err
			}
		}
	}

	return runErr
}

// wire builds the services the selected command needs.
func (m *Main) wire(cli *CLI, command string, deps *Dependencies) error {
	cfg := deps.Config

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(deps.Stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger

	region, _ := deps.Locales.Parse(cfg.Region)
	deps.Region = region
	cfg.Region = region.Code

	outputFormat, _ := amzcrawl.ParseOutputFormat(cfg.Format)
	cfg.Format = string(outputFormat)
	if outputFormat == amzcrawl.FormatXML {
		deps.Formatter = etree.NewFormatter()
	} else {
		f, err := format.NewFormatter(outputFormat)
		if err != nil {
			return err
		}
		deps.Formatter = f
	}

	deps.Metrics = prometheus.NewMetrics()

	name := commandName(command)
	if name == "history" || name == "serve" || cli.Record {
		if err := m.openDB(cfg, deps); err != nil {
			return err
		}
	}

	switch name {
	case "search", "product", "serve":
		fetcher, err := m.storefrontFetcher(cfg, region, logger)
		if err != nil {
			return err
		}
		fetcher = m.decorate(fetcher, cli, name == "serve", deps)

		storefronts := amzhttp.StorefrontFunc(fetcher)
		var searchExtractor amzcrawl.SearchExtractor = prometheus.NewSearchExtractor(
			goquery.NewSearchExtractor(goquery.NewCatalog(),
				goquery.WithLogger(logger),
				goquery.WithObserver(deps.Metrics),
			), deps.Metrics)
		var productExtractor amzcrawl.ProductExtractor = prometheus.NewProductExtractor(
			goquery.NewProductExtractor(goquery.NewCatalog(),
				goquery.WithLogger(logger),
				goquery.WithObserver(deps.Metrics),
				goquery.WithConverter(htmltomarkdown.NewConverter(htmltomarkdown.WithDomain(region.BaseURL()))),
			), deps.Metrics)
		if cli.Verbose {
			storefronts = amzslog.LoggingStorefrontFunc(storefronts, logger)
			searchExtractor = amzslog.NewLoggingSearchExtractor(searchExtractor, logger)
			productExtractor = amzslog.NewLoggingProductExtractor(productExtractor, logger)
		}

		deps.Search = &crawl.Searcher{
			Storefronts: storefronts,
			Extractor:   searchExtractor,
			NewSet:      bloom.NewASINSet(uint(max(cfg.MaxResults, amzcrawl.DefaultMaxResults) * crawl.DefaultMaxPages)),
			Logger:      logger,
		}
		deps.Products = &crawl.Lookup{
			Storefronts: storefronts,
			Extractor:   productExtractor,
		}

	case "compare", "tropical":
		fetcher, err := m.tropicalFetcher(cfg, logger)
		if err != nil {
			return err
		}
		fetcher = m.decorate(fetcher, cli, false, deps)
		deps.Tropical = amzhttp.NewTropicalClient(fetcher,
			goquery.NewTropicalExtractor(goquery.WithLogger(logger)),
			goquery.TropicalBaseURL)
	}

	return nil
}

// storefrontFetcher returns the fetcher for marketplace pages.
func (m *Main) storefrontFetcher(cfg *Config, region amzcrawl.Region, logger *slog.Logger) (amzcrawl.Fetcher, error) {
	if m.Fetcher != nil {
		return m.Fetcher, nil
	}

	pacer := crawl.NewPacer(cfg.Delay(), cfg.Jitter())

	if cfg.Browser {
		detector := goquery.NewDetector(goquery.NewCatalog())
		opts := []rod.Option{
			rod.WithAcceptLanguage(region.AcceptLanguage),
			rod.WithPacer(pacer),
			rod.WithBlockCheck(func(html string) bool {
				return detector.Detect(html) != amzcrawl.BlockNone
			}),
		}
		if cfg.Timeout > 0 {
			opts = append(opts, rod.WithFetchTimeout(cfg.Timeout))
		}
		if cfg.Proxy != "" {
			if _, err := amzhttp.ParseProxy(cfg.Proxy); err != nil {
				return nil, err
			}
			opts = append(opts, rod.WithProxy(cfg.Proxy))
		}
		f, err := rod.NewFetcher(opts...)
		if err != nil {
			return nil, amzcrawl.Errorf(amzcrawl.EUNAVAILABLE, "failed to start browser (Chrome or Chromium must be installed): %s", err)
		}
		m.closers = append(m.closers, f.Close)
		return f, nil
	}

	opts := []amzhttp.Option{
		amzhttp.WithAcceptLanguage(region.AcceptLanguage),
		amzhttp.WithPacer(pacer),
		amzhttp.WithLogger(logger),
	}
	if cfg.Timeout > 0 {
		opts = append(opts, amzhttp.WithTimeout(cfg.Timeout))
	}
	if cfg.Proxy != "" {
		u, err := amzhttp.ParseProxy(cfg.Proxy)
		if err != nil {
			return nil, err
		}
		opts = append(opts, amzhttp.WithProxy(u))
	}
	f := amzhttp.NewFetcher(opts...)
	m.closers = append(m.closers, f.Close)
	return f, nil
}

// tropicalFetcher returns the fetcher for the EU price comparison site.
func (m *Main) tropicalFetcher(cfg *Config, logger *slog.Logger) (amzcrawl.Fetcher, error) {
	if m.Fetcher != nil {
		return m.Fetcher, nil
	}

	opts := append(amzhttp.TropicalOptions(),
		amzhttp.WithPacer(crawl.NewPacer(cfg.Delay(), cfg.Jitter())),
		amzhttp.WithLogger(logger),
	)
	if cfg.Timeout > 0 {
		opts = append(opts, amzhttp.WithTimeout(cfg.Timeout))
	}
	if cfg.Proxy != "" {
		u, err := amzhttp.ParseProxy(cfg.Proxy)
		if err != nil {
			return nil, err
		}
		opts = append(opts, amzhttp.WithProxy(u))
	}
	f := amzhttp.NewFetcher(opts...)
	m.closers = append(m.closers, f.Close)
	return f, nil
}

// decorate layers metrics, page capture, caching and logging over f.
func (m *Main) decorate(f amzcrawl.Fetcher, cli *CLI, cache bool, deps *Dependencies) amzcrawl.Fetcher {
	f = prometheus.NewFetcher(f, deps.Metrics)
	if cli.SaveHTML != "" {
		f = fs.NewCaptureFetcher(f, cli.SaveHTML)
	}
	if cache {
		f = lru.NewFetcher(f, lru.DefaultSize, lru.DefaultTTL)
	}
	if cli.Verbose {
		f = amzslog.NewLoggingFetcher(f, deps.Logger)
	}
	return f
}

func (m *Main) openDB(cfg *Config, deps *Dependencies) error {
	path := cfg.DBPath
	if path == "" {
		path = defaultDBPath(m.Getenv)
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
	}

	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		return amzcrawl.Errorf(amzcrawl.EINTERNAL, "failed to open database at %q: %s. Set AMZCRAWL_DB to use a different path", path, err)
	}
	m.closers = append(m.closers, m.DB.Close)
	deps.Snapshots = sqlite.NewSnapshotService(m.DB)
	return nil
}

// commandName returns the first word of a kong command path such as
// "search <query>".
func commandName(command string) string {
	for i, r := range command {
		if r == ' ' {
			return command[:i]
		}
	}
	return command
}
