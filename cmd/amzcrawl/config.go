package main

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/fwojciec/amzcrawl"
	"github.com/fwojciec/amzcrawl/crawl"
)

// ConfigFileName is looked up in the working directory and the user
// config directory.
const ConfigFileName = "config.toml"

// Config holds settings loaded from a TOML file. Command-line flags
// override individual values.
type Config struct {
	Region        string        `toml:"region"`
	Proxy         string        `toml:"proxy"`
	DelayMS       int           `toml:"delay_ms"`
	DelayJitterMS int           `toml:"delay_jitter_ms"`
	MaxResults    int           `toml:"max_results"`
	Format        string        `toml:"format"`
	Timeout       time.Duration `toml:"timeout"`
	Browser       bool          `toml:"browser"`
	DBPath        string        `toml:"db_path"`

	MinPrice        *float64 `toml:"min_price"`
	MaxPrice        *float64 `toml:"max_price"`
	MinRating       *float64 `toml:"min_rating"`
	PrimeOnly       bool     `toml:"prime_only"`
	NoSponsored     bool     `toml:"no_sponsored"`
	Keywords        []string `toml:"keywords"`
	ExcludeKeywords []string `toml:"exclude_keywords"`
}

// DefaultConfig returns the settings used when no file is found.
func DefaultConfig() *Config {
	return &Config{
		Region:        amzcrawl.DefaultRegionCode,
		DelayMS:       int(crawl.DefaultDelay / time.Millisecond),
		DelayJitterMS: int(crawl.DefaultJitter / time.Millisecond),
		MaxResults:    amzcrawl.DefaultMaxResults,
		Format:        string(amzcrawl.FormatTable),
		Timeout:       30 * time.Second,
	}
}

// LoadConfig reads the config file at path. Without a path it tries
// ./config.toml, then $XDG_CONFIG_HOME/amzcrawl/config.toml, and falls back
// to DefaultConfig. Values missing from the file keep their defaults.
func LoadConfig(path string, getenv func(string) string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = findConfig(getenv)
		if path == "" {
			return cfg, nil
		}
	}

	md, err := toml.DecodeFile(path, cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, amzcrawl.Errorf(amzcrawl.EINVALID, "config file not found: %s", path)
	} else if err != nil {
		return nil, amzcrawl.Errorf(amzcrawl.EINVALID, "failed to parse config file %s: %s", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, amzcrawl.Errorf(amzcrawl.EINVALID, "unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}

	return cfg, nil
}

func findConfig(getenv func(string) string) string {
	candidates := []string{ConfigFileName}

	if dir := getenv("XDG_CONFIG_HOME"); dir != "" {
		candidates = append(candidates, filepath.Join(dir, "amzcrawl", ConfigFileName))
	} else if home := getenv("HOME"); home != "" {
		candidates = append(candidates, filepath.Join(home, ".config", "amzcrawl", ConfigFileName))
	}

	for _, p := range candidates {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// Validate returns an error if the configuration is unusable.
func (c *Config) Validate(locales *amzcrawl.Locales) error {
	if _, err := locales.Parse(c.Region); err != nil {
		return err
	}
	if _, err := amzcrawl.ParseOutputFormat(c.Format); err != nil {
		return err
	}
	if c.DelayMS < 0 || c.DelayJitterMS < 0 {
		return amzcrawl.Errorf(amzcrawl.EINVALID, "delay must not be negative")
	}
	if c.MaxResults < 1 {
		return amzcrawl.Errorf(amzcrawl.EINVALID, "max results must be at least 1")
	}
	if c.Timeout < 0 {
		return amzcrawl.Errorf(amzcrawl.EINVALID, "timeout must not be negative")
	}
	if c.MinPrice != nil && c.MaxPrice != nil && *c.MinPrice > *c.MaxPrice {
		return amzcrawl.Errorf(amzcrawl.EINVALID, "min price %.2f exceeds max price %.2f", *c.MinPrice, *c.MaxPrice)
	}
	if c.MinRating != nil && (*c.MinRating < 0 || *c.MinRating > 5) {
		return amzcrawl.Errorf(amzcrawl.EINVALID, "min rating must be between 0 and 5")
	}
	return nil
}

// FilterOptions returns the result filters the configuration enables.
func (c *Config) FilterOptions() amzcrawl.FilterOptions {
	return amzcrawl.FilterOptions{
		MinPrice:        c.MinPrice,
		MaxPrice:        c.MaxPrice,
		MinRating:       c.MinRating,
		PrimeOnly:       c.PrimeOnly,
		NoSponsored:     c.NoSponsored,
		Keywords:        c.Keywords,
		ExcludeKeywords: c.ExcludeKeywords,
	}
}

// Delay returns the base pacing delay.
func (c *Config) Delay() time.Duration {
	return time.Duration(c.DelayMS) * time.Millisecond
}

// Jitter returns the random pacing jitter.
func (c *Config) Jitter() time.Duration {
	return time.Duration(c.DelayJitterMS) * time.Millisecond
}

// defaultDBPath returns the snapshot database location.
func defaultDBPath(getenv func(string) string) string {
	if path := getenv("AMZCRAWL_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "amzcrawl.db"
	}
	return filepath.Join(home, ".amzcrawl", "amzcrawl.db")
}
