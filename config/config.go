// Package config assembles the run configuration from built-in defaults, an
// optional YAML file and DAILYBRIEF_* environment variables, in that order
// of precedence. A validated Config is passed by value and never changed.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Per-source limits.
const (
	HeadlineLimit  = 8
	EnergyMaxRows  = 15
	MarketCapTopN  = 20
	ForecastHours  = 12
	DefaultTimeout = 12 * time.Second
	MinTimeout     = 10 * time.Second
	MaxTimeout     = 15 * time.Second
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "DAILYBRIEF_"

// Config is the complete run configuration.
type Config struct {
	OutputDir string        `yaml:"output_dir"`
	Log       LogConfig     `yaml:"log"`
	Fetch     FetchConfig   `yaml:"fetch"`
	Sources   SourcesConfig `yaml:"sources"`
}

// LogConfig controls the logger.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// FetchConfig holds the timeout and the header bundle sent with every request.
type FetchConfig struct {
	Timeout        time.Duration `yaml:"timeout"`
	UserAgent      string        `yaml:"user_agent"`
	Accept         string        `yaml:"accept"`
	AcceptLanguage string        `yaml:"accept_language"`
	AcceptEncoding string        `yaml:"accept_encoding"`
	Referer        string        `yaml:"referer"`
}

// SourcesConfig lists the endpoint of every fetched source.
type SourcesConfig struct {
	Headlines SourceConfig  `yaml:"headlines"`
	Energy    SourceConfig  `yaml:"energy"`
	MarketCap SourceConfig  `yaml:"marketcap"`
	Weather   SourceConfig  `yaml:"weather"`
	Indices   IndicesConfig `yaml:"indices"`
}

// SourceConfig is a single endpoint.
type SourceConfig struct {
	URL string `yaml:"url"`
}

// IndicesConfig selects between the static index dataset and the live page.
type IndicesConfig struct {
	URL  string `yaml:"url"`
	Live bool   `yaml:"live"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		OutputDir: "docs",
		Log:       LogConfig{Level: "info"},
		Fetch: FetchConfig{
			Timeout:        DefaultTimeout,
			UserAgent:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			Accept:         "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
			AcceptLanguage: "en-US,en;q=0.9",
			AcceptEncoding: "gzip, deflate",
			Referer:        "https://www.google.com/",
		},
		Sources: SourcesConfig{
			Headlines: SourceConfig{URL: "https://okdiario.com/feed"},
			Energy:    SourceConfig{URL: "https://www.energyprices.eu/"},
			MarketCap: SourceConfig{URL: "https://companiesmarketcap.com/european-union/largest-companies-in-the-eu-by-market-cap/?download=csv"},
			Weather: SourceConfig{URL: "https://api.open-meteo.com/v1/forecast?latitude=40.4168&longitude=-3.7038" +
				"&hourly=temperature_2m,apparent_temperature,precipitation_probability,precipitation" +
				"&timezone=Europe%2FMadrid&forecast_hours=12"},
			Indices: IndicesConfig{URL: "https://tradingeconomics.com/stocks"},
		},
	}
}

// Load reads the YAML file at path over the defaults. An empty path returns
// the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadEnvFile exports the variables of a .env file into the process
// environment without overriding variables that are already set. With an
// empty path, ./.env is used if it exists.
func LoadEnvFile(path string) error {
	if path == "" {
		if _, err := os.Stat(".env"); errors.Is(err, os.ErrNotExist) {
			return nil
		}
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading env file %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides cfg with DAILYBRIEF_* variables found through lookup.
func ApplyEnv(cfg Config, lookup func(string) (string, bool)) (Config, error) {
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	str("OUTPUT_DIR", &cfg.OutputDir)
	str("LOG_LEVEL", &cfg.Log.Level)
	str("LOG_FILE", &cfg.Log.File)
	str("HEADLINES_URL", &cfg.Sources.Headlines.URL)
	str("ENERGY_URL", &cfg.Sources.Energy.URL)
	str("MARKETCAP_URL", &cfg.Sources.MarketCap.URL)
	str("WEATHER_URL", &cfg.Sources.Weather.URL)
	str("INDICES_URL", &cfg.Sources.Indices.URL)

	if v, ok := lookup(EnvPrefix + "TIMEOUT"); ok && v != "" {
		d, err := parseTimeout(v)
		if err != nil {
			return Config{}, fmt.Errorf("%sTIMEOUT: %w", EnvPrefix, err)
		}
		cfg.Fetch.Timeout = d
	}
	if v, ok := lookup(EnvPrefix + "LIVE_INDICES"); ok && v != "" {
		live, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return Config{}, fmt.Errorf("%sLIVE_INDICES: %w", EnvPrefix, err)
		}
		cfg.Sources.Indices.Live = live
	}
	return cfg, nil
}

// parseTimeout accepts a Go duration ("12s") or a whole number of seconds.
func parseTimeout(v string) (time.Duration, error) {
	v = strings.TrimSpace(v)
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q", v)
	}
	return d, nil
}

// Validate clamps the timeout into [MinTimeout, MaxTimeout] and checks that
// every fetched source has an endpoint.
func (c Config) Validate() (Config, error) {
	switch {
	case c.Fetch.Timeout <= 0:
		c.Fetch.Timeout = DefaultTimeout
	case c.Fetch.Timeout < MinTimeout:
		c.Fetch.Timeout = MinTimeout
	case c.Fetch.Timeout > MaxTimeout:
		c.Fetch.Timeout = MaxTimeout
	}
	if c.OutputDir == "" {
		c.OutputDir = "docs"
	}

	var missing []string
	check := func(name, url string) {
		if strings.TrimSpace(url) == "" {
			missing = append(missing, name)
		}
	}
	check("headlines", c.Sources.Headlines.URL)
	check("energy", c.Sources.Energy.URL)
	check("marketcap", c.Sources.MarketCap.URL)
	check("weather", c.Sources.Weather.URL)
	if c.Sources.Indices.Live {
		check("indices", c.Sources.Indices.URL)
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing source url for: %s", strings.Join(missing, ", "))
	}
	return c, nil
}

// Headers returns the header bundle for the fetcher, skipping empty values.
func (c Config) Headers() map[string]string {
	h := map[string]string{
		"User-Agent":      c.Fetch.UserAgent,
		"Accept":          c.Fetch.Accept,
		"Accept-Language": c.Fetch.AcceptLanguage,
		"Accept-Encoding": c.Fetch.AcceptEncoding,
		"Referer":         c.Fetch.Referer,
	}
	for k, v := range h {
		if v == "" {
			delete(h, k)
		}
	}
	return h
}

// Resolve runs the whole chain: YAML file, .env file, process environment,
// validation.
func Resolve(configPath, envFile string) (Config, error) {
	cfg, err := Load(configPath)
	if err != nil {
		return Config{}, err
	}
	if err := LoadEnvFile(envFile); err != nil {
		return Config{}, err
	}
	cfg, err = ApplyEnv(cfg, os.LookupEnv)
	if err != nil {
		return Config{}, err
	}
	return cfg.Validate()
}
