// Package config loads service settings from the environment, then lets
// command-line flags override them.
package config

import (
	"flag"
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v6"
)

// Console configures the admin console service
type Console struct {
	Address        string        `env:"CONSOLE_ADDRESS" envDefault:":8080"`
	APIURL         string        `env:"API_URL" envDefault:"http://localhost:3000"`
	APITimeout     time.Duration `env:"API_TIMEOUT" envDefault:"10s"`
	APIToken       string        `env:"API_TOKEN"`
	MaxConcurrency int           `env:"API_MAX_CONCURRENCY" envDefault:"10"`
	CacheStaleTime time.Duration `env:"CACHE_STALE_TIME" envDefault:"5m"`
	CacheGCTime    time.Duration `env:"CACHE_GC_TIME" envDefault:"10m"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat      string        `env:"LOG_FORMAT" envDefault:"json"`
}

// Backoffice configures the development back office API
type Backoffice struct {
	Address   string `env:"BACKOFFICE_ADDRESS" envDefault:":3000"`
	Seed      bool   `env:"BACKOFFICE_SEED" envDefault:"true"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
}

// LoadConsole reads the console settings; args are the command-line arguments without the program name
func LoadConsole(args []string) (*Console, error) {
	cfg := &Console{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse console env: %w", err)
	}

	fs := flag.NewFlagSet("console-service", flag.ContinueOnError)
	fs.StringVar(&cfg.Address, "a", cfg.Address, "{host:port} to listen on")
	fs.StringVar(&cfg.APIURL, "api", cfg.APIURL, "Base URL of the back office API")
	fs.DurationVar(&cfg.APITimeout, "timeout", cfg.APITimeout, "Timeout of every back office request")
	fs.IntVar(&cfg.MaxConcurrency, "c", cfg.MaxConcurrency, "Maximum concurrent back office requests")
	fs.DurationVar(&cfg.CacheStaleTime, "stale", cfg.CacheStaleTime, "How long cached reads stay fresh (0 = until invalidated)")
	fs.DurationVar(&cfg.CacheGCTime, "gc", cfg.CacheGCTime, "How long unused cache entries are kept (0 = forever)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "Log level")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (json or text)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Console) validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("API_URL must be an absolute URL, got %q", c.APIURL)
	}
	if c.APITimeout <= 0 {
		return fmt.Errorf("API_TIMEOUT must be positive, got %s", c.APITimeout)
	}
	if c.MaxConcurrency < 1 {
		return fmt.Errorf("API_MAX_CONCURRENCY must be at least 1, got %d", c.MaxConcurrency)
	}
	if c.CacheStaleTime < 0 {
		return fmt.Errorf("CACHE_STALE_TIME must not be negative, got %s", c.CacheStaleTime)
	}
	if c.CacheGCTime < 0 {
		return fmt.Errorf("CACHE_GC_TIME must not be negative, got %s", c.CacheGCTime)
	}
	return nil
}

// LoadBackoffice reads the development API settings
func LoadBackoffice(args []string) (*Backoffice, error) {
	cfg := &Backoffice{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse backoffice env: %w", err)
	}

	fs := flag.NewFlagSet("backoffice-api", flag.ContinueOnError)
	fs.StringVar(&cfg.Address, "a", cfg.Address, "{host:port} to listen on")
	fs.BoolVar(&cfg.Seed, "seed", cfg.Seed, "Load sample jewelry data at startup")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "Log level")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (json or text)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return cfg, nil
}
