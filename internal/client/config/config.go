package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"
)

const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config holds runtime settings for the moodjournal CLI.
type Config struct {
	// APIBaseURL is the backend's API root. Its scheme and host also scope
	// the remembered session.
	APIBaseURL          string        `env:"API_URL"`
	RequestTimeout      time.Duration `env:"REQUEST_TIMEOUT"`
	OnlineCheckInterval time.Duration `env:"ONLINE_CHECK_INTERVAL"`
	StatePath           string        `env:"STATE_PATH"`
	TokenBackend        string        `env:"TOKEN_BACKEND"`
	RedisAddr           string        `env:"REDIS_ADDR"`
	RedisDB             int           `env:"REDIS_DB"`
	LogLevel            string        `env:"LOG_LEVEL"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8000/api"
	c.RequestTimeout = 15 * time.Second
	c.OnlineCheckInterval = 10 * time.Second
	c.StatePath = "moodjournal.db"
	c.TokenBackend = BackendSQLite
	c.RedisAddr = "localhost:6379"
	c.RedisDB = 0
	c.LogLevel = "info"
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api base url %q must be an absolute http(s) url", c.APIBaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api base url %q must use http or https", c.APIBaseURL)
	}
	if c.RequestTimeout <= 0 {
		return errors.New("request timeout must be positive")
	}
	if c.OnlineCheckInterval <= 0 {
		return errors.New("online check interval must be positive")
	}

	switch c.TokenBackend {
	case BackendSQLite:
		if c.StatePath == "" {
			return errors.New("state path is required for the sqlite backend")
		}
	case BackendRedis:
		if c.RedisAddr == "" {
			return errors.New("redis address is required for the redis backend")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown token backend %q", c.TokenBackend)
	}
	return nil
}

// LoadConfig constructs a Config from os.Args. See Load.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}

// Load constructs a Config, applies defaults, then overlays values from the
// environment, JSON (if present) and command-line flags (if present). Later
// sources take precedence over earlier ones.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
