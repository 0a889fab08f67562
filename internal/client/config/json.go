package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/moodjournal/internal/flagx"
)

// Duration unmarshals from a string like "3s" or from integer nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		v, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(v)
		return nil
	}

	var n int64
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("invalid duration %s", string(b))
	}
	*d = Duration(n)
	return nil
}

// JSONConfig is a DTO used exclusively for JSON unmarshalling. Absent keys
// leave the corresponding Config field untouched.
type JSONConfig struct {
	APIBaseURL          *string   `json:"api_base_url"`
	RequestTimeout      *Duration `json:"request_timeout"`
	OnlineCheckInterval *Duration `json:"online_check_interval"`
	StatePath           *string   `json:"state_path"`
	TokenBackend        *string   `json:"token_backend"`
	RedisAddr           *string   `json:"redis_addr"`
	RedisDB             *int      `json:"redis_db"`
	LogLevel            *string   `json:"log_level"`
}

// parseJSON overlays cfg with values from the JSON file named by -c or
// -config. Without either flag it does nothing.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var jc JSONConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if jc.APIBaseURL != nil {
		cfg.APIBaseURL = *jc.APIBaseURL
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = time.Duration(*jc.RequestTimeout)
	}
	if jc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = time.Duration(*jc.OnlineCheckInterval)
	}
	if jc.StatePath != nil {
		cfg.StatePath = *jc.StatePath
	}
	if jc.TokenBackend != nil {
		cfg.TokenBackend = *jc.TokenBackend
	}
	if jc.RedisAddr != nil {
		cfg.RedisAddr = *jc.RedisAddr
	}
	if jc.RedisDB != nil {
		cfg.RedisDB = *jc.RedisDB
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	return nil
}
