package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/moodjournal/internal/flagx"
)

var ownFlags = []string{"-a", "-t", "-i", "-s", "-b", "-r", "-l"}

// parseFlags overlays cfg with the flags present in args. Only flags that
// were actually given override earlier sources.
//
// Note: args are filtered with flagx.FilterArgs first so that flags owned by
// other parsers (-c) do not cause errors here.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("moodjournal", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	apiURL := fs.String("a", cfg.APIBaseURL, "API base URL")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	interval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	statePath := fs.String("s", cfg.StatePath, "path of the local state database")
	backend := fs.String("b", cfg.TokenBackend, "token backend: sqlite, redis or memory")
	redisAddr := fs.String("r", cfg.RedisAddr, "redis address")
	logLevel := fs.String("l", cfg.LogLevel, "log level")

	if err := fs.Parse(flagx.FilterArgs(args, ownFlags)); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "a":
			cfg.APIBaseURL = *apiURL
		case "t":
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		case "i":
			cfg.OnlineCheckInterval = time.Duration(*interval) * time.Second
		case "s":
			cfg.StatePath = *statePath
		case "b":
			cfg.TokenBackend = *backend
		case "r":
			cfg.RedisAddr = *redisAddr
		case "l":
			cfg.LogLevel = *logLevel
		}
	})
	return nil
}
