// Package config loads runtime configuration for the moodjournal CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A .env file in the working directory, if present, and environment
//     variables prefixed with MOODJOURNAL_ (see parseEnv).
//  3. Optional JSON file (see parseJSON) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   API base URL, e.g. http://localhost:8000/api
//	-t int      request timeout (seconds)
//	-i int      online status check interval (seconds)
//	-s string   path of the local state database
//	-b string   token backend: sqlite, redis or memory
//	-r string   redis address for the redis backend
//	-l string   log level: debug, info, warn or error
//
// # JSON schema
//
// Durations can be either strings like "15s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "http://localhost:8000/api",
//	  "request_timeout": "15s",
//	  "online_check_interval": "10s",
//	  "state_path": "moodjournal.db",
//	  "token_backend": "sqlite",
//	  "redis_addr": "localhost:6379",
//	  "redis_db": 0,
//	  "log_level": "info"
//	}
package config
