package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() Config {
	var c Config
	c.LoadDefaults()
	return c
}

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, "http://localhost:8000/api", c.APIBaseURL)
	assert.Equal(t, 15*time.Second, c.RequestTimeout)
	assert.Equal(t, 10*time.Second, c.OnlineCheckInterval)
	assert.Equal(t, "moodjournal.db", c.StatePath)
	assert.Equal(t, BackendSQLite, c.TokenBackend)
	assert.Equal(t, "info", c.LogLevel)
	require.NoError(t, c.Validate())
}

func TestLoad_NoSources(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)

	want := defaults()
	if diff := cmp.Diff(&want, cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("MOODJOURNAL_API_URL", "https://journal.example.com/api")
	t.Setenv("MOODJOURNAL_REQUEST_TIMEOUT", "5s")
	t.Setenv("MOODJOURNAL_TOKEN_BACKEND", "memory")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "https://journal.example.com/api", cfg.APIBaseURL)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, BackendMemory, cfg.TokenBackend)
	assert.Equal(t, 10*time.Second, cfg.OnlineCheckInterval, "unset variables keep defaults")
}

func TestLoad_Precedence(t *testing.T) {
	t.Setenv("MOODJOURNAL_API_URL", "http://env:8000/api")
	t.Setenv("MOODJOURNAL_STATE_PATH", "env.db")
	t.Setenv("MOODJOURNAL_LOG_LEVEL", "warn")

	path := writeTempJSON(t, map[string]any{
		"api_base_url":          "http://json:8000/api",
		"state_path":            "json.db",
		"online_check_interval": "3s",
		"request_timeout":       int64(2 * time.Second),
	})

	cfg, err := Load([]string{"-c", path, "-a", "http://flag:8000/api", "-i", "7"})
	require.NoError(t, err)

	assert.Equal(t, "http://flag:8000/api", cfg.APIBaseURL, "flag beats json and env")
	assert.Equal(t, 7*time.Second, cfg.OnlineCheckInterval, "flag beats json")
	assert.Equal(t, "json.db", cfg.StatePath, "json beats env")
	assert.Equal(t, 2*time.Second, cfg.RequestTimeout, "json nanoseconds")
	assert.Equal(t, "warn", cfg.LogLevel, "env beats defaults")
}

func TestLoad_JSONErrors(t *testing.T) {
	_, err := Load([]string{"-config", filepath.Join(t.TempDir(), "missing.json")})
	require.ErrorContains(t, err, "read config file")

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"request_timeout":"soon"}`), 0o600))
	_, err = Load([]string{"-c", bad})
	require.ErrorContains(t, err, "invalid duration")
}

func TestLoad_BadFlag(t *testing.T) {
	_, err := Load([]string{"-t", "abc"})
	require.ErrorContains(t, err, "parse flags")
}

func TestLoad_IgnoresForeignFlags(t *testing.T) {
	cfg, err := Load([]string{"-v", "-b", "memory", "--unknown=1"})
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, cfg.TokenBackend)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"relative url", func(c *Config) { c.APIBaseURL = "localhost:8000/api" }, "absolute"},
		{"ftp url", func(c *Config) { c.APIBaseURL = "ftp://host/api" }, "http or https"},
		{"zero timeout", func(c *Config) { c.RequestTimeout = 0 }, "timeout"},
		{"zero interval", func(c *Config) { c.OnlineCheckInterval = 0 }, "interval"},
		{"unknown backend", func(c *Config) { c.TokenBackend = "etcd" }, "unknown token backend"},
		{"sqlite without path", func(c *Config) { c.StatePath = "" }, "state path"},
		{"redis without addr", func(c *Config) { c.TokenBackend = BackendRedis; c.RedisAddr = "" }, "redis address"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := defaults()
			tt.mutate(&c)
			require.ErrorContains(t, c.Validate(), tt.wantErr)
		})
	}

	c := defaults()
	c.TokenBackend = BackendMemory
	c.StatePath = ""
	require.NoError(t, c.Validate())
}

func TestDuration_UnmarshalJSON(t *testing.T) {
	var d Duration
	require.NoError(t, json.Unmarshal([]byte(`"1m30s"`), &d))
	assert.Equal(t, Duration(90*time.Second), d)

	require.NoError(t, json.Unmarshal([]byte(`1000000000`), &d))
	assert.Equal(t, Duration(time.Second), d)

	require.Error(t, json.Unmarshal([]byte(`true`), &d))
}
