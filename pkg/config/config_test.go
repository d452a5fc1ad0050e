package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/summarylive/pkg/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "test-config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))
	return configPath
}

func TestLoad(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		configPath := writeConfig(t, `
source:
  base_url: https://news.example.com
  timeout: 5s
  retries: 5
push:
  path: /events
  base_delay: 10s
  growth: 2
  max_delay: 2m
  dedupe_window: 16
poll:
  interval: 1m
notice:
  title: Fresh
  display: 3s
server:
  enabled: true
  listen: ":9090"
  timeout: 45s
filter:
  date: 2024-05-01
  category: Markets
`)
		cfg, err := Load(configPath)
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, "https://news.example.com", cfg.Source.BaseURL)
		assert.Equal(t, 5*time.Second, cfg.Source.Timeout)
		assert.Equal(t, 5, cfg.Source.Retries)
		assert.Equal(t, "/api/news/summaries", cfg.Source.ListPath)
		assert.Equal(t, 10*time.Second, cfg.Push.BaseDelay)
		assert.InDelta(t, 2.0, cfg.Push.Growth, 0.0001)
		assert.Equal(t, 2*time.Minute, cfg.Push.MaxDelay)
		assert.Equal(t, 16, cfg.Push.DedupeWindow)
		assert.Equal(t, time.Minute, cfg.Poll.Interval)
		assert.Equal(t, "Fresh", cfg.Notice.Title)
		assert.Equal(t, "Page refreshed, new summaries were added.", cfg.Notice.Message)
		assert.Equal(t, 3*time.Second, cfg.Notice.Display)
		assert.True(t, cfg.Server.Enabled)
		assert.Equal(t, ":9090", cfg.Server.Listen)
		assert.Equal(t, 45*time.Second, cfg.Server.Timeout)

		assert.Equal(t, "https://news.example.com/events", cfg.PushEndpoint())
		assert.Equal(t, domain.Filter{Date: domain.Date{Year: 2024, Month: 5, Day: 1}, Category: "Markets"}, cfg.InitialFilter())
		listen, timeout := cfg.GetServerConfig()
		assert.Equal(t, ":9090", listen)
		assert.Equal(t, 45*time.Second, timeout)
		baseURL, title := cfg.GetFeedConfig()
		assert.Equal(t, "http://localhost:8080", baseURL)
		assert.Equal(t, "Summaries", title)
	})

	t.Run("defaults", func(t *testing.T) {
		configPath := writeConfig(t, `
source:
  base_url: http://localhost:8081/
`)
		cfg, err := Load(configPath)
		require.NoError(t, err)

		assert.Equal(t, "/api/news/summary/{id}", cfg.Source.DetailPath)
		assert.Equal(t, "/api/check-new-summaries", cfg.Source.CheckPath)
		assert.Equal(t, 10*time.Second, cfg.Source.Timeout)
		assert.Equal(t, 3, cfg.Source.Retries)
		assert.Equal(t, "/api/summary-updates", cfg.Push.Path)
		assert.Equal(t, 15*time.Second, cfg.Push.BaseDelay)
		assert.InDelta(t, 1.5, cfg.Push.Growth, 0.0001)
		assert.Equal(t, 5*time.Minute, cfg.Push.MaxDelay)
		assert.Equal(t, 64, cfg.Push.DedupeWindow)
		assert.Zero(t, cfg.Poll.Interval)
		assert.Equal(t, "New summaries", cfg.Notice.Title)
		assert.Equal(t, 5*time.Second, cfg.Notice.Display)
		assert.False(t, cfg.Server.Enabled)
		assert.Equal(t, ":8080", cfg.Server.Listen)
		assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
		assert.True(t, cfg.InitialFilter().IsEmpty())
		assert.Equal(t, "http://localhost:8081/api/summary-updates", cfg.PushEndpoint())
	})

	t.Run("env expansion", func(t *testing.T) {
		t.Setenv("SUMMARIES_BACKEND", "https://backend.example.com")
		configPath := writeConfig(t, `
source:
  base_url: ${SUMMARIES_BACKEND}
`)
		cfg, err := Load(configPath)
		require.NoError(t, err)
		assert.Equal(t, "https://backend.example.com", cfg.Source.BaseURL)
	})

	t.Run("file not found", func(t *testing.T) {
		cfg, err := Load("/non/existent/file.yml")
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "read config file")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		configPath := writeConfig(t, `
invalid yaml content
  with bad indentation
    and no structure
`)
		cfg, err := Load(configPath)
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "parse config")
	})

	t.Run("invalid values", func(t *testing.T) {
		configPath := writeConfig(t, `
source:
  base_url: https://news.example.com
push:
  base_delay: 1m
  max_delay: 10s
`)
		cfg, err := Load(configPath)
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "validate config")
		assert.Contains(t, err.Error(), "push.max_delay")
	})
}

func TestConfig_Validate(t *testing.T) {
	tbl := []struct {
		name   string
		modify func(c *Config)
		errMsg string
	}{
		{"valid", func(c *Config) {}, ""},
		{"no base url", func(c *Config) { c.Source.BaseURL = "" }, "source.base_url is required"},
		{"relative base url", func(c *Config) { c.Source.BaseURL = "/api" }, "absolute http(s) url"},
		{"bad scheme", func(c *Config) { c.Source.BaseURL = "ws://example.com" }, "absolute http(s) url"},
		{"detail path without id", func(c *Config) { c.Source.DetailPath = "/api/summary" }, "{id}"},
		{"short source timeout", func(c *Config) { c.Source.Timeout = time.Millisecond }, "source.timeout"},
		{"no retries", func(c *Config) { c.Source.Retries = -1 }, "source.retries"},
		{"growth below one", func(c *Config) { c.Push.Growth = 0.5 }, "push.growth"},
		{"negative base delay", func(c *Config) { c.Push.BaseDelay = -time.Second }, "push.base_delay"},
		{"max below base", func(c *Config) { c.Push.MaxDelay = time.Second }, "push.max_delay"},
		{"dedupe disabled", func(c *Config) { c.Push.DedupeWindow = -1 }, ""},
		{"negative dedupe", func(c *Config) { c.Push.DedupeWindow = -2 }, "push.dedupe_window"},
		{"negative poll", func(c *Config) { c.Poll.Interval = -time.Second }, "poll.interval"},
		{"too frequent poll", func(c *Config) { c.Poll.Interval = 10 * time.Millisecond }, "poll.interval"},
		{"short server timeout", func(c *Config) { c.Server.Timeout = time.Millisecond }, "server timeout"},
		{"bad filter date", func(c *Config) { c.Filter.Date = "05/01/2024" }, "filter.date"},
	}

	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Source.BaseURL = "https://news.example.com"
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestConfig_DedupeDisabled(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
source:
  base_url: http://localhost:8081/
push:
  dedupe_window: -1
`))
	require.NoError(t, err)
	assert.Equal(t, -1, cfg.Push.DedupeWindow, "not replaced by the default")
	assert.Equal(t, 0, cfg.PushDedupeWindow())

	cfg.Push.DedupeWindow = 0
	cfg.setDefaults()
	assert.Equal(t, 64, cfg.PushDedupeWindow(), "unset gets the default")

	cfg.Push.DedupeWindow = -2
	err = VerifyAgainstEmbeddedSchema(cfg)
	require.Error(t, err, "schema allows -1 only")
	assert.Contains(t, err.Error(), "dedupe_window")
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Empty(t, cfg.Source.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Push.BaseDelay)
	require.Error(t, cfg.Validate(), "base url has no default")
}

func TestConfig_InitialFilterInvalidDate(t *testing.T) {
	cfg := Default()
	cfg.Filter = FilterConfig{Date: "bad", Category: " tech "}
	assert.Equal(t, domain.Filter{Category: "tech"}, cfg.InitialFilter())
}
