package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"gopkg.in/yaml.v3"

	"github.com/umputun/summarylive/pkg/domain"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Source SourceConfig `yaml:"source" json:"source" jsonschema:"description=Summaries backend (data source) configuration"`
	Push   PushConfig   `yaml:"push" json:"push" jsonschema:"description=Push channel and reconnect policy configuration"`
	Poll   PollConfig   `yaml:"poll" json:"poll" jsonschema:"description=Polling fallback used while the push channel is down"`
	Notice NoticeConfig `yaml:"notice" json:"notice" jsonschema:"description=Notices shown after refreshes"`
	Server ServerConfig `yaml:"server" json:"server" jsonschema:"description=Local HTTP server configuration"`
	Filter FilterConfig `yaml:"filter" json:"filter" jsonschema:"description=Initial view filter"`
}

// SourceConfig holds summaries backend settings
type SourceConfig struct {
	BaseURL    string        `yaml:"base_url" json:"base_url" jsonschema:"required,description=Base URL of the summaries backend"`
	ListPath   string        `yaml:"list_path" json:"list_path" jsonschema:"default=/api/news/summaries,description=Path of the bulk list endpoint"`
	DetailPath string        `yaml:"detail_path" json:"detail_path" jsonschema:"default=/api/news/summary/{id},description=Path of the single summary endpoint with {id} placeholder"`
	CheckPath  string        `yaml:"check_path" json:"check_path" jsonschema:"default=/api/check-new-summaries,description=Path of the new summaries check endpoint"`
	Timeout    time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=10s,description=HTTP request timeout"`
	Retries    int           `yaml:"retries" json:"retries" jsonschema:"default=3,minimum=1,description=Attempts per request for transient failures"`
	RetryDelay time.Duration `yaml:"retry_delay" json:"retry_delay" jsonschema:"default=500ms,description=Initial delay between attempts"`
	UserAgent  string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=SummaryLive/1.0,description=User agent for HTTP requests"`
}

// PushConfig holds push channel and reconnect policy settings
type PushConfig struct {
	Path         string        `yaml:"path" json:"path" jsonschema:"default=/api/summary-updates,description=Path of the server-sent events endpoint"`
	BaseDelay    time.Duration `yaml:"base_delay" json:"base_delay" jsonschema:"default=15s,description=Delay before the first reconnect"`
	Growth       float64       `yaml:"growth" json:"growth" jsonschema:"default=1.5,minimum=1,description=Reconnect delay growth factor per attempt"`
	MaxDelay     time.Duration `yaml:"max_delay" json:"max_delay" jsonschema:"default=5m,description=Maximum reconnect delay"`
	DedupeWindow int           `yaml:"dedupe_window" json:"dedupe_window" jsonschema:"default=64,minimum=-1,description=Number of recent event ids remembered to drop repeats; -1 disables dedup"`
}

// PollConfig holds polling fallback settings
type PollConfig struct {
	Interval time.Duration `yaml:"interval" json:"interval" jsonschema:"default=0s,description=Check interval while push channel is down, 0 disables polling"`
}

// NoticeConfig holds notice texts
type NoticeConfig struct {
	Title   string        `yaml:"title" json:"title" jsonschema:"default=New summaries,description=Notice title"`
	Message string        `yaml:"message" json:"message" jsonschema:"default=Page refreshed\\, new summaries were added.,description=Notice message"`
	Display time.Duration `yaml:"display" json:"display" jsonschema:"default=5s,description=How long the UI shows a notice"`
}

// ServerConfig holds local HTTP server settings
type ServerConfig struct {
	Enabled   bool          `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Enable local HTTP server"`
	Listen    string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
	Timeout   time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	BaseURL   string        `yaml:"base_url" json:"base_url" jsonschema:"default=http://localhost:8080,description=Base URL for RSS feeds and links"`
	FeedTitle string        `yaml:"feed_title" json:"feed_title" jsonschema:"default=Summaries,description=Title prefix of RSS feeds"`
}

// FilterConfig holds initial view filter
type FilterConfig struct {
	Date     string `yaml:"date" json:"date" jsonschema:"description=Calendar date YYYY-MM-DD,pattern=^(\\d{4}-\\d{2}-\\d{2})?$"`
	Category string `yaml:"category" json:"category" jsonschema:"description=Category name\\, case-insensitive"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// schema validation is supplementary, log and continue
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		lgr.Printf("[WARN] schema validation failed: %v", err)
	}

	return &cfg, nil
}

// Default returns configuration with defaults for everything, source base url must be set before use
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

func (c *Config) setDefaults() {
	// source
	if c.Source.ListPath == "" {
		c.Source.ListPath = "/api/news/summaries"
	}
	if c.Source.DetailPath == "" {
		c.Source.DetailPath = "/api/news/summary/{id}"
	}
	if c.Source.CheckPath == "" {
		c.Source.CheckPath = "/api/check-new-summaries"
	}
	if c.Source.Timeout == 0 {
		c.Source.Timeout = 10 * time.Second
	}
	if c.Source.Retries == 0 {
		c.Source.Retries = 3
	}
	if c.Source.RetryDelay == 0 {
		c.Source.RetryDelay = 500 * time.Millisecond
	}
	if c.Source.UserAgent == "" {
		c.Source.UserAgent = "SummaryLive/1.0"
	}

	// push
	if c.Push.Path == "" {
		c.Push.Path = "/api/summary-updates"
	}
	if c.Push.BaseDelay == 0 {
		c.Push.BaseDelay = 15 * time.Second
	}
	if c.Push.Growth == 0 {
		c.Push.Growth = 1.5
	}
	if c.Push.MaxDelay == 0 {
		c.Push.MaxDelay = 5 * time.Minute
	}
	if c.Push.DedupeWindow == 0 { // unset, -1 turns dedup off
		c.Push.DedupeWindow = 64
	}

	// notice
	if c.Notice.Title == "" {
		c.Notice.Title = "New summaries"
	}
	if c.Notice.Message == "" {
		c.Notice.Message = "Page refreshed, new summaries were added."
	}
	if c.Notice.Display == 0 {
		c.Notice.Display = 5 * time.Second
	}

	// server
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = 30 * time.Second
	}
	if c.Server.BaseURL == "" {
		c.Server.BaseURL = "http://localhost:8080"
	}
	if c.Server.FeedTitle == "" {
		c.Server.FeedTitle = "Summaries"
	}
}

// Validate checks configuration for correctness
func (c *Config) Validate() error {
	// source
	if c.Source.BaseURL == "" {
		return fmt.Errorf("source.base_url is required")
	}
	u, err := url.Parse(c.Source.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("source.base_url %q must be an absolute http(s) url", c.Source.BaseURL)
	}
	if !strings.Contains(c.Source.DetailPath, "{id}") {
		return fmt.Errorf("source.detail_path must contain {id} placeholder")
	}
	if c.Source.Timeout < time.Second {
		return fmt.Errorf("source.timeout must be at least 1 second")
	}
	if c.Source.Retries < 1 {
		return fmt.Errorf("source.retries must be at least 1")
	}

	// push
	if c.Push.BaseDelay <= 0 {
		return fmt.Errorf("push.base_delay must be positive")
	}
	if c.Push.Growth < 1 {
		return fmt.Errorf("push.growth must be at least 1")
	}
	if c.Push.MaxDelay < c.Push.BaseDelay {
		return fmt.Errorf("push.max_delay must not be less than push.base_delay")
	}
	if c.Push.DedupeWindow < -1 {
		return fmt.Errorf("push.dedupe_window must be -1 (disabled) or non-negative")
	}

	// poll
	if c.Poll.Interval < 0 {
		return fmt.Errorf("poll.interval must be non-negative")
	}
	if c.Poll.Interval > 0 && c.Poll.Interval < time.Second {
		return fmt.Errorf("poll.interval must be at least 1 second")
	}

	// server
	if c.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	// filter
	if _, err := domain.ParseDate(c.Filter.Date); err != nil {
		return fmt.Errorf("filter.date: %w", err)
	}

	return nil
}

// PushEndpoint returns full url of the push channel
func (c *Config) PushEndpoint() string {
	return strings.TrimRight(c.Source.BaseURL, "/") + "/" + strings.TrimLeft(c.Push.Path, "/")
}

// PushDedupeWindow returns the dedup window for the push connection, 0 when dedup is disabled
func (c *Config) PushDedupeWindow() int {
	if c.Push.DedupeWindow < 0 {
		return 0
	}
	return c.Push.DedupeWindow
}

// InitialFilter returns the initial view filter, invalid date is ignored
func (c *Config) InitialFilter() domain.Filter {
	d, err := domain.ParseDate(c.Filter.Date)
	if err != nil {
		lgr.Printf("[WARN] ignore invalid filter date %q: %v", c.Filter.Date, err)
	}
	return domain.Filter{Date: d, Category: strings.TrimSpace(c.Filter.Category)}
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetFeedConfig returns base url and title prefix for generated feeds
func (c *Config) GetFeedConfig() (baseURL, title string) {
	return c.Server.BaseURL, c.Server.FeedTitle
}
