package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all chatlist configuration.
type Config struct {
	// Remote chat collection
	Gateway GatewayConfig `yaml:"gateway"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`

	// Gateway failure journal
	Diagnostics DiagnosticsConfig `yaml:"diagnostics"`

	// Prometheus listener
	Metrics MetricsConfig `yaml:"metrics"`

	// Terminal UI
	UI UIConfig `yaml:"ui"`
}

// GatewayConfig configures the remote chat collection client.
type GatewayConfig struct {
	BaseURL   string  `yaml:"base_url"`
	Timeout   string  `yaml:"timeout"`    // empty = wait indefinitely
	RateLimit float64 `yaml:"rate_limit"` // requests per second, 0 disables pacing
	RateBurst int     `yaml:"rate_burst"`
}

// DiagnosticsConfig configures the SQLite failure journal.
type DiagnosticsConfig struct {
	Enabled      bool   `yaml:"enabled"`
	DatabasePath string `yaml:"database_path"` // relative paths resolve against the config dir
}

// MetricsConfig configures the optional /metrics listener.
type MetricsConfig struct {
	ListenAddr string `yaml:"listen_addr"` // empty disables the listener
}

// DefaultBaseURL is the mock collection the original app talked to.
const DefaultBaseURL = "https://6687bd470bc7155dc018e51b.mockapi.io/chats"

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Gateway: GatewayConfig{
			BaseURL:   DefaultBaseURL,
			Timeout:   "",
			RateLimit: 0,
			RateBurst: 1,
		},

		Logging: LoggingConfig{
			Level:     "info",
			Format:    "json",
			DebugMode: false,
		},

		Diagnostics: DiagnosticsConfig{
			Enabled:      true,
			DatabasePath: "diagnostics.db",
		},

		UI: *DefaultUIConfig(),
	}
}

// DefaultDir returns ~/.config/chatlist (or the platform equivalent).
func DefaultDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".chatlist"
	}
	return filepath.Join(dir, "chatlist")
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(DefaultDir(), "config.yaml")
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return defaults if config file doesn't exist
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Override with environment variables
	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if u := os.Getenv("CHATLIST_BASE_URL"); u != "" {
		c.Gateway.BaseURL = u
	}
	if path := os.Getenv("CHATLIST_DIAG_DB"); path != "" {
		c.Diagnostics.DatabasePath = path
	}
	if level := os.Getenv("CHATLIST_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if addr := os.Getenv("CHATLIST_METRICS_ADDR"); addr != "" {
		c.Metrics.ListenAddr = addr
	}
}

// GetGatewayTimeout returns the HTTP timeout; zero means none.
func (c *Config) GetGatewayTimeout() time.Duration {
	if c.Gateway.Timeout == "" {
		return 0
	}
	d, err := time.ParseDuration(c.Gateway.Timeout)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// DiagnosticsPath resolves the journal path against dir.
// Returns "" when the journal is disabled.
func (c *Config) DiagnosticsPath(dir string) string {
	if !c.Diagnostics.Enabled || c.Diagnostics.DatabasePath == "" {
		return ""
	}
	if filepath.IsAbs(c.Diagnostics.DatabasePath) {
		return c.Diagnostics.DatabasePath
	}
	return filepath.Join(dir, c.Diagnostics.DatabasePath)
}

// ValidLogLevels lists the accepted logging levels.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Gateway.BaseURL == "" {
		return fmt.Errorf("gateway base_url not configured (set CHATLIST_BASE_URL or gateway.base_url)")
	}
	u, err := url.Parse(c.Gateway.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid gateway base_url: %q", c.Gateway.BaseURL)
	}
	if c.Gateway.Timeout != "" {
		if _, err := time.ParseDuration(c.Gateway.Timeout); err != nil {
			return fmt.Errorf("invalid gateway timeout %q: %w", c.Gateway.Timeout, err)
		}
	}
	if c.Gateway.RateLimit < 0 {
		return fmt.Errorf("gateway rate_limit must not be negative, got %v", c.Gateway.RateLimit)
	}
	if c.Gateway.RateLimit > 0 && c.Gateway.RateBurst < 1 {
		return fmt.Errorf("gateway rate_burst must be at least 1 when rate_limit is set")
	}

	validLevel := false
	for _, l := range ValidLogLevels {
		if c.Logging.Level == l {
			validLevel = true
			break
		}
	}
	if !validLevel {
		return fmt.Errorf("invalid log level: %s (valid: %v)", c.Logging.Level, ValidLogLevels)
	}

	return nil
}
