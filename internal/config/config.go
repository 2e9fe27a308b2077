// Package config loads tebexd configuration.
//
// Values are resolved in order: built-in defaults, an optional YAML file
// (--config or TEBEXD_CONFIG), TEBEXD_* environment variables, then
// command-line flags. The result is validated once and not changed after
// startup.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// TickDuration is the length of one server tick (20 ticks per second).
const TickDuration = 50 * time.Millisecond

// Store drivers.
const (
	DriverSQLite = "sqlite"
	DriverBolt   = "bbolt"
)

// ConfigEnvVar names the environment variable holding the config file path.
const ConfigEnvVar = "TEBEXD_CONFIG"

// Config is the complete daemon configuration.
type Config struct {
	Tebex TebexConfig `yaml:"tebex"`
	Poll  PollConfig  `yaml:"poll"`
	Store StoreConfig `yaml:"store"`
	RCON  RCONConfig  `yaml:"rcon"`
	Log   LogConfig   `yaml:"log"`
}

// TebexConfig configures the remote queue client.
type TebexConfig struct {
	BaseURL        string `yaml:"base_url" env:"TEBEXD_TEBEX_BASE_URL"`
	Secret         string `yaml:"secret" env:"TEBEXD_TEBEX_SECRET"`
	TimeoutSeconds int    `yaml:"timeout_seconds" env:"TEBEXD_TEBEX_TIMEOUT_SECONDS"`
}

// PollConfig configures the reconciliation loop.
type PollConfig struct {
	IntervalTicks int `yaml:"interval_ticks" env:"TEBEXD_POLL_INTERVAL_TICKS"`
}

// StoreConfig selects the durable property store.
type StoreConfig struct {
	// Driver is "sqlite" (default) or "bbolt".
	Driver string `yaml:"driver" env:"TEBEXD_STORE_DRIVER"`
	// Path is the database file. Empty means the driver's default under
	// ~/.tebexd.
	Path string `yaml:"path" env:"TEBEXD_STORE_PATH"`
}

// RCONConfig configures the presence provider.
type RCONConfig struct {
	Address               string `yaml:"address" env:"TEBEXD_RCON_ADDRESS"`
	Password              string `yaml:"password" env:"TEBEXD_RCON_PASSWORD"`
	PresenceIntervalTicks int    `yaml:"presence_interval_ticks" env:"TEBEXD_RCON_PRESENCE_INTERVAL_TICKS"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" env:"TEBEXD_LOG_LEVEL"`
	Format string `yaml:"format" env:"TEBEXD_LOG_FORMAT"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Tebex: TebexConfig{
			BaseURL:        "https://plugin.tebex.io",
			TimeoutSeconds: 30,
		},
		Poll: PollConfig{IntervalTicks: 20},
		Store: StoreConfig{
			Driver: DriverSQLite,
		},
		RCON: RCONConfig{
			Address:               "127.0.0.1:25575",
			PresenceIntervalTicks: 20,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load resolves defaults, the YAML file at path and the environment. An
// empty path falls back to TEBEXD_CONFIG; with neither set no file is read.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(ConfigEnvVar)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}

// Validate checks every field that has a fixed shape.
func (c *Config) Validate() error {
	var errs []error

	if u, err := url.Parse(c.Tebex.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("tebex.base_url %q is not an absolute URL", c.Tebex.BaseURL))
	}
	if c.Tebex.TimeoutSeconds <= 0 {
		errs = append(errs, fmt.Errorf("tebex.timeout_seconds must be positive, got %d", c.Tebex.TimeoutSeconds))
	}
	if c.Poll.IntervalTicks <= 0 {
		errs = append(errs, fmt.Errorf("poll.interval_ticks must be positive, got %d", c.Poll.IntervalTicks))
	}
	if c.RCON.PresenceIntervalTicks <= 0 {
		errs = append(errs, fmt.Errorf("rcon.presence_interval_ticks must be positive, got %d", c.RCON.PresenceIntervalTicks))
	}
	switch c.Store.Driver {
	case DriverSQLite, DriverBolt:
	default:
		errs = append(errs, fmt.Errorf("store.driver %q is not one of %s, %s", c.Store.Driver, DriverSQLite, DriverBolt))
	}
	switch c.Log.Level {
	case "debug", "info", "progress", "minimal", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level %q is not a known level", c.Log.Level))
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format %q is not one of console, json", c.Log.Format))
	}

	return errors.Join(errs...)
}

// RequireRemote checks the settings needed to talk to the queue and the
// game server.
func (c *Config) RequireRemote() error {
	var errs []error
	if c.Tebex.Secret == "" {
		errs = append(errs, errors.New("tebex.secret is required (set TEBEXD_TEBEX_SECRET)"))
	}
	if c.RCON.Address == "" {
		errs = append(errs, errors.New("rcon.address is required"))
	}
	return errors.Join(errs...)
}

// PollInterval returns the time between reconciliation passes.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Poll.IntervalTicks) * TickDuration
}

// PresenceInterval returns the time between presence polls.
func (c *Config) PresenceInterval() time.Duration {
	return time.Duration(c.RCON.PresenceIntervalTicks) * TickDuration
}

// Timeout returns the per-request timeout for the remote queue.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Tebex.TimeoutSeconds) * time.Second
}

// StorePath returns the configured store path or the driver default.
func (c *Config) StorePath() (string, error) {
	if c.Store.Path != "" {
		return c.Store.Path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	name := "state.db"
	if c.Store.Driver == DriverBolt {
		name = "state.bolt"
	}
	return filepath.Join(home, ".tebexd", name), nil
}

// Redacted returns a copy safe to print.
func (c *Config) Redacted() *Config {
	out := *c
	if out.Tebex.Secret != "" {
		out.Tebex.Secret = "********"
	}
	if out.RCON.Password != "" {
		out.RCON.Password = "********"
	}
	return &out
}

// YAML renders the configuration as a config file.
func (c *Config) YAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}
