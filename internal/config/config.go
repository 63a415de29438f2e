// Package config loads and validates the bot configuration.
//
// Configuration comes from three layers, later layers winning: built-in
// defaults, the YAML config file, then environment variables (a .env file in
// the working directory is loaded into the environment first).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all bot configuration.
type Config struct {
	// Signal transport settings
	Signal SignalConfig `yaml:"signal"`

	// Storage settings
	Storage StorageConfig `yaml:"storage"`

	// Backup settings
	Backup BackupConfig `yaml:"backup"`

	// Elevated roles by phone number
	Permissions PermissionsConfig `yaml:"permissions"`

	// Optional transports and features, gated like manifest extras
	Extras ExtrasConfig `yaml:"extras"`

	// Explore scraper settings
	Scraper ScraperConfig `yaml:"scraper"`

	// Metrics endpoint
	Metrics MetricsConfig `yaml:"metrics"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// SignalConfig configures the signal-cli transport.
type SignalConfig struct {
	BotNumber       string `yaml:"bot_number"`       // E.164 number the bot is registered under
	CLICommand      string `yaml:"cli_command"`      // signal-cli binary (or .bat wrapper)
	PollingInterval string `yaml:"polling_interval"` // idle sleep between receive polls
	CommandTimeout  string `yaml:"command_timeout"`  // per-invocation subprocess timeout
}

// StorageConfig configures SQLite storage.
type StorageConfig struct {
	DataDir      string `yaml:"data_dir"`
	DatabasePath string `yaml:"database_path"`
}

// BackupConfig configures backup snapshots.
type BackupConfig struct {
	Interval       string `yaml:"interval"`
	RetentionCount int    `yaml:"retention_count"`
}

// PermissionsConfig lists phone numbers holding elevated roles. Registered
// volunteers not listed here act as members; everyone else has the lowest
// role.
type PermissionsConfig struct {
	OwnerNumbers []string `yaml:"owner_numbers"`
	AdminNumbers []string `yaml:"admin_numbers"`
}

// ExtrasConfig gates optional features the dependency manifest declares
// behind extras.
type ExtrasConfig struct {
	Discord DiscordConfig `yaml:"discord"`
}

// DiscordConfig configures the optional Discord transport.
type DiscordConfig struct {
	Enabled bool   `yaml:"enabled"`
	Token   string `yaml:"token"`
	// RoleNameMap maps Discord role names to bot roles (owner/admin/member).
	RoleNameMap map[string]string `yaml:"role_name_map"`
}

// ScraperConfig configures the explore-page scraper.
type ScraperConfig struct {
	Enabled      bool   `yaml:"enabled"`
	BaseURL      string `yaml:"base_url"`
	Headless     bool   `yaml:"headless"`
	DownloadDir  string `yaml:"download_dir"`
	PageTimeout  string `yaml:"page_timeout"`
	StayDuration string `yaml:"stay_duration"` // how long to keep the page open after capture
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	Enabled    bool   `yaml:"enabled"`
	ListenAddr string `yaml:"listen_addr"`
}

// LoggingConfig configures category logging.
type LoggingConfig struct {
	DebugMode  bool            `yaml:"debug_mode"`
	Categories map[string]bool `yaml:"categories"`
	Level      string          `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Signal: SignalConfig{
			CLICommand:      "signal-cli",
			PollingInterval: "2s",
			CommandTimeout:  "30s",
		},
		Storage: StorageConfig{
			DataDir:      "data",
			DatabasePath: "data/bot_data.db",
		},
		Backup: BackupConfig{
			Interval:       "1h",
			RetentionCount: 10,
		},
		Extras: ExtrasConfig{
			Discord: DiscordConfig{Enabled: false},
		},
		Scraper: ScraperConfig{
			Enabled:      false,
			BaseURL:      "https://www.sora.com/explore",
			Headless:     true,
			DownloadDir:  "data/explorer_downloads",
			PageTimeout:  "20s",
			StayDuration: "5s",
		},
		Metrics: MetricsConfig{
			Enabled:    false,
			ListenAddr: ":9180",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file, applying .env and environment
// overrides. A missing config file yields the defaults.
func Load(path string) (*Config, error) {
	// Best effort: a .env in the working directory seeds the environment.
	_ = godotenv.Load()

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
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
	if v := os.Getenv("BOT_NUMBER"); v != "" {
		c.Signal.BotNumber = v
	}
	if v := os.Getenv("SIGNAL_CLI_COMMAND"); v != "" {
		c.Signal.CLICommand = v
	}
	if v := os.Getenv("SIGNALBOT_DB"); v != "" {
		c.Storage.DatabasePath = v
	}
	if v := os.Getenv("SIGNALBOT_DATA_DIR"); v != "" {
		c.Storage.DataDir = v
	}
	if v := os.Getenv("BOT_OWNER"); v != "" {
		c.Permissions.OwnerNumbers = splitList(v)
	}
	if v := os.Getenv("BOT_ADMINS"); v != "" {
		c.Permissions.AdminNumbers = splitList(v)
	}
	if v := os.Getenv("DISCORD_TOKEN"); v != "" {
		c.Extras.Discord.Token = v
	}
	if v := os.Getenv("DISCORD_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.Extras.Discord.Enabled = enabled
		}
	}
}

// splitList splits a comma-separated environment value, dropping empties.
func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// validate rejects configurations the service cannot run with.
func (c *Config) validate() error {
	if c.Extras.Discord.Enabled && c.Extras.Discord.Token == "" {
		return fmt.Errorf("discord transport enabled but no token set (DISCORD_TOKEN)")
	}
	if c.Backup.RetentionCount < 0 {
		return fmt.Errorf("backup retention_count must not be negative")
	}
	return nil
}

// GetPollingInterval returns the receive polling interval as a duration.
func (c *Config) GetPollingInterval() time.Duration {
	d, err := time.ParseDuration(c.Signal.PollingInterval)
	if err != nil {
		return 2 * time.Second
	}
	return d
}

// GetCommandTimeout returns the signal-cli subprocess timeout as a duration.
func (c *Config) GetCommandTimeout() time.Duration {
	d, err := time.ParseDuration(c.Signal.CommandTimeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// GetBackupInterval returns the periodic backup interval as a duration.
func (c *Config) GetBackupInterval() time.Duration {
	d, err := time.ParseDuration(c.Backup.Interval)
	if err != nil {
		return time.Hour
	}
	return d
}

// GetPageTimeout returns the scraper page-load timeout as a duration.
func (c *Config) GetPageTimeout() time.Duration {
	d, err := time.ParseDuration(c.Scraper.PageTimeout)
	if err != nil {
		return 20 * time.Second
	}
	return d
}

// GetStayDuration returns how long the scraper keeps a page open after
// capture.
func (c *Config) GetStayDuration() time.Duration {
	d, err := time.ParseDuration(c.Scraper.StayDuration)
	if err != nil {
		return 5 * time.Second
	}
	return d
}
