package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"termchat/log"

	"github.com/gofrs/flock"
)

const (
	ConfigFileName = "config.json"
	LockFileName   = "config.lock"

	// DefaultLockTimeout is the default timeout for acquiring the config lock
	DefaultLockTimeout = 5 * time.Second

	// ConfigDirEnv overrides the configuration directory.
	ConfigDirEnv = "TERMCHAT_CONFIG_DIR"
)

// Unknown window policies. They decide what happens when a plugin writes to
// or focuses a tag that has no window.
const (
	UnknownWindowIgnore = "ignore"
	UnknownWindowCreate = "create"
)

// LogSettings mirrors log.LogConfig in the persisted config file.
type LogSettings struct {
	Enabled    bool   `json:"enabled"`
	Dir        string `json:"dir,omitempty"`
	MaxSize    int    `json:"max_size_mb"`
	MaxFiles   int    `json:"max_files"`
	MaxAge     int    `json:"max_age_days"`
	Compress   bool   `json:"compress"`
	Debug      bool   `json:"debug"`
	PluginLogs bool   `json:"plugin_logs"`
}

// Config represents the persisted application configuration.
type Config struct {
	// TickIntervalMs is the host tick cadence driving timed plugin tasks.
	TickIntervalMs int `json:"tick_interval_ms"`
	// UnknownWindowPolicy is one of UnknownWindowIgnore or UnknownWindowCreate.
	UnknownWindowPolicy string `json:"unknown_window_policy"`
	// Plugins lists Lua scripts loaded at startup.
	Plugins []string `json:"plugins"`
	// Beep rings the terminal bell on console alerts.
	Beep bool `json:"beep"`
	// Theme maps display attributes (text, online, offline, away, incoming,
	// error, titlebar) to lipgloss colours.
	Theme map[string]string `json:"theme,omitempty"`
	Logs  LogSettings       `json:"logs"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		TickIntervalMs:      1000,
		UnknownWindowPolicy: UnknownWindowIgnore,
		Plugins:             []string{},
		Beep:                false,
		Theme:               map[string]string{},
		Logs: LogSettings{
			Enabled:    true,
			MaxSize:    10,
			MaxFiles:   5,
			MaxAge:     30,
			Compress:   true,
			PluginLogs: true,
		},
	}
}

// GetConfigDir returns the path to the application's configuration directory
func GetConfigDir() (string, error) {
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		return dir, nil
	}
	return log.GetConfigDir()
}

// GetConfigPath returns the path of the config file.
func GetConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

// TickInterval returns the configured tick cadence, never less than 100ms.
func (c *Config) TickInterval() time.Duration {
	d := time.Duration(c.TickIntervalMs) * time.Millisecond
	if d < 100*time.Millisecond {
		return 100 * time.Millisecond
	}
	return d
}

// CreateUnknownWindows reports whether writes to unknown tags create windows.
func (c *Config) CreateUnknownWindows() bool {
	return c.UnknownWindowPolicy == UnknownWindowCreate
}

// LogConfig converts the persisted log settings into a log.LogConfig.
func (c *Config) LogConfig() *log.LogConfig {
	return &log.LogConfig{
		LogsEnabled:   c.Logs.Enabled,
		LogsDir:       c.Logs.Dir,
		LogMaxSize:    c.Logs.MaxSize,
		LogMaxFiles:   c.Logs.MaxFiles,
		LogMaxAge:     c.Logs.MaxAge,
		LogCompress:   c.Logs.Compress,
		Debug:         c.Logs.Debug,
		UsePluginLogs: c.Logs.PluginLogs,
	}
}

func (c *Config) validate() error {
	switch c.UnknownWindowPolicy {
	case UnknownWindowIgnore, UnknownWindowCreate:
	case "":
		c.UnknownWindowPolicy = UnknownWindowIgnore
	default:
		return fmt.Errorf("invalid unknown_window_policy %q (want %q or %q)",
			c.UnknownWindowPolicy, UnknownWindowIgnore, UnknownWindowCreate)
	}
	if c.TickIntervalMs <= 0 {
		c.TickIntervalMs = DefaultConfig().TickIntervalMs
	}
	if c.Theme == nil {
		c.Theme = map[string]string{}
	}
	return nil
}

// LoadConfig loads the config from disk. If it cannot be done, we return the default config.
func LoadConfig() *Config {
	path, err := GetConfigPath()
	if err != nil {
		log.ErrorLog.Printf("failed to get config path: %v", err)
		return DefaultConfig()
	}

	cfg, err := LoadConfigFrom(path)
	if err != nil {
		if os.IsNotExist(err) {
			defaultCfg := DefaultConfig()
			if saveErr := SaveConfigTo(path, defaultCfg); saveErr != nil {
				log.WarningLog.Printf("failed to save default config: %v", saveErr)
			}
			return defaultCfg
		}
		log.WarningLog.Printf("failed to load config: %v", err)
		return DefaultConfig()
	}
	return cfg
}

// LoadConfigFrom reads and validates the config file at path. Fields missing
// from the file keep their default values.
func LoadConfigFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveConfig saves the config to the default location.
func SaveConfig(cfg *Config) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	return SaveConfigTo(path, cfg)
}

// SaveConfigTo writes cfg to path while holding an exclusive file lock so
// that two running clients never interleave writes.
func SaveConfigTo(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	fileLock := flock.New(filepath.Join(dir, LockFileName))
	ctx, cancel := context.WithTimeout(context.Background(), DefaultLockTimeout)
	defer cancel()

	locked, err := fileLock.TryLockContext(ctx, 100*time.Millisecond)
	if err != nil {
		return fmt.Errorf("failed to acquire write lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("could not acquire write lock within timeout")
	}
	defer fileLock.Unlock()

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write to a temporary file first to ensure atomicity
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temporary config file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to atomically update config file: %w", err)
	}
	return nil
}
