// ABOUTME: Fitness configuration management with backend selection.
// ABOUTME: Handles settings, .env and FITNESS_* overrides, and the storage backend factory.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/harperreed/fitness/internal/charm"
	"github.com/harperreed/fitness/internal/storage"
	"github.com/joho/godotenv"
)

// Backend names accepted by OpenStorage.
const (
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
	BackendFile   = "file"
	BackendCharm  = "charm"
)

// Backends lists every supported storage backend.
var Backends = []string{BackendSQLite, BackendBadger, BackendFile, BackendCharm}

// DefaultHTTPAddr is where `fitness serve` listens by default.
const DefaultHTTPAddr = ":8080"

// Config stores fitness tool configuration.
type Config struct {
	// Backend selects the storage backend: "sqlite" (default), "badger", "file" or "charm".
	Backend string `json:"backend,omitempty"`

	// DataDir is the root directory for data storage.
	// SQLite puts fitness.db here, badger a badger/ folder, file a records/ folder.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/fitness.
	DataDir string `json:"data_dir,omitempty"`

	// DemoData seeds an empty store with the sample dataset on first run.
	DemoData bool `json:"demo_data,omitempty"`

	// LogLevel is one of debug, info, warn, error. Defaults to warn.
	LogLevel string `json:"log_level,omitempty"`

	// HTTPAddr is the listen address for the HTTP API.
	HTTPAddr string `json:"http_addr,omitempty"`

	// CharmHost overrides the Charm server for the charm backend.
	CharmHost string `json:"charm_host,omitempty"`
}

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return BackendSQLite
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetLogLevel returns the configured log level, defaulting to "warn".
func (c *Config) GetLogLevel() string {
	if c.LogLevel == "" {
		return "warn"
	}
	return c.LogLevel
}

// GetHTTPAddr returns the HTTP listen address.
func (c *Config) GetHTTPAddr() string {
	if c.HTTPAddr == "" {
		return DefaultHTTPAddr
	}
	return c.HTTPAddr
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// IsValidBackend checks if name is a supported backend.
func IsValidBackend(name string) bool {
	for _, b := range Backends {
		if b == name {
			return true
		}
	}
	return false
}

// OpenStorage creates a Repository implementation based on the configured backend.
func (c *Config) OpenStorage() (storage.Repository, error) {
	return c.OpenBackend(c.GetBackend())
}

// BackendPath returns where a local backend keeps its data under the
// configured data dir. Charm manages its own location and returns "".
func (c *Config) BackendPath(backend string) string {
	dataDir := c.GetDataDir()
	switch backend {
	case BackendSQLite:
		return filepath.Join(dataDir, "fitness.db")
	case BackendBadger:
		return filepath.Join(dataDir, "badger")
	case BackendFile:
		return filepath.Join(dataDir, "records")
	}
	return ""
}

// OpenBackend opens the named backend rooted at the configured data dir.
func (c *Config) OpenBackend(backend string) (storage.Repository, error) {
	switch backend {
	case BackendSQLite:
		return storage.Open(c.BackendPath(backend))
	case BackendBadger:
		return storage.OpenBadger(c.BackendPath(backend))
	case BackendFile:
		return storage.NewFileStore(c.BackendPath(backend))
	case BackendCharm:
		return charm.Open(charm.Options{Host: c.CharmHost, AutoSync: true})
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "fitness", "config.json")
}

// LoadDotEnv loads variables from .env files that exist. Variables already
// set in the environment win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var present []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return nil
	}
	if err := godotenv.Load(present...); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

// Load reads config from disk and applies FITNESS_* overrides.
func Load() (*Config, error) {
	cfg, err := LoadFile()
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads config from disk without environment overrides.
func LoadFile() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyEnv overrides fields from FITNESS_* environment variables.
func (c *Config) ApplyEnv() error {
	if v, ok := os.LookupEnv("FITNESS_BACKEND"); ok && v != "" {
		c.Backend = v
	}
	if v, ok := os.LookupEnv("FITNESS_DATA_DIR"); ok && v != "" {
		c.DataDir = v
	}
	if v, ok := os.LookupEnv("FITNESS_LOG_LEVEL"); ok && v != "" {
		c.LogLevel = v
	}
	if v, ok := os.LookupEnv("FITNESS_HTTP_ADDR"); ok && v != "" {
		c.HTTPAddr = v
	}
	if v, ok := os.LookupEnv("FITNESS_CHARM_HOST"); ok && v != "" {
		c.CharmHost = v
	}
	if v, ok := os.LookupEnv("FITNESS_DEMO_DATA"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("FITNESS_DEMO_DATA: %w", err)
		}
		c.DemoData = b
	}
	return nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
