// Package config handles the XDG configuration directory, config.yaml, .env
// and environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"todo/internal/storage"
	"todo/internal/theme"
)

const (
	// AppName is the application directory name.
	AppName = "todo"

	// ConfigFile is the optional YAML settings file.
	ConfigFile = "config.yaml"

	// EnvFile is the optional dotenv file consulted for TODO_* variables.
	EnvFile = ".env"

	// OAuthClientFile is the OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename.
	TokenFile = "token.json"

	// HistoryFile is the interactive shell history filename.
	HistoryFile = "history"

	// DataDirName is the default directory for the file storage driver.
	DataDirName = "data"
)

// Environment variables that override config.yaml.
const (
	EnvStorageDriver = "TODO_STORAGE_DRIVER"
	EnvStoragePath   = "TODO_STORAGE_PATH"
	EnvStorageDSN    = "TODO_STORAGE_DSN"
	EnvRedisAddr     = "TODO_REDIS_ADDR"
	EnvRedisPassword = "TODO_REDIS_PASSWORD"
	EnvRedisDB       = "TODO_REDIS_DB"
	EnvStoragePrefix = "TODO_STORAGE_PREFIX"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string `yaml:"-"`

	// Debug enables debug logging.
	Debug bool `yaml:"debug"`

	// Quiet suppresses informational output.
	Quiet bool `yaml:"quiet"`

	// Storage selects and configures the durable storage driver.
	Storage Storage `yaml:"storage"`
}

// Storage configures the storage driver.
type Storage struct {
	// Driver is one of storage.Drivers.
	Driver string `yaml:"driver"`

	// Path is the data directory for the file driver and the database file
	// for the sqlite driver. Empty means a default under Dir.
	Path string `yaml:"path"`

	// DSN is the MySQL data source name.
	DSN string `yaml:"dsn"`

	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`

	// Prefix namespaces Redis keys.
	Prefix string `yaml:"prefix"`

	// Key overrides the slot holding the task list.
	Key string `yaml:"key"`
}

// New creates a Config with the default or specified config directory and
// default settings. It reads no files.
// If configDir is empty, uses XDG_CONFIG_HOME/todo or $HOME/.config/todo.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{
		Dir:     dir,
		Storage: Storage{Driver: storage.DriverFile},
	}, nil
}

// Load creates a Config like New, reads config.yaml and then applies TODO_*
// variables from the environment or, failing that, from the .env file in the
// config directory. The process environment is not modified.
func Load(configDir string) (*Config, error) {
	cfg, err := New(configDir)
	if err != nil {
		return nil, err
	}

	dotenv := map[string]string{}
	envPath := filepath.Join(cfg.Dir, EnvFile)
	if fileExists(envPath) {
		if dotenv, err = godotenv.Read(envPath); err != nil {
			return nil, fmt.Errorf("read %s: %w", envPath, err)
		}
	}

	if err := cfg.readYAML(); err != nil {
		return nil, err
	}
	lookup := func(name string) (string, bool) {
		if v, ok := os.LookupEnv(name); ok {
			return v, true
		}
		v, ok := dotenv[name]
		return v, ok
	}
	if err := cfg.applyEnv(lookup); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readYAML() error {
	path := c.ConfigPath()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	setString := func(name string, dst *string) {
		if v, ok := lookup(name); ok {
			*dst = v
		}
	}
	setString(EnvStorageDriver, &c.Storage.Driver)
	setString(EnvStoragePath, &c.Storage.Path)
	setString(EnvStorageDSN, &c.Storage.DSN)
	setString(EnvRedisAddr, &c.Storage.RedisAddr)
	setString(EnvRedisPassword, &c.Storage.RedisPassword)
	setString(EnvStoragePrefix, &c.Storage.Prefix)

	if v, ok := lookup(EnvRedisDB); ok && v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: not a number: %q", EnvRedisDB, v)
		}
		c.Storage.RedisDB = db
	}
	return nil
}

// Validate checks the storage settings.
func (c *Config) Validate() error {
	if c.Storage.Driver == "" {
		c.Storage.Driver = storage.DriverFile
	}
	if !storage.IsValidDriver(c.Storage.Driver) {
		return fmt.Errorf("unknown storage driver: %s (use one of %v)", c.Storage.Driver, storage.Drivers)
	}
	if c.Storage.Driver == storage.DriverMySQL && c.Storage.DSN == "" {
		return fmt.Errorf("storage driver mysql requires a dsn (%s)", EnvStorageDSN)
	}
	if c.Storage.Driver == storage.DriverRedis && c.Storage.RedisAddr == "" {
		return fmt.Errorf("storage driver redis requires an address (%s)", EnvRedisAddr)
	}
	if c.Storage.Key == theme.Key {
		return fmt.Errorf("storage key %s is reserved for the theme preference", theme.Key)
	}
	if c.Storage.RedisDB < 0 {
		return fmt.Errorf("redis db must not be negative: %d", c.Storage.RedisDB)
	}
	return nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// ConfigPath returns the path to config.yaml.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// DataDir returns the directory used by the file driver.
func (c *Config) DataDir() string {
	if c.Storage.Path != "" {
		return c.Storage.Path
	}
	return filepath.Join(c.Dir, DataDirName)
}

// SQLitePath returns the database file used by the sqlite driver.
func (c *Config) SQLitePath() string {
	if c.Storage.Path != "" {
		return c.Storage.Path
	}
	return filepath.Join(c.Dir, DataDirName, "todo.db")
}

// HistoryPath returns the shell history file.
func (c *Config) HistoryPath() string {
	return filepath.Join(c.Dir, HistoryFile)
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	return fileExists(c.OAuthClientPath())
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	return fileExists(c.TokenPath())
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
