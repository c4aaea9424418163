package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds settings shared by the alarm binaries.
type Config struct {
	// ServerAddress is the gRPC address alarm-server listens on and clients dial.
	ServerAddress string `yaml:"server_addr"`
	// Timeout is the duration for storage operations and RPC calls.
	Timeout time.Duration `yaml:"timeout"`
	// LogLevel is the minimum log level (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`
	// LogFormat is the log encoding (console or json).
	LogFormat string `yaml:"log_format"`
	// Storage selects where the alarm collection is persisted.
	Storage Storage `yaml:"storage"`
}

// Storage describes the device key-value storage.
type Storage struct {
	// Backend is one of BackendFile, BackendSQLite or BackendMemory.
	Backend string `yaml:"backend"`
	// Path is the data directory (file) or database file (sqlite).
	Path string `yaml:"path"`
	// Key is the storage key of the alarm collection.
	Key string `yaml:"key"`
}

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

const (
	// DefaultConfigFilename is the default filename for settings.
	DefaultConfigFilename = "alarm-manager-settings.yaml"

	// DefaultServerAddress is used when no server address is configured.
	DefaultServerAddress = "127.0.0.1:50051"

	// DefaultDataDir is the default directory of the file backend.
	DefaultDataDir = "alarm-manager-data"

	// DefaultDatabaseFilename is the default database of the sqlite backend.
	DefaultDatabaseFilename = "alarm-manager.db"

	// DefaultStorageKey is the key the alarm collection is stored under.
	DefaultStorageKey = "alarms"

	// DefaultTimeout is the default duration for storage and network operations.
	DefaultTimeout = 5 * time.Second

	// DefaultLogLevel is used when no level is configured.
	DefaultLogLevel = "info"

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errUnknownBackend is returned for unsupported storage backends.
	errUnknownBackend = errors.New("unknown storage backend")
	// errInvalidStorageKey is returned for keys that are not plain names.
	errInvalidStorageKey = errors.New("storage key must be a plain name")
)

// Default returns a validated configuration with every default applied.
func Default() *Config {
	cfg := new(Config)

	// Defaults always validate.
	_ = Validate(cfg)

	return cfg
}

// Load reads configuration from the provided path and validates it.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadOrDefault behaves like Load but returns Default when the file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	return cfg, err
}

// Save writes the configuration to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the settings and fills in defaults for optional fields.
func Validate(settings *Config) error {
	if settings == nil {
		return errConfigIsNotSet
	}

	if settings.ServerAddress == "" {
		settings.ServerAddress = DefaultServerAddress
	}

	if _, _, err := net.SplitHostPort(settings.ServerAddress); err != nil {
		return fmt.Errorf("invalid server address: %w", err)
	}

	if settings.Timeout <= 0 {
		settings.Timeout = DefaultTimeout
	}

	if settings.LogLevel == "" {
		settings.LogLevel = DefaultLogLevel
	}

	return validateStorage(&settings.Storage)
}

// validateStorage checks the storage section and applies backend defaults.
func validateStorage(storage *Storage) error {
	storage.Backend = strings.ToLower(strings.TrimSpace(storage.Backend))

	switch storage.Backend {
	case "", BackendFile:
		storage.Backend = BackendFile
		if storage.Path == "" {
			storage.Path = DefaultDataDir
		}
	case BackendSQLite:
		if storage.Path == "" {
			storage.Path = DefaultDatabaseFilename
		}
	case BackendMemory:
	default:
		return fmt.Errorf("%w: %q", errUnknownBackend, storage.Backend)
	}

	if storage.Key == "" {
		storage.Key = DefaultStorageKey
	}

	if strings.ContainsAny(storage.Key, `/\`) {
		return fmt.Errorf("%w: %q", errInvalidStorageKey, storage.Key)
	}

	return nil
}
