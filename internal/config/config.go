package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the settings of the alarm agenda server.
type Config struct {
	// StateFile is the path to the agenda store (JSON file or SQLite database).
	StateFile string `yaml:"state_file"`
	// Storage selects the agenda backend: "json" or "sqlite".
	Storage string `yaml:"storage"`
	// LogLevel is the minimum level written to stderr.
	LogLevel string `yaml:"log_level"`
	// HealthAddress enables the gRPC health endpoint when not empty.
	HealthAddress string `yaml:"health_addr,omitempty"`
}

const (
	// DefaultConfigFilename is the default filename for server settings.
	DefaultConfigFilename = "alarm-agenda-settings.yaml"

	// DefaultStateFilename is the default filename for the JSON agenda.
	DefaultStateFilename = "alarms.json"

	// DefaultSQLiteFilename is the default filename for the SQLite agenda.
	DefaultSQLiteFilename = "alarms.db"

	// DefaultLogLevel is used when no level is configured.
	DefaultLogLevel = "info"

	// DefaultFilePermissions is the default file permission for written files.
	DefaultFilePermissions = 0o600
)

const (
	// StorageJSON keeps the agenda in a pretty-printed JSON document.
	StorageJSON = "json"
	// StorageSQLite keeps the agenda in a SQLite table.
	StorageSQLite = "sqlite"
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errUnknownStorage is returned for a storage kind other than json or sqlite.
	errUnknownStorage = errors.New("unknown storage")
)

// Default returns the settings used when no settings file exists.
func Default() *Config {
	return &Config{
		StateFile: DefaultStateFilename,
		Storage:   StorageJSON,
		LogLevel:  DefaultLogLevel,
	}
}

// Load reads configuration from the provided path and validates it.
// A missing file at the default location is not an error: defaults apply.
func Load(path string) (*Config, error) {
	explicit := path != "" && path != DefaultConfigFilename
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}

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

// Save writes settings to the provided path.
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

	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate fills defaults and checks the provided settings.
func Validate(settings *Config) error {
	if settings == nil {
		return errConfigIsNotSet
	}

	if settings.LogLevel == "" {
		settings.LogLevel = DefaultLogLevel
	}

	switch settings.Storage {
	case "":
		settings.Storage = StorageJSON
	case StorageJSON, StorageSQLite:
	default:
		return fmt.Errorf("%w: %q", errUnknownStorage, settings.Storage)
	}

	if settings.StateFile == "" {
		settings.StateFile = DefaultStateFilename
		if settings.Storage == StorageSQLite {
			settings.StateFile = DefaultSQLiteFilename
		}
	}

	if settings.HealthAddress == "" {
		return nil
	}

	if _, _, err := net.SplitHostPort(settings.HealthAddress); err != nil {
		return fmt.Errorf("invalid health address: %w", err)
	}

	return nil
}
