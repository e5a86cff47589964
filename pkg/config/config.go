package config

import (
	"encoding/json"
	"os"
	"os/user"
	"path/filepath"
	"strconv"
	"time"

	"scrib/pkg/errors"
)

// Storage backends
const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Config holds application configuration
type Config struct {
	DataDir            string `json:"dataDir"`
	Addr               string `json:"addr"`
	Backend            string `json:"backend"`
	DatabaseURL        string `json:"databaseUrl,omitempty"`
	TrashRetentionDays int    `json:"trashRetentionDays"`

	path string
}

// GetDefaultDataPath returns the default directory for the collection files
func GetDefaultDataPath() string {
	currentUser, err := user.Current()
	if err != nil {
		return "./data"
	}
	return filepath.Join(currentUser.HomeDir, "Documents", "Scrib", "Data")
}

// GetConfigFilePath returns the path where the config file should be stored
func GetConfigFilePath() string {
	currentUser, err := user.Current()
	if err != nil {
		return "./config.json"
	}
	return filepath.Join(currentUser.HomeDir, ".config", "scrib", "config.json")
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		DataDir:            GetDefaultDataPath(),
		Addr:               ":8080",
		Backend:            BackendFile,
		TrashRetentionDays: 7,
	}
}

// Load reads the config file at the default path
func Load() (*Config, error) {
	return LoadFrom(GetConfigFilePath())
}

// LoadFrom reads configuration from path, using defaults if the file
// doesn't exist. Environment variables override file values.
func LoadFrom(path string) (*Config, error) {
	config := Default()
	config.path = path

	if data, err := os.ReadFile(path); err == nil {
		if err := json.Unmarshal(data, config); err != nil {
			return nil, errors.Cause(errors.ErrConfigLoadFailed, err).WithContext("path", path)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Cause(errors.ErrConfigLoadFailed, err).WithContext("path", path)
	}

	config.applyEnv()

	validator := errors.NewValidator()
	if result := validator.ValidateRetention(config.TrashRetention()); !result.IsValid {
		return nil, result.GetFirstError()
	}

	return config, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("SCRIB_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("SCRIB_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("SCRIB_BACKEND"); v != "" {
		c.Backend = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("SCRIB_TRASH_RETENTION_DAYS"); v != "" {
		if days, err := strconv.Atoi(v); err == nil {
			c.TrashRetentionDays = days
		}
	}
}

// TrashRetention returns how long deleted notes are kept
func (c *Config) TrashRetention() time.Duration {
	return time.Duration(c.TrashRetentionDays) * 24 * time.Hour
}

// Path returns the file the configuration was loaded from
func (c *Config) Path() string {
	if c.path == "" {
		return GetConfigFilePath()
	}
	return c.path
}

// Save saves the configuration to file
func (c *Config) Save() error {
	configFile := c.Path()

	if err := os.MkdirAll(filepath.Dir(configFile), 0755); err != nil {
		return errors.Cause(errors.ErrConfigSaveFailed, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Cause(errors.ErrConfigSaveFailed, err)
	}

	if err := os.WriteFile(configFile, data, 0644); err != nil {
		return errors.Cause(errors.ErrConfigSaveFailed, err)
	}
	return nil
}
