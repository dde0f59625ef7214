package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Storage points at the pipeline file tree.
type Storage struct {
	// Root overrides the storage root the daemon reports. Usually empty;
	// set it to browse a tree while the daemon is offline.
	Root string `toml:"root"`
}

// Daemon contains the connection settings for the pipeline daemon.
type Daemon struct {
	Host               string `toml:"host"`
	Port               int    `toml:"port"`
	TimeoutSeconds     int    `toml:"timeout_seconds"`
	BulkTimeoutSeconds int    `toml:"bulk_timeout_seconds"`
	ReadLimitKiB       int    `toml:"read_limit_kib"`
	BulkReadLimitKiB   int    `toml:"bulk_read_limit_kib"`
}

// Cache contains the freshness windows for daemon replies.
type Cache struct {
	DataTTLSeconds int `toml:"data_ttl_seconds"`
	PathTTLSeconds int `toml:"path_ttl_seconds"`
}

// Versions contains version lifecycle policy.
type Versions struct {
	// AutoIncrementMinutes is how old the latest snapshot may grow
	// before the next save is forced onto a fresh version number.
	AutoIncrementMinutes int `toml:"auto_increment_minutes"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for the CLI.
type Config struct {
	Storage  Storage  `toml:"storage"`
	Daemon   Daemon   `toml:"daemon"`
	Cache    Cache    `toml:"cache"`
	Versions Versions `toml:"versions"`
	Logging  Logging  `toml:"logging"`
}

// DaemonTimeout returns the per-query timeout as a duration.
func (c *Config) DaemonTimeout() time.Duration {
	return time.Duration(c.Daemon.TimeoutSeconds) * time.Second
}

// DaemonBulkTimeout returns the bulk-query timeout as a duration.
func (c *Config) DaemonBulkTimeout() time.Duration {
	return time.Duration(c.Daemon.BulkTimeoutSeconds) * time.Second
}

// DataTTL returns the metadata cache window as a duration.
func (c *Config) DataTTL() time.Duration {
	return time.Duration(c.Cache.DataTTLSeconds) * time.Second
}

// PathTTL returns the path cache window as a duration.
func (c *Config) PathTTL() time.Duration {
	return time.Duration(c.Cache.PathTTLSeconds) * time.Second
}

// AutoIncrementAge returns the version auto-increment policy as a duration.
func (c *Config) AutoIncrementAge() time.Duration {
	return time.Duration(c.Versions.AutoIncrementMinutes) * time.Minute
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/slate/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and every unset value defaulted. It
// reports the resolved path and whether a file actually existed there.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("slate.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
