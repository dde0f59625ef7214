package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDaemon(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateDaemon() error {
	if c.Daemon.Port < 1 || c.Daemon.Port > 65535 {
		return fmt.Errorf("daemon.port must be between 1 and 65535, got %d", c.Daemon.Port)
	}
	if c.Daemon.TimeoutSeconds < 0 {
		return errors.New("daemon.timeout_seconds must not be negative")
	}
	if c.Daemon.BulkTimeoutSeconds < c.Daemon.TimeoutSeconds {
		return errors.New("daemon.bulk_timeout_seconds must not be shorter than daemon.timeout_seconds")
	}
	if c.Daemon.ReadLimitKiB < 1 {
		return errors.New("daemon.read_limit_kib must be at least 1")
	}
	if c.Daemon.BulkReadLimitKiB < c.Daemon.ReadLimitKiB {
		return errors.New("daemon.bulk_read_limit_kib must not be smaller than daemon.read_limit_kib")
	}
	return nil
}

func (c *Config) validateCache() error {
	if c.Cache.DataTTLSeconds < 0 || c.Cache.PathTTLSeconds < 0 {
		return errors.New("cache TTLs must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	return nil
}
