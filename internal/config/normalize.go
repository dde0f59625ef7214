package config

import "strings"

// normalize trims and expands the loaded values and fills the gaps a sparse
// file leaves behind.
func (c *Config) normalize() error {
	c.Daemon.Host = strings.TrimSpace(c.Daemon.Host)
	if c.Daemon.Host == "" {
		c.Daemon.Host = DefaultDaemonHost
	}
	if c.Daemon.Port == 0 {
		c.Daemon.Port = DefaultDaemonPort
	}
	if c.Daemon.TimeoutSeconds == 0 {
		c.Daemon.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if c.Daemon.BulkTimeoutSeconds == 0 {
		c.Daemon.BulkTimeoutSeconds = DefaultBulkTimeoutSeconds
	}
	if c.Daemon.ReadLimitKiB == 0 {
		c.Daemon.ReadLimitKiB = DefaultReadLimitKiB
	}
	if c.Daemon.BulkReadLimitKiB == 0 {
		c.Daemon.BulkReadLimitKiB = DefaultBulkReadLimitKiB
	}

	if c.Cache.DataTTLSeconds == 0 {
		c.Cache.DataTTLSeconds = DefaultDataTTLSeconds
	}
	if c.Cache.PathTTLSeconds == 0 {
		c.Cache.PathTTLSeconds = DefaultPathTTLSeconds
	}

	if c.Versions.AutoIncrementMinutes == 0 {
		c.Versions.AutoIncrementMinutes = DefaultAutoIncrementMinutes
	}

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	c.Storage.Root = strings.TrimSpace(c.Storage.Root)
	if c.Storage.Root != "" {
		expanded, err := expandPath(c.Storage.Root)
		if err != nil {
			return err
		}
		c.Storage.Root = expanded
	}
	return nil
}
