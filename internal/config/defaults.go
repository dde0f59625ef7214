package config

// Default daemon connection values. The port matches what the pipeline
// daemon listens on out of the box.
const (
	DefaultDaemonHost = "localhost"
	DefaultDaemonPort = 18185

	DefaultTimeoutSeconds     = 2
	DefaultBulkTimeoutSeconds = 5
	DefaultReadLimitKiB       = 64
	DefaultBulkReadLimitKiB   = 6144

	DefaultDataTTLSeconds = 2
	DefaultPathTTLSeconds = 30

	DefaultAutoIncrementMinutes = 20
)

// Default returns a configuration populated with every default value. A
// missing config file loads as exactly this.
func Default() Config {
	return Config{
		Daemon: Daemon{
			Host:               DefaultDaemonHost,
			Port:               DefaultDaemonPort,
			TimeoutSeconds:     DefaultTimeoutSeconds,
			BulkTimeoutSeconds: DefaultBulkTimeoutSeconds,
			ReadLimitKiB:       DefaultReadLimitKiB,
			BulkReadLimitKiB:   DefaultBulkReadLimitKiB,
		},
		Cache: Cache{
			DataTTLSeconds: DefaultDataTTLSeconds,
			PathTTLSeconds: DefaultPathTTLSeconds,
		},
		Versions: Versions{
			AutoIncrementMinutes: DefaultAutoIncrementMinutes,
		},
		Logging: Logging{
			Format: "console",
			Level:  "info",
		},
	}
}
