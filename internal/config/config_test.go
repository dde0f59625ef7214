package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.toml")

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Fatal("missing file reported as existing")
	}
	if resolved == "" {
		t.Fatal("resolved path empty")
	}
	if cfg.Daemon.Host != DefaultDaemonHost || cfg.Daemon.Port != DefaultDaemonPort {
		t.Fatalf("daemon defaults = %+v", cfg.Daemon)
	}
	if cfg.Cache.DataTTLSeconds != DefaultDataTTLSeconds {
		t.Fatalf("cache defaults = %+v", cfg.Cache)
	}
}

func TestLoadMergesPartialFile(t *testing.T) {
	path := writeConfig(t, `
[daemon]
host = "  render-wall  "
port = 4242

[logging]
format = "JSON"
`)

	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatal("file not seen")
	}
	if cfg.Daemon.Host != "render-wall" {
		t.Fatalf("host = %q", cfg.Daemon.Host)
	}
	if cfg.Daemon.Port != 4242 {
		t.Fatalf("port = %d", cfg.Daemon.Port)
	}
	// Everything unset falls back to defaults.
	if cfg.Daemon.TimeoutSeconds != DefaultTimeoutSeconds {
		t.Fatalf("timeout = %d", cfg.Daemon.TimeoutSeconds)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("format = %q", cfg.Logging.Format)
	}
	if cfg.Versions.AutoIncrementMinutes != DefaultAutoIncrementMinutes {
		t.Fatalf("auto increment = %d", cfg.Versions.AutoIncrementMinutes)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    string
	}{
		{"bad port", "[daemon]\nport = 99999\n", "daemon.port"},
		{"bulk shorter than single", "[daemon]\ntimeout_seconds = 10\nbulk_timeout_seconds = 2\n", "bulk_timeout_seconds"},
		{"bad format", "[logging]\nformat = \"yaml\"\n", "logging.format"},
		{"bad level", "[logging]\nlevel = \"verbose\"\n", "logging.level"},
		{"negative ttl", "[cache]\ndata_ttl_seconds = -1\n", "TTLs"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, tc.content)
			_, _, _, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("err = %v, want mention of %s", err, tc.want)
			}
		})
	}
}

func TestDurationHelpers(t *testing.T) {
	cfg := Default()
	if cfg.DaemonTimeout() != 2*time.Second {
		t.Fatalf("timeout = %v", cfg.DaemonTimeout())
	}
	if cfg.DaemonBulkTimeout() != 5*time.Second {
		t.Fatalf("bulk timeout = %v", cfg.DaemonBulkTimeout())
	}
	if cfg.DataTTL() != 2*time.Second || cfg.PathTTL() != 30*time.Second {
		t.Fatalf("TTLs = %v %v", cfg.DataTTL(), cfg.PathTTL())
	}
	if cfg.AutoIncrementAge() != 20*time.Minute {
		t.Fatalf("auto increment age = %v", cfg.AutoIncrementAge())
	}
}

func TestCreateSampleLoadsClean(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}

	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("sample config must load: %v", err)
	}
	if !exists {
		t.Fatal("sample file not found after write")
	}
	// The sample documents the defaults, so loading it is a no-op.
	if *cfg != Default() {
		t.Fatalf("sample config drifted from defaults: %+v", cfg)
	}
}

func TestStorageRootIsExpanded(t *testing.T) {
	path := writeConfig(t, "[storage]\nroot = \"~/projects\"\n")

	cfg, _, _, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if cfg.Storage.Root != filepath.Join(home, "projects") {
		t.Fatalf("root = %q", cfg.Storage.Root)
	}
}
