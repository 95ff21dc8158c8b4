package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMergesOverlayOntoDefaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "default.yaml"), `
daemon:
  log_level: info
grpc:
  enabled: false
`)
	writeFile(t, filepath.Join(dir, "prod.yaml"), `
daemon:
  log_level: warn
grpc:
  enabled: true
  addr: ":9443"
`)

	cfg, err := Load(dir, "prod")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Daemon.LogLevel != "warn" {
		t.Fatalf("log level = %q, want warn", cfg.Daemon.LogLevel)
	}
	if !cfg.GRPC.Enabled || cfg.GRPC.Addr != ":9443" {
		t.Fatalf("grpc = %+v, want enabled on :9443", cfg.GRPC)
	}
	// Fields untouched by either file keep their DefaultConfig value.
	if cfg.Tracker.ReachabilityThreshold != 3 {
		t.Fatalf("reachability threshold = %d, want default 3", cfg.Tracker.ReachabilityThreshold)
	}
}

func TestLoadSkipsMissingOverlay(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "default.yaml"), "daemon:\n  log_level: debug\n")

	cfg, err := Load(dir, "nonexistent-mode")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Daemon.LogLevel != "debug" {
		t.Fatalf("log level = %q, want debug", cfg.Daemon.LogLevel)
	}
}

func TestEnvOverridesWinOverFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "default.yaml"), "daemon:\n  log_level: info\n")

	t.Setenv("RACKD_LOG_LEVEL", "error")
	cfg, err := Load(dir, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Daemon.LogLevel != "error" {
		t.Fatalf("log level = %q, want error", cfg.Daemon.LogLevel)
	}
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %q: %v", path, err)
	}
}
