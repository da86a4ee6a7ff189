package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLocationEnvOverride(t *testing.T) {
	t.Setenv("HALL_PASS_CONFIG", "/tmp/custom-hall-pass.toml")
	if got := Location(); got != "/tmp/custom-hall-pass.toml" {
		t.Errorf("Location() = %q, want /tmp/custom-hall-pass.toml", got)
	}
}

func TestLoadMissingFileReturnsEmptyConfig(t *testing.T) {
	t.Setenv("HALL_PASS_CONFIG", filepath.Join(t.TempDir(), "does-not-exist.toml"))
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(cfg.Commands.Safe) != 0 {
		t.Errorf("expected empty Commands.Safe, got %v", cfg.Commands.Safe)
	}
}

func TestLoadParsesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	contents := `
[commands]
safe = ["mytool"]
always_ask = ["scarytool"]

[git]
protected_branches = ["release"]

[paths]
protected = ["/secrets/**"]

[audit]
enabled = true
path = "/tmp/audit.log"

[debug]
enabled = true
`
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv("HALL_PASS_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(cfg.Commands.Safe) != 1 || cfg.Commands.Safe[0] != "mytool" {
		t.Errorf("Commands.Safe = %v", cfg.Commands.Safe)
	}
	if !cfg.Audit.Enabled || cfg.Audit.Path != "/tmp/audit.log" {
		t.Errorf("Audit = %+v", cfg.Audit)
	}
	if !cfg.Debug.Enabled {
		t.Error("expected Debug.Enabled = true")
	}
	if len(cfg.Git.ProtectedBranches) != 1 || cfg.Git.ProtectedBranches[0] != "release" {
		t.Errorf("Git.ProtectedBranches = %v", cfg.Git.ProtectedBranches)
	}
}
