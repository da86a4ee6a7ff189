// Package config loads hall-pass's TOML configuration file and exposes the
// sections each policy package extends its built-in defaults with. Grounded
// on jeranaias-rigrun's internal/config.Config: a struct-tagged root with
// nested section structs, loaded with github.com/BurntSushi/toml, where
// user-supplied values extend rather than replace the built-in defaults.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the root of the TOML configuration file.
type Config struct {
	Commands CommandsConfig `toml:"commands"`
	Git      GitConfig      `toml:"git"`
	Paths    PathsConfig    `toml:"paths"`
	Audit    AuditConfig    `toml:"audit"`
	Debug    DebugConfig    `toml:"debug"`
}

// CommandsConfig extends the Safe-Command Registry.
type CommandsConfig struct {
	Safe      []string `toml:"safe"`
	AlwaysAsk []string `toml:"always_ask"`
}

// GitConfig extends Git Policy.
type GitConfig struct {
	ProtectedBranches []string `toml:"protected_branches"`
}

// PathRuleConfig holds one glob pattern. The tier lists in PathsConfig are
// plain string slices and do not use this type.
type PathRuleConfig struct {
	Glob string `toml:"glob"`
}

// PathsConfig extends the Path Policy's three tiers.
type PathsConfig struct {
	Protected []string `toml:"protected"`
	ReadOnly  []string `toml:"read_only"`
	NoDelete  []string `toml:"no_delete"`
}

// AuditConfig controls the audit log writer.
type AuditConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// DebugConfig controls the debug logger.
type DebugConfig struct {
	Enabled bool `toml:"enabled"`
}

// Location returns the config file path: $HALL_PASS_CONFIG if set, else
// ~/.config/hall-pass/config.toml.
func Location() string {
	if p := os.Getenv("HALL_PASS_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "hall-pass", "config.toml")
}

// Load reads and parses the config file at Location(). A missing file is
// not an error: it yields an empty Config, meaning every policy package
// runs with only its built-in defaults.
func Load() (*Config, error) {
	path := Location()
	if path == "" {
		return &Config{}, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Config{}, nil
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
