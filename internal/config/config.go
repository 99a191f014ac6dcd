// Package config loads and saves disassembler-wide settings: which
// extensions are active, how disassembly output is formatted, and
// where a linear/nonlinear walk starts by default.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"

	"github.com/ETC-A/ETCa-decompiler/internal/decode"
)

// Config is the root disassembler configuration.
type Config struct {
	// Extensions maps an extension's short name (e.g. "hw", "saf") to
	// whether it is enabled. A short name absent from the table is
	// treated as disabled.
	Extensions map[string]bool `toml:"extensions"`

	Display struct {
		// AddressDigits is the width of the zero-padded byte-offset
		// column; spec.md §6 fixes this at 4 for the core CLI format.
		AddressDigits int `toml:"address_digits"`
		// GroupBytes is how many raw bytes are grouped together
		// between spaces; spec.md §6 fixes this at 2 ("grouped in
		// pairs") for the core CLI format.
		GroupBytes   int  `toml:"group_bytes"`
		UppercaseHex bool `toml:"uppercase_hex"`
	} `toml:"display"`

	Disassembly struct {
		DefaultStart uint64 `toml:"default_start"`
	} `toml:"disassembly"`
}

// DefaultConfig returns a configuration with every known extension
// enabled and spec.md §6's core CLI display format.
func DefaultConfig() *Config {
	cfg := &Config{Extensions: map[string]bool{}}
	for _, ext := range decode.AllExtensions() {
		cfg.Extensions[ext.ShortName] = true
	}

	cfg.Display.AddressDigits = 4
	cfg.Display.GroupBytes = 2
	cfg.Display.UppercaseHex = false

	cfg.Disassembly.DefaultStart = 0

	return cfg
}

// EnabledExtensions resolves the configured short names against the
// live extension registry, for use as the `available` argument to
// decode.ExtensionRequirement.Satisfied.
func (c *Config) EnabledExtensions() map[*decode.Extension]bool {
	out := map[*decode.Extension]bool{}
	for name, on := range c.Extensions {
		if !on {
			continue
		}
		if ext, ok := decode.Lookup(name); ok {
			out[ext] = true
		}
	}
	return out
}

// GetConfigPath returns the platform-specific config file path.
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "etca-dis")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "config.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "etca-dis")

	default:
		return "config.toml"
	}

	if err := os.MkdirAll(configDir, 0750); err != nil {
		return "config.toml"
	}

	return filepath.Join(configDir, "config.toml")
}

// Load loads configuration from the default config file.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom loads configuration from the specified file, falling back
// to defaults if the file does not exist.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Save saves configuration to the default config file.
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo saves configuration to the specified file.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path) // #nosec G304 -- user config file path
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}
