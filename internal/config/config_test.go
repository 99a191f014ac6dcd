package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ETC-A/ETCa-decompiler/internal/config"
	"github.com/ETC-A/ETCa-decompiler/internal/decode"
)

func TestDefaultConfig(t *testing.T) {
	cfg := config.DefaultConfig()

	assert.Equal(t, 2, cfg.Display.GroupBytes)
	assert.Equal(t, 4, cfg.Display.AddressDigits)
	assert.False(t, cfg.Display.UppercaseHex)
	assert.EqualValues(t, 0, cfg.Disassembly.DefaultStart)
	assert.NotNil(t, cfg.Extensions)
}

func TestEnabledExtensionsResolvesAgainstRegistry(t *testing.T) {
	ext := decode.New("config-test-extension", "ctx1", 1, 0)

	cfg := config.DefaultConfig()
	cfg.Extensions = map[string]bool{"ctx1": true, "unknown-name": true}

	enabled := cfg.EnabledExtensions()
	assert.True(t, enabled[ext])
	assert.Len(t, enabled, 1)
}

func TestLoadFromMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := config.LoadFrom(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig().Display, cfg.Display)
}

func TestSaveToAndLoadFromRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := config.DefaultConfig()
	cfg.Extensions = map[string]bool{"hw": true, "saf": false}
	cfg.Display.GroupBytes = 8
	cfg.Display.UppercaseHex = true
	cfg.Disassembly.DefaultStart = 0x8000

	require.NoError(t, cfg.SaveTo(path))

	_, err := os.Stat(path)
	require.NoError(t, err)

	loaded, err := config.LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.Display, loaded.Display)
	assert.Equal(t, cfg.Disassembly, loaded.Disassembly)
	assert.True(t, loaded.Extensions["hw"])
	assert.False(t, loaded.Extensions["saf"])
}

func TestSaveToCreatesMissingDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "config.toml")

	cfg := config.DefaultConfig()
	require.NoError(t, cfg.SaveTo(path))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}
