package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ETC-A/ETCa-decompiler/internal/config"
	"github.com/ETC-A/ETCa-decompiler/internal/decode"
)

// captureStdout runs fn with os.Stdout redirected to a pipe and
// returns everything fn wrote.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)

	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()

	require.NoError(t, w.Close())
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func TestLoadConfigFallsBackToDefaultsWhenFileMissing(t *testing.T) {
	dir := t.TempDir()
	cfg, err := loadConfig(filepath.Join(dir, "does-not-exist.toml"))
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Display.AddressDigits)
	assert.Equal(t, 2, cfg.Display.GroupBytes)
}

func TestFilterByRequirementsDropsUnsatisfiedParses(t *testing.T) {
	hw := decode.New("half-word test extension", "hwtest", 1, 0)

	plain := decode.Instruction{Format: "hlt"}
	gated := decode.Instruction{Format: "addh", Own: decode.Single(hw)}

	parses := []decode.Part{plain, gated}

	noneEnabled := filterByRequirements(parses, map[*decode.Extension]bool{})
	assert.Equal(t, []decode.Part{plain}, noneEnabled)

	withHW := filterByRequirements(parses, map[*decode.Extension]bool{hw: true})
	assert.Equal(t, []decode.Part{plain, gated}, withHW)
}

func TestFilterByRequirementsIsMonotonicInAvailableSet(t *testing.T) {
	// Requirement monotonicity (spec.md §8 Property 3): shrinking the
	// available set never grows the result.
	a := decode.New("extension a", "atest", 0, 1)
	b := decode.New("extension b", "btest", 0, 1)

	parses := []decode.Part{
		decode.Instruction{Format: "only-a", Own: decode.Single(a)},
		decode.Instruction{Format: "only-b", Own: decode.Single(b)},
		decode.Instruction{Format: "neither"},
	}

	both := filterByRequirements(parses, map[*decode.Extension]bool{a: true, b: true})
	onlyA := filterByRequirements(parses, map[*decode.Extension]bool{a: true})
	none := filterByRequirements(parses, map[*decode.Extension]bool{})

	assert.Len(t, both, 3)
	assert.Len(t, onlyA, 2)
	assert.Len(t, none, 1)
}

func TestPrintLineFormatsAddressAndGroupedBytes(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Display.AddressDigits = 4
	cfg.Display.GroupBytes = 2

	out := captureStdout(t, func() {
		printLine(cfg, 0x10, []byte{0x00, 0x01, 0xC0}, "addx %rx0, %rx0")
	})
	assert.Equal(t, "0010: 0001 c0               addx %rx0, %rx0\n", out)
}

func TestPrintLineUppercasesWhenConfigured(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Display.AddressDigits = 2
	cfg.Display.GroupBytes = 1
	cfg.Display.UppercaseHex = true

	out := captureStdout(t, func() {
		printLine(cfg, 0xFF, []byte{0xAB}, "hlt")
	})
	assert.Equal(t, "FF: AB                    hlt\n", out)
}

func TestConfigRoundTripsExtensionTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg := config.DefaultConfig()
	cfg.Extensions["hwtest-roundtrip"] = false
	require.NoError(t, cfg.SaveTo(path))

	loaded, err := config.LoadFrom(path)
	require.NoError(t, err)
	assert.False(t, loaded.Extensions["hwtest-roundtrip"])
}
