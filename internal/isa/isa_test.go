package isa_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ETC-A/ETCa-decompiler/internal/decode"
	"github.com/ETC-A/ETCa-decompiler/internal/driver"
	_ "github.com/ETC-A/ETCa-decompiler/internal/isa"
)

// These tests only check that importing the aggregator package is
// sufficient on its own to register every extension's rules; the
// extensions' own behavior is covered by their individual test files.

func TestAggregatorRegistersBaseAndExtendedSizes(t *testing.T) {
	// "00 SS CCCC AAA BBB 00" with SS=0 (half-word, needs halfword's
	// registration, not wired up by baseisa alone).
	bits := []byte{0x00, 0x04}
	parses, err := driver.Decode(bits)
	require.NoError(t, err)
	require.NotEmpty(t, parses)
	assert.Equal(t, "addh %rh0, %rh1", parses[0].Render(decode.NewRenderContext()))
}

func TestAggregatorRegistersExpandedOpcodeCallForm(t *testing.T) {
	bits := make([]byte, 9)
	for i := range bits {
		bits[i] = 0xFF
	}
	parses, err := driver.Decode(bits)
	require.NoError(t, err)
	require.NotEmpty(t, parses)
	assert.Equal(t, "call (abs_target: -1)", parses[0].Render(decode.NewRenderContext()))
}
