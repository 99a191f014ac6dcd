package expandedregisters_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ETC-A/ETCa-decompiler/internal/decode"
	"github.com/ETC-A/ETCa-decompiler/internal/driver"
	_ "github.com/ETC-A/ETCa-decompiler/internal/isa/baseisa"
	_ "github.com/ETC-A/ETCa-decompiler/internal/isa/expandedregisters"
)

func renderFirst(t *testing.T, bits []byte) string {
	t.Helper()
	parses, err := driver.Decode(bits)
	require.NoError(t, err)
	require.NotEmpty(t, parses)
	return parses[0].Render(decode.NewRenderContext())
}

func TestPrefixPassesThroughInnerRenderingUnchanged(t *testing.T) {
	// "1100 0 A B X {base:inst}" with A=B=X=0, prefix byte 0xC0, inner =
	// the reg/reg "addx %rx0, %rx1" bytes {0x10, 0x04}.
	assert.Equal(t, "addx %rx0, %rx1", renderFirst(t, []byte{0xC0, 0x10, 0x04}))
}

func TestQSelectorBothVariantsPassThrough(t *testing.T) {
	// "1100 1 A B X {base:inst}" (Q=1 selector), otherwise identical.
	assert.Equal(t, "addx %rx0, %rx1", renderFirst(t, []byte{0xC8, 0x10, 0x04}))
}
