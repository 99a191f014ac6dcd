package stackfunctions_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ETC-A/ETCa-decompiler/internal/decode"
	"github.com/ETC-A/ETCa-decompiler/internal/driver"
	_ "github.com/ETC-A/ETCa-decompiler/internal/isa/baseisa"
	_ "github.com/ETC-A/ETCa-decompiler/internal/isa/stackfunctions"
)

func renderFirst(t *testing.T, bits []byte) string {
	t.Helper()
	parses, err := driver.Decode(bits)
	require.NoError(t, err)
	require.NotEmpty(t, parses)
	return parses[0].Render(decode.NewRenderContext())
}

// packBits MSB-first packs a sequence of (value, width) fields into
// bytes, mirroring the pattern string each test targets.
func packBits(fields ...[2]uint64) []byte {
	var bits []byte
	for _, f := range fields {
		value, width := f[0], f[1]
		for i := int(width) - 1; i >= 0; i-- {
			bits = append(bits, byte((value>>uint(i))&1))
		}
	}
	out := make([]byte, len(bits)/8)
	for i, b := range bits {
		out[i/8] = out[i/8]<<1 | b
	}
	return out
}

func TestRegJumpWithRegisterSevenRendersRet(t *testing.T) {
	// "10 1 0 1111 {r:reg} 0 {c:cond}" with r=7, c=14 (always).
	bits := packBits([2]uint64{0b10, 2}, {1, 1}, {0, 1}, {0b1111, 4}, {7, 3}, {0, 1}, {14, 4})
	assert.Equal(t, "ret", renderFirst(t, bits))
}

func TestRegJumpWithConditionAndOrdinaryRegisterRendersNamedJump(t *testing.T) {
	// Same pattern with r=3, c=0 ("z").
	bits := packBits([2]uint64{0b10, 2}, {1, 1}, {0, 1}, {0b1111, 4}, {3, 3}, {0, 1}, {0, 4})
	assert.Equal(t, "jz %rx3", renderFirst(t, bits))
}

func TestRegJumpNeverConditionRendersNop(t *testing.T) {
	bits := packBits([2]uint64{0b10, 2}, {1, 1}, {0, 1}, {0b1111, 4}, {2, 3}, {0, 1}, {15, 4})
	assert.Equal(t, "nop", renderFirst(t, bits))
}

func TestRegCallRendersNamedCall(t *testing.T) {
	// "10 1 0 1111 {r:reg} 1 {c:cond}" with r=5, c=14 (always) -> "call".
	bits := packBits([2]uint64{0b10, 2}, {1, 1}, {0, 1}, {0b1111, 4}, {5, 3}, {1, 1}, {14, 4})
	assert.Equal(t, "call %rx5", renderFirst(t, bits))
}

func TestCallRelRendersRelativeTarget(t *testing.T) {
	// "10 1 1 {dest:12}" with dest = 5.
	bits := packBits([2]uint64{0b10, 2}, {1, 1}, {1, 1}, {5, 12})
	assert.Equal(t, "call (rel_target: 5)", renderFirst(t, bits))
}
