package doubleword_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ETC-A/ETCa-decompiler/internal/decode"
	"github.com/ETC-A/ETCa-decompiler/internal/driver"
	_ "github.com/ETC-A/ETCa-decompiler/internal/isa/baseisa"
	"github.com/ETC-A/ETCa-decompiler/internal/isa/doubleword"
)

func packRegReg(ss, cccc, aaa, bbb uint64) []byte {
	var bits []byte
	push := func(v, w uint64) {
		for i := int(w) - 1; i >= 0; i-- {
			bits = append(bits, byte((v>>uint(i))&1))
		}
	}
	push(0b00, 2)
	push(ss, 2)
	push(cccc, 4)
	push(aaa, 3)
	push(bbb, 3)
	push(0, 2)
	out := make([]byte, len(bits)/8)
	for i, b := range bits {
		out[i/8] = out[i/8]<<1 | b
	}
	return out
}

func TestRegRegAddUsesDoubleWordSize(t *testing.T) {
	bits := packRegReg(2, 0, 0, 1)
	parses, err := driver.Decode(bits)
	require.NoError(t, err)
	require.NotEmpty(t, parses)
	assert.Equal(t, "addd %rd0, %rd1", parses[0].Render(decode.NewRenderContext()))
}

func TestRegRegDoubleWordRequiresDoubleWordExtension(t *testing.T) {
	bits := packRegReg(2, 0, 0, 1)
	parses, err := driver.Decode(bits)
	require.NoError(t, err)
	require.NotEmpty(t, parses)

	reqs := parses[0].Requirements()
	assert.False(t, reqs.Satisfied(map[*decode.Extension]bool{}), "double-word instruction should not be satisfied with no extensions available")
	assert.True(t, reqs.Satisfied(map[*decode.Extension]bool{doubleword.Ext: true}))
}
