// Package expandedregisters adds a prefix carrying one extra register
// bit per operand plus a "which half" selector, letting an inner
// instruction address more registers than its own 3-bit fields allow.
//
// The original source's prefix producer only ever forwards the inner
// instruction unchanged ("yield base"), leaving the prefix's own three
// bits (A, B, X) unconsumed by anything in the retrieved source — the
// widening consumer was never supplied. This decoder preserves that
// pass-through behavior (the prefix still type-checks, requires the
// extension, and makes Q available to any future consumer via context)
// but wraps the forwarded instruction so the prefix's own bits are
// still accounted for in the result's bit section, rather than being
// silently dropped.
package expandedregisters

import (
	"github.com/ETC-A/ETCa-decompiler/internal/bitvector"
	"github.com/ETC-A/ETCa-decompiler/internal/decode"
	"github.com/ETC-A/ETCa-decompiler/internal/pattern"
)

// Ext is the expanded-registers extension.
var Ext = decode.New("expanded-registers", "xr", 1, 0)

func init() {
	pattern.RegisterWithContext("inst", "1100 0 A B X {base:inst}", produce, map[string]any{"Q": 0}, nil)
	pattern.RegisterWithContext("inst", "1100 1 A B X {base:inst}", produce, map[string]any{"Q": 1}, nil)
}

func produce(ctx *pattern.Context, args map[string]any, other []int) ([]decode.Part, error) {
	base := args["base"].(decode.Part)
	general := append([]int{}, other...)
	for _, name := range []string{"A", "B", "X"} {
		general = append(general, args[name].(bitvector.BitVector).Section...)
	}
	return []decode.Part{decode.Instruction{
		Format:  "{inner}",
		Args:    map[string]decode.Part{"inner": base},
		General: general,
		Own:     decode.Single(Ext),
	}}, nil
}
