// Package conditionalprefix adds the "if<cond>" prefix: an instruction
// that wraps another, running it only if a condition holds.
package conditionalprefix

import (
	"github.com/ETC-A/ETCa-decompiler/internal/bitvector"
	"github.com/ETC-A/ETCa-decompiler/internal/decode"
	"github.com/ETC-A/ETCa-decompiler/internal/isa/baseisa"
	"github.com/ETC-A/ETCa-decompiler/internal/pattern"
)

// Ext is the conditional-prefix extension.
var Ext = decode.New("conditional-prefix", "cp", 1, 0)

func init() {
	pattern.Register("inst", "1010 cccc {inner:inst}", produce)
}

func produce(ctx *pattern.Context, args map[string]any, other []int) ([]decode.Part, error) {
	cccc := args["cccc"].(bitvector.BitVector)
	code := int(cccc.Int())
	if code == 14 || code == 15 {
		return nil, pattern.ErrUnknownInstruction
	}

	inner := args["inner"].(decode.Part)
	if wrapped, ok := inner.(decode.Instruction); ok && wrapped.Cond != nil {
		return nil, &pattern.IllegalInstructionError{
			Bits: inner.BitSection(),
			Msg:  "conditional prefix over an already-conditional instruction",
		}
	}

	name, ok := baseisa.ConditionName(code)
	if !ok {
		return nil, pattern.ErrUnknownInstruction
	}
	cond := decode.Condition{Code: code, Name: name, Section: cccc.Section}

	general := append([]int{}, other...)
	return []decode.Part{decode.Instruction{
		Format:  "if{cond} {inner}",
		Args:    map[string]decode.Part{"cond": cond, "inner": inner},
		General: general,
		Own:     decode.Single(Ext),
		Cond:    &cond,
	}}, nil
}
