package baseisa

import (
	"github.com/ETC-A/ETCa-decompiler/internal/bitvector"
	"github.com/ETC-A/ETCa-decompiler/internal/decode"
	"github.com/ETC-A/ETCa-decompiler/internal/pattern"
)

func init() {
	RegisterSize(1, "x", decode.None)

	RegisterOpcode(0, OpcodeVariant{Name: "add", HasRegReg: true, HasRegImm: true, SignExtend: true})
	RegisterOpcode(1, OpcodeVariant{Name: "sub", HasRegReg: true, HasRegImm: true, SignExtend: true})
	RegisterOpcode(2, OpcodeVariant{Name: "rsub", HasRegReg: true, HasRegImm: true, SignExtend: true})
	RegisterOpcode(3, OpcodeVariant{Name: "cmp", HasRegReg: true, HasRegImm: true, SignExtend: true})
	RegisterOpcode(4, OpcodeVariant{Name: "or", HasRegReg: true, HasRegImm: true, SignExtend: true})
	RegisterOpcode(5, OpcodeVariant{Name: "xor", HasRegReg: true, HasRegImm: true, SignExtend: true})
	RegisterOpcode(6, OpcodeVariant{Name: "and", HasRegReg: true, HasRegImm: true, SignExtend: true})
	RegisterOpcode(7, OpcodeVariant{Name: "test", HasRegReg: true, HasRegImm: true, SignExtend: true})
	RegisterOpcode(8, OpcodeVariant{Name: "movz", HasRegReg: true, HasRegImm: true, SignExtend: false})
	RegisterOpcode(9, OpcodeVariant{Name: "movs", HasRegReg: true, HasRegImm: true, SignExtend: true})
	RegisterOpcode(10, OpcodeVariant{Name: "load", HasRegReg: true, HasRegImm: true, SignExtend: true})
	RegisterOpcode(11, OpcodeVariant{Name: "store", HasRegReg: true, HasRegImm: true, SignExtend: true})
	RegisterOpcode(12, OpcodeVariant{Name: "slo", HasRegReg: false, HasRegImm: true, SignExtend: false})
	// Slot 13 starts empty; stackfunctions registers "push" there.
	RegisterOpcode(14, OpcodeVariant{Name: "readcr", HasRegReg: false, HasRegImm: true, SignExtend: false})
	RegisterOpcode(15, OpcodeVariant{Name: "writecr", HasRegReg: false, HasRegImm: true, SignExtend: false})

	names := []string{"z", "nz", "n", "nn", "c", "nc", "v", "nv", "be", "a", "l", "ge", "le", "g"}
	for code, name := range names {
		RegisterConditionName(code, name)
	}
	RegisterConditionName(14, "mp")
	RegisterConditionName(15, "never")
	for code := 0; code <= 15; code++ {
		registerConditionRule(code)
	}

	pattern.Register("reg", "RRR", func(ctx *pattern.Context, args map[string]any, other []int) ([]decode.Part, error) {
		r := args["RRR"].(bitvector.BitVector)
		return []decode.Part{decode.Register{Index: int(r.Int()), Section: r.Section}}, nil
	})

	pattern.Register("inst", "00 SS CCCC  AAA BBB 00", regRegProducer)
	pattern.Register("inst", "01 SS CCCC  AAA IIIII", regImmediateProducer)
	pattern.Register("inst", "10 0 D CCCC  {d:8}", conditionalJumpProducer)
}

func registerConditionRule(code int) {
	lit := binary4(code)
	name, _ := ConditionName(code)
	pattern.Register("cond", lit, func(ctx *pattern.Context, args map[string]any, other []int) ([]decode.Part, error) {
		return []decode.Part{decode.Condition{Code: code, Name: name, Section: other}}, nil
	})
}

func binary4(v int) string {
	out := make([]byte, 4)
	for i := 3; i >= 0; i-- {
		if v&1 != 0 {
			out[i] = '1'
		} else {
			out[i] = '0'
		}
		v >>= 1
	}
	return string(out)
}
