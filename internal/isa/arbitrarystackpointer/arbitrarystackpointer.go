// Package arbitrarystackpointer adds a second push/pop variant to the
// opcode slots stack-and-functions uses, relaxing the dedicated-register
// requirement to "any register except 6" — 6 stays reserved for the
// implicit-stack-pointer variant stackfunctions registers.
package arbitrarystackpointer

import (
	"github.com/ETC-A/ETCa-decompiler/internal/decode"
	"github.com/ETC-A/ETCa-decompiler/internal/isa/baseisa"
	"github.com/ETC-A/ETCa-decompiler/internal/isa/stackfunctions"
)

// Ext is the arbitrary-stack-pointer extension. It's meaningless
// without stack-and-functions, so its opcode variants hard-require
// both.
var Ext = decode.New("arbitrary-stack-pointer", "asp", 1, 0)

func init() {
	req := decode.Union(decode.Single(stackfunctions.Ext), decode.Single(Ext))

	baseisa.RegisterOpcode(12, baseisa.OpcodeVariant{
		Name:       "pop",
		Format:     "{name}{size}-using {a}, {b}",
		HasRegReg:  true,
		HasRegImm:  false,
		SignExtend: false,
		ExtraCheck: func(a, b uint64) bool { return b != 6 },
		Requires:   req,
	})
	baseisa.RegisterOpcode(13, baseisa.OpcodeVariant{
		Name:       "push",
		Format:     "{name}{size}-using {a}, {b}",
		HasRegReg:  true,
		HasRegImm:  true,
		SignExtend: false,
		ExtraCheck: func(a, b uint64) bool { return a != 6 },
		Requires:   req,
	})
}
