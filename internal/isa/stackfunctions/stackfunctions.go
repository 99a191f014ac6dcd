// Package stackfunctions adds the dedicated-stack-pointer push/pop
// variants (operand fixed to register 6), register-indirect jump/call
// (including the "ret" special case), and the unconditional relative
// call.
package stackfunctions

import (
	"github.com/ETC-A/ETCa-decompiler/internal/bitvector"
	"github.com/ETC-A/ETCa-decompiler/internal/decode"
	"github.com/ETC-A/ETCa-decompiler/internal/isa/baseisa"
	"github.com/ETC-A/ETCa-decompiler/internal/pattern"
)

// Ext is the stack-and-functions extension.
var Ext = decode.New("stack-and-functions", "saf", 1, 1)

func init() {
	baseisa.RegisterOpcode(12, baseisa.OpcodeVariant{
		Name:       "pop",
		Format:     "{name}{size} {a}",
		HasRegReg:  true,
		HasRegImm:  false,
		SignExtend: false,
		ExtraCheck: func(a, b uint64) bool { return b == 6 },
		Requires:   decode.Single(Ext),
	})
	baseisa.RegisterOpcode(13, baseisa.OpcodeVariant{
		Name:       "push",
		Format:     "{name}{size} {b}",
		HasRegReg:  true,
		HasRegImm:  true,
		SignExtend: false,
		ExtraCheck: func(a, b uint64) bool { return a == 6 },
		Requires:   decode.Single(Ext),
	})

	pattern.Register("inst", "10 1 0 1111 {r:reg} 0 {c:cond}", regJumpProducer)
	pattern.Register("inst", "10 1 0 1111 {r:reg} 1 {c:cond}", regCallProducer)
	pattern.Register("inst", "10 1 1 {dest:12}", callRelProducer)
}

func regJumpProducer(ctx *pattern.Context, args map[string]any, other []int) ([]decode.Part, error) {
	r := args["r"].(decode.Part).(decode.Register)
	c := args["c"].(decode.Part).(decode.Condition)

	if c.IsNever() {
		return []decode.Part{decode.Instruction{
			Format:  "nop",
			Args:    map[string]decode.Part{"r": r, "c": c},
			General: other,
		}}, nil
	}

	if r.Index == 7 {
		name := "ret"
		if !c.IsAlways() {
			name += c.Name
		}
		return []decode.Part{decode.Instruction{
			Format:  "{name}",
			Args:    map[string]decode.Part{"name": decode.Text(name), "r": r, "c": c},
			General: other,
			Own:     decode.Single(Ext),
			Kind:    "condjump",
			Cond:    &c,
		}}, nil
	}

	name := "j"
	if c.IsAlways() {
		name = "jmp"
	} else {
		name += c.Name
	}
	return []decode.Part{decode.Instruction{
		Format:  "{name} {target}",
		Args:    map[string]decode.Part{"name": decode.Text(name), "target": r, "c": c},
		General: other,
		Own:     decode.Single(Ext),
		Kind:    "condjump",
		Cond:    &c,
	}}, nil
}

func regCallProducer(ctx *pattern.Context, args map[string]any, other []int) ([]decode.Part, error) {
	r := args["r"].(decode.Part).(decode.Register)
	c := args["c"].(decode.Part).(decode.Condition)

	if c.IsNever() {
		return nil, nil
	}

	name := "call"
	if !c.IsAlways() {
		name += c.Name
	}
	return []decode.Part{decode.Instruction{
		Format:  "{name} {target}",
		Args:    map[string]decode.Part{"name": decode.Text(name), "target": r, "c": c},
		General: other,
		Own:     decode.Single(Ext),
		Kind:    "call",
		Cond:    &c,
	}}, nil
}

func callRelProducer(ctx *pattern.Context, args map[string]any, other []int) ([]decode.Part, error) {
	dest := args["dest"].(bitvector.BitVector).Signed(12)
	target := decode.JumpTarget{Relative: true, Value: dest.AsInt64(), Section: dest.Section}
	return []decode.Part{decode.Instruction{
		Format:  "call {target}",
		Args:    map[string]decode.Part{"target": target},
		General: other,
		Own:     decode.Single(Ext),
		Kind:    "call",
		Cond:    baseisa.AlwaysCondition(),
	}}, nil
}
