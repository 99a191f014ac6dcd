package baseisa

import (
	"github.com/ETC-A/ETCa-decompiler/internal/bitvector"
	"github.com/ETC-A/ETCa-decompiler/internal/decode"
	"github.com/ETC-A/ETCa-decompiler/internal/pattern"
)

const defaultTwoOperandFormat = "{name}{size} {a}, {b}"

func regRegProducer(ctx *pattern.Context, args map[string]any, other []int) ([]decode.Part, error) {
	ss := args["SS"].(bitvector.BitVector)
	cccc := args["CCCC"].(bitvector.BitVector)
	aaa := args["AAA"].(bitvector.BitVector)
	bbb := args["BBB"].(bitvector.BitVector)

	size, ok := SizeAt(int(ss.Int()))
	if !ok {
		return nil, pattern.ErrUnknownInstruction
	}

	general := append(append(append([]int{}, other...), ss.Section...), cccc.Section...)
	var parts []decode.Part
	for _, v := range OpcodesAt(int(cccc.Int())) {
		if !v.HasRegReg {
			continue
		}
		if v.ExtraCheck != nil && !v.ExtraCheck(aaa.Int(), bbb.Int()) {
			continue
		}
		format := v.Format
		if format == "" {
			format = defaultTwoOperandFormat
		}
		regA := decode.Register{Index: int(aaa.Int()), Section: aaa.Section}
		regB := decode.Register{Index: int(bbb.Int()), Section: bbb.Section}
		parts = append(parts, decode.Instruction{
			Format: format,
			Args: map[string]decode.Part{
				"name": decode.Text(v.Name),
				"a":    regA,
				"b":    regB,
			},
			General: general,
			Own:     decode.Union(size.Requires, v.Requires),
			Size:    size.Letter,
		})
	}
	return parts, nil
}

func regImmediateProducer(ctx *pattern.Context, args map[string]any, other []int) ([]decode.Part, error) {
	ss := args["SS"].(bitvector.BitVector)
	cccc := args["CCCC"].(bitvector.BitVector)
	aaa := args["AAA"].(bitvector.BitVector)
	iiiii := args["IIIII"].(bitvector.BitVector)

	size, ok := SizeAt(int(ss.Int()))
	if !ok {
		return nil, pattern.ErrUnknownInstruction
	}

	general := append(append(append([]int{}, other...), ss.Section...), cccc.Section...)
	var parts []decode.Part
	for _, v := range OpcodesAt(int(cccc.Int())) {
		if !v.HasRegImm {
			continue
		}
		if v.ExtraCheck != nil && !v.ExtraCheck(aaa.Int(), iiiii.Int()) {
			continue
		}
		imm := iiiii.Unsigned(5)
		if v.SignExtend {
			imm = iiiii.Signed(5)
		}
		format := v.Format
		if format == "" {
			format = defaultTwoOperandFormat
		}
		regA := decode.Register{Index: int(aaa.Int()), Section: aaa.Section}
		immAtom := decode.Atom{Name: "imm", Display: imm.Dec(), Section: imm.Section}
		parts = append(parts, decode.Instruction{
			Format: format,
			Args: map[string]decode.Part{
				"name": decode.Text(v.Name),
				"a":    regA,
				"b":    immAtom,
			},
			General: general,
			Own:     decode.Union(size.Requires, v.Requires),
			Size:    size.Letter,
		})
	}
	return parts, nil
}

// AlwaysCondition is the synthetic condition carried by instructions
// whose encoding has no condition field of its own (hlt, call_rel) but
// which are semantically unconditional — "always" for basic-block
// termination purposes (spec.md §4.6).
func AlwaysCondition() *decode.Condition {
	return &decode.Condition{Code: 14, Name: "mp"}
}

// conditionalJumpProducer implements the conditional jump family of
// spec.md §4.5, including its worked boundary cases (Open Question
// decision 3 in DESIGN.md): a "never" condition renders as a bare nop
// (carrying its displacement only if nonzero, purely for inspection —
// it has no successor and never terminates a block), and a zero
// displacement against any other condition collapses to hlt — treated
// as unconditionally-always for block-termination purposes — rather
// than a jump to the following instruction.
func conditionalJumpProducer(ctx *pattern.Context, args map[string]any, other []int) ([]decode.Part, error) {
	d1 := args["D"].(bitvector.BitVector)
	cccc := args["CCCC"].(bitvector.BitVector)
	d8 := args["d"].(bitvector.BitVector)

	dest := bitvector.Concat(d1, d8).Signed(9)
	general := append(append([]int{}, other...), cccc.Section...)
	code := int(cccc.Int())

	if code == 15 {
		if dest.AsInt64() == 0 {
			return []decode.Part{decode.Instruction{
				Format:  "nop",
				General: append(append(general, d1.Section...), d8.Section...),
			}}, nil
		}
		target := decode.JumpTarget{Relative: true, Value: dest.AsInt64(), Section: dest.Section}
		return []decode.Part{decode.Instruction{
			Format:  "nop {target}",
			Args:    map[string]decode.Part{"target": target},
			General: general,
		}}, nil
	}

	if dest.AsInt64() == 0 {
		return []decode.Part{decode.Instruction{
			Format:  "hlt",
			General: append(append(general, d1.Section...), d8.Section...),
			Kind:    "hlt",
			Cond:    AlwaysCondition(),
		}}, nil
	}

	name, ok := ConditionName(code)
	if !ok {
		return nil, pattern.ErrUnknownInstruction
	}
	cond := &decode.Condition{Code: code, Name: name, Section: cccc.Section}
	target := decode.JumpTarget{Relative: true, Value: dest.AsInt64(), Section: dest.Section}
	return []decode.Part{decode.Instruction{
		Format:  "j" + name + " {target}",
		Args:    map[string]decode.Part{"target": target},
		General: general,
		Kind:    "condjump",
		Cond:    cond,
	}}, nil
}
