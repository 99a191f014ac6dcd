// Package baseisa registers the always-present core of the instruction
// catalog: the operand-size table, the sixteen base opcode slots, the
// sixteen named condition codes, and the three grammar rules that drive
// them (reg/reg, reg/immediate, conditional jump). Every other
// extension package either adds entries to these tables (halfword,
// doubleword, quadword add sizes; stackfunctions and
// arbitrarystackpointer add opcode variants) or builds its own category
// on top of them.
package baseisa

import "github.com/ETC-A/ETCa-decompiler/internal/decode"

// OpcodeVariant is one registered encoding for a base opcode slot.
// Several variants can share a slot (e.g. stack-and-functions and
// arbitrary-stack-pointer both contribute a push/pop variant to slots
// 12/13); reg_reg and reg_immediate walk them in registration order and
// yield once per variant whose mode and extra check both pass.
type OpcodeVariant struct {
	Name string
	// Format overrides the default "{name}{size} {a}, {b}" rendering
	// (e.g. pop shows only its destination register, push only its
	// source value — the stack pointer side is implicit).
	Format     string
	HasRegReg  bool
	HasRegImm  bool
	SignExtend bool
	// ExtraCheck, when non-nil, gates the variant on the raw decoded
	// operand values: (destination register index, second operand —
	// either the other register's index or the raw immediate field).
	ExtraCheck func(a, b uint64) bool
	Requires   decode.ExtensionRequirement
}

var opcodeSlots = map[int][]OpcodeVariant{}

// RegisterOpcode appends a variant to a base opcode slot (0-15).
func RegisterOpcode(slot int, v OpcodeVariant) {
	opcodeSlots[slot] = append(opcodeSlots[slot], v)
}

// OpcodesAt returns the variants registered for slot, in registration
// order.
func OpcodesAt(slot int) []OpcodeVariant { return opcodeSlots[slot] }

// SizeEntry is one registered operand size: its rendered letter and the
// extensions required to use it (the base word size, x, needs none).
type SizeEntry struct {
	Letter   string
	Requires decode.ExtensionRequirement
}

var sizeSlots = map[int]SizeEntry{}

// RegisterSize adds an SS-field value to the operand size table.
func RegisterSize(code int, letter string, req decode.ExtensionRequirement) {
	sizeSlots[code] = SizeEntry{Letter: letter, Requires: req}
}

// SizeAt looks up an SS-field value.
func SizeAt(code int) (SizeEntry, bool) {
	e, ok := sizeSlots[code]
	return e, ok
}

var conditionNames = map[int]string{}

// RegisterConditionName names a 4-bit condition code.
func RegisterConditionName(code int, name string) { conditionNames[code] = name }

// ConditionName looks up a condition code's name.
func ConditionName(code int) (string, bool) {
	n, ok := conditionNames[code]
	return n, ok
}
