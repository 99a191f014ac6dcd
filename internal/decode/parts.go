// Package decode implements the decoded-part algebra described in
// spec.md §3: the sum type of outputs a grammar rule's producer can
// yield (atoms, jump targets, registers, conditions, instructions
// possibly wrapping other instructions), together with the extension
// requirement algebra those outputs carry.
package decode

import "fmt"

// Part is any decoded grammar output: a terminal value (Atom, Register,
// Condition, JumpTarget) or a composite (Instruction).
type Part interface {
	// BitSection returns the absolute bit positions this part and
	// everything nested within it were decoded from.
	BitSection() []int
	// Requirements returns the extensions required to legitimately
	// produce this part, including everything nested within it.
	Requirements() ExtensionRequirement
	// Render produces the assembly-style text for this part given a
	// render context carrying inherited defaults (e.g. operand size).
	Render(ctx *RenderContext) string
}

// Text wraps a pre-rendered string (an opcode mnemonic, a decimal
// immediate, a size-code letter) so it can sit in an Instruction's
// argument map alongside structured Parts.
type Text string

func (t Text) BitSection() []int                { return nil }
func (t Text) Requirements() ExtensionRequirement { return None }
func (t Text) Render(*RenderContext) string      { return string(t) }

// Atom is a leaf decoded value with no further structure: a name, its
// display string, and the bits/requirements it carries.
type Atom struct {
	Name    string
	Display string
	Section []int
	Req     ExtensionRequirement
}

func (a Atom) BitSection() []int                { return a.Section }
func (a Atom) Requirements() ExtensionRequirement { return a.Req }
func (a Atom) Render(*RenderContext) string      { return a.Display }

// JumpTarget is a relative or absolute branch/call target.
type JumpTarget struct {
	Relative bool
	// Value is the raw encoded displacement (relative) or address
	// (absolute), already reinterpreted at its natural signedness.
	Value   int64
	Unsign  uint64 // used when !Relative, to avoid sign artifacts on wide absolute addresses
	Section []int
	Req     ExtensionRequirement
}

func (j JumpTarget) BitSection() []int                { return j.Section }
func (j JumpTarget) Requirements() ExtensionRequirement { return j.Req }

// Resolve computes the absolute byte address this target refers to,
// given the address the containing instruction started at.
func (j JumpTarget) Resolve(instructionStart uint64) uint64 {
	if j.Relative {
		return uint64(int64(instructionStart) + j.Value)
	}
	return j.Unsign
}

func (j JumpTarget) Render(*RenderContext) string {
	if j.Relative {
		return fmt.Sprintf("(rel_target: %d)", j.Value)
	}
	return fmt.Sprintf("(abs_target: %d)", int64(j.Unsign))
}

// Register is a decoded register operand. KnownSize, when non-empty,
// overrides the render context's inherited operand size (used for
// operands whose width is fixed independent of the instruction's SS
// field).
type Register struct {
	Index     int
	Section   []int
	KnownSize string
}

func (r Register) BitSection() []int                { return r.Section }
func (r Register) Requirements() ExtensionRequirement { return None }

func (r Register) Render(ctx *RenderContext) string {
	size := "x"
	if ctx != nil && ctx.Size != "" {
		size = ctx.Size
	}
	if r.KnownSize != "" {
		size = r.KnownSize
	}
	return fmt.Sprintf("%%r%s%d", size, r.Index)
}

// Condition is one of the sixteen named condition codes, including the
// two degenerate codes "always" (mp) and "never".
type Condition struct {
	Code    int
	Name    string
	Section []int
}

func (c Condition) BitSection() []int                { return c.Section }
func (c Condition) Requirements() ExtensionRequirement { return None }
func (c Condition) Render(*RenderContext) string      { return c.Name }

// IsAlways reports whether this is the "mp" (always-true) condition.
func (c Condition) IsAlways() bool { return c.Name == "mp" }

// IsNever reports whether this is the "never" condition.
func (c Condition) IsNever() bool { return c.Name == "never" }

// Instruction is the composite output of a grammar rule: a format
// template, a named map of sub-parts (which may themselves be
// Instructions, for prefix wrapping), the rule's own "other bits" not
// claimed by any named sub-part, and the rule's own extension
// requirement (unioned with every sub-part's at Requirements() time).
type Instruction struct {
	Format  string
	Args    map[string]Part
	General []int
	Own     ExtensionRequirement
	// Size, when set, is this instruction's own operand size code
	// letter, propagated into sub-parts that render relative to it
	// (e.g. a bare Register argument with no KnownSize of its own).
	Size string
	// Cond, when set, is this instruction's own condition, used by
	// conditional-prefix's legality check (an inner instruction that
	// already carries a condition cannot be wrapped again).
	Cond *Condition
	// Kind classifies the instruction for basic-block reconstruction:
	// "call", "condjump", "hlt", or "" for anything else. See spec.md
	// §4.6's block-termination rule.
	Kind string
}

func (i Instruction) BitSection() []int {
	out := append([]int(nil), i.General...)
	for _, p := range i.Args {
		out = append(out, p.BitSection()...)
	}
	return out
}

func (i Instruction) Requirements() ExtensionRequirement {
	reqs := []ExtensionRequirement{i.Own}
	for _, p := range i.Args {
		reqs = append(reqs, p.Requirements())
	}
	return Union(reqs...)
}

func (i Instruction) Render(ctx *RenderContext) string {
	child := ctx
	if i.Size != "" {
		child = ctx.WithSize(i.Size)
	}
	vals := make(map[string]string, len(i.Args)+1)
	for k, p := range i.Args {
		vals[k] = p.Render(child)
	}
	if i.Size != "" {
		if _, ok := vals["size"]; !ok {
			vals["size"] = i.Size
		}
	}
	return applyTemplate(i.Format, vals)
}
