// Package pattern implements the bit-grammar engine described in
// spec.md §4.1-§4.3: pattern primitives, the parse context they operate
// over, and the process-wide category registry extension modules
// populate at init time.
package pattern

import (
	"fmt"
	"strings"

	"github.com/ETC-A/ETCa-decompiler/internal/bitvector"
)

// Checkpoint is an opaque handle returned by Context.Checkpoint, used
// to restore the context's cursor and binding/global-context frames.
type Checkpoint struct {
	cursor    int
	bindLen   int
	globalLen int
}

// Context is the mutable cursor and scoped binding environment the
// grammar operates over (spec.md §4.2).
type Context struct {
	buf       []byte
	totalBits int
	cursor    int
	binds     []map[string]any
	global    []map[string]any
	other     [][]int
}

// NewContext builds a parse context over buf, starting at bit offset
// startBit.
func NewContext(buf []byte, startBit int) *Context {
	return &Context{
		buf:       buf,
		totalBits: len(buf) * 8,
		cursor:    startBit,
		binds:     []map[string]any{{}},
		global:    []map[string]any{{}},
	}
}

// Cursor returns the current bit offset.
func (c *Context) Cursor() int { return c.cursor }

// SetCursor forcibly repositions the cursor. Used by the driver to
// commit a linear-disassembly step after the enumeration machinery has
// reverted all its scratch state.
func (c *Context) SetCursor(pos int) { c.cursor = pos }

// Len returns the total number of bits available in the buffer.
func (c *Context) Len() int { return c.totalBits }

// NotEnoughBitsError reports that a read ran past the end of the
// buffer.
type NotEnoughBitsError struct {
	Cursor    int
	Requested int
	Available int
}

func (e *NotEnoughBitsError) Error() string {
	return fmt.Sprintf("not enough bits: requested %d at offset %d, only %d available", e.Requested, e.Cursor, e.Available)
}

// AtCleanBoundary reports whether the cursor sits exactly at the end of
// the buffer, i.e. whether this NotEnoughBits occurred at a natural
// end-of-input boundary rather than mid-instruction.
func (e *NotEnoughBitsError) AtCleanBoundary() bool { return e.Cursor == e.Available }

// Read advances the cursor by n bits and returns them as a BitVector
// tagged with their absolute positions, MSB-first per byte (spec.md §6:
// "a byte sequence interpreted big-endian-per-byte").
func (c *Context) Read(n int) (bitvector.BitVector, error) {
	if c.cursor+n > c.totalBits {
		return bitvector.BitVector{}, &NotEnoughBitsError{Cursor: c.cursor, Requested: n, Available: c.totalBits}
	}
	var value uint64
	section := make([]int, n)
	for i := 0; i < n; i++ {
		pos := c.cursor + i
		section[i] = pos
		byteIdx := pos / 8
		bitInByte := 7 - (pos % 8)
		bit := (c.buf[byteIdx] >> uint(bitInByte)) & 1
		value = (value << 1) | uint64(bit)
	}
	c.cursor += n
	return bitvector.New(value, n, section), nil
}

// Bind asserts name is not already bound in the current (innermost)
// frame, then records it there.
func (c *Context) Bind(name string, value any) error {
	frame := c.binds[len(c.binds)-1]
	if _, ok := frame[name]; ok {
		return fmt.Errorf("pattern: name %q already bound in this scope", name)
	}
	frame[name] = value
	return nil
}

// Bindings returns every name currently visible, newest frame winning
// ties, across the whole binding chain.
func (c *Context) Bindings() map[string]any {
	out := make(map[string]any)
	for _, frame := range c.binds {
		for k, v := range frame {
			out[k] = v
		}
	}
	return out
}

// Checkpoint pushes a fresh empty frame on both the binding and
// global-context stacks and returns a handle that Revert restores to.
func (c *Context) Checkpoint() Checkpoint {
	h := Checkpoint{cursor: c.cursor, bindLen: len(c.binds), globalLen: len(c.global)}
	c.binds = append(c.binds, map[string]any{})
	c.global = append(c.global, map[string]any{})
	return h
}

// Revert truncates both environment stacks and restores the cursor to
// the state recorded at h. Reverting is unconditional on every
// checkpoint exit, success or failure (spec.md §9, Open Question 1).
func (c *Context) Revert(h Checkpoint) {
	c.cursor = h.cursor
	c.binds = c.binds[:h.bindLen]
	c.global = c.global[:h.globalLen]
}

// SetContext writes key/value into the current (innermost) global
// context frame.
func (c *Context) SetContext(key string, value any) {
	c.global[len(c.global)-1][key] = value
}

// LookupContext scans the global-context chain newest-to-oldest.
func (c *Context) LookupContext(key string) (any, bool) {
	for i := len(c.global) - 1; i >= 0; i-- {
		if v, ok := c.global[i][key]; ok {
			return v, true
		}
	}
	return nil, false
}

// SatisfiesContext reports whether every key in req already has one of
// its acceptable values bound in the global context.
func (c *Context) SatisfiesContext(req map[string][]any) bool {
	for k, wants := range req {
		v, ok := c.LookupContext(k)
		if !ok {
			return false
		}
		match := false
		for _, want := range wants {
			if v == want {
				match = true
				break
			}
		}
		if !match {
			return false
		}
	}
	return true
}

// ApplySetContext writes every entry of set into the current global
// context frame.
func (c *Context) ApplySetContext(set map[string]any) {
	for k, v := range set {
		c.SetContext(k, v)
	}
}

// PushOther begins a fresh "other bits" accumulator — the ordered set
// of bit positions matched by literal tokens since the enclosing
// sub-parse began (spec.md §4.2) — and returns its stack index.
func (c *Context) PushOther() int {
	c.other = append(c.other, nil)
	return len(c.other) - 1
}

// AddOther appends positions to the innermost "other bits" accumulator.
// With no accumulator pushed (a pattern tried outside any rule), the
// positions are not recorded.
func (c *Context) AddOther(positions []int) {
	top := len(c.other) - 1
	if top < 0 {
		return
	}
	c.other[top] = append(c.other[top], positions...)
}

// OtherAt returns a copy of the accumulator at idx.
func (c *Context) OtherAt(idx int) []int {
	return append([]int(nil), c.other[idx]...)
}

// TruncateOther pops every accumulator from idx onward.
func (c *Context) TruncateOther(idx int) {
	c.other = c.other[:idx]
}

func (c *Context) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "cursor=%d/%d", c.cursor, c.totalBits)
	return sb.String()
}
