// Package driver implements the top-level decoder operations of
// spec.md §4.3: enumerate-all-parses (Decode) and linear disassembly
// (LinearDisassemble/Walker).
package driver

import (
	"encoding/hex"
	"errors"
	"strings"

	"github.com/ETC-A/ETCa-decompiler/internal/decode"
	"github.com/ETC-A/ETCa-decompiler/internal/pattern"
)

// ErrCleanEOF is returned by Walker.Next when the cursor sits exactly
// at the end of the buffer and no further instruction remains to be
// read — a clean termination, not a truncation error.
var ErrCleanEOF = errors.New("driver: clean end of input")

// BitsFromHex decodes a hex string (as produced by a ROM dump) into a
// byte buffer, ignoring ASCII whitespace between byte pairs.
func BitsFromHex(s string) ([]byte, error) {
	s = strings.Join(strings.Fields(s), "")
	return hex.DecodeString(s)
}

// Decode enumerates every successful parse of the "inst" category at
// bit offset 0 of bits (spec.md §4.3's decode()).
func Decode(bits []byte) ([]decode.Part, error) {
	ctx := pattern.NewContext(bits, 0)
	return pattern.DecodeAll(ctx, "inst")
}

// Decoded is one instruction produced during a linear walk: the part
// itself and the bit offset it started at.
type Decoded struct {
	Part      decode.Part
	StartBit  int
	EndBit    int
}

// StartAddress returns the decoded instruction's byte address. Per
// spec.md's invariant, StartBit is always byte-aligned.
func (d Decoded) StartAddress() uint64 { return uint64(d.StartBit / 8) }

// Walker performs a linear disassembly walk over a single buffer,
// emitting exactly the first result of each successive "inst" parse
// (spec.md §4.3's linear_disassemble()).
type Walker struct {
	ctx *pattern.Context
}

// NewWalker starts a walk at bit offset startBit.
func NewWalker(bits []byte, startBit int) *Walker {
	return &Walker{ctx: pattern.NewContext(bits, startBit)}
}

// Next decodes the next instruction. It returns ErrCleanEOF once the
// cursor has reached the end of the buffer with nothing left to
// decode; any other error is a genuine truncation or illegal-encoding
// failure and should be treated as fatal by the caller.
func (w *Walker) Next() (Decoded, error) {
	if w.ctx.Cursor() == w.ctx.Len() {
		return Decoded{}, ErrCleanEOF
	}
	start := w.ctx.Cursor()
	part, end, err := pattern.DecodeFirst(w.ctx, "inst")
	if err != nil {
		var nb *pattern.NotEnoughBitsError
		if errors.As(err, &nb) && nb.AtCleanBoundary() {
			return Decoded{}, ErrCleanEOF
		}
		return Decoded{}, err
	}
	w.ctx.SetCursor(end)
	return Decoded{Part: part, StartBit: start, EndBit: end}, nil
}

// LinearDisassemble walks the whole buffer from startBit, collecting
// every decoded instruction until a clean end of input is reached.
func LinearDisassemble(bits []byte, startBit int) ([]Decoded, error) {
	w := NewWalker(bits, startBit)
	var out []Decoded
	for {
		d, err := w.Next()
		if err != nil {
			if errors.Is(err, ErrCleanEOF) {
				return out, nil
			}
			return out, err
		}
		out = append(out, d)
	}
}
