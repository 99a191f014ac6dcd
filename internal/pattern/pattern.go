package pattern

import (
	"strconv"
	"strings"

	"github.com/ETC-A/ETCa-decompiler/internal/decode"
)

// Pattern is a bit-grammar term: a literal, a bound slice, a bound
// sub-pattern, or a sequence of these (spec.md §4.1).
//
// Try attempts to match the pattern at the context's current cursor.
// For every successful alternative it invokes yield; when a
// sub-pattern recurses into a category that itself yields several
// results, Try invokes yield once per inner result, with the context
// positioned at that alternative's end cursor. Try returns after every
// alternative has been tried (or after yield returns a non-nil error,
// which aborts further alternatives and propagates). A plain
// non-match (literal mismatch) is not an error: Try returns nil
// without ever calling yield.
type Pattern interface {
	Try(ctx *Context, yield func() error) error
}

// Literal matches an exact bit sequence. Its matched positions are
// recorded as "other bits" on the enclosing rule.
type Literal struct {
	BitCount int
	Value    uint64
}

func (p Literal) Try(ctx *Context, yield func() error) error {
	start := ctx.Cursor()
	v, err := ctx.Read(p.BitCount)
	if err != nil {
		ctx.SetCursor(start)
		return err
	}
	if v.Value != p.Value {
		ctx.SetCursor(start)
		return nil
	}
	ctx.AddOther(v.Section)
	return yield()
}

// BoundFixedSize reads a fixed-size slice and binds it to name,
// without any further interpretation. It always succeeds given enough
// input.
type BoundFixedSize struct {
	BitCount int
	Name     string
}

func (p BoundFixedSize) Try(ctx *Context, yield func() error) error {
	start := ctx.Cursor()
	v, err := ctx.Read(p.BitCount)
	if err != nil {
		ctx.SetCursor(start)
		return err
	}
	if err := ctx.Bind(p.Name, v); err != nil {
		return err
	}
	return yield()
}

// BoundSubPattern recursively parses the named category at the
// current cursor and binds name to each yielded result in turn. Each
// result is bound in a fresh frame that is reverted before the next
// result is bound.
type BoundSubPattern struct {
	Category string
	Name     string
}

func (p BoundSubPattern) Try(ctx *Context, yield func() error) error {
	return DecodeCategoryTry(ctx, p.Category, func(part decode.Part) error {
		cp := ctx.Checkpoint()
		defer ctx.Revert(cp)
		if err := ctx.Bind(p.Name, part); err != nil {
			return err
		}
		return yield()
	})
}

// Sequence attempts each child pattern in order, binding accumulate as
// they succeed. Any child's failure restores the checkpoint taken at
// the sequence's entry and reports failure (spec.md §4.1).
type Sequence struct {
	Tokens []Pattern
}

func (p Sequence) Try(ctx *Context, yield func() error) error {
	cp := ctx.Checkpoint()
	var rec func(i int) error
	rec = func(i int) error {
		if i == len(p.Tokens) {
			return yield()
		}
		return p.Tokens[i].Try(ctx, func() error { return rec(i + 1) })
	}
	err := rec(0)
	ctx.Revert(cp)
	return err
}

// ParseString compiles a whitespace-separated pattern literal into a
// Pattern, per spec.md §4.1's token grammar: a literal run of 0/1, a
// purely-alphabetic token (a single-letter-named fixed slice), or a
// braced {name:spec} where spec is a decimal size or a category name.
func ParseString(s string) Pattern {
	fields := strings.Fields(s)
	var tokens []Pattern
	for _, f := range fields {
		tokens = append(tokens, parseToken(f))
	}
	if len(tokens) == 1 {
		return tokens[0]
	}
	return Sequence{Tokens: tokens}
}

func parseToken(tok string) Pattern {
	if isBinary(tok) {
		v, _ := strconv.ParseUint(tok, 2, 64)
		return Literal{BitCount: len(tok), Value: v}
	}
	if isAlpha(tok) {
		return BoundFixedSize{BitCount: len(tok), Name: tok}
	}
	if strings.HasPrefix(tok, "{") && strings.HasSuffix(tok, "}") {
		inner := tok[1 : len(tok)-1]
		parts := strings.SplitN(inner, ":", 2)
		name, spec := parts[0], parts[1]
		if n, err := strconv.Atoi(spec); err == nil {
			return BoundFixedSize{BitCount: n, Name: name}
		}
		return BoundSubPattern{Category: spec, Name: name}
	}
	panic("pattern: unrecognized token " + tok)
}

func isBinary(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r != '0' && r != '1' {
			return false
		}
	}
	return true
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}
