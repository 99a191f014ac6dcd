package pattern

import (
	"errors"
	"fmt"

	"github.com/ETC-A/ETCa-decompiler/internal/decode"
)

// ErrUnknownInstruction is returned by a Producer to signal that,
// although its pattern matched, the bound values don't correspond to
// a legitimate encoding (e.g. a reserved field value). The driver
// absorbs it and tries the next registered rule (spec.md §7).
var ErrUnknownInstruction = errors.New("pattern: unknown instruction")

// IllegalInstructionError is returned by a Producer when the matched
// bits are semantically rejected (not merely unrecognized). It aborts
// enumeration for the whole top-level parse currently in progress.
type IllegalInstructionError struct {
	Bits []int
	Msg  string
}

func (e *IllegalInstructionError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("pattern: illegal instruction: %s", e.Msg)
	}
	return "pattern: illegal instruction"
}

// Check is a convenience matching the original decoder's check(): it
// returns ErrUnknownInstruction when illegal is false and cond is
// false, or an *IllegalInstructionError when illegal is true and cond
// is false; otherwise nil.
func Check(cond bool, illegal bool, msg string) error {
	if cond {
		return nil
	}
	if illegal {
		return &IllegalInstructionError{Msg: msg}
	}
	return ErrUnknownInstruction
}

// Producer receives a matched rule's bound names (every name bound by
// the rule's pattern, keyed by the token's binding name) and the
// rule's own "other bits" (the positions matched by literal tokens
// directly in the rule, not inside any bound sub-pattern), and returns
// the decoded parts it yields.
type Producer func(ctx *Context, args map[string]any, other []int) ([]decode.Part, error)

// Rule is a (pattern, producer) pair registered under a category, plus
// the optional context modifiers of spec.md §4.1.
type Rule struct {
	Pattern    Pattern
	Producer   Producer
	SetContext map[string]any
	ReqContext map[string][]any
}

var registry = map[string][]Rule{}

// RegisterRule appends rule to category's rule list, preserving
// registration order (the tie-break order when multiple rules match).
func RegisterRule(category string, rule Rule) {
	registry[category] = append(registry[category], rule)
}

// Register compiles patternString and registers it with producer under
// category. This is the primary extension-module entry point (spec.md
// §4.4(a)).
func Register(category, patternString string, producer Producer) {
	RegisterRule(category, Rule{Pattern: ParseString(patternString), Producer: producer})
}

// RegisterWithContext is Register plus context modifiers.
func RegisterWithContext(category, patternString string, producer Producer, setContext map[string]any, reqContext map[string][]any) {
	RegisterRule(category, Rule{
		Pattern:    ParseString(patternString),
		Producer:   producer,
		SetContext: setContext,
		ReqContext: reqContext,
	})
}

// DecodeCategoryTry tries every rule registered for category, in
// registration order, against ctx's current cursor. For each rule
// whose pattern matches (and whose req_context, if any, is already
// satisfied), it invokes the rule's producer and calls yield once per
// part the producer returns. Every rule attempt is fully reverted
// (cursor, bindings, global context, other-bits) before the next rule
// is tried, and again before DecodeCategoryTry returns — matching
// spec.md §4.2's "revert on every checkpoint exit" discipline.
//
// A producer returning ErrUnknownInstruction is treated as a
// non-match: the loop continues to the next rule. An
// *IllegalInstructionError, or a NotEnoughBitsError encountered while
// matching, aborts the loop immediately and propagates to the caller.
func DecodeCategoryTry(ctx *Context, category string, yield func(decode.Part) error) error {
	for _, rule := range registry[category] {
		cp := ctx.Checkpoint()
		otherIdx := ctx.PushOther()

		err := func() error {
			if rule.ReqContext != nil && !ctx.SatisfiesContext(rule.ReqContext) {
				return nil
			}
			if rule.SetContext != nil {
				ctx.ApplySetContext(rule.SetContext)
			}
			return rule.Pattern.Try(ctx, func() error {
				other := ctx.OtherAt(otherIdx)
				args := filteredBindings(ctx.Bindings())
				parts, perr := rule.Producer(ctx, args, other)
				if perr != nil {
					if errors.Is(perr, ErrUnknownInstruction) {
						return nil
					}
					return perr
				}
				for _, part := range parts {
					// While the enclosing rule continues past this
					// sub-parse, its own literals go to its own
					// accumulator; they are undone before the next part.
					mine := ctx.other[otherIdx]
					ctx.TruncateOther(otherIdx)
					parentLen := 0
					if otherIdx > 0 {
						parentLen = len(ctx.other[otherIdx-1])
					}
					yerr := yield(part)
					if otherIdx > 0 {
						ctx.other[otherIdx-1] = ctx.other[otherIdx-1][:parentLen]
					}
					ctx.other = append(ctx.other[:otherIdx], mine)
					if yerr != nil {
						return yerr
					}
				}
				return nil
			})
		}()

		ctx.Revert(cp)
		ctx.TruncateOther(otherIdx)
		if err != nil {
			return err
		}
	}
	return nil
}

func filteredBindings(all map[string]any) map[string]any {
	out := make(map[string]any, len(all))
	for k, v := range all {
		if len(k) > 0 && k[0] == '_' {
			continue
		}
		out[k] = v
	}
	return out
}

// errStop is an internal sentinel used by DecodeFirst to halt
// enumeration as soon as one result has been found.
var errStop = errors.New("pattern: stop enumeration")

// DecodeAll enumerates every successful parse of category at ctx's
// current cursor (spec.md §4.3's decode()). It returns
// ErrUnknownInstruction if no rule produced any result.
func DecodeAll(ctx *Context, category string) ([]decode.Part, error) {
	var results []decode.Part
	err := DecodeCategoryTry(ctx, category, func(p decode.Part) error {
		results = append(results, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, ErrUnknownInstruction
	}
	return results, nil
}

// DecodeFirst finds the first successful parse of category at ctx's
// current cursor and reports the cursor position immediately after it,
// without committing that advance to ctx (the caller decides whether
// to call ctx.SetCursor with the returned position).
func DecodeFirst(ctx *Context, category string) (decode.Part, int, error) {
	var result decode.Part
	var endCursor int
	found := false
	err := DecodeCategoryTry(ctx, category, func(p decode.Part) error {
		result = p
		endCursor = ctx.Cursor()
		found = true
		return errStop
	})
	if err != nil && !errors.Is(err, errStop) {
		return nil, 0, err
	}
	if !found {
		return nil, 0, ErrUnknownInstruction
	}
	return result, endCursor, nil
}
