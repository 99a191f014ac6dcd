// Package cfg reconstructs basic blocks by a worklist-driven nonlinear
// disassembly pass, per spec.md §4.6.
package cfg

import (
	"errors"
	"fmt"

	"github.com/ETC-A/ETCa-decompiler/internal/decode"
	"github.com/ETC-A/ETCa-decompiler/internal/driver"
)

// ErrOverlappingBlock is returned when a later decoding path lands in
// the middle of an already-decoded block — the Open Question 2
// resolution in DESIGN.md: refuse rather than silently corrupt either
// block's instruction list.
var ErrOverlappingBlock = errors.New("cfg: decoding landed inside an already-decoded block")

// ErrOutOfOrderBlock signals the worklist invariant broke: a colliding
// block was found whose start address is not strictly greater than the
// block currently being walked. The worklist always visits the lowest
// pending start address first, so this should never happen; surfaced as
// an error rather than a panic to stay consistent with this decoder's
// error-handling style.
var ErrOutOfOrderBlock = errors.New("cfg: worklist ordering invariant violated")

// BasicBlock is a maximal straight-line run of instructions starting at
// StartAddress, together with the blocks control can transfer to from
// its end.
type BasicBlock struct {
	StartAddress uint64
	Instructions []driver.Decoded
	Targets      []*BasicBlock
}

// Reconstruct performs the nonlinear disassembly worklist algorithm:
// starting from a single block at start, linearly decode until the
// current instruction terminates the block or a collision/jump target
// is found, growing the block set until the worklist is empty.
func Reconstruct(bits []byte, start uint64) ([]*BasicBlock, error) {
	root := &BasicBlock{StartAddress: start}
	owner := map[uint64]*BasicBlock{start: root}
	queue := []*BasicBlock{root}
	var done []*BasicBlock

	for len(queue) > 0 {
		idx := lowestIndex(queue)
		bb := queue[idx]
		queue = append(queue[:idx:idx], queue[idx+1:]...)

		w := driver.NewWalker(bits, int(bb.StartAddress)*8)
		for {
			d, err := w.Next()
			if err != nil {
				if errors.Is(err, driver.ErrCleanEOF) {
					break
				}
				return nil, err
			}
			addr := d.StartAddress()

			if existing, ok := owner[addr]; ok && existing != bb {
				if bb.StartAddress >= existing.StartAddress {
					return nil, fmt.Errorf("%w: block at %#x reached address %#x owned by block at %#x",
						ErrOutOfOrderBlock, bb.StartAddress, addr, existing.StartAddress)
				}
				if len(existing.Instructions) != 0 {
					return nil, fmt.Errorf("%w: block at %#x, colliding block at %#x",
						ErrOverlappingBlock, bb.StartAddress, existing.StartAddress)
				}
				queue = removeBlock(queue, existing)
			}
			owner[addr] = bb
			bb.Instructions = append(bb.Instructions, d)

			inst, isInst := d.Part.(decode.Instruction)
			if !isInst {
				continue
			}
			for _, jt := range jumpTargets(inst) {
				target := jt.Resolve(addr)
				tb, ok := owner[target]
				if !ok {
					tb = &BasicBlock{StartAddress: target}
					owner[target] = tb
					queue = append(queue, tb)
				}
				bb.Targets = append(bb.Targets, tb)
			}
			if isEnd(inst) {
				break
			}
		}
		done = append(done, bb)
	}
	return done, nil
}

func lowestIndex(queue []*BasicBlock) int {
	lowest := 0
	for i, bb := range queue {
		if bb.StartAddress < queue[lowest].StartAddress {
			lowest = i
		}
	}
	_ = lowest
	return lowest
}

func removeBlock(queue []*BasicBlock, target *BasicBlock) []*BasicBlock {
	out := queue[:0]
	for _, bb := range queue {
		if bb != target {
			out = append(out, bb)
		}
	}
	return out
}

// isEnd reports whether inst terminates its basic block, per spec.md
// §4.6: a call with condition always does not terminate (control
// returns); a conditional jump or halt with condition always does;
// everything else does not.
func isEnd(inst decode.Instruction) bool {
	if inst.Cond == nil {
		return false
	}
	switch inst.Kind {
	case "call":
		return false
	case "condjump", "hlt":
		return inst.Cond.IsAlways()
	default:
		return false
	}
}

// jumpTargets extracts the statically resolvable successor of inst, per
// spec.md §4.6's jump-target extraction rule: halts produce none; calls
// produce none (control falls through to the following instruction);
// conditional jumps with condition != never produce their resolved
// label. A register-indirect jump or return has no statically knowable
// address and so yields nothing even though it is a condjump.
func jumpTargets(inst decode.Instruction) []decode.JumpTarget {
	if inst.Kind != "condjump" {
		return nil
	}
	if inst.Cond != nil && inst.Cond.IsNever() {
		return nil
	}
	for _, p := range inst.Args {
		if jt, ok := p.(decode.JumpTarget); ok {
			return []decode.JumpTarget{jt}
		}
	}
	return nil
}
