package cfg_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ETC-A/ETCa-decompiler/internal/cfg"
	"github.com/ETC-A/ETCa-decompiler/internal/decode"
	"github.com/ETC-A/ETCa-decompiler/internal/pattern"
)

// The instruction set used by these tests is a one-byte toy grammar,
// registered directly against the process-wide "inst" category so the
// tests don't depend on any real ISA package:
//
//   0x00          linear, falls through
//   0x10 <rel u8> always-taken conditional jump
//   0x20 <rel u8> never-taken conditional jump (effectively a nop)
//   0x30 <rel u8> conditionally-taken jump (condition "z", not hlt/nop)
//   0x40          call (produces no successor)
//   0x50          hlt (always; ends the block)
//
// Register once; RegisterRule appends, so guard with a sync.Once-style
// flag to keep repeated test-binary runs from duplicating rules.
var registered = false

func registerToyISA() {
	if registered {
		return
	}
	registered = true

	always := decode.Condition{Code: 14, Name: "mp"}
	never := decode.Condition{Code: 15, Name: "never"}
	zCond := decode.Condition{Code: 0, Name: "z"}

	pattern.RegisterRule("inst", pattern.Rule{
		Pattern: pattern.Literal{BitCount: 8, Value: 0x00},
		Producer: func(ctx *pattern.Context, args map[string]any, other []int) ([]decode.Part, error) {
			return []decode.Part{decode.Instruction{Format: "linear"}}, nil
		},
	})
	pattern.RegisterRule("inst", pattern.Rule{
		Pattern: pattern.ParseString("00010000 {rel:8}"),
		Producer: func(ctx *pattern.Context, args map[string]any, other []int) ([]decode.Part, error) {
			rel := args["rel"].(interface{ AsInt64() int64 })
			c := always
			return []decode.Part{decode.Instruction{
				Format: "jmp_always",
				Kind:   "condjump",
				Cond:   &c,
				Args: map[string]decode.Part{
					"target": decode.JumpTarget{Relative: true, Value: rel.AsInt64()},
				},
			}}, nil
		},
	})
	pattern.RegisterRule("inst", pattern.Rule{
		Pattern: pattern.ParseString("00100000 {rel:8}"),
		Producer: func(ctx *pattern.Context, args map[string]any, other []int) ([]decode.Part, error) {
			rel := args["rel"].(interface{ AsInt64() int64 })
			c := never
			return []decode.Part{decode.Instruction{
				Format: "jmp_never",
				Kind:   "condjump",
				Cond:   &c,
				Args: map[string]decode.Part{
					"target": decode.JumpTarget{Relative: true, Value: rel.AsInt64()},
				},
			}}, nil
		},
	})
	pattern.RegisterRule("inst", pattern.Rule{
		Pattern: pattern.ParseString("00110000 {rel:8}"),
		Producer: func(ctx *pattern.Context, args map[string]any, other []int) ([]decode.Part, error) {
			rel := args["rel"].(interface{ AsInt64() int64 })
			c := zCond
			return []decode.Part{decode.Instruction{
				Format: "jz",
				Kind:   "condjump",
				Cond:   &c,
				Args: map[string]decode.Part{
					"target": decode.JumpTarget{Relative: true, Value: rel.AsInt64()},
				},
			}}, nil
		},
	})
	pattern.RegisterRule("inst", pattern.Rule{
		Pattern: pattern.Literal{BitCount: 8, Value: 0x40},
		Producer: func(ctx *pattern.Context, args map[string]any, other []int) ([]decode.Part, error) {
			c := always
			return []decode.Part{decode.Instruction{Format: "call", Kind: "call", Cond: &c}}, nil
		},
	})
	pattern.RegisterRule("inst", pattern.Rule{
		Pattern: pattern.Literal{BitCount: 8, Value: 0x50},
		Producer: func(ctx *pattern.Context, args map[string]any, other []int) ([]decode.Part, error) {
			c := always
			return []decode.Part{decode.Instruction{Format: "hlt", Kind: "hlt", Cond: &c}}, nil
		},
	})
}

func TestReconstructSingleFallthroughBlock(t *testing.T) {
	registerToyISA()
	// linear; linear; call (end of buffer, no successor registered since EOF).
	blocks, err := cfg.Reconstruct([]byte{0x00, 0x00, 0x40}, 0)
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	bb := blocks[0]
	assert.Len(t, bb.Instructions, 3)
	assert.Empty(t, bb.Targets, "call should produce no successor target")
}

func TestReconstructCallDoesNotTerminateBlock(t *testing.T) {
	registerToyISA()
	// call; linear; linear -- the call must NOT end the block, so all
	// three instructions land in one basic block.
	blocks, err := cfg.Reconstruct([]byte{0x40, 0x00, 0x00}, 0)
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Len(t, blocks[0].Instructions, 3, "call should not split the block")
}

func TestReconstructAlwaysTakenJumpSplitsIntoTwoBlocks(t *testing.T) {
	registerToyISA()
	// At address 0: jmp_always rel=4, resolving (per JumpTarget.Resolve,
	// relative to the jump instruction's own start address) to 0+4=4.
	// At address 4: linear.
	bits := []byte{0x10, 0x04, 0x00, 0x00, 0x00}
	blocks, err := cfg.Reconstruct(bits, 0)
	require.NoError(t, err)
	require.Len(t, blocks, 2)

	var entry *cfg.BasicBlock
	for _, bb := range blocks {
		if bb.StartAddress == 0 {
			entry = bb
		}
	}
	require.NotNil(t, entry, "no block starting at address 0")
	require.Len(t, entry.Targets, 1)
	assert.Equal(t, uint64(4), entry.Targets[0].StartAddress)
}

func TestReconstructNeverTakenJumpProducesNoTarget(t *testing.T) {
	registerToyISA()
	bits := []byte{0x20, 0x02, 0x00}
	blocks, err := cfg.Reconstruct(bits, 0)
	require.NoError(t, err)
	require.Len(t, blocks, 1, "never-jump should not split or branch")
	assert.Empty(t, blocks[0].Targets)
}

func TestReconstructConditionallyTakenJumpContinuesAndBranches(t *testing.T) {
	registerToyISA()
	// jz rel=0 at address 0 is a self-referential conditional branch
	// (its resolved target is its own start address): since it isn't
	// the "always" condition, it must not end the block, and decoding
	// continues linearly into the trailing instruction.
	bits := []byte{0x30, 0x00, 0x00}
	blocks, err := cfg.Reconstruct(bits, 0)
	require.NoError(t, err)
	require.Len(t, blocks, 1, "conditional jump should not split the block")

	entry := blocks[0]
	assert.Len(t, entry.Instructions, 2, "jz should not end the walk")
	require.Len(t, entry.Targets, 1)
	assert.Same(t, entry, entry.Targets[0], "want a single self-referential target")
}

func TestReconstructDetectsOverlappingBlocks(t *testing.T) {
	registerToyISA()
	// Start at address 10: a conditional jz there branches backward to
	// address 3 (not ending the block) and falls through to an hlt at
	// address 12, which does end it. The backward target's own block
	// then walks forward byte by byte through addresses 3..9 (all
	// "linear", non-terminating) until it reaches address 10 again --
	// the same bytes the root block already fully owns and has already
	// decoded -- tripping the overlap check.
	bits := []byte{
		0x00, 0x00, 0x00, // @0-2: unused filler
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // @3-9: linear
		0x30, 0xF9, // @10: jz rel=-7 -> 10-7=3
		0x50, // @12: hlt
	}
	_, err := cfg.Reconstruct(bits, 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, cfg.ErrOverlappingBlock)
}

func TestReconstructUnknownEncodingPropagatesError(t *testing.T) {
	registerToyISA()
	// 0xFF is not registered in the toy grammar above.
	_, err := cfg.Reconstruct([]byte{0xFF}, 0)
	require.Error(t, err)
	assert.NotErrorIs(t, err, cfg.ErrOverlappingBlock)
	assert.NotErrorIs(t, err, cfg.ErrOutOfOrderBlock)
}
