package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/ETC-A/ETCa-decompiler/internal/cfg"
	"github.com/ETC-A/ETCa-decompiler/internal/config"
	"github.com/ETC-A/ETCa-decompiler/internal/decode"
)

// blocksCmd implements nonlinear disassembly: spec.md §4.6's basic
// block reconstruction, printing each block and its successor edges.
type blocksCmd struct {
	configPath string
}

func (*blocksCmd) Name() string     { return "blocks" }
func (*blocksCmd) Synopsis() string { return "Reconstruct and print basic blocks" }
func (*blocksCmd) Usage() string {
	return `blocks <file>:
  Reconstruct basic blocks from a raw binary file and print each
  block's instructions and successor addresses.
`
}

func (c *blocksCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.configPath, "config", "", "config file path (default: platform config dir)")
}

func (c *blocksCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "blocks: a file argument is required")
		return subcommands.ExitUsageError
	}

	cfgVal, err := loadConfig(c.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "blocks: %v\n", err)
		return subcommands.ExitFailure
	}

	bits, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "blocks: %v\n", err)
		return subcommands.ExitFailure
	}

	blocks, err := cfg.Reconstruct(bits, cfgVal.Disassembly.DefaultStart)
	if err != nil {
		fmt.Fprintf(os.Stderr, "blocks: %v\n", err)
		return subcommands.ExitFailure
	}

	rc := decode.NewRenderContext()
	for _, bb := range blocks {
		fmt.Printf("block 0x%0*x:\n", cfgVal.Display.AddressDigits, bb.StartAddress)
		for _, d := range bb.Instructions {
			fmt.Printf("  0x%0*x: %s\n", cfgVal.Display.AddressDigits, d.StartAddress(), d.Part.Render(rc))
		}
		for _, target := range bb.Targets {
			fmt.Printf("  -> 0x%0*x\n", cfgVal.Display.AddressDigits, target.StartAddress)
		}
	}
	return subcommands.ExitSuccess
}
