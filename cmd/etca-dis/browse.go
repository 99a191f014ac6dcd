package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/ETC-A/ETCa-decompiler/internal/cfg"
	"github.com/ETC-A/ETCa-decompiler/internal/tui"
)

// browseCmd opens the read-only basic-block terminal browser.
type browseCmd struct {
	configPath string
}

func (*browseCmd) Name() string     { return "browse" }
func (*browseCmd) Synopsis() string { return "Browse reconstructed basic blocks in a terminal UI" }
func (*browseCmd) Usage() string {
	return `browse <file>:
  Reconstruct basic blocks from a raw binary file and open a read-only
  terminal UI to browse them.
`
}

func (c *browseCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.configPath, "config", "", "config file path (default: platform config dir)")
}

func (c *browseCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "browse: a file argument is required")
		return subcommands.ExitUsageError
	}

	cfgVal, err := loadConfig(c.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "browse: %v\n", err)
		return subcommands.ExitFailure
	}

	bits, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "browse: %v\n", err)
		return subcommands.ExitFailure
	}

	blocks, err := cfg.Reconstruct(bits, cfgVal.Disassembly.DefaultStart)
	if err != nil {
		fmt.Fprintf(os.Stderr, "browse: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := tui.NewTUI(blocks).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "browse: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
