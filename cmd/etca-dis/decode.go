package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/ETC-A/ETCa-decompiler/internal/decode"
	"github.com/ETC-A/ETCa-decompiler/internal/driver"
)

// decodeCmd decodes a single top-level instruction from a hex literal
// and prints every parse the grammar produces whose extension
// requirements are satisfied by the configured [extensions] table
// (spec.md §8's requirement-monotonicity property: disabling an
// extension only ever removes parses from this list). spec.md §8's
// ambiguity sweep is the same operation looped over a window of
// literals.
type decodeCmd struct {
	configPath string
}

func (*decodeCmd) Name() string     { return "decode" }
func (*decodeCmd) Synopsis() string { return "Decode one instruction from a hex literal" }
func (*decodeCmd) Usage() string {
	return `decode <hex>:
  Decode a hex string (e.g. "800f") and print every successful parse
  whose extension requirements are currently enabled.
`
}

func (c *decodeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.configPath, "config", "", "config file path (default: platform config dir)")
}

func (c *decodeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "decode: a hex literal argument is required")
		return subcommands.ExitUsageError
	}

	cfg, err := loadConfig(c.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "decode: %v\n", err)
		return subcommands.ExitFailure
	}

	bits, err := driver.BitsFromHex(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "decode: %v\n", err)
		return subcommands.ExitFailure
	}

	parses, err := driver.Decode(bits)
	if err != nil {
		fmt.Fprintf(os.Stderr, "decode: %v\n", err)
		return subcommands.ExitFailure
	}

	available := cfg.EnabledExtensions()
	parses = filterByRequirements(parses, available)

	if len(parses) == 0 {
		fmt.Println("no parses")
		return subcommands.ExitSuccess
	}

	rc := decode.NewRenderContext()
	for _, p := range parses {
		fmt.Printf("%s\n", p.Render(rc))
	}
	return subcommands.ExitSuccess
}

// filterByRequirements drops every parse whose extension requirements
// are not satisfied by available, preserving relative order.
func filterByRequirements(parses []decode.Part, available map[*decode.Extension]bool) []decode.Part {
	out := parses[:0:0]
	for _, p := range parses {
		if p.Requirements().Satisfied(available) {
			out = append(out, p)
		}
	}
	return out
}
