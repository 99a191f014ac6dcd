// Command etca-dis is the ETCa disassembler CLI front end.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	// Blank-imported so every extension's init() registration runs
	// before any command touches the pattern registry.
	_ "github.com/ETC-A/ETCa-decompiler/internal/isa"
)

// Version information, overridable at build time with:
// go build -ldflags "-X main.Version=v1.2.3"
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(&versionCmd{}, "")
	subcommands.Register(&disasmCmd{}, "")
	subcommands.Register(&blocksCmd{}, "")
	subcommands.Register(&decodeCmd{}, "")
	subcommands.Register(&replCmd{}, "")
	subcommands.Register(&browseCmd{}, "")

	flag.Parse()
	ctx := context.Background()
	os.Exit(int(subcommands.Execute(ctx)))
}

type versionCmd struct{}

func (*versionCmd) Name() string     { return "version" }
func (*versionCmd) Synopsis() string { return "Print version information" }
func (*versionCmd) Usage() string    { return "version:\n  Print version information.\n" }
func (*versionCmd) SetFlags(*flag.FlagSet) {}

func (*versionCmd) Execute(context.Context, *flag.FlagSet, ...interface{}) subcommands.ExitStatus {
	fmt.Printf("etca-dis %s\n", Version)
	if Commit != "unknown" {
		fmt.Printf("commit: %s\n", Commit)
	}
	if Date != "unknown" {
		fmt.Printf("built: %s\n", Date)
	}
	return subcommands.ExitSuccess
}
