package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/subcommands"

	"github.com/ETC-A/ETCa-decompiler/internal/decode"
	"github.com/ETC-A/ETCa-decompiler/internal/driver"
)

// replCmd is an interactive loop: read a hex string per line, print
// its decoding.
type replCmd struct{}

func (*replCmd) Name() string     { return "repl" }
func (*replCmd) Synopsis() string { return "Interactively decode hex literals" }
func (*replCmd) Usage() string {
	return `repl:
  Start an interactive session; each line is decoded as a hex literal.
`
}

func (*replCmd) SetFlags(*flag.FlagSet) {}

func (*replCmd) Execute(context.Context, *flag.FlagSet, ...interface{}) subcommands.ExitStatus {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "etca> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Println(err)
		return subcommands.ExitFailure
	}
	defer rl.Close()

	rc := decode.NewRenderContext()
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return subcommands.ExitSuccess
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return subcommands.ExitSuccess
		}

		bits, err := driver.BitsFromHex(line)
		if err != nil {
			fmt.Println(err)
			continue
		}
		parses, err := driver.Decode(bits)
		if err != nil {
			fmt.Println(err)
			continue
		}
		if len(parses) == 0 {
			fmt.Println("no parses")
			continue
		}
		for _, p := range parses {
			fmt.Println(p.Render(rc))
		}
	}
}
