package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/ETC-A/ETCa-decompiler/internal/config"
	"github.com/ETC-A/ETCa-decompiler/internal/decode"
	"github.com/ETC-A/ETCa-decompiler/internal/driver"
)

// disasmCmd implements linear disassembly: spec.md §6's external
// interface, byte-offset / raw bytes / rendered assembly per line.
type disasmCmd struct {
	configPath string
}

func (*disasmCmd) Name() string     { return "disasm" }
func (*disasmCmd) Synopsis() string { return "Linearly disassemble a raw binary file" }
func (*disasmCmd) Usage() string {
	return `disasm <file>:
  Disassemble a raw binary file from the configured default_start byte
  (0 unless set), printing one line per instruction: byte-offset, raw
  bytes, rendered assembly.
`
}

func (c *disasmCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.configPath, "config", "", "config file path (default: platform config dir)")
}

func (c *disasmCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "disasm: a file argument is required")
		return subcommands.ExitUsageError
	}

	cfg, err := loadConfig(c.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "disasm: %v\n", err)
		return subcommands.ExitFailure
	}

	bits, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "disasm: %v\n", err)
		return subcommands.ExitFailure
	}

	decoded, err := driver.LinearDisassemble(bits, int(cfg.Disassembly.DefaultStart)*8)
	if err != nil {
		fmt.Fprintf(os.Stderr, "disasm: %v\n", err)
		return subcommands.ExitFailure
	}

	rc := decode.NewRenderContext()
	for _, d := range decoded {
		start := d.StartBit / 8
		end := (d.EndBit + 7) / 8
		printLine(cfg, uint64(start), bits[start:end], d.Part.Render(rc))
	}
	return subcommands.ExitSuccess
}

func printLine(cfg *config.Config, addr uint64, raw []byte, assembly string) {
	hexFmt := "%02x"
	addrFmt := fmt.Sprintf("%%0%dx", cfg.Display.AddressDigits)
	if cfg.Display.UppercaseHex {
		hexFmt = "%02X"
		addrFmt = fmt.Sprintf("%%0%dX", cfg.Display.AddressDigits)
	}

	var groups []string
	group := cfg.Display.GroupBytes
	if group <= 0 {
		group = len(raw)
	}
	for i := 0; i < len(raw); i += group {
		end := i + group
		if end > len(raw) {
			end = len(raw)
		}
		var sb strings.Builder
		for _, b := range raw[i:end] {
			fmt.Fprintf(&sb, hexFmt, b)
		}
		groups = append(groups, sb.String())
	}

	fmt.Printf(addrFmt+": %-20s  %s\n", addr, strings.Join(groups, " "), assembly)
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFrom(path)
}
