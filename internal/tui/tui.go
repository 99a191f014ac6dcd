// Package tui is a read-only terminal browser over a reconstructed set
// of basic blocks: no stepping, no breakpoints, no register state —
// those belong to an emulator, which is out of scope here.
package tui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/ETC-A/ETCa-decompiler/internal/cfg"
	"github.com/ETC-A/ETCa-decompiler/internal/decode"
)

// TUI is the basic-block browser application.
type TUI struct {
	App        *tview.Application
	Pages      *tview.Pages
	MainLayout *tview.Flex

	BlockList        *tview.List
	InstructionsView *tview.TextView
	TargetsView      *tview.TextView
	HelpView         *tview.TextView

	Blocks []*cfg.BasicBlock
}

// NewTUI builds a browser over blocks, ordered as given.
func NewTUI(blocks []*cfg.BasicBlock) *TUI {
	return newTUI(blocks, nil)
}

// NewTUIWithScreen builds a browser backed by an explicit tcell.Screen,
// letting tests drive it against a tcell.SimulationScreen instead of a
// real terminal.
func NewTUIWithScreen(blocks []*cfg.BasicBlock, screen tcell.Screen) *TUI {
	return newTUI(blocks, screen)
}

func newTUI(blocks []*cfg.BasicBlock, screen tcell.Screen) *TUI {
	t := &TUI{
		App:    tview.NewApplication(),
		Blocks: blocks,
	}
	if screen != nil {
		t.App.SetScreen(screen)
	}

	t.initializeViews()
	t.buildLayout()
	t.setupKeyBindings()

	return t
}

func (t *TUI) initializeViews() {
	t.BlockList = tview.NewList().ShowSecondaryText(false)
	t.BlockList.SetBorder(true).SetTitle(" Basic Blocks ")
	for _, bb := range t.Blocks {
		label := fmt.Sprintf("0x%08X  (%d instr, %d succ)", bb.StartAddress, len(bb.Instructions), len(bb.Targets))
		t.BlockList.AddItem(label, "", 0, nil)
	}
	t.BlockList.SetChangedFunc(func(index int, _ string, _ string, _ rune) {
		t.showBlock(index)
	})

	t.InstructionsView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(false)
	t.InstructionsView.SetBorder(true).SetTitle(" Instructions ")

	t.TargetsView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(false)
	t.TargetsView.SetBorder(true).SetTitle(" Successors ")

	t.HelpView = tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true)
	t.HelpView.SetBorder(true).SetTitle(" Help ")
}

func (t *TUI) buildLayout() {
	rightPanel := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(t.InstructionsView, 0, 3, false).
		AddItem(t.TargetsView, 0, 1, false)

	mainContent := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(t.BlockList, 0, 1, true).
		AddItem(rightPanel, 0, 2, false)

	t.MainLayout = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(mainContent, 0, 5, true).
		AddItem(t.HelpView, 4, 0, false)

	t.Pages = tview.NewPages().AddPage("main", t.MainLayout, true, true)
}

func (t *TUI) setupKeyBindings() {
	t.App.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyCtrlC:
			t.App.Stop()
			return nil
		case tcell.KeyCtrlL:
			t.App.Draw()
			return nil
		}
		return event
	})
}

func (t *TUI) showBlock(index int) {
	if index < 0 || index >= len(t.Blocks) {
		return
	}
	bb := t.Blocks[index]

	var lines []string
	for _, d := range bb.Instructions {
		rc := decode.NewRenderContext()
		lines = append(lines, fmt.Sprintf("0x%08X: %s", d.StartAddress(), d.Part.Render(rc)))
	}
	t.InstructionsView.SetText(strings.Join(lines, "\n"))
	t.InstructionsView.ScrollToBeginning()

	var targets []string
	if len(bb.Targets) == 0 {
		targets = append(targets, "[yellow]none[white]")
	} else {
		for _, target := range bb.Targets {
			targets = append(targets, fmt.Sprintf("-> 0x%08X", target.StartAddress))
		}
	}
	t.TargetsView.SetText(strings.Join(targets, "\n"))
}

// Run starts the TUI event loop, blocking until the user quits.
func (t *TUI) Run() error {
	t.HelpView.SetText("[green]basic block browser[white]  arrows/j/k select a block, ctrl+c to quit")
	if len(t.Blocks) > 0 {
		t.showBlock(0)
	}
	return t.App.SetRoot(t.Pages, true).SetFocus(t.BlockList).Run()
}

// Stop terminates the TUI event loop.
func (t *TUI) Stop() {
	t.App.Stop()
}
