// nodeterm – a terminal UI that browses a declarative node tree and, for
// hot nodes, embeds a fully interactive child program inside a bounded
// popup viewport of the same terminal.
//
// Stack: Go · Bubble Tea · Lip Gloss · go-pty
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nt168/nodeterm/internal/app"
	"github.com/nt168/nodeterm/internal/config"
	"github.com/nt168/nodeterm/internal/tree"
)

func main() {
	cfg := config.Load()

	if err := tree.WriteDefaultTree(cfg.TreePath); err != nil {
		fmt.Fprintln(os.Stderr, "nodeterm: writing default tree:", err)
	}

	root, err := tree.Load(cfg.TreePath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "nodeterm: loading tree, falling back to built-in default:", err)
		root = tree.DefaultTree()
	}

	health := config.LoadHealth()
	config.MarkStarting(&health)
	_ = config.SaveHealth(health)

	m := app.New(cfg, root)

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, runErr := p.Run()

	if runErr == nil {
		config.MarkCleanShutdown(&health)
	}
	_ = config.SaveHealth(health)

	if runErr != nil {
		fmt.Fprintln(os.Stderr, "nodeterm:", runErr)
		os.Exit(1)
	}
}
