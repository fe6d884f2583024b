package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tallyhq/tally/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	eng, err := ctx.Engine()
	if err != nil {
		return err
	}

	p := tea.NewProgram(tui.NewModel(eng), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	return nil
}
