package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/tallyhq/tally/internal/engine"
)

var (
	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	pendingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

type TodayCmd struct {
	Goal       string `help:"Show only habits of this goal."`
	Standalone bool   `help:"Show only standalone habits."`
}

func (c *TodayCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	eng, err := ctx.Engine()
	if err != nil {
		return err
	}

	var entries []engine.AgendaEntry
	switch {
	case c.Goal != "":
		goal, err := ctx.Store.GetGoalByTitle(c.Goal)
		if err != nil {
			return fmt.Errorf("goal %q not found", c.Goal)
		}
		entries, err = eng.AgendaForGoal(goal.ID)
		if err != nil {
			return err
		}
	case c.Standalone:
		entries, err = eng.StandaloneAgenda()
		if err != nil {
			return err
		}
	default:
		entries, err = eng.TodaysAgenda()
		if err != nil {
			return err
		}
	}

	fmt.Printf("Due on %s:\n\n", eng.Today())

	if len(entries) == 0 {
		fmt.Println("  Nothing scheduled today.")
		return nil
	}

	pending := 0
	for _, entry := range entries {
		marker := pendingStyle.Render("○")
		if entry.Completed {
			marker = doneStyle.Render("✓")
		} else {
			pending++
		}
		streak := ""
		if entry.Streak.Current > 0 {
			streak = dimStyle.Render(fmt.Sprintf("  streak %d", entry.Streak.Current))
		}
		hint := dimStyle.Render(formatSchedule(entry.Habit.Schedule))
		fmt.Printf("%s %-24s %s%s\n", marker, entry.Habit.Name, hint, streak)
	}

	fmt.Printf("\nPending: %d/%d\n", pending, len(entries))
	return nil
}
