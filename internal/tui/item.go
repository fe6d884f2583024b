package tui

import (
	"fmt"

	"github.com/tallyhq/tally/internal/engine"
)

type Item struct {
	Entry engine.AgendaEntry
}

func (i Item) Title() string {
	if i.Entry.Completed {
		return "✓ " + i.Entry.Habit.Name
	}
	return "○ " + i.Entry.Habit.Name
}

func (i Item) Description() string {
	desc := "not completed today"
	if i.Entry.Completed {
		desc = "completed today"
	}
	if i.Entry.Streak.Current > 0 {
		desc = fmt.Sprintf("%s · streak %d", desc, i.Entry.Streak.Current)
	}
	if i.Entry.Streak.Longest > i.Entry.Streak.Current {
		desc = fmt.Sprintf("%s (best %d)", desc, i.Entry.Streak.Longest)
	}
	return desc
}

func (i Item) FilterValue() string { return i.Entry.Habit.Name }
