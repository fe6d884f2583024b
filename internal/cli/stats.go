package cli

import (
	"fmt"
)

type StatsCmd struct {
	Name   string `arg:"" help:"Habit name."`
	Window int    `help:"Trailing window in days for the success rate." default:"30"`
}

func (c *StatsCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := ctx.Store.GetHabitByName(c.Name)
	if err != nil {
		return fmt.Errorf("habit %q not found", c.Name)
	}

	eng, err := ctx.Engine()
	if err != nil {
		return err
	}

	snap, err := eng.Snapshot(habit)
	if err != nil {
		return err
	}
	rate, err := eng.SuccessRate(habit, c.Window)
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s)\n\n", habit.Name, formatSchedule(habit.Schedule))
	fmt.Printf("  Current streak:    %d\n", snap.Current)
	fmt.Printf("  Longest streak:    %d\n", snap.Longest)
	fmt.Printf("  Total completions: %d\n", snap.TotalCompletions)
	fmt.Printf("  Success rate:      %.0f%% (last %d days)\n", rate*100, c.Window)
	return nil
}
