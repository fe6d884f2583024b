package cli

import (
	"fmt"
)

type MarkCmd struct {
	Name string `arg:"" help:"Habit name."`
	Date string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *MarkCmd) Run(ctx *Context) error {
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

	day, err := resolveDay(c.Date, eng.Today())
	if err != nil {
		return err
	}

	completed, err := eng.Toggle(habit.ID, day)
	if err != nil {
		return err
	}

	if completed {
		fmt.Printf("Marked habit %q done for %s\n", c.Name, day)
	} else {
		fmt.Printf("Unmarked habit %q for %s\n", c.Name, day)
	}
	return nil
}
