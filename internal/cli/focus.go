package cli

import (
	"fmt"
)

type FocusCmd struct{}

func (c *FocusCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	eng, err := ctx.Engine()
	if err != nil {
		return err
	}

	goalID, ok, err := eng.PrimaryGoal()
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("No goals yet. Add one with 'tally goal add'.")
		return nil
	}

	goal, err := ctx.Store.GetGoal(goalID)
	if err != nil {
		return err
	}

	pending, err := eng.PendingCount(&goal.ID)
	if err != nil {
		return err
	}

	fmt.Printf("Focus on: %s\n", goal.Title)
	if pending > 0 {
		fmt.Printf("  %d habit(s) still pending today\n", pending)
	} else {
		fmt.Println("  All of today's habits are done")
	}
	return nil
}
