package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tallyhq/tally/internal/models"
)

type GoalCmd struct {
	Add    GoalAddCmd    `cmd:"" help:"Add a new goal."`
	List   GoalListCmd   `cmd:"" help:"List goals."`
	Delete GoalDeleteCmd `cmd:"" help:"Delete a goal (soft delete)."`
}

type GoalAddCmd struct {
	Title string `arg:"" help:"Goal title."`
}

func (c *GoalAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	if _, err := ctx.Store.GetGoalByTitle(c.Title); err == nil {
		return fmt.Errorf("goal with title %q already exists", c.Title)
	}

	goal := models.Goal{
		ID:        uuid.New().String(),
		Title:     c.Title,
		CreatedAt: time.Now(),
	}

	if err := ctx.Store.AddGoal(goal); err != nil {
		return err
	}

	fmt.Printf("Added goal: %s\n", c.Title)
	return nil
}

type GoalListCmd struct {
	Deleted bool `help:"Include deleted goals."`
}

func (c *GoalListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	goals, err := ctx.Store.GetAllGoals(c.Deleted)
	if err != nil {
		return err
	}

	if len(goals) == 0 {
		fmt.Println("No goals found.")
		return nil
	}

	habits, err := ctx.Store.GetAllHabits(false, false)
	if err != nil {
		return err
	}

	for _, goal := range goals {
		count := 0
		for _, h := range habits {
			if h.GoalID != nil && *h.GoalID == goal.ID {
				count++
			}
		}
		status := ""
		if goal.DeletedAt != nil {
			status = " [DELETED]"
		}
		fmt.Printf("%s  (%d habits)%s\n", goal.Title, count, status)
	}

	return nil
}

type GoalDeleteCmd struct {
	Title string `arg:"" help:"Goal title to delete."`
}

func (c *GoalDeleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	goal, err := ctx.Store.GetGoalByTitle(c.Title)
	if err != nil {
		return fmt.Errorf("goal %q not found", c.Title)
	}

	if err := ctx.Store.DeleteGoal(goal.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted goal: %s\n", c.Title)
	fmt.Println("(Habits attached to it are kept; they become standalone in views)")
	return nil
}
