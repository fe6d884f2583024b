package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/tallyhq/tally/internal/calendar"
	"github.com/tallyhq/tally/internal/constants"
	"github.com/tallyhq/tally/internal/models"
	"github.com/tallyhq/tally/internal/schedule"
)

type HabitCmd struct {
	Add     HabitAddCmd     `cmd:"" help:"Add a new habit."`
	List    HabitListCmd    `cmd:"" help:"List habits."`
	Log     HabitLogCmd     `cmd:"" help:"Show habit history (ASCII grid)."`
	Archive HabitArchiveCmd `cmd:"" help:"Archive a habit."`
	Delete  HabitDeleteCmd  `cmd:"" help:"Delete a habit (soft delete)."`
	Restore HabitRestoreCmd `cmd:"" help:"Restore a deleted habit."`
}

type HabitAddCmd struct {
	Name  string `arg:"" optional:"" help:"Habit name."`
	Goal  string `help:"Attach to a goal by title."`
	Daily bool   `help:"Plan the habit every day."`
	Days  string `help:"Comma-separated weekdays for a weekly habit (e.g. mon,wed,fri)."`
	Hint  string `help:"Time hint: anytime, morning, afternoon, evening, specific." default:"anytime"`
	At    string `help:"HH:MM, required when --hint=specific."`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	if c.Name == "" || (!c.Daily && c.Days == "") {
		if err := c.promptMissing(); err != nil {
			return err
		}
	}

	if _, err := ctx.Store.GetHabitByName(c.Name); err == nil {
		return fmt.Errorf("habit with name %q already exists", c.Name)
	}

	sched, err := c.buildSchedule()
	if err != nil {
		return err
	}

	var goalID *string
	if c.Goal != "" {
		goal, err := ctx.Store.GetGoalByTitle(c.Goal)
		if err != nil {
			return fmt.Errorf("goal %q not found", c.Goal)
		}
		goalID = &goal.ID
	}

	eng, err := ctx.Engine()
	if err != nil {
		return err
	}

	habit := models.Habit{
		ID:        uuid.New().String(),
		GoalID:    goalID,
		Name:      c.Name,
		Schedule:  sched,
		CreatedOn: eng.Today(),
		CreatedAt: time.Now(),
	}

	if err := ctx.Store.AddHabit(habit); err != nil {
		return err
	}

	fmt.Printf("Added habit: %s (%s)\n", c.Name, formatSchedule(sched))
	return nil
}

// promptMissing collects the name and schedule interactively when the flags
// don't pin them down.
func (c *HabitAddCmd) promptMissing() error {
	weekly := c.Days != ""
	var selected []time.Weekday

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit Name").
				Value(&c.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("habit name cannot be empty")
					}
					return nil
				}),
			huh.NewSelect[bool]().
				Title("Schedule").
				Options(
					huh.NewOption("Every day", false),
					huh.NewOption("Specific weekdays", true),
				).
				Value(&weekly),
			huh.NewMultiSelect[time.Weekday]().
				Title("Weekdays").
				Description("Only applies to weekly habits").
				Options(
					huh.NewOption("Monday", time.Monday),
					huh.NewOption("Tuesday", time.Tuesday),
					huh.NewOption("Wednesday", time.Wednesday),
					huh.NewOption("Thursday", time.Thursday),
					huh.NewOption("Friday", time.Friday),
					huh.NewOption("Saturday", time.Saturday),
					huh.NewOption("Sunday", time.Sunday),
				).
				Value(&selected),
		),
	).WithTheme(huh.ThemeDracula())

	if err := form.Run(); err != nil {
		return err
	}

	if weekly {
		if len(selected) == 0 {
			return fmt.Errorf("weekly schedule requires at least one weekday")
		}
		var names []string
		for _, wd := range selected {
			names = append(names, strings.ToLower(wd.String()[:3]))
		}
		c.Days = strings.Join(names, ",")
		c.Daily = false
	} else {
		c.Daily = true
		c.Days = ""
	}
	return nil
}

func (c *HabitAddCmd) buildSchedule() (models.Schedule, error) {
	hint := models.TimeHint(c.Hint)
	switch hint {
	case models.HintAnytime, models.HintMorning, models.HintAfternoon, models.HintEvening:
	case models.HintSpecific:
		if _, err := time.Parse(constants.TimeFormat, c.At); err != nil {
			return models.Schedule{}, fmt.Errorf("--hint=specific requires --at in HH:MM format")
		}
	default:
		return models.Schedule{}, fmt.Errorf("invalid time hint: %q", c.Hint)
	}

	if c.Daily {
		sched := models.NewDailySchedule(hint)
		sched.At = c.At
		return sched, nil
	}

	weekdays, err := parseWeekdays(c.Days)
	if err != nil {
		return models.Schedule{}, err
	}
	sched, err := models.NewWeeklySchedule(weekdays, hint)
	if err != nil {
		return models.Schedule{}, err
	}
	sched.At = c.At
	return sched, nil
}

type HabitListCmd struct {
	Archived bool `help:"Include archived habits."`
	Deleted  bool `help:"Include deleted habits."`
}

func (c *HabitListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habits, err := ctx.Store.GetAllHabits(c.Archived, c.Deleted)
	if err != nil {
		return err
	}

	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	goals, err := ctx.Store.GetAllGoals(true)
	if err != nil {
		return err
	}
	titles := make(map[string]string, len(goals))
	for _, g := range goals {
		titles[g.ID] = g.Title
	}

	for _, habit := range habits {
		status := ""
		if habit.DeletedAt != nil {
			status = " [DELETED]"
		} else if habit.ArchivedAt != nil {
			status = " [ARCHIVED]"
		}
		owner := ""
		if habit.GoalID != nil {
			if title, ok := titles[*habit.GoalID]; ok {
				owner = fmt.Sprintf("  → %s", title)
			}
		}
		fmt.Printf("%-24s %s%s%s\n", habit.Name, formatSchedule(habit.Schedule), owner, status)
	}

	return nil
}

type HabitLogCmd struct {
	Days  int    `help:"Number of days to show." default:"14"`
	Habit string `help:"Show log for specific habit only."`
}

func (c *HabitLogCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habits, err := ctx.Store.GetAllHabits(false, false)
	if err != nil {
		return err
	}

	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	var selected []models.Habit
	if c.Habit != "" {
		for _, h := range habits {
			if h.Name == c.Habit {
				selected = []models.Habit{h}
				break
			}
		}
		if len(selected) == 0 {
			return fmt.Errorf("habit %q not found", c.Habit)
		}
	} else {
		selected = habits
	}

	eng, err := ctx.Engine()
	if err != nil {
		return err
	}
	today := eng.Today()
	start, err := calendar.AddDays(today, -(c.Days - 1))
	if err != nil {
		return err
	}
	span, err := calendar.DaysBetween(start, today)
	if err != nil {
		return err
	}
	cols := span + 1

	fmt.Printf("Habit log (last %d days): x done, · planned, blank not planned\n\n", cols)

	const maxNameLen = 20
	fmt.Print(strings.Repeat(" ", maxNameLen))
	for i := 0; i < cols; i++ {
		day, _ := calendar.AddDays(start, i)
		t, _ := calendar.Parse(day)
		fmt.Printf(" %5s", t.Format("01/02"))
	}
	fmt.Println()

	fmt.Print(strings.Repeat("-", maxNameLen))
	for i := 0; i < cols; i++ {
		fmt.Print("------")
	}
	fmt.Println()

	for _, habit := range selected {
		name := habit.Name
		if len(name) > maxNameLen {
			name = name[:maxNameLen-3] + "..."
		} else {
			name = name + strings.Repeat(" ", maxNameLen-len(name))
		}
		fmt.Print(name)

		records, err := ctx.Store.ListCompletionsSince(habit.ID, start)
		if err != nil {
			return err
		}
		done := make(map[string]bool)
		for _, r := range records {
			if r.Completed {
				done[r.Day] = true
			}
		}

		for i := 0; i < cols; i++ {
			day, _ := calendar.AddDays(start, i)
			switch {
			case done[day]:
				fmt.Print("  x   ")
			case schedule.IsPlannedFor(habit, day):
				fmt.Print("  ·   ")
			default:
				fmt.Print("      ")
			}
		}
		fmt.Println()
	}

	return nil
}

type HabitArchiveCmd struct {
	Name      string `arg:"" help:"Habit name to archive."`
	Unarchive bool   `help:"Unarchive the habit instead."`
}

func (c *HabitArchiveCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := ctx.Store.GetHabitByName(c.Name)
	if err != nil {
		return fmt.Errorf("habit %q not found", c.Name)
	}

	if c.Unarchive {
		if err := ctx.Store.UnarchiveHabit(habit.ID); err != nil {
			return err
		}
		fmt.Printf("Unarchived habit: %s\n", c.Name)
	} else {
		if err := ctx.Store.ArchiveHabit(habit.ID); err != nil {
			return err
		}
		fmt.Printf("Archived habit: %s\n", c.Name)
	}

	return nil
}

type HabitDeleteCmd struct {
	Name string `arg:"" help:"Habit name to delete."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := ctx.Store.GetHabitByName(c.Name)
	if err != nil {
		return fmt.Errorf("habit %q not found", c.Name)
	}

	if err := ctx.Store.DeleteHabit(habit.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted habit: %s\n", c.Name)
	fmt.Println("(This is a soft delete. Use 'tally habit restore' to undo)")
	return nil
}

type HabitRestoreCmd struct {
	Name string `arg:"" help:"Habit name to restore."`
}

func (c *HabitRestoreCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habits, err := ctx.Store.GetAllHabits(true, true)
	if err != nil {
		return err
	}

	var habit *models.Habit
	for i, h := range habits {
		if h.Name == c.Name && h.DeletedAt != nil {
			habit = &habits[i]
			break
		}
	}

	if habit == nil {
		return fmt.Errorf("deleted habit %q not found", c.Name)
	}

	if err := ctx.Store.RestoreHabit(habit.ID); err != nil {
		return err
	}

	fmt.Printf("Restored habit: %s\n", c.Name)
	return nil
}
