package engine

import (
	"sort"

	"github.com/tallyhq/tally/internal/apperrors"
	"github.com/tallyhq/tally/internal/logger"
	"github.com/tallyhq/tally/internal/models"
	"github.com/tallyhq/tally/internal/schedule"
)

// AgendaEntry is one due habit in a today view, joined with its completion
// state and recomputed streak.
type AgendaEntry struct {
	Habit     models.Habit
	Completed bool
	Streak    models.StreakSnapshot
}

// TodaysAgenda returns every habit due today: goal-linked and standalone
// unioned, deduplicated by habit ID.
func (e *Engine) TodaysAgenda() ([]AgendaEntry, error) {
	goalLinked, err := e.agenda(func(h models.Habit) bool { return h.GoalID != nil })
	if err != nil {
		return nil, err
	}
	standalone, err := e.agenda(func(h models.Habit) bool { return h.Standalone() })
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(goalLinked)+len(standalone))
	var union []AgendaEntry
	for _, entry := range append(goalLinked, standalone...) {
		if seen[entry.Habit.ID] {
			continue
		}
		seen[entry.Habit.ID] = true
		union = append(union, entry)
	}
	sortAgenda(union)
	return union, nil
}

// AgendaForGoal returns the habits of one goal that are due today.
func (e *Engine) AgendaForGoal(goalID string) ([]AgendaEntry, error) {
	return e.agenda(func(h models.Habit) bool {
		return h.GoalID != nil && *h.GoalID == goalID
	})
}

// StandaloneAgenda returns due habits that belong to no goal.
func (e *Engine) StandaloneAgenda() ([]AgendaEntry, error) {
	return e.agenda(func(h models.Habit) bool { return h.Standalone() })
}

// PendingCount counts due-but-incomplete habits, for one goal or (nil)
// across the combined view.
func (e *Engine) PendingCount(goalID *string) (int, error) {
	var entries []AgendaEntry
	var err error
	if goalID == nil {
		entries, err = e.TodaysAgenda()
	} else {
		entries, err = e.AgendaForGoal(*goalID)
	}
	if err != nil {
		return 0, err
	}

	pending := 0
	for _, entry := range entries {
		if !entry.Completed {
			pending++
		}
	}
	return pending, nil
}

func (e *Engine) agenda(match func(models.Habit) bool) ([]AgendaEntry, error) {
	habits, err := e.catalog.GetAllHabits(false, false)
	if err != nil {
		return nil, apperrors.WrapStore("list habits", err)
	}

	today := e.Today()
	var entries []AgendaEntry
	for _, h := range habits {
		if !match(h) || !schedule.IsPlannedFor(h, today) {
			continue
		}

		// Ledger read failures degrade to not-completed / zero streak so the
		// dashboard still renders.
		completed, _, err := e.ledger.GetCompletion(h.ID, today)
		if err != nil {
			logger.Warn("ledger read failed, showing neutral state", "habit", h.ID, "error", err)
			completed = false
		}

		entries = append(entries, AgendaEntry{
			Habit:     h,
			Completed: completed,
			Streak:    e.SnapshotOrZero(h),
		})
	}
	sortAgenda(entries)
	return entries, nil
}

// sortAgenda orders entries for display by time hint, then specific time,
// then name. The hint never affects whether a habit is due, only ordering.
func sortAgenda(entries []AgendaEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].Habit, entries[j].Habit
		ra, rb := hintRank(a.Schedule.TimeHint), hintRank(b.Schedule.TimeHint)
		if ra != rb {
			return ra < rb
		}
		if a.Schedule.TimeHint == models.HintSpecific && b.Schedule.TimeHint == models.HintSpecific &&
			a.Schedule.At != b.Schedule.At {
			return a.Schedule.At < b.Schedule.At
		}
		return a.Name < b.Name
	})
}

func hintRank(hint models.TimeHint) int {
	switch hint {
	case models.HintMorning:
		return 0
	case models.HintAfternoon:
		return 1
	case models.HintEvening:
		return 2
	case models.HintSpecific:
		return 3
	default: // anytime
		return 4
	}
}
