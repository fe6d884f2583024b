package engine

import (
	"github.com/tallyhq/tally/internal/apperrors"
	"github.com/tallyhq/tally/internal/calendar"
	"github.com/tallyhq/tally/internal/constants"
	"github.com/tallyhq/tally/internal/models"
	"github.com/tallyhq/tally/internal/schedule"
)

// Snapshot recomputes the habit's streak state from the ledger. On a ledger
// read failure it returns the zero snapshot along with a StoreError so
// callers can render something instead of failing the whole view.
func (e *Engine) Snapshot(h models.Habit) (models.StreakSnapshot, error) {
	today := e.Today()

	completed, total, err := e.completedDays(h)
	if err != nil {
		return models.StreakSnapshot{}, err
	}

	rate := successRate(h, completed, e.windowDays, today)

	return models.StreakSnapshot{
		Current:          currentStreak(h, completed, today),
		Longest:          longestStreak(h, completed, today),
		TotalCompletions: total,
		SuccessRate:      rate,
	}, nil
}

// SnapshotOrZero is Snapshot with the degrade policy applied: a read failure
// yields the neutral zero snapshot. Streak display must never hard-fail a
// dashboard render.
func (e *Engine) SnapshotOrZero(h models.Habit) models.StreakSnapshot {
	snap, err := e.Snapshot(h)
	if err != nil {
		return models.StreakSnapshot{}
	}
	return snap
}

// SuccessRate returns completedPlannedDays/plannedDays over the trailing
// window, bounded by the habit's creation day. Zero planned days yields 0.
func (e *Engine) SuccessRate(h models.Habit, windowDays int) (float64, error) {
	completed, _, err := e.completedDays(h)
	if err != nil {
		return 0, err
	}
	return successRate(h, completed, windowDays, e.Today()), nil
}

// completedDays loads the habit's history once and returns the set of
// completed day keys plus the total completion count. Explicit false records
// read the same as absence.
func (e *Engine) completedDays(h models.Habit) (map[string]bool, int, error) {
	from := h.CreatedOn
	if from == "" {
		from = calendar.DayOf(h.CreatedAt, e.loc)
	}
	records, err := e.ledger.ListCompletionsSince(h.ID, from)
	if err != nil {
		return nil, 0, apperrors.WrapStore("list completions", err)
	}

	completed := make(map[string]bool, len(records))
	total := 0
	for _, r := range records {
		if r.Completed {
			completed[r.Day] = true
			total++
		}
	}
	return completed, total, nil
}

// currentStreak walks backward from today. Non-planned days never interrupt
// a streak; the first planned day that is not completed ends it. Streaks
// count consecutive successful occurrences, not consecutive calendar days.
func currentStreak(h models.Habit, completed map[string]bool, today string) int {
	cursor, err := calendar.Parse(today)
	if err != nil {
		return 0
	}

	count := 0
	for i := 0; i < constants.MaxHistoryDays; i++ {
		day := cursor.Format(constants.DateFormat)
		if h.CreatedOn != "" && calendar.Compare(day, h.CreatedOn) < 0 {
			break
		}
		if schedule.IsPlanned(h.Schedule, day) {
			if !completed[day] {
				break
			}
			count++
		}
		cursor = cursor.AddDate(0, 0, -1)
	}
	return count
}

// longestStreak is a single forward scan from the creation day applying the
// same planned/completed/break rule, tracking the maximum run.
func longestStreak(h models.Habit, completed map[string]bool, today string) int {
	start := h.CreatedOn
	if start == "" || calendar.Compare(start, today) > 0 {
		return 0
	}
	// Clamp very old creation days so the scan stays linear in bounded history.
	if earliest, err := calendar.AddDays(today, -constants.MaxHistoryDays); err == nil {
		if calendar.Compare(start, earliest) < 0 {
			start = earliest
		}
	}

	cursor, err := calendar.Parse(start)
	if err != nil {
		return 0
	}

	longest, run := 0, 0
	for {
		day := cursor.Format(constants.DateFormat)
		if calendar.Compare(day, today) > 0 {
			break
		}
		if schedule.IsPlanned(h.Schedule, day) {
			if completed[day] {
				run++
				if run > longest {
					longest = run
				}
			} else {
				run = 0
			}
		}
		cursor = cursor.AddDate(0, 0, 1)
	}
	return longest
}

func successRate(h models.Habit, completed map[string]bool, windowDays int, today string) float64 {
	if windowDays <= 0 {
		windowDays = constants.DefaultStatsWindowDays
	}
	start, err := calendar.AddDays(today, -(windowDays - 1))
	if err != nil {
		return 0
	}
	if h.CreatedOn != "" && calendar.Compare(start, h.CreatedOn) < 0 {
		start = h.CreatedOn
	}

	cursor, err := calendar.Parse(start)
	if err != nil {
		return 0
	}

	planned, done := 0, 0
	for {
		day := cursor.Format(constants.DateFormat)
		if calendar.Compare(day, today) > 0 {
			break
		}
		if schedule.IsPlanned(h.Schedule, day) {
			planned++
			if completed[day] {
				done++
			}
		}
		cursor = cursor.AddDate(0, 0, 1)
	}

	if planned == 0 {
		return 0
	}
	return float64(done) / float64(planned)
}
