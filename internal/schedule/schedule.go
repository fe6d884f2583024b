// Package schedule decides whether a habit is planned on a given day. The
// predicate is schedule-only: it knows nothing about creation dates or
// completion history, and callers intersect with day >= habit.CreatedOn.
package schedule

import (
	"github.com/tallyhq/tally/internal/calendar"
	"github.com/tallyhq/tally/internal/models"
)

// IsPlanned reports whether the schedule plans the habit on the given day.
// Malformed day keys are never planned.
func IsPlanned(s models.Schedule, day string) bool {
	switch s.Kind {
	case models.ScheduleDaily:
		return calendar.IsValid(day)
	case models.ScheduleWeekly:
		if len(s.Weekdays) == 0 {
			return false
		}
		wd, err := calendar.WeekdayOf(day)
		if err != nil {
			return false
		}
		for _, d := range s.Weekdays {
			if wd == d {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// IsPlannedFor applies the creation-date bound on top of the schedule
// predicate: a habit is never planned before its creation day.
func IsPlannedFor(h models.Habit, day string) bool {
	if h.CreatedOn != "" && calendar.Compare(day, h.CreatedOn) < 0 {
		return false
	}
	return IsPlanned(h.Schedule, day)
}
