package models

import (
	"fmt"
	"time"

	"github.com/tallyhq/tally/internal/apperrors"
)

type ScheduleKind string

const (
	ScheduleDaily  ScheduleKind = "daily"
	ScheduleWeekly ScheduleKind = "weekly"
)

// TimeHint is advisory only: it affects display ordering and labels, never
// whether a day is planned.
type TimeHint string

const (
	HintAnytime   TimeHint = "anytime"
	HintMorning   TimeHint = "morning"
	HintAfternoon TimeHint = "afternoon"
	HintEvening   TimeHint = "evening"
	HintSpecific  TimeHint = "specific"
)

// Schedule describes when a habit is planned. Daily schedules are planned
// every calendar day; weekly schedules are planned exactly on the weekdays in
// Weekdays, which must be non-empty.
type Schedule struct {
	Kind     ScheduleKind   `json:"kind"`
	Weekdays []time.Weekday `json:"weekdays,omitempty"`
	TimeHint TimeHint       `json:"time_hint,omitempty"`
	At       string         `json:"at,omitempty"` // HH:MM, set when TimeHint is "specific"
}

// NewDailySchedule builds a schedule planned on every calendar day.
func NewDailySchedule(hint TimeHint) Schedule {
	if hint == "" {
		hint = HintAnytime
	}
	return Schedule{Kind: ScheduleDaily, TimeHint: hint}
}

// NewWeeklySchedule builds a schedule planned on the given weekdays. An empty
// weekday set is a configuration error, not "never planned", and is rejected
// here so the invalid state never reaches the engine.
func NewWeeklySchedule(weekdays []time.Weekday, hint TimeHint) (Schedule, error) {
	if len(weekdays) == 0 {
		return Schedule{}, apperrors.NewScheduleConfigError("weekly schedule requires at least one weekday")
	}
	seen := make(map[time.Weekday]bool)
	var days []time.Weekday
	for _, wd := range weekdays {
		if wd < time.Sunday || wd > time.Saturday {
			return Schedule{}, apperrors.NewScheduleConfigError(fmt.Sprintf("invalid weekday: %d", wd))
		}
		if !seen[wd] {
			seen[wd] = true
			days = append(days, wd)
		}
	}
	if hint == "" {
		hint = HintAnytime
	}
	return Schedule{Kind: ScheduleWeekly, Weekdays: days, TimeHint: hint}, nil
}

// Validate checks invariants on a schedule loaded from storage.
func (s Schedule) Validate() error {
	switch s.Kind {
	case ScheduleDaily:
		return nil
	case ScheduleWeekly:
		if len(s.Weekdays) == 0 {
			return apperrors.NewScheduleConfigError("weekly schedule has an empty weekday set")
		}
		return nil
	default:
		return apperrors.NewScheduleConfigError(fmt.Sprintf("unknown schedule kind: %q", s.Kind))
	}
}
