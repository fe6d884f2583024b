package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tallyhq/tally/internal/calendar"
	"github.com/tallyhq/tally/internal/engine"
	"github.com/tallyhq/tally/internal/models"
	"github.com/tallyhq/tally/internal/storage"
)

type Context struct {
	Store    storage.Provider
	Timezone string // flag override; empty means use stored settings
	Debug    bool
}

// Engine builds the accounting engine from the loaded store's settings.
func (c *Context) Engine() (*engine.Engine, error) {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	tz := settings.Timezone
	if c.Timezone != "" {
		tz = c.Timezone
	}
	loc, err := calendar.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}

	return engine.New(c.Store, c.Store,
		engine.WithLocation(loc),
		engine.WithStatsWindow(settings.StatsWindowDays),
	), nil
}

func parseWeekdays(s string) ([]time.Weekday, error) {
	parts := strings.Split(s, ",")
	var weekdays []time.Weekday

	dayMap := map[string]time.Weekday{
		"sun":       time.Sunday,
		"sunday":    time.Sunday,
		"mon":       time.Monday,
		"monday":    time.Monday,
		"tue":       time.Tuesday,
		"tuesday":   time.Tuesday,
		"wed":       time.Wednesday,
		"wednesday": time.Wednesday,
		"thu":       time.Thursday,
		"thursday":  time.Thursday,
		"fri":       time.Friday,
		"friday":    time.Friday,
		"sat":       time.Saturday,
		"saturday":  time.Saturday,
	}

	for _, part := range parts {
		part = strings.TrimSpace(strings.ToLower(part))
		if wd, ok := dayMap[part]; ok {
			weekdays = append(weekdays, wd)
		} else {
			// Try parsing as number (0=Sunday, 6=Saturday)
			num, err := strconv.Atoi(part)
			if err == nil && num >= 0 && num <= 6 {
				weekdays = append(weekdays, time.Weekday(num))
			} else {
				return nil, fmt.Errorf("invalid weekday: %s", part)
			}
		}
	}

	return weekdays, nil
}

func formatSchedule(s models.Schedule) string {
	var base string
	switch s.Kind {
	case models.ScheduleDaily:
		base = "daily"
	case models.ScheduleWeekly:
		var days []string
		for _, wd := range s.Weekdays {
			days = append(days, wd.String()[:3])
		}
		base = fmt.Sprintf("weekly on %s", strings.Join(days, ","))
	default:
		base = "unknown"
	}

	switch s.TimeHint {
	case "", models.HintAnytime:
		return base
	case models.HintSpecific:
		return fmt.Sprintf("%s at %s", base, s.At)
	default:
		return fmt.Sprintf("%s (%s)", base, s.TimeHint)
	}
}

// resolveDay turns a CLI date argument into a day key. Empty and "today"
// resolve against the engine's calendar.
func resolveDay(arg, today string) (string, error) {
	if arg == "" || arg == "today" {
		return today, nil
	}
	if !calendar.IsValid(arg) {
		return "", fmt.Errorf("invalid date format, use YYYY-MM-DD or 'today': %s", arg)
	}
	return arg, nil
}
