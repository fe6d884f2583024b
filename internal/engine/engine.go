// Package engine answers the scheduling and accounting questions the rest of
// the app asks about habits: is this due today, what is the streak, what
// fraction of planned days were completed. Everything is recomputed from the
// completion ledger on demand; no derived state is cached, so there is
// nothing to invalidate.
package engine

import (
	"time"

	"github.com/tallyhq/tally/internal/calendar"
	"github.com/tallyhq/tally/internal/constants"
	"github.com/tallyhq/tally/internal/models"
	"github.com/tallyhq/tally/internal/schedule"
	"github.com/tallyhq/tally/internal/storage"
)

type Engine struct {
	catalog    storage.Catalog
	ledger     storage.Ledger
	loc        *time.Location
	windowDays int
	now        func() time.Time
	locks      keyedLocks
}

type Option func(*Engine)

// WithLocation sets the calendar timezone used to resolve "today".
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) {
		if loc != nil {
			e.loc = loc
		}
	}
}

// WithStatsWindow sets the trailing window for the snapshot success rate.
func WithStatsWindow(days int) Option {
	return func(e *Engine) {
		if days > 0 {
			e.windowDays = days
		}
	}
}

// WithClock overrides the time source. Tests use this to pin "today".
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// New builds an engine over the given catalog and ledger. Both are injected;
// the engine holds no other state.
func New(catalog storage.Catalog, ledger storage.Ledger, opts ...Option) *Engine {
	e := &Engine{
		catalog:    catalog,
		ledger:     ledger,
		loc:        time.Local,
		windowDays: constants.DefaultStatsWindowDays,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Today returns today's day key in the engine's timezone.
func (e *Engine) Today() string {
	return calendar.DayOf(e.now(), e.loc)
}

// IsDueToday reports whether the habit is planned today, bounded by its
// creation day.
func (e *Engine) IsDueToday(h models.Habit) bool {
	return schedule.IsPlannedFor(h, e.Today())
}
