package engine

import (
	"testing"
	"time"

	"github.com/tallyhq/tally/internal/constants"
	"github.com/tallyhq/tally/internal/models"
	"github.com/tallyhq/tally/internal/storage"
)

// newTestEngine pins "today" to the given day key (UTC) so streak math is
// reproducible regardless of when the tests run.
func newTestEngine(t *testing.T, store *storage.MemoryStore, today string, opts ...Option) *Engine {
	t.Helper()

	ts, err := time.Parse(constants.DateFormat, today)
	if err != nil {
		t.Fatalf("bad test day %q: %v", today, err)
	}
	noon := ts.Add(12 * time.Hour)

	base := []Option{
		WithLocation(time.UTC),
		WithClock(func() time.Time { return noon }),
	}
	return New(store, store, append(base, opts...)...)
}

func dailyHabit(t *testing.T, id, createdOn string) models.Habit {
	t.Helper()
	created, err := time.Parse(constants.DateFormat, createdOn)
	if err != nil {
		t.Fatalf("bad creation day %q: %v", createdOn, err)
	}
	return models.Habit{
		ID:        id,
		Name:      id,
		Schedule:  models.NewDailySchedule(models.HintAnytime),
		CreatedOn: createdOn,
		CreatedAt: created,
	}
}

func weeklyHabit(t *testing.T, id, createdOn string, weekdays ...time.Weekday) models.Habit {
	t.Helper()
	created, err := time.Parse(constants.DateFormat, createdOn)
	if err != nil {
		t.Fatalf("bad creation day %q: %v", createdOn, err)
	}
	sched, err := models.NewWeeklySchedule(weekdays, models.HintAnytime)
	if err != nil {
		t.Fatalf("bad weekly schedule: %v", err)
	}
	return models.Habit{
		ID:        id,
		Name:      id,
		Schedule:  sched,
		CreatedOn: createdOn,
		CreatedAt: created,
	}
}

func mustAddHabit(t *testing.T, store *storage.MemoryStore, h models.Habit) {
	t.Helper()
	if err := store.AddHabit(h); err != nil {
		t.Fatalf("AddHabit(%s) failed: %v", h.ID, err)
	}
}

func complete(t *testing.T, store *storage.MemoryStore, habitID string, days ...string) {
	t.Helper()
	for _, day := range days {
		if err := store.SetCompletion(habitID, day, true); err != nil {
			t.Fatalf("SetCompletion(%s, %s) failed: %v", habitID, day, err)
		}
	}
}

func strPtr(s string) *string { return &s }
