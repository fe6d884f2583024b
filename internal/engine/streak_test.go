package engine

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/tallyhq/tally/internal/apperrors"
	"github.com/tallyhq/tally/internal/storage"
)

// 2024-01-01 is a Monday; the weekly fixtures below lean on that.

func TestSnapshot_DailyGapThenCompletion(t *testing.T) {
	store := storage.NewMemoryStore()
	h := dailyHabit(t, "meditate", "2024-01-01")
	mustAddHabit(t, store, h)

	// Five straight days, a missed day, then one more completion.
	complete(t, store, h.ID,
		"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05",
		"2024-01-07")

	eng := newTestEngine(t, store, "2024-01-07")
	snap, err := eng.Snapshot(h)
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}

	if snap.Current != 1 {
		t.Errorf("Current = %d, want 1 (gap on the 6th ends the old run)", snap.Current)
	}
	if snap.Longest != 5 {
		t.Errorf("Longest = %d, want 5", snap.Longest)
	}
	if snap.TotalCompletions != 6 {
		t.Errorf("TotalCompletions = %d, want 6", snap.TotalCompletions)
	}
}

func TestSnapshot_WeeklyUnplannedDaysDoNotBreak(t *testing.T) {
	store := storage.NewMemoryStore()
	h := weeklyHabit(t, "gym", "2024-01-01", time.Monday, time.Wednesday, time.Friday)
	mustAddHabit(t, store, h)

	// Three full weeks, every planned day completed. The Tue/Thu/Sat/Sun gaps
	// between occurrences must not reset anything.
	planned := []string{
		"2024-01-01", "2024-01-03", "2024-01-05",
		"2024-01-08", "2024-01-10", "2024-01-12",
		"2024-01-15", "2024-01-17", "2024-01-19",
	}
	complete(t, store, h.ID, planned...)

	eng := newTestEngine(t, store, "2024-01-19")
	snap, err := eng.Snapshot(h)
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}

	if snap.Current != 9 {
		t.Errorf("Current = %d, want 9", snap.Current)
	}
	if snap.Longest != 9 {
		t.Errorf("Longest = %d, want 9", snap.Longest)
	}
	if snap.SuccessRate != 1.0 {
		t.Errorf("SuccessRate = %f, want 1.0", snap.SuccessRate)
	}
}

func TestSnapshot_MissedPlannedDayResetsCurrent(t *testing.T) {
	store := storage.NewMemoryStore()
	h := weeklyHabit(t, "gym", "2024-01-01", time.Monday, time.Wednesday, time.Friday)
	mustAddHabit(t, store, h)

	// Same three weeks but the Wednesday of week three is missed.
	complete(t, store, h.ID,
		"2024-01-01", "2024-01-03", "2024-01-05",
		"2024-01-08", "2024-01-10", "2024-01-12",
		"2024-01-15", "2024-01-19")

	eng := newTestEngine(t, store, "2024-01-19")
	snap, err := eng.Snapshot(h)
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}

	if snap.Current != 1 {
		t.Errorf("Current = %d, want 1 (only the Friday after the miss)", snap.Current)
	}
	if snap.Longest != 7 {
		t.Errorf("Longest = %d, want 7 (the pre-miss run is retained)", snap.Longest)
	}
	if snap.TotalCompletions != 8 {
		t.Errorf("TotalCompletions = %d, want 8", snap.TotalCompletions)
	}
}

func TestSnapshot_ExplicitFalseReadsAsIncomplete(t *testing.T) {
	store := storage.NewMemoryStore()
	h := dailyHabit(t, "journal", "2024-01-01")
	mustAddHabit(t, store, h)

	complete(t, store, h.ID, "2024-01-01")
	if err := store.SetCompletion(h.ID, "2024-01-01", false); err != nil {
		t.Fatalf("SetCompletion failed: %v", err)
	}

	eng := newTestEngine(t, store, "2024-01-01")
	snap, err := eng.Snapshot(h)
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}

	if snap.Current != 0 || snap.Longest != 0 || snap.TotalCompletions != 0 {
		t.Errorf("explicit-false record counted as completion: %+v", snap)
	}
}

func TestSnapshot_NoRecords(t *testing.T) {
	store := storage.NewMemoryStore()
	h := dailyHabit(t, "new", "2024-01-10")
	mustAddHabit(t, store, h)

	eng := newTestEngine(t, store, "2024-01-10")
	snap, err := eng.Snapshot(h)
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}

	if snap.Current != 0 || snap.Longest != 0 || snap.TotalCompletions != 0 || snap.SuccessRate != 0 {
		t.Errorf("fresh habit snapshot not zero: %+v", snap)
	}
}

func TestSnapshot_ReadErrorDegrades(t *testing.T) {
	store := storage.NewMemoryStore()
	h := dailyHabit(t, "meditate", "2024-01-01")
	mustAddHabit(t, store, h)
	complete(t, store, h.ID, "2024-01-01")

	store.ReadErr = errors.New("disk on fire")
	eng := newTestEngine(t, store, "2024-01-02")

	snap, err := eng.Snapshot(h)
	if err == nil {
		t.Fatal("expected an error from Snapshot on ledger read failure")
	}
	if !errors.Is(err, apperrors.ErrStore) {
		t.Errorf("error = %v, want a StoreError", err)
	}
	if snap.Current != 0 || snap.Longest != 0 {
		t.Errorf("snapshot not zero on read failure: %+v", snap)
	}

	if got := eng.SnapshotOrZero(h); got.Current != 0 || got.Longest != 0 || got.TotalCompletions != 0 {
		t.Errorf("SnapshotOrZero = %+v, want zero snapshot", got)
	}
}

func TestSuccessRate(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(t *testing.T, store *storage.MemoryStore) string // returns habit ID
		today  string
		window int
		want   float64
	}{
		{
			name: "daily six of ten",
			setup: func(t *testing.T, store *storage.MemoryStore) string {
				h := dailyHabit(t, "h", "2024-01-01")
				mustAddHabit(t, store, h)
				complete(t, store, h.ID,
					"2024-01-01", "2024-01-02", "2024-01-03",
					"2024-01-05", "2024-01-07", "2024-01-09")
				return h.ID
			},
			today:  "2024-01-10",
			window: 10,
			want:   0.6,
		},
		{
			name: "no planned days in window yields zero",
			setup: func(t *testing.T, store *storage.MemoryStore) string {
				// Saturday-only habit created midweek; a 3 day window ending on
				// Wednesday contains no planned day.
				h := weeklyHabit(t, "h", "2025-12-31", time.Saturday)
				mustAddHabit(t, store, h)
				return h.ID
			},
			today:  "2025-12-31", // a Wednesday
			window: 3,
			want:   0,
		},
		{
			name: "window clamped to creation day",
			setup: func(t *testing.T, store *storage.MemoryStore) string {
				h := dailyHabit(t, "h", "2024-01-09")
				mustAddHabit(t, store, h)
				complete(t, store, h.ID, "2024-01-09", "2024-01-10")
				return h.ID
			},
			today:  "2024-01-10",
			window: 30,
			want:   1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storage.NewMemoryStore()
			id := tt.setup(t, store)
			eng := newTestEngine(t, store, tt.today)

			h, err := store.GetHabit(id)
			if err != nil {
				t.Fatalf("GetHabit failed: %v", err)
			}

			got, err := eng.SuccessRate(h, tt.window)
			if err != nil {
				t.Fatalf("SuccessRate failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("SuccessRate = %f, want %f", got, tt.want)
			}
			if got < 0 || got > 1 {
				t.Errorf("SuccessRate = %f, out of [0, 1]", got)
			}
		})
	}
}

func TestSuccessRate_AlwaysBounded(t *testing.T) {
	store := storage.NewMemoryStore()
	h := dailyHabit(t, "h", "2024-01-01")
	mustAddHabit(t, store, h)

	for i := 1; i <= 20; i++ {
		complete(t, store, h.ID, fmt.Sprintf("2024-01-%02d", i))
	}

	eng := newTestEngine(t, store, "2024-01-20")
	for _, window := range []int{1, 5, 7, 30, 365} {
		got, err := eng.SuccessRate(h, window)
		if err != nil {
			t.Fatalf("SuccessRate(window=%d) failed: %v", window, err)
		}
		if got < 0 || got > 1 {
			t.Errorf("SuccessRate(window=%d) = %f, out of [0, 1]", window, got)
		}
	}
}
