package engine

import (
	"testing"
	"time"

	"github.com/tallyhq/tally/internal/models"
	"github.com/tallyhq/tally/internal/storage"
)

func TestSelectPrimaryGoal(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	t1 := t0.Add(24 * time.Hour)

	tests := []struct {
		name      string
		summaries []GoalSummary
		wantID    string
		wantOK    bool
	}{
		{
			name:   "no goals",
			wantOK: false,
		},
		{
			name: "pending beats recency",
			summaries: []GoalSummary{
				{GoalID: "idle", CreatedAt: t0, PendingToday: 0, LastActivityDay: "2024-01-10"},
				{GoalID: "busy", CreatedAt: t1, PendingToday: 2, LastActivityDay: "2024-01-01"},
			},
			wantID: "busy",
			wantOK: true,
		},
		{
			name: "recency breaks pending tie",
			summaries: []GoalSummary{
				{GoalID: "stale", CreatedAt: t0, PendingToday: 1, LastActivityDay: "2024-01-02"},
				{GoalID: "fresh", CreatedAt: t1, PendingToday: 1, LastActivityDay: "2024-01-09"},
			},
			wantID: "fresh",
			wantOK: true,
		},
		{
			name: "habit count breaks recency tie",
			summaries: []GoalSummary{
				{GoalID: "small", CreatedAt: t0, LastActivityDay: "2024-01-05", ActiveHabits: 1},
				{GoalID: "big", CreatedAt: t1, LastActivityDay: "2024-01-05", ActiveHabits: 4},
			},
			wantID: "big",
			wantOK: true,
		},
		{
			name: "creation order breaks full tie",
			summaries: []GoalSummary{
				{GoalID: "younger", CreatedAt: t1, ActiveHabits: 2},
				{GoalID: "older", CreatedAt: t0, ActiveHabits: 2},
			},
			wantID: "older",
			wantOK: true,
		},
		{
			name: "id breaks identical timestamps",
			summaries: []GoalSummary{
				{GoalID: "b", CreatedAt: t0},
				{GoalID: "a", CreatedAt: t0},
			},
			wantID: "a",
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := SelectPrimaryGoal(tt.summaries)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if id != tt.wantID {
				t.Errorf("id = %q, want %q", id, tt.wantID)
			}
		})
	}
}

func TestSelectPrimaryGoal_Deterministic(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	summaries := []GoalSummary{
		{GoalID: "c", CreatedAt: t0},
		{GoalID: "a", CreatedAt: t0},
		{GoalID: "b", CreatedAt: t0},
	}

	first, _ := SelectPrimaryGoal(summaries)
	for i := 0; i < 10; i++ {
		// Rotate to prove the result is input-order independent.
		summaries = append(summaries[1:], summaries[0])
		if got, _ := SelectPrimaryGoal(summaries); got != first {
			t.Fatalf("selection changed with input order: %q vs %q", got, first)
		}
	}
}

func TestPrimaryGoal_NoGoals(t *testing.T) {
	store := storage.NewMemoryStore()
	eng := newTestEngine(t, store, "2024-01-10")

	id, ok, err := eng.PrimaryGoal()
	if err != nil {
		t.Fatalf("PrimaryGoal failed: %v", err)
	}
	if ok || id != "" {
		t.Errorf("PrimaryGoal = (%q, %v), want empty and false", id, ok)
	}
}

func TestPrimaryGoal_PrefersGoalWithPendingWork(t *testing.T) {
	store := storage.NewMemoryStore()
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	mustAddGoal := func(g models.Goal) {
		if err := store.AddGoal(g); err != nil {
			t.Fatalf("AddGoal failed: %v", err)
		}
	}
	mustAddGoal(models.Goal{ID: "done-goal", Title: "Done", CreatedAt: t0})
	mustAddGoal(models.Goal{ID: "open-goal", Title: "Open", CreatedAt: t0.Add(time.Hour)})

	finished := dailyHabit(t, "finished", "2024-01-01")
	finished.GoalID = strPtr("done-goal")
	mustAddHabit(t, store, finished)

	open := dailyHabit(t, "open", "2024-01-01")
	open.GoalID = strPtr("open-goal")
	mustAddHabit(t, store, open)

	complete(t, store, "finished", "2024-01-10")

	eng := newTestEngine(t, store, "2024-01-10")
	id, ok, err := eng.PrimaryGoal()
	if err != nil {
		t.Fatalf("PrimaryGoal failed: %v", err)
	}
	if !ok {
		t.Fatal("PrimaryGoal reported no goals")
	}
	if id != "open-goal" {
		t.Errorf("PrimaryGoal = %q, want open-goal (it still has pending work)", id)
	}
}
