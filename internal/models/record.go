package models

import "time"

// CompletionRecord is a single day's completion state for a habit, keyed by
// (HabitID, Day). Records are flipped, never deleted: an explicit false means
// the user un-marked a planned day, which reads the same as absence but keeps
// the history auditable.
type CompletionRecord struct {
	HabitID   string    `json:"habit_id"`
	Day       string    `json:"day"` // YYYY-MM-DD
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StreakSnapshot is derived state, recomputed from the ledger on every read
// and never persisted.
type StreakSnapshot struct {
	Current          int     `json:"current"`
	Longest          int     `json:"longest"`
	TotalCompletions int     `json:"total_completions"`
	SuccessRate      float64 `json:"success_rate"` // over the default stats window
}
