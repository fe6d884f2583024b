package storage

import "github.com/tallyhq/tally/internal/models"

type Settings struct {
	Timezone        string `json:"timezone"`
	StatsWindowDays int    `json:"stats_window_days"`
}

// DefaultSettings are written on first init.
func DefaultSettings() Settings {
	return Settings{
		Timezone:        "Local",
		StatsWindowDays: 30,
	}
}

// Catalog is read-only access to the habit/goal records. The engine depends
// on this narrow view, not on the full Provider.
type Catalog interface {
	GetHabit(id string) (models.Habit, error)
	GetAllHabits(includeArchived, includeDeleted bool) ([]models.Habit, error)
	GetAllGoals(includeDeleted bool) ([]models.Goal, error)
}

// Ledger is the per-day completion record store. Absence of a record reads as
// "not completed", not as an error: Get reports ok=false and a nil error.
type Ledger interface {
	// GetCompletion returns the recorded value for (habitID, day), if any.
	GetCompletion(habitID, day string) (value bool, ok bool, err error)
	// SetCompletion writes the value for (habitID, day), creating or flipping
	// the record. Records are never deleted.
	SetCompletion(habitID, day string, value bool) error
	// ListCompletionsSince returns all records for the habit from fromDay
	// onward, ascending by day. Gaps are permitted.
	ListCompletionsSince(habitID, fromDay string) ([]models.CompletionRecord, error)
}

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (Settings, error)
	SaveSettings(Settings) error

	// Goals
	AddGoal(models.Goal) error
	GetGoal(id string) (models.Goal, error)
	GetGoalByTitle(title string) (models.Goal, error)
	DeleteGoal(id string) error

	// Habits
	AddHabit(models.Habit) error
	GetHabitByName(name string) (models.Habit, error)
	UpdateHabit(models.Habit) error
	ArchiveHabit(id string) error
	UnarchiveHabit(id string) error
	DeleteHabit(id string) error
	RestoreHabit(id string) error

	Catalog
	Ledger

	// Utils
	GetConfigPath() string
}
