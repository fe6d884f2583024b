package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/tallyhq/tally/internal/models"
)

type jsonFile struct {
	Version     int                                           `json:"version"`
	Settings    Settings                                      `json:"settings"`
	Goals       map[string]models.Goal                        `json:"goals"`
	Habits      map[string]models.Habit                       `json:"habits"`
	Completions map[string]map[string]models.CompletionRecord `json:"completions"` // habit id -> day -> record
}

// JSONStore is the single-file backend for people who want their data in
// plain text. Same contract as SQLiteStore, whole file rewritten on every
// mutation. The mutex makes it safe for concurrent use: callers only
// serialize same-key toggles, so writes to different habits can race here.
type JSONStore struct {
	mu    sync.RWMutex
	path  string
	store *jsonFile
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &jsonFile{
		Version:     1,
		Settings:    DefaultSettings(),
		Goals:       make(map[string]models.Goal),
		Habits:      make(map[string]models.Habit),
		Completions: make(map[string]map[string]models.CompletionRecord),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'tally init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &jsonFile{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	// Ensure maps are initialized
	if s.store.Goals == nil {
		s.store.Goals = make(map[string]models.Goal)
	}
	if s.store.Habits == nil {
		s.store.Habits = make(map[string]models.Habit)
	}
	if s.store.Completions == nil {
		s.store.Completions = make(map[string]map[string]models.CompletionRecord)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

// save writes the whole file. The caller must hold the write lock.
func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) loaded() error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	return nil
}

func (s *JSONStore) GetSettings() (Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.loaded(); err != nil {
		return Settings{}, err
	}
	return s.store.Settings, nil
}

func (s *JSONStore) SaveSettings(settings Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loaded(); err != nil {
		return err
	}
	s.store.Settings = settings
	return s.save()
}

// Goals

func (s *JSONStore) AddGoal(goal models.Goal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loaded(); err != nil {
		return err
	}
	s.store.Goals[goal.ID] = goal
	return s.save()
}

func (s *JSONStore) GetGoal(id string) (models.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.loaded(); err != nil {
		return models.Goal{}, err
	}
	goal, ok := s.store.Goals[id]
	if !ok || goal.DeletedAt != nil {
		return models.Goal{}, fmt.Errorf("goal not found: %s", id)
	}
	return goal, nil
}

func (s *JSONStore) GetGoalByTitle(title string) (models.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.loaded(); err != nil {
		return models.Goal{}, err
	}
	for _, goal := range s.store.Goals {
		if goal.Title == title && goal.DeletedAt == nil {
			return goal, nil
		}
	}
	return models.Goal{}, fmt.Errorf("goal not found: %s", title)
}

func (s *JSONStore) GetAllGoals(includeDeleted bool) ([]models.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.loaded(); err != nil {
		return nil, err
	}
	goals := make([]models.Goal, 0, len(s.store.Goals))
	for _, goal := range s.store.Goals {
		if !includeDeleted && goal.DeletedAt != nil {
			continue
		}
		goals = append(goals, goal)
	}
	sort.Slice(goals, func(i, j int) bool {
		if !goals[i].CreatedAt.Equal(goals[j].CreatedAt) {
			return goals[i].CreatedAt.Before(goals[j].CreatedAt)
		}
		return goals[i].ID < goals[j].ID
	})
	return goals, nil
}

func (s *JSONStore) DeleteGoal(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loaded(); err != nil {
		return err
	}
	goal, ok := s.store.Goals[id]
	if !ok || goal.DeletedAt != nil {
		return fmt.Errorf("goal not found or already deleted")
	}
	now := time.Now()
	goal.DeletedAt = &now
	s.store.Goals[id] = goal
	return s.save()
}

// Habits

func (s *JSONStore) AddHabit(habit models.Habit) error {
	return s.UpdateHabit(habit)
}

func (s *JSONStore) UpdateHabit(habit models.Habit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loaded(); err != nil {
		return err
	}
	s.store.Habits[habit.ID] = habit
	return s.save()
}

func (s *JSONStore) GetHabit(id string) (models.Habit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.loaded(); err != nil {
		return models.Habit{}, err
	}
	habit, ok := s.store.Habits[id]
	if !ok || habit.DeletedAt != nil {
		return models.Habit{}, fmt.Errorf("habit not found: %s", id)
	}
	return habit, nil
}

func (s *JSONStore) GetHabitByName(name string) (models.Habit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.loaded(); err != nil {
		return models.Habit{}, err
	}
	for _, habit := range s.store.Habits {
		if habit.Name == name && habit.DeletedAt == nil {
			return habit, nil
		}
	}
	return models.Habit{}, fmt.Errorf("habit not found: %s", name)
}

func (s *JSONStore) GetAllHabits(includeArchived, includeDeleted bool) ([]models.Habit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.loaded(); err != nil {
		return nil, err
	}
	habits := make([]models.Habit, 0, len(s.store.Habits))
	for _, habit := range s.store.Habits {
		if !includeDeleted && habit.DeletedAt != nil {
			continue
		}
		if !includeArchived && habit.ArchivedAt != nil {
			continue
		}
		habits = append(habits, habit)
	}
	sort.Slice(habits, func(i, j int) bool {
		if !habits[i].CreatedAt.Equal(habits[j].CreatedAt) {
			return habits[i].CreatedAt.Before(habits[j].CreatedAt)
		}
		return habits[i].ID < habits[j].ID
	})
	return habits, nil
}

func (s *JSONStore) ArchiveHabit(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loaded(); err != nil {
		return err
	}
	habit, ok := s.store.Habits[id]
	if !ok || habit.DeletedAt != nil || habit.ArchivedAt != nil {
		return fmt.Errorf("habit not found or already archived/deleted")
	}
	now := time.Now()
	habit.ArchivedAt = &now
	s.store.Habits[id] = habit
	return s.save()
}

func (s *JSONStore) UnarchiveHabit(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loaded(); err != nil {
		return err
	}
	habit, ok := s.store.Habits[id]
	if !ok || habit.DeletedAt != nil || habit.ArchivedAt == nil {
		return fmt.Errorf("habit not found or not archived")
	}
	habit.ArchivedAt = nil
	s.store.Habits[id] = habit
	return s.save()
}

func (s *JSONStore) DeleteHabit(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loaded(); err != nil {
		return err
	}
	habit, ok := s.store.Habits[id]
	if !ok || habit.DeletedAt != nil {
		return fmt.Errorf("habit not found or already deleted")
	}
	now := time.Now()
	habit.DeletedAt = &now
	s.store.Habits[id] = habit
	return s.save()
}

func (s *JSONStore) RestoreHabit(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loaded(); err != nil {
		return err
	}
	habit, ok := s.store.Habits[id]
	if !ok || habit.DeletedAt == nil {
		return fmt.Errorf("habit not found or not deleted")
	}
	habit.DeletedAt = nil
	s.store.Habits[id] = habit
	return s.save()
}

// Completion ledger

func (s *JSONStore) GetCompletion(habitID, day string) (bool, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.loaded(); err != nil {
		return false, false, err
	}
	days, ok := s.store.Completions[habitID]
	if !ok {
		return false, false, nil
	}
	record, ok := days[day]
	if !ok {
		return false, false, nil
	}
	return record.Completed, true, nil
}

func (s *JSONStore) SetCompletion(habitID, day string, value bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loaded(); err != nil {
		return err
	}
	days, ok := s.store.Completions[habitID]
	if !ok {
		days = make(map[string]models.CompletionRecord)
		s.store.Completions[habitID] = days
	}
	now := time.Now()
	record, ok := days[day]
	if !ok {
		record = models.CompletionRecord{HabitID: habitID, Day: day, CreatedAt: now}
	}
	record.Completed = value
	record.UpdatedAt = now
	days[day] = record
	return s.save()
}

func (s *JSONStore) ListCompletionsSince(habitID, fromDay string) ([]models.CompletionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.loaded(); err != nil {
		return nil, err
	}
	var records []models.CompletionRecord
	for day, record := range s.store.Completions[habitID] {
		if day >= fromDay {
			records = append(records, record)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Day < records[j].Day
	})
	return records, nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
