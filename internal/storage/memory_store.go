package storage

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/tallyhq/tally/internal/models"
)

// MemoryStore is the in-memory reference implementation of Provider. It backs
// the engine tests and is safe for concurrent use. ReadErr/WriteErr inject
// ledger failures to exercise the engine's degrade and propagation paths.
type MemoryStore struct {
	mu          sync.RWMutex
	settings    Settings
	goals       map[string]models.Goal
	habits      map[string]models.Habit
	completions map[string]map[string]models.CompletionRecord

	ReadErr  error
	WriteErr error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		settings:    DefaultSettings(),
		goals:       make(map[string]models.Goal),
		habits:      make(map[string]models.Habit),
		completions: make(map[string]map[string]models.CompletionRecord),
	}
}

func (s *MemoryStore) Init() error  { return nil }
func (s *MemoryStore) Load() error  { return nil }
func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) GetSettings() (Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings, nil
}

func (s *MemoryStore) SaveSettings(settings Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
	return nil
}

func (s *MemoryStore) AddGoal(goal models.Goal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.goals[goal.ID] = goal
	return nil
}

func (s *MemoryStore) GetGoal(id string) (models.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	goal, ok := s.goals[id]
	if !ok || goal.DeletedAt != nil {
		return models.Goal{}, fmt.Errorf("goal not found: %s", id)
	}
	return goal, nil
}

func (s *MemoryStore) GetGoalByTitle(title string) (models.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, goal := range s.goals {
		if goal.Title == title && goal.DeletedAt == nil {
			return goal, nil
		}
	}
	return models.Goal{}, fmt.Errorf("goal not found: %s", title)
}

func (s *MemoryStore) GetAllGoals(includeDeleted bool) ([]models.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	goals := make([]models.Goal, 0, len(s.goals))
	for _, goal := range s.goals {
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

func (s *MemoryStore) DeleteGoal(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	goal, ok := s.goals[id]
	if !ok || goal.DeletedAt != nil {
		return fmt.Errorf("goal not found or already deleted")
	}
	now := time.Now()
	goal.DeletedAt = &now
	s.goals[id] = goal
	return nil
}

func (s *MemoryStore) AddHabit(habit models.Habit) error {
	return s.UpdateHabit(habit)
}

func (s *MemoryStore) UpdateHabit(habit models.Habit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.habits[habit.ID] = habit
	return nil
}

func (s *MemoryStore) GetHabit(id string) (models.Habit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	habit, ok := s.habits[id]
	if !ok || habit.DeletedAt != nil {
		return models.Habit{}, fmt.Errorf("habit not found: %s", id)
	}
	return habit, nil
}

func (s *MemoryStore) GetHabitByName(name string) (models.Habit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, habit := range s.habits {
		if habit.Name == name && habit.DeletedAt == nil {
			return habit, nil
		}
	}
	return models.Habit{}, fmt.Errorf("habit not found: %s", name)
}

func (s *MemoryStore) GetAllHabits(includeArchived, includeDeleted bool) ([]models.Habit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	habits := make([]models.Habit, 0, len(s.habits))
	for _, habit := range s.habits {
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

func (s *MemoryStore) ArchiveHabit(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	habit, ok := s.habits[id]
	if !ok || habit.DeletedAt != nil || habit.ArchivedAt != nil {
		return fmt.Errorf("habit not found or already archived/deleted")
	}
	now := time.Now()
	habit.ArchivedAt = &now
	s.habits[id] = habit
	return nil
}

func (s *MemoryStore) UnarchiveHabit(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	habit, ok := s.habits[id]
	if !ok || habit.DeletedAt != nil || habit.ArchivedAt == nil {
		return fmt.Errorf("habit not found or not archived")
	}
	habit.ArchivedAt = nil
	s.habits[id] = habit
	return nil
}

func (s *MemoryStore) DeleteHabit(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	habit, ok := s.habits[id]
	if !ok || habit.DeletedAt != nil {
		return fmt.Errorf("habit not found or already deleted")
	}
	now := time.Now()
	habit.DeletedAt = &now
	s.habits[id] = habit
	return nil
}

func (s *MemoryStore) RestoreHabit(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	habit, ok := s.habits[id]
	if !ok || habit.DeletedAt == nil {
		return fmt.Errorf("habit not found or not deleted")
	}
	habit.DeletedAt = nil
	s.habits[id] = habit
	return nil
}

func (s *MemoryStore) GetCompletion(habitID, day string) (bool, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.ReadErr != nil {
		return false, false, s.ReadErr
	}
	record, ok := s.completions[habitID][day]
	if !ok {
		return false, false, nil
	}
	return record.Completed, true, nil
}

func (s *MemoryStore) SetCompletion(habitID, day string, value bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.WriteErr != nil {
		return s.WriteErr
	}
	days, ok := s.completions[habitID]
	if !ok {
		days = make(map[string]models.CompletionRecord)
		s.completions[habitID] = days
	}
	now := time.Now()
	record, ok := days[day]
	if !ok {
		record = models.CompletionRecord{HabitID: habitID, Day: day, CreatedAt: now}
	}
	record.Completed = value
	record.UpdatedAt = now
	days[day] = record
	return nil
}

func (s *MemoryStore) ListCompletionsSince(habitID, fromDay string) ([]models.CompletionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.ReadErr != nil {
		return nil, s.ReadErr
	}
	var records []models.CompletionRecord
	for day, record := range s.completions[habitID] {
		if day >= fromDay {
			records = append(records, record)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Day < records[j].Day
	})
	return records, nil
}

func (s *MemoryStore) GetConfigPath() string {
	return ":memory:"
}
