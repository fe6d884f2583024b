package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/tallyhq/tally/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS settings (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS goals (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL,
	created_at TEXT NOT NULL,
	deleted_at TEXT
);

CREATE TABLE IF NOT EXISTS habits (
	id                TEXT PRIMARY KEY,
	goal_id           TEXT,
	name              TEXT NOT NULL,
	schedule_kind     TEXT NOT NULL,
	schedule_weekdays TEXT NOT NULL DEFAULT '',
	time_hint         TEXT NOT NULL DEFAULT 'anytime',
	time_at           TEXT NOT NULL DEFAULT '',
	created_on        TEXT NOT NULL,
	created_at        TEXT NOT NULL,
	archived_at       TEXT,
	deleted_at        TEXT
);

CREATE TABLE IF NOT EXISTS completions (
	habit_id   TEXT NOT NULL,
	day        TEXT NOT NULL,
	completed  INTEGER NOT NULL,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	PRIMARY KEY (habit_id, day)
);

CREATE INDEX IF NOT EXISTS idx_habits_goal ON habits(goal_id);
CREATE INDEX IF NOT EXISTS idx_completions_day ON completions(day);
`

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	if _, err := s.GetSettings(); err != nil {
		if err := s.SaveSettings(DefaultSettings()); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'tally init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	// Idempotent schema application doubles as a lightweight migration for
	// databases created by older versions.
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to verify schema: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) GetSettings() (Settings, error) {
	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return Settings{}, err
	}
	defer rows.Close()

	settings := Settings{}
	count := 0
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return Settings{}, err
		}
		switch key {
		case "timezone":
			settings.Timezone = value
		case "stats_window_days":
			if _, err := fmt.Sscanf(value, "%d", &settings.StatsWindowDays); err != nil {
				return Settings{}, fmt.Errorf("parsing stats_window_days: %w", err)
			}
		}
		count++
	}

	if count == 0 {
		return Settings{}, fmt.Errorf("settings not found")
	}

	return settings, nil
}

func (s *SQLiteStore) SaveSettings(settings Settings) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	if _, err := stmt.Exec("timezone", settings.Timezone); err != nil {
		return err
	}
	if _, err := stmt.Exec("stats_window_days", fmt.Sprintf("%d", settings.StatsWindowDays)); err != nil {
		return err
	}

	return tx.Commit()
}

// Goals

func (s *SQLiteStore) AddGoal(goal models.Goal) error {
	var deletedAt sql.NullString
	if goal.DeletedAt != nil {
		deletedAt = sql.NullString{String: goal.DeletedAt.Format(time.RFC3339), Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT INTO goals (id, title, created_at, deleted_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			deleted_at = excluded.deleted_at`,
		goal.ID, goal.Title, goal.CreatedAt.Format(time.RFC3339), deletedAt)
	return err
}

func (s *SQLiteStore) GetGoal(id string) (models.Goal, error) {
	row := s.db.QueryRow(`
		SELECT id, title, created_at, deleted_at
		FROM goals WHERE id = ? AND deleted_at IS NULL`, id)
	return scanGoal(row)
}

func (s *SQLiteStore) GetGoalByTitle(title string) (models.Goal, error) {
	row := s.db.QueryRow(`
		SELECT id, title, created_at, deleted_at
		FROM goals WHERE title = ? AND deleted_at IS NULL`, title)
	return scanGoal(row)
}

func (s *SQLiteStore) GetAllGoals(includeDeleted bool) ([]models.Goal, error) {
	query := "SELECT id, title, created_at, deleted_at FROM goals"
	if !includeDeleted {
		query += " WHERE deleted_at IS NULL"
	}
	query += " ORDER BY created_at, id"

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []models.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func (s *SQLiteStore) DeleteGoal(id string) error {
	result, err := s.db.Exec(`
		UPDATE goals SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`,
		time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("goal not found or already deleted")
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanGoal(row rowScanner) (models.Goal, error) {
	var g models.Goal
	var createdAt string
	var deletedAt sql.NullString

	if err := row.Scan(&g.ID, &g.Title, &createdAt, &deletedAt); err != nil {
		return models.Goal{}, err
	}

	var err error
	g.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Goal{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if deletedAt.Valid {
		t, err := time.Parse(time.RFC3339, deletedAt.String)
		if err != nil {
			return models.Goal{}, fmt.Errorf("failed to parse deleted_at: %w", err)
		}
		g.DeletedAt = &t
	}
	return g, nil
}

// Habits

func (s *SQLiteStore) AddHabit(habit models.Habit) error {
	return s.UpdateHabit(habit)
}

func (s *SQLiteStore) UpdateHabit(habit models.Habit) error {
	weekdaysJSON, err := json.Marshal(habit.Schedule.Weekdays)
	if err != nil {
		return fmt.Errorf("failed to marshal schedule weekdays: %w", err)
	}

	var goalID, archivedAt, deletedAt sql.NullString
	if habit.GoalID != nil && *habit.GoalID != "" {
		goalID = sql.NullString{String: *habit.GoalID, Valid: true}
	}
	if habit.ArchivedAt != nil {
		archivedAt = sql.NullString{String: habit.ArchivedAt.Format(time.RFC3339), Valid: true}
	}
	if habit.DeletedAt != nil {
		deletedAt = sql.NullString{String: habit.DeletedAt.Format(time.RFC3339), Valid: true}
	}

	_, err = s.db.Exec(`
		INSERT INTO habits (
			id, goal_id, name, schedule_kind, schedule_weekdays, time_hint, time_at,
			created_on, created_at, archived_at, deleted_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			goal_id = excluded.goal_id,
			name = excluded.name,
			schedule_kind = excluded.schedule_kind,
			schedule_weekdays = excluded.schedule_weekdays,
			time_hint = excluded.time_hint,
			time_at = excluded.time_at,
			archived_at = excluded.archived_at,
			deleted_at = excluded.deleted_at`,
		habit.ID, goalID, habit.Name, string(habit.Schedule.Kind), string(weekdaysJSON),
		string(habit.Schedule.TimeHint), habit.Schedule.At,
		habit.CreatedOn, habit.CreatedAt.Format(time.RFC3339), archivedAt, deletedAt)
	return err
}

func (s *SQLiteStore) GetHabit(id string) (models.Habit, error) {
	row := s.db.QueryRow(habitSelect+" WHERE id = ? AND deleted_at IS NULL", id)
	return scanHabit(row)
}

func (s *SQLiteStore) GetHabitByName(name string) (models.Habit, error) {
	row := s.db.QueryRow(habitSelect+" WHERE name = ? AND deleted_at IS NULL", name)
	return scanHabit(row)
}

const habitSelect = `
	SELECT id, goal_id, name, schedule_kind, schedule_weekdays, time_hint, time_at,
	       created_on, created_at, archived_at, deleted_at
	FROM habits`

func (s *SQLiteStore) GetAllHabits(includeArchived, includeDeleted bool) ([]models.Habit, error) {
	query := habitSelect + " WHERE 1=1"
	if !includeDeleted {
		query += " AND deleted_at IS NULL"
	}
	if !includeArchived {
		query += " AND archived_at IS NULL"
	}
	query += " ORDER BY created_at, id"

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

func scanHabit(row rowScanner) (models.Habit, error) {
	var h models.Habit
	var goalID, archivedAt, deletedAt sql.NullString
	var kind, weekdays, hint, at, createdAt string

	err := row.Scan(&h.ID, &goalID, &h.Name, &kind, &weekdays, &hint, &at,
		&h.CreatedOn, &createdAt, &archivedAt, &deletedAt)
	if err != nil {
		return models.Habit{}, err
	}

	h.Schedule.Kind = models.ScheduleKind(kind)
	h.Schedule.TimeHint = models.TimeHint(hint)
	h.Schedule.At = at

	if goalID.Valid {
		h.GoalID = &goalID.String
	}

	if weekdays != "" && weekdays != "null" {
		var days []int
		if err := json.Unmarshal([]byte(weekdays), &days); err == nil {
			for _, d := range days {
				h.Schedule.Weekdays = append(h.Schedule.Weekdays, time.Weekday(d))
			}
		}
	}

	h.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if archivedAt.Valid {
		t, err := time.Parse(time.RFC3339, archivedAt.String)
		if err != nil {
			return models.Habit{}, fmt.Errorf("failed to parse archived_at: %w", err)
		}
		h.ArchivedAt = &t
	}
	if deletedAt.Valid {
		t, err := time.Parse(time.RFC3339, deletedAt.String)
		if err != nil {
			return models.Habit{}, fmt.Errorf("failed to parse deleted_at: %w", err)
		}
		h.DeletedAt = &t
	}

	return h, nil
}

func (s *SQLiteStore) ArchiveHabit(id string) error {
	result, err := s.db.Exec(`
		UPDATE habits SET archived_at = ? WHERE id = ? AND deleted_at IS NULL AND archived_at IS NULL`,
		time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return err
	}
	return requireAffected(result, "habit not found or already archived/deleted")
}

func (s *SQLiteStore) UnarchiveHabit(id string) error {
	result, err := s.db.Exec(`
		UPDATE habits SET archived_at = NULL WHERE id = ? AND deleted_at IS NULL AND archived_at IS NOT NULL`,
		id)
	if err != nil {
		return err
	}
	return requireAffected(result, "habit not found or not archived")
}

func (s *SQLiteStore) DeleteHabit(id string) error {
	result, err := s.db.Exec(`
		UPDATE habits SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`,
		time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return err
	}
	return requireAffected(result, "habit not found or already deleted")
}

func (s *SQLiteStore) RestoreHabit(id string) error {
	result, err := s.db.Exec(`
		UPDATE habits SET deleted_at = NULL WHERE id = ? AND deleted_at IS NOT NULL`,
		id)
	if err != nil {
		return err
	}
	return requireAffected(result, "habit not found or not deleted")
}

func requireAffected(result sql.Result, msg string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%s", msg)
	}
	return nil
}

// Completion ledger

func (s *SQLiteStore) GetCompletion(habitID, day string) (bool, bool, error) {
	var completed bool
	err := s.db.QueryRow(`
		SELECT completed FROM completions WHERE habit_id = ? AND day = ?`,
		habitID, day).Scan(&completed)
	if err == sql.ErrNoRows {
		return false, false, nil
	}
	if err != nil {
		return false, false, err
	}
	return completed, true, nil
}

func (s *SQLiteStore) SetCompletion(habitID, day string, value bool) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(`
		INSERT INTO completions (habit_id, day, completed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(habit_id, day) DO UPDATE SET
			completed = excluded.completed,
			updated_at = excluded.updated_at`,
		habitID, day, value, now, now)
	return err
}

func (s *SQLiteStore) ListCompletionsSince(habitID, fromDay string) ([]models.CompletionRecord, error) {
	rows, err := s.db.Query(`
		SELECT habit_id, day, completed, created_at, updated_at
		FROM completions
		WHERE habit_id = ? AND day >= ?
		ORDER BY day`, habitID, fromDay)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.CompletionRecord
	for rows.Next() {
		var r models.CompletionRecord
		var createdAt, updatedAt string
		if err := rows.Scan(&r.HabitID, &r.Day, &r.Completed, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		r.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at for %s/%s: %w", r.HabitID, r.Day, err)
		}
		r.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse updated_at for %s/%s: %w", r.HabitID, r.Day, err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}
