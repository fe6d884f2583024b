package models

import "time"

// Habit represents a recurring practice to track. A habit optionally belongs
// to a goal; a habit with a nil GoalID is standalone.
type Habit struct {
	ID         string     `json:"id"`
	GoalID     *string    `json:"goal_id,omitempty"`
	Name       string     `json:"name"`
	Schedule   Schedule   `json:"schedule"`
	CreatedOn  string     `json:"created_on"` // YYYY-MM-DD, first day the habit can be planned
	CreatedAt  time.Time  `json:"created_at"`
	ArchivedAt *time.Time `json:"archived_at,omitempty"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty"`
}

// Active reports whether the habit should appear in agendas.
func (h Habit) Active() bool {
	return h.ArchivedAt == nil && h.DeletedAt == nil
}

// Standalone reports whether the habit is not attached to any goal.
func (h Habit) Standalone() bool {
	return h.GoalID == nil || *h.GoalID == ""
}
