package engine

import (
	"sort"
	"time"

	"github.com/tallyhq/tally/internal/apperrors"
	"github.com/tallyhq/tally/internal/calendar"
	"github.com/tallyhq/tally/internal/logger"
)

// GoalSummary is the per-goal engagement signal the focus selector ranks.
type GoalSummary struct {
	GoalID          string
	CreatedAt       time.Time
	PendingToday    int
	ActiveHabits    int
	LastActivityDay string // day key of the most recent ledger write, "" if none
}

// SelectPrimaryGoal ranks goals to pick the one the dashboard foregrounds:
// goals with pending scheduled habits first, then most recent activity, then
// more active habits. Ties break by creation order (earliest first) so the
// choice is deterministic. Pure function, no I/O.
func SelectPrimaryGoal(summaries []GoalSummary) (string, bool) {
	if len(summaries) == 0 {
		return "", false
	}

	ranked := make([]GoalSummary, len(summaries))
	copy(ranked, summaries)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if (a.PendingToday > 0) != (b.PendingToday > 0) {
			return a.PendingToday > 0
		}
		if a.LastActivityDay != b.LastActivityDay {
			return a.LastActivityDay > b.LastActivityDay
		}
		if a.ActiveHabits != b.ActiveHabits {
			return a.ActiveHabits > b.ActiveHabits
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.GoalID < b.GoalID
	})

	return ranked[0].GoalID, true
}

// PrimaryGoal builds per-goal summaries from the catalog and ledger and runs
// the selector. With no goals it reports ok=false and callers fall back to
// an empty state.
func (e *Engine) PrimaryGoal() (string, bool, error) {
	goals, err := e.catalog.GetAllGoals(false)
	if err != nil {
		return "", false, apperrors.WrapStore("list goals", err)
	}
	if len(goals) == 0 {
		return "", false, nil
	}

	habits, err := e.catalog.GetAllHabits(false, false)
	if err != nil {
		return "", false, apperrors.WrapStore("list habits", err)
	}

	summaries := make([]GoalSummary, 0, len(goals))
	for _, goal := range goals {
		summary := GoalSummary{GoalID: goal.ID, CreatedAt: goal.CreatedAt}

		for _, h := range habits {
			if h.GoalID == nil || *h.GoalID != goal.ID {
				continue
			}
			summary.ActiveHabits++
			if day := e.lastActivityDay(h.ID, h.CreatedOn); day > summary.LastActivityDay {
				summary.LastActivityDay = day
			}
		}

		pending, err := e.PendingCount(&goal.ID)
		if err != nil {
			logger.Warn("pending count failed for goal", "goal", goal.ID, "error", err)
		}
		summary.PendingToday = pending

		summaries = append(summaries, summary)
	}

	id, ok := SelectPrimaryGoal(summaries)
	return id, ok, nil
}

// lastActivityDay is the day of the habit's most recent ledger write.
// Read failures degrade to "no activity".
func (e *Engine) lastActivityDay(habitID, from string) string {
	if from == "" {
		from = "0000-01-01"
	}
	records, err := e.ledger.ListCompletionsSince(habitID, from)
	if err != nil {
		logger.Warn("ledger read failed during focus ranking", "habit", habitID, "error", err)
		return ""
	}

	var last time.Time
	for _, r := range records {
		if r.UpdatedAt.After(last) {
			last = r.UpdatedAt
		}
	}
	if last.IsZero() {
		return ""
	}
	return calendar.DayOf(last, e.loc)
}
