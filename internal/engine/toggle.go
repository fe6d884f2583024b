package engine

import (
	"github.com/tallyhq/tally/internal/apperrors"
	"github.com/tallyhq/tally/internal/calendar"
)

// Toggle flips the completion state for (habitID, day) and returns the new
// state. An empty day means today. Days after today are rejected with
// InvalidDate and leave the ledger untouched.
//
// The read-negate-write is serialized per (habitID, day): without that, a
// rapid double tap can read the same stale value twice and flip-flip where
// the user meant a single flip. Different keys proceed concurrently.
//
// Write failures propagate: silently losing an explicit completion action is
// unacceptable, so the caller must see the error and roll back any
// optimistic UI state.
func (e *Engine) Toggle(habitID, day string) (bool, error) {
	today := e.Today()
	if day == "" {
		day = today
	}
	if !calendar.IsValid(day) {
		return false, apperrors.NewInvalidDate(day, "malformed day key")
	}
	if calendar.Compare(day, today) > 0 {
		return false, apperrors.NewInvalidDate(day, "cannot complete a future day")
	}

	unlock := e.locks.lock(habitID + "\x00" + day)
	defer unlock()

	current, ok, err := e.ledger.GetCompletion(habitID, day)
	if err != nil {
		return false, apperrors.WrapStore("get completion", err)
	}

	// Absent and explicit false both mean "currently incomplete". The record
	// is flipped, never deleted, so un-marks stay auditable.
	next := !(ok && current)
	if err := e.ledger.SetCompletion(habitID, day, next); err != nil {
		return false, apperrors.WrapStore("set completion", err)
	}

	return next, nil
}
