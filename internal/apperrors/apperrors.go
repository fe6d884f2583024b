package apperrors

import (
	"errors"
	"fmt"
	"os"

	"github.com/tallyhq/tally/internal/logger"
)

// Sentinels for errors.Is checks.
var (
	ErrInvalidDate    = errors.New("invalid date")
	ErrStore          = errors.New("store error")
	ErrScheduleConfig = errors.New("schedule config error")
)

// InvalidDateError signals a toggle attempt on a day the engine refuses to
// mutate (strictly after today). It always propagates; it indicates a caller bug.
type InvalidDateError struct {
	Day    string
	Reason string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date %s: %s", e.Day, e.Reason)
}

func (e *InvalidDateError) Is(target error) bool { return target == ErrInvalidDate }

// NewInvalidDate returns an InvalidDateError for the given day.
func NewInvalidDate(day, reason string) error {
	return &InvalidDateError{Day: day, Reason: reason}
}

// StoreError wraps an I/O failure from a storage backend. Reads degrade to a
// neutral snapshot at the engine boundary; writes propagate to the caller.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func (e *StoreError) Is(target error) bool { return target == ErrStore }

// WrapStore wraps err as a StoreError, or returns nil if err is nil.
func WrapStore(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}

// ScheduleConfigError is a construction-time failure: an invalid schedule must
// not be representable, so it never reaches the engine at runtime.
type ScheduleConfigError struct {
	Reason string
}

func (e *ScheduleConfigError) Error() string { return e.Reason }

func (e *ScheduleConfigError) Is(target error) bool { return target == ErrScheduleConfig }

// NewScheduleConfigError returns a ScheduleConfigError with the given reason.
func NewScheduleConfigError(reason string) error {
	return &ScheduleConfigError{Reason: reason}
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}
