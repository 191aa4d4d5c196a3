package schedule

import (
	"errors"
	"fmt"

	"github.com/maximumcrm/salon-scheduler/internal/timerange"
)

// InvalidDurationError rejects non-positive booking durations.
type InvalidDurationError struct {
	Minutes int
}

func (e *InvalidDurationError) Error() string {
	return fmt.Sprintf("duration must be positive, got %d minutes", e.Minutes)
}

// OverlapError names the appointment already occupying the proposed slot.
type OverlapError struct {
	ConflictID    uint
	ConflictRange timerange.Range
	EmployeeID    uint
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf(
		"slot %s is already taken for employee %d by appointment %d",
		e.ConflictRange, e.EmployeeID, e.ConflictID,
	)
}

// ConstraintViolationError reports a missing referenced entity or a
// referential restriction (e.g. deleting an employee that still has
// appointments).
type ConstraintViolationError struct {
	Entity string
	ID     uint
}

func (e *ConstraintViolationError) Error() string {
	return fmt.Sprintf("constraint violation: %s %d", e.Entity, e.ID)
}

// StoreUnavailableError wraps transient storage failures (timeouts,
// lost connections). Callers may retry with backoff.
type StoreUnavailableError struct {
	Err error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("store unavailable: %v", e.Err)
}

func (e *StoreUnavailableError) Unwrap() error {
	return e.Err
}

// ErrNotFound is returned for lookups of absent appointments.
var ErrNotFound = errors.New("appointment not found")
