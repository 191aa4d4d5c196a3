package schedule

import (
	"context"
	"errors"
	"time"

	"github.com/maximumcrm/salon-scheduler/internal/audit"
	domain "github.com/maximumcrm/salon-scheduler/internal/domain/schedule"
	"github.com/maximumcrm/salon-scheduler/internal/models"
	"github.com/maximumcrm/salon-scheduler/internal/timerange"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	ClientID   uint
	EmployeeID uint

	// StartUtc is the caller's start instant already relabeled to UTC
	// by the transport layer. Same normalization as the calendar
	// queries, so a bookable slot and a visible slot are the same set.
	StartUtc        time.Time
	DurationMinutes int

	Title *string
	Notes *string

	ActorID *uint
}

// ======================================================
// USE CASE
// ======================================================

// CreateBooking is the only path that creates appointment rows. Every
// insert goes through the guard plus the repository's serialized
// check-and-insert.
type CreateBooking struct {
	repo  domain.Repository
	guard *domain.Guard
	audit *audit.Dispatcher
}

func NewCreateBooking(
	repo domain.Repository,
	guard *domain.Guard,
	auditD *audit.Dispatcher,
) *CreateBooking {
	return &CreateBooking{
		repo:  repo,
		guard: guard,
		audit: auditD,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Appointment, error) {

	if in.DurationMinutes <= 0 {
		return nil, &domain.InvalidDurationError{Minutes: in.DurationMinutes}
	}

	start := in.StartUtc.UTC()
	end := start.Add(time.Duration(in.DurationMinutes) * time.Minute)

	// duration > 0 guarantees start < end, so this cannot fail here
	rng, err := timerange.New(start, end)
	if err != nil {
		return nil, err
	}

	if _, err := uc.repo.GetClient(ctx, in.ClientID); err != nil {
		return nil, err
	}
	if _, err := uc.repo.GetEmployee(ctx, in.EmployeeID); err != nil {
		return nil, err
	}

	if err := uc.guard.Validate(ctx, in.EmployeeID, rng, nil); err != nil {
		uc.auditConflict(in, err)
		return nil, err
	}

	ap := &models.Appointment{
		ClientID:   in.ClientID,
		EmployeeID: in.EmployeeID,
		StartAtUtc: rng.Start,
		EndAtUtc:   rng.End,
		Title:      in.Title,
		Notes:      in.Notes,
	}

	if err := uc.repo.CreateExclusive(ctx, ap); err != nil {
		uc.auditConflict(in, err)
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  in.ActorID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}

func (uc *CreateBooking) auditConflict(in CreateBookingInput, err error) {
	var oe *domain.OverlapError
	if !errors.As(err, &oe) {
		return
	}

	uc.audit.Dispatch(audit.Event{
		ActorID: in.ActorID,
		Action:  "appointment_conflict",
		Entity:  "appointment",
		Metadata: map[string]any{
			"employee_id": in.EmployeeID,
			"start":       in.StartUtc.UTC(),
			"duration":    in.DurationMinutes,
			"taken_by":    oe.ConflictID,
		},
	})
}
