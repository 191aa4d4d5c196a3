package schedule

import (
	"context"
	"time"

	"github.com/maximumcrm/salon-scheduler/internal/audit"
	domain "github.com/maximumcrm/salon-scheduler/internal/domain/schedule"
	"github.com/maximumcrm/salon-scheduler/internal/models"
	"github.com/maximumcrm/salon-scheduler/internal/timerange"
)

type RescheduleInput struct {
	AppointmentID uint

	StartUtc        time.Time
	DurationMinutes int

	ActorID *uint
}

type Reschedule struct {
	repo  domain.Repository
	guard *domain.Guard
	audit *audit.Dispatcher
}

func NewReschedule(
	repo domain.Repository,
	guard *domain.Guard,
	auditD *audit.Dispatcher,
) *Reschedule {
	return &Reschedule{
		repo:  repo,
		guard: guard,
		audit: auditD,
	}
}

func (uc *Reschedule) Execute(
	ctx context.Context,
	in RescheduleInput,
) (*models.Appointment, error) {

	if in.DurationMinutes <= 0 {
		return nil, &domain.InvalidDurationError{Minutes: in.DurationMinutes}
	}

	start := in.StartUtc.UTC()
	rng, err := timerange.New(
		start,
		start.Add(time.Duration(in.DurationMinutes)*time.Minute),
	)
	if err != nil {
		return nil, err
	}

	current, err := uc.repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, err
	}

	// the appointment being moved must not conflict with itself
	excludeID := current.ID
	if err := uc.guard.Validate(ctx, current.EmployeeID, rng, &excludeID); err != nil {
		return nil, err
	}

	updated, err := uc.repo.RescheduleExclusive(ctx, current.ID, rng)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  in.ActorID,
		Action:   "appointment_rescheduled",
		Entity:   "appointment",
		EntityID: &updated.ID,
	})

	return updated, nil
}
