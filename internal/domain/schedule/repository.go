package schedule

import (
	"context"

	"github.com/maximumcrm/salon-scheduler/internal/models"
	"github.com/maximumcrm/salon-scheduler/internal/timerange"
)

type Repository interface {
	// -------- Collaborator lookups --------
	GetClient(ctx context.Context, id uint) (*models.Client, error)

	GetEmployee(ctx context.Context, id uint) (*models.Employee, error)

	// -------- Appointment (create / conflict) --------

	// FindOverlapping returns the employee's appointments whose range
	// overlaps rng, half-open semantics. Optionally excludes one
	// appointment (reschedule flows).
	FindOverlapping(
		ctx context.Context,
		employeeID uint,
		rng timerange.Range,
		excludeID *uint,
	) ([]models.Appointment, error)

	// CreateExclusive re-checks the overlap under a row lock and
	// inserts in the same transaction, so two concurrent conflicting
	// bookings cannot both commit.
	CreateExclusive(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// RescheduleExclusive moves an appointment to a new range with the
	// same serialization discipline as CreateExclusive.
	RescheduleExclusive(
		ctx context.Context,
		id uint,
		rng timerange.Range,
	) (*models.Appointment, error)

	// -------- Appointment (read / delete) --------
	GetAppointment(ctx context.Context, id uint) (*models.Appointment, error)

	FindInWindow(
		ctx context.Context,
		rng timerange.Range,
		employeeID *uint,
	) ([]models.Appointment, error)

	DeleteAppointment(ctx context.Context, id uint) error
}
