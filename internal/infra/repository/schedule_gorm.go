package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/maximumcrm/salon-scheduler/internal/domain/schedule"
	"github.com/maximumcrm/salon-scheduler/internal/models"
	"github.com/maximumcrm/salon-scheduler/internal/timerange"
)

const (
	pgExclusionViolation  = "23P01"
	pgForeignKeyViolation = "23503"
)

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

// --------------------------------------------------
// Collaborators
// --------------------------------------------------

func (r *ScheduleGormRepository) GetClient(
	ctx context.Context,
	id uint,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &domain.ConstraintViolationError{Entity: "client", ID: id}
		}
		return nil, mapStoreErr(err)
	}
	return &client, nil
}

func (r *ScheduleGormRepository) GetEmployee(
	ctx context.Context,
	id uint,
) (*models.Employee, error) {

	var emp models.Employee
	if err := r.db.WithContext(ctx).First(&emp, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &domain.ConstraintViolationError{Entity: "employee", ID: id}
		}
		return nil, mapStoreErr(err)
	}
	return &emp, nil
}

// --------------------------------------------------
// Overlap queries
// --------------------------------------------------

func (r *ScheduleGormRepository) FindOverlapping(
	ctx context.Context,
	employeeID uint,
	rng timerange.Range,
	excludeID *uint,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Where(
			"employee_id = ? AND start_at_utc < ? AND end_at_utc > ?",
			employeeID, rng.End, rng.Start,
		)

	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}

	var aps []models.Appointment
	if err := q.Order("start_at_utc ASC").Find(&aps).Error; err != nil {
		return nil, mapStoreErr(err)
	}

	return aps, nil
}

func (r *ScheduleGormRepository) FindInWindow(
	ctx context.Context,
	rng timerange.Range,
	employeeID *uint,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Employee").
		Where("start_at_utc < ? AND end_at_utc > ?", rng.End, rng.Start)

	if employeeID != nil {
		q = q.Where("employee_id = ?", *employeeID)
	}

	var aps []models.Appointment
	if err := q.Order("start_at_utc ASC").Find(&aps).Error; err != nil {
		return nil, mapStoreErr(err)
	}

	return aps, nil
}

// --------------------------------------------------
// Serialized writes
// --------------------------------------------------

// CreateExclusive locks the employee's conflicting rows, re-checks the
// overlap and inserts, all in one transaction. Concurrent attempts for
// the same employee queue on the row locks; the gist exclusion
// constraint catches anything the lock path missed.
func (r *ScheduleGormRepository) CreateExclusive(
	ctx context.Context,
	ap *models.Appointment,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var conflicts []models.Appointment
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"employee_id = ? AND start_at_utc < ? AND end_at_utc > ?",
				ap.EmployeeID, ap.EndAtUtc, ap.StartAtUtc,
			).
			Order("start_at_utc ASC").
			Find(&conflicts).Error; err != nil {
			return err
		}

		if len(conflicts) > 0 {
			return overlapError(ap.EmployeeID, conflicts[0])
		}

		return tx.Create(ap).Error
	})

	return mapWriteErr(ctx, err, ap.EmployeeID, timerange.Range{
		Start: ap.StartAtUtc,
		End:   ap.EndAtUtc,
	}, r.FindOverlapping)
}

func (r *ScheduleGormRepository) RescheduleExclusive(
	ctx context.Context,
	id uint,
	rng timerange.Range,
) (*models.Appointment, error) {

	var updated models.Appointment
	var employeeID uint

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var ap models.Appointment
		if err := tx.First(&ap, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		employeeID = ap.EmployeeID

		var conflicts []models.Appointment
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"employee_id = ? AND id <> ? AND start_at_utc < ? AND end_at_utc > ?",
				ap.EmployeeID, ap.ID, rng.End, rng.Start,
			).
			Order("start_at_utc ASC").
			Find(&conflicts).Error; err != nil {
			return err
		}

		if len(conflicts) > 0 {
			return overlapError(ap.EmployeeID, conflicts[0])
		}

		ap.StartAtUtc = rng.Start
		ap.EndAtUtc = rng.End
		if err := tx.Save(&ap).Error; err != nil {
			return err
		}

		updated = ap
		return nil
	})

	if err != nil {
		return nil, mapWriteErr(ctx, err, employeeID, rng, r.FindOverlapping)
	}
	return &updated, nil
}

// --------------------------------------------------
// Reads / delete
// --------------------------------------------------

func (r *ScheduleGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Employee").
		First(&ap, id).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, mapStoreErr(err)
	}

	return &ap, nil
}

func (r *ScheduleGormRepository) DeleteAppointment(
	ctx context.Context,
	id uint,
) error {

	res := r.db.WithContext(ctx).Delete(&models.Appointment{}, id)
	if res.Error != nil {
		return mapStoreErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// --------------------------------------------------
// Error mapping
// --------------------------------------------------

func overlapError(employeeID uint, conflict models.Appointment) error {
	return &domain.OverlapError{
		ConflictID: conflict.ID,
		ConflictRange: timerange.Range{
			Start: conflict.StartAtUtc.UTC(),
			End:   conflict.EndAtUtc.UTC(),
		},
		EmployeeID: employeeID,
	}
}

// conflictLookup finds the appointments occupying a range, used to
// recover the winning row after an exclusion-constraint rejection.
type conflictLookup func(
	ctx context.Context,
	employeeID uint,
	rng timerange.Range,
	excludeID *uint,
) ([]models.Appointment, error)

func mapWriteErr(
	ctx context.Context,
	err error,
	employeeID uint,
	rng timerange.Range,
	lookup conflictLookup,
) error {

	if err == nil {
		return nil
	}

	var oe *domain.OverlapError
	if errors.As(err, &oe) {
		return err
	}
	if errors.Is(err, domain.ErrNotFound) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgExclusionViolation:
			// Raced past the lock path; the constraint held the line.
			// The transaction rolled back, so the winning row is only
			// visible through a fresh query. Callers render the
			// conflict, so name the real occupant when we can.
			if conflicts, qerr := lookup(ctx, employeeID, rng, nil); qerr == nil && len(conflicts) > 0 {
				return overlapError(employeeID, conflicts[0])
			}
			return &domain.OverlapError{
				ConflictRange: rng,
				EmployeeID:    employeeID,
			}
		case pgForeignKeyViolation:
			entity := "client"
			if strings.Contains(pgErr.ConstraintName, "employee") {
				entity = "employee"
			}
			return &domain.ConstraintViolationError{Entity: entity}
		}
	}

	return mapStoreErr(err)
}

// mapStoreErr classifies transient failures as retryable
// StoreUnavailable; everything else passes through.
func mapStoreErr(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &domain.StoreUnavailableError{Err: err}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, "08") {
		return &domain.StoreUnavailableError{Err: err}
	}

	return err
}

// Compile-time check
var _ domain.Repository = (*ScheduleGormRepository)(nil)
