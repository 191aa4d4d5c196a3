package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	domain "github.com/maximumcrm/salon-scheduler/internal/domain/schedule"
	"github.com/maximumcrm/salon-scheduler/internal/models"
	"github.com/maximumcrm/salon-scheduler/internal/timerange"
)

func at(h, m int) time.Time {
	return time.Date(2025, 3, 10, h, m, 0, 0, time.UTC)
}

func proposed(t *testing.T) timerange.Range {
	t.Helper()
	r, err := timerange.New(at(10, 30), at(11, 30))
	if err != nil {
		t.Fatalf("range: %v", err)
	}
	return r
}

func noConflicts(context.Context, uint, timerange.Range, *uint) ([]models.Appointment, error) {
	return nil, nil
}

func TestMapWriteErrExclusionViolationNamesWinningRow(t *testing.T) {
	lookup := func(_ context.Context, employeeID uint, _ timerange.Range, excludeID *uint) ([]models.Appointment, error) {
		if employeeID != 7 {
			t.Fatalf("lookup employee = %d, want 7", employeeID)
		}
		if excludeID != nil {
			t.Fatalf("lookup must not exclude any row, got %d", *excludeID)
		}
		return []models.Appointment{
			{ID: 42, EmployeeID: 7, StartAtUtc: at(10, 0), EndAtUtc: at(11, 0)},
		}, nil
	}

	err := mapWriteErr(
		context.Background(),
		&pgconn.PgError{Code: "23P01"},
		7, proposed(t), lookup,
	)

	var oe *domain.OverlapError
	if !errors.As(err, &oe) {
		t.Fatalf("want OverlapError, got %v", err)
	}
	if oe.ConflictID != 42 {
		t.Fatalf("conflict id = %d, want the committed row 42", oe.ConflictID)
	}
	if !oe.ConflictRange.Start.Equal(at(10, 0)) || !oe.ConflictRange.End.Equal(at(11, 0)) {
		t.Fatalf("conflict range = %v, want the winner's range", oe.ConflictRange)
	}
}

func TestMapWriteErrExclusionViolationFallsBackToProposedRange(t *testing.T) {
	failing := func(context.Context, uint, timerange.Range, *uint) ([]models.Appointment, error) {
		return nil, errors.New("connection lost")
	}

	err := mapWriteErr(
		context.Background(),
		&pgconn.PgError{Code: "23P01"},
		7, proposed(t), failing,
	)

	var oe *domain.OverlapError
	if !errors.As(err, &oe) {
		t.Fatalf("want OverlapError, got %v", err)
	}
	if !oe.ConflictRange.Start.Equal(at(10, 30)) || !oe.ConflictRange.End.Equal(at(11, 30)) {
		t.Fatalf("fallback range = %v, want the proposed range", oe.ConflictRange)
	}
	if oe.EmployeeID != 7 {
		t.Fatalf("employee id = %d, want 7", oe.EmployeeID)
	}
}

func TestMapWriteErrForeignKeyViolation(t *testing.T) {
	tests := []struct {
		name       string
		constraint string
		wantEntity string
	}{
		{"employee fk", "fk_appointments_employee", "employee"},
		{"client fk", "fk_appointments_client", "client"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mapWriteErr(
				context.Background(),
				&pgconn.PgError{Code: "23503", ConstraintName: tt.constraint},
				7, proposed(t), noConflicts,
			)

			var cve *domain.ConstraintViolationError
			if !errors.As(err, &cve) {
				t.Fatalf("want ConstraintViolationError, got %v", err)
			}
			if cve.Entity != tt.wantEntity {
				t.Fatalf("entity = %q, want %q", cve.Entity, tt.wantEntity)
			}
		})
	}
}

func TestMapWriteErrPassesThroughDomainErrors(t *testing.T) {
	oe := &domain.OverlapError{ConflictID: 5, EmployeeID: 7}
	if got := mapWriteErr(context.Background(), oe, 7, proposed(t), noConflicts); got != oe {
		t.Fatalf("OverlapError not passed through: %v", got)
	}

	got := mapWriteErr(context.Background(), domain.ErrNotFound, 7, proposed(t), noConflicts)
	if !errors.Is(got, domain.ErrNotFound) {
		t.Fatalf("ErrNotFound not passed through: %v", got)
	}

	if got := mapWriteErr(context.Background(), nil, 7, proposed(t), noConflicts); got != nil {
		t.Fatalf("nil must map to nil, got %v", got)
	}
}

func TestMapStoreErrClassifiesTransientFailures(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"deadline", context.DeadlineExceeded},
		{"canceled", context.Canceled},
		{"connection failure", &pgconn.PgError{Code: "08006"}},
		{"connection does not exist", &pgconn.PgError{Code: "08003"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapStoreErr(tt.err)

			var su *domain.StoreUnavailableError
			if !errors.As(got, &su) {
				t.Fatalf("want StoreUnavailableError, got %v", got)
			}
			if !errors.Is(got, tt.err) {
				t.Fatalf("wrapped error lost: %v", got)
			}
		})
	}
}

func TestMapStoreErrPassesThroughOtherErrors(t *testing.T) {
	if got := mapStoreErr(nil); got != nil {
		t.Fatalf("nil must map to nil, got %v", got)
	}

	plain := errors.New("syntax error")
	if got := mapStoreErr(plain); got != plain {
		t.Fatalf("non-transient error rewritten: %v", got)
	}

	// integrity violations are the caller's problem, not an outage
	pgErr := &pgconn.PgError{Code: "23505"}
	if got := mapStoreErr(pgErr); got != error(pgErr) {
		t.Fatalf("pg error rewritten: %v", got)
	}
}
