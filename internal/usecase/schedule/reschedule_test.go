package schedule_test

import (
	"context"
	"errors"
	"testing"

	domain "github.com/maximumcrm/salon-scheduler/internal/domain/schedule"
	ucSchedule "github.com/maximumcrm/salon-scheduler/internal/usecase/schedule"
)

func newRescheduleUC(repo *memRepo) *ucSchedule.Reschedule {
	return ucSchedule.NewReschedule(repo, domain.NewGuard(repo), nil)
}

func TestRescheduleMovesAppointment(t *testing.T) {
	repo := seededRepo()
	id := seedAppointment(t, repo, 1, 7, 10, 0, 11, 0, nil)

	uc := newRescheduleUC(repo)
	ap, err := uc.Execute(context.Background(), ucSchedule.RescheduleInput{
		AppointmentID:   id,
		StartUtc:        at(14, 0),
		DurationMinutes: 60,
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	if !ap.StartAtUtc.Equal(at(14, 0)) || !ap.EndAtUtc.Equal(at(15, 0)) {
		t.Fatalf("moved range = [%v, %v)", ap.StartAtUtc, ap.EndAtUtc)
	}
}

func TestRescheduleDoesNotConflictWithItself(t *testing.T) {
	repo := seededRepo()
	id := seedAppointment(t, repo, 1, 7, 10, 0, 11, 0, nil)

	// shift within the appointment's own current range
	uc := newRescheduleUC(repo)
	if _, err := uc.Execute(context.Background(), ucSchedule.RescheduleInput{
		AppointmentID:   id,
		StartUtc:        at(10, 15),
		DurationMinutes: 30,
	}); err != nil {
		t.Fatalf("self-overlapping reschedule: %v", err)
	}
}

func TestRescheduleRejectsTakenSlot(t *testing.T) {
	repo := seededRepo()
	id := seedAppointment(t, repo, 1, 7, 10, 0, 11, 0, nil)
	other := seedAppointment(t, repo, 1, 7, 12, 0, 13, 0, nil)

	uc := newRescheduleUC(repo)
	_, err := uc.Execute(context.Background(), ucSchedule.RescheduleInput{
		AppointmentID:   id,
		StartUtc:        at(12, 30),
		DurationMinutes: 60,
	})

	var oe *domain.OverlapError
	if !errors.As(err, &oe) {
		t.Fatalf("want OverlapError, got %v", err)
	}
	if oe.ConflictID != other {
		t.Fatalf("conflict id = %d, want %d", oe.ConflictID, other)
	}
}

func TestRescheduleUnknownAppointment(t *testing.T) {
	uc := newRescheduleUC(seededRepo())

	_, err := uc.Execute(context.Background(), ucSchedule.RescheduleInput{
		AppointmentID:   999,
		StartUtc:        at(10, 0),
		DurationMinutes: 30,
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestDeleteAppointment(t *testing.T) {
	repo := seededRepo()
	id := seedAppointment(t, repo, 1, 7, 10, 0, 11, 0, nil)

	uc := ucSchedule.NewDeleteAppointment(repo, nil)
	if err := uc.Execute(context.Background(), id, nil); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if err := uc.Execute(context.Background(), id, nil); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second delete: want ErrNotFound, got %v", err)
	}
}
