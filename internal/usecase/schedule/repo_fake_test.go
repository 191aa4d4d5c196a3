package schedule_test

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	domain "github.com/maximumcrm/salon-scheduler/internal/domain/schedule"
	"github.com/maximumcrm/salon-scheduler/internal/models"
	"github.com/maximumcrm/salon-scheduler/internal/timerange"
)

// memRepo is an in-memory Repository. CreateExclusive and
// RescheduleExclusive serialize on the mutex the way the real
// implementation serializes on row locks, so the concurrency
// properties of the use cases can be exercised without Postgres.
type memRepo struct {
	mu           sync.Mutex
	clients      map[uint]models.Client
	employees    map[uint]models.Employee
	appointments map[uint]models.Appointment
	nextID       uint
}

func newMemRepo() *memRepo {
	return &memRepo{
		clients:      make(map[uint]models.Client),
		employees:    make(map[uint]models.Employee),
		appointments: make(map[uint]models.Appointment),
	}
}

func (r *memRepo) addClient(id uint, name string) {
	r.clients[id] = models.Client{ID: id, FullName: name}
}

func (r *memRepo) addEmployee(id uint, name string) {
	r.employees[id] = models.Employee{ID: id, FullName: name, IsActive: true}
}

func (r *memRepo) GetClient(_ context.Context, id uint) (*models.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.clients[id]
	if !ok {
		return nil, &domain.ConstraintViolationError{Entity: "client", ID: id}
	}
	return &c, nil
}

func (r *memRepo) GetEmployee(_ context.Context, id uint) (*models.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.employees[id]
	if !ok {
		return nil, &domain.ConstraintViolationError{Entity: "employee", ID: id}
	}
	return &e, nil
}

func (r *memRepo) overlappingLocked(
	employeeID uint,
	rng timerange.Range,
	excludeID *uint,
) []models.Appointment {

	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.EmployeeID != employeeID {
			continue
		}
		if excludeID != nil && ap.ID == *excludeID {
			continue
		}
		existing := timerange.Range{Start: ap.StartAtUtc, End: ap.EndAtUtc}
		if existing.Overlaps(rng) {
			out = append(out, ap)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartAtUtc.Before(out[j].StartAtUtc)
	})
	return out
}

func (r *memRepo) FindOverlapping(
	_ context.Context,
	employeeID uint,
	rng timerange.Range,
	excludeID *uint,
) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.overlappingLocked(employeeID, rng, excludeID), nil
}

func (r *memRepo) CreateExclusive(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rng := timerange.Range{Start: ap.StartAtUtc, End: ap.EndAtUtc}
	if conflicts := r.overlappingLocked(ap.EmployeeID, rng, nil); len(conflicts) > 0 {
		first := conflicts[0]
		return &domain.OverlapError{
			ConflictID: first.ID,
			ConflictRange: timerange.Range{
				Start: first.StartAtUtc,
				End:   first.EndAtUtc,
			},
			EmployeeID: ap.EmployeeID,
		}
	}

	if _, ok := r.clients[ap.ClientID]; !ok {
		return &domain.ConstraintViolationError{Entity: "client", ID: ap.ClientID}
	}
	if _, ok := r.employees[ap.EmployeeID]; !ok {
		return &domain.ConstraintViolationError{Entity: "employee", ID: ap.EmployeeID}
	}

	r.nextID++
	ap.ID = r.nextID
	ap.CreatedAt = time.Now()
	r.appointments[ap.ID] = *ap
	return nil
}

func (r *memRepo) RescheduleExclusive(
	_ context.Context,
	id uint,
	rng timerange.Range,
) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ap, ok := r.appointments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}

	if conflicts := r.overlappingLocked(ap.EmployeeID, rng, &id); len(conflicts) > 0 {
		first := conflicts[0]
		return nil, &domain.OverlapError{
			ConflictID: first.ID,
			ConflictRange: timerange.Range{
				Start: first.StartAtUtc,
				End:   first.EndAtUtc,
			},
			EmployeeID: ap.EmployeeID,
		}
	}

	ap.StartAtUtc = rng.Start
	ap.EndAtUtc = rng.End
	r.appointments[id] = ap
	return &ap, nil
}

func (r *memRepo) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ap, ok := r.appointments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	r.hydrateLocked(&ap)
	return &ap, nil
}

func (r *memRepo) FindInWindow(
	_ context.Context,
	rng timerange.Range,
	employeeID *uint,
) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Appointment
	for _, ap := range r.appointments {
		if employeeID != nil && ap.EmployeeID != *employeeID {
			continue
		}
		existing := timerange.Range{Start: ap.StartAtUtc, End: ap.EndAtUtc}
		if existing.Overlaps(rng) {
			r.hydrateLocked(&ap)
			out = append(out, ap)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartAtUtc.Before(out[j].StartAtUtc)
	})
	return out, nil
}

func (r *memRepo) DeleteAppointment(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.appointments[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.appointments, id)
	return nil
}

func (r *memRepo) hydrateLocked(ap *models.Appointment) {
	ap.Client = r.clients[ap.ClientID]
	ap.Employee = r.employees[ap.EmployeeID]
}

var _ domain.Repository = (*memRepo)(nil)

// --------------------------------------------------
// shared helpers
// --------------------------------------------------

func at(h, m int) time.Time {
	return time.Date(2025, 3, 10, h, m, 0, 0, time.UTC)
}

func mustRange(t *testing.T, start, end time.Time) timerange.Range {
	t.Helper()
	r, err := timerange.New(start, end)
	if err != nil {
		t.Fatalf("range: %v", err)
	}
	return r
}
