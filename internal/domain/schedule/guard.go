package schedule

import (
	"context"

	"github.com/maximumcrm/salon-scheduler/internal/timerange"
)

// Guard enforces the no-double-booking rule for one employee at
// proposal time. The check alone is racy under concurrent bookings;
// the repository pairs it with a locked re-check and a range-exclusion
// constraint, so Guard failures are the friendly early exit and the
// store is the authority.
type Guard struct {
	repo Repository
}

func NewGuard(repo Repository) *Guard {
	return &Guard{repo: repo}
}

// Validate returns nil when the proposed range is free for the
// employee, or an *OverlapError naming the first conflicting
// appointment. excludeID skips the appointment being rescheduled.
func (g *Guard) Validate(
	ctx context.Context,
	employeeID uint,
	rng timerange.Range,
	excludeID *uint,
) error {

	conflicts, err := g.repo.FindOverlapping(ctx, employeeID, rng, excludeID)
	if err != nil {
		return err
	}

	if len(conflicts) == 0 {
		return nil
	}

	first := conflicts[0]
	return &OverlapError{
		ConflictID: first.ID,
		ConflictRange: timerange.Range{
			Start: first.StartAtUtc.UTC(),
			End:   first.EndAtUtc.UTC(),
		},
		EmployeeID: employeeID,
	}
}
