package schedule

import (
	"context"

	domain "github.com/maximumcrm/salon-scheduler/internal/domain/schedule"
	"github.com/maximumcrm/salon-scheduler/internal/dto"
	"github.com/maximumcrm/salon-scheduler/internal/timerange"
)

type ListEventsInput struct {
	Window     timerange.Range
	EmployeeID *uint
}

// ListEvents answers "which appointments intersect this calendar
// window". The window uses the exact overlap predicate the booking
// path uses, so what the calendar shows is what a booking of the same
// window would conflict with.
type ListEvents struct {
	repo domain.Repository
}

func NewListEvents(repo domain.Repository) *ListEvents {
	return &ListEvents{repo: repo}
}

func (uc *ListEvents) Execute(
	ctx context.Context,
	in ListEventsInput,
) ([]dto.EventView, error) {

	aps, err := uc.repo.FindInWindow(ctx, in.Window, in.EmployeeID)
	if err != nil {
		return nil, err
	}

	events := make([]dto.EventView, 0, len(aps))
	for _, ap := range aps {
		title := ap.Client.FullName + " — " + ap.Employee.FullName
		if ap.Title != nil && *ap.Title != "" {
			title = *ap.Title
		}

		events = append(events, dto.EventView{
			ID:    ap.ID,
			Title: title,
			Start: ap.StartAtUtc.UTC(),
			End:   ap.EndAtUtc.UTC(),
			ExtendedProps: dto.EventExtendedProps{
				Client:     ap.Client.FullName,
				Employee:   ap.Employee.FullName,
				EmployeeID: ap.EmployeeID,
				ClientID:   ap.ClientID,
			},
		})
	}

	return events, nil
}
