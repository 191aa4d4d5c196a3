package schedule

import (
	"context"

	"github.com/maximumcrm/salon-scheduler/internal/audit"
	domain "github.com/maximumcrm/salon-scheduler/internal/domain/schedule"
)

type DeleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteAppointment(
	repo domain.Repository,
	auditD *audit.Dispatcher,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:  repo,
		audit: auditD,
	}
}

func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	id uint,
	actorID *uint,
) error {

	if err := uc.repo.DeleteAppointment(ctx, id); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  actorID,
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: &id,
	})

	return nil
}
