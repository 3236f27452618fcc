package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barbershop-appointments/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-appointments/internal/domain/appointment"
)

type DeleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeleteAppointment) Execute(ctx context.Context, id uuid.UUID) error {
	var meta map[string]any

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		ap, err := tx.GetAppointmentForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := domain.CanDelete(domain.StatusOf(ap)); err != nil {
			return err
		}

		meta = map[string]any{
			"clientId": ap.ClientID,
			"barberId": ap.BarberID,
			"date":     ap.Date.Format("2006-01-02"),
			"time":     ap.Time,
		}
		return tx.DeleteAppointment(ctx, id)
	})
	if err != nil {
		return err
	}

	uc.audit.Dispatch(event(ctx, ActionDeleted, &id, meta))
	return nil
}
