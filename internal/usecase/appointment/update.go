package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barbershop-appointments/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-appointments/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-appointments/internal/models"
)

type UpdateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:  repo,
		audit: audit,
	}
}

// Execute replaces every mutable field of the appointment. The slot check
// ignores the appointment itself, so keeping the same slot is allowed.
func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	id uuid.UUID,
	in domain.Input,
) (*models.Appointment, error) {

	f, err := in.Validate()
	if err != nil {
		return nil, err
	}
	slot := f.Slot()

	var previous domain.Slot
	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		ap, err := tx.GetAppointmentForUpdate(ctx, id)
		if err != nil {
			return err
		}
		previous = domain.Slot{BarberID: ap.BarberID, Date: ap.Date, Time: ap.Time}

		if err := domain.Apply(ap, f); err != nil {
			return err
		}
		if err := resolveReferences(ctx, tx, f); err != nil {
			return err
		}

		conflict, err := tx.FindSlotConflict(ctx, slot, &id)
		if err != nil {
			return err
		}
		if conflict != nil {
			return &domain.SlotConflictError{Conflict: conflict}
		}

		return tx.UpdateAppointment(ctx, ap)
	})
	if err != nil {
		return nil, settleWrite(ctx, uc.repo, uc.audit, err, slot, &id)
	}

	uc.audit.Dispatch(event(ctx, ActionUpdated, &id, map[string]any{
		"from": map[string]any{
			"barberId": previous.BarberID,
			"date":     previous.Date.Format("2006-01-02"),
			"time":     previous.Time,
		},
		"to": map[string]any{
			"barberId": slot.BarberID,
			"date":     slot.Date.Format("2006-01-02"),
			"time":     slot.Time,
		},
	}))

	return uc.repo.LoadAppointment(ctx, id)
}
