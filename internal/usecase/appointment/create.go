package appointment

import (
	"context"

	"github.com/BruksfildServices01/barbershop-appointments/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-appointments/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-appointments/internal/models"
)

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
	}
}

// Execute returns the new appointment with client, barber and service
// loaded for display.
func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in domain.Input,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1️⃣ Validação + data canônica
	// --------------------------------------------------
	f, err := in.Validate()
	if err != nil {
		return nil, err
	}
	slot := f.Slot()

	// --------------------------------------------------
	// 2️⃣ Referências, conflito e gravação na mesma transação
	// --------------------------------------------------
	var ap *models.Appointment
	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		if err := resolveReferences(ctx, tx, f); err != nil {
			return err
		}

		conflict, err := tx.FindSlotConflict(ctx, slot, nil)
		if err != nil {
			return err
		}
		if conflict != nil {
			return &domain.SlotConflictError{Conflict: conflict}
		}

		ap = domain.New(f)
		return tx.CreateAppointment(ctx, ap)
	})
	if err != nil {
		return nil, settleWrite(ctx, uc.repo, uc.audit, err, slot, nil)
	}

	// --------------------------------------------------
	// 3️⃣ Auditoria
	// --------------------------------------------------
	uc.audit.Dispatch(event(ctx, ActionCreated, &ap.ID, map[string]any{
		"barberId": ap.BarberID,
		"date":     ap.Date.Format("2006-01-02"),
		"time":     ap.Time,
	}))

	return uc.repo.LoadAppointment(ctx, ap.ID)
}
