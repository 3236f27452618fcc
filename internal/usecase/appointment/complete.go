package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barbershop-appointments/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-appointments/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-appointments/internal/models"
)

const loyaltyPointsPerVisit = 1

type CompleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewCompleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CompleteAppointment {
	return &CompleteAppointment{
		repo:  repo,
		audit: audit,
		now:   time.Now,
	}
}

// Execute marks the appointment completed and awards the client one
// loyalty point in the same transaction.
func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	id uuid.UUID,
) (*models.Appointment, error) {

	var clientID uuid.UUID
	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		ap, err := tx.GetAppointmentForUpdate(ctx, id)
		if err != nil {
			return err
		}

		if err := domain.Complete(ap, uc.now()); err != nil {
			return err
		}
		if err := tx.UpdateAppointment(ctx, ap); err != nil {
			return err
		}

		clientID = ap.ClientID
		ok, err := tx.IncrementClientPoints(ctx, ap.ClientID, loyaltyPointsPerVisit)
		if err != nil {
			return err
		}
		if !ok {
			return &domain.ReferenceError{Field: "clientId", ID: ap.ClientID}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(event(ctx, ActionCompleted, &id, map[string]any{
		"clientId": clientID,
		"points":   loyaltyPointsPerVisit,
	}))

	return uc.repo.LoadAppointment(ctx, id)
}
