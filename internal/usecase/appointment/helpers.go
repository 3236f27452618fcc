package appointment

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barbershop-appointments/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-appointments/internal/domain/appointment"
)

const (
	ActionCreated   = "appointment_created"
	ActionUpdated   = "appointment_updated"
	ActionDeleted   = "appointment_deleted"
	ActionCompleted = "appointment_completed"
	ActionConflict  = "appointment_conflict"

	entityAppointment = "appointment"
)

// resolveReferences confirms the client, barber and service exist.
func resolveReferences(ctx context.Context, repo domain.Repository, f domain.Fields) error {
	if _, err := repo.GetClient(ctx, f.ClientID); err != nil {
		return referenceError(err, "clientId", f.ClientID)
	}
	if _, err := repo.GetBarber(ctx, f.BarberID); err != nil {
		return referenceError(err, "barberId", f.BarberID)
	}
	if _, err := repo.GetService(ctx, f.ServiceID); err != nil {
		return referenceError(err, "serviceId", f.ServiceID)
	}
	return nil
}

func referenceError(err error, field string, id uuid.UUID) error {
	if errors.Is(err, domain.ErrReferenceNotFound) {
		return &domain.ReferenceError{Field: field, ID: id}
	}
	return err
}

// lostRace turns a slot index rejection into a SlotConflictError. The
// transaction that hit the index is already rolled back, so the winner is
// looked up again outside of it.
func lostRace(
	ctx context.Context,
	repo domain.Repository,
	slot domain.Slot,
	exclude *uuid.UUID,
) error {
	winner, err := repo.FindSlotConflict(ctx, slot, exclude)
	if err != nil {
		return err
	}
	return &domain.SlotConflictError{Conflict: winner}
}

// settleWrite maps the outcome of a guarded write for the caller and
// records rejected slots.
func settleWrite(
	ctx context.Context,
	repo domain.Repository,
	d *audit.Dispatcher,
	err error,
	slot domain.Slot,
	exclude *uuid.UUID,
) error {
	if errors.Is(err, domain.ErrSlotTaken) {
		err = lostRace(ctx, repo, slot, exclude)
	}

	var conflict *domain.SlotConflictError
	if errors.As(err, &conflict) {
		meta := map[string]any{
			"barberId": slot.BarberID,
			"date":     slot.Date.Format("2006-01-02"),
			"time":     slot.Time,
		}
		var entityID *uuid.UUID
		if conflict.Conflict != nil {
			entityID = &conflict.Conflict.ID
		}
		d.Dispatch(event(ctx, ActionConflict, entityID, meta))
	}
	return err
}

func event(ctx context.Context, action string, id *uuid.UUID, meta any) audit.Event {
	return audit.Event{
		Action:   action,
		Entity:   entityAppointment,
		EntityID: id,
		ActorID:  audit.ActorFrom(ctx),
		Metadata: meta,
	}
}
