package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barbershop-appointments/internal/models"
)

// ListFilter narrows ListAppointments. Nil fields are not applied.
type ListFilter struct {
	Date      *time.Time
	BarberID  *uuid.UUID
	Completed *bool
}

type Repository interface {
	// Transaction runs fn against a repository bound to a single database
	// transaction. Returning an error from fn rolls it back.
	Transaction(
		ctx context.Context,
		fn func(tx Repository) error,
	) error

	// -------- Collaborators --------
	GetClient(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Client, error)

	GetBarber(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Barber, error)

	GetService(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Service, error)

	// IncrementClientPoints reports false when the client row is gone.
	IncrementClientPoints(
		ctx context.Context,
		clientID uuid.UUID,
		delta int,
	) (bool, error)

	// -------- Appointment (slot) --------
	FindSlotConflict(
		ctx context.Context,
		slot Slot,
		exclude *uuid.UUID,
	) (*Summary, error)

	// -------- Appointment (state change) --------
	GetAppointment(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Appointment, error)

	GetAppointmentForUpdate(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Appointment, error)

	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	DeleteAppointment(
		ctx context.Context,
		id uuid.UUID,
	) error

	// -------- Read side --------
	LoadAppointment(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Appointment, error)

	ListAppointments(
		ctx context.Context,
		filter ListFilter,
	) ([]models.Appointment, error)
}
