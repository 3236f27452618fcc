package appointment

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/barbershop-appointments/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-appointments/internal/models"
)

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

// Execute returns the matching appointments ordered by date then time.
func (uc *ListAppointments) Execute(
	ctx context.Context,
	q domain.ListQuery,
) ([]models.Appointment, error) {

	filter, err := q.Filter()
	if err != nil {
		return nil, err
	}
	return uc.repo.ListAppointments(ctx, filter)
}

type GetAppointment struct {
	repo domain.Repository
}

func NewGetAppointment(repo domain.Repository) *GetAppointment {
	return &GetAppointment{repo: repo}
}

func (uc *GetAppointment) Execute(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	return uc.repo.LoadAppointment(ctx, id)
}
