package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barbershop-appointments/internal/models"
)

type ClientSummaryDTO struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Phone  string    `json:"phone"`
	Points int       `json:"points"`
}

type BarberSummaryDTO struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

type ServiceSummaryDTO struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Price    float64   `json:"price"`
	Duration int       `json:"duration"`
}

// AppointmentDTO is the appointment as returned by the API, with its
// client, barber and service denormalized for display.
type AppointmentDTO struct {
	ID        uuid.UUID `json:"id"`
	ClientID  uuid.UUID `json:"clientId"`
	BarberID  uuid.UUID `json:"barberId"`
	ServiceID uuid.UUID `json:"serviceId"`

	Date    time.Time `json:"date"`
	Time    string    `json:"time"`
	Revenue float64   `json:"revenue"`

	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt"`

	Client  ClientSummaryDTO  `json:"client"`
	Barber  BarberSummaryDTO  `json:"barber"`
	Service ServiceSummaryDTO `json:"service"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func FromAppointment(ap *models.Appointment) AppointmentDTO {
	return AppointmentDTO{
		ID:          ap.ID,
		ClientID:    ap.ClientID,
		BarberID:    ap.BarberID,
		ServiceID:   ap.ServiceID,
		Date:        ap.Date.UTC(),
		Time:        ap.Time,
		Revenue:     ap.Revenue,
		Completed:   ap.Completed,
		CompletedAt: ap.CompletedAt,
		Client: ClientSummaryDTO{
			ID:     ap.Client.ID,
			Name:   ap.Client.Name,
			Phone:  ap.Client.Phone,
			Points: ap.Client.Points,
		},
		Barber: BarberSummaryDTO{
			ID:    ap.Barber.ID,
			Name:  ap.Barber.User.Name,
			Email: ap.Barber.User.Email,
		},
		Service: ServiceSummaryDTO{
			ID:       ap.Service.ID,
			Name:     ap.Service.Name,
			Price:    ap.Service.Price,
			Duration: ap.Service.Duration,
		},
		CreatedAt: ap.CreatedAt,
		UpdatedAt: ap.UpdatedAt,
	}
}

func FromAppointments(list []models.Appointment) []AppointmentDTO {
	out := make([]AppointmentDTO, 0, len(list))
	for i := range list {
		out = append(out, FromAppointment(&list[i]))
	}
	return out
}
