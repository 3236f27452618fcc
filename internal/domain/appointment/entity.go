package appointment

import (
	"time"

	"github.com/BruksfildServices01/barbershop-appointments/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(StatusOf(ap)); err != nil {
		return err
	}

	completedAt := now.UTC()
	ap.Completed = true
	ap.CompletedAt = &completedAt
	return nil
}

// Apply replaces every mutable field of ap with the validated input.
func Apply(ap *models.Appointment, f Fields) error {
	if err := CanUpdate(StatusOf(ap)); err != nil {
		return err
	}

	ap.ClientID = f.ClientID
	ap.BarberID = f.BarberID
	ap.ServiceID = f.ServiceID
	ap.Date = f.Date
	ap.Time = f.Time
	ap.Revenue = f.Revenue
	return nil
}

// New builds a pending appointment from validated input.
func New(f Fields) *models.Appointment {
	return &models.Appointment{
		ClientID:  f.ClientID,
		BarberID:  f.BarberID,
		ServiceID: f.ServiceID,
		Date:      f.Date,
		Time:      f.Time,
		Revenue:   f.Revenue,
		Completed: false,
	}
}
