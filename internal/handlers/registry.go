package handlers

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-appointments/internal/models"
)

var errFutureAppointments = errors.New("record has future appointments")

// hasFutureAppointments reports whether any appointment referencing id
// through column is scheduled from now on.
func hasFutureAppointments(tx *gorm.DB, column string, id uuid.UUID) (bool, error) {
	var count int64
	err := tx.Model(&models.Appointment{}).
		Where(column+" = ? AND slot_date >= ?", id, time.Now().UTC()).
		Count(&count).Error
	return count > 0, err
}
