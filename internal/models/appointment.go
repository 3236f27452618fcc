package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Appointment occupies one slot (barber, date, time). Date is always stored
// at 12:00:00 UTC of its calendar day.
type Appointment struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	ClientID uuid.UUID `gorm:"type:uuid;not null;index" json:"clientId"`
	Client   Client    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	BarberID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_appointment_slot,priority:1" json:"barberId"`
	Barber   Barber    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	ServiceID uuid.UUID `gorm:"type:uuid;not null;index" json:"serviceId"`
	Service   Service   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	Date time.Time `gorm:"column:slot_date;not null;uniqueIndex:ux_appointment_slot,priority:2" json:"date"`
	Time string    `gorm:"column:slot_time;size:5;not null;uniqueIndex:ux_appointment_slot,priority:3" json:"time"`

	Revenue float64 `gorm:"type:decimal(10,2);not null" json:"revenue"`

	Completed   bool       `gorm:"not null;default:false;index" json:"completed"`
	CompletedAt *time.Time `json:"completedAt"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
