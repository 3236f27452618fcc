package appointment

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/barbershop-appointments/internal/httperr"
)

var (
	ErrNotFound         = httperr.ErrBusinessNotFound("appointment_not_found", "Agendamento não encontrado")
	ErrAlreadyCompleted = httperr.ErrBusiness("appointment_already_completed", "Agendamento já foi concluído")

	// ErrSlotTaken is returned by repositories when the slot index rejects a
	// write. Use cases turn it into a SlotConflictError.
	ErrSlotTaken = httperr.ErrBusiness("slot_taken", "Horário não disponível para este barbeiro")

	// ErrReferenceNotFound is returned for a missing client, barber or
	// service row.
	ErrReferenceNotFound = httperr.ErrBusiness("reference_not_found", "Registro não encontrado")

	ErrInfrastructure = errors.New("infrastructure failure")
)

// FieldError attributes one validation failure to an input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

// ReferenceError reports an id that does not resolve to a record.
type ReferenceError struct {
	Field string
	ID    uuid.UUID
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Field, e.ID)
}

// Summary is the part of a conflicting appointment shown to the caller.
type Summary struct {
	ID   uuid.UUID `json:"id"`
	Time string    `json:"time"`
}

type SlotConflictError struct {
	Conflict *Summary
}

func (e *SlotConflictError) Error() string {
	if e.Conflict == nil {
		return "slot already booked"
	}
	return fmt.Sprintf("slot already booked by appointment %s at %s", e.Conflict.ID, e.Conflict.Time)
}

// Infrastructure wraps a storage failure so callers can tell it apart from
// business errors with errors.Is(err, ErrInfrastructure).
func Infrastructure(err error, op string) error {
	if err == nil {
		return nil
	}
	return errors.Mark(errors.Wrap(err, op), ErrInfrastructure)
}

func IsInfrastructure(err error) bool {
	return errors.Is(err, ErrInfrastructure)
}
