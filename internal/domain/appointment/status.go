package appointment

import "github.com/BruksfildServices01/barbershop-appointments/internal/models"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

func StatusOf(ap *models.Appointment) Status {
	if ap.Completed {
		return StatusCompleted
	}
	return StatusPending
}

// ===============================
// Validations
// ===============================

// CanComplete define se um agendamento pode ser concluído
func CanComplete(current Status) error {
	if current != StatusPending {
		return ErrAlreadyCompleted
	}
	return nil
}

// Concluído é registro histórico: não pode ser removido nem alterado
func CanDelete(current Status) error {
	if current != StatusPending {
		return ErrAlreadyCompleted
	}
	return nil
}

func CanUpdate(current Status) error {
	if current != StatusPending {
		return ErrAlreadyCompleted
	}
	return nil
}
