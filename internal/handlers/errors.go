package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barbershop-appointments/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-appointments/internal/httperr"
)

const (
	msgSlotTaken = "Horário não disponível para este barbeiro"
	msgInvalidID = "ID inválido"
)

var referenceMessages = map[string]string{
	"clientId":  "Cliente não encontrado",
	"barberId":  "Barbeiro não encontrado",
	"serviceId": "Serviço não encontrado",
}

// errorWriter translates use case errors into HTTP responses. Details of
// infrastructure failures are only exposed outside production.
type errorWriter struct {
	exposeDetails bool
}

func (w errorWriter) write(c *gin.Context, err error, fallback string) {
	_ = c.Error(err)

	var (
		verr     *domain.ValidationError
		rerr     *domain.ReferenceError
		conflict *domain.SlotConflictError
	)

	switch {
	case errors.As(err, &verr):
		c.AbortWithStatusJSON(http.StatusBadRequest, validationBody(verr.Fields))

	case errors.As(err, &rerr):
		msg, ok := referenceMessages[rerr.Field]
		if !ok {
			msg = "Registro não encontrado"
		}
		httperr.BadRequest(c, msg, rerr.Error())

	case errors.As(err, &conflict):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":                  msgSlotTaken,
			"details":                conflict.Error(),
			"conflictingAppointment": conflict.Conflict,
		})

	default:
		if be, ok := httperr.AsBusiness(err); ok {
			httperr.Write(c, be.Status, be.Message, "")
			return
		}
		details := ""
		if w.exposeDetails {
			details = err.Error()
		}
		httperr.Internal(c, fallback, details)
	}
}
