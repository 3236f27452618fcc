package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/barbershop-appointments/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-appointments/internal/dto"
	"github.com/BruksfildServices01/barbershop-appointments/internal/httperr"
	"github.com/BruksfildServices01/barbershop-appointments/internal/httpresp"
	ucAppointment "github.com/BruksfildServices01/barbershop-appointments/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	check    *ucAppointment.CheckAvailability
	create   *ucAppointment.CreateAppointment
	update   *ucAppointment.UpdateAppointment
	remove   *ucAppointment.DeleteAppointment
	complete *ucAppointment.CompleteAppointment
	list     *ucAppointment.ListAppointments
	get      *ucAppointment.GetAppointment

	errs errorWriter
}

type AppointmentUseCases struct {
	Check    *ucAppointment.CheckAvailability
	Create   *ucAppointment.CreateAppointment
	Update   *ucAppointment.UpdateAppointment
	Delete   *ucAppointment.DeleteAppointment
	Complete *ucAppointment.CompleteAppointment
	List     *ucAppointment.ListAppointments
	Get      *ucAppointment.GetAppointment
}

func NewAppointmentHandler(uc AppointmentUseCases, exposeErrorDetails bool) *AppointmentHandler {
	useJSONFieldNames()

	return &AppointmentHandler{
		check:    uc.Check,
		create:   uc.Create,
		update:   uc.Update,
		remove:   uc.Delete,
		complete: uc.Complete,
		list:     uc.List,
		get:      uc.Get,
		errs:     errorWriter{exposeDetails: exposeErrorDetails},
	}
}

// ======================================================
// REQUESTS
// ======================================================

type AppointmentRequest struct {
	ClientID  string   `json:"clientId"`
	BarberID  string   `json:"barberId"`
	ServiceID string   `json:"serviceId"`
	Date      string   `json:"date"`
	Time      string   `json:"time"`
	Revenue   *float64 `json:"revenue"`
}

func (r AppointmentRequest) input() domain.Input {
	return domain.Input{
		ClientID:  r.ClientID,
		BarberID:  r.BarberID,
		ServiceID: r.ServiceID,
		Date:      r.Date,
		Time:      r.Time,
		Revenue:   r.Revenue,
	}
}

type AvailabilityRequest struct {
	BarberID             string `json:"barberId"`
	Date                 string `json:"date"`
	Time                 string `json:"time"`
	ExcludeAppointmentID string `json:"excludeAppointmentId"`
}

// ======================================================
// HELPERS
// ======================================================

func appointmentID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, msgInvalidID, "")
		return uuid.Nil, false
	}
	return id, true
}

// ======================================================
// ROUTES
// ======================================================

func (h *AppointmentHandler) CheckAvailability(c *gin.Context) {
	var req AvailabilityRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.check.Execute(c.Request.Context(), domain.AvailabilityInput{
		BarberID:             req.BarberID,
		Date:                 req.Date,
		Time:                 req.Time,
		ExcludeAppointmentID: req.ExcludeAppointmentID,
	})
	if err != nil {
		h.errs.write(c, err, "Erro ao verificar disponibilidade")
		return
	}

	httpresp.OK(c, res)
}

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req AppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), req.input())
	if err != nil {
		h.errs.write(c, err, "Erro ao criar agendamento")
		return
	}

	httpresp.Created(c, dto.FromAppointment(ap))
}

func (h *AppointmentHandler) List(c *gin.Context) {
	list, err := h.list.Execute(c.Request.Context(), domain.ListQuery{
		Date:      c.Query("date"),
		BarberID:  c.Query("barberId"),
		Completed: c.Query("completed"),
	})
	if err != nil {
		h.errs.write(c, err, "Erro ao listar agendamentos")
		return
	}

	httpresp.OK(c, dto.FromAppointments(list))
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := appointmentID(c)
	if !ok {
		return
	}

	ap, err := h.get.Execute(c.Request.Context(), id)
	if err != nil {
		h.errs.write(c, err, "Erro ao buscar agendamento")
		return
	}

	httpresp.OK(c, dto.FromAppointment(ap))
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := appointmentID(c)
	if !ok {
		return
	}

	var req AppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.update.Execute(c.Request.Context(), id, req.input())
	if err != nil {
		h.errs.write(c, err, "Erro ao atualizar agendamento")
		return
	}

	httpresp.OK(c, dto.FromAppointment(ap))
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := appointmentID(c)
	if !ok {
		return
	}

	if err := h.remove.Execute(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrAlreadyCompleted) {
			_ = c.Error(err)
			httperr.BadRequest(c, "Não é possível excluir um agendamento já concluído", "")
			return
		}
		h.errs.write(c, err, "Erro ao excluir agendamento")
		return
	}

	httpresp.NoContent(c)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	id, ok := appointmentID(c)
	if !ok {
		return
	}

	ap, err := h.complete.Execute(c.Request.Context(), id)
	if err != nil {
		h.errs.write(c, err, "Erro ao concluir agendamento")
		return
	}

	httpresp.OK(c, dto.FromAppointment(ap))
}
