package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	domain "github.com/BruksfildServices01/barbershop-appointments/internal/domain/appointment"
)

func writeWith(w errorWriter, err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	w.write(c, err, "Erro")
	return rec
}

func TestErrorWriter(t *testing.T) {
	conflictID := uuid.MustParse("6f1c2a6e-8a7b-4d4e-9a51-2f0d3c1b7e10")
	clientID := uuid.MustParse("0b3c5a1e-2d4f-4c6a-8e9b-1a2b3c4d5e6f")

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{
			name:     "validation",
			err:      domain.NewValidationError("time", "time is required"),
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":[{"field":"time","message":"time is required"}]}`,
		},
		{
			name:     "reference",
			err:      &domain.ReferenceError{Field: "clientId", ID: clientID},
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"Cliente não encontrado","details":"clientId 0b3c5a1e-2d4f-4c6a-8e9b-1a2b3c4d5e6f not found"}`,
		},
		{
			name:     "conflict",
			err:      &domain.SlotConflictError{Conflict: &domain.Summary{ID: conflictID, Time: "14:30"}},
			wantCode: http.StatusBadRequest,
			wantBody: `{
				"error":"Horário não disponível para este barbeiro",
				"details":"slot already booked by appointment 6f1c2a6e-8a7b-4d4e-9a51-2f0d3c1b7e10 at 14:30",
				"conflictingAppointment":{"id":"6f1c2a6e-8a7b-4d4e-9a51-2f0d3c1b7e10","time":"14:30"}
			}`,
		},
		{
			name:     "not found",
			err:      domain.ErrNotFound,
			wantCode: http.StatusNotFound,
			wantBody: `{"error":"Agendamento não encontrado"}`,
		},
		{
			name:     "already completed",
			err:      domain.ErrAlreadyCompleted,
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"Agendamento já foi concluído"}`,
		},
		{
			name:     "infrastructure hidden",
			err:      domain.Infrastructure(errors.New("connection reset"), "list appointments"),
			wantCode: http.StatusInternalServerError,
			wantBody: `{"error":"Erro"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := writeWith(errorWriter{}, tt.err)
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestErrorWriter_ExposesDetails(t *testing.T) {
	rec := writeWith(errorWriter{exposeDetails: true}, domain.Infrastructure(errors.New("connection reset"), "list appointments"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Erro","details":"list appointments: connection reset"}`, rec.Body.String())
}
