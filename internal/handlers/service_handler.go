package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-appointments/internal/httperr"
	"github.com/BruksfildServices01/barbershop-appointments/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-appointments/internal/infra/repository"
	"github.com/BruksfildServices01/barbershop-appointments/internal/models"
)

const (
	msgServiceNotFound   = "Serviço não encontrado"
	msgServiceHasFuture  = "Não é possível excluir um serviço com agendamentos futuros"
	msgServiceHasHistory = "Não é possível excluir um serviço com histórico de agendamentos"
)

type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	useJSONFieldNames()
	return &ServiceHandler{db: db}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Duration    int      `json:"duration" binding:"required,min=1"`
	Price       *float64 `json:"price" binding:"required,gte=0"`
}

// UpdateServiceRequest changes only the fields present in the body.
type UpdateServiceRequest struct {
	Name        *string  `json:"name" binding:"omitempty,min=1"`
	Description *string  `json:"description"`
	Duration    *int     `json:"duration" binding:"omitempty,min=1"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
}

// --------- Handlers ---------
func (h *ServiceHandler) List(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.WithContext(c.Request.Context())
	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.
		Order("name ASC").
		Find(&services).Error; err != nil {

		_ = c.Error(err)
		httperr.Internal(c, "failed_to_list_services", "")
		return
	}

	httpresp.OK(c, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	service := models.Service{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Duration:    req.Duration,
		Price:       *req.Price,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&service).Error; err != nil {
		_ = c.Error(err)
		httperr.Internal(c, "failed_to_create_service", "")
		return
	}

	httpresp.Created(c, service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, msgInvalidID, "")
		return
	}

	var req UpdateServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Duration != nil {
		updates["duration"] = *req.Duration
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}

	var service models.Service
	err = h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&service, "id = ?", id).Error; err != nil {
			return err
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&service).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&service, "id = ?", id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, msgServiceNotFound, "")
			return
		}
		_ = c.Error(err)
		httperr.Internal(c, "failed_to_update_service", "")
		return
	}

	httpresp.OK(c, service)
}

// Delete refuses while the service still has appointments ahead.
func (h *ServiceHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, msgInvalidID, "")
		return
	}

	err = h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var service models.Service
		if err := tx.First(&service, "id = ?", id).Error; err != nil {
			return err
		}

		future, err := hasFutureAppointments(tx, "service_id", id)
		if err != nil {
			return err
		}
		if future {
			return errFutureAppointments
		}

		return tx.Delete(&service).Error
	})
	switch {
	case err == nil:
		httpresp.NoContent(c)
	case errors.Is(err, gorm.ErrRecordNotFound):
		httperr.NotFound(c, msgServiceNotFound, "")
	case errors.Is(err, errFutureAppointments):
		httperr.BadRequest(c, msgServiceHasFuture, "")
	case repository.IsForeignKeyViolation(err):
		httperr.BadRequest(c, msgServiceHasHistory, "")
	default:
		_ = c.Error(err)
		httperr.Internal(c, "failed_to_delete_service", "")
	}
}
