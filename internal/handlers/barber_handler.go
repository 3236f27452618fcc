package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/barbershop-appointments/internal/httperr"
	"github.com/BruksfildServices01/barbershop-appointments/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-appointments/internal/infra/repository"
	"github.com/BruksfildServices01/barbershop-appointments/internal/models"
)

const (
	msgBarberNotFound   = "Barbeiro não encontrado"
	msgBarberHasFuture  = "Não é possível excluir um barbeiro com agendamentos futuros"
	msgBarberHasHistory = "Não é possível excluir um barbeiro com histórico de agendamentos"
)

var errEmailTaken = errors.New("email already registered")

// BarberHandler manages barber profiles. Credentials are issued by the auth
// service, so only the user profile is stored here.
type BarberHandler struct {
	db *gorm.DB
}

func NewBarberHandler(db *gorm.DB) *BarberHandler {
	useJSONFieldNames()
	return &BarberHandler{db: db}
}

type CreateBarberRequest struct {
	Name        string   `json:"name" binding:"required"`
	Email       string   `json:"email" binding:"required,email"`
	Specialties []string `json:"specialties"`
}

// UpdateBarberRequest replaces the profile. Omitted specialties are cleared
// and an omitted available flag is left as is.
type UpdateBarberRequest struct {
	Name        string   `json:"name" binding:"required"`
	Email       string   `json:"email" binding:"required,email"`
	Specialties []string `json:"specialties"`
	Available   *bool    `json:"available"`
}

func (h *BarberHandler) Create(c *gin.Context) {
	var req CreateBarberRequest
	if !bindJSON(c, &req) {
		return
	}

	specialties := req.Specialties
	if specialties == nil {
		specialties = []string{}
	}

	barber := models.Barber{
		Specialties: specialties,
		Available:   true,
	}

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).
			Where("LOWER(email) = ?", strings.ToLower(req.Email)).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errEmailTaken
		}

		user := models.User{
			Name:  strings.TrimSpace(req.Name),
			Email: strings.ToLower(strings.TrimSpace(req.Email)),
			Role:  models.RoleBarber,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		barber.UserID = user.ID
		if err := tx.Omit(clause.Associations).Create(&barber).Error; err != nil {
			return err
		}
		barber.User = user
		return nil
	})
	if err != nil {
		if errors.Is(err, errEmailTaken) || repository.IsUniqueViolation(err) {
			httperr.BadRequest(c, "Email já cadastrado", "")
			return
		}
		_ = c.Error(err)
		httperr.Internal(c, "failed_to_create_barber", "")
		return
	}

	httpresp.Created(c, barber)
}

func (h *BarberHandler) List(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context()).Preload("User")

	switch c.Query("available") {
	case "true":
		q = q.Where("available = ?", true)
	case "false":
		q = q.Where("available = ?", false)
	}

	var barbers []models.Barber
	if err := q.Order("created_at ASC").Find(&barbers).Error; err != nil {
		_ = c.Error(err)
		httperr.Internal(c, "failed_to_list_barbers", "")
		return
	}

	httpresp.OK(c, barbers)
}

func (h *BarberHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, msgInvalidID, "")
		return
	}

	var req UpdateBarberRequest
	if !bindJSON(c, &req) {
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	specialties := req.Specialties
	if specialties == nil {
		specialties = []string{}
	}

	var barber models.Barber
	err = h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&barber, "id = ?", id).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.User{}).
			Where("LOWER(email) = ? AND id <> ?", email, barber.UserID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errEmailTaken
		}

		if err := tx.Model(&models.User{}).
			Where("id = ?", barber.UserID).
			Updates(map[string]any{"name": strings.TrimSpace(req.Name), "email": email}).Error; err != nil {
			return err
		}

		updates := map[string]any{"specialties": datatypes.JSONSlice[string](specialties)}
		if req.Available != nil {
			updates["available"] = *req.Available
		}
		if err := tx.Model(&barber).Omit(clause.Associations).Updates(updates).Error; err != nil {
			return err
		}

		return tx.Preload("User").First(&barber, "id = ?", id).Error
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			httperr.NotFound(c, msgBarberNotFound, "")
		case errors.Is(err, errEmailTaken) || repository.IsUniqueViolation(err):
			httperr.BadRequest(c, "Email já está em uso", "")
		default:
			_ = c.Error(err)
			httperr.Internal(c, "failed_to_update_barber", "")
		}
		return
	}

	httpresp.OK(c, barber)
}

// Delete removes the barber and its user profile unless appointments are
// still scheduled ahead.
func (h *BarberHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, msgInvalidID, "")
		return
	}

	err = h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var barber models.Barber
		if err := tx.First(&barber, "id = ?", id).Error; err != nil {
			return err
		}

		future, err := hasFutureAppointments(tx, "barber_id", id)
		if err != nil {
			return err
		}
		if future {
			return errFutureAppointments
		}

		if err := tx.Delete(&barber).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, "id = ?", barber.UserID).Error
	})
	switch {
	case err == nil:
		httpresp.NoContent(c)
	case errors.Is(err, gorm.ErrRecordNotFound):
		httperr.NotFound(c, msgBarberNotFound, "")
	case errors.Is(err, errFutureAppointments):
		httperr.BadRequest(c, msgBarberHasFuture, "")
	case repository.IsForeignKeyViolation(err):
		httperr.BadRequest(c, msgBarberHasHistory, "")
	default:
		_ = c.Error(err)
		httperr.Internal(c, "failed_to_delete_barber", "")
	}
}
