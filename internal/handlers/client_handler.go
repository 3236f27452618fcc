package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-appointments/internal/httperr"
	"github.com/BruksfildServices01/barbershop-appointments/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-appointments/internal/models"
)

type ClientHandler struct {
	db *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	useJSONFieldNames()
	return &ClientHandler{db: db}
}

type CreateClientRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"max=20"`
}

func (h *ClientHandler) Create(c *gin.Context) {
	var req CreateClientRequest
	if !bindJSON(c, &req) {
		return
	}

	client := models.Client{
		Name:  strings.TrimSpace(req.Name),
		Phone: strings.TrimSpace(req.Phone),
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&client).Error; err != nil {
		_ = c.Error(err)
		httperr.Internal(c, "failed_to_create_client", "")
		return
	}

	httpresp.Created(c, client)
}

// ======================================================
// LIST CLIENTS
// ======================================================
func (h *ClientHandler) List(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.WithContext(c.Request.Context())
	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR phone LIKE ?", like, like)
	}

	var clients []models.Client
	if err := q.
		Order("created_at DESC").
		Find(&clients).Error; err != nil {

		_ = c.Error(err)
		httperr.Internal(c, "failed_to_list_clients", "")
		return
	}

	httpresp.OK(c, clients)
}

// AddPoint awards one loyalty point outside of an appointment completion.
func (h *ClientHandler) AddPoint(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, msgInvalidID, "")
		return
	}

	db := h.db.WithContext(c.Request.Context())
	res := db.Model(&models.Client{}).
		Where("id = ?", id).
		Update("points", gorm.Expr("points + ?", 1))
	if res.Error != nil {
		_ = c.Error(res.Error)
		httperr.Internal(c, "failed_to_update_points", "")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "Cliente não encontrado", "")
		return
	}

	var client models.Client
	if err := db.First(&client, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "Cliente não encontrado", "")
			return
		}
		_ = c.Error(err)
		httperr.Internal(c, "failed_to_get_client", "")
		return
	}

	httpresp.OK(c, client)
}
