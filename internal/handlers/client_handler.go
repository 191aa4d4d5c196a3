package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/maximumcrm/salon-scheduler/internal/httperr"
	"github.com/maximumcrm/salon-scheduler/internal/httpresp"
	"github.com/maximumcrm/salon-scheduler/internal/models"
	"github.com/maximumcrm/salon-scheduler/internal/validators"
)

type ClientHandler struct {
	db *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{db: db}
}

type ClientRequest struct {
	FullName string `json:"full_name" binding:"required,max=100"`
	Phone    string `json:"phone" binding:"max=30"`
	Email    string `json:"email" binding:"omitempty,email,max=100"`
	Birthday string `json:"birthday"`
}

// ======================================================
// LIST / SEARCH
// ======================================================

func (h *ClientHandler) List(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.WithContext(c.Request.Context())

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(full_name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	var clients []models.Client
	if err := q.
		Order("full_name ASC").
		Find(&clients).Error; err != nil {
		httperr.Internal(c, "failed_to_list_clients", "Не удалось получить список клиентов.")
		return
	}

	httpresp.List(c, clients)
}

// ======================================================
// CREATE
// ======================================================

func (h *ClientHandler) Create(c *gin.Context) {
	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Некорректные данные клиента.")
		return
	}

	if req.Email != "" && !validators.IsEmailDomainValid(strings.ToLower(req.Email)) {
		httperr.BadRequest(c, "invalid_email_domain", "Домен e-mail не существует.")
		return
	}

	client := models.Client{
		FullName: strings.TrimSpace(req.FullName),
		Phone:    req.Phone,
		Email:    strings.ToLower(req.Email),
	}

	if req.Birthday != "" {
		bd, err := time.ParseInLocation("2006-01-02", req.Birthday, time.UTC)
		if err != nil {
			httperr.BadRequest(c, "invalid_birthday", "Некорректная дата рождения.")
			return
		}
		client.Birthday = &bd
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&client).Error; err != nil {
		httperr.Internal(c, "failed_to_create_client", "Не удалось создать клиента.")
		return
	}

	httpresp.Created(c, client)
}

// ======================================================
// UPDATE
// ======================================================

func (h *ClientHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Некорректный идентификатор клиента.")
		return
	}

	var client models.Client
	if err := h.db.WithContext(c.Request.Context()).First(&client, id).Error; err != nil {
		httperr.NotFound(c, "client_not_found", "Клиент не найден.")
		return
	}

	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Некорректные данные клиента.")
		return
	}

	client.FullName = strings.TrimSpace(req.FullName)
	client.Phone = req.Phone
	client.Email = strings.ToLower(req.Email)

	if req.Birthday != "" {
		bd, err := time.ParseInLocation("2006-01-02", req.Birthday, time.UTC)
		if err != nil {
			httperr.BadRequest(c, "invalid_birthday", "Некорректная дата рождения.")
			return
		}
		client.Birthday = &bd
	} else {
		client.Birthday = nil
	}

	if err := h.db.WithContext(c.Request.Context()).Save(&client).Error; err != nil {
		httperr.Internal(c, "failed_to_update_client", "Не удалось обновить клиента.")
		return
	}

	c.JSON(http.StatusOK, client)
}

// ======================================================
// DELETE (appointments cascade at the store level)
// ======================================================

func (h *ClientHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Некорректный идентификатор клиента.")
		return
	}

	res := h.db.WithContext(c.Request.Context()).Delete(&models.Client{}, id)
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_client", "Не удалось удалить клиента.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "client_not_found", "Клиент не найден.")
		return
	}

	c.Status(http.StatusNoContent)
}
