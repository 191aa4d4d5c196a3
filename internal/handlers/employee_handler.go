package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/maximumcrm/salon-scheduler/internal/httperr"
	"github.com/maximumcrm/salon-scheduler/internal/httpresp"
	"github.com/maximumcrm/salon-scheduler/internal/models"
)

type EmployeeHandler struct {
	db *gorm.DB
}

func NewEmployeeHandler(db *gorm.DB) *EmployeeHandler {
	return &EmployeeHandler{db: db}
}

type EmployeeRequest struct {
	FullName  string `json:"full_name" binding:"required,max=100"`
	Specialty string `json:"specialty" binding:"max=100"`
	Phone     string `json:"phone" binding:"max=30"`
	Email     string `json:"email" binding:"omitempty,email,max=100"`
	IsActive  *bool  `json:"is_active"`
}

// ======================================================
// LIST
// ======================================================

func (h *EmployeeHandler) List(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context())

	if c.Query("active") == "true" {
		q = q.Where("is_active = ?", true)
	}

	var employees []models.Employee
	if err := q.
		Order("full_name ASC").
		Find(&employees).Error; err != nil {
		httperr.Internal(c, "failed_to_list_employees", "Не удалось получить список сотрудников.")
		return
	}

	httpresp.List(c, employees)
}

// ======================================================
// CREATE
// ======================================================

func (h *EmployeeHandler) Create(c *gin.Context) {
	var req EmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Некорректные данные сотрудника.")
		return
	}

	emp := models.Employee{
		FullName:  strings.TrimSpace(req.FullName),
		Specialty: req.Specialty,
		Phone:     req.Phone,
		Email:     strings.ToLower(req.Email),
		IsActive:  true,
	}
	if req.IsActive != nil {
		emp.IsActive = *req.IsActive
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&emp).Error; err != nil {
		httperr.Internal(c, "failed_to_create_employee", "Не удалось создать сотрудника.")
		return
	}

	httpresp.Created(c, emp)
}

// ======================================================
// UPDATE
// ======================================================

func (h *EmployeeHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Некорректный идентификатор сотрудника.")
		return
	}

	var emp models.Employee
	if err := h.db.WithContext(c.Request.Context()).First(&emp, id).Error; err != nil {
		httperr.NotFound(c, "employee_not_found", "Сотрудник не найден.")
		return
	}

	var req EmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Некорректные данные сотрудника.")
		return
	}

	emp.FullName = strings.TrimSpace(req.FullName)
	emp.Specialty = req.Specialty
	emp.Phone = req.Phone
	emp.Email = strings.ToLower(req.Email)
	if req.IsActive != nil {
		emp.IsActive = *req.IsActive
	}

	if err := h.db.WithContext(c.Request.Context()).Save(&emp).Error; err != nil {
		httperr.Internal(c, "failed_to_update_employee", "Не удалось обновить сотрудника.")
		return
	}

	c.JSON(http.StatusOK, emp)
}

// ======================================================
// DELETE (restricted while appointments reference the employee)
// ======================================================

func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Некорректный идентификатор сотрудника.")
		return
	}

	res := h.db.WithContext(c.Request.Context()).Delete(&models.Employee{}, id)
	if res.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(res.Error, &pgErr) && pgErr.Code == "23503" {
			httperr.Conflict(c, "employee_has_appointments",
				"Нельзя удалить сотрудника, у которого есть записи.")
			return
		}
		httperr.Internal(c, "failed_to_delete_employee", "Не удалось удалить сотрудника.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "employee_not_found", "Сотрудник не найден.")
		return
	}

	c.Status(http.StatusNoContent)
}
