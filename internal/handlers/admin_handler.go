package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/maximumcrm/salon-scheduler/internal/accounts"
	"github.com/maximumcrm/salon-scheduler/internal/audit"
	"github.com/maximumcrm/salon-scheduler/internal/httperr"
	"github.com/maximumcrm/salon-scheduler/internal/httpresp"
	"github.com/maximumcrm/salon-scheduler/internal/middleware"
	"github.com/maximumcrm/salon-scheduler/internal/validators"
)

// AdminHandler manages accounts and their roles. Routes behind it
// require the admin role.
type AdminHandler struct {
	accounts *accounts.Service
	audit    *audit.Dispatcher
}

func NewAdminHandler(accountsSvc *accounts.Service, auditD *audit.Dispatcher) *AdminHandler {
	return &AdminHandler{accounts: accountsSvc, audit: auditD}
}

type CreateUserRequest struct {
	Email    string   `json:"email" binding:"required,email"`
	FullName string   `json:"full_name" binding:"required,max=100"`
	Password string   `json:"password" binding:"required"`
	Roles    []string `json:"roles"`
}

type UpdateUserRequest struct {
	Roles    []string `json:"roles"`
	IsActive *bool    `json:"is_active"`
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	accs, err := h.accounts.ListAccounts(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_list_users", "Не удалось получить пользователей.")
		return
	}
	c.JSON(http.StatusOK, accs)
}

func (h *AdminHandler) CreateUser(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextAccountID).(uint)

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Некорректные данные пользователя.")
		return
	}

	if !validators.IsEmailDomainValid(strings.ToLower(req.Email)) {
		httperr.BadRequest(c, "invalid_email_domain", "Домен e-mail не существует.")
		return
	}

	acc, err := h.accounts.CreateAccount(c.Request.Context(), accounts.CreateAccountInput{
		Email:    req.Email,
		FullName: req.FullName,
		Password: req.Password,
		Roles:    req.Roles,
	})
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "password_too_short"),
			httperr.IsBusiness(err, "password_too_weak"):
			httperr.BadRequest(c, "weak_password",
				"Пароль: минимум 6 символов, цифра, строчная и заглавная буквы.")
		case httperr.IsBusiness(err, "email_already_exists"):
			httperr.Conflict(c, "email_already_exists", "Такой e-mail уже зарегистрирован.")
		case httperr.IsBusiness(err, "role_not_found"):
			httperr.BadRequest(c, "role_not_found", "Указана несуществующая роль.")
		default:
			httperr.Internal(c, "failed_to_create_user", "Не удалось создать пользователя.")
		}
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorID:  &actorID,
		Action:   "user_created",
		Entity:   "account",
		EntityID: &acc.ID,
	})

	httpresp.Created(c, acc)
}

func (h *AdminHandler) UpdateUser(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextAccountID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Некорректный идентификатор пользователя.")
		return
	}
	userID := uint(id)

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Некорректные данные запроса.")
		return
	}

	if req.Roles != nil {
		if _, err := h.accounts.SetRoles(c.Request.Context(), userID, req.Roles); err != nil {
			if httperr.IsBusiness(err, "account_not_found") {
				httperr.NotFound(c, "user_not_found", "Пользователь не найден.")
				return
			}
			if httperr.IsBusiness(err, "role_not_found") {
				httperr.BadRequest(c, "role_not_found", "Указана несуществующая роль.")
				return
			}
			httperr.Internal(c, "failed_to_update_user", "Не удалось обновить пользователя.")
			return
		}
	}

	if req.IsActive != nil {
		if err := h.accounts.SetActive(c.Request.Context(), userID, *req.IsActive); err != nil {
			if httperr.IsBusiness(err, "account_not_found") {
				httperr.NotFound(c, "user_not_found", "Пользователь не найден.")
				return
			}
			httperr.Internal(c, "failed_to_update_user", "Не удалось обновить пользователя.")
			return
		}
	}

	h.audit.Dispatch(audit.Event{
		ActorID:  &actorID,
		Action:   "user_updated",
		Entity:   "account",
		EntityID: &userID,
	})

	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextAccountID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Некорректный идентификатор пользователя.")
		return
	}
	userID := uint(id)

	if userID == actorID {
		httperr.BadRequest(c, "cannot_delete_self", "Нельзя удалить собственную учётную запись.")
		return
	}

	if err := h.accounts.DeleteAccount(c.Request.Context(), userID); err != nil {
		if httperr.IsBusiness(err, "account_not_found") {
			httperr.NotFound(c, "user_not_found", "Пользователь не найден.")
			return
		}
		httperr.Internal(c, "failed_to_delete_user", "Не удалось удалить пользователя.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorID:  &actorID,
		Action:   "user_deleted",
		Entity:   "account",
		EntityID: &userID,
	})

	c.Status(http.StatusNoContent)
}
