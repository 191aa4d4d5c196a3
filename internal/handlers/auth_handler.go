package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/maximumcrm/salon-scheduler/internal/accounts"
	"github.com/maximumcrm/salon-scheduler/internal/config"
	"github.com/maximumcrm/salon-scheduler/internal/httperr"
	"github.com/maximumcrm/salon-scheduler/internal/models"
)

type AuthHandler struct {
	accounts *accounts.Service
	config   *config.Config
}

func NewAuthHandler(accountsSvc *accounts.Service, cfg *config.Config) *AuthHandler {
	return &AuthHandler{accounts: accountsSvc, config: cfg}
}

// --------- Requests ---------

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Некорректные данные запроса.")
		return
	}

	acc, err := h.accounts.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if httperr.IsBusiness(err, "invalid_credentials") || httperr.IsBusiness(err, "account_disabled") {
			httperr.Unauthorized(c, "invalid_credentials", "Неверный e-mail или пароль.")
			return
		}
		httperr.Internal(c, "internal_error", "Внутренняя ошибка сервера.")
		return
	}

	token, err := h.generateToken(acc)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Не удалось создать токен.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":        acc.ID,
			"full_name": acc.FullName,
			"email":     acc.Email,
			"roles":     roleNames(acc.Roles),
		},
		"token": token,
	})
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(acc *models.Account) (string, error) {
	claims := jwt.MapClaims{
		"sub":   acc.ID,
		"roles": roleNames(acc.Roles),
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
		"iat":   time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}

func roleNames(roles []models.Role) []string {
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, r.Name)
	}
	return names
}
