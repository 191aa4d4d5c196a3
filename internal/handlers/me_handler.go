package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maximumcrm/salon-scheduler/internal/accounts"
	"github.com/maximumcrm/salon-scheduler/internal/httperr"
	"github.com/maximumcrm/salon-scheduler/internal/middleware"
)

type MeHandler struct {
	accounts *accounts.Service
}

func NewMeHandler(accountsSvc *accounts.Service) *MeHandler {
	return &MeHandler{accounts: accountsSvc}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)

	identity, err := h.accounts.Lookup(c.Request.Context(), accountID)
	if err != nil {
		if httperr.IsBusiness(err, "account_not_found") {
			httperr.NotFound(c, "account_not_found", "Учётная запись не найдена.")
			return
		}
		httperr.Internal(c, "internal_error", "Внутренняя ошибка сервера.")
		return
	}

	c.JSON(http.StatusOK, identity)
}
