package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/housekeeping-app/services"
	"github.com/yeremiapane/housekeeping-app/utils"
)

type TelegramController struct {
	Telegram *services.TelegramService
}

func NewTelegramController(telegram *services.TelegramService) *TelegramController {
	return &TelegramController{Telegram: telegram}
}

// Send -> relays one plain-text message to the configured chat.
func (tc *TelegramController) Send(c *gin.Context) {
	if tc.Telegram == nil || !tc.Telegram.Enabled() {
		utils.RespondError(c, http.StatusServiceUnavailable, errors.New("telegram relay is not configured"))
		return
	}

	var body struct {
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := tc.Telegram.SendMessage(body.Message); err != nil {
		utils.RespondError(c, http.StatusBadGateway, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Message sent", nil)
}
