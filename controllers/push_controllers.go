package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/housekeeping-app/services"
	"github.com/yeremiapane/housekeeping-app/utils"
)

type PushController struct {
	Push *services.PushService
}

func NewPushController(push *services.PushService) *PushController {
	return &PushController{Push: push}
}

// PublicKey -> the VAPID public key the browser subscribes with.
func (pc *PushController) PublicKey(c *gin.Context) {
	if pc.Push == nil || !pc.Push.Enabled() {
		utils.RespondError(c, http.StatusServiceUnavailable, errors.New("web push is not configured"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"publicKey": pc.Push.PublicKey()})
}

// Subscribe -> stores or refreshes one browser subscription.
func (pc *PushController) Subscribe(c *gin.Context) {
	if pc.Push == nil || !pc.Push.Enabled() {
		utils.RespondError(c, http.StatusServiceUnavailable, errors.New("web push is not configured"))
		return
	}

	var body struct {
		Endpoint string `json:"endpoint" binding:"required"`
		Keys     struct {
			P256dh string `json:"p256dh" binding:"required"`
			Auth   string `json:"auth" binding:"required"`
		} `json:"keys" binding:"required"`
		Username *string `json:"username"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := pc.Push.Subscribe(body.Endpoint, body.Keys.P256dh, body.Keys.Auth, body.Username); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Subscription stored", nil)
}
