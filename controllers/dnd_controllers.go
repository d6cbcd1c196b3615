package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/housekeeping-app/feed"
	"github.com/yeremiapane/housekeeping-app/models"
	"github.com/yeremiapane/housekeeping-app/services"
	"github.com/yeremiapane/housekeeping-app/store"
	"github.com/yeremiapane/housekeeping-app/utils"
)

type DNDController struct {
	DB    *gorm.DB
	Store *store.Store
	Push  *services.PushService
}

func NewDNDController(db *gorm.DB, push *services.PushService) *DNDController {
	return &DNDController{DB: db, Store: store.New(db), Push: push}
}

// SetDND -> toggles Do-Not-Disturb for a room.
func (dc *DNDController) SetDND(c *gin.Context) {
	var body struct {
		RoomNumber string `json:"roomNumber" binding:"required"`
		DNDStatus  bool   `json:"dndStatus"`
		Username   string `json:"username"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	actor := actorFrom(c, body.Username)
	if actor == "" {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user not found"))
		return
	}

	dnd, err := dc.Store.SetDND(body.RoomNumber, body.DNDStatus, actor, utils.HotelNow())
	if err != nil {
		respondStoreError(c, err)
		return
	}

	feed.EmitDNDUpdate(dnd, models.JSONMap{"actor": actor})
	if dc.Push != nil {
		title := "Do Not Disturb OFF"
		if dnd.DNDStatus {
			title = "Do Not Disturb ON"
		}
		go dc.Push.SendToAll(services.PushPayload{
			Title: title,
			Body:  fmt.Sprintf("Room %s • by %s", dnd.RoomNumber, actor),
			Tag:   fmt.Sprintf("room-%s-dnd", dnd.RoomNumber),
			Data:  map[string]interface{}{"roomNumber": dnd.RoomNumber, "dndStatus": dnd.DNDStatus},
		})
	}

	mode := "disabled"
	if dnd.DNDStatus {
		mode = "enabled"
	}
	utils.InfoLogger.Printf("DND %s for room %s by %s", mode, dnd.RoomNumber, actor)
	utils.RespondJSON(c, http.StatusOK, fmt.Sprintf("DND mode %s for room %s", mode, dnd.RoomNumber), dnd)
}

// GetDND -> all per-room DND states.
func (dc *DNDController) GetDND(c *gin.Context) {
	var dnds []models.RoomDND
	if err := dc.DB.Find(&dnds).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, dnds)
}
