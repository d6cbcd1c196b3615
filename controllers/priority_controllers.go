package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/housekeeping-app/feed"
	"github.com/yeremiapane/housekeeping-app/models"
	"github.com/yeremiapane/housekeeping-app/store"
	"github.com/yeremiapane/housekeeping-app/utils"
)

type PriorityController struct {
	DB    *gorm.DB
	Store *store.Store
}

func NewPriorityController(db *gorm.DB) *PriorityController {
	return &PriorityController{DB: db, Store: store.New(db)}
}

// GetPriorities -> every room's current priority tag.
func (pc *PriorityController) GetPriorities(c *gin.Context) {
	var priorities []models.RoomPriority
	if err := pc.DB.Find(&priorities).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	formatted := make([]gin.H, 0, len(priorities))
	for _, p := range priorities {
		formatted = append(formatted, gin.H{
			"roomNumber":        p.RoomNumber,
			"priority":          p.Priority,
			"allowCleaningTime": p.AllowCleaningTime,
		})
	}
	c.JSON(http.StatusOK, formatted)
}

// SetPriority -> upserts a room's priority tag, last write wins.
func (pc *PriorityController) SetPriority(c *gin.Context) {
	var body struct {
		RoomNumber        string  `json:"roomNumber" binding:"required"`
		Priority          string  `json:"priority" binding:"required"`
		AllowCleaningTime *string `json:"allowCleaningTime"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	p, err := pc.Store.SetPriority(body.RoomNumber, body.Priority, body.AllowCleaningTime)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	feed.EmitPriorityUpdate(p.RoomNumber, p.Priority, p.AllowCleaningTime, models.JSONMap{"actor": actorFrom(c, "")})

	utils.InfoLogger.Printf("Priority for room %s set to %s", p.RoomNumber, p.Priority)
	utils.RespondJSON(c, http.StatusOK, "Priority updated successfully", p)
}
