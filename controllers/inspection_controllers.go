package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/housekeeping-app/feed"
	"github.com/yeremiapane/housekeeping-app/models"
	"github.com/yeremiapane/housekeeping-app/services"
	"github.com/yeremiapane/housekeeping-app/store"
	"github.com/yeremiapane/housekeeping-app/utils"
)

type InspectionController struct {
	DB    *gorm.DB
	Store *store.Store
	Push  *services.PushService
}

func NewInspectionController(db *gorm.DB, push *services.PushService) *InspectionController {
	return &InspectionController{DB: db, Store: store.New(db), Push: push}
}

// UpdateItem -> sets one checklist item on today's inspection record.
func (ic *InspectionController) UpdateItem(c *gin.Context) {
	var body struct {
		RoomNumber string `json:"roomNumber" binding:"required"`
		Item       string `json:"item" binding:"required"`
		Status     string `json:"status" binding:"required"`
		Username   string `json:"username"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	actor := actorFrom(c, body.Username)

	log, err := ic.Store.SetInspectionItem(body.RoomNumber, utils.HotelNow(), body.Item, body.Status, actor)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	feed.EmitInspectionUpdate(log.RoomNumber, body.Item, body.Status, actor, nil)

	utils.InfoLogger.Printf("Inspection item %q set to %q for room %s by %s", body.Item, body.Status, log.RoomNumber, actor)
	utils.RespondJSON(c, http.StatusOK, "Inspection item updated", log)
}

// Submit -> replaces today's checklist for a room wholesale and records the
// overall score.
func (ic *InspectionController) Submit(c *gin.Context) {
	var body struct {
		RoomNumber   string            `json:"roomNumber" binding:"required"`
		Results      map[string]string `json:"results" binding:"required"`
		OverallScore *float64          `json:"overallScore"`
		Username     string            `json:"username"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	actor := actorFrom(c, body.Username)

	log, err := ic.Store.SubmitInspection(body.RoomNumber, utils.HotelNow(), body.Results, body.OverallScore, actor)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	feed.EmitInspectionSubmitted(log.RoomNumber, log.OverallScore, actor, nil)
	if ic.Push != nil {
		go ic.Push.SendToAll(services.PushPayload{
			Title: "Inspection Submitted",
			Body:  "Room " + log.RoomNumber + " inspected by " + actor,
			Tag:   "room-" + log.RoomNumber + "-inspection",
			Data:  map[string]interface{}{"roomNumber": log.RoomNumber},
		})
	}

	utils.InfoLogger.Printf("Inspection submitted for room %s by %s", log.RoomNumber, actor)
	utils.RespondJSON(c, http.StatusOK, "Inspection submitted", log)
}

// GetLogs -> inspection records for one day (?date=2025-08-29, default
// today), every room included.
func (ic *InspectionController) GetLogs(c *gin.Context) {
	day := utils.HotelNow()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, utils.HotelLocation())
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		day = parsed
	}

	var logs []models.InspectionLog
	if err := ic.DB.Where("date = ?", utils.StartOfDay(day)).Find(&logs).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}
