package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/housekeeping-app/feed"
	"github.com/yeremiapane/housekeeping-app/models"
	"github.com/yeremiapane/housekeeping-app/rooms"
	"github.com/yeremiapane/housekeeping-app/services"
	"github.com/yeremiapane/housekeeping-app/store"
	"github.com/yeremiapane/housekeeping-app/utils"
)

// LogController drives the cleaning lifecycle: every successful transition
// mutates the store, mirrors an event into the live feed log, broadcasts,
// and (for the noisy ones) fires a best-effort web push.
type LogController struct {
	DB    *gorm.DB
	Store *store.Store
	Push  *services.PushService
}

func NewLogController(db *gorm.DB, push *services.PushService) *LogController {
	return &LogController{DB: db, Store: store.New(db), Push: push}
}

// GetRoomStatus -> current composite status per room, newest record wins.
func (lc *LogController) GetRoomStatus(c *gin.Context) {
	var logs []models.CleaningLog
	if err := lc.DB.Order("date ASC").Find(&logs).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	status := make(map[string]string)
	for i := range logs {
		status[logs[i].RoomNumber] = logs[i].DeriveStatus()
	}
	c.JSON(http.StatusOK, status)
}

// StartCleaning -> opens today's record for a room.
func (lc *LogController) StartCleaning(c *gin.Context) {
	var body struct {
		RoomNumber string `json:"roomNumber" binding:"required"`
		Username   string `json:"username"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	actor := actorFrom(c, body.Username)

	log, err := lc.Store.StartCleaning(body.RoomNumber, actor, utils.HotelNow())
	if err != nil {
		respondStoreError(c, err)
		return
	}

	feed.EmitRoomUpdate(log.RoomNumber, models.StatusInProgress, models.StatusAvailable, models.JSONMap{"actor": actor})
	if lc.Push != nil {
		go lc.Push.SendToAll(services.PushPayload{
			Title: "Cleaning Started",
			Body:  fmt.Sprintf("Room %s started by %s", log.RoomNumber, actor),
			Tag:   fmt.Sprintf("room-%s-started", log.RoomNumber),
			Data:  map[string]interface{}{"roomNumber": log.RoomNumber},
		})
	}

	utils.InfoLogger.Printf("Room %s started by %s", log.RoomNumber, actor)
	utils.RespondJSON(c, http.StatusCreated, fmt.Sprintf("Room %s started by %s", log.RoomNumber, actor), log)
}

// FinishCleaning -> closes the room's open record and reports the elapsed
// cleaning duration when the start time is known.
func (lc *LogController) FinishCleaning(c *gin.Context) {
	var body struct {
		RoomNumber string `json:"roomNumber" binding:"required"`
		Username   string `json:"username"`
		FinishTime string `json:"finishTime"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	actor := actorFrom(c, body.Username)

	finish := utils.HotelNow()
	if body.FinishTime != "" {
		parsed, err := time.Parse(time.RFC3339, body.FinishTime)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid finishTime: %v", err))
			return
		}
		finish = parsed.In(utils.HotelLocation())
	}

	log, err := lc.Store.FinishCleaning(body.RoomNumber, actor, finish)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	previousStatus := models.StatusAvailable
	if log.StartTime != nil {
		previousStatus = models.StatusInProgress
	}

	var durationText string
	if d := log.Duration(); d != nil {
		durationText = fmt.Sprintf("%d minutes", int(d.Minutes()))
	}

	feed.EmitRoomUpdate(log.RoomNumber, models.StatusFinished, previousStatus, models.JSONMap{"actor": actor})
	if lc.Push != nil {
		pushBody := fmt.Sprintf("Room %s finished by %s", log.RoomNumber, actor)
		if durationText != "" {
			pushBody = fmt.Sprintf("%s (%s)", pushBody, durationText)
		}
		go lc.Push.SendToAll(services.PushPayload{
			Title: "Cleaning Finished",
			Body:  pushBody,
			Tag:   fmt.Sprintf("room-%s-finished", log.RoomNumber),
			Data:  map[string]interface{}{"roomNumber": log.RoomNumber},
		})
	}

	utils.InfoLogger.Printf("Room %s finished by %s", log.RoomNumber, actor)
	utils.RespondJSON(c, http.StatusOK, fmt.Sprintf("Room %s finished by %s", log.RoomNumber, actor), gin.H{
		"log":      log,
		"duration": durationText,
	})
}

// CheckRoom -> supervisor confirms a finished room.
func (lc *LogController) CheckRoom(c *gin.Context) {
	var body struct {
		RoomNumber string `json:"roomNumber" binding:"required"`
		Username   string `json:"username"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	actor := actorFrom(c, body.Username)

	log, err := lc.Store.CheckRoom(body.RoomNumber, actor, utils.HotelNow())
	if err != nil {
		respondStoreError(c, err)
		return
	}

	feed.EmitRoomChecked(log.RoomNumber, actor, *log.CheckedTime, models.JSONMap{"actor": actor})

	utils.InfoLogger.Printf("Room %s checked by %s", log.RoomNumber, actor)
	utils.RespondJSON(c, http.StatusOK, fmt.Sprintf("Room %s checked by %s", log.RoomNumber, actor), log)
}

// ResetCleaning -> clears a single room back to "available". DND for the
// room is left as-is.
func (lc *LogController) ResetCleaning(c *gin.Context) {
	var body struct {
		RoomNumber string `json:"roomNumber" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	log, err := lc.Store.ResetCleaning(body.RoomNumber)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	feed.EmitResetCleaning(log.RoomNumber, nil)

	utils.InfoLogger.Printf("Cleaning status reset for room %s", log.RoomNumber)
	utils.RespondJSON(c, http.StatusOK, fmt.Sprintf("Cleaning status reset for room %s", log.RoomNumber), log)
}

// GetLogs -> cleaning records filtered by status and date window, one row
// per room (the newest), with default rows synthesized for untouched rooms.
func (lc *LogController) GetLogs(c *gin.Context) {
	filterStatus := c.Query("status")
	dateFilter := c.Query("dateFilter")

	now := utils.HotelNow()
	var startDate, endDate *time.Time

	switch dateFilter {
	case "today":
		s, e := utils.DayRange(now)
		startDate, endDate = &s, &e
	case "yesterday":
		s, e := utils.DayRange(now.AddDate(0, 0, -1))
		startDate, endDate = &s, &e
	case "this_week":
		s := utils.StartOfDay(now)
		for s.Weekday() != time.Sunday {
			s = s.AddDate(0, 0, -1)
		}
		e := s.AddDate(0, 0, 7)
		startDate, endDate = &s, &e
	case "this_month":
		local := now.In(utils.HotelLocation())
		s := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, utils.HotelLocation())
		e := s.AddDate(0, 1, 0)
		startDate, endDate = &s, &e
	}

	query := lc.DB.Order("date DESC, id DESC")
	if startDate != nil {
		query = query.Where("date >= ? AND date < ?", *startDate, *endDate)
	}

	var logs []models.CleaningLog
	if err := query.Find(&logs).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	// Keep only the newest record per room so filters reflect current state.
	latest := make(map[string]models.CleaningLog, len(logs))
	for _, log := range logs {
		if _, ok := latest[log.RoomNumber]; !ok {
			latest[log.RoomNumber] = log
		}
	}

	allRooms := make([]models.CleaningLog, 0, len(rooms.All()))
	for _, room := range rooms.All() {
		if log, ok := latest[room]; ok {
			allRooms = append(allRooms, log)
			continue
		}
		allRooms = append(allRooms, models.CleaningLog{
			RoomNumber: room,
			Status:     models.StatusAvailable,
		})
	}

	if filterStatus != "" && filterStatus != "all" {
		filtered := allRooms[:0]
		for _, log := range allRooms {
			if log.Status == filterStatus {
				filtered = append(filtered, log)
			}
		}
		allRooms = filtered
	}

	c.JSON(http.StatusOK, allRooms)
}

// ClearLogs -> wipes all cleaning/inspection records and resets DND and
// priorities, atomically. Broadcasts fire only after the commit.
func (lc *LogController) ClearLogs(c *gin.Context) {
	if err := lc.Store.ClearAll(); err != nil {
		utils.ErrorLogger.Printf("Bulk clear failed, rolled back: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("logs reset failed"))
		return
	}

	actor := actorFrom(c, "")
	meta := models.JSONMap{"actor": actor}

	feed.EmitSystem(feed.EventClearLogs, map[string]interface{}{}, meta)
	feed.EmitSystem(feed.EventDNDUpdate, map[string]interface{}{
		"roomNumber": "all",
		"status":     models.StatusAvailable,
	}, meta)
	feed.EmitSystem(feed.EventPriorityUpdate, map[string]interface{}{
		"roomNumber": "all",
		"priority":   models.DefaultPriority,
	}, meta)
	feed.EmitSystem(feed.EventResetCheckedRooms, map[string]interface{}{}, meta)
	feed.EmitSystem(feed.EventInspectionLogsCleared, map[string]interface{}{}, meta)
	for _, room := range rooms.All() {
		feed.EmitResetCleaning(room, meta)
	}

	utils.InfoLogger.Printf("All logs, DND, priorities and inspections cleared (by %s)", actor)
	utils.RespondJSON(c, http.StatusOK, "All logs, DND, priorities, checked statuses, and inspection logs cleared successfully", nil)
}
