package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"

	"github.com/yeremiapane/housekeeping-app/feed"
	"github.com/yeremiapane/housekeeping-app/rooms"
	"github.com/yeremiapane/housekeeping-app/store"
	"github.com/yeremiapane/housekeeping-app/utils"
)

// FeedController owns the websocket endpoint and the event history API.
type FeedController struct {
	DB       *gorm.DB
	Store    *store.Store
	upgrader websocket.Upgrader
}

func NewFeedController(db *gorm.DB) *FeedController {
	return &FeedController{
		DB:    db,
		Store: store.New(db),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origin is enforced by the CORS middleware in front of us.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// HandleWebSocket upgrades the connection and joins it to the live feed.
// Every client gets every event; the initial snapshot is sent on request so
// the client controls when it is ready to consume it.
func (fc *FeedController) HandleWebSocket(c *gin.Context) {
	conn, err := fc.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Printf("Websocket upgrade failed: %v", err)
		return
	}

	client := feed.NewClient(conn, actorFrom(c, c.Query("username")))
	feed.RegisterClient(client)

	go client.WritePump()
	client.ReadLoop(fc.sendInitialData)
}

// sendInitialData answers a client's requestInitialData with the full
// current-day snapshot, or an error notice if assembly fails.
func (fc *FeedController) sendInitialData(client *feed.Client) {
	snap, err := fc.Store.BuildSnapshot(utils.HotelNow())
	if err != nil {
		utils.ErrorLogger.Printf("Snapshot build failed (user=%s): %v", client.Username(), err)
		client.SendEvent(feed.EventInitialDataError, map[string]interface{}{
			"message": "failed to load initial data",
		})
		return
	}
	client.SendEvent(feed.EventInitialData, snap)
}

// GetEvents -> persisted feed events, newest first. Window is either an
// explicit ?start=&end= RFC3339 pair, a ?date=2006-01-02 day, or today.
func (fc *FeedController) GetEvents(c *gin.Context) {
	start, end := utils.DayRange(utils.HotelNow())

	if rawStart, rawEnd := c.Query("start"), c.Query("end"); rawStart != "" || rawEnd != "" {
		parsedStart, err := time.Parse(time.RFC3339, rawStart)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid start: %v", err))
			return
		}
		parsedEnd, err := time.Parse(time.RFC3339, rawEnd)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid end: %v", err))
			return
		}
		start, end = parsedStart, parsedEnd
	} else if raw := c.Query("date"); raw != "" {
		day, err := time.ParseInLocation("2006-01-02", raw, utils.HotelLocation())
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		start, end = utils.DayRange(day)
	}

	events, err := feed.QueryWindow(start, end)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// GetRoomEvents -> a room's recent persisted events (?limit=, capped).
func (fc *FeedController) GetRoomEvents(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	events, err := feed.QueryByRoom(rooms.Pad(c.Param("room")), limit)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, events)
}
