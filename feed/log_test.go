package feed

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/housekeeping-app/models"
	"github.com/yeremiapane/housekeeping-app/utils"
)

func setupFeedDB(t *testing.T, persistEvents bool) *gorm.DB {
	t.Helper()
	utils.InitLogger()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(&models.LiveFeedEvent{}))

	Init(database, persistEvents)
	t.Cleanup(func() { Init(nil, false) })
	return database
}

func TestEmitPersistsMirrorRow(t *testing.T) {
	database := setupFeedDB(t, true)

	EmitRoomUpdate("101", models.StatusInProgress, models.StatusAvailable, models.JSONMap{"actor": "dara"})

	var rows []models.LiveFeedEvent
	require.NoError(t, database.Find(&rows).Error)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, models.FeedTypeRoomUpdate, row.Type)
	require.NotNil(t, row.RoomNumber)
	assert.Equal(t, "101", *row.RoomNumber)
	assert.Equal(t, "roomUpdate", row.Payload["event"])
	assert.Equal(t, "in_progress", row.Payload["status"])
	assert.Equal(t, "available", row.Payload["previousStatus"])
	assert.Equal(t, "dara", row.Meta["actor"])
}

func TestEmitWithPersistenceDisabled(t *testing.T) {
	database := setupFeedDB(t, false)

	EmitRoomUpdate("101", models.StatusInProgress, models.StatusAvailable, nil)
	EmitResetCleaning("102", nil)

	var count int64
	database.Model(&models.LiveFeedEvent{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestSystemEventsStoredAsSystemType(t *testing.T) {
	database := setupFeedDB(t, true)

	EmitSystem(EventClearLogs, map[string]interface{}{}, nil)
	EmitResetCleaning("101", nil)

	var rows []models.LiveFeedEvent
	require.NoError(t, database.Order("id ASC").Find(&rows).Error)
	require.Len(t, rows, 2)

	assert.Equal(t, models.FeedTypeSystem, rows[0].Type)
	assert.Nil(t, rows[0].RoomNumber)
	assert.Equal(t, "clearLogs", rows[0].Payload["event"])

	// Per-room resets also have no dedicated type but keep their room.
	assert.Equal(t, models.FeedTypeSystem, rows[1].Type)
	require.NotNil(t, rows[1].RoomNumber)
	assert.Equal(t, "101", *rows[1].RoomNumber)
}

func TestLogTypeMapping(t *testing.T) {
	assert.Equal(t, models.FeedTypeRoomUpdate, logType(EventRoomUpdate))
	assert.Equal(t, models.FeedTypeRoomChecked, logType(EventRoomChecked))
	assert.Equal(t, models.FeedTypeDNDUpdate, logType(EventDNDUpdate))
	assert.Equal(t, models.FeedTypePriorityUpdate, logType(EventPriorityUpdate))
	assert.Equal(t, models.FeedTypeNoteUpdate, logType(EventNoteUpdate))
	assert.Equal(t, models.FeedTypeInspection, logType(EventInspectionUpdate))
	assert.Equal(t, models.FeedTypeInspection, logType(EventInspectionSubmitted))
	assert.Equal(t, models.FeedTypeSystem, logType(EventClearLogs))
	assert.Equal(t, models.FeedTypeSystem, logType(EventResetCleaning))
}

func TestQueryWindow(t *testing.T) {
	database := setupFeedDB(t, true)
	now := utils.HotelNow()

	room := "101"
	old := models.LiveFeedEvent{TS: now.AddDate(0, 0, -2), Type: models.FeedTypeRoomUpdate, RoomNumber: &room, Payload: models.JSONMap{}}
	require.NoError(t, database.Create(&old).Error)

	EmitRoomUpdate("101", models.StatusInProgress, models.StatusAvailable, nil)
	EmitRoomUpdate("102", models.StatusFinished, models.StatusInProgress, nil)

	start, end := utils.DayRange(now)
	events, err := QueryWindow(start, end)
	require.NoError(t, err)
	require.Len(t, events, 2)

	// Newest first.
	assert.False(t, events[0].TS.Before(events[1].TS))
}

func TestQueryByRoom(t *testing.T) {
	setupFeedDB(t, true)

	EmitRoomUpdate("101", models.StatusInProgress, models.StatusAvailable, nil)
	EmitRoomUpdate("102", models.StatusInProgress, models.StatusAvailable, nil)
	EmitRoomUpdate("101", models.StatusFinished, models.StatusInProgress, nil)

	events, err := QueryByRoom("101", 0)
	require.NoError(t, err)
	require.Len(t, events, 2)
	for _, e := range events {
		assert.Equal(t, "101", *e.RoomNumber)
	}

	events, err = QueryByRoom("101", 1)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestExpireBefore(t *testing.T) {
	database := setupFeedDB(t, true)
	now := utils.HotelNow()

	room := "101"
	stale := models.LiveFeedEvent{TS: now.AddDate(0, 0, -31), Type: models.FeedTypeSystem, RoomNumber: &room, Payload: models.JSONMap{}}
	fresh := models.LiveFeedEvent{TS: now, Type: models.FeedTypeSystem, RoomNumber: &room, Payload: models.JSONMap{}}
	require.NoError(t, database.Create(&stale).Error)
	require.NoError(t, database.Create(&fresh).Error)

	removed, err := ExpireBefore(now.AddDate(0, 0, -30))
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	var count int64
	database.Model(&models.LiveFeedEvent{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestQueryWithoutInit(t *testing.T) {
	Init(nil, false)

	_, err := QueryWindow(time.Now().Add(-time.Hour), time.Now())
	assert.Error(t, err)
	_, err = QueryByRoom("101", 10)
	assert.Error(t, err)
	_, err = ExpireBefore(time.Now())
	assert.Error(t, err)
}
