package feed

import (
	"errors"
	"time"

	"github.com/yeremiapane/housekeeping-app/models"
	"github.com/yeremiapane/housekeeping-app/utils"
)

// logType maps a socket event name to its persisted feed type. Event names
// without a dedicated type (bulk resets and such) are stored as "system"
// with the socket event name kept in the payload row.
func logType(event string) string {
	switch event {
	case EventRoomUpdate:
		return models.FeedTypeRoomUpdate
	case EventRoomChecked:
		return models.FeedTypeRoomChecked
	case EventDNDUpdate:
		return models.FeedTypeDNDUpdate
	case EventPriorityUpdate:
		return models.FeedTypePriorityUpdate
	case EventNoteUpdate:
		return models.FeedTypeNoteUpdate
	case EventInspectionUpdate, EventInspectionSubmitted:
		return models.FeedTypeInspection
	default:
		return models.FeedTypeSystem
	}
}

// appendEvent writes one immutable mirror row. Never fails the triggering
// action: errors are logged and swallowed so the broadcast always happens.
func appendEvent(ts time.Time, event string, room *string, payload map[string]interface{}, meta models.JSONMap) {
	if db == nil || !persist {
		return
	}

	stored := models.JSONMap{"event": event}
	for k, v := range payload {
		stored[k] = v
	}
	if meta == nil {
		meta = models.JSONMap{}
	}

	row := models.LiveFeedEvent{
		TS:         ts,
		Type:       logType(event),
		RoomNumber: room,
		Payload:    stored,
		Meta:       meta,
	}
	if err := db.Create(&row).Error; err != nil {
		utils.ErrorLogger.Printf("Live feed persist error (%s): %v", event, err)
	}
}

// QueryWindow returns events inside [start, end), newest first.
func QueryWindow(start, end time.Time) ([]models.LiveFeedEvent, error) {
	if db == nil {
		return nil, errors.New("feed not initialized")
	}
	var events []models.LiveFeedEvent
	err := db.Where("ts >= ? AND ts < ?", start, end).
		Order("ts DESC").
		Find(&events).Error
	return events, err
}

// QueryByRoom returns the room's most recent events, newest first.
func QueryByRoom(room string, limit int) ([]models.LiveFeedEvent, error) {
	if db == nil {
		return nil, errors.New("feed not initialized")
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var events []models.LiveFeedEvent
	err := db.Where("room_number = ?", room).
		Order("ts DESC").
		Limit(limit).
		Find(&events).Error
	return events, err
}

// ExpireBefore removes events older than the cutoff. Best effort; the
// janitor calls this on an interval.
func ExpireBefore(cutoff time.Time) (int64, error) {
	if db == nil {
		return 0, errors.New("feed not initialized")
	}
	res := db.Where("ts < ?", cutoff).Delete(&models.LiveFeedEvent{})
	return res.RowsAffected, res.Error
}
