package models

import "time"

// Live feed event types as persisted. Every socket emission maps to one of
// these so history can reconstruct exactly what clients saw live.
const (
	FeedTypeRoomUpdate     = "roomUpdate"
	FeedTypeRoomChecked    = "roomChecked"
	FeedTypeDNDUpdate      = "dndUpdate"
	FeedTypePriorityUpdate = "priorityUpdate"
	FeedTypeNoteUpdate     = "noteUpdate"
	FeedTypeInspection     = "inspection"
	FeedTypeSystem         = "system"
)

// LiveFeedEvent is the append-only event stream backing the live feed.
// Each row mirrors one broadcast payload. Rows past the configured TTL are
// removed by the feed janitor.
type LiveFeedEvent struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TS         time.Time `gorm:"column:ts;not null;index:idx_feed_ts" json:"ts"`
	Type       string    `gorm:"type:varchar(30);not null;index:idx_feed_type_room" json:"type"`
	RoomNumber *string   `gorm:"type:varchar(3);index:idx_feed_type_room" json:"roomNumber"`
	Payload    JSONMap   `gorm:"type:text" json:"payload"`
	Meta       JSONMap   `gorm:"type:text" json:"meta"`
}
