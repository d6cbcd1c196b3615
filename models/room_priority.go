package models

import "time"

const DefaultPriority = "default"

// RoomPriority holds a free-form priority tag per room plus an optional
// "allow cleaning after" time hint. One row per room, last write wins.
type RoomPriority struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	RoomNumber        string    `gorm:"type:varchar(3);not null;uniqueIndex" json:"roomNumber"`
	Priority          string    `gorm:"type:varchar(50);not null;default:'default'" json:"priority"`
	AllowCleaningTime *string   `gorm:"type:varchar(20)" json:"allowCleaningTime"`
	CreatedAt         time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time `gorm:"not null" json:"updated_at"`
}
