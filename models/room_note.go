package models

import "time"

// RoomNote is the single free-text note per room with tags and an
// "after time" hint. Upserts merge: only supplied fields overwrite.
type RoomNote struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	RoomNumber    string     `gorm:"type:varchar(3);not null;uniqueIndex" json:"roomNumber"`
	Tags          StringList `gorm:"type:text" json:"tags"`
	AfterTime     *string    `gorm:"type:varchar(20)" json:"afterTime"`
	Note          *string    `gorm:"type:text" json:"note"`
	LastUpdatedBy string     `gorm:"type:varchar(100);not null" json:"lastUpdatedBy"`
	CreatedAt     time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"not null" json:"updatedAt"`
}
