package models

import (
	"time"
)

// Room composite statuses derived from which timestamps are set.
const (
	StatusAvailable  = "available"
	StatusInProgress = "in_progress"
	StatusFinished   = "finished"
	StatusChecked    = "checked"
)

// CleaningLog is one record per room per calendar day. Date always holds
// the start of the day in the hotel time zone so (room_number, date) is a
// stable key.
type CleaningLog struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	RoomNumber  string     `gorm:"type:varchar(3);not null;index:idx_room_date" json:"roomNumber"`
	Date        time.Time  `gorm:"not null;index:idx_room_date" json:"date"`
	StartTime   *time.Time `json:"startTime"`
	StartedBy   *string    `gorm:"type:varchar(100)" json:"startedBy"`
	FinishTime  *time.Time `json:"finishTime"`
	FinishedBy  *string    `gorm:"type:varchar(100)" json:"finishedBy"`
	CheckedTime *time.Time `json:"checkedTime"`
	CheckedBy   *string    `gorm:"type:varchar(100)" json:"checkedBy"`
	Status      string     `gorm:"type:varchar(20);not null;default:'available'" json:"status"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null" json:"updated_at"`
}

// DeriveStatus computes the composite status from the timestamps alone.
// The persisted Status column must always agree with this.
func (l *CleaningLog) DeriveStatus() string {
	switch {
	case l.CheckedTime != nil:
		return StatusChecked
	case l.FinishTime != nil:
		return StatusFinished
	case l.StartTime != nil:
		return StatusInProgress
	default:
		return StatusAvailable
	}
}

// Duration returns how long the cleaning took. Undefined (nil) unless both
// start and finish are set.
func (l *CleaningLog) Duration() *time.Duration {
	if l.StartTime == nil || l.FinishTime == nil {
		return nil
	}
	d := l.FinishTime.Sub(*l.StartTime)
	return &d
}
