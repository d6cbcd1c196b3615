package models

import "time"

// InspectionLog is one checklist per room per day: item name -> status
// string plus an overall score. Items are upserted one by one during the
// walkthrough or replaced wholesale on full submission.
type InspectionLog struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	RoomNumber   string    `gorm:"type:varchar(3);not null;index:idx_inspection_room_date" json:"roomNumber"`
	Date         time.Time `gorm:"not null;index:idx_inspection_room_date" json:"date"`
	Items        StringMap `gorm:"type:text" json:"items"`
	OverallScore *float64  `json:"overallScore"`
	UpdatedBy    string    `gorm:"type:varchar(100)" json:"updatedBy"`
	UpdatedAt    time.Time `gorm:"not null" json:"updatedAt"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
}
