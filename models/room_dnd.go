package models

import "time"

// RoomDND holds the current Do-Not-Disturb flag per room. One row per room,
// overwritten in place; history lives in the live feed events only.
type RoomDND struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	RoomNumber string     `gorm:"type:varchar(3);not null;uniqueIndex" json:"roomNumber"`
	DNDStatus  bool       `gorm:"not null;default:false" json:"dndStatus"`
	DNDSetBy   *string    `gorm:"type:varchar(100)" json:"dndSetBy"`
	DNDSetAt   *time.Time `json:"dndSetAt"`
	CreatedAt  time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"not null" json:"updated_at"`
}
