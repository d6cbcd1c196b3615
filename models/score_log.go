package models

import "time"

// ScoreLog rewards one point per user per day; IsFastest marks the daily
// fastest-cleaner bonus used by the leaderboard.
type ScoreLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"type:varchar(100);not null;index" json:"username"`
	Date      time.Time `gorm:"not null" json:"date"`
	Score     int       `gorm:"not null;default:1" json:"score"`
	IsFastest bool      `gorm:"not null;default:false" json:"isFastest"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
