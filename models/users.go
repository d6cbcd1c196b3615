package models

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"type:varchar(100);unique;not null" json:"username"`
	Password     string    `gorm:"type:varchar(255);not null" json:"-"`
	Role         string    `gorm:"type:varchar(50);not null;default:'cleaner'" json:"role"`
	Phone        *string   `gorm:"type:varchar(30)" json:"phone"`
	Position     *string   `gorm:"type:varchar(100)" json:"position"`
	ProfileImage *string   `gorm:"type:text" json:"profileImage"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
