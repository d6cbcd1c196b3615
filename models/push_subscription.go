package models

import "time"

// PushSubscription stores one browser push endpoint. Upserted by endpoint;
// stale endpoints (410/404 from the push service) are deleted on send.
type PushSubscription struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Endpoint  string    `gorm:"type:varchar(500);not null;uniqueIndex" json:"endpoint"`
	P256dh    string    `gorm:"type:varchar(255)" json:"p256dh"`
	Auth      string    `gorm:"type:varchar(255)" json:"auth"`
	Username  *string   `gorm:"type:varchar(100)" json:"username"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
