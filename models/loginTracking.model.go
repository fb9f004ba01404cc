package models

import (
	"time"
)

// LoginTracking is one successful sign-in of a staff user
type LoginTracking struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	IPAddress string    `json:"ip_address" gorm:"type:varchar(64)"`
	Device    string    `json:"device"`
	Timestamp time.Time `json:"timestamp" gorm:"index"`
}
