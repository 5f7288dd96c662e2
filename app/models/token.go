package models

import "time"

// AuthToken is the bearer credential issued at login. One row per user,
// reused until logout deletes it.
type AuthToken struct {
	Key       string    `gorm:"size:40;not null;primary_key" json:"key"`
	UserID    string    `gorm:"size:36;not null;uniqueIndex" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
