package models

import "time"

// User is a registered account. PasswordHash never leaves the process.
type User struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Username       string    `json:"username" gorm:"uniqueIndex;type:varchar(80);not null"`
	Email          string    `json:"email" gorm:"uniqueIndex;type:varchar(120);not null"`
	PasswordHash   string    `json:"-" gorm:"type:varchar(128);not null"`
	Bio            string    `json:"bio" gorm:"type:text"`
	ProfilePicture string    `json:"profile_picture" gorm:"type:varchar(255)"`
	CreatedAt      time.Time `json:"created_at"`
}
