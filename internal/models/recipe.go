package models

import "time"

// Recipe is owned by exactly one user. Deleting it removes its comments,
// likes and favorites.
type Recipe struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Title        string    `json:"title" gorm:"type:varchar(200);not null"`
	Description  string    `json:"description" gorm:"type:text"`
	Ingredients  string    `json:"ingredients" gorm:"type:text;not null"`
	Instructions string    `json:"instructions" gorm:"type:text;not null"`
	CookingTime  int       `json:"cooking_time" gorm:"not null"` // minutes
	ImageURL     string    `json:"image_url" gorm:"type:varchar(255)"`
	UserID       uint      `json:"user_id" gorm:"not null;index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
