package models

import "time"

// Comment belongs to one user and one recipe.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	RecipeID  uint      `json:"recipe_id" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
}
