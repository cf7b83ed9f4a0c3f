package models

import "time"

// Like is unique per (user, recipe).
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_like_user_recipe"`
	RecipeID  uint      `json:"recipe_id" gorm:"not null;uniqueIndex:idx_like_user_recipe;index"`
	CreatedAt time.Time `json:"created_at"`
}
