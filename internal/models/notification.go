package models

import "time"

// NotificationType says what an actor did to trigger a notification.
type NotificationType string

const (
	NotificationLike           NotificationType = "like"
	NotificationComment        NotificationType = "comment"
	NotificationFollow         NotificationType = "follow" // accepted, nothing emits it yet
	NotificationCommentDeleted NotificationType = "comment_deleted"
)

// NotificationTypes lists every accepted type in declaration order.
var NotificationTypes = []NotificationType{
	NotificationLike,
	NotificationComment,
	NotificationFollow,
	NotificationCommentDeleted,
}

// Notification tells UserID (the target) that ActorID did something,
// optionally about a recipe.
type Notification struct {
	ID         uint             `json:"id" gorm:"primaryKey"`
	Type       NotificationType `json:"type" gorm:"type:varchar(20);not null"`
	ReadStatus bool             `json:"read_status" gorm:"default:false;index"`
	UserID     uint             `json:"user_id" gorm:"not null;index"`
	ActorID    uint             `json:"actor_id" gorm:"not null;index"`
	RecipeID   *uint            `json:"recipe_id" gorm:"index"`
	CreatedAt  time.Time        `json:"created_at" gorm:"index"`
}
