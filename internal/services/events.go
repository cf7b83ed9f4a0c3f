package services

import (
	"time"

	"recipebox/internal/logging"
	"recipebox/internal/metrics"
	"recipebox/internal/models"

	"github.com/google/uuid"
)

// RoutingKeyNotificationCreated is the routing key of NotificationEvent.
const RoutingKeyNotificationCreated = "notification.created"

// EventPublisher delivers events to a message broker.
type EventPublisher interface {
	PublishJSON(routingKey string, payload any) error
}

// NotificationEvent announces a committed notification.
type NotificationEvent struct {
	EventID        string                  `json:"event_id"`
	NotificationID uint                    `json:"notification_id"`
	Type           models.NotificationType `json:"type"`
	RecipientID    uint                    `json:"recipient_id"`
	ActorID        uint                    `json:"actor_id"`
	RecipeID       *uint                   `json:"recipe_id,omitempty"`
	CreatedAt      time.Time               `json:"created_at"`
}

// announce records and publishes notifications after their transaction has
// committed. Publish failures are logged only; the write stands.
func announce(publisher EventPublisher, notifications ...*models.Notification) {
	for _, n := range notifications {
		if n == nil {
			continue
		}
		metrics.ObserveNotification(string(n.Type))
		if publisher == nil {
			continue
		}
		event := NotificationEvent{
			EventID:        uuid.NewString(),
			NotificationID: n.ID,
			Type:           n.Type,
			RecipientID:    n.UserID,
			ActorID:        n.ActorID,
			RecipeID:       n.RecipeID,
			CreatedAt:      n.CreatedAt,
		}
		if err := publisher.PublishJSON(RoutingKeyNotificationCreated, event); err != nil {
			logging.Warn().Err(err).Uint("notification_id", n.ID).Msg("failed to publish notification event")
		}
	}
}
