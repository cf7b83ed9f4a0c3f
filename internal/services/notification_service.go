package services

import (
	"context"

	"recipebox/internal/apperr"
	"recipebox/internal/models"
	"recipebox/internal/repositories"
)

// NotificationService serves a user's notifications. Every method is
// restricted to the recipient.
type NotificationService struct {
	store *repositories.Store
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(store *repositories.Store) *NotificationService {
	return &NotificationService{store: store}
}

// ListForUser returns the notifications of userID, newest first.
func (s *NotificationService) ListForUser(ctx context.Context, actingID, userID uint) ([]NotificationView, error) {
	if actingID != userID {
		return nil, apperr.Forbidden("Not authorized")
	}
	notifications, err := s.store.Notifications.ListByRecipient(ctx, userID)
	if err != nil {
		return nil, err
	}

	actorIDs := make([]uint, 0, len(notifications))
	var recipeIDs []uint
	for _, n := range notifications {
		actorIDs = append(actorIDs, n.ActorID)
		if n.RecipeID != nil {
			recipeIDs = append(recipeIDs, *n.RecipeID)
		}
	}
	actors, err := usersByID(ctx, s.store, actorIDs)
	if err != nil {
		return nil, err
	}
	recipes, err := s.store.Recipes.ListByIDs(ctx, unique(recipeIDs))
	if err != nil {
		return nil, err
	}
	titles := make(map[uint]string, len(recipes))
	for _, r := range recipes {
		titles[r.ID] = r.Title
	}

	views := make([]NotificationView, 0, len(notifications))
	for _, n := range notifications {
		v := NotificationView{
			ID:         n.ID,
			Type:       n.Type,
			ReadStatus: n.ReadStatus,
			CreatedAt:  n.CreatedAt,
			Actor:      summaryOf(actors[n.ActorID]),
		}
		if n.RecipeID != nil {
			if title, ok := titles[*n.RecipeID]; ok {
				v.Recipe = &RecipeRef{ID: *n.RecipeID, Title: title}
			}
		}
		views = append(views, v)
	}
	return views, nil
}

// MarkRead marks one notification of actingID as read.
func (s *NotificationService) MarkRead(ctx context.Context, actingID, id uint) (*models.Notification, error) {
	n, err := s.store.Notifications.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n.UserID != actingID {
		return nil, apperr.Forbidden("Not authorized")
	}
	if err := s.store.Notifications.MarkRead(ctx, id); err != nil {
		return nil, err
	}
	n.ReadStatus = true
	return n, nil
}

// UnreadCount counts the unread notifications of userID.
func (s *NotificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return s.store.Notifications.CountUnread(ctx, userID)
}

// MarkAllRead marks every notification of userID as read and returns how many changed.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	return s.store.Notifications.MarkAllRead(ctx, userID)
}
