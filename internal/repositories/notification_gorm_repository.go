package repositories

import (
	"context"

	"recipebox/internal/models"

	"gorm.io/gorm"
)

// GORMNotificationRepository is a GORM implementation of NotificationRepository.
type GORMNotificationRepository struct {
	db *gorm.DB
}

// NewGORMNotificationRepository creates a new instance of GORMNotificationRepository.
func NewGORMNotificationRepository(db *gorm.DB) *GORMNotificationRepository {
	return &GORMNotificationRepository{db: db}
}

func (r *GORMNotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	return translate(r.db.WithContext(ctx).Create(notification).Error, "notification", "create")
}

func (r *GORMNotificationRepository) GetByID(ctx context.Context, id uint) (*models.Notification, error) {
	var notification models.Notification
	if err := r.db.WithContext(ctx).First(&notification, id).Error; err != nil {
		return nil, translate(err, "Notification", "get")
	}
	return &notification, nil
}

// ListByRecipient returns the notifications addressed to userID, newest first.
func (r *GORMNotificationRepository) ListByRecipient(ctx context.Context, userID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").Find(&notifications).Error; err != nil {
		return nil, translate(err, "notifications", "list")
	}
	return notifications, nil
}

func (r *GORMNotificationRepository) CountUnread(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND read_status = ?", userID, false).Count(&count).Error; err != nil {
		return 0, translate(err, "notifications", "count")
	}
	return count, nil
}

func (r *GORMNotificationRepository) MarkRead(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Model(&models.Notification{}).Where("id = ?", id).Update("read_status", true)
	if res.Error != nil {
		return translate(res.Error, "notification", "update")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "Notification", "update")
	}
	return nil
}

// MarkAllRead marks every unread notification of userID as read and returns how many changed.
func (r *GORMNotificationRepository) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND read_status = ?", userID, false).
		Update("read_status", true)
	if res.Error != nil {
		return 0, translate(res.Error, "notifications", "update")
	}
	return res.RowsAffected, nil
}
