package repositories

import (
	"github.com/ripplehq/ripple-backend/internal/apperrors"
	"github.com/ripplehq/ripple-backend/internal/models"
	"gorm.io/gorm"
)

// recentNotificationLimit bounds the notification list to what the client
// dropdown renders.
const recentNotificationLimit = 20

// NotificationRepository defines the interface for notification operations.
type NotificationRepository interface {
	GetByRecipient(recipientID string) ([]models.Notification, error)
	GetUnreadCount(recipientID string) (int64, error)
	MarkAllRead(recipientID string) error
	MarkRead(id string) error
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

// NewPostgresNotificationRepository creates a NotificationRepository backed
// by a relational store.
func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

// GetByRecipient returns the user's most recent notifications, newest first,
// capped at 20, with the originating post and comment denormalized for
// display.
func (r *postgresNotificationRepository) GetByRecipient(recipientID string) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.Where("recipient_id = ?", recipientID).
		Preload("Post").
		Preload("Comment").
		Order("created_at DESC").
		Limit(recentNotificationLimit).
		Find(&notifications).Error
	if err != nil {
		return nil, apperrors.FromStore(err)
	}
	return notifications, nil
}

// GetUnreadCount counts the recipient's unread notifications.
func (r *postgresNotificationRepository) GetUnreadCount(recipientID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Count(&count).Error
	return count, apperrors.FromStore(err)
}

// MarkAllRead transitions every unread notification owned by the recipient
// to read. Idempotent: an already-all-read set is a no-op success.
func (r *postgresNotificationRepository) MarkAllRead(recipientID string) error {
	err := r.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Update("is_read", true).Error
	return apperrors.FromStore(err)
}

// MarkRead transitions a single notification to read. Not routed at the HTTP
// boundary, but part of the data-access contract.
func (r *postgresNotificationRepository) MarkRead(id string) error {
	res := r.db.Model(&models.Notification{}).
		Where("id = ?", id).
		Update("is_read", true)
	if res.Error != nil {
		return apperrors.FromStore(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
