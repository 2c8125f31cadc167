package repository

import (
	"context"

	"social-service/internal/models"

	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	FindLastByReceiver(ctx context.Context, receiverID uint, limit int) ([]models.NotificationPayload, error)
	CountUnreadCapped(ctx context.Context, receiverID uint, cap int) (int64, error)
	Delete(ctx context.Context, id uint) error
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

func (r *notificationRepository) FindLastByReceiver(ctx context.Context, receiverID uint, limit int) ([]models.NotificationPayload, error) {
	var payloads []models.NotificationPayload
	err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Select("notifications.id, users.username AS emitter_username, notifications.type, notifications.description, notifications.read, notifications.created_at").
		Joins("JOIN users ON users.id = notifications.emitter_id").
		Where("notifications.receiver_id = ?", receiverID).
		Order("notifications.created_at DESC").
		Limit(limit).
		Scan(&payloads).Error
	return payloads, err
}

// CountUnreadCapped counts unread notifications but never past cap rows;
// the client only distinguishes "50+" from exact counts. The LIMIT has to
// sit in a subquery: on a bare count it would cap the result rows, not the
// rows being counted.
func (r *notificationRepository) CountUnreadCapped(ctx context.Context, receiverID uint, cap int) (int64, error) {
	var count int64
	capped := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Select("1").
		Where("receiver_id = ? AND read = ?", receiverID, false).
		Limit(cap)
	err := r.db.WithContext(ctx).
		Table("(?) AS capped", capped).
		Count(&count).Error
	return count, err
}

func (r *notificationRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Notification{}, id).Error
}
