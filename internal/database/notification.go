package database

import (
	"github.com/thereayou/taskboard/internal/models"
)

func (d *Database) SaveNotification(notification *models.Notification) error {
	return d.db.Create(notification).Error
}

// ListNotifications получает уведомления получателя, свежие первыми.
func (d *Database) ListNotifications(userID string) ([]models.Notification, error) {
	var notifications []models.Notification
	err := d.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Preload("Actor").
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

func (d *Database) CountUserNotifications(userID string) (int64, error) {
	var count int64
	err := d.db.Model(&models.Notification{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
