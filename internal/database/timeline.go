package database

import (
	"github.com/google/uuid"

	"github.com/thereayou/taskboard/internal/models"
)

// AddTimelineEntry дописывает запись в ленту активности пользователя.
func (d *Database) AddTimelineEntry(userID uuid.UUID, body string) error {
	entry := models.TimelineEntry{
		UserID: userID,
		Body:   body,
	}
	return d.db.Create(&entry).Error
}

func (d *Database) ListTimeline(userID string) ([]models.TimelineEntry, error) {
	var entries []models.TimelineEntry
	err := d.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
