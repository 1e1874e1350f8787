package database

import (
	"errors"

	"gorm.io/gorm"

	"github.com/thereayou/taskboard/internal/models"
)

func (d *Database) SaveReaction(reaction *models.TodoReaction) error {
	return d.db.Create(reaction).Error
}

// HasReaction проверяет, лайкал ли пользователь задачу.
func (d *Database) HasReaction(userID, todoID string) (bool, error) {
	var reaction models.TodoReaction
	err := d.db.Where("user_id = ? AND todo_id = ?", userID, todoID).First(&reaction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (d *Database) DeleteReaction(userID, todoID string) error {
	return d.db.Delete(&models.TodoReaction{}, "user_id = ? AND todo_id = ?", userID, todoID).Error
}

func (d *Database) CountTodoReactions(todoID string) (int64, error) {
	var count int64
	err := d.db.Model(&models.TodoReaction{}).Where("todo_id = ?", todoID).Count(&count).Error
	return count, err
}
