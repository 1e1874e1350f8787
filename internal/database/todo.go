package database

import (
	"time"

	"gorm.io/gorm"

	"github.com/thereayou/taskboard/internal/models"
)

func (d *Database) SaveTodo(todo *models.Todo) error {
	return d.db.Create(todo).Error
}

func (d *Database) GetTodo(id string) (*models.Todo, error) {
	var todo models.Todo
	if err := d.db.First(&todo, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &todo, nil
}

func (d *Database) UpdateTodo(todo *models.Todo) error {
	return d.db.Save(todo).Error
}

// CompleteTodo переводит задачу в completed. Обратного пути нет.
func (d *Database) CompleteTodo(todo *models.Todo, at time.Time) error {
	todo.Completed = true
	todo.CompletedAt = &at
	return d.db.Save(todo).Error
}

// DeleteTodo удаляет задачу вместе с её реакциями одной транзакцией.
func (d *Database) DeleteTodo(id string) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.TodoReaction{}, "todo_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Todo{}, "id = ?", id).Error
	})
}

// ListOpenTodos получает все незавершённые задачи для списка.
func (d *Database) ListOpenTodos() ([]models.Todo, error) {
	var todos []models.Todo
	err := d.db.
		Where("completed = ?", false).
		Order("created_at ASC").
		Preload("User").
		Find(&todos).Error
	if err != nil {
		return nil, err
	}
	return todos, nil
}

func (d *Database) ListUserTodos(userID string) ([]models.Todo, error) {
	var todos []models.Todo
	err := d.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&todos).Error
	if err != nil {
		return nil, err
	}
	return todos, nil
}
