package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Типы уведомлений
const (
	NotificationTodoLiked = "todo_liked"
)

// Notification хранит типизированный шаблон и ссылку на актора;
// текст собирается при чтении, HTML в базу не попадает.
type Notification struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"` // получатель
	ActorID   uuid.UUID `gorm:"type:uuid;not null"`
	Kind      string    `gorm:"not null"`
	TodoTitle string
	CreatedAt time.Time

	// Связи
	Actor *User `gorm:"foreignKey:ActorID"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
