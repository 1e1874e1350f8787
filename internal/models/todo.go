package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Todo struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Title       string    `gorm:"not null"`
	Description string
	Completed   bool `gorm:"default:false"`
	CompletedAt *time.Time
	CreatedAt   time.Time

	// Связи
	User      User           `gorm:"foreignKey:UserID"`
	Reactions []TodoReaction `gorm:"foreignKey:TodoID"`
}

func (t *Todo) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
