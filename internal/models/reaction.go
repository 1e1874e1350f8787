package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TodoReaction — лайк. Не больше одной реакции на пару (user, todo).
type TodoReaction struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reactions_user_todo"`
	TodoID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reactions_user_todo"`
	CreatedAt time.Time

	User User `gorm:"foreignKey:UserID"`
}

func (r *TodoReaction) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
