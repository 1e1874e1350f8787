package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID                       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username                 string    `gorm:"uniqueIndex;not null"`
	Email                    string    `gorm:"uniqueIndex;not null"`
	PasswordHash             string    `gorm:"not null"`
	FirstName                string
	LastName                 string
	Bio                      string
	AvatarURL                string
	LastNotificationReadTime time.Time
	CreatedAt                time.Time

	// Связи
	Todos         []Todo          `gorm:"foreignKey:UserID"`
	Notifications []Notification  `gorm:"foreignKey:UserID"`
	Timeline      []TimelineEntry `gorm:"foreignKey:UserID"`
	Follows       []*User         `gorm:"many2many:follows;joinForeignKey:FollowerID;joinReferences:FollowedID"`
}

// BeforeCreate выдаёт id в хуке вместо gen_random_uuid(), чтобы модели
// мигрировали и на postgres, и на sqlite в тестах.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
