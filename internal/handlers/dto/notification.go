package dto

import (
	"time"

	"github.com/google/uuid"
)

// NotificationResponse — уведомление с уже собранным текстом.
type NotificationResponse struct {
	ID            uuid.UUID `json:"id"`
	ActorID       uuid.UUID `json:"actor_id"`
	ActorUsername string    `json:"actor_username"`
	Body          string    `json:"body"`
	Unread        bool      `json:"unread"`
	CreatedAt     time.Time `json:"created_at"`
}
