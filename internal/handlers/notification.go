package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/thereayou/taskboard/internal/database"
	"github.com/thereayou/taskboard/internal/handlers/dto"
	"github.com/thereayou/taskboard/internal/middleware"
	"github.com/thereayou/taskboard/internal/models"
)

type NotificationHandler struct {
	db *database.Database
}

func NewNotificationHandler(db *database.Database) *NotificationHandler {
	return &NotificationHandler{db: db}
}

// List отдаёт уведомления получателя. Текст собирается здесь из
// типа шаблона и актора; unread считается от last_notification_read_time.
func (h *NotificationHandler) List(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	user, err := h.db.GetUser(userID.String())
	if err != nil {
		c.String(http.StatusNotFound, "page not found")
		return
	}

	notifications, err := h.db.ListNotifications(userID.String())
	if err != nil {
		c.String(http.StatusInternalServerError, "internal error. try again.")
		return
	}

	response := make([]dto.NotificationResponse, len(notifications))
	for i, n := range notifications {
		actorUsername := ""
		if n.Actor != nil {
			actorUsername = n.Actor.Username
		}

		response[i] = dto.NotificationResponse{
			ID:            n.ID,
			ActorID:       n.ActorID,
			ActorUsername: actorUsername,
			Body:          renderNotificationBody(n.Kind, actorUsername, n.TodoTitle),
			Unread:        n.CreatedAt.After(user.LastNotificationReadTime),
			CreatedAt:     n.CreatedAt,
		}
	}

	c.JSON(http.StatusOK, gin.H{"notifications": response})
}

// MarkRead сдвигает отметку прочтения на текущий момент.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	if err := h.db.SetLastNotificationRead(userID.String(), time.Now()); err != nil {
		c.JSON(http.StatusOK, gin.H{"result": "error", "message": "failed to mark notifications read"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": "success"})
}

func renderNotificationBody(kind, actorUsername, todoTitle string) string {
	switch kind {
	case models.NotificationTodoLiked:
		return fmt.Sprintf("%s liked your completed task %s", actorUsername, todoTitle)
	default:
		return fmt.Sprintf("%s sent you a notification", actorUsername)
	}
}
