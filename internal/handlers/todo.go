package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/thereayou/taskboard/internal/database"
	"github.com/thereayou/taskboard/internal/middleware"
	"github.com/thereayou/taskboard/internal/models"
	"github.com/thereayou/taskboard/internal/websocket"
)

type TodoHandler struct {
	db  *database.Database
	hub *websocket.Hub
}

func NewTodoHandler(db *database.Database, hub *websocket.Hub) *TodoHandler {
	return &TodoHandler{db: db, hub: hub}
}

// List возвращает незавершённые задачи и список пользователей.
func (h *TodoHandler) List(c *gin.Context) {
	todos, err := h.db.ListOpenTodos()
	if err != nil {
		c.String(http.StatusInternalServerError, "internal error. try again.")
		return
	}

	users, err := h.db.ListUsers()
	if err != nil {
		c.String(http.StatusInternalServerError, "internal error. try again.")
		return
	}

	todosResponse := make([]gin.H, len(todos))
	for i, todo := range todos {
		todosResponse[i] = formatTodoResponse(&todo)
	}

	online := make(map[uuid.UUID]bool)
	for _, id := range h.hub.GetOnlineUsers() {
		online[id] = true
	}

	usersResponse := make([]gin.H, len(users))
	for i, user := range users {
		usersResponse[i] = gin.H{
			"id":         user.ID,
			"username":   user.Username,
			"avatar_url": user.AvatarURL,
			"online":     online[user.ID],
		}
	}

	c.JSON(http.StatusOK, gin.H{"todos": todosResponse, "users": usersResponse})
}

// Create заводит задачу. Пустой title молча возвращает на список —
// так делает и форма.
func (h *TodoHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	title := c.PostForm("title")
	description := c.PostForm("description")

	if title == "" {
		c.Redirect(http.StatusSeeOther, "/todo")
		return
	}

	todo := &models.Todo{
		UserID:      userID,
		Title:       title,
		Description: description,
		CreatedAt:   time.Now(),
	}

	if err := h.db.SaveTodo(todo); err != nil {
		c.String(http.StatusInternalServerError, "internal error. try again.")
		return
	}

	if err := h.db.AddTimelineEntry(userID, "Created a new task "+title); err != nil {
		log.Printf("Failed to append timeline entry: %v", err)
	}

	c.Redirect(http.StatusSeeOther, "/todo")
}

// Complete переводит задачу в completed. Запись в ленту получает тот,
// кто завершил, а не обязательно владелец.
func (h *TodoHandler) Complete(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	todo, err := h.db.GetTodo(c.Param("id"))
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/todo")
		return
	}

	if err := h.db.CompleteTodo(todo, time.Now()); err != nil {
		c.String(http.StatusInternalServerError, "internal error. try again.")
		return
	}

	if err := h.db.AddTimelineEntry(userID, "Completed task "+todo.Title); err != nil {
		log.Printf("Failed to append timeline entry: %v", err)
	}

	c.Redirect(http.StatusSeeOther, "/todo")
}

// Edit обновляет только присланные поля. Права владельца не
// проверяются: редактировать может любой залогиненный.
func (h *TodoHandler) Edit(c *gin.Context) {
	todo, err := h.db.GetTodo(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"result": "error", "message": "todo not found"})
		return
	}

	if title, ok := c.GetPostForm("title"); ok {
		todo.Title = title
	}
	if description, ok := c.GetPostForm("description"); ok {
		todo.Description = description
	}

	if err := h.db.UpdateTodo(todo); err != nil {
		c.JSON(http.StatusOK, gin.H{"result": "error", "message": "failed to update todo"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": "success"})
}

// Like ставит реакцию. Повторный лайк — no-op. Лайк чужой задачи
// создаёт уведомление владельцу и толкает его в WebSocket.
func (h *TodoHandler) Like(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	todo, err := h.db.GetTodo(c.Param("id"))
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/todo")
		return
	}

	liked, err := h.db.HasReaction(userID.String(), todo.ID.String())
	if err != nil || liked {
		c.Redirect(http.StatusSeeOther, "/todo")
		return
	}

	reaction := &models.TodoReaction{UserID: userID, TodoID: todo.ID}
	if err := h.db.SaveReaction(reaction); err != nil {
		c.Redirect(http.StatusSeeOther, "/todo")
		return
	}

	if todo.UserID != userID {
		h.notifyOwner(todo, userID)
	}

	c.Redirect(http.StatusSeeOther, "/todo")
}

func (h *TodoHandler) notifyOwner(todo *models.Todo, actorID uuid.UUID) {
	notification := &models.Notification{
		UserID:    todo.UserID,
		ActorID:   actorID,
		Kind:      models.NotificationTodoLiked,
		TodoTitle: todo.Title,
	}

	if err := h.db.SaveNotification(notification); err != nil {
		log.Printf("Failed to save notification: %v", err)
		return
	}

	actor, err := h.db.GetUser(actorID.String())
	if err != nil {
		return
	}

	h.hub.NotifyUser(todo.UserID, websocket.TypeNotification, gin.H{
		"id":             notification.ID,
		"actor_username": actor.Username,
		"body":           renderNotificationBody(notification.Kind, actor.Username, notification.TodoTitle),
	})
}

// Unlike снимает реакцию, если она была.
func (h *TodoHandler) Unlike(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	todo, err := h.db.GetTodo(c.Param("id"))
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/todo")
		return
	}

	liked, err := h.db.HasReaction(userID.String(), todo.ID.String())
	if err != nil || !liked {
		c.Redirect(http.StatusSeeOther, "/todo")
		return
	}

	if err := h.db.DeleteReaction(userID.String(), todo.ID.String()); err != nil {
		log.Printf("Failed to delete reaction: %v", err)
	}

	c.Redirect(http.StatusSeeOther, "/todo")
}

// Delete убирает задачу вместе с реакциями. Разрешено только владельцу;
// чужих и несуществующих молча возвращает на список.
func (h *TodoHandler) Delete(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	todo, err := h.db.GetTodo(c.Param("id"))
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/todo")
		return
	}

	if todo.UserID != userID {
		c.Redirect(http.StatusSeeOther, "/todo")
		return
	}

	if err := h.db.DeleteTodo(todo.ID.String()); err != nil {
		c.String(http.StatusInternalServerError, "internal error. try again.")
		return
	}

	// Запись в ленту только после успешного удаления: иначе откат
	// транзакции оставлял бы "Deleted task" для живой задачи.
	if err := h.db.AddTimelineEntry(userID, "Deleted task "+todo.Title); err != nil {
		log.Printf("Failed to append timeline entry: %v", err)
	}

	c.Redirect(http.StatusSeeOther, "/todo")
}

func formatTodoResponse(todo *models.Todo) gin.H {
	return gin.H{
		"id":           todo.ID,
		"user_id":      todo.UserID,
		"title":        todo.Title,
		"description":  todo.Description,
		"completed":    todo.Completed,
		"completed_at": todo.CompletedAt,
		"created_at":   todo.CreatedAt,
		"user": gin.H{
			"id":         todo.User.ID,
			"username":   todo.User.Username,
			"avatar_url": todo.User.AvatarURL,
		},
	}
}
