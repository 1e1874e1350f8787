package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/thereayou/taskboard/internal/avatar"
	"github.com/thereayou/taskboard/internal/database"
	"github.com/thereayou/taskboard/internal/handlers/dto"
	"github.com/thereayou/taskboard/internal/middleware"
	"github.com/thereayou/taskboard/internal/models"
)

type ProfileHandler struct {
	db      *database.Database
	avatars *avatar.Storage
}

func NewProfileHandler(db *database.Database, avatars *avatar.Storage) *ProfileHandler {
	return &ProfileHandler{db: db, avatars: avatars}
}

// Profile отдаёт профиль с лентой активности и списком пользователей.
func (h *ProfileHandler) Profile(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	user, err := h.db.FindUserByUsername(c.Param("username"))
	if err != nil {
		c.String(http.StatusNotFound, "page not found")
		return
	}

	timeline, err := h.db.ListTimeline(user.ID.String())
	if err != nil {
		c.String(http.StatusInternalServerError, "internal error. try again.")
		return
	}

	todos, err := h.db.ListUserTodos(user.ID.String())
	if err != nil {
		c.String(http.StatusInternalServerError, "internal error. try again.")
		return
	}

	users, err := h.db.ListUsers()
	if err != nil {
		c.String(http.StatusInternalServerError, "internal error. try again.")
		return
	}

	following, err := h.db.IsFollowing(userID.String(), user.ID.String())
	if err != nil {
		following = false
	}

	timelineResponse := make([]gin.H, len(timeline))
	for i, entry := range timeline {
		timelineResponse[i] = gin.H{"body": entry.Body, "created_at": entry.CreatedAt}
	}

	todosResponse := make([]gin.H, len(todos))
	for i, todo := range todos {
		todosResponse[i] = gin.H{
			"id":           todo.ID,
			"title":        todo.Title,
			"completed":    todo.Completed,
			"completed_at": todo.CompletedAt,
		}
	}

	usersResponse := make([]gin.H, len(users))
	for i, u := range users {
		usersResponse[i] = gin.H{"id": u.ID, "username": u.Username, "avatar_url": u.AvatarURL}
	}

	c.JSON(http.StatusOK, gin.H{
		"user":      formatProfileResponse(user),
		"timeline":  timelineResponse,
		"todos":     todosResponse,
		"users":     usersResponse,
		"following": following,
	})
}

func (h *ProfileHandler) EditProfilePage(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	user, err := h.db.GetUser(userID.String())
	if err != nil {
		c.String(http.StatusNotFound, "page not found")
		return
	}

	c.JSON(http.StatusOK, formatProfileResponse(user))
}

// EditProfile обновляет профиль. Уникальность username/email проверяется
// с исключением самого пользователя; аватар — опциональный multipart файл.
func (h *ProfileHandler) EditProfile(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	user, err := h.db.GetUser(userID.String())
	if err != nil {
		c.String(http.StatusNotFound, "page not found")
		return
	}

	// Поля обязательны именно присутствием в форме: частичная отправка
	// не должна затирать остальные поля пустыми строками.
	for _, field := range []string{"username", "first_name", "last_name", "email"} {
		if _, ok := c.GetPostForm(field); !ok {
			c.String(http.StatusBadRequest, "Missing required fields")
			return
		}
	}

	var form dto.EditProfileForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, "Missing required fields")
		return
	}

	if existing, err := h.db.FindUserByUsername(form.Username); err == nil && existing.ID != user.ID {
		c.String(http.StatusBadRequest, "That username is already in use")
		return
	}

	if existing, err := h.db.FindUserByEmail(form.Email); err == nil && existing.ID != user.ID {
		c.String(http.StatusBadRequest, "That email is already in use")
		return
	}

	if file, err := c.FormFile("avatar"); err == nil && file != nil {
		src, err := file.Open()
		if err != nil {
			c.String(http.StatusInternalServerError, "internal error. try again.")
			return
		}
		defer src.Close()

		url, err := h.avatars.Save(file.Filename, src)
		if err != nil {
			if errors.Is(err, avatar.ErrBadExtension) {
				c.String(http.StatusBadRequest, "Please upload a valid image")
				return
			}
			c.String(http.StatusInternalServerError, "internal error. try again.")
			return
		}
		user.AvatarURL = url
	}

	user.Bio = form.Bio
	user.FirstName = form.FirstName
	user.LastName = form.LastName
	user.Email = form.Email
	user.Username = form.Username

	if err := h.db.UpdateUser(user); err != nil {
		c.String(http.StatusInternalServerError, "internal error. try again.")
		return
	}

	c.Redirect(http.StatusSeeOther, "/profile/"+user.Username)
}

// Follow добавляет направленное ребро подписки. Подписка на себя —
// no-op с редиректом на профиль.
func (h *ProfileHandler) Follow(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	target, err := h.db.FindUserByUsername(c.Param("username"))
	if err != nil {
		c.String(http.StatusNotFound, "page not found")
		return
	}

	if target.ID == userID {
		c.Redirect(http.StatusSeeOther, "/profile/"+target.Username)
		return
	}

	if err := h.db.Follow(userID.String(), target.ID.String()); err != nil &&
		!errors.Is(err, gorm.ErrDuplicatedKey) {
		c.String(http.StatusInternalServerError, "internal error. try again.")
		return
	}

	c.Redirect(http.StatusSeeOther, "/profile/"+target.Username)
}

func (h *ProfileHandler) Unfollow(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	target, err := h.db.FindUserByUsername(c.Param("username"))
	if err != nil {
		c.String(http.StatusNotFound, "page not found")
		return
	}

	if target.ID == userID {
		c.Redirect(http.StatusSeeOther, "/profile/"+target.Username)
		return
	}

	if err := h.db.Unfollow(userID.String(), target.ID.String()); err != nil {
		c.String(http.StatusInternalServerError, "internal error. try again.")
		return
	}

	c.Redirect(http.StatusSeeOther, "/profile/"+target.Username)
}

func formatProfileResponse(user *models.User) gin.H {
	return gin.H{
		"id":         user.ID,
		"username":   user.Username,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"email":      user.Email,
		"bio":        user.Bio,
		"avatar_url": user.AvatarURL,
		"created_at": user.CreatedAt,
	}
}
