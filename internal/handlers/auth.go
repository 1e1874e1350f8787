package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/thereayou/taskboard/internal/database"
	"github.com/thereayou/taskboard/internal/handlers/dto"
	"github.com/thereayou/taskboard/internal/middleware"
	"github.com/thereayou/taskboard/internal/models"
	"github.com/thereayou/taskboard/pkg/session"
)

// Хеш пароля "password": выравнивает время ответа, когда
// пользователя с таким username нет.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

type AuthHandler struct {
	db       *database.Database
	sessions *session.Manager
}

func NewAuthHandler(db *database.Database, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{db: db, sessions: sessions}
}

// Index отправляет авторизованных на список задач.
func (h *AuthHandler) Index(c *gin.Context) {
	if _, ok := c.Get(middleware.UserIDKey); ok {
		c.Redirect(http.StatusSeeOther, "/todo")
		return
	}
	c.String(http.StatusOK, "taskboard: sign up at /sign-up or log in at /login")
}

func (h *AuthHandler) LoginPage(c *gin.Context) {
	if _, ok := c.Get(middleware.UserIDKey); ok {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	c.String(http.StatusOK, "log in with username and password")
}

// Login проверяет пароль и выдаёт cookie сессии. Сообщение об ошибке
// одно на оба случая, чтобы нельзя было перебирать имена.
func (h *AuthHandler) Login(c *gin.Context) {
	var form dto.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, "Please enter both a username and a password")
		return
	}

	if form.Username == "" || form.Password == "" {
		c.String(http.StatusBadRequest, "Please enter both a username and a password")
		return
	}

	user, err := h.db.FindUserByUsername(form.Username)
	if err != nil {
		bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(form.Password))
		c.String(http.StatusUnauthorized, "Invalid username or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(form.Password)); err != nil {
		c.String(http.StatusUnauthorized, "Invalid username or password")
		return
	}

	if err := h.startSession(c, user); err != nil {
		c.String(http.StatusInternalServerError, "internal error. try again.")
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

// Logout удаляет сессию на сервере и гасит cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(middleware.SessionCookie); err == nil && token != "" {
		h.sessions.Destroy(c.Request.Context(), token)
	}

	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *AuthHandler) SignUpPage(c *gin.Context) {
	if _, ok := c.Get(middleware.UserIDKey); ok {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	c.String(http.StatusOK, "sign up with username, first_name, last_name, email and password")
}

// SignUp создаёт пользователя и сразу логинит его.
func (h *AuthHandler) SignUp(c *gin.Context) {
	if _, ok := c.Get(middleware.UserIDKey); ok {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	var form dto.RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, "Missing required fields")
		return
	}

	if form.Username == "" || form.FirstName == "" || form.LastName == "" ||
		form.Email == "" || form.Password == "" {
		c.String(http.StatusBadRequest, "Missing required fields")
		return
	}

	if _, err := h.db.FindUserByUsername(form.Username); err == nil {
		c.String(http.StatusBadRequest, "Username is already in use")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.String(http.StatusInternalServerError, "internal error. try again.")
		return
	}

	if _, err := h.db.FindUserByEmail(form.Email); err == nil {
		c.String(http.StatusBadRequest, "Email is already in use")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.String(http.StatusInternalServerError, "internal error. try again.")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		c.String(http.StatusInternalServerError, "internal error. try again.")
		return
	}

	user := &models.User{
		Username:     form.Username,
		FirstName:    form.FirstName,
		LastName:     form.LastName,
		Email:        form.Email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	if err := h.db.SaveUser(user); err != nil {
		c.String(http.StatusInternalServerError, "internal error. try again.")
		return
	}

	if err := h.startSession(c, user); err != nil {
		c.String(http.StatusInternalServerError, "internal error. try again.")
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

func (h *AuthHandler) startSession(c *gin.Context, user *models.User) error {
	token, err := h.sessions.Create(c.Request.Context(), user.ID)
	if err != nil {
		return err
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, int(h.sessions.TTL().Seconds()), "/", "", false, true)
	return nil
}
