package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thereayou/taskboard/pkg/session"
)

const (
	UserIDKey = "userID"

	// SessionCookie — имя cookie с токеном сессии
	SessionCookie = "session_token"
)

// RequireAuth проверяет cookie сессии и кладёт userID в контекст.
// Анонимов отправляет на /login.
func RequireAuth(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil || token == "" {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}

		userID, err := sessions.UserID(c.Request.Context(), token)
		if err != nil {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// LoadUser — мягкий вариант для страниц, доступных анонимам:
// userID попадает в контекст, если сессия есть, иначе идём дальше.
func LoadUser(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err == nil && token != "" {
			if userID, err := sessions.UserID(c.Request.Context(), token); err == nil {
				c.Set(UserIDKey, userID)
			}
		}
		c.Next()
	}
}
