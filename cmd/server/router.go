package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thereayou/taskboard/internal/handlers"
	"github.com/thereayou/taskboard/internal/middleware"
	"github.com/thereayou/taskboard/pkg/session"
)

func APIEndpoints(
	r *gin.Engine,
	sessions *session.Manager,
	authH *handlers.AuthHandler,
	todoH *handlers.TodoHandler,
	profileH *handlers.ProfileHandler,
	notificationH *handlers.NotificationHandler,
	avatarH *handlers.AvatarHandler,
	wsH *handlers.WebSocketHandler,
) {
	// Открытые страницы: сессия подхватывается, если есть
	anon := r.Group("/", middleware.LoadUser(sessions))
	{
		anon.GET("", authH.Index)
		anon.GET("/index", authH.Index)
		anon.GET("/login", authH.LoginPage)
		anon.POST("/login", authH.Login)
		anon.GET("/logout", authH.Logout)
		anon.GET("/sign-up", authH.SignUpPage)
		anon.POST("/sign-up", authH.SignUp)
	}

	// Аватары защищены только непредсказуемостью имени файла
	r.GET("/avatars/:filename", avatarH.Get)

	// Всё остальное — только с сессией
	authed := r.Group("/", middleware.RequireAuth(sessions))
	{
		authed.GET("/todo", todoH.List)
		authed.POST("/todo", todoH.Create)
		authed.GET("/todo/:id/complete", todoH.Complete)
		authed.POST("/todo/:id/edit", todoH.Edit)
		authed.GET("/todo/:id/like", todoH.Like)
		authed.GET("/todo/:id/unlike", todoH.Unlike)
		authed.GET("/todo/:id/delete", todoH.Delete)

		authed.GET("/profile/:username", profileH.Profile)
		authed.GET("/edit-profile", profileH.EditProfilePage)
		authed.POST("/edit-profile", profileH.EditProfile)
		authed.GET("/follow/:username", profileH.Follow)
		authed.GET("/unfollow/:username", profileH.Unfollow)

		authed.GET("/notifications", notificationH.List)
		authed.POST("/read-notifications", notificationH.MarkRead)

		authed.GET("/ws", wsH.HandleWebSocket)
	}

	r.NoRoute(func(c *gin.Context) {
		c.String(http.StatusNotFound, "page not found")
	})
}
