package handlers_test

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/thereayou/taskboard/cmd/server"
	"github.com/thereayou/taskboard/internal/avatar"
	"github.com/thereayou/taskboard/internal/database"
	"github.com/thereayou/taskboard/internal/handlers"
	"github.com/thereayou/taskboard/internal/middleware"
	"github.com/thereayou/taskboard/internal/models"
	ws "github.com/thereayou/taskboard/internal/websocket"
	"github.com/thereayou/taskboard/pkg/session"
)

// testApp поднимает полный роутер на sqlite в памяти и miniredis.
type testApp struct {
	router     *gin.Engine
	db         *database.Database
	gorm       *gorm.DB
	sessions   *session.Manager
	avatarsDir string
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := database.Migrate(gormDB); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	db := database.NewDatabase(gormDB)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	sessions := session.NewManager(client, time.Hour)

	avatarsDir := t.TempDir()
	avatars, err := avatar.NewStorage(avatarsDir)
	if err != nil {
		t.Fatalf("Failed to init avatar storage: %v", err)
	}

	hub := ws.NewHub()
	go hub.Run()
	t.Cleanup(hub.Stop)

	router := gin.New()
	server.APIEndpoints(
		router,
		sessions,
		handlers.NewAuthHandler(db, sessions),
		handlers.NewTodoHandler(db, hub),
		handlers.NewProfileHandler(db, avatars),
		handlers.NewNotificationHandler(db),
		handlers.NewAvatarHandler(avatars),
		handlers.NewWebSocketHandler(hub),
	)

	return &testApp{
		router:     router,
		db:         db,
		gorm:       gormDB,
		sessions:   sessions,
		avatarsDir: avatarsDir,
	}
}

func (a *testApp) request(t *testing.T, method, path string, body io.Reader, contentType string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) get(t *testing.T, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	return a.request(t, http.MethodGet, path, nil, "", cookie)
}

func (a *testApp) postForm(t *testing.T, path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	return a.request(t, http.MethodPost, path, strings.NewReader(form.Encode()),
		"application/x-www-form-urlencoded", cookie)
}

// signUp регистрирует пользователя через HTTP и отдаёт его cookie сессии.
func (a *testApp) signUp(t *testing.T, username string) (*models.User, *http.Cookie) {
	t.Helper()

	form := url.Values{
		"username":   {username},
		"first_name": {"Test"},
		"last_name":  {"User"},
		"email":      {username + "@example.com"},
		"password":   {"Str0ng!pass"},
	}

	w := a.postForm(t, "/sign-up", form, nil)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("POST /sign-up status = %d, body = %q", w.Code, w.Body.String())
	}

	cookie := sessionCookie(w)
	if cookie == nil {
		t.Fatal("POST /sign-up did not set a session cookie")
	}

	user, err := a.db.FindUserByUsername(username)
	if err != nil {
		t.Fatalf("User %q missing after sign-up: %v", username, err)
	}

	return user, cookie
}

func (a *testApp) createTodo(t *testing.T, owner *models.User, title string) *models.Todo {
	t.Helper()

	todo := &models.Todo{UserID: owner.ID, Title: title}
	if err := a.db.SaveTodo(todo); err != nil {
		t.Fatalf("Failed to create todo %q: %v", title, err)
	}
	return todo
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookie && c.Value != "" {
			return c
		}
	}
	return nil
}
