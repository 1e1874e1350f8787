package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"github.com/thereayou/taskboard/internal/avatar"
	"github.com/thereayou/taskboard/internal/database"
	"github.com/thereayou/taskboard/internal/handlers"
	ws "github.com/thereayou/taskboard/internal/websocket"
	"github.com/thereayou/taskboard/pkg/session"
)

type Server struct {
	Router   *gin.Engine
	DB       *database.Database
	Redis    *redis.Client
	Sessions *session.Manager
	Hub      *ws.Hub
}

func NewServer() *Server {
	if err := godotenv.Load(".env.local"); err != nil {
		if err := godotenv.Load(); err != nil {
			log.Println(".env not found, using environment variables")
		}
	}

	dbConn := &database.Database{}
	if err := dbConn.Connect(); err != nil {
		log.Fatalf("Postgres connect failed: %v", err)
	}

	redisOpts, err := redis.ParseURL(os.Getenv("REDIS_URL"))
	if err != nil {
		log.Fatalf("invalid REDIS_URL: %v", err)
	}
	rdb := redis.NewClient(redisOpts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Redis connect failed: %v", err)
	}

	sessions := session.NewManager(rdb, sessionTTL())

	avatars, err := avatar.NewStorage(avatarsDir())
	if err != nil {
		log.Fatalf("avatar storage init failed: %v", err)
	}

	hub := ws.NewHub()
	go hub.Run()

	authH := handlers.NewAuthHandler(dbConn, sessions)
	todoH := handlers.NewTodoHandler(dbConn, hub)
	profileH := handlers.NewProfileHandler(dbConn, avatars)
	notificationH := handlers.NewNotificationHandler(dbConn)
	avatarH := handlers.NewAvatarHandler(avatars)
	wsH := handlers.NewWebSocketHandler(hub)

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		c.String(http.StatusInternalServerError, "internal server error")
	}))

	APIEndpoints(router, sessions, authH, todoH, profileH, notificationH, avatarH, wsH)

	return &Server{
		Router:   router,
		DB:       dbConn,
		Redis:    rdb,
		Sessions: sessions,
		Hub:      hub,
	}
}

func (s *Server) Run() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server starting on port %s", port)
	if err := s.Router.Run(":" + port); err != nil {
		log.Fatalf("Server run error: %v", err)
	}
}

func sessionTTL() time.Duration {
	hours, err := strconv.Atoi(os.Getenv("SESSION_TTL_HOURS"))
	if err != nil || hours <= 0 {
		hours = 24
	}
	return time.Duration(hours) * time.Hour
}

func avatarsDir() string {
	dir := os.Getenv("AVATARS_DIR")
	if dir == "" {
		dir = "./avatars"
	}
	return dir
}
