package handlers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/thereayou/taskboard/internal/avatar"
)

type AvatarHandler struct {
	avatars *avatar.Storage
}

func NewAvatarHandler(avatars *avatar.Storage) *AvatarHandler {
	return &AvatarHandler{avatars: avatars}
}

// Get отдаёт файл аватара по имени. Никакого контроля доступа:
// защита — непредсказуемость имени.
func (h *AvatarHandler) Get(c *gin.Context) {
	path := h.avatars.Path(c.Param("filename"))

	if _, err := os.Stat(path); err != nil {
		c.String(http.StatusNotFound, "page not found")
		return
	}

	c.File(path)
}
