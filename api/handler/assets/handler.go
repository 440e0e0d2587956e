package assets

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/NathanHymers98/spacebar/api/common"
	"github.com/NathanHymers98/spacebar/storage"
	"github.com/gin-gonic/gin"
)

// Handler 公开资源处理器，只服务 public 分区
type Handler struct {
	store *storage.Factory
}

// NewHandler 创建公开资源处理器
func NewHandler(store *storage.Factory) *Handler {
	return &Handler{store: store}
}

// Serve 流式返回 public 分区中的文件
// 路径形如 /uploads/article_image/space-bears-5f2e6c8a9b1d3.jpg
func (h *Handler) Serve(c *gin.Context) {
	path := strings.TrimPrefix(c.Param("path"), "/")
	if path == "" || !storage.IsValidStoragePath(path) {
		common.RespondError(c, http.StatusNotFound, "File not found")
		return
	}

	stream, err := h.store.Public().GetWithContext(c.Request.Context(), path)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			common.RespondError(c, http.StatusNotFound, "File not found")
			return
		}
		common.RespondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	defer stream.Close()

	// 存储键不可变，内容可以长期缓存
	c.Header("Cache-Control", "public, max-age=2592000, immutable")
	c.Status(http.StatusOK)

	if _, err := io.Copy(c.Writer, stream); err != nil {
		log.Printf("Failed to stream asset to client: %v", err)
	}
}
