package references

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/NathanHymers98/spacebar/api/common"
	"github.com/NathanHymers98/spacebar/database/models"
	"github.com/NathanHymers98/spacebar/internal/references"
	"github.com/NathanHymers98/spacebar/utils/validator"
	"github.com/gin-gonic/gin"
)

// Handler 参考文件处理器
type Handler struct {
	service *references.Service
}

// NewHandler 创建参考文件处理器
func NewHandler(service *references.Service) *Handler {
	return &Handler{service: service}
}

// referenceView 参考文件的对外表示，存储键不暴露
type referenceView struct {
	ID               uint   `json:"id"`
	OriginalFilename string `json:"original_filename"`
	MimeType         string `json:"mime_type"`
	FileSize         int64  `json:"file_size"`
	DownloadURL      string `json:"download_url"`
}

func newReferenceView(reference *models.ArticleReference) referenceView {
	return referenceView{
		ID:               reference.ID,
		OriginalFilename: reference.OriginalFilename,
		MimeType:         reference.MimeType,
		FileSize:         reference.FileSize,
		DownloadURL:      fmt.Sprintf("/api/admin/references/%d/download", reference.ID),
	}
}

// parseIDParam 解析路径中的数字 ID
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, fmt.Sprintf("invalid %s: %s", name, raw))
		return 0, false
	}
	return uint(id), true
}

// respondServiceError 把服务层错误映射到 HTTP 状态
func respondServiceError(c *gin.Context, err error) {
	var violations validator.Violations
	switch {
	case errors.As(err, &violations):
		common.RespondViolations(c, violations)
	case errors.Is(err, references.ErrArticleNotFound):
		common.RespondError(c, http.StatusNotFound, "Article not found")
	case errors.Is(err, references.ErrReferenceNotFound):
		common.RespondError(c, http.StatusNotFound, "Reference not found")
	case errors.Is(err, references.ErrForbidden):
		common.RespondError(c, http.StatusForbidden, "Access denied")
	case errors.Is(err, references.ErrIntegrity):
		common.RespondError(c, http.StatusInternalServerError, "Reference file is missing from storage")
	default:
		common.RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
