package articles

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/NathanHymers98/spacebar/api/common"
	"github.com/NathanHymers98/spacebar/database/models"
	"github.com/NathanHymers98/spacebar/internal/articles"
	"github.com/NathanHymers98/spacebar/utils/validator"
	"github.com/gin-gonic/gin"
)

// Handler 文章处理器
type Handler struct {
	service *articles.Service
}

// NewHandler 创建文章处理器
func NewHandler(service *articles.Service) *Handler {
	return &Handler{service: service}
}

// articleView 文章的对外表示
type articleView struct {
	ID       uint   `json:"id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	AuthorID uint   `json:"author_id"`
	CoverURL string `json:"cover_url,omitempty"`
}

func (h *Handler) newArticleView(article *models.Article) articleView {
	return articleView{
		ID:       article.ID,
		Title:    article.Title,
		Content:  article.Content,
		AuthorID: article.AuthorID,
		CoverURL: h.service.CoverURL(article),
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

// coverFromForm 从 multipart 表单提取封面，imageFile 字段可以缺席
func coverFromForm(c *gin.Context) (*articles.CoverInput, multipart.File, error) {
	fileHeader, err := c.FormFile("imageFile")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil, nil
		}
		return nil, nil, err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, nil, err
	}

	return &articles.CoverInput{
		File:             file,
		OriginalFilename: fileHeader.Filename,
		Size:             fileHeader.Size,
	}, file, nil
}

// respondServiceError 把服务层错误映射到 HTTP 状态
func respondServiceError(c *gin.Context, err error) {
	var violations validator.Violations
	switch {
	case errors.As(err, &violations):
		common.RespondViolations(c, violations)
	case errors.Is(err, articles.ErrNotFound):
		common.RespondError(c, http.StatusNotFound, "Article not found")
	case errors.Is(err, articles.ErrForbidden):
		common.RespondError(c, http.StatusForbidden, "Access denied")
	default:
		common.RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
