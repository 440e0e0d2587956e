package articles

import (
	"net/http"

	"github.com/NathanHymers98/spacebar/api/common"
	"github.com/NathanHymers98/spacebar/api/middleware"
	"github.com/NathanHymers98/spacebar/internal/articles"
	"github.com/gin-gonic/gin"
)

// Create 创建文章
// multipart 表单字段：title、content、imageFile（必填）
func (h *Handler) Create(c *gin.Context) {
	userID, _, ok := middleware.CurrentUser(c)
	if !ok {
		common.RespondError(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	cover, file, err := coverFromForm(c)
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "Could not read uploaded file")
		return
	}
	if file != nil {
		defer file.Close()
	}

	article, err := h.service.Create(c.Request.Context(), userID, &articles.ArticleInput{
		Title:   c.PostForm("title"),
		Content: c.PostForm("content"),
		Cover:   cover,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	common.RespondCreated(c, h.newArticleView(article))
}
