package articles

import (
	"net/http"

	"github.com/NathanHymers98/spacebar/api/common"
	"github.com/NathanHymers98/spacebar/api/middleware"
	"github.com/NathanHymers98/spacebar/internal/articles"
	"github.com/gin-gonic/gin"
)

// Update 编辑文章
// imageFile 缺席时保留当前封面，上传新封面会替换并清理旧文件
func (h *Handler) Update(c *gin.Context) {
	articleID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	userID, role, ok := middleware.CurrentUser(c)
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

	article, err := h.service.Update(c.Request.Context(), articleID, userID, role, &articles.ArticleInput{
		Title:   c.PostForm("title"),
		Content: c.PostForm("content"),
		Cover:   cover,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	common.RespondSuccess(c, h.newArticleView(article))
}
