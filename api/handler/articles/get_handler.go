package articles

import (
	"net/http"
	"strconv"

	"github.com/NathanHymers98/spacebar/api/common"
	"github.com/NathanHymers98/spacebar/api/middleware"
	"github.com/gin-gonic/gin"
)

// Get 查看单篇文章
func (h *Handler) Get(c *gin.Context) {
	articleID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	userID, role, ok := middleware.CurrentUser(c)
	if !ok {
		common.RespondError(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	article, err := h.service.Get(articleID, userID, role)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	common.RespondSuccess(c, h.newArticleView(article))
}

// List 分页列举文章
func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	list, total, err := h.service.List(page, pageSize)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	views := make([]articleView, 0, len(list))
	for _, article := range list {
		views = append(views, h.newArticleView(article))
	}

	common.RespondSuccess(c, gin.H{
		"articles":  views,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}
