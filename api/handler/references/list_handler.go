package references

import (
	"net/http"

	"github.com/NathanHymers98/spacebar/api/common"
	"github.com/NathanHymers98/spacebar/api/middleware"
	"github.com/gin-gonic/gin"
)

// List 列举文章的全部参考文件
func (h *Handler) List(c *gin.Context) {
	articleID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	userID, role, ok := middleware.CurrentUser(c)
	if !ok {
		common.RespondError(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	list, err := h.service.List(c.Request.Context(), articleID, userID, role)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	views := make([]referenceView, 0, len(list))
	for _, reference := range list {
		views = append(views, newReferenceView(reference))
	}

	common.RespondSuccess(c, gin.H{
		"references": views,
	})
}
