package references

import (
	"net/http"

	"github.com/NathanHymers98/spacebar/api/common"
	"github.com/NathanHymers98/spacebar/api/middleware"
	"github.com/gin-gonic/gin"
)

// Delete 删除参考文件
// 重复删除返回 404，删除不是幂等操作
func (h *Handler) Delete(c *gin.Context) {
	referenceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	userID, role, ok := middleware.CurrentUser(c)
	if !ok {
		common.RespondError(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	if err := h.service.Delete(c.Request.Context(), referenceID, userID, role); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
