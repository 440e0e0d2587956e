package references

import (
	"net/http"

	"github.com/NathanHymers98/spacebar/api/common"
	"github.com/NathanHymers98/spacebar/api/middleware"
	"github.com/gin-gonic/gin"
)

type updateReferenceRequest struct {
	OriginalFilename string `json:"original_filename"`
}

// Update 修改参考文件的展示名
// 存储键和文件内容不受影响
func (h *Handler) Update(c *gin.Context) {
	referenceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	userID, role, ok := middleware.CurrentUser(c)
	if !ok {
		common.RespondError(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req updateReferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	reference, err := h.service.Update(c.Request.Context(), referenceID, userID, role, req.OriginalFilename)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	common.RespondSuccess(c, newReferenceView(reference))
}
