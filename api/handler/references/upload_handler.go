package references

import (
	"net/http"

	"github.com/NathanHymers98/spacebar/api/common"
	"github.com/NathanHymers98/spacebar/api/middleware"
	"github.com/NathanHymers98/spacebar/internal/references"
	"github.com/NathanHymers98/spacebar/utils/validator"
	"github.com/gin-gonic/gin"
)

// Upload 为文章上传参考文件
// 文件在 multipart 表单的 reference 字段中
func (h *Handler) Upload(c *gin.Context) {
	articleID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	userID, role, ok := middleware.CurrentUser(c)
	if !ok {
		common.RespondError(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	fileHeader, err := c.FormFile("reference")
	if err != nil {
		// 缺少文件与其他校验失败走同样的返回形式
		var violations validator.Violations
		violations.Add("reference", "no file was uploaded")
		common.RespondViolations(c, violations)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "Could not read uploaded file")
		return
	}
	defer file.Close()

	reference, err := h.service.Create(c.Request.Context(), articleID, userID, role, &references.UploadInput{
		File:             file,
		OriginalFilename: fileHeader.Filename,
		Size:             fileHeader.Size,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	common.RespondCreated(c, newReferenceView(reference))
}
