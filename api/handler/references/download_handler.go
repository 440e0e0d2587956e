package references

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/NathanHymers98/spacebar/api/common"
	"github.com/NathanHymers98/spacebar/api/middleware"
	"github.com/gin-gonic/gin"
)

// Download 以附件形式下载参考文件内容
func (h *Handler) Download(c *gin.Context) {
	referenceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	userID, role, ok := middleware.CurrentUser(c)
	if !ok {
		common.RespondError(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	reference, stream, err := h.service.Download(c.Request.Context(), referenceID, userID, role)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	defer stream.Close()

	safeName := sanitizeFilename(reference.OriginalFilename)
	c.Header("Content-Disposition", fmt.Sprintf(
		`attachment; filename="%s"; filename*=UTF-8''%s`, safeName, url.PathEscape(reference.OriginalFilename),
	))

	c.DataFromReader(http.StatusOK, reference.FileSize, reference.MimeType, stream, nil)
}

// sanitizeFilename 去掉会破坏 Content-Disposition 头的字符
func sanitizeFilename(name string) string {
	replacer := strings.NewReplacer(`"`, "", "\r", "", "\n", "", ";", "")
	return replacer.Replace(name)
}
