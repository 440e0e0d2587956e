package validator

import (
	"fmt"
	"strings"
)

// Violation 单条校验失败，field 指向客户端可修正的输入项
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Violations 完整的校验结果，实现 error 接口
// 校验永远跑完所有规则再返回，客户端一次往返即可修正全部问题
type Violations []Violation

func (v Violations) Error() string {
	msgs := make([]string, 0, len(v))
	for _, violation := range v {
		msgs = append(msgs, fmt.Sprintf("%s: %s", violation.Field, violation.Message))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Add 追加一条校验失败
func (v *Violations) Add(field, message string) {
	*v = append(*v, Violation{Field: field, Message: message})
}

// AsError 没有失败时返回 nil，否则返回自身
func (v Violations) AsError() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// allowedReferenceMimeTypes 参考文件允许的声明类型
// 图片、PDF、常见 Office 文档和纯文本
var allowedReferenceMimeTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":       true,
	"text/plain": true,
}

// IsAllowedReferenceType 检查声明类型是否在参考文件允许列表中
func IsAllowedReferenceType(mimeType string) bool {
	// 去掉 charset 等参数
	if idx := strings.Index(mimeType, ";"); idx >= 0 {
		mimeType = strings.TrimSpace(mimeType[:idx])
	}
	if strings.HasPrefix(mimeType, "image/") {
		return true
	}
	return allowedReferenceMimeTypes[mimeType]
}

// ValidateReferenceUpload 校验参考文件上传，返回所有违反的约束
func ValidateReferenceUpload(size int64, mimeType string, maxBytes int64) Violations {
	var violations Violations

	if size > maxBytes {
		violations.Add("reference", fmt.Sprintf("file size %d exceeds maximum allowed %d bytes", size, maxBytes))
	}
	if !IsAllowedReferenceType(mimeType) {
		violations.Add("reference", fmt.Sprintf("file type %q is not allowed", mimeType))
	}

	return violations
}

// ValidateReferenceUpdate 校验参考文件元数据更新
func ValidateReferenceUpdate(originalFilename string) Violations {
	var violations Violations

	if strings.TrimSpace(originalFilename) == "" {
		violations.Add("originalFilename", "must not be blank")
	}
	if len(originalFilename) > 255 {
		violations.Add("originalFilename", "must not exceed 255 characters")
	}

	return violations
}

// ValidateCoverImage 校验封面图片：必须是图片且不超过大小限制
// sniffedType 来自内容嗅探而非客户端声明
func ValidateCoverImage(size int64, sniffedType string, maxBytes int64) Violations {
	var violations Violations

	if size > maxBytes {
		violations.Add("imageFile", fmt.Sprintf("file size %d exceeds maximum allowed %d bytes", size, maxBytes))
	}
	if !strings.HasPrefix(sniffedType, "image/") {
		violations.Add("imageFile", fmt.Sprintf("file content %q is not an image", sniffedType))
	}

	return violations
}
