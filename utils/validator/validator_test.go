package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const maxBytes = 5 << 20

// TestValidateReferenceUpload_AllViolationsReported 全部规则都违反时一次性返回所有失败
func TestValidateReferenceUpload_AllViolationsReported(t *testing.T) {
	violations := ValidateReferenceUpload(maxBytes+1, "application/x-msdownload", maxBytes)

	require.Len(t, violations, 2)
	assert.Contains(t, violations.Error(), "exceeds maximum")
	assert.Contains(t, violations.Error(), "not allowed")
}

// TestValidateReferenceUpload_Valid 合法上传没有校验失败
func TestValidateReferenceUpload_Valid(t *testing.T) {
	cases := []string{
		"application/pdf",
		"image/png",
		"image/jpeg",
		"text/plain",
		"text/plain; charset=utf-8",
		"application/msword",
		"application/vnd.ms-excel",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	}

	for _, mimeType := range cases {
		t.Run(mimeType, func(t *testing.T) {
			violations := ValidateReferenceUpload(1024, mimeType, maxBytes)
			assert.Nil(t, violations.AsError())
		})
	}
}

// TestValidateReferenceUpload_DisallowedTypes 不在允许列表的类型被拒绝
func TestValidateReferenceUpload_DisallowedTypes(t *testing.T) {
	cases := []string{
		"application/zip",
		"application/x-msdownload",
		"video/mp4",
		"text/html",
		"",
	}

	for _, mimeType := range cases {
		t.Run(mimeType, func(t *testing.T) {
			violations := ValidateReferenceUpload(1024, mimeType, maxBytes)
			require.Len(t, violations, 1)
			assert.Equal(t, "reference", violations[0].Field)
		})
	}
}

// TestValidateReferenceUpload_SizeBoundary 恰好等于上限的大小可以通过
func TestValidateReferenceUpload_SizeBoundary(t *testing.T) {
	assert.Nil(t, ValidateReferenceUpload(maxBytes, "application/pdf", maxBytes).AsError())
	assert.NotNil(t, ValidateReferenceUpload(maxBytes+1, "application/pdf", maxBytes).AsError())
}

// TestValidateReferenceUpdate 展示名的校验
func TestValidateReferenceUpdate(t *testing.T) {
	assert.Nil(t, ValidateReferenceUpdate("annual report.pdf").AsError())

	blank := ValidateReferenceUpdate("   ")
	require.Len(t, blank, 1)
	assert.Equal(t, "originalFilename", blank[0].Field)
	assert.Contains(t, blank[0].Message, "blank")

	tooLong := ValidateReferenceUpdate(strings.Repeat("a", 256))
	require.Len(t, tooLong, 1)
	assert.Contains(t, tooLong[0].Message, "255")
}

// TestValidateCoverImage 封面必须是图片内容
func TestValidateCoverImage(t *testing.T) {
	assert.Nil(t, ValidateCoverImage(1024, "image/png", maxBytes).AsError())
	assert.Nil(t, ValidateCoverImage(1024, "image/jpeg", maxBytes).AsError())

	notImage := ValidateCoverImage(1024, "application/pdf", maxBytes)
	require.Len(t, notImage, 1)
	assert.Equal(t, "imageFile", notImage[0].Field)

	// 超大的非图片文件同时报两条
	both := ValidateCoverImage(maxBytes+1, "application/pdf", maxBytes)
	assert.Len(t, both, 2)
}

// TestViolations_AsError 空的校验结果不是错误
func TestViolations_AsError(t *testing.T) {
	var violations Violations
	assert.Nil(t, violations.AsError())

	violations.Add("field", "message")
	require.NotNil(t, violations.AsError())
	assert.Contains(t, violations.Error(), "field: message")
}
