package utils

import (
	"strings"
	"unicode"
)

// SanitizeLogMessage 过滤不可打印字符，防止日志注入
func SanitizeLogMessage(msg string) string {
	var sb strings.Builder
	for _, r := range msg {
		if r == 10 || r == 9 {
			sb.WriteRune(r)
		} else if unicode.IsPrint(r) || unicode.IsGraphic(r) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// SanitizeLogFilename 截断并过滤用户提供的文件名
func SanitizeLogFilename(name string) string {
	if len(name) > 100 {
		name = name[:100] + "..."
	}
	return SanitizeLogMessage(name)
}
