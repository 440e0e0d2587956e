package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slugify 将任意文件名规范化为 URL 安全的小写 token
// 空格和标点映射为连字符，重音字符转写为 ASCII
func Slugify(s string) string {
	// 去除重音符号（NFD 分解后丢弃组合标记）
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if normalized, _, err := transform.String(t, s); err == nil {
		s = normalized
	}

	var sb strings.Builder
	lastDash := true // 抑制前导连字符
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				sb.WriteByte('-')
				lastDash = true
			}
		}
	}

	return strings.TrimRight(sb.String(), "-")
}
