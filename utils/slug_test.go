package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSlugify 测试文件名规范化
func TestSlugify(t *testing.T) {
	cases := []struct {
		input    string
		expected string
	}{
		{"Space Bears", "space-bears"},
		{"Earth From Above", "earth-from-above"},
		{"astronaut_feeding.jpg", "astronaut-feeding-jpg"},
		{"Crème brûlée", "creme-brulee"},
		{"  leading and trailing  ", "leading-and-trailing"},
		{"UPPER_case-Mixed", "upper-case-mixed"},
		{"report(final)!!", "report-final"},
		{"1969-moon-landing", "1969-moon-landing"},
		{"", ""},
		{"!!!", ""},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, Slugify(tc.input))
		})
	}
}

// TestUniqueSuffix 测试唯一后缀的格式
func TestUniqueSuffix(t *testing.T) {
	pattern := regexp.MustCompile(`^[0-9a-f]{13}$`)

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		suffix := UniqueSuffix()
		assert.True(t, pattern.MatchString(suffix), "suffix should be 13 hex chars: %s", suffix)
		assert.False(t, seen[suffix], "suffix should not repeat: %s", suffix)
		seen[suffix] = true
	}
}
