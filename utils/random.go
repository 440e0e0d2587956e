package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// UniqueSuffix 生成 13 位十六进制唯一后缀，用于存储键去重
// 不依赖文件系统查重，碰撞安全性由随机数保证
func UniqueSuffix() string {
	bytes := make([]byte, 7)
	if _, err := rand.Read(bytes); err != nil {
		// crypto/rand 失败说明系统熵源不可用，无法继续
		panic(fmt.Sprintf("failed to read random bytes: %v", err))
	}
	return hex.EncodeToString(bytes)[:13]
}
