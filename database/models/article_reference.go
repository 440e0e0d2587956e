package models

import "gorm.io/gorm"

// ArticleReference 附在文章上的参考文件元数据
// 字节本体在 private 分区 article_reference/ 目录下，键为 Filename
type ArticleReference struct {
	gorm.Model
	ArticleID uint `gorm:"index;not null"`

	// 存储键，创建后不可变，删除后也不会复用
	Filename string `gorm:"uniqueIndex;not null"`

	// 客户端上传时的原始文件名，下载时用作建议保存名
	OriginalFilename string `gorm:"not null"`

	MimeType string `gorm:"not null"`
	FileSize int64  `gorm:"not null"`
}
