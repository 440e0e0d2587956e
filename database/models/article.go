package models

import (
	"time"

	"gorm.io/gorm"
)

type Article struct {
	gorm.Model
	Title   string `gorm:"not null"`
	Content string

	AuthorID uint `gorm:"index;not null"`
	Author   User `gorm:"foreignKey:AuthorID"`

	// 封面在 public 分区 article_image/ 目录下的存储键（不含目录前缀）
	ImageFilename string

	PublishedAt *time.Time

	References []ArticleReference `gorm:"foreignKey:ArticleID"`
}
