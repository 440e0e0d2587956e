package core

import (
	"github.com/NathanHymers98/spacebar/database/repo/articles"
	"github.com/NathanHymers98/spacebar/database/repo/references"
	"github.com/NathanHymers98/spacebar/database/repo/users"
	"gorm.io/gorm"
)

// Repositories 聚合所有仓库实例
type Repositories struct {
	UsersRepo      *users.Repository
	ArticlesRepo   *articles.Repository
	ReferencesRepo *references.Repository
}

// NewRepositories 创建仓库集合
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		UsersRepo:      users.NewRepository(db),
		ArticlesRepo:   articles.NewRepository(db),
		ReferencesRepo: references.NewRepository(db),
	}
}
