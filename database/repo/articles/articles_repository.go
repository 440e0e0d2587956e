package articles

import (
	"github.com/NathanHymers98/spacebar/database/models"
	"gorm.io/gorm"
)

// Repository 文章仓库
type Repository struct {
	db *gorm.DB
}

// NewRepository 创建新的文章仓库
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create 创建文章
func (r *Repository) Create(article *models.Article) error {
	return r.db.Create(article).Error
}

// GetByID 通过ID获取文章
func (r *Repository) GetByID(id uint) (*models.Article, error) {
	var article models.Article
	err := r.db.First(&article, id).Error
	return &article, err
}

// Update 更新文章
func (r *Repository) Update(article *models.Article) error {
	return r.db.Save(article).Error
}

// List 获取文章列表
func (r *Repository) List(page, pageSize int) ([]*models.Article, int64, error) {
	var articles []*models.Article
	var total int64

	db := r.db.Model(&models.Article{})
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := db.Order("created_at desc").Offset(offset).Limit(pageSize).Find(&articles).Error
	return articles, total, err
}
