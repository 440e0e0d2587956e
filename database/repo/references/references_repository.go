package references

import (
	"github.com/NathanHymers98/spacebar/database/models"
	"gorm.io/gorm"
)

// Repository 参考文件仓库
type Repository struct {
	db *gorm.DB
}

// NewRepository 创建新的参考文件仓库
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create 创建参考文件记录
func (r *Repository) Create(reference *models.ArticleReference) error {
	return r.db.Create(reference).Error
}

// GetByID 通过ID获取参考文件记录
func (r *Repository) GetByID(id uint) (*models.ArticleReference, error) {
	var reference models.ArticleReference
	err := r.db.First(&reference, id).Error
	return &reference, err
}

// ListByArticle 获取文章的全部参考文件，按创建顺序排列
func (r *Repository) ListByArticle(articleID uint) ([]*models.ArticleReference, error) {
	var references []*models.ArticleReference
	err := r.db.Where("article_id = ?", articleID).Order("id asc").Find(&references).Error
	return references, err
}

// Update 更新参考文件记录
func (r *Repository) Update(reference *models.ArticleReference) error {
	return r.db.Save(reference).Error
}

// Delete 删除参考文件记录
// 记录已经不存在时返回 gorm.ErrRecordNotFound
func (r *Repository) Delete(id uint) error {
	result := r.db.Delete(&models.ArticleReference{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
