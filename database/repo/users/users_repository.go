package users

import (
	"errors"
	"log"

	"github.com/NathanHymers98/spacebar/database/models"
	"github.com/NathanHymers98/spacebar/utils/crypto"
	"gorm.io/gorm"
)

// Repository 用户仓库
type Repository struct {
	db *gorm.DB
}

// NewRepository 创建新的用户仓库
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetByUsername 通过用户名获取用户，不存在时返回 nil 而非错误
func (r *Repository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetByID 通过ID获取用户，不存在时返回 nil 而非错误
func (r *Repository) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// Create 创建用户
func (r *Repository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// CreateDefaultAdminUser 没有任何用户时创建默认管理员
func (r *Repository) CreateDefaultAdminUser() {
	var count int64
	if err := r.db.Model(&models.User{}).Count(&count).Error; err != nil {
		log.Printf("Failed to count users: %v", err)
		return
	}
	if count > 0 {
		return
	}

	password, err := crypto.GenerateFromPassword("admin")
	if err != nil {
		log.Printf("Failed to hash default admin password: %v", err)
		return
	}

	admin := &models.User{
		Username: "admin",
		Password: password,
		Role:     "admin",
	}
	if err := r.db.Create(admin).Error; err != nil {
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			log.Printf("Failed to create default admin user: %v", err)
		}
		return
	}

	log.Println("Created default admin user 'admin' with password 'admin', please change it immediately")
}
