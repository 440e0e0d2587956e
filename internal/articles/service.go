package articles

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/NathanHymers98/spacebar/database/models"
	"github.com/NathanHymers98/spacebar/database/repo/articles"
	"github.com/NathanHymers98/spacebar/internal/access"
	"github.com/NathanHymers98/spacebar/internal/uploader"
	utilsmime "github.com/NathanHymers98/spacebar/utils/mime"
	"github.com/NathanHymers98/spacebar/utils/validator"
	"gorm.io/gorm"
)

var (
	// ErrNotFound 文章不存在
	ErrNotFound = errors.New("article not found")

	// ErrForbidden 当前用户无权编辑该文章
	ErrForbidden = errors.New("not allowed to manage this article")
)

// CoverInput 封面图片输入
type CoverInput struct {
	File             io.ReadSeeker
	OriginalFilename string
	Size             int64
}

// ArticleInput 文章创建和编辑的公共字段
type ArticleInput struct {
	Title   string
	Content string
	Cover   *CoverInput
}

// Service 文章服务
type Service struct {
	articlesRepo *articles.Repository
	helper       *uploader.Helper
	maxBytes     int64
}

// NewService 创建文章服务
func NewService(articlesRepo *articles.Repository, helper *uploader.Helper, maxBytes int64) *Service {
	return &Service{
		articlesRepo: articlesRepo,
		helper:       helper,
		maxBytes:     maxBytes,
	}
}

// validateInput 校验文章字段和封面，跑完所有规则再返回
// coverRequired 为真时缺少封面也是一条校验失败
func (s *Service) validateInput(input *ArticleInput, coverRequired bool) validator.Violations {
	var violations validator.Violations

	if strings.TrimSpace(input.Title) == "" {
		violations.Add("title", "must not be blank")
	}
	if len(input.Title) > 255 {
		violations.Add("title", "must not exceed 255 characters")
	}
	if strings.TrimSpace(input.Content) == "" {
		violations.Add("content", "must not be blank")
	}

	if input.Cover != nil && input.Cover.File != nil {
		detected, err := utilsmime.SniffContentType(input.Cover.File)
		if err != nil {
			violations.Add("imageFile", "could not read uploaded file")
		} else {
			violations = append(violations, validator.ValidateCoverImage(input.Cover.Size, detected.MIME, s.maxBytes)...)
		}
	} else if coverRequired {
		violations.Add("imageFile", "a cover image is required")
	}

	return violations
}

// Create 创建文章，封面必填
func (s *Service) Create(ctx context.Context, userID uint, input *ArticleInput) (*models.Article, error) {
	if violations := s.validateInput(input, true); len(violations) > 0 {
		return nil, violations
	}

	imageFilename, err := s.helper.UploadArticleImage(ctx, input.Cover.File, input.Cover.OriginalFilename, "")
	if err != nil {
		return nil, err
	}

	article := &models.Article{
		Title:         strings.TrimSpace(input.Title),
		Content:       input.Content,
		AuthorID:      userID,
		ImageFilename: imageFilename,
	}

	if err := s.articlesRepo.Create(article); err != nil {
		return nil, fmt.Errorf("failed to create article: %w", err)
	}

	return article, nil
}

// Update 编辑文章，封面可选
// 上传了新封面时旧封面会被尽力清理
func (s *Service) Update(ctx context.Context, articleID uint, userID uint, role string, input *ArticleInput) (*models.Article, error) {
	article, err := s.Get(articleID, userID, role)
	if err != nil {
		return nil, err
	}

	if violations := s.validateInput(input, false); len(violations) > 0 {
		return nil, violations
	}

	if input.Cover != nil && input.Cover.File != nil {
		imageFilename, err := s.helper.UploadArticleImage(ctx, input.Cover.File, input.Cover.OriginalFilename, article.ImageFilename)
		if err != nil {
			return nil, err
		}
		article.ImageFilename = imageFilename
	}

	article.Title = strings.TrimSpace(input.Title)
	article.Content = input.Content

	if err := s.articlesRepo.Update(article); err != nil {
		return nil, fmt.Errorf("failed to update article: %w", err)
	}

	return article, nil
}

// Get 加载文章并校验当前用户的管理权限
func (s *Service) Get(articleID uint, userID uint, role string) (*models.Article, error) {
	article, err := s.articlesRepo.GetByID(articleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load article: %w", err)
	}
	if !access.CanManage(userID, role, article) {
		return nil, ErrForbidden
	}
	return article, nil
}

// List 分页列举文章
func (s *Service) List(page, pageSize int) ([]*models.Article, int64, error) {
	return s.articlesRepo.List(page, pageSize)
}

// CoverURL 构造文章封面的公开访问地址，没有封面返回空串
func (s *Service) CoverURL(article *models.Article) string {
	if article.ImageFilename == "" {
		return ""
	}
	return s.helper.PublicPath(uploader.ArticleImage + "/" + article.ImageFilename)
}
