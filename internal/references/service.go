package references

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/NathanHymers98/spacebar/cache"
	"github.com/NathanHymers98/spacebar/database/models"
	"github.com/NathanHymers98/spacebar/database/repo/articles"
	"github.com/NathanHymers98/spacebar/database/repo/references"
	"github.com/NathanHymers98/spacebar/internal/access"
	"github.com/NathanHymers98/spacebar/internal/uploader"
	"github.com/NathanHymers98/spacebar/storage"
	"github.com/NathanHymers98/spacebar/utils"
	utilsmime "github.com/NathanHymers98/spacebar/utils/mime"
	"github.com/NathanHymers98/spacebar/utils/validator"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

var metaGroup singleflight.Group

// UploadInput 参考文件上传输入
// Size 和 OriginalFilename 来自 multipart 头，类型以内容嗅探为准
type UploadInput struct {
	File             io.ReadSeeker
	OriginalFilename string
	Size             int64
}

// Service 参考文件服务
// 负责文章参考文件的上传、列举、下载、改名和删除
type Service struct {
	referencesRepo *references.Repository
	articlesRepo   *articles.Repository
	helper         *uploader.Helper
	cacheProvider  cache.Provider
	maxBytes       int64
	cacheTTL       time.Duration
}

// NewService 创建参考文件服务
func NewService(
	referencesRepo *references.Repository,
	articlesRepo *articles.Repository,
	helper *uploader.Helper,
	cacheProvider cache.Provider,
	maxBytes int64,
	cacheTTL time.Duration,
) *Service {
	return &Service{
		referencesRepo: referencesRepo,
		articlesRepo:   articlesRepo,
		helper:         helper,
		cacheProvider:  cacheProvider,
		maxBytes:       maxBytes,
		cacheTTL:       cacheTTL,
	}
}

// loadArticleForUser 加载文章并校验当前用户的管理权限
func (s *Service) loadArticleForUser(articleID uint, userID uint, role string) (*models.Article, error) {
	article, err := s.articlesRepo.GetByID(articleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, fmt.Errorf("failed to load article: %w", err)
	}
	if !access.CanManage(userID, role, article) {
		return nil, ErrForbidden
	}
	return article, nil
}

// loadReferenceForUser 加载参考文件记录并校验对所属文章的管理权限
// 权限判定依据记录当前所属的文章，每次调用都重新检查
func (s *Service) loadReferenceForUser(ctx context.Context, referenceID uint, userID uint, role string) (*models.ArticleReference, error) {
	reference, err := s.getReference(ctx, referenceID)
	if err != nil {
		return nil, err
	}
	if _, err := s.loadArticleForUser(reference.ArticleID, userID, role); err != nil {
		// 记录存在但文章被删时按记录不存在处理
		if errors.Is(err, ErrArticleNotFound) {
			return nil, ErrReferenceNotFound
		}
		return nil, err
	}
	return reference, nil
}

// getReference 读取参考文件元数据，优先走缓存
func (s *Service) getReference(ctx context.Context, referenceID uint) (*models.ArticleReference, error) {
	cacheKey := fmt.Sprintf("reference_meta_%d", referenceID)

	if s.cacheProvider != nil {
		var cached models.ArticleReference
		err := s.cacheProvider.Get(ctx, cacheKey, &cached)
		if err == nil {
			return &cached, nil
		}
		if !cache.IsCacheMiss(err) {
			log.Printf("Cache error while reading reference %d: %v", referenceID, err)
		}
	}

	// 使用singleflight防止缓存击穿
	val, err, _ := metaGroup.Do(cacheKey, func() (interface{}, error) {
		reference, err := s.referencesRepo.GetByID(referenceID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrReferenceNotFound
			}
			return nil, fmt.Errorf("failed to load reference: %w", err)
		}

		if s.cacheProvider != nil {
			if err := s.cacheProvider.Set(ctx, cacheKey, reference, s.cacheTTL); err != nil {
				log.Printf("Cache error while storing reference %d: %v", referenceID, err)
			}
		}
		return reference, nil
	})
	if err != nil {
		return nil, err
	}

	return val.(*models.ArticleReference), nil
}

// invalidateCache 删除参考文件的缓存条目
func (s *Service) invalidateCache(ctx context.Context, referenceID uint) {
	if s.cacheProvider == nil {
		return
	}
	cacheKey := fmt.Sprintf("reference_meta_%d", referenceID)
	if err := s.cacheProvider.Delete(ctx, cacheKey); err != nil && !cache.IsCacheMiss(err) {
		log.Printf("Cache error while invalidating reference %d: %v", referenceID, err)
	}
}

// Create 为文章上传一个新的参考文件
// 校验全部通过后先写存储再写记录，记录写入失败不回滚已写入的文件
func (s *Service) Create(ctx context.Context, articleID uint, userID uint, role string, input *UploadInput) (*models.ArticleReference, error) {
	if _, err := s.loadArticleForUser(articleID, userID, role); err != nil {
		return nil, err
	}

	if input == nil || input.File == nil {
		var violations validator.Violations
		violations.Add("reference", "no file was uploaded")
		return nil, violations
	}

	detected, err := utilsmime.SniffContentType(input.File)
	if err != nil {
		return nil, fmt.Errorf("failed to detect content type: %w", err)
	}

	if violations := validator.ValidateReferenceUpload(input.Size, detected.MIME, s.maxBytes); len(violations) > 0 {
		return nil, violations
	}

	filename, err := s.helper.UploadArticleReference(ctx, input.File, input.OriginalFilename)
	if err != nil {
		return nil, err
	}

	reference := &models.ArticleReference{
		ArticleID:        articleID,
		Filename:         filename,
		OriginalFilename: filepath.Base(input.OriginalFilename),
		MimeType:         detected.MIME,
		FileSize:         input.Size,
	}

	if err := s.referencesRepo.Create(reference); err != nil {
		// 文件已落盘但记录失败，留下的孤儿文件只记录不清理
		log.Printf("Warning: reference record creation failed, stored file %q is now orphaned: %v",
			utils.SanitizeLogFilename(filename), err)
		return nil, fmt.Errorf("failed to create reference record: %w", err)
	}

	return reference, nil
}

// List 列举文章的全部参考文件，按创建顺序返回
func (s *Service) List(ctx context.Context, articleID uint, userID uint, role string) ([]*models.ArticleReference, error) {
	if _, err := s.loadArticleForUser(articleID, userID, role); err != nil {
		return nil, err
	}

	list, err := s.referencesRepo.ListByArticle(articleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list references: %w", err)
	}
	return list, nil
}

// Download 打开参考文件的内容流
// 记录存在但文件缺失返回 ErrIntegrity，调用方负责关闭流
func (s *Service) Download(ctx context.Context, referenceID uint, userID uint, role string) (*models.ArticleReference, io.ReadCloser, error) {
	reference, err := s.loadReferenceForUser(ctx, referenceID, userID, role)
	if err != nil {
		return nil, nil, err
	}

	stream, err := s.helper.ReadStream(ctx, uploader.ArticleReference+"/"+reference.Filename, storage.PartitionPrivate)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Printf("Integrity fault: reference %d has record but file %q is missing from storage",
				reference.ID, utils.SanitizeLogFilename(reference.Filename))
			return nil, nil, ErrIntegrity
		}
		return nil, nil, fmt.Errorf("failed to open reference stream: %w", err)
	}

	return reference, stream, nil
}

// Update 修改参考文件的展示名，存储键保持不变
func (s *Service) Update(ctx context.Context, referenceID uint, userID uint, role string, originalFilename string) (*models.ArticleReference, error) {
	reference, err := s.loadReferenceForUser(ctx, referenceID, userID, role)
	if err != nil {
		return nil, err
	}

	if violations := validator.ValidateReferenceUpdate(originalFilename); len(violations) > 0 {
		return nil, violations
	}

	reference.OriginalFilename = strings.TrimSpace(originalFilename)
	if err := s.referencesRepo.Update(reference); err != nil {
		return nil, fmt.Errorf("failed to update reference record: %w", err)
	}

	s.invalidateCache(ctx, referenceID)

	return reference, nil
}

// Delete 删除参考文件
// 先删记录再删文件，文件缺失只记警告仍视为成功
func (s *Service) Delete(ctx context.Context, referenceID uint, userID uint, role string) error {
	reference, err := s.loadReferenceForUser(ctx, referenceID, userID, role)
	if err != nil {
		return err
	}

	if err := s.referencesRepo.Delete(reference.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReferenceNotFound
		}
		return fmt.Errorf("failed to delete reference record: %w", err)
	}

	s.invalidateCache(ctx, referenceID)

	if err := s.helper.DeleteFile(ctx, uploader.ArticleReference+"/"+reference.Filename, storage.PartitionPrivate); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Printf("Warning: reference file %q was already missing when deleting record %d",
				utils.SanitizeLogFilename(reference.Filename), reference.ID)
		} else {
			log.Printf("Warning: could not delete reference file %q: %v",
				utils.SanitizeLogFilename(reference.Filename), err)
		}
	}

	return nil
}
