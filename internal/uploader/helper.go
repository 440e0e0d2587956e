package uploader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"

	"github.com/NathanHymers98/spacebar/storage"
	"github.com/NathanHymers98/spacebar/utils"
	utilsmime "github.com/NathanHymers98/spacebar/utils/mime"
)

// 存储分区内的目录
const (
	ArticleImage     = "article_image"
	ArticleReference = "article_reference"
)

// ErrStorageWrite 存储介质拒绝写入
// 出现此错误时调用方不得创建元数据记录
var ErrStorageWrite = errors.New("uploader: storage write failed")

// Helper 处理所有上传文件相关的逻辑
// 封面走 public 分区，参考文件走 private 分区
type Helper struct {
	store   *storage.Factory
	baseURL string
}

// NewHelper 创建上传助手
// baseURL 是 public 分区资源的访问前缀，如 /uploads 或 CDN 地址
func NewHelper(store *storage.Factory, baseURL string) *Helper {
	return &Helper{
		store:   store,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// GenerateFilename 生成抗碰撞存储文件名
// 原始文件名去掉扩展名后转 slug，拼接随机后缀和内容嗅探出的扩展名
// 不做文件系统查重，唯一性由随机后缀保证
func GenerateFilename(originalName, ext string) string {
	base := strings.TrimSuffix(filepath.Base(originalName), filepath.Ext(originalName))
	slug := utils.Slugify(base)
	if slug == "" {
		slug = "file"
	}
	return slug + "-" + utils.UniqueSuffix() + ext
}

// UploadArticleImage 上传文章封面到 public 分区
// existingFilename 非空时尽力删除旧封面，旧文件缺失只记警告不影响上传结果
func (h *Helper) UploadArticleImage(ctx context.Context, file io.ReadSeeker, originalName string, existingFilename string) (string, error) {
	newFilename, err := h.uploadFile(ctx, file, originalName, storage.PartitionPublic, ArticleImage)
	if err != nil {
		return "", err
	}

	if existingFilename != "" {
		oldPath := ArticleImage + "/" + existingFilename
		if err := h.store.Public().DeleteWithContext(ctx, oldPath); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				log.Printf("Warning: old uploaded file %q was missing when trying to delete", utils.SanitizeLogFilename(existingFilename))
			} else {
				log.Printf("Warning: could not delete old uploaded file %q: %v", utils.SanitizeLogFilename(existingFilename), err)
			}
		}
	}

	return newFilename, nil
}

// UploadArticleReference 上传参考文件到 private 分区
func (h *Helper) UploadArticleReference(ctx context.Context, file io.ReadSeeker, originalName string) (string, error) {
	return h.uploadFile(ctx, file, originalName, storage.PartitionPrivate, ArticleReference)
}

// uploadFile 生成存储键并写入对应分区
func (h *Helper) uploadFile(ctx context.Context, file io.ReadSeeker, originalName string, partition storage.Partition, directory string) (string, error) {
	// 扩展名来自内容嗅探，不信任客户端文件名
	detected, err := utilsmime.SniffContentType(file)
	if err != nil {
		return "", fmt.Errorf("failed to detect content type: %w", err)
	}

	newFilename := GenerateFilename(originalName, detected.Extension)
	storagePath := directory + "/" + newFilename

	if err := h.store.Get(partition).SaveWithContext(ctx, storagePath, file); err != nil {
		return "", fmt.Errorf("%w: could not write uploaded file %q: %v", ErrStorageWrite, newFilename, err)
	}

	return newFilename, nil
}

// ReadStream 打开指定分区中文件的读取流，调用方负责关闭
func (h *Helper) ReadStream(ctx context.Context, path string, partition storage.Partition) (io.ReadCloser, error) {
	return h.store.Get(partition).GetWithContext(ctx, path)
}

// DeleteFile 删除指定分区中的文件
func (h *Helper) DeleteFile(ctx context.Context, path string, partition storage.Partition) error {
	return h.store.Get(partition).DeleteWithContext(ctx, path)
}

// PublicPath 构造 public 分区文件的客户端可解析 URL
// 只对 public 分区的键有意义，私有文件没有公共地址
func (h *Helper) PublicPath(path string) string {
	return h.baseURL + "/" + strings.TrimLeft(path, "/")
}
