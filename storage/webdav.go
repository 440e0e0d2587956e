package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
	"time"

	"github.com/studio-b12/gowebdav"
)

// WebDAVConfig WebDAV 配置结构
type WebDAVConfig struct {
	URL      string
	Username string
	Password string
	RootPath string
}

// WebDAVStorage WebDAV 存储实现
type WebDAVStorage struct {
	client   *gowebdav.Client
	rootPath string
}

// NewWebDAVStorage 创建 WebDAV 存储提供者
func NewWebDAVStorage(cfg WebDAVConfig) (*WebDAVStorage, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("webdav URL is required")
	}

	rootPath := strings.Trim(cfg.RootPath, "/")
	if rootPath != "" {
		rootPath = "/" + rootPath
	}

	client := gowebdav.NewClient(cfg.URL, cfg.Username, cfg.Password)
	client.SetTimeout(30 * time.Second)

	// 验证连接
	if err := client.Connect(); err != nil {
		return nil, fmt.Errorf("webdav connection test failed: %w", err)
	}

	return &WebDAVStorage{
		client:   client,
		rootPath: rootPath,
	}, nil
}

// fullPath 生成完整的 WebDAV 路径
func (s *WebDAVStorage) fullPath(storagePath string) string {
	storagePath = strings.TrimLeft(storagePath, "/")
	if s.rootPath != "" {
		return s.rootPath + "/" + storagePath
	}
	return "/" + storagePath
}

// SaveWithContext 保存文件到 WebDAV
func (s *WebDAVStorage) SaveWithContext(ctx context.Context, storagePath string, file io.Reader) error {
	if !IsValidStoragePath(storagePath) {
		return fmt.Errorf("invalid storage path: %s", storagePath)
	}

	target := s.fullPath(storagePath)

	if dir := path.Dir(target); dir != "/" && dir != "." {
		if err := s.client.MkdirAll(dir, os.FileMode(0755)); err != nil {
			return fmt.Errorf("failed to create webdav directory '%s': %w", dir, err)
		}
	}

	if err := s.client.WriteStream(target, file, os.FileMode(0644)); err != nil {
		// 写失败后尽量清掉残留，避免部分提交
		_ = s.client.Remove(target)
		return fmt.Errorf("failed to write '%s' to webdav: %w", target, err)
	}

	return nil
}

// GetWithContext 从 WebDAV 获取文件流
func (s *WebDAVStorage) GetWithContext(ctx context.Context, storagePath string) (io.ReadCloser, error) {
	if !IsValidStoragePath(storagePath) {
		return nil, fmt.Errorf("invalid storage path: %s", storagePath)
	}

	stream, err := s.client.ReadStream(s.fullPath(storagePath))
	if err != nil {
		if gowebdav.IsErrNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, storagePath)
		}
		return nil, fmt.Errorf("failed to read '%s' from webdav: %w", storagePath, err)
	}

	return stream, nil
}

// DeleteWithContext 从 WebDAV 删除文件
func (s *WebDAVStorage) DeleteWithContext(ctx context.Context, storagePath string) error {
	if !IsValidStoragePath(storagePath) {
		return fmt.Errorf("invalid storage path: %s", storagePath)
	}

	target := s.fullPath(storagePath)

	if _, err := s.client.Stat(target); err != nil {
		if gowebdav.IsErrNotFound(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, storagePath)
		}
		return fmt.Errorf("failed to stat '%s' on webdav: %w", target, err)
	}

	if err := s.client.Remove(target); err != nil {
		return fmt.Errorf("failed to delete '%s' from webdav: %w", target, err)
	}

	return nil
}

// Exists 检查文件是否存在
func (s *WebDAVStorage) Exists(ctx context.Context, storagePath string) (bool, error) {
	if !IsValidStoragePath(storagePath) {
		return false, fmt.Errorf("invalid storage path: %s", storagePath)
	}

	if _, err := s.client.Stat(s.fullPath(storagePath)); err != nil {
		if gowebdav.IsErrNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Health 检查存储健康状态
func (s *WebDAVStorage) Health(ctx context.Context) error {
	root := s.rootPath
	if root == "" {
		root = "/"
	}
	_, err := s.client.ReadDir(root)
	return err
}

// Name 返回存储名称
func (s *WebDAVStorage) Name() string {
	return "webdav"
}
