package storage

import (
	"context"
	"fmt"
	"log"

	"github.com/NathanHymers98/spacebar/config"
)

// Factory 存储工厂 - 每个分区绑定一个存储提供者
// public/private 的划分是结构性的：私有文件不可能流经公共 URL 路径
type Factory struct {
	public  Provider
	private Provider
}

// NewFactory 按配置初始化两个分区的存储提供者
func NewFactory(cfg *config.Config) (*Factory, error) {
	log.Println("Initializing storage providers...")

	public, err := newProvider(cfg, PartitionPublic, cfg.StoragePublicType)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize public storage: %w", err)
	}
	log.Printf("Successfully initialized '%s' storage provider for public partition", public.Name())

	private, err := newProvider(cfg, PartitionPrivate, cfg.StoragePrivateType)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize private storage: %w", err)
	}
	log.Printf("Successfully initialized '%s' storage provider for private partition", private.Name())

	return &Factory{
		public:  public,
		private: private,
	}, nil
}

// NewFactoryWithProviders 直接用给定的提供者组装工厂
func NewFactoryWithProviders(public, private Provider) *Factory {
	return &Factory{
		public:  public,
		private: private,
	}
}

// newProvider 创建指定分区的存储提供者
func newProvider(cfg *config.Config, partition Partition, storageType string) (Provider, error) {
	switch storageType {
	case "local", "":
		path := cfg.StoragePublicLocalPath
		if partition == PartitionPrivate {
			path = cfg.StoragePrivateLocalPath
		}
		return NewLocalStorage(path)
	case "minio":
		bucket := cfg.MinioPublicBucket
		if partition == PartitionPrivate {
			bucket = cfg.MinioPrivateBucket
		}
		return NewMinioStorage(MinioConfig{
			Endpoint:        cfg.MinioEndpoint,
			AccessKeyID:     cfg.MinioAccessKeyID,
			SecretAccessKey: cfg.MinioSecretAccessKey,
			UseSSL:          cfg.MinioUseSSL,
			Bucket:          bucket,
		})
	case "webdav":
		root := cfg.WebDAVPublicRoot
		if partition == PartitionPrivate {
			root = cfg.WebDAVPrivateRoot
		}
		return NewWebDAVStorage(WebDAVConfig{
			URL:      cfg.WebDAVURL,
			Username: cfg.WebDAVUsername,
			Password: cfg.WebDAVPassword,
			RootPath: root,
		})
	default:
		return nil, fmt.Errorf("invalid storage type: %s", storageType)
	}
}

// Get 获取指定分区的存储提供者
func (f *Factory) Get(partition Partition) Provider {
	if partition == PartitionPrivate {
		return f.private
	}
	return f.public
}

// Public 公共分区
func (f *Factory) Public() Provider {
	return f.public
}

// Private 私有分区
func (f *Factory) Private() Provider {
	return f.private
}

// Health 检查所有分区的存储健康状态
func (f *Factory) Health(ctx context.Context) error {
	if err := f.public.Health(ctx); err != nil {
		return fmt.Errorf("public partition unhealthy: %w", err)
	}
	if err := f.private.Health(ctx); err != nil {
		return fmt.Errorf("private partition unhealthy: %w", err)
	}
	return nil
}
