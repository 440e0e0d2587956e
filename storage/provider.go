package storage

import (
	"context"
	"errors"
	"io"
)

// Partition 存储分区
// public 分区的文件可以通过 URL 直接访问，private 分区只能走授权下载
type Partition string

const (
	PartitionPublic  Partition = "public"
	PartitionPrivate Partition = "private"
)

// ErrNotFound 文件在存储中不存在
// 调用方可据此把"已经不在了"降级为软错误
var ErrNotFound = errors.New("storage: file not found")

// Provider 存储提供者接口 - 依赖倒置的核心抽象
// 定义了存储层的基本操作，所有存储实现必须遵循此接口
type Provider interface {
	// SaveWithContext 保存文件到存储
	// 要么完整写入，要么报错且该路径下无可读内容
	SaveWithContext(ctx context.Context, storagePath string, file io.Reader) error

	// GetWithContext 从存储获取文件，调用方负责关闭返回的流
	GetWithContext(ctx context.Context, storagePath string) (io.ReadCloser, error)

	// DeleteWithContext 从存储删除文件
	DeleteWithContext(ctx context.Context, storagePath string) error

	// Exists 检查文件是否存在
	Exists(ctx context.Context, storagePath string) (bool, error)

	// Health 检查存储健康状态
	Health(ctx context.Context) error

	// Name 返回存储名称
	Name() string
}
