package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dgraph-io/ristretto"
)

// MemoryCache 进程内缓存，基于 ristretto
type MemoryCache struct {
	client *ristretto.Cache
}

// NewMemoryCache 创建进程内缓存提供者
func NewMemoryCache() (*MemoryCache, error) {
	client, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e6,
		MaxCost:     64 << 20, // 64 MB
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}

	return &MemoryCache{client: client}, nil
}

// Set 设置缓存项
func (m *MemoryCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	// 统一序列化为 JSON，保证与 redis 提供者行为一致
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	if m.client.SetWithTTL(key, data, int64(len(data)), expiration) {
		// 等待值被实际设置
		m.client.Wait()
	}
	return nil
}

// Get 获取缓存项
func (m *MemoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	value, found := m.client.Get(key)
	if !found {
		return ErrCacheMiss
	}

	data, ok := value.([]byte)
	if !ok {
		return ErrCacheMiss
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return ErrCacheMiss
	}
	return nil
}

// Delete 删除缓存项
func (m *MemoryCache) Delete(ctx context.Context, key string) error {
	m.client.Del(key)
	return nil
}

// Close 关闭缓存连接
func (m *MemoryCache) Close() error {
	m.client.Close()
	return nil
}

// Name 返回缓存提供者名称
func (m *MemoryCache) Name() string {
	return "memory"
}
