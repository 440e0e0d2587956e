package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLocalStorage_PathTraversal_Prevention 测试路径遍历防护
func TestLocalStorage_PathTraversal_Prevention(t *testing.T) {
	tempDir := t.TempDir()
	store, err := NewLocalStorage(tempDir)
	require.NoError(t, err)

	ctx := context.Background()

	traversalAttempts := []string{
		"../../../etc/passwd",
		"../../.env",
		"..",
		"",
		"folder/../../../etc/passwd",
		"article_image/../../secret.txt",
	}

	for _, attempt := range traversalAttempts {
		t.Run("save_"+attempt, func(t *testing.T) {
			err := store.SaveWithContext(ctx, attempt, strings.NewReader("test content"))
			assert.Error(t, err, "Path traversal attempt should be rejected: %s", attempt)
			assert.Contains(t, err.Error(), "invalid", "Error should mention invalid path")
		})
	}
}

// TestLocalStorage_SaveAndGet 测试写入和读取的往返
func TestLocalStorage_SaveAndGet(t *testing.T) {
	tempDir := t.TempDir()
	store, err := NewLocalStorage(tempDir)
	require.NoError(t, err)

	ctx := context.Background()
	content := "reference file body"
	path := "article_reference/report-5f2e6c8a9b1d3.pdf"

	err = store.SaveWithContext(ctx, path, strings.NewReader(content))
	require.NoError(t, err)

	stream, err := store.GetWithContext(ctx, path)
	require.NoError(t, err)
	defer stream.Close()

	data, err := io.ReadAll(stream)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))

	// 文件落在基础路径下的对应位置
	_, err = os.Stat(filepath.Join(store.BasePath(), path))
	assert.NoError(t, err)
}

// TestLocalStorage_GetMissing 测试读取不存在的文件返回 ErrNotFound
func TestLocalStorage_GetMissing(t *testing.T) {
	tempDir := t.TempDir()
	store, err := NewLocalStorage(tempDir)
	require.NoError(t, err)

	_, err = store.GetWithContext(context.Background(), "article_image/does-not-exist.jpg")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

// TestLocalStorage_DeleteMissing 测试删除不存在的文件返回 ErrNotFound
func TestLocalStorage_DeleteMissing(t *testing.T) {
	tempDir := t.TempDir()
	store, err := NewLocalStorage(tempDir)
	require.NoError(t, err)

	err = store.DeleteWithContext(context.Background(), "article_image/does-not-exist.jpg")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

// TestLocalStorage_DeleteThenGet 删除后的文件不可再读取
func TestLocalStorage_DeleteThenGet(t *testing.T) {
	tempDir := t.TempDir()
	store, err := NewLocalStorage(tempDir)
	require.NoError(t, err)

	ctx := context.Background()
	path := "article_image/cover-abcdef0123456.png"

	require.NoError(t, store.SaveWithContext(ctx, path, strings.NewReader("png bytes")))

	exists, err := store.Exists(ctx, path)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, store.DeleteWithContext(ctx, path))

	exists, err = store.Exists(ctx, path)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = store.GetWithContext(ctx, path)
	assert.True(t, errors.Is(err, ErrNotFound))
}

// TestIsValidStoragePath 测试存储路径校验
func TestIsValidStoragePath(t *testing.T) {
	valid := []string{
		"article_image/space-bears-5f2e6c8a9b1d3.jpg",
		"article_reference/report.pdf",
		"file.txt",
	}
	for _, path := range valid {
		assert.True(t, IsValidStoragePath(path), "path should be valid: %s", path)
	}

	invalid := []string{
		"",
		"/etc/passwd",
		"../secret",
		"a/../b",
		"file name.txt",
		"中文.txt",
	}
	for _, path := range invalid {
		assert.False(t, IsValidStoragePath(path), "path should be invalid: %s", path)
	}
}
