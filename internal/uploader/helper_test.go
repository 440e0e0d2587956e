package uploader

import (
	"bytes"
	"context"
	"io"
	"regexp"
	"sync"
	"testing"

	"github.com/NathanHymers98/spacebar/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 13, 'I', 'H', 'D', 'R'}

func newTestHelper(t *testing.T) *Helper {
	t.Helper()

	public, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	private, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	return NewHelper(storage.NewFactoryWithProviders(public, private), "/uploads")
}

// TestGenerateFilename 存储文件名由 slug、随机后缀和扩展名拼成
func TestGenerateFilename(t *testing.T) {
	pattern := regexp.MustCompile(`^annual-report-[0-9a-f]{13}\.pdf$`)

	name := GenerateFilename("Annual Report.PDF", ".pdf")
	assert.True(t, pattern.MatchString(name), "unexpected filename: %s", name)
}

// TestGenerateFilename_EmptySlug 文件名全是标点时使用兜底 slug
func TestGenerateFilename_EmptySlug(t *testing.T) {
	pattern := regexp.MustCompile(`^file-[0-9a-f]{13}\.bin$`)

	name := GenerateFilename("!!!.dat", ".bin")
	assert.True(t, pattern.MatchString(name), "unexpected filename: %s", name)
}

// TestGenerateFilename_IgnoresClientExtension 客户端扩展名不进入存储键
func TestGenerateFilename_IgnoresClientExtension(t *testing.T) {
	name := GenerateFilename("evil.exe", ".png")
	assert.Regexp(t, `^evil-[0-9a-f]{13}\.png$`, name)
}

// TestGenerateFilename_ConcurrentUniqueness 并发生成的存储键互不相同
func TestGenerateFilename_ConcurrentUniqueness(t *testing.T) {
	const workers = 50
	const perWorker = 20

	var mu sync.Mutex
	seen := make(map[string]bool)

	var group errgroup.Group
	for i := 0; i < workers; i++ {
		group.Go(func() error {
			for j := 0; j < perWorker; j++ {
				name := GenerateFilename("space-bears.jpg", ".jpg")
				mu.Lock()
				assert.False(t, seen[name], "duplicate key generated: %s", name)
				seen[name] = true
				mu.Unlock()
			}
			return nil
		})
	}
	require.NoError(t, group.Wait())
	assert.Len(t, seen, workers*perWorker)
}

// TestUploadArticleImage 封面写入 public 分区并可读回
func TestUploadArticleImage(t *testing.T) {
	helper := newTestHelper(t)
	ctx := context.Background()

	filename, err := helper.UploadArticleImage(ctx, bytes.NewReader(pngHeader), "Space Bears.jpg", "")
	require.NoError(t, err)
	assert.Regexp(t, `^space-bears-[0-9a-f]{13}\.png$`, filename)

	stream, err := helper.ReadStream(ctx, ArticleImage+"/"+filename, storage.PartitionPublic)
	require.NoError(t, err)
	defer stream.Close()

	data, err := io.ReadAll(stream)
	require.NoError(t, err)
	assert.Equal(t, pngHeader, data)
}

// TestUploadArticleImage_ReplacesExisting 上传新封面时旧文件被删除
func TestUploadArticleImage_ReplacesExisting(t *testing.T) {
	helper := newTestHelper(t)
	ctx := context.Background()

	oldFilename, err := helper.UploadArticleImage(ctx, bytes.NewReader(pngHeader), "old-cover.png", "")
	require.NoError(t, err)

	newFilename, err := helper.UploadArticleImage(ctx, bytes.NewReader(pngHeader), "new-cover.png", oldFilename)
	require.NoError(t, err)
	assert.NotEqual(t, oldFilename, newFilename)

	_, err = helper.ReadStream(ctx, ArticleImage+"/"+oldFilename, storage.PartitionPublic)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

// TestUploadArticleImage_MissingOldFile 旧封面缺失不影响新上传
func TestUploadArticleImage_MissingOldFile(t *testing.T) {
	helper := newTestHelper(t)
	ctx := context.Background()

	filename, err := helper.UploadArticleImage(ctx, bytes.NewReader(pngHeader), "cover.png", "never-existed-0123456789abc.png")
	require.NoError(t, err)
	assert.NotEmpty(t, filename)
}

// TestUploadArticleReference 参考文件写入 private 分区
func TestUploadArticleReference(t *testing.T) {
	helper := newTestHelper(t)
	ctx := context.Background()
	content := []byte("%PDF-1.4\nreference body")

	filename, err := helper.UploadArticleReference(ctx, bytes.NewReader(content), "Annual Report.pdf")
	require.NoError(t, err)
	assert.Regexp(t, `^annual-report-[0-9a-f]{13}\.pdf$`, filename)

	// 私有分区可读
	stream, err := helper.ReadStream(ctx, ArticleReference+"/"+filename, storage.PartitionPrivate)
	require.NoError(t, err)
	stream.Close()

	// 公共分区没有这份文件
	_, err = helper.ReadStream(ctx, ArticleReference+"/"+filename, storage.PartitionPublic)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

// TestPublicPath URL 由配置前缀和存储路径拼接
func TestPublicPath(t *testing.T) {
	helper := newTestHelper(t)
	assert.Equal(t, "/uploads/article_image/cover-0123456789abc.png", helper.PublicPath("article_image/cover-0123456789abc.png"))
}
