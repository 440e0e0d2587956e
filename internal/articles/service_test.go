package articles

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/NathanHymers98/spacebar/database/models"
	articlesRepo "github.com/NathanHymers98/spacebar/database/repo/articles"
	"github.com/NathanHymers98/spacebar/internal/uploader"
	"github.com/NathanHymers98/spacebar/storage"
	"github.com/NathanHymers98/spacebar/utils/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 13, 'I', 'H', 'D', 'R'}

type testEnv struct {
	service *Service
	store   *storage.Factory
	db      *gorm.DB
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Article{}, &models.ArticleReference{}))

	public, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	private, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	store := storage.NewFactoryWithProviders(public, private)

	helper := uploader.NewHelper(store, "/uploads")
	service := NewService(articlesRepo.NewRepository(db), helper, 5<<20)

	return &testEnv{service: service, store: store, db: db}
}

func coverInput(content []byte, name string) *CoverInput {
	return &CoverInput{
		File:             bytes.NewReader(content),
		OriginalFilename: name,
		Size:             int64(len(content)),
	}
}

// TestService_Create 创建文章时封面写入 public 分区
func TestService_Create(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	article, err := env.service.Create(ctx, 1, &ArticleInput{
		Title:   "Space Bears",
		Content: "the truth about space bears",
		Cover:   coverInput(pngHeader, "Space Bears.jpg"),
	})
	require.NoError(t, err)

	assert.Regexp(t, `^space-bears-[0-9a-f]{13}\.png$`, article.ImageFilename)
	assert.Equal(t, uint(1), article.AuthorID)

	exists, err := env.store.Public().Exists(ctx, uploader.ArticleImage+"/"+article.ImageFilename)
	require.NoError(t, err)
	assert.True(t, exists)

	assert.Equal(t, "/uploads/article_image/"+article.ImageFilename, env.service.CoverURL(article))
}

// TestService_Create_Validation 标题、正文、封面的失败一次性全部返回
func TestService_Create_Validation(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.service.Create(context.Background(), 1, &ArticleInput{
		Title:   "  ",
		Content: "",
		Cover:   nil,
	})
	require.Error(t, err)

	var violations validator.Violations
	require.True(t, errors.As(err, &violations))
	assert.Len(t, violations, 3)
}

// TestService_Create_NonImageCover 封面内容不是图片时被拒绝
func TestService_Create_NonImageCover(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.service.Create(context.Background(), 1, &ArticleInput{
		Title:   "Space Bears",
		Content: "body",
		Cover:   coverInput([]byte("%PDF-1.4\nnot an image"), "cover.jpg"),
	})
	require.Error(t, err)

	var violations validator.Violations
	require.True(t, errors.As(err, &violations))
	require.Len(t, violations, 1)
	assert.Equal(t, "imageFile", violations[0].Field)
}

// TestService_Update_ReplacesCover 新封面替换旧封面，旧文件被清理
func TestService_Update_ReplacesCover(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	article, err := env.service.Create(ctx, 1, &ArticleInput{
		Title:   "Space Bears",
		Content: "body",
		Cover:   coverInput(pngHeader, "old.png"),
	})
	require.NoError(t, err)
	oldCover := article.ImageFilename

	updated, err := env.service.Update(ctx, article.ID, 1, "user", &ArticleInput{
		Title:   "Space Bears Revisited",
		Content: "updated body",
		Cover:   coverInput(pngHeader, "new.png"),
	})
	require.NoError(t, err)
	assert.NotEqual(t, oldCover, updated.ImageFilename)

	exists, err := env.store.Public().Exists(ctx, uploader.ArticleImage+"/"+oldCover)
	require.NoError(t, err)
	assert.False(t, exists)
}

// TestService_Update_KeepsCover 不传封面时保留现有封面
func TestService_Update_KeepsCover(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	article, err := env.service.Create(ctx, 1, &ArticleInput{
		Title:   "Space Bears",
		Content: "body",
		Cover:   coverInput(pngHeader, "cover.png"),
	})
	require.NoError(t, err)

	updated, err := env.service.Update(ctx, article.ID, 1, "user", &ArticleInput{
		Title:   "New Title",
		Content: "new body",
	})
	require.NoError(t, err)
	assert.Equal(t, article.ImageFilename, updated.ImageFilename)
	assert.Equal(t, "New Title", updated.Title)
}

// TestService_AccessControl 非作者不能编辑，管理员可以
func TestService_AccessControl(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	article, err := env.service.Create(ctx, 1, &ArticleInput{
		Title:   "Space Bears",
		Content: "body",
		Cover:   coverInput(pngHeader, "cover.png"),
	})
	require.NoError(t, err)

	_, err = env.service.Update(ctx, article.ID, 2, "user", &ArticleInput{Title: "x", Content: "y"})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = env.service.Update(ctx, article.ID, 2, "admin", &ArticleInput{Title: "x", Content: "y"})
	assert.NoError(t, err)

	_, err = env.service.Get(9999, 1, "user")
	assert.ErrorIs(t, err, ErrNotFound)
}
