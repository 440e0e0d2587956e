package access

import (
	"testing"

	"github.com/NathanHymers98/spacebar/database/models"
	"github.com/stretchr/testify/assert"
)

// TestCanManage 作者和管理员可以管理，其他人不行
func TestCanManage(t *testing.T) {
	article := &models.Article{AuthorID: 7}

	assert.True(t, CanManage(7, "user", article), "author can manage own article")
	assert.True(t, CanManage(1, "admin", article), "admin can manage any article")
	assert.False(t, CanManage(8, "user", article), "other users are rejected")
	assert.False(t, CanManage(7, "user", nil), "nil article is never manageable")
}
