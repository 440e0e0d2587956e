package access

import "github.com/NathanHymers98/spacebar/database/models"

// RoleAdmin 拥有全部文章的管理权限
const RoleAdmin = "admin"

// CanManage 判断用户能否管理指定文章及其附属资源
// 管理员不受作者限制，普通用户只能操作自己的文章
// 每次操作都要重新判定，不缓存结果
func CanManage(userID uint, role string, article *models.Article) bool {
	if article == nil {
		return false
	}
	if role == RoleAdmin {
		return true
	}
	return article.AuthorID == userID
}
