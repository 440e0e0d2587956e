package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/NathanHymers98/spacebar/api"
	"github.com/NathanHymers98/spacebar/api/common"
	"github.com/gin-gonic/gin"
)

const (
	ContextUserIDKey   = "user_id"
	ContextUsernameKey = "username"
	ContextRoleKey     = "role"
)

// BearerAuth 校验 Authorization 头中的 Bearer JWT
// 验证通过后把用户标识写入请求上下文
func BearerAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			common.RespondError(c, http.StatusUnauthorized, "No Authorization request header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 {
			common.RespondError(c, http.StatusBadRequest, "Authorization field format error")
			c.Abort()
			return
		}

		if parts[0] != "Bearer" {
			common.RespondError(c, http.StatusUnauthorized, "Unsupported authentication scheme")
			c.Abort()
			return
		}

		if err := handleJwtAuth(c, parts[1]); err != nil {
			common.RespondError(c, http.StatusUnauthorized, err.Error())
			c.Abort()
			return
		}

		c.Next()
	}
}

func handleJwtAuth(c *gin.Context, token string) error {
	claims, err := api.Parse(token)
	if err != nil {
		return errors.New("invalid or expired token")
	}

	userIDValue, ok := claims["user_id"]
	if !ok {
		return errors.New("user_id not found in token claims")
	}
	userID, ok := userIDValue.(float64)
	if !ok {
		return errors.New("user_id in token is not a valid number")
	}

	usernameValue, ok := claims["username"]
	if !ok {
		return errors.New("username not found in token claims")
	}
	username, ok := usernameValue.(string)
	if !ok {
		return errors.New("username in token is not a valid string")
	}

	role, _ := claims["role"].(string)
	if role == "" {
		role = "user"
	}

	c.Set(ContextUserIDKey, uint(userID))
	c.Set(ContextUsernameKey, username)
	c.Set(ContextRoleKey, role)

	return nil
}

// CurrentUser 从请求上下文读取认证用户的 ID 和角色
func CurrentUser(c *gin.Context) (uint, string, bool) {
	userIDVal, exists := c.Get(ContextUserIDKey)
	if !exists {
		return 0, "", false
	}
	userID, ok := userIDVal.(uint)
	if !ok {
		return 0, "", false
	}

	role, _ := c.Get(ContextRoleKey)
	roleStr, _ := role.(string)
	if roleStr == "" {
		roleStr = "user"
	}

	return userID, roleStr, true
}
