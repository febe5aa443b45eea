package user

import (
	"net/http"
	"strings"

	"github.com/SlpAus/skillsprint-backend/pkg/token"
	"github.com/gin-gonic/gin"
)

// UserIDKey 是认证中间件写入Gin上下文的键名。
const UserIDKey = "userID"

// RequireAuth 校验Authorization头中的bearer token。
// 缺失头和无效token是两类不同的错误，与前端约定的状态码不同。
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Missing authorization header",
			})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		raw := parts[len(parts)-1]

		userID, err := token.ValidateToken(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   "Invalid or expired token",
			})
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// CurrentUserID 从Gin上下文中取出认证中间件写入的用户ID。
func CurrentUserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}
