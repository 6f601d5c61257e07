package jwt

import (
	"strings"

	"Nexus/pkg/back"
	"Nexus/pkg/util/myjwt"
	"Nexus/pkg/xerr"

	"github.com/gin-gonic/gin"
)

func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			back.Error(c, xerr.Unauthorized, "missing or invalid authorization header")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := myjwt.ParseToken(tokenString)
		if err != nil {
			back.Error(c, xerr.Unauthorized, "invalid token")
			c.Abort()
			return
		}

		c.Set("uuid", claims.Uuid)
		c.Set("username", claims.Username)
		if claims.IssuedAt != nil {
			// 敏感操作（注销账号）需要校验登录时间
			c.Set("issued_at", claims.IssuedAt.Time)
		}
		c.Next()
	}
}
