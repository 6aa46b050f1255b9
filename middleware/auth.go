package middleware

import (
	"net/http"
	"strings"
	"time"

	ctxutil "HeartSnaps/pkg/context"
	"HeartSnaps/pkg/jwt"
	"HeartSnaps/pkg/response"

	"github.com/gin-gonic/gin"
)

const refreshBuffer = 5 * time.Minute

func Auth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Abort(c, http.StatusUnauthorized, "缺少 Authorization")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Abort(c, http.StatusUnauthorized, "Authorization 格式错误")
			return
		}

		claims, err := jwt.ParseToken(secret, "access", parts[1])
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, err.Error())
			return
		}

		// 快过期时下发新 token，前端无感续期
		if jwt.ShouldRotate(claims, refreshBuffer) {
			newToken, err := jwt.GenerateToken(secret, claims.UserID, claims.Email, "access", 24*time.Hour)
			if err == nil {
				c.Header("X-New-Access-Token", newToken)
			}
		}

		c.Set(ctxutil.CtxUserID, claims.UserID)
		c.Set(ctxutil.CtxEmail, claims.Email)

		c.Next()
	}
}
