package middleware

import (
	"net/http"

	ctxutil "HeartSnaps/pkg/context"
	"HeartSnaps/pkg/response"
	"HeartSnaps/service"

	"github.com/gin-gonic/gin"
)

const CtxPrincipal = "principal"

// RequireRole 每次请求实时查角色，权限变更即时生效
// 鉴权失败一律 403，不区分"不是管理员"和"级别不够"
func RequireRole(authz service.IAuthzService, required service.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, err := ctxutil.GetEmail(c)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "未登录")
			return
		}

		principal, err := authz.Authorize(c.Request.Context(), email, required)
		if err != nil {
			response.Abort(c, http.StatusForbidden, service.ErrNotAdmin.Error())
			return
		}

		c.Set(CtxPrincipal, principal)
		c.Next()
	}
}

// GetPrincipal 取 RequireRole 放进来的鉴权结果
func GetPrincipal(c *gin.Context) *service.Principal {
	v, ok := c.Get(CtxPrincipal)
	if !ok {
		return nil
	}
	p, _ := v.(*service.Principal)
	return p
}
