package handler

import (
	"HeartSnaps/config"
	"HeartSnaps/pkg/jwt"
	"HeartSnaps/service"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

// recordingAuthz 记录每次鉴权要求的角色，并一律拒绝，
// 让请求停在权限中间件，后面的服务依赖可以留空
type recordingAuthz struct {
	required service.Role
}

func (r *recordingAuthz) Authorize(_ context.Context, _ string, required service.Role) (*service.Principal, error) {
	r.required = required
	return nil, service.ErrNotAdmin
}

func (r *recordingAuthz) CheckMutable(string) error { return nil }

func newAdminRouter(t *testing.T) (*gin.Engine, *recordingAuthz, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	authz := &recordingAuthz{}
	a := &Admin{
		Config:       &config.Config{Jwt: &config.Jwt{Secret: "test-secret"}},
		AuthzService: authz,
	}

	r := gin.New()
	a.RegisterRouter(r)

	token, err := jwt.GenerateToken([]byte("test-secret"), 0, "staff@shop.cn", "access", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	return r, authz, token
}

// 每条后台路由挂的最低角色
func TestAdminRouteRoles(t *testing.T) {
	r, authz, token := newAdminRouter(t)

	cases := []struct {
		method string
		path   string
		want   service.Role
	}{
		{http.MethodGet, "/v1/admin/stats", service.RoleModerator},
		{http.MethodGet, "/v1/admin/orders", service.RoleModerator},
		{http.MethodGet, "/v1/admin/orders/1", service.RoleModerator},
		{http.MethodGet, "/v1/admin/customers", service.RoleModerator},
		{http.MethodGet, "/v1/admin/customers/1", service.RoleModerator},
		{http.MethodGet, "/v1/admin/gallery", service.RoleModerator},

		{http.MethodPatch, "/v1/admin/orders/1/status", service.RoleAdmin},
		{http.MethodGet, "/v1/admin/orders/1/photos.zip", service.RoleAdmin},
		{http.MethodGet, "/v1/admin/promos", service.RoleAdmin},
		{http.MethodPost, "/v1/admin/promos", service.RoleAdmin},
		{http.MethodPut, "/v1/admin/promos/1", service.RoleAdmin},
		{http.MethodDelete, "/v1/admin/promos/1", service.RoleAdmin},
		{http.MethodPost, "/v1/admin/gallery", service.RoleAdmin},
		{http.MethodPut, "/v1/admin/gallery/1", service.RoleAdmin},
		{http.MethodDelete, "/v1/admin/gallery/1", service.RoleAdmin},

		{http.MethodDelete, "/v1/admin/orders/1", service.RoleSuperAdmin},
		{http.MethodGet, "/v1/admin/admins", service.RoleSuperAdmin},
		{http.MethodPost, "/v1/admin/admins", service.RoleSuperAdmin},
		{http.MethodDelete, "/v1/admin/admins/x@shop.cn", service.RoleSuperAdmin},
		{http.MethodGet, "/v1/admin/logs", service.RoleSuperAdmin},
	}

	for _, tc := range cases {
		authz.required = ""

		req := httptest.NewRequest(tc.method, tc.path, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusForbidden {
			t.Errorf("%s %s: status = %d, want 403", tc.method, tc.path, w.Code)
		}
		if authz.required != tc.want {
			t.Errorf("%s %s: required role = %q, want %q", tc.method, tc.path, authz.required, tc.want)
		}
	}
}

func TestAdminRoutesRejectMissingToken(t *testing.T) {
	r, _, _ := newAdminRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/stats", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}
