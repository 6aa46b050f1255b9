package service

import (
	"HeartSnaps/config"
	"HeartSnaps/models"
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"
)

type fakeAdminStore struct {
	admins map[string]string // email -> role
}

func (f *fakeAdminStore) FindByEmail(_ context.Context, email string) (*models.Admin, error) {
	role, ok := f.admins[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &models.Admin{Email: email, Role: role}, nil
}

func newTestAuthz(owners []string, admins map[string]string) *AuthzService {
	return &AuthzService{
		Shop:   &config.ShopConfig{OwnerEmails: owners},
		admins: &fakeAdminStore{admins: admins},
	}
}

func TestRoleAllows(t *testing.T) {
	cases := []struct {
		have, need Role
		want       bool
	}{
		{RoleOwner, RoleSuperAdmin, true},
		{RoleOwner, RoleOwner, true},
		{RoleSuperAdmin, RoleOwner, false},
		{RoleAdmin, RoleModerator, true},
		{RoleModerator, RoleAdmin, false},
		{RoleModerator, RoleModerator, true},
		{Role("bogus"), RoleModerator, false},
	}
	for _, c := range cases {
		if got := c.have.Allows(c.need); got != c.want {
			t.Errorf("%s.Allows(%s) = %v, want %v", c.have, c.need, got, c.want)
		}
	}
}

func TestAuthorizeAllowlistOwner(t *testing.T) {
	// 白名单 owner 不需要角色表里有记录
	s := newTestAuthz([]string{"boss@shop.cn"}, nil)

	p, err := s.Authorize(context.Background(), "boss@shop.cn", RoleSuperAdmin)
	if err != nil {
		t.Fatal(err)
	}
	if p.Role != RoleOwner {
		t.Errorf("role = %s, want owner", p.Role)
	}
}

func TestAuthorizeAllowlistCaseInsensitive(t *testing.T) {
	// 配置里大小写混写不影响白名单命中
	s := newTestAuthz([]string{"Boss@Shop.CN"}, nil)

	p, err := s.Authorize(context.Background(), "boss@shop.cn", RoleSuperAdmin)
	if err != nil {
		t.Fatal(err)
	}
	if p.Role != RoleOwner {
		t.Errorf("role = %s, want owner", p.Role)
	}
}

func TestAuthorizeAllowlistBeatsTable(t *testing.T) {
	// 表里被降级也不影响白名单身份
	s := newTestAuthz([]string{"boss@shop.cn"}, map[string]string{"boss@shop.cn": "moderator"})

	p, err := s.Authorize(context.Background(), "boss@shop.cn", RoleOwner)
	if err != nil {
		t.Fatal(err)
	}
	if p.Role != RoleOwner {
		t.Errorf("role = %s, want owner", p.Role)
	}
}

func TestAuthorizeDenied(t *testing.T) {
	s := newTestAuthz(nil, map[string]string{"mod@shop.cn": "moderator"})
	ctx := context.Background()

	// 无记录和级别不够返回同一个错误
	if _, err := s.Authorize(ctx, "stranger@shop.cn", RoleModerator); !errors.Is(err, ErrNotAdmin) {
		t.Errorf("absent row: err = %v, want ErrNotAdmin", err)
	}
	if _, err := s.Authorize(ctx, "mod@shop.cn", RoleAdmin); !errors.Is(err, ErrNotAdmin) {
		t.Errorf("insufficient role: err = %v, want ErrNotAdmin", err)
	}
	if _, err := s.Authorize(ctx, "", RoleModerator); !errors.Is(err, ErrNotAdmin) {
		t.Errorf("empty email: err = %v, want ErrNotAdmin", err)
	}
}

func TestAuthorizeSufficient(t *testing.T) {
	s := newTestAuthz(nil, map[string]string{"mod@shop.cn": "moderator"})

	p, err := s.Authorize(context.Background(), "mod@shop.cn", RoleModerator)
	if err != nil {
		t.Fatal(err)
	}
	if p.Role != RoleModerator {
		t.Errorf("role = %s, want moderator", p.Role)
	}
}

func TestCheckMutable(t *testing.T) {
	s := newTestAuthz([]string{"boss@shop.cn"}, nil)

	if err := s.CheckMutable("boss@shop.cn"); !errors.Is(err, ErrOwnerImmutable) {
		t.Errorf("owner: err = %v, want ErrOwnerImmutable", err)
	}
	if err := s.CheckMutable("mod@shop.cn"); err != nil {
		t.Errorf("non-owner: err = %v, want nil", err)
	}
}
