package service

import (
	"HeartSnaps/config"
	"HeartSnaps/dao"
	"HeartSnaps/models"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Role 后台角色，带全序，比较只走 Allows 一个口子
type Role string

const (
	RoleModerator  Role = "moderator"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
	RoleOwner      Role = "owner"
)

var roleLevels = map[Role]int{
	RoleModerator:  1,
	RoleAdmin:      2,
	RoleSuperAdmin: 3,
	RoleOwner:      4,
}

func (r Role) Level() int {
	return roleLevels[r]
}

// Allows 权限足够则放行：本角色等级 >= 所需等级
func (r Role) Allows(required Role) bool {
	return r.Level() >= required.Level() && r.Level() > 0
}

func ParseRole(s string) (Role, error) {
	r := Role(s)
	if _, ok := roleLevels[r]; !ok {
		return "", fmt.Errorf("unknown role: %s", s)
	}
	return r, nil
}

// ErrNotAdmin 统一的拒绝错误，不区分"不存在"和"权限不足"，避免泄露资源是否存在
var ErrNotAdmin = errors.New("权限不足")

// ErrOwnerImmutable 白名单 owner 不可被移除或降级
var ErrOwnerImmutable = errors.New("站长账号不可变更")

type Principal struct {
	Email string
	Role  Role
}

type authzAdminStore interface {
	FindByEmail(ctx context.Context, email string) (*models.Admin, error)
}

var _ IAuthzService = (*AuthzService)(nil)

type IAuthzService interface {
	// Authorize 每次请求实时鉴权，不跨请求缓存，角色变更即时生效
	Authorize(ctx context.Context, email string, required Role) (*Principal, error)
	// CheckMutable 目标是否允许被移除/降级
	CheckMutable(email string) error
}

type AuthzService struct {
	Shop   *config.ShopConfig
	admins authzAdminStore
}

func NewAuthzService(shop *config.ShopConfig, adminDAO *dao.Admin) *AuthzService {
	return &AuthzService{Shop: shop, admins: adminDAO}
}

func (s *AuthzService) Authorize(ctx context.Context, email string, required Role) (*Principal, error) {
	if email == "" {
		return nil, ErrNotAdmin
	}

	// 白名单优先，不依赖角色表
	if s.Shop.IsOwner(email) {
		p := &Principal{Email: email, Role: RoleOwner}
		if !p.Role.Allows(required) {
			return nil, ErrNotAdmin
		}
		return p, nil
	}

	admin, err := s.admins.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 无记录即非管理员
			return nil, ErrNotAdmin
		}
		return nil, err
	}

	role, err := ParseRole(admin.Role)
	if err != nil {
		return nil, ErrNotAdmin
	}
	if !role.Allows(required) {
		return nil, ErrNotAdmin
	}
	return &Principal{Email: email, Role: role}, nil
}

func (s *AuthzService) CheckMutable(email string) error {
	if s.Shop.IsOwner(email) {
		return ErrOwnerImmutable
	}
	return nil
}
