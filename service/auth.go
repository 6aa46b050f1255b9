package service

import (
	"HeartSnaps/config"
	"HeartSnaps/dao/cache"
	"HeartSnaps/pkg/jwt"
	"HeartSnaps/pkg/response"
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

var _ IAuthService = (*AuthService)(nil)

// IAuthService 后台邮箱验证码登录
type IAuthService interface {
	RequestCode(ctx context.Context, email string) error
	Login(ctx context.Context, email, code string) (string, error)
}

type AuthService struct {
	Jwt    *config.Jwt
	Codes  *cache.LoginCodeStorage
	Authz  IAuthzService
	Notify INotifyService
}

func NewAuthService(jwtCfg *config.Jwt, codes *cache.LoginCodeStorage, authz IAuthzService, notify INotifyService) *AuthService {
	return &AuthService{Jwt: jwtCfg, Codes: codes, Authz: authz, Notify: notify}
}

// RequestCode 只给有后台角色的邮箱发验证码
// 非管理员邮箱静默成功，不暴露哪些邮箱有后台权限
func (s *AuthService) RequestCode(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return response.BadRequest("邮箱不能为空")
	}

	if _, err := s.Authz.Authorize(ctx, email, RoleModerator); err != nil {
		if errors.Is(err, ErrNotAdmin) {
			return nil
		}
		return err
	}

	code, err := genLoginCode()
	if err != nil {
		return err
	}
	if err := s.Codes.Set(ctx, email, code); err != nil {
		return err
	}

	s.Notify.LoginCode(ctx, email, code)
	return nil
}

func (s *AuthService) Login(ctx context.Context, email, code string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	stored, err := s.Codes.Take(ctx, email)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", response.Unauthorized("验证码错误或已过期")
		}
		return "", err
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		return "", response.Unauthorized("验证码错误或已过期")
	}

	// 发码时已确认过角色，这里再确认一次，期间被移除的账号拿不到 token
	if _, err := s.Authz.Authorize(ctx, email, RoleModerator); err != nil {
		return "", response.Forbidden(ErrNotAdmin.Error())
	}

	expire := time.Duration(s.Jwt.ExpiresTime) * time.Second
	if expire <= 0 {
		expire = 24 * time.Hour
	}
	return jwt.GenerateToken([]byte(s.Jwt.Secret), 0, email, "access", expire)
}

func genLoginCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
