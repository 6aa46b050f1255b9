package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const codeExpireAt = 10 * time.Minute

// LoginCodeStorage 后台登录验证码，一次性使用
type LoginCodeStorage struct {
	redis *redis.Client
}

func NewLoginCodeStorage(rds *redis.Client) *LoginCodeStorage {
	return &LoginCodeStorage{redis: rds}
}

func (s *LoginCodeStorage) Set(ctx context.Context, email, code string) error {
	return s.redis.Set(ctx, s.name(email), code, codeExpireAt).Err()
}

// Take 读取并删除，验证码只能用一次
func (s *LoginCodeStorage) Take(ctx context.Context, email string) (string, error) {
	return s.redis.GetDel(ctx, s.name(email)).Result()
}

func (s *LoginCodeStorage) name(email string) string {
	return fmt.Sprintf("auth:code:%s", email)
}
