package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// 当日序号 48 小时后过期，跨时区的迟到请求也能命中
const seqExpireAt = 48 * time.Hour

// OrderSeqStorage 订单号当日序号分配器
// INCR 原子自增，并发下单不会产生重号或跳号
type OrderSeqStorage struct {
	redis *redis.Client
}

func NewOrderSeqStorage(rds *redis.Client) *OrderSeqStorage {
	return &OrderSeqStorage{redis: rds}
}

// Next 取当日下一个序号，从 1 开始
func (s *OrderSeqStorage) Next(ctx context.Context, day string) (int64, error) {
	name := s.name(day)

	pipe := s.redis.Pipeline()
	incr := pipe.Incr(ctx, name)
	pipe.Expire(ctx, name, seqExpireAt)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}

	return incr.Val(), nil
}

func (s *OrderSeqStorage) name(day string) string {
	return fmt.Sprintf("order:seq:%s", day)
}
