package dao

import (
	"HeartSnaps/models"
	"context"
	"time"

	"gorm.io/gorm"
)

type Customer struct {
	Repo[models.Customer]
}

func NewCustomer(db *gorm.DB) *Customer {
	return &Customer{
		Repo: NewRepo[models.Customer](db),
	}
}

func (c *Customer) FindByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	return c.Repo.FindByWhere(ctx, "phone = ?", phone)
}

func (c *Customer) FindByEmail(ctx context.Context, email string) (*models.Customer, error) {
	return c.Repo.FindByWhere(ctx, "email = ?", email)
}

// UpsertByPhone 手机号去重；已存在则覆盖姓名/邮箱/地址快照，统计字段不动
func (c *Customer) UpsertByPhone(ctx context.Context, phone, name, email, address string) (*models.Customer, error) {
	now := time.Now()
	err := c.Db.WithContext(ctx).Exec(`
		INSERT INTO customers (phone, name, email, address, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			name = VALUES(name),
			email = VALUES(email),
			address = VALUES(address),
			updated_at = VALUES(updated_at)
	`, phone, name, email, address, now, now).Error
	if err != nil {
		return nil, err
	}
	return c.FindByPhone(ctx, phone)
}

// IncrPaidStats 支付成功时累加统计，gorm.Expr 保证并发下的原子加
func (c *Customer) IncrPaidStats(ctx context.Context, tx *gorm.DB, customerID uint64, amount int64) error {
	return tx.WithContext(ctx).Model(&models.Customer{}).
		Where("id = ?", customerID).
		Updates(map[string]interface{}{
			"order_count": gorm.Expr("order_count + 1"),
			"total_spent": gorm.Expr("total_spent + ?", amount),
		}).Error
}

func (c *Customer) List(ctx context.Context, cursor uint64, limit int) ([]*models.Customer, error) {
	var customers []*models.Customer
	query := c.Db.WithContext(ctx)
	if cursor > 0 {
		query = query.Where("id < ?", cursor)
	}
	err := query.Order("id desc").Limit(limit).Find(&customers).Error
	return customers, err
}

func (c *Customer) Count(ctx context.Context) (int64, error) {
	var count int64
	err := c.Db.WithContext(ctx).Model(&models.Customer{}).Count(&count).Error
	return count, err
}
