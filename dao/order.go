package dao

import (
	"HeartSnaps/models"
	"context"
	"time"

	"gorm.io/gorm"
)

type Order struct {
	Repo[models.Order]
}

func NewOrder(db *gorm.DB) *Order {
	return &Order{
		Repo: NewRepo[models.Order](db),
	}
}

func (o *Order) FindByOrderNo(ctx context.Context, orderNo string) (*models.Order, error) {
	return o.Repo.FindByWhere(ctx, "order_no = ?", orderNo)
}

// List 后台订单列表，cursor 分页，按 ID 倒序，可按状态过滤
func (o *Order) List(ctx context.Context, status models.OrderStatus, cursor uint64, limit int) ([]*models.Order, error) {
	var orders []*models.Order
	query := o.Db.WithContext(ctx)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if cursor > 0 {
		query = query.Where("id < ?", cursor)
	}
	err := query.Order("id desc").Limit(limit).Find(&orders).Error
	return orders, err
}

func (o *Order) ListByCustomer(ctx context.Context, customerID uint64, limit int) ([]*models.Order, error) {
	var orders []*models.Order
	err := o.Db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("id desc").Limit(limit).
		Find(&orders).Error
	return orders, err
}

// MarkPaid 幂等的 pending -> paid 原子翻转
// 返回受影响行数，0 表示订单已不在 pending（重复投递），调用方据此跳过副作用
func (o *Order) MarkPaid(ctx context.Context, tx *gorm.DB, orderID uint64, paidAt time.Time) (int64, error) {
	result := tx.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND status = ?", orderID, models.OrderStatusPending).
		Updates(map[string]interface{}{
			"status":  models.OrderStatusPaid,
			"paid_at": paidAt,
		})
	return result.RowsAffected, result.Error
}

// UpdateStatus 员工改状态；里程碑时间戳用 IFNULL 保证只写一次，重复进入不覆盖
func (o *Order) UpdateStatus(ctx context.Context, orderID uint64, status models.OrderStatus, now time.Time) error {
	updates := map[string]interface{}{
		"status": status,
	}
	switch status {
	case models.OrderStatusPrinting:
		updates["printed_at"] = gorm.Expr("IFNULL(printed_at, ?)", now)
	case models.OrderStatusShipped, models.OrderStatusReadyPickup:
		updates["shipped_at"] = gorm.Expr("IFNULL(shipped_at, ?)", now)
	case models.OrderStatusCompleted:
		updates["completed_at"] = gorm.Expr("IFNULL(completed_at, ?)", now)
	}
	return o.Db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", orderID).
		Updates(updates).Error
}

func (o *Order) UpdateTracking(ctx context.Context, orderID uint64, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return o.Db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", orderID).
		Updates(updates).Error
}

// DeleteCascade 硬删除订单及其照片明细（同一事务）
func (o *Order) DeleteCascade(ctx context.Context, orderID uint64) error {
	return o.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", orderID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", orderID).Delete(&models.Order{}).Error
	})
}

func (o *Order) AddItem(ctx context.Context, item *models.OrderItem) error {
	return o.Db.WithContext(ctx).Create(item).Error
}

func (o *Order) ListItems(ctx context.Context, orderID uint64) ([]*models.OrderItem, error) {
	var items []*models.OrderItem
	err := o.Db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("position asc").
		Find(&items).Error
	return items, err
}

func (o *Order) CountItems(ctx context.Context, orderID uint64) (int64, error) {
	var count int64
	err := o.Db.WithContext(ctx).Model(&models.OrderItem{}).
		Where("order_id = ?", orderID).
		Count(&count).Error
	return count, err
}

// StatusCounts 各状态订单数，后台看板用
func (o *Order) StatusCounts(ctx context.Context) (map[models.OrderStatus]int64, error) {
	var rows []struct {
		Status models.OrderStatus
		Count  int64
	}
	err := o.Db.WithContext(ctx).Model(&models.Order{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.OrderStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}

// Revenue 已支付订单的累计流水（分），只统计已走过 paid 的订单
func (o *Order) Revenue(ctx context.Context) (int64, error) {
	var res struct {
		Amount int64
	}
	err := o.Db.WithContext(ctx).Model(&models.Order{}).
		Select("IFNULL(SUM(total_amount), 0) AS amount").
		Where("paid_at IS NOT NULL").
		Scan(&res).Error
	return res.Amount, err
}

func (o *Order) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := o.Db.WithContext(ctx).Model(&models.Order{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	return count, err
}
