package models

import (
	"time"
)

const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

// PromoCode 优惠码，code 入库前统一大写
type PromoCode struct {
	ID                 uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Code               string     `gorm:"column:code;type:varchar(32);not null;uniqueIndex:idx_code" json:"code"`
	DiscountType       string     `gorm:"column:discount_type;type:varchar(16);not null" json:"discount_type"` // percentage / fixed
	DiscountValue      int64      `gorm:"column:discount_value;not null" json:"discount_value"`                // 百分比点数或固定金额（分）
	MinOrderAmount     int64      `gorm:"column:min_order_amount;not null;default:0" json:"min_order_amount"`
	MaxUses            *uint32    `gorm:"column:max_uses" json:"max_uses"` // NULL 表示不限次
	UsesCount          uint32     `gorm:"column:uses_count;not null;default:0" json:"uses_count"`
	MaxUsesPerCustomer *uint32    `gorm:"column:max_uses_per_customer" json:"max_uses_per_customer"`
	Active             bool       `gorm:"column:active;not null;default:1" json:"active"`
	StartsAt           *time.Time `gorm:"column:starts_at" json:"starts_at"`
	ExpiresAt          *time.Time `gorm:"column:expires_at" json:"expires_at"`
	CreatedAt          time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (PromoCode) TableName() string {
	return "promo_codes"
}

// PromoUsage 每次核销记一行，支撑单客户次数上限校验
type PromoUsage struct {
	ID             uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	PromoID        uint64    `gorm:"column:promo_id;not null;index:idx_promo_customer,priority:1" json:"promo_id"`
	CustomerID     uint64    `gorm:"column:customer_id;not null;index:idx_promo_customer,priority:2" json:"customer_id"`
	OrderID        uint64    `gorm:"column:order_id;not null;index:idx_order_id" json:"order_id"`
	DiscountAmount int64     `gorm:"column:discount_amount;not null" json:"discount_amount"`
	UsedAt         time.Time `gorm:"column:used_at;autoCreateTime" json:"used_at"`
}

func (PromoUsage) TableName() string {
	return "promo_usages"
}
