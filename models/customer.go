package models

import (
	"time"
)

// Customer 客户表，手机号为去重主键；order_count / total_spent 只在支付成功时累加
type Customer struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Phone      string    `gorm:"column:phone;type:varchar(32);not null;uniqueIndex:idx_phone" json:"phone"`
	Name       string    `gorm:"column:name;type:varchar(64);not null" json:"name"`
	Email      string    `gorm:"column:email;type:varchar(128);index:idx_email" json:"email"`
	Address    string    `gorm:"column:address;type:varchar(255)" json:"address"`
	OrderCount uint32    `gorm:"column:order_count;not null;default:0" json:"order_count"`
	TotalSpent int64     `gorm:"column:total_spent;not null;default:0" json:"total_spent"` // 单位：分
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Customer) TableName() string {
	return "customers"
}
