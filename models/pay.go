package models

import (
	"time"

	"gorm.io/datatypes"
)

// PayRecord 支付流水记录表
type PayRecord struct {
	ID            uint64         `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderNo       string         `gorm:"column:order_no;type:varchar(32);not null;uniqueIndex:idx_order_no" json:"order_no"`
	TransactionId string         `gorm:"column:transaction_id;type:varchar(64);index:idx_transaction_id" json:"transaction_id"`
	PayerId       string         `gorm:"column:payer_id;type:varchar(128)" json:"payer_id"`
	AmountTotal   int64          `gorm:"column:amount_total;not null;default:0" json:"amount_total"` // 单位：分
	Currency      string         `gorm:"column:currency;type:varchar(10);default:'CNY'" json:"currency"`
	RawTradeState string         `gorm:"column:raw_trade_state;type:varchar(32)" json:"raw_trade_state"`
	NotifyRaw     datatypes.JSON `gorm:"column:notify_raw" json:"notify_raw"` // 回调原文，留作对账
	FinishedAt    *time.Time     `gorm:"column:finished_at" json:"finished_at"`
	CreatedAt     time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (PayRecord) TableName() string {
	return "pay_records"
}
