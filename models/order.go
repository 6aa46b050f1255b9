package models

import (
	"time"
)

type OrderStatus string

const (
	OrderStatusPending     OrderStatus = "pending"      // 待支付
	OrderStatusPaid        OrderStatus = "paid"         // 已支付
	OrderStatusPrinting    OrderStatus = "printing"     // 打印中
	OrderStatusShipped     OrderStatus = "shipped"      // 已发货
	OrderStatusReadyPickup OrderStatus = "ready_pickup" // 待自提
	OrderStatusCompleted   OrderStatus = "completed"    // 已完成
	OrderStatusCancelled   OrderStatus = "cancelled"    // 已取消
	OrderStatusArchived    OrderStatus = "archived"     // 已归档
)

// Valid 员工可手动设置的状态（pending 只能由下单产生，paid 只能由支付回调产生）
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPrinting, OrderStatusShipped, OrderStatusReadyPickup,
		OrderStatusCompleted, OrderStatusCancelled, OrderStatusArchived:
		return true
	}
	return false
}

// Terminal cancelled/archived 为终态，不再流转
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCancelled || s == OrderStatusArchived
}

const (
	ShippingDelivery = "delivery"
	ShippingPickup   = "pickup"
)

// Order 订单主表
type Order struct {
	ID      uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderNo string `gorm:"column:order_no;type:varchar(32);not null;uniqueIndex:idx_order_no" json:"order_no"`

	// 下单时的客户快照，客户资料后续变更不影响历史订单
	CustomerID    uint64 `gorm:"column:customer_id;not null;index:idx_customer_id" json:"customer_id"`
	CustomerName  string `gorm:"column:customer_name;type:varchar(64);not null" json:"customer_name"`
	CustomerPhone string `gorm:"column:customer_phone;type:varchar(32);not null;index:idx_customer_phone" json:"customer_phone"`
	CustomerEmail string `gorm:"column:customer_email;type:varchar(128)" json:"customer_email"`

	ShippingMode    string `gorm:"column:shipping_mode;type:varchar(16);not null" json:"shipping_mode"` // delivery / pickup
	ShippingAddress string `gorm:"column:shipping_address;type:varchar(255)" json:"shipping_address"`

	ProductType string `gorm:"column:product_type;type:varchar(32);not null" json:"product_type"`
	Quantity    int    `gorm:"column:quantity;not null" json:"quantity"`

	// 金额全部为分
	Subtotal       int64 `gorm:"column:subtotal;not null" json:"subtotal"`
	ShippingFee    int64 `gorm:"column:shipping_fee;not null;default:0" json:"shipping_fee"`
	DiscountAmount int64 `gorm:"column:discount_amount;not null;default:0" json:"discount_amount"`
	TotalAmount    int64 `gorm:"column:total_amount;not null" json:"total_amount"`

	PromoID   *uint64 `gorm:"column:promo_id;index:idx_promo_id" json:"promo_id,omitempty"`
	PromoCode string  `gorm:"column:promo_code;type:varchar(32)" json:"promo_code,omitempty"`

	Notes       string `gorm:"column:notes;type:varchar(500)" json:"notes"`
	AdminNotes  string `gorm:"column:admin_notes;type:varchar(500)" json:"admin_notes"`
	IsGift      bool   `gorm:"column:is_gift;not null;default:0" json:"is_gift"`
	GiftMessage string `gorm:"column:gift_message;type:varchar(255)" json:"gift_message"`

	Status OrderStatus `gorm:"column:status;type:varchar(16);not null;default:'pending';index:idx_status" json:"status"`

	TrackingNo      string `gorm:"column:tracking_no;type:varchar(64)" json:"tracking_no"`
	TrackingCarrier string `gorm:"column:tracking_carrier;type:varchar(32)" json:"tracking_carrier"`

	PaidAt      *time.Time `gorm:"column:paid_at" json:"paid_at"`
	PrintedAt   *time.Time `gorm:"column:printed_at" json:"printed_at"`
	ShippedAt   *time.Time `gorm:"column:shipped_at" json:"shipped_at"`
	CompletedAt *time.Time `gorm:"column:completed_at" json:"completed_at"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}

// StampStatus 进入目标状态时打里程碑时间戳，只打一次，重复进入不覆盖
func (o *Order) StampStatus(status OrderStatus, now time.Time) {
	o.Status = status
	switch status {
	case OrderStatusPaid:
		if o.PaidAt == nil {
			o.PaidAt = &now
		}
	case OrderStatusPrinting:
		if o.PrintedAt == nil {
			o.PrintedAt = &now
		}
	case OrderStatusShipped, OrderStatusReadyPickup:
		if o.ShippedAt == nil {
			o.ShippedAt = &now
		}
	case OrderStatusCompleted:
		if o.CompletedAt == nil {
			o.CompletedAt = &now
		}
	}
}

// OrderItem 订单照片明细，position 为打印顺序，订单内唯一
type OrderItem struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID      uint64    `gorm:"column:order_id;not null;uniqueIndex:idx_order_position,priority:1" json:"order_id"`
	Position     int       `gorm:"column:position;not null;uniqueIndex:idx_order_position,priority:2" json:"position"`
	FilePath     string    `gorm:"column:file_path;type:varchar(255);not null" json:"file_path"`
	OriginalName string    `gorm:"column:original_name;type:varchar(255)" json:"original_name"`
	FileSize     int64     `gorm:"column:file_size;not null;default:0" json:"file_size"`
	MimeType     string    `gorm:"column:mime_type;type:varchar(64)" json:"mime_type"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
