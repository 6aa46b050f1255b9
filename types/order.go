package types

import (
	"time"

	"HeartSnaps/models"
)

type CreateOrderRequest struct {
	Name         string `json:"name" binding:"required"`
	Phone        string `json:"phone" binding:"required"`
	Email        string `json:"email" binding:"omitempty,email"`
	ShippingMode string `json:"shipping_mode" binding:"required,oneof=delivery pickup"`
	Address      string `json:"address"` // delivery 必填，handler 校验
	ProductType  string `json:"product_type" binding:"required"`
	Quantity     int    `json:"quantity" binding:"required,min=1"`
	PromoCode    string `json:"promo_code"`
	Notes        string `json:"notes"`
	IsGift       bool   `json:"is_gift"`
	GiftMessage  string `json:"gift_message"`
}

type CreateOrderResponse struct {
	OrderID  uint64 `json:"order_id"`
	OrderNo  string `json:"order_no"`
	Subtotal int64  `json:"subtotal"`
	Shipping int64  `json:"shipping_fee"`
	Discount int64  `json:"discount_amount"`
	Total    int64  `json:"total_amount"`
	Status   string `json:"status"`
}

// TrackOrderResponse 客户侧追踪视图，不暴露后台备注和金额以外的内部字段
type TrackOrderResponse struct {
	OrderNo     string     `json:"order_no"`
	TrackCode   string     `json:"track_code"` // hashid 短码，用于分享链接
	Status      string     `json:"status"`
	Quantity    int        `json:"quantity"`
	ProductType string     `json:"product_type"`
	Total       int64      `json:"total_amount"`
	TrackingNo  string     `json:"tracking_no,omitempty"`
	Carrier     string     `json:"tracking_carrier,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
	PrintedAt   *time.Time `json:"printed_at,omitempty"`
	ShippedAt   *time.Time `json:"shipped_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

type UpdateOrderStatusRequest struct {
	Status          string `json:"status" binding:"required"`
	TrackingNo      string `json:"tracking_no"`
	TrackingCarrier string `json:"tracking_carrier"`
	AdminNotes      string `json:"admin_notes"`
}

type UploadPhotoResponse struct {
	ItemID   uint64 `json:"item_id"`
	Position int    `json:"position"`
	FilePath string `json:"file_path"`
}

// OrderDetail 后台订单详情，照片带一小时有效期的签名 URL
type OrderDetail struct {
	Order  *models.Order `json:"order"`
	Photos []OrderPhoto  `json:"photos"`
}

type OrderPhoto struct {
	Position     int    `json:"position"`
	OriginalName string `json:"original_name"`
	MimeType     string `json:"mime_type"`
	FileSize     int64  `json:"file_size"`
	SignedURL    string `json:"signed_url"`
}

type OrderListResponse struct {
	Orders     []*models.Order `json:"orders"`
	NextCursor uint64          `json:"next_cursor"`
	HasMore    bool            `json:"has_more"`
}
