package types

// ValidatePromoRequest 试算请求，小计由服务端按报价引擎重算，不信任客户端金额
type ValidatePromoRequest struct {
	Code         string `json:"code" binding:"required"`
	Quantity     int    `json:"quantity" binding:"required,min=1"`
	ProductType  string `json:"product_type" binding:"required"`
	ShippingMode string `json:"shipping_mode" binding:"required,oneof=delivery pickup"`
	Phone        string `json:"phone"` // 可选，带上手机号才能校验单客户上限
}

type ValidatePromoResponse struct {
	Valid          bool   `json:"valid"`
	Reason         string `json:"reason,omitempty"`
	DiscountAmount int64  `json:"discount_amount"`
	Total          int64  `json:"total"`
}

type CreatePromoRequest struct {
	Code               string  `json:"code" binding:"required"`
	DiscountType       string  `json:"discount_type" binding:"required,oneof=percentage fixed"`
	DiscountValue      int64   `json:"discount_value" binding:"required,min=1"`
	MinOrderAmount     int64   `json:"min_order_amount" binding:"min=0"`
	MaxUses            *uint32 `json:"max_uses"`
	MaxUsesPerCustomer *uint32 `json:"max_uses_per_customer"`
	StartsAt           string  `json:"starts_at"`  // ISO-8601，可空
	ExpiresAt          string  `json:"expires_at"` // ISO-8601，可空
}

type UpdatePromoRequest struct {
	DiscountType       *string `json:"discount_type" binding:"omitempty,oneof=percentage fixed"`
	DiscountValue      *int64  `json:"discount_value" binding:"omitempty,min=1"`
	MinOrderAmount     *int64  `json:"min_order_amount"`
	MaxUses            *uint32 `json:"max_uses"`
	MaxUsesPerCustomer *uint32 `json:"max_uses_per_customer"`
	Active             *bool   `json:"active"`
	StartsAt           *string `json:"starts_at"`
	ExpiresAt          *string `json:"expires_at"`
}
