package types

// PriceTier 阶梯单价，数量达到 MinQuantity 即整单按该单价计
type PriceTier struct {
	MinQuantity int   `json:"min_quantity"`
	UnitPrice   int64 `json:"unit_price"`
}

type ShopConfigResponse struct {
	OrderPrefix string      `json:"order_prefix"`
	ShippingFee int64       `json:"shipping_fee"`
	Tiers       []PriceTier `json:"tiers"`
}

type QuoteRequest struct {
	Quantity     int    `form:"quantity" binding:"required,min=1"`
	ProductType  string `form:"product_type" binding:"required"`
	ShippingMode string `form:"shipping_mode" binding:"required,oneof=delivery pickup"`
}

type Quote struct {
	UnitPrice   int64 `json:"unit_price"`
	Subtotal    int64 `json:"subtotal"`
	ShippingFee int64 `json:"shipping_fee"`
	Total       int64 `json:"total"`
}
