package service

import (
	"HeartSnaps/config"
	"HeartSnaps/models"
	"HeartSnaps/types"
)

// 阶梯单价（分）。整单按数量命中的档位统一计价，不是分段累进：
// 12 张 = 12 * 700，而不是 5*1000 + 6*800 + 1*700
var priceTiers = []types.PriceTier{
	{MinQuantity: 12, UnitPrice: 700},
	{MinQuantity: 6, UnitPrice: 800},
	{MinQuantity: 1, UnitPrice: 1000},
}

// UnitPrice 数量对应的单价。quantity 必须为正整数，调用方负责校验
func UnitPrice(quantity int) int64 {
	for _, tier := range priceTiers {
		if quantity >= tier.MinQuantity {
			return tier.UnitPrice
		}
	}
	return priceTiers[len(priceTiers)-1].UnitPrice
}

// Subtotal 订单小计，当前各产品类型同价
func Subtotal(quantity int, productType string) int64 {
	return int64(quantity) * UnitPrice(quantity)
}

var _ IPricingService = (*PricingService)(nil)

type IPricingService interface {
	Quote(quantity int, productType, shippingMode string) *types.Quote
	Tiers() []types.PriceTier
}

// PricingService 报价引擎，纯计算无副作用
// 下单前试算和下单落库共用同一份逻辑，两处永不分叉
type PricingService struct {
	Shop *config.ShopConfig
}

func (p *PricingService) Quote(quantity int, productType, shippingMode string) *types.Quote {
	subtotal := Subtotal(quantity, productType)

	var shipping int64
	if shippingMode == models.ShippingDelivery {
		shipping = p.Shop.ShippingFee
	}

	return &types.Quote{
		UnitPrice:   UnitPrice(quantity),
		Subtotal:    subtotal,
		ShippingFee: shipping,
		Total:       subtotal + shipping,
	}
}

func (p *PricingService) Tiers() []types.PriceTier {
	tiers := make([]types.PriceTier, len(priceTiers))
	copy(tiers, priceTiers)
	return tiers
}
