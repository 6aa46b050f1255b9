package handler

import (
	"HeartSnaps/config"
	"HeartSnaps/pkg/context"
	"HeartSnaps/pkg/response"
	"HeartSnaps/service"
	"HeartSnaps/types"

	"github.com/gin-gonic/gin"
)

type Shop struct {
	Shop           *config.ShopConfig
	PricingService service.IPricingService
}

func (s *Shop) RegisterRouter(r gin.IRouter) {
	shop := r.Group("/v1/shop")
	{
		shop.GET("/config", context.Wrap(s.GetConfig))
		shop.GET("/pricing", context.Wrap(s.GetQuote))
	}
}

// GetConfig 前台渲染所需的公开配置
func (s *Shop) GetConfig(c *gin.Context) error {
	response.Success(c, types.ShopConfigResponse{
		OrderPrefix: s.Shop.OrderPrefix,
		ShippingFee: s.Shop.ShippingFee,
		Tiers:       s.PricingService.Tiers(),
	})
	return nil
}

// GetQuote 下单前试算，结果仅供展示，下单时服务端重算
func (s *Shop) GetQuote(c *gin.Context) error {
	var req types.QuoteRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		return response.BadRequest("参数错误: " + err.Error())
	}

	response.Success(c, s.PricingService.Quote(req.Quantity, req.ProductType, req.ShippingMode))
	return nil
}
