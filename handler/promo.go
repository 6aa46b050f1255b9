package handler

import (
	"HeartSnaps/pkg/context"
	"HeartSnaps/pkg/response"
	"HeartSnaps/service"
	"HeartSnaps/types"
	"errors"

	"github.com/gin-gonic/gin"
)

// Promo 客户侧优惠码试算
type Promo struct {
	PricingService  service.IPricingService
	PromoService    service.IPromoService
	CustomerService service.ICustomerService
}

func (p *Promo) RegisterRouter(r gin.IRouter) {
	promo := r.Group("/v1/promos")
	{
		promo.POST("/validate", context.Wrap(p.Validate))
	}
}

// Validate 试算结果仅供展示；码不可用时 valid=false 带原因，不报错
func (p *Promo) Validate(c *gin.Context) error {
	var req types.ValidatePromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.BadRequest("参数错误: " + err.Error())
	}

	ctx := c.Request.Context()
	quote := p.PricingService.Quote(req.Quantity, req.ProductType, req.ShippingMode)

	// 带手机号才能核对单客户上限，没带就按无历史算
	var customerID uint64
	if req.Phone != "" {
		customer, err := p.CustomerService.FindByPhone(ctx, req.Phone)
		if err != nil {
			return err
		}
		if customer != nil {
			customerID = customer.ID
		}
	}

	_, discount, err := p.PromoService.Validate(ctx, req.Code, quote.Subtotal, customerID)
	if err != nil {
		var pe *service.PromoError
		if errors.As(err, &pe) {
			response.Success(c, types.ValidatePromoResponse{
				Valid:  false,
				Reason: pe.Reason,
				Total:  quote.Total,
			})
			return nil
		}
		return err
	}

	discount = service.ClampDiscount(discount, quote.Subtotal, quote.ShippingFee)
	response.Success(c, types.ValidatePromoResponse{
		Valid:          true,
		DiscountAmount: discount,
		Total:          quote.Total - discount,
	})
	return nil
}
