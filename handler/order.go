package handler

import (
	"HeartSnaps/pkg/context"
	"HeartSnaps/pkg/response"
	"HeartSnaps/service"
	"HeartSnaps/types"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Order 客户侧下单接口，无需登录
type Order struct {
	OrderService service.IOrderService
	PayService   service.IPayService
}

func (o *Order) RegisterRouter(r gin.IRouter) {
	order := r.Group("/v1/orders")
	{
		order.POST("", context.Wrap(o.Create))
		order.POST("/:id/photos", context.Wrap(o.UploadPhoto))
		order.POST("/:id/checkout", context.Wrap(o.Checkout))
		order.GET("/track/:order_no", context.Wrap(o.Track))
	}
}

func (o *Order) Create(c *gin.Context) error {
	var req types.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.BadRequest("参数错误: " + err.Error())
	}

	order, err := o.OrderService.CreateOrder(c.Request.Context(), &req)
	if err != nil {
		return err
	}

	response.Success(c, types.CreateOrderResponse{
		OrderID:  order.ID,
		OrderNo:  order.OrderNo,
		Subtotal: order.Subtotal,
		Shipping: order.ShippingFee,
		Discount: order.DiscountAmount,
		Total:    order.TotalAmount,
		Status:   string(order.Status),
	})
	return nil
}

// UploadPhoto multipart 上传单张照片到指定 position
func (o *Order) UploadPhoto(c *gin.Context) error {
	orderID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	position, err := strconv.Atoi(c.PostForm("position"))
	if err != nil {
		return response.BadRequest("position 必须为整数")
	}

	header, err := c.FormFile("photo")
	if err != nil {
		return response.BadRequest("缺少 photo 文件")
	}

	item, err := o.OrderService.UploadPhoto(c.Request.Context(), orderID, position, header)
	if err != nil {
		return err
	}

	response.Success(c, types.UploadPhotoResponse{
		ItemID:   item.ID,
		Position: item.Position,
		FilePath: item.FilePath,
	})
	return nil
}

func (o *Order) Checkout(c *gin.Context) error {
	orderID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	codeURL, order, err := o.PayService.Checkout(c.Request.Context(), orderID)
	if err != nil {
		return err
	}

	response.Success(c, types.CheckoutResponse{
		OrderNo: order.OrderNo,
		Amount:  order.TotalAmount,
		CodeURL: codeURL,
	})
	return nil
}

func (o *Order) Track(c *gin.Context) error {
	resp, err := o.OrderService.Track(c.Request.Context(), c.Param("order_no"))
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}

func parseID(c *gin.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, response.BadRequest(name + " 不合法")
	}
	return id, nil
}
