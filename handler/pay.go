package handler

import (
	"HeartSnaps/config"
	"HeartSnaps/pkg/context"
	"HeartSnaps/pkg/log"
	"HeartSnaps/pkg/response"
	"HeartSnaps/service"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wechatpay-apiv3/wechatpay-go/core/auth/verifiers"
	"github.com/wechatpay-apiv3/wechatpay-go/core/downloader"
	"github.com/wechatpay-apiv3/wechatpay-go/core/notify"
	"github.com/wechatpay-apiv3/wechatpay-go/services/payments"
	"go.uber.org/zap"
)

type Pay struct {
	WechatPay  *config.WechatPay
	PayService service.IPayService
}

func (p *Pay) RegisterRouter(r gin.IRouter) {
	pay := r.Group("/v1/pay")
	{
		pay.POST("/notify", p.PayNotify)
		pay.GET("/query/:order_no", context.Wrap(p.QueryOrder))
	}
}

// PayNotify 支付回调。响应格式走微信的回执约定，不走统一 envelope
// 验签失败回 400，网关会按失败重试；业务处理失败回 500
func (p *Pay) PayNotify(c *gin.Context) {
	ctx := c.Request.Context()

	certificateVisitor := downloader.MgrInstance().GetCertificateVisitor(p.WechatPay.MchID)
	handler, err := notify.NewRSANotifyHandler(p.WechatPay.MchAPIv3Key, verifiers.NewSHA256WithRSAVerifier(certificateVisitor))
	if err != nil {
		log.L.Error("创建支付回调处理器失败", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"code": "FAIL", "message": "internal error"})
		return
	}

	transaction := new(payments.Transaction)
	if _, err := handler.ParseNotifyRequest(ctx, c.Request, transaction); err != nil {
		// 验签或解密失败，不可信的投递一律拒收
		log.L.Warn("支付回调验签失败", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"code": "FAIL", "message": "invalid signature"})
		return
	}

	if err := p.PayService.ProcessPaymentSuccess(ctx, transaction); err != nil {
		log.L.Error("支付回调业务处理失败", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"code": "FAIL", "message": "process failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": "SUCCESS", "message": "ok"})
}

// QueryOrder 主动查单，前端支付轮询兜底
func (p *Pay) QueryOrder(c *gin.Context) error {
	orderNo := c.Param("order_no")
	if orderNo == "" {
		return response.BadRequest("订单号不能为空")
	}

	txn, err := p.PayService.QueryByOrderNo(c.Request.Context(), orderNo)
	if err != nil {
		return err
	}

	response.Success(c, txn)
	return nil
}
