package service

import (
	"HeartSnaps/config"
	"HeartSnaps/dao"
	"HeartSnaps/models"
	"HeartSnaps/pkg/log"
	"HeartSnaps/pkg/response"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/tidwall/gjson"
	"github.com/wechatpay-apiv3/wechatpay-go/core"
	"github.com/wechatpay-apiv3/wechatpay-go/core/option"
	"github.com/wechatpay-apiv3/wechatpay-go/services/payments"
	"github.com/wechatpay-apiv3/wechatpay-go/services/payments/native"
	wxutils "github.com/wechatpay-apiv3/wechatpay-go/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 支付结算只依赖这几张表的窄接口，测试时好替换
type payOrders interface {
	FindById(ctx context.Context, id any) (*models.Order, error)
	FindByOrderNo(ctx context.Context, orderNo string) (*models.Order, error)
	MarkPaid(ctx context.Context, tx *gorm.DB, orderID uint64, paidAt time.Time) (int64, error)
}

type payCustomers interface {
	IncrPaidStats(ctx context.Context, tx *gorm.DB, customerID uint64, amount int64) error
}

type payPromos interface {
	IncrUsage(ctx context.Context, tx *gorm.DB, promoID uint64) (int64, error)
	CreateUsage(ctx context.Context, tx *gorm.DB, usage *models.PromoUsage) error
}

type payRecords interface {
	CreateTx(ctx context.Context, tx *gorm.DB, record *models.PayRecord) error
}

// orderAnnouncer 支付成功后向后台长连接广播
type orderAnnouncer interface {
	OrderPaid(order *models.Order)
}

var _ IPayService = (*PayService)(nil)

type IPayService interface {
	Checkout(ctx context.Context, orderID uint64) (string, *models.Order, error)
	ProcessPaymentSuccess(ctx context.Context, txn *payments.Transaction) error
	QueryByOrderNo(ctx context.Context, orderNo string) (*payments.Transaction, error)
}

type PayService struct {
	DB  *gorm.DB
	Cfg *config.WechatPay

	Orders    payOrders
	Customers payCustomers
	Promos    payPromos
	Records   payRecords

	Notify INotifyService
	Feed   orderAnnouncer

	client *core.Client
}

func NewPayService(
	db *gorm.DB,
	cfg *config.WechatPay,
	orderDAO *dao.Order,
	customerDAO *dao.Customer,
	promoDAO *dao.Promo,
	payDAO *dao.Pay,
	notify INotifyService,
	feed orderAnnouncer,
) *PayService {
	s := &PayService{
		DB:        db,
		Cfg:       cfg,
		Orders:    orderDAO,
		Customers: customerDAO,
		Promos:    promoDAO,
		Records:   payDAO,
		Notify:    notify,
		Feed:      feed,
	}

	mchPrivateKey, err := wxutils.LoadPrivateKeyWithPath(cfg.MchPrivateKeyPath)
	if err != nil {
		log.L.Error("加载商户私钥失败", zap.Error(err))
		return s
	}

	client, err := core.NewClient(context.Background(),
		option.WithWechatPayAutoAuthCipher(
			cfg.MchID,
			cfg.MchCertificateSerialNumber,
			mchPrivateKey,
			cfg.MchAPIv3Key,
		),
	)
	if err != nil {
		log.L.Error("创建微信支付客户端失败", zap.Error(err))
		return s
	}
	s.client = client
	return s
}

// Checkout 对 pending 订单发起 Native 预下单，返回 code_url 供前端换二维码
func (s *PayService) Checkout(ctx context.Context, orderID uint64) (string, *models.Order, error) {
	order, err := s.Orders.FindById(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, response.NotFound("订单不存在")
		}
		return "", nil, err
	}
	if order.Status != models.OrderStatusPending {
		return "", nil, response.Conflict("订单不在待支付状态")
	}
	if s.client == nil {
		return "", nil, response.NewError(500, "支付渠道未就绪")
	}

	// attach 原样回传，回调里用它反查订单
	attach, _ := json.Marshal(map[string]interface{}{
		"order_id": order.ID,
		"promo_id": order.PromoID,
	})

	svc := native.NativeApiService{Client: s.client}
	resp, _, err := svc.Prepay(ctx, native.PrepayRequest{
		Appid:       core.String(s.Cfg.AppID),
		Mchid:       core.String(s.Cfg.MchID),
		Description: core.String(fmt.Sprintf("照片冰箱贴 x%d", order.Quantity)),
		OutTradeNo:  core.String(order.OrderNo),
		NotifyUrl:   core.String(s.Cfg.NotifyURL),
		Attach:      core.String(string(attach)),
		Amount: &native.Amount{
			Total:    core.Int64(order.TotalAmount),
			Currency: core.String("CNY"),
		},
	})
	if err != nil {
		return "", nil, fmt.Errorf("微信下单失败: %w", err)
	}

	return *resp.CodeUrl, order, nil
}

// ProcessPaymentSuccess 验签后的回调入口
// 状态翻转及连带写入在一个事务里；通知等副作用只在首次翻转时触发
func (s *PayService) ProcessPaymentSuccess(ctx context.Context, txn *payments.Transaction) error {
	if txn == nil || txn.OutTradeNo == nil {
		return response.BadRequest("回调缺少商户单号")
	}

	order, err := s.Orders.FindByOrderNo(ctx, *txn.OutTradeNo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound("回调订单不存在")
		}
		return err
	}

	var first bool
	err = s.inTx(func(tx *gorm.DB) error {
		first, err = s.settle(ctx, tx, order, txn)
		return err
	})
	if err != nil {
		return err
	}

	if !first {
		log.L.Info("重复支付回调，忽略", zap.String("order_no", order.OrderNo))
		return nil
	}

	now := time.Now()
	order.StampStatus(models.OrderStatusPaid, now)

	if s.Notify != nil {
		s.Notify.OrderPaid(ctx, order)
	}
	if s.Feed != nil {
		s.Feed.OrderPaid(order)
	}
	return nil
}

func (s *PayService) inTx(fn func(tx *gorm.DB) error) error {
	if s.DB == nil {
		return fn(nil)
	}
	return s.DB.Transaction(fn)
}

// settle 首次回调返回 true 并落全部连带写入；订单已不在 pending 返回 false 什么都不做
func (s *PayService) settle(ctx context.Context, tx *gorm.DB, order *models.Order, txn *payments.Transaction) (bool, error) {
	now := time.Now()

	rows, err := s.Orders.MarkPaid(ctx, tx, order.ID, now)
	if err != nil {
		return false, err
	}
	if rows == 0 {
		return false, nil
	}

	raw, _ := json.Marshal(txn)
	record := &models.PayRecord{
		OrderNo:     order.OrderNo,
		AmountTotal: order.TotalAmount,
		Currency:    "CNY",
		NotifyRaw:   raw,
		FinishedAt:  &now,
	}
	if txn.TransactionId != nil {
		record.TransactionId = *txn.TransactionId
	}
	if txn.Payer != nil && txn.Payer.Openid != nil {
		record.PayerId = *txn.Payer.Openid
	}
	if txn.TradeState != nil {
		record.RawTradeState = *txn.TradeState
	}
	if txn.Amount != nil && txn.Amount.Total != nil {
		record.AmountTotal = *txn.Amount.Total
	}
	if err := s.Records.CreateTx(ctx, tx, record); err != nil {
		return false, err
	}

	if err := s.Customers.IncrPaidStats(ctx, tx, order.CustomerID, order.TotalAmount); err != nil {
		return false, err
	}

	// 优惠码在支付成功这一刻才真正核销
	if order.PromoID != nil {
		rows, err := s.Promos.IncrUsage(ctx, tx, *order.PromoID)
		if err != nil {
			return false, err
		}
		if rows == 0 {
			// 下单后到付款前被别人用光了上限，钱已收，只记日志不回滚
			log.L.Warn("优惠码核销超限", zap.Uint64("promo_id", *order.PromoID), zap.String("order_no", order.OrderNo))
		}
		if err := s.Promos.CreateUsage(ctx, tx, &models.PromoUsage{
			PromoID:        *order.PromoID,
			CustomerID:     order.CustomerID,
			OrderID:        order.ID,
			DiscountAmount: order.DiscountAmount,
		}); err != nil {
			return false, err
		}
	}

	if attach := attachOf(txn); attach != "" {
		if id := gjson.Get(attach, "order_id").Uint(); id != 0 && id != order.ID {
			log.L.Warn("回调 attach 与订单不符",
				zap.Uint64("attach_order_id", id),
				zap.Uint64("order_id", order.ID))
		}
	}

	return true, nil
}

func attachOf(txn *payments.Transaction) string {
	if txn.Attach == nil {
		return ""
	}
	return *txn.Attach
}

// QueryByOrderNo 主动向微信侧查单，用于对账和前端轮询兜底
func (s *PayService) QueryByOrderNo(ctx context.Context, orderNo string) (*payments.Transaction, error) {
	if s.client == nil {
		return nil, response.NewError(500, "支付渠道未就绪")
	}
	svc := native.NativeApiService{Client: s.client}
	resp, _, err := svc.QueryOrderByOutTradeNo(ctx, native.QueryOrderByOutTradeNoRequest{
		OutTradeNo: core.String(orderNo),
		Mchid:      core.String(s.Cfg.MchID),
	})
	if err != nil {
		return nil, fmt.Errorf("查单失败: %w", err)
	}
	return resp, nil
}
