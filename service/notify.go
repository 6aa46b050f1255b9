package service

import (
	"HeartSnaps/config"
	"HeartSnaps/models"
	"HeartSnaps/pkg/log"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sourcegraph/conc"
	"go.uber.org/zap"
)

var _ INotifyService = (*NotifyService)(nil)

// INotifyService 订单事件通知。全部尽力而为，失败只记日志不影响主流程
type INotifyService interface {
	OrderPaid(ctx context.Context, order *models.Order)
	OrderShipped(ctx context.Context, order *models.Order)
	OrderReady(ctx context.Context, order *models.Order)
	LoginCode(ctx context.Context, email, code string)
}

type NotifyService struct {
	Cfg    *config.NotifyConfig
	client *http.Client
}

func NewNotifyService(cfg *config.NotifyConfig) *NotifyService {
	return &NotifyService{
		Cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// OrderPaid 客户确认邮件 + 员工新单推送，并发发出，互不拖累
func (n *NotifyService) OrderPaid(ctx context.Context, order *models.Order) {
	var wg conc.WaitGroup
	wg.Go(func() {
		n.sendEmail(ctx, order.CustomerEmail,
			fmt.Sprintf("订单 %s 支付成功", order.OrderNo),
			fmt.Sprintf("您的订单 %s 已支付，共 %d 张，实付 %.2f 元。我们会尽快安排打印。",
				order.OrderNo, order.Quantity, float64(order.TotalAmount)/100))
	})
	wg.Go(func() {
		n.sendEmail(ctx, n.Cfg.StaffEmail,
			fmt.Sprintf("新订单 %s", order.OrderNo),
			fmt.Sprintf("%s（%s）下单 %d 张，%s，实付 %.2f 元。",
				order.CustomerName, order.CustomerPhone, order.Quantity,
				order.ShippingMode, float64(order.TotalAmount)/100))
	})
	wg.Go(func() {
		n.sendPush(ctx, "新订单",
			fmt.Sprintf("%s x%d %.2f元", order.OrderNo, order.Quantity, float64(order.TotalAmount)/100))
	})
	wg.Wait()
}

func (n *NotifyService) OrderShipped(ctx context.Context, order *models.Order) {
	body := fmt.Sprintf("您的订单 %s 已发货。", order.OrderNo)
	if order.TrackingNo != "" {
		body = fmt.Sprintf("您的订单 %s 已发货，%s 运单号 %s。",
			order.OrderNo, order.TrackingCarrier, order.TrackingNo)
	}
	n.sendEmail(ctx, order.CustomerEmail, fmt.Sprintf("订单 %s 已发货", order.OrderNo), body)
}

func (n *NotifyService) OrderReady(ctx context.Context, order *models.Order) {
	n.sendEmail(ctx, order.CustomerEmail,
		fmt.Sprintf("订单 %s 可以自提了", order.OrderNo),
		fmt.Sprintf("您的订单 %s 已制作完成，欢迎到店自提。", order.OrderNo))
}

func (n *NotifyService) LoginCode(ctx context.Context, email, code string) {
	n.sendEmail(ctx, email, "后台登录验证码",
		fmt.Sprintf("您的登录验证码是 %s，10 分钟内有效。如非本人操作请忽略。", code))
}

func (n *NotifyService) sendEmail(ctx context.Context, to, subject, body string) {
	if n.Cfg.EmailEndpoint == "" || to == "" {
		return
	}

	payload, _ := json.Marshal(map[string]string{
		"from":    n.Cfg.EmailFrom,
		"to":      to,
		"subject": subject,
		"text":    body,
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.Cfg.EmailEndpoint, bytes.NewReader(payload))
	if err != nil {
		log.L.Warn("build email request failed", zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+n.Cfg.EmailAPIKey)

	resp, err := n.client.Do(req)
	if err != nil {
		log.L.Warn("send email failed", zap.String("to", to), zap.Error(err))
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		log.L.Warn("email api non-2xx", zap.String("to", to), zap.Int("status", resp.StatusCode))
	}
}

// sendPush Bark 风格的 GET 即发推送
func (n *NotifyService) sendPush(ctx context.Context, title, body string) {
	if n.Cfg.PushEndpoint == "" {
		return
	}

	target := fmt.Sprintf("%s/%s/%s",
		n.Cfg.PushEndpoint, url.PathEscape(title), url.PathEscape(body))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		log.L.Warn("build push request failed", zap.Error(err))
		return
	}

	resp, err := n.client.Do(req)
	if err != nil {
		log.L.Warn("send push failed", zap.Error(err))
		return
	}
	resp.Body.Close()
}
