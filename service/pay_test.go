package service

import (
	"HeartSnaps/models"
	"context"
	"testing"
	"time"

	"github.com/wechatpay-apiv3/wechatpay-go/core"
	"github.com/wechatpay-apiv3/wechatpay-go/services/payments"
	"gorm.io/gorm"
)

type fakeOrderStore struct {
	order *models.Order
}

func (f *fakeOrderStore) FindById(_ context.Context, _ any) (*models.Order, error) {
	return f.order, nil
}

func (f *fakeOrderStore) FindByOrderNo(_ context.Context, _ string) (*models.Order, error) {
	return f.order, nil
}

func (f *fakeOrderStore) MarkPaid(_ context.Context, _ *gorm.DB, _ uint64, paidAt time.Time) (int64, error) {
	if f.order.Status != models.OrderStatusPending {
		return 0, nil
	}
	f.order.Status = models.OrderStatusPaid
	f.order.PaidAt = &paidAt
	return 1, nil
}

type fakeCustomerStats struct {
	orderCount int
	totalSpent int64
}

func (f *fakeCustomerStats) IncrPaidStats(_ context.Context, _ *gorm.DB, _ uint64, amount int64) error {
	f.orderCount++
	f.totalSpent += amount
	return nil
}

type fakePromoStore struct {
	maxUses   *uint32
	usesCount uint32
	usages    []*models.PromoUsage
}

func (f *fakePromoStore) IncrUsage(_ context.Context, _ *gorm.DB, _ uint64) (int64, error) {
	if f.maxUses != nil && f.usesCount >= *f.maxUses {
		return 0, nil
	}
	f.usesCount++
	return 1, nil
}

func (f *fakePromoStore) CreateUsage(_ context.Context, _ *gorm.DB, usage *models.PromoUsage) error {
	f.usages = append(f.usages, usage)
	return nil
}

type fakeRecordStore struct {
	records []*models.PayRecord
}

func (f *fakeRecordStore) CreateTx(_ context.Context, _ *gorm.DB, record *models.PayRecord) error {
	f.records = append(f.records, record)
	return nil
}

type fakeNotify struct {
	paidCount int
}

func (f *fakeNotify) OrderPaid(_ context.Context, _ *models.Order)    { f.paidCount++ }
func (f *fakeNotify) OrderShipped(_ context.Context, _ *models.Order) {}
func (f *fakeNotify) OrderReady(_ context.Context, _ *models.Order)   {}
func (f *fakeNotify) LoginCode(_ context.Context, _, _ string)        {}

type fakeFeed struct {
	paidCount int
}

func (f *fakeFeed) OrderPaid(_ *models.Order) { f.paidCount++ }

func paidTxn(orderNo string) *payments.Transaction {
	return &payments.Transaction{
		OutTradeNo:    core.String(orderNo),
		TransactionId: core.String("4200001234202608290001"),
		TradeState:    core.String("SUCCESS"),
		Amount:        &payments.TransactionAmount{Total: core.Int64(4800)},
	}
}

func newPaySetup(promoID *uint64) (*PayService, *fakeOrderStore, *fakeCustomerStats, *fakePromoStore, *fakeRecordStore, *fakeNotify, *fakeFeed) {
	orders := &fakeOrderStore{order: &models.Order{
		ID:          1,
		OrderNo:     "HS-20260829-001",
		CustomerID:  7,
		TotalAmount: 4800,
		PromoID:     promoID,
		Status:      models.OrderStatusPending,
	}}
	customers := &fakeCustomerStats{}
	promos := &fakePromoStore{}
	records := &fakeRecordStore{}
	notify := &fakeNotify{}
	feed := &fakeFeed{}

	s := &PayService{
		Orders:    orders,
		Customers: customers,
		Promos:    promos,
		Records:   records,
		Notify:    notify,
		Feed:      feed,
	}
	return s, orders, customers, promos, records, notify, feed
}

func TestProcessPaymentSuccess(t *testing.T) {
	promoID := uint64(3)
	s, orders, customers, promos, records, notify, feed := newPaySetup(&promoID)

	if err := s.ProcessPaymentSuccess(context.Background(), paidTxn("HS-20260829-001")); err != nil {
		t.Fatal(err)
	}

	if orders.order.Status != models.OrderStatusPaid {
		t.Errorf("status = %s, want paid", orders.order.Status)
	}
	if orders.order.PaidAt == nil {
		t.Error("paid_at not set")
	}
	if customers.orderCount != 1 || customers.totalSpent != 4800 {
		t.Errorf("stats = (%d, %d), want (1, 4800)", customers.orderCount, customers.totalSpent)
	}
	if len(records.records) != 1 {
		t.Fatalf("records = %d, want 1", len(records.records))
	}
	if records.records[0].TransactionId != "4200001234202608290001" {
		t.Errorf("transaction_id = %s", records.records[0].TransactionId)
	}
	if promos.usesCount != 1 || len(promos.usages) != 1 {
		t.Errorf("promo usage = (%d, %d), want (1, 1)", promos.usesCount, len(promos.usages))
	}
	if notify.paidCount != 1 {
		t.Errorf("notify count = %d, want 1", notify.paidCount)
	}
	if feed.paidCount != 1 {
		t.Errorf("feed count = %d, want 1", feed.paidCount)
	}
}

// 重复投递：第二次回调不产生任何副作用
func TestProcessPaymentSuccessRedelivery(t *testing.T) {
	promoID := uint64(3)
	s, orders, customers, promos, records, notify, feed := newPaySetup(&promoID)
	ctx := context.Background()
	txn := paidTxn("HS-20260829-001")

	if err := s.ProcessPaymentSuccess(ctx, txn); err != nil {
		t.Fatal(err)
	}
	firstPaidAt := *orders.order.PaidAt

	if err := s.ProcessPaymentSuccess(ctx, txn); err != nil {
		t.Fatal(err)
	}

	if !orders.order.PaidAt.Equal(firstPaidAt) {
		t.Error("paid_at overwritten on redelivery")
	}
	if customers.orderCount != 1 || customers.totalSpent != 4800 {
		t.Errorf("stats = (%d, %d), want (1, 4800)", customers.orderCount, customers.totalSpent)
	}
	if len(records.records) != 1 {
		t.Errorf("records = %d, want 1", len(records.records))
	}
	if promos.usesCount != 1 || len(promos.usages) != 1 {
		t.Errorf("promo usage = (%d, %d), want (1, 1)", promos.usesCount, len(promos.usages))
	}
	if notify.paidCount != 1 {
		t.Errorf("notify count = %d, want 1", notify.paidCount)
	}
	if feed.paidCount != 1 {
		t.Errorf("feed count = %d, want 1", feed.paidCount)
	}
}

func TestProcessPaymentSuccessNoPromo(t *testing.T) {
	s, _, _, promos, _, _, _ := newPaySetup(nil)

	if err := s.ProcessPaymentSuccess(context.Background(), paidTxn("HS-20260829-001")); err != nil {
		t.Fatal(err)
	}
	if promos.usesCount != 0 || len(promos.usages) != 0 {
		t.Error("promo must not be touched for orders without promo")
	}
}

// 下单后优惠码总量被别人用光：支付照常落账，核销记录仍然保留
func TestProcessPaymentSuccessPromoCapExhausted(t *testing.T) {
	promoID := uint64(3)
	s, orders, _, promos, _, _, _ := newPaySetup(&promoID)
	max := uint32(0)
	promos.maxUses = &max

	if err := s.ProcessPaymentSuccess(context.Background(), paidTxn("HS-20260829-001")); err != nil {
		t.Fatal(err)
	}
	if orders.order.Status != models.OrderStatusPaid {
		t.Errorf("status = %s, want paid", orders.order.Status)
	}
	if len(promos.usages) != 1 {
		t.Errorf("usage rows = %d, want 1", len(promos.usages))
	}
}

func TestProcessPaymentMissingOutTradeNo(t *testing.T) {
	s, _, _, _, _, _, _ := newPaySetup(nil)
	if err := s.ProcessPaymentSuccess(context.Background(), &payments.Transaction{}); err == nil {
		t.Error("expected error for notify without out_trade_no")
	}
}
