package service

import (
	"HeartSnaps/config"
	"HeartSnaps/models"
	"HeartSnaps/pkg/response"
	"HeartSnaps/types"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type memOrderStore struct {
	mu     sync.Mutex
	nextID uint64
	orders map[uint64]*models.Order
	items  []*models.OrderItem
}

func newMemOrderStore() *memOrderStore {
	return &memOrderStore{orders: map[uint64]*models.Order{}}
}

func (m *memOrderStore) Create(_ context.Context, order *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	order.ID = m.nextID
	order.CreatedAt = time.Now()
	m.orders[order.ID] = order
	return nil
}

func (m *memOrderStore) FindById(_ context.Context, id any) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[id.(uint64)]
	if !ok {
		return nil, errors.New("record not found")
	}
	return order, nil
}

func (m *memOrderStore) FindByOrderNo(_ context.Context, orderNo string) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.orders {
		if o.OrderNo == orderNo {
			return o, nil
		}
	}
	return nil, errors.New("record not found")
}

func (m *memOrderStore) List(_ context.Context, _ models.OrderStatus, _ uint64, _ int) ([]*models.Order, error) {
	return nil, nil
}

func (m *memOrderStore) UpdateStatus(_ context.Context, orderID uint64, status models.OrderStatus, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[orderID].StampStatus(status, now)
	return nil
}

func (m *memOrderStore) UpdateTracking(_ context.Context, _ uint64, _ map[string]interface{}) error {
	return nil
}

func (m *memOrderStore) DeleteCascade(_ context.Context, orderID uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.orders, orderID)
	return nil
}

func (m *memOrderStore) AddItem(_ context.Context, item *models.OrderItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, item)
	return nil
}

func (m *memOrderStore) ListItems(_ context.Context, orderID uint64) ([]*models.OrderItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var items []*models.OrderItem
	for _, it := range m.items {
		if it.OrderID == orderID {
			items = append(items, it)
		}
	}
	return items, nil
}

func (m *memOrderStore) IsExist(_ context.Context, _ string, args ...any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	orderID, position := args[0].(uint64), args[1].(int)
	for _, it := range m.items {
		if it.OrderID == orderID && it.Position == position {
			return true, nil
		}
	}
	return false, nil
}

type fakeSeq struct {
	counter atomic.Int64
}

func (f *fakeSeq) Next(_ context.Context, _ string) (int64, error) {
	return f.counter.Add(1), nil
}

type fakeCustomers struct{}

func (fakeCustomers) ResolveOrCreate(_ context.Context, phone, name, email, address string) (*models.Customer, error) {
	return &models.Customer{ID: 7, Phone: phone, Name: name, Email: email, Address: address}, nil
}
func (fakeCustomers) FindByPhone(_ context.Context, _ string) (*models.Customer, error) {
	return nil, nil
}
func (fakeCustomers) FindByEmail(_ context.Context, _ string) (*models.Customer, error) {
	return nil, nil
}

type fakePromos struct {
	promo    *models.PromoCode
	discount int64
	err      error
}

func (f *fakePromos) Validate(_ context.Context, _ string, _ int64, _ uint64) (*models.PromoCode, int64, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	return f.promo, f.discount, nil
}
func (f *fakePromos) List(_ context.Context) ([]*models.PromoCode, error) { return nil, nil }
func (f *fakePromos) Create(_ context.Context, _ *types.CreatePromoRequest) (*models.PromoCode, error) {
	return nil, nil
}
func (f *fakePromos) Update(_ context.Context, _ uint64, _ *types.UpdatePromoRequest) error {
	return nil
}
func (f *fakePromos) Delete(_ context.Context, _ uint64) error { return nil }

type fakeOss struct{}

func (fakeOss) UploadOrderPhoto(_ context.Context, orderID uint64, position int, header *multipart.FileHeader) (*UploadedPhoto, error) {
	return &UploadedPhoto{
		ObjectKey: fmt.Sprintf("orders/%d/%d_test.jpg", orderID, position),
		MimeType:  "image/jpeg",
		Size:      header.Size,
	}, nil
}
func (fakeOss) UploadGalleryImage(_ context.Context, _ *multipart.FileHeader) (string, string, error) {
	return "", "", nil
}
func (fakeOss) SignPhotoURL(_ context.Context, key string) (string, error) {
	return "https://signed.example.com/" + key, nil
}
func (fakeOss) DownloadReader(_ context.Context, _ string) (io.ReadCloser, error) {
	return nil, errors.New("not found")
}
func (fakeOss) DeletePrivate(_ context.Context, _ string) error { return nil }
func (fakeOss) DeletePublic(_ context.Context, _ string) error  { return nil }
func (fakeOss) PublicURL(key string) string                     { return "https://cdn.example.com/" + key }

func newTestOrderService(promos IPromoService) (*OrderService, *memOrderStore) {
	shop := &config.ShopConfig{OrderPrefix: "HS", ShippingFee: 1000, TrackSalt: "test-salt"}
	store := newMemOrderStore()
	s := &OrderService{
		Shop:      shop,
		OrderDAO:  store,
		Pricing:   &PricingService{Shop: shop},
		Promos:    promos,
		Customers: fakeCustomers{},
		Oss:       fakeOss{},
		Seq:       &fakeSeq{},
	}
	return s, store
}

func TestAllocateOrderNoFormat(t *testing.T) {
	s, _ := newTestOrderService(nil)
	day := time.Date(2026, 8, 29, 10, 0, 0, 0, time.Local)

	// 序号从 1 递增，三位补零
	for i, want := range []string{"HS-20260829-001", "HS-20260829-002", "HS-20260829-003"} {
		got, err := s.AllocateOrderNo(context.Background(), day)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("alloc #%d = %s, want %s", i+1, got, want)
		}
	}
}

func TestAllocateOrderNoConcurrent(t *testing.T) {
	s, _ := newTestOrderService(nil)
	day := time.Now()

	const n = 100
	results := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			no, err := s.AllocateOrderNo(context.Background(), day)
			if err != nil {
				t.Errorf("alloc failed: %v", err)
				return
			}
			results <- no
		}()
	}
	wg.Wait()
	close(results)

	seen := map[string]bool{}
	for no := range results {
		if seen[no] {
			t.Fatalf("duplicate order no: %s", no)
		}
		seen[no] = true
	}
	if len(seen) != n {
		t.Errorf("allocated %d unique numbers, want %d", len(seen), n)
	}
}

func TestCreateOrderPickup(t *testing.T) {
	s, store := newTestOrderService(nil)

	order, err := s.CreateOrder(context.Background(), &types.CreateOrderRequest{
		Name:         "张三",
		Phone:        "13800001111",
		ShippingMode: models.ShippingPickup,
		ProductType:  "magnet",
		Quantity:     6,
	})
	if err != nil {
		t.Fatal(err)
	}

	if order.Subtotal != 4800 {
		t.Errorf("subtotal = %d, want 4800", order.Subtotal)
	}
	if order.ShippingFee != 0 {
		t.Errorf("shipping = %d, want 0 for pickup", order.ShippingFee)
	}
	if order.TotalAmount != 4800 {
		t.Errorf("total = %d, want 4800", order.TotalAmount)
	}
	if order.Status != models.OrderStatusPending {
		t.Errorf("status = %s, want pending", order.Status)
	}
	if !strings.HasPrefix(order.OrderNo, "HS-") {
		t.Errorf("order no %s missing prefix", order.OrderNo)
	}
	if order.CustomerID != 7 {
		t.Errorf("customer id = %d, want 7", order.CustomerID)
	}
	if len(store.orders) != 1 {
		t.Errorf("persisted %d orders, want 1", len(store.orders))
	}
}

func TestCreateOrderDeliveryRequiresAddress(t *testing.T) {
	s, _ := newTestOrderService(nil)

	_, err := s.CreateOrder(context.Background(), &types.CreateOrderRequest{
		Name:         "张三",
		Phone:        "13800001111",
		ShippingMode: models.ShippingDelivery,
		ProductType:  "magnet",
		Quantity:     6,
	})

	var be *response.BizError
	if !errors.As(err, &be) || be.Code != http.StatusBadRequest {
		t.Errorf("err = %v, want 400 BizError", err)
	}
}

func TestCreateOrderWithPromo(t *testing.T) {
	promo := &models.PromoCode{ID: 3, Code: "SAVE10", DiscountType: models.DiscountPercentage, DiscountValue: 10, Active: true}
	s, _ := newTestOrderService(&fakePromos{promo: promo, discount: 840})

	order, err := s.CreateOrder(context.Background(), &types.CreateOrderRequest{
		Name:         "张三",
		Phone:        "13800001111",
		ShippingMode: models.ShippingDelivery,
		Address:      "成都市武侯区",
		ProductType:  "magnet",
		Quantity:     12,
		PromoCode:    "SAVE10",
	})
	if err != nil {
		t.Fatal(err)
	}

	// 8400 + 1000 运费 - 840 折扣
	if order.DiscountAmount != 840 {
		t.Errorf("discount = %d, want 840", order.DiscountAmount)
	}
	if order.TotalAmount != 8560 {
		t.Errorf("total = %d, want 8560", order.TotalAmount)
	}
	if order.PromoID == nil || *order.PromoID != 3 {
		t.Errorf("promo id = %v, want 3", order.PromoID)
	}
	if order.PromoCode != "SAVE10" {
		t.Errorf("promo code = %s, want SAVE10", order.PromoCode)
	}
}

func TestCreateOrderRejectedPromo(t *testing.T) {
	s, _ := newTestOrderService(&fakePromos{err: &PromoError{Reason: PromoExpired}})

	_, err := s.CreateOrder(context.Background(), &types.CreateOrderRequest{
		Name:         "张三",
		Phone:        "13800001111",
		ShippingMode: models.ShippingPickup,
		ProductType:  "magnet",
		Quantity:     6,
		PromoCode:    "DEAD",
	})

	var be *response.BizError
	if !errors.As(err, &be) || be.Code != http.StatusBadRequest {
		t.Errorf("err = %v, want 400 BizError", err)
	}
}

func TestUploadPhotoPosition(t *testing.T) {
	s, store := newTestOrderService(nil)
	ctx := context.Background()

	order, err := s.CreateOrder(ctx, &types.CreateOrderRequest{
		Name:         "张三",
		Phone:        "13800001111",
		ShippingMode: models.ShippingPickup,
		ProductType:  "magnet",
		Quantity:     2,
	})
	if err != nil {
		t.Fatal(err)
	}

	header := &multipart.FileHeader{Filename: "cat.jpg", Size: 1024}

	// 越界
	if _, err := s.UploadPhoto(ctx, order.ID, 2, header); err == nil {
		t.Error("position == quantity must be rejected")
	}
	if _, err := s.UploadPhoto(ctx, order.ID, -1, header); err == nil {
		t.Error("negative position must be rejected")
	}

	if _, err := s.UploadPhoto(ctx, order.ID, 0, header); err != nil {
		t.Fatal(err)
	}
	if len(store.items) != 1 {
		t.Fatalf("items = %d, want 1", len(store.items))
	}

	// 同一 position 重复上传
	_, err = s.UploadPhoto(ctx, order.ID, 0, header)
	var be *response.BizError
	if !errors.As(err, &be) || be.Code != http.StatusConflict {
		t.Errorf("duplicate position: err = %v, want 409 BizError", err)
	}
}
