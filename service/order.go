package service

import (
	"HeartSnaps/config"
	"HeartSnaps/dao"
	"HeartSnaps/dao/cache"
	"HeartSnaps/models"
	"HeartSnaps/pkg/log"
	"HeartSnaps/pkg/response"
	"HeartSnaps/pkg/utils"
	"HeartSnaps/types"
	"archive/zip"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// seqAllocator 当日订单序号分配，底层是 redis INCR
type seqAllocator interface {
	Next(ctx context.Context, day string) (int64, error)
}

// orderStore 订单读写的窄接口，*dao.Order 天然满足
type orderStore interface {
	Create(ctx context.Context, order *models.Order) error
	FindById(ctx context.Context, id any) (*models.Order, error)
	FindByOrderNo(ctx context.Context, orderNo string) (*models.Order, error)
	List(ctx context.Context, status models.OrderStatus, cursor uint64, limit int) ([]*models.Order, error)
	UpdateStatus(ctx context.Context, orderID uint64, status models.OrderStatus, now time.Time) error
	UpdateTracking(ctx context.Context, orderID uint64, updates map[string]interface{}) error
	DeleteCascade(ctx context.Context, orderID uint64) error
	AddItem(ctx context.Context, item *models.OrderItem) error
	ListItems(ctx context.Context, orderID uint64) ([]*models.OrderItem, error)
	IsExist(ctx context.Context, where string, args ...any) (bool, error)
}

var _ IOrderService = (*OrderService)(nil)

type IOrderService interface {
	CreateOrder(ctx context.Context, req *types.CreateOrderRequest) (*models.Order, error)
	UploadPhoto(ctx context.Context, orderID uint64, position int, header *multipart.FileHeader) (*models.OrderItem, error)
	Track(ctx context.Context, orderNo string) (*types.TrackOrderResponse, error)

	List(ctx context.Context, status models.OrderStatus, cursor uint64, pageSize int) (*types.OrderListResponse, error)
	Detail(ctx context.Context, orderID uint64) (*types.OrderDetail, error)
	UpdateStatus(ctx context.Context, orderID uint64, req *types.UpdateOrderStatusRequest) (*models.Order, error)
	Delete(ctx context.Context, orderID uint64) error
	PhotoArchive(ctx context.Context, orderID uint64, w io.Writer) error
}

type OrderService struct {
	Shop      *config.ShopConfig
	OrderDAO  orderStore
	Pricing   IPricingService
	Promos    IPromoService
	Customers ICustomerService
	Oss       IOssService
	Seq       seqAllocator
}

func NewOrderService(
	shop *config.ShopConfig,
	orderDAO *dao.Order,
	pricing IPricingService,
	promos IPromoService,
	customers ICustomerService,
	ossService IOssService,
	seq *cache.OrderSeqStorage,
) *OrderService {
	return &OrderService{
		Shop:      shop,
		OrderDAO:  orderDAO,
		Pricing:   pricing,
		Promos:    promos,
		Customers: customers,
		Oss:       ossService,
		Seq:       seq,
	}
}

// AllocateOrderNo 当日序号 + 固定前缀，redis INCR 保证并发下单不重号
func (s *OrderService) AllocateOrderNo(ctx context.Context, now time.Time) (string, error) {
	seq, err := s.Seq.Next(ctx, utils.SeqDayKey(now))
	if err != nil {
		return "", err
	}
	return utils.FormatOrderNo(s.Shop.OrderPrefix, now, seq), nil
}

func (s *OrderService) CreateOrder(ctx context.Context, req *types.CreateOrderRequest) (*models.Order, error) {
	if req.Quantity < 1 {
		return nil, response.BadRequest("数量必须为正整数")
	}
	if req.ShippingMode == models.ShippingDelivery && strings.TrimSpace(req.Address) == "" {
		return nil, response.BadRequest("快递配送必须填写地址")
	}

	// 权威计价走和试算同一个引擎
	quote := s.Pricing.Quote(req.Quantity, req.ProductType, req.ShippingMode)

	customer, err := s.Customers.ResolveOrCreate(ctx, req.Phone, req.Name, req.Email, req.Address)
	if err != nil {
		return nil, err
	}

	// 优惠码在下单时全量复核，不信任试算结果
	var (
		promoID  *uint64
		discount int64
		promoCod string
	)
	if code := strings.TrimSpace(req.PromoCode); code != "" {
		promo, d, err := s.Promos.Validate(ctx, code, quote.Subtotal, customer.ID)
		if err != nil {
			var pe *PromoError
			if errors.As(err, &pe) {
				return nil, response.BadRequest("优惠码不可用: " + pe.Reason)
			}
			return nil, err
		}
		discount = ClampDiscount(d, quote.Subtotal, quote.ShippingFee)
		promoID = &promo.ID
		promoCod = promo.Code
	}

	now := time.Now()
	orderNo, err := s.AllocateOrderNo(ctx, now)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		OrderNo:         orderNo,
		CustomerID:      customer.ID,
		CustomerName:    customer.Name,
		CustomerPhone:   customer.Phone,
		CustomerEmail:   customer.Email,
		ShippingMode:    req.ShippingMode,
		ShippingAddress: strings.TrimSpace(req.Address),
		ProductType:     req.ProductType,
		Quantity:        req.Quantity,
		Subtotal:        quote.Subtotal,
		ShippingFee:     quote.ShippingFee,
		DiscountAmount:  discount,
		TotalAmount:     quote.Subtotal + quote.ShippingFee - discount,
		PromoID:         promoID,
		PromoCode:       promoCod,
		Notes:           req.Notes,
		IsGift:          req.IsGift,
		GiftMessage:     req.GiftMessage,
		Status:          models.OrderStatusPending,
	}

	if err := s.OrderDAO.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *OrderService) UploadPhoto(ctx context.Context, orderID uint64, position int, header *multipart.FileHeader) (*models.OrderItem, error) {
	order, err := s.OrderDAO.FindById(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NotFound("订单不存在")
		}
		return nil, err
	}

	if position < 0 || position >= order.Quantity {
		return nil, response.BadRequest("position 超出范围")
	}

	// 同一订单同一 position 重复上传按冲突处理，不做静默覆盖
	exist, err := s.OrderDAO.IsExist(ctx, "order_id = ? AND position = ?", orderID, position)
	if err != nil {
		return nil, err
	}
	if exist {
		return nil, response.Conflict("该位置已有照片")
	}

	uploaded, err := s.Oss.UploadOrderPhoto(ctx, orderID, position, header)
	if err != nil {
		return nil, response.BadRequest(err.Error())
	}

	item := &models.OrderItem{
		OrderID:      orderID,
		Position:     position,
		FilePath:     uploaded.ObjectKey,
		OriginalName: header.Filename,
		FileSize:     uploaded.Size,
		MimeType:     uploaded.MimeType,
	}
	if err := s.OrderDAO.AddItem(ctx, item); err != nil {
		// 并发撞到唯一索引，清掉刚传的对象再报冲突
		if delErr := s.Oss.DeletePrivate(ctx, uploaded.ObjectKey); delErr != nil {
			log.L.Warn("cleanup uploaded photo failed", zap.String("key", uploaded.ObjectKey), zap.Error(delErr))
		}
		return nil, response.Conflict("该位置已有照片")
	}
	return item, nil
}

func (s *OrderService) Track(ctx context.Context, orderNo string) (*types.TrackOrderResponse, error) {
	order, err := s.OrderDAO.FindByOrderNo(ctx, strings.TrimSpace(orderNo))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NotFound("订单不存在")
		}
		return nil, err
	}

	return &types.TrackOrderResponse{
		OrderNo:     order.OrderNo,
		TrackCode:   utils.GenHashID(s.Shop.TrackSalt, int(order.ID)),
		Status:      string(order.Status),
		Quantity:    order.Quantity,
		ProductType: order.ProductType,
		Total:       order.TotalAmount,
		TrackingNo:  order.TrackingNo,
		Carrier:     order.TrackingCarrier,
		CreatedAt:   order.CreatedAt,
		PaidAt:      order.PaidAt,
		PrintedAt:   order.PrintedAt,
		ShippedAt:   order.ShippedAt,
		CompletedAt: order.CompletedAt,
	}, nil
}

func (s *OrderService) List(ctx context.Context, status models.OrderStatus, cursor uint64, pageSize int) (*types.OrderListResponse, error) {
	if pageSize <= 0 {
		pageSize = 20
	}

	// 多查一条判断 hasMore
	orders, err := s.OrderDAO.List(ctx, status, cursor, pageSize+1)
	if err != nil {
		return nil, err
	}

	hasMore := false
	if len(orders) > pageSize {
		hasMore = true
		orders = orders[:pageSize]
	}

	var nextCursor uint64
	if len(orders) > 0 {
		nextCursor = orders[len(orders)-1].ID
	}

	return &types.OrderListResponse{
		Orders:     orders,
		NextCursor: nextCursor,
		HasMore:    hasMore,
	}, nil
}

func (s *OrderService) Detail(ctx context.Context, orderID uint64) (*types.OrderDetail, error) {
	order, err := s.OrderDAO.FindById(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NotFound("订单不存在")
		}
		return nil, err
	}

	items, err := s.OrderDAO.ListItems(ctx, orderID)
	if err != nil {
		return nil, err
	}

	photos := make([]types.OrderPhoto, 0, len(items))
	for _, item := range items {
		url, err := s.Oss.SignPhotoURL(ctx, item.FilePath)
		if err != nil {
			// 单张签名失败不拖垮整个详情
			log.L.Warn("sign photo url failed", zap.String("key", item.FilePath), zap.Error(err))
		}
		photos = append(photos, types.OrderPhoto{
			Position:     item.Position,
			OriginalName: item.OriginalName,
			MimeType:     item.MimeType,
			FileSize:     item.FileSize,
			SignedURL:    url,
		})
	}

	return &types.OrderDetail{Order: order, Photos: photos}, nil
}

func (s *OrderService) UpdateStatus(ctx context.Context, orderID uint64, req *types.UpdateOrderStatusRequest) (*models.Order, error) {
	status := models.OrderStatus(req.Status)
	if !status.Valid() {
		return nil, response.BadRequest("无效的目标状态")
	}

	order, err := s.OrderDAO.FindById(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NotFound("订单不存在")
		}
		return nil, err
	}
	if order.Status.Terminal() {
		return nil, response.Conflict("订单已终结，不能再流转")
	}

	if err := s.OrderDAO.UpdateStatus(ctx, orderID, status, time.Now()); err != nil {
		return nil, err
	}

	// 运单号、承运商、后台备注独立于状态流转，随时可写
	tracking := map[string]interface{}{}
	if req.TrackingNo != "" {
		tracking["tracking_no"] = req.TrackingNo
	}
	if req.TrackingCarrier != "" {
		tracking["tracking_carrier"] = req.TrackingCarrier
	}
	if req.AdminNotes != "" {
		tracking["admin_notes"] = req.AdminNotes
	}
	if err := s.OrderDAO.UpdateTracking(ctx, orderID, tracking); err != nil {
		return nil, err
	}

	return s.OrderDAO.FindById(ctx, orderID)
}

func (s *OrderService) Delete(ctx context.Context, orderID uint64) error {
	_, err := s.OrderDAO.FindById(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound("订单不存在")
		}
		return err
	}

	items, err := s.OrderDAO.ListItems(ctx, orderID)
	if err != nil {
		return err
	}

	if err := s.OrderDAO.DeleteCascade(ctx, orderID); err != nil {
		return err
	}

	// 库删成功后清对象，失败只记日志
	for _, item := range items {
		if err := s.Oss.DeletePrivate(ctx, item.FilePath); err != nil {
			log.L.Warn("delete order photo failed", zap.String("key", item.FilePath), zap.Error(err))
		}
	}
	return nil
}

// PhotoArchive 顺序把订单照片打成 zip 流，单个对象丢失跳过不中断
func (s *OrderService) PhotoArchive(ctx context.Context, orderID uint64, w io.Writer) error {
	items, err := s.OrderDAO.ListItems(ctx, orderID)
	if err != nil {
		return err
	}

	zw := zip.NewWriter(w)
	defer zw.Close()

	for _, item := range items {
		reader, err := s.Oss.DownloadReader(ctx, item.FilePath)
		if err != nil {
			log.L.Warn("archive: photo missing, skipped",
				zap.Uint64("order_id", orderID),
				zap.String("key", item.FilePath),
				zap.Error(err))
			continue
		}

		name := item.OriginalName
		if name == "" {
			name = item.FilePath[strings.LastIndex(item.FilePath, "/")+1:]
		}
		entry, err := zw.Create(name)
		if err != nil {
			reader.Close()
			return err
		}
		if _, err := io.Copy(entry, reader); err != nil {
			reader.Close()
			return err
		}
		reader.Close()
	}

	return nil
}
