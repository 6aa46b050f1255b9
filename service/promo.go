package service

import (
	"HeartSnaps/dao"
	"HeartSnaps/models"
	"HeartSnaps/pkg/response"
	"HeartSnaps/types"
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

// 优惠码拒绝原因，按校验顺序先错先报
const (
	PromoNotFound             = "NOT_FOUND"
	PromoExpired              = "EXPIRED"
	PromoNotYetActive         = "NOT_YET_ACTIVE"
	PromoLimitReached         = "LIMIT_REACHED"
	PromoBelowMinimum         = "BELOW_MINIMUM"
	PromoCustomerLimitReached = "CUSTOMER_LIMIT_REACHED"
)

type PromoError struct {
	Reason string
}

func (e *PromoError) Error() string {
	return "promo rejected: " + e.Reason
}

// CheckPromo 优惠码核验与折扣计算，纯函数
// customerUses 为该客户历史核销次数，试算场景没有客户上下文时传 0
func CheckPromo(promo *models.PromoCode, subtotal int64, customerUses int64, now time.Time) (int64, error) {
	if promo == nil || !promo.Active {
		return 0, &PromoError{Reason: PromoNotFound}
	}
	if promo.ExpiresAt != nil && promo.ExpiresAt.Before(now) {
		return 0, &PromoError{Reason: PromoExpired}
	}
	if promo.StartsAt != nil && promo.StartsAt.After(now) {
		return 0, &PromoError{Reason: PromoNotYetActive}
	}
	if promo.MaxUses != nil && promo.UsesCount >= *promo.MaxUses {
		return 0, &PromoError{Reason: PromoLimitReached}
	}
	if subtotal < promo.MinOrderAmount {
		return 0, &PromoError{Reason: PromoBelowMinimum}
	}
	if promo.MaxUsesPerCustomer != nil && customerUses >= int64(*promo.MaxUsesPerCustomer) {
		return 0, &PromoError{Reason: PromoCustomerLimitReached}
	}

	var discount int64
	switch promo.DiscountType {
	case models.DiscountPercentage:
		discount = subtotal * promo.DiscountValue / 100 // 整数除法即向下取整
	case models.DiscountFixed:
		discount = promo.DiscountValue
	default:
		return 0, &PromoError{Reason: PromoNotFound}
	}

	return discount, nil
}

// ClampDiscount 折扣封顶，保证 total = subtotal + shipping - discount 不为负
func ClampDiscount(discount, subtotal, shipping int64) int64 {
	if max := subtotal + shipping; discount > max {
		return max
	}
	return discount
}

var _ IPromoService = (*PromoService)(nil)

type IPromoService interface {
	// Validate 核验优惠码并返回折扣金额；customerID 为 0 表示无客户上下文（试算）
	Validate(ctx context.Context, code string, subtotal int64, customerID uint64) (*models.PromoCode, int64, error)

	List(ctx context.Context) ([]*models.PromoCode, error)
	Create(ctx context.Context, req *types.CreatePromoRequest) (*models.PromoCode, error)
	Update(ctx context.Context, promoID uint64, req *types.UpdatePromoRequest) error
	Delete(ctx context.Context, promoID uint64) error
}

// promoStore 优惠码读写的窄接口，*dao.Promo 天然满足
type promoStore interface {
	FindByCode(ctx context.Context, code string) (*models.PromoCode, error)
	FindById(ctx context.Context, id any) (*models.PromoCode, error)
	IsExist(ctx context.Context, where string, args ...any) (bool, error)
	Create(ctx context.Context, promo *models.PromoCode) error
	List(ctx context.Context) ([]*models.PromoCode, error)
	Update(ctx context.Context, promoID uint64, updates map[string]interface{}) error
	Delete(ctx context.Context, promoID uint64) error
	CountCustomerUsage(ctx context.Context, promoID, customerID uint64) (int64, error)
}

type PromoService struct {
	PromoDAO promoStore
}

func NewPromoService(promoDAO *dao.Promo) *PromoService {
	return &PromoService{PromoDAO: promoDAO}
}

func (s *PromoService) Validate(ctx context.Context, code string, subtotal int64, customerID uint64) (*models.PromoCode, int64, error) {
	promo, err := s.PromoDAO.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, &PromoError{Reason: PromoNotFound}
		}
		return nil, 0, err
	}

	var customerUses int64
	if customerID > 0 && promo.MaxUsesPerCustomer != nil {
		customerUses, err = s.PromoDAO.CountCustomerUsage(ctx, promo.ID, customerID)
		if err != nil {
			return nil, 0, err
		}
	}

	discount, err := CheckPromo(promo, subtotal, customerUses, time.Now())
	if err != nil {
		return nil, 0, err
	}
	return promo, discount, nil
}

func (s *PromoService) List(ctx context.Context) ([]*models.PromoCode, error) {
	return s.PromoDAO.List(ctx)
}

func (s *PromoService) Create(ctx context.Context, req *types.CreatePromoRequest) (*models.PromoCode, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" {
		return nil, response.BadRequest("优惠码不能为空")
	}
	if req.DiscountType == models.DiscountPercentage && (req.DiscountValue < 1 || req.DiscountValue > 100) {
		return nil, response.BadRequest("百分比折扣必须在 1-100 之间")
	}

	if exist, err := s.PromoDAO.IsExist(ctx, "code = ?", code); err != nil {
		return nil, err
	} else if exist {
		return nil, response.Conflict("优惠码已存在")
	}

	promo := &models.PromoCode{
		Code:               code,
		DiscountType:       req.DiscountType,
		DiscountValue:      req.DiscountValue,
		MinOrderAmount:     req.MinOrderAmount,
		MaxUses:            req.MaxUses,
		MaxUsesPerCustomer: req.MaxUsesPerCustomer,
		Active:             true,
	}

	if req.StartsAt != "" {
		t, err := time.Parse(time.RFC3339, req.StartsAt)
		if err != nil {
			return nil, response.BadRequest("starts_at 格式错误")
		}
		promo.StartsAt = &t
	}
	if req.ExpiresAt != "" {
		t, err := time.Parse(time.RFC3339, req.ExpiresAt)
		if err != nil {
			return nil, response.BadRequest("expires_at 格式错误")
		}
		promo.ExpiresAt = &t
	}
	if promo.StartsAt != nil && promo.ExpiresAt != nil && promo.ExpiresAt.Before(*promo.StartsAt) {
		return nil, response.BadRequest("expires_at 不能早于 starts_at")
	}

	if err := s.PromoDAO.Create(ctx, promo); err != nil {
		return nil, err
	}
	return promo, nil
}

// Update 指针字段语义：nil 不动，非 nil 覆盖；已核销次数永不回改
func (s *PromoService) Update(ctx context.Context, promoID uint64, req *types.UpdatePromoRequest) error {
	existing, err := s.PromoDAO.FindById(ctx, promoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound("优惠码不存在")
		}
		return err
	}

	// 类型或数值任一变化都按变更后的组合复核
	if req.DiscountType != nil || req.DiscountValue != nil {
		dType := existing.DiscountType
		if req.DiscountType != nil {
			dType = *req.DiscountType
		}
		dValue := existing.DiscountValue
		if req.DiscountValue != nil {
			dValue = *req.DiscountValue
		}
		if dType == models.DiscountPercentage && (dValue < 1 || dValue > 100) {
			return response.BadRequest("百分比折扣必须在 1-100 之间")
		}
	}

	updates := map[string]interface{}{}
	if req.DiscountType != nil {
		updates["discount_type"] = *req.DiscountType
	}
	if req.DiscountValue != nil {
		updates["discount_value"] = *req.DiscountValue
	}
	if req.MinOrderAmount != nil {
		updates["min_order_amount"] = *req.MinOrderAmount
	}
	if req.MaxUses != nil {
		updates["max_uses"] = *req.MaxUses
	}
	if req.MaxUsesPerCustomer != nil {
		updates["max_uses_per_customer"] = *req.MaxUsesPerCustomer
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}
	if req.StartsAt != nil {
		if *req.StartsAt == "" {
			updates["starts_at"] = nil
		} else {
			t, err := time.Parse(time.RFC3339, *req.StartsAt)
			if err != nil {
				return response.BadRequest("starts_at 格式错误")
			}
			updates["starts_at"] = t
		}
	}
	if req.ExpiresAt != nil {
		if *req.ExpiresAt == "" {
			updates["expires_at"] = nil
		} else {
			t, err := time.Parse(time.RFC3339, *req.ExpiresAt)
			if err != nil {
				return response.BadRequest("expires_at 格式错误")
			}
			updates["expires_at"] = t
		}
	}

	return s.PromoDAO.Update(ctx, promoID, updates)
}

func (s *PromoService) Delete(ctx context.Context, promoID uint64) error {
	if _, err := s.PromoDAO.FindById(ctx, promoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound("优惠码不存在")
		}
		return err
	}
	return s.PromoDAO.Delete(ctx, promoID)
}
