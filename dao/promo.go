package dao

import (
	"HeartSnaps/models"
	"context"
	"strings"

	"gorm.io/gorm"
)

type Promo struct {
	Repo[models.PromoCode]
}

func NewPromo(db *gorm.DB) *Promo {
	return &Promo{
		Repo: NewRepo[models.PromoCode](db),
	}
}

// FindByCode 大小写不敏感查找，入库时已统一大写
func (p *Promo) FindByCode(ctx context.Context, code string) (*models.PromoCode, error) {
	return p.Repo.FindByWhere(ctx, "code = ?", strings.ToUpper(strings.TrimSpace(code)))
}

func (p *Promo) List(ctx context.Context) ([]*models.PromoCode, error) {
	var promos []*models.PromoCode
	err := p.Db.WithContext(ctx).Order("id desc").Find(&promos).Error
	return promos, err
}

func (p *Promo) Update(ctx context.Context, promoID uint64, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return p.Db.WithContext(ctx).Model(&models.PromoCode{}).
		Where("id = ?", promoID).
		Updates(updates).Error
}

func (p *Promo) Delete(ctx context.Context, promoID uint64) error {
	return p.Db.WithContext(ctx).Where("id = ?", promoID).Delete(&models.PromoCode{}).Error
}

// IncrUsage 核销计数原子自增，带上限守卫，撞上限返回 0 行
func (p *Promo) IncrUsage(ctx context.Context, tx *gorm.DB, promoID uint64) (int64, error) {
	result := tx.WithContext(ctx).Model(&models.PromoCode{}).
		Where("id = ? AND (max_uses IS NULL OR uses_count < max_uses)", promoID).
		Update("uses_count", gorm.Expr("uses_count + 1"))
	return result.RowsAffected, result.Error
}

func (p *Promo) CreateUsage(ctx context.Context, tx *gorm.DB, usage *models.PromoUsage) error {
	return tx.WithContext(ctx).Create(usage).Error
}

// CountCustomerUsage 客户对某码的历史核销次数
func (p *Promo) CountCustomerUsage(ctx context.Context, promoID, customerID uint64) (int64, error) {
	var count int64
	err := p.Db.WithContext(ctx).Model(&models.PromoUsage{}).
		Where("promo_id = ? AND customer_id = ?", promoID, customerID).
		Count(&count).Error
	return count, err
}
