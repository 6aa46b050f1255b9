package dao

import (
	"HeartSnaps/models"
	"context"

	"gorm.io/gorm"
)

type Pay struct {
	Repo[models.PayRecord]
}

func NewPay(db *gorm.DB) *Pay {
	return &Pay{
		Repo: NewRepo[models.PayRecord](db),
	}
}

func (p *Pay) FindByOrderNo(ctx context.Context, orderNo string) (*models.PayRecord, error) {
	return p.Repo.FindByWhere(ctx, "order_no = ?", orderNo)
}

func (p *Pay) CreateTx(ctx context.Context, tx *gorm.DB, record *models.PayRecord) error {
	return tx.WithContext(ctx).Create(record).Error
}
