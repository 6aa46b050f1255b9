package dao

import (
	"HeartSnaps/models"
	"context"

	"gorm.io/gorm"
)

type AdminLog struct {
	Repo[models.AdminLog]
}

func NewAdminLog(db *gorm.DB) *AdminLog {
	return &AdminLog{
		Repo: NewRepo[models.AdminLog](db),
	}
}

func (l *AdminLog) Append(ctx context.Context, entry *models.AdminLog) error {
	return l.Db.WithContext(ctx).Create(entry).Error
}

// List cursor 分页，审计日志只读不改
func (l *AdminLog) List(ctx context.Context, cursor uint64, limit int) ([]*models.AdminLog, error) {
	var logs []*models.AdminLog
	query := l.Db.WithContext(ctx)
	if cursor > 0 {
		query = query.Where("id < ?", cursor)
	}
	err := query.Order("id desc").Limit(limit).Find(&logs).Error
	return logs, err
}
