package dao

import (
	"HeartSnaps/models"
	"context"
	"time"

	"gorm.io/gorm"
)

type Admin struct {
	Repo[models.Admin]
}

func NewAdmin(db *gorm.DB) *Admin {
	return &Admin{
		Repo: NewRepo[models.Admin](db),
	}
}

func (a *Admin) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	return a.Repo.FindByWhere(ctx, "email = ?", email)
}

// Upsert 同邮箱重复授权时覆盖角色
func (a *Admin) Upsert(ctx context.Context, email, name, role string) error {
	now := time.Now()
	return a.Db.WithContext(ctx).Exec(`
		INSERT INTO admins (email, name, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			name = VALUES(name),
			role = VALUES(role),
			updated_at = VALUES(updated_at)
	`, email, name, role, now, now).Error
}

func (a *Admin) DeleteByEmail(ctx context.Context, email string) error {
	return a.Db.WithContext(ctx).Where("email = ?", email).Delete(&models.Admin{}).Error
}

func (a *Admin) List(ctx context.Context) ([]*models.Admin, error) {
	var admins []*models.Admin
	err := a.Db.WithContext(ctx).Order("id asc").Find(&admins).Error
	return admins, err
}
