package dao

import (
	"HeartSnaps/models"
	"context"

	"gorm.io/gorm"
)

type Gallery struct {
	Repo[models.GalleryImage]
}

func NewGallery(db *gorm.DB) *Gallery {
	return &Gallery{
		Repo: NewRepo[models.GalleryImage](db),
	}
}

// ListActive 前台画廊，按 position 排序
func (g *Gallery) ListActive(ctx context.Context) ([]*models.GalleryImage, error) {
	var images []*models.GalleryImage
	err := g.Db.WithContext(ctx).
		Where("active = ?", true).
		Order("position asc, id desc").
		Find(&images).Error
	return images, err
}

func (g *Gallery) ListAll(ctx context.Context) ([]*models.GalleryImage, error) {
	var images []*models.GalleryImage
	err := g.Db.WithContext(ctx).Order("position asc, id desc").Find(&images).Error
	return images, err
}

func (g *Gallery) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return g.Db.WithContext(ctx).Model(&models.GalleryImage{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (g *Gallery) Delete(ctx context.Context, id int64) error {
	return g.Db.WithContext(ctx).Where("id = ?", id).Delete(&models.GalleryImage{}).Error
}
