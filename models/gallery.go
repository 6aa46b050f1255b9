package models

import (
	"time"

	"gorm.io/datatypes"
)

// GalleryImage 首页画廊图片，存公开桶
type GalleryImage struct {
	ID        int64          `gorm:"primaryKey" json:"id"` // snowflake
	OssKey    string         `gorm:"column:oss_key;type:varchar(255);not null" json:"oss_key"`
	Caption   string         `gorm:"column:caption;type:varchar(255)" json:"caption"`
	Tags      datatypes.JSON `gorm:"column:tags" json:"tags"`
	Position  int            `gorm:"column:position;not null;default:0;index:idx_position" json:"position"`
	Active    bool           `gorm:"column:active;not null;default:1" json:"active"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (GalleryImage) TableName() string {
	return "gallery_images"
}
