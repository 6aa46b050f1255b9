package models

import (
	"time"

	"gorm.io/datatypes"
)

// Admin 后台角色表；白名单 owner 不依赖本表
type Admin struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Email     string    `gorm:"column:email;type:varchar(128);not null;uniqueIndex:idx_email" json:"email"`
	Name      string    `gorm:"column:name;type:varchar(64)" json:"name"`
	Role      string    `gorm:"column:role;type:varchar(16);not null" json:"role"` // moderator / admin / super_admin / owner
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Admin) TableName() string {
	return "admins"
}

// AdminLog 后台操作审计，只追加
type AdminLog struct {
	ID         uint64         `gorm:"primaryKey;autoIncrement" json:"id"`
	ActorEmail string         `gorm:"column:actor_email;type:varchar(128);not null;index:idx_actor" json:"actor_email"`
	Action     string         `gorm:"column:action;type:varchar(64);not null" json:"action"`
	TargetType string         `gorm:"column:target_type;type:varchar(32)" json:"target_type"`
	TargetID   string         `gorm:"column:target_id;type:varchar(64)" json:"target_id"`
	Details    datatypes.JSON `gorm:"column:details" json:"details"`
	CreatedAt  time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (AdminLog) TableName() string {
	return "admin_logs"
}
