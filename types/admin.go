package types

import "HeartSnaps/models"

type StatsResponse struct {
	StatusCounts map[models.OrderStatus]int64 `json:"status_counts"`
	Revenue      int64                        `json:"revenue"` // 已支付订单累计（分）
	Customers    int64                        `json:"customers"`
	OrdersToday  int64                        `json:"orders_today"`
}

type UpsertAdminRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name"`
	Role  string `json:"role" binding:"required,oneof=moderator admin super_admin"`
}

type CustomerListResponse struct {
	Customers  []*models.Customer `json:"customers"`
	NextCursor uint64             `json:"next_cursor"`
	HasMore    bool               `json:"has_more"`
}

type CustomerDetailResponse struct {
	Customer *models.Customer `json:"customer"`
	Orders   []*models.Order  `json:"orders"` // 最近订单，倒序
}

type AdminLogListResponse struct {
	Logs       []*models.AdminLog `json:"logs"`
	NextCursor uint64             `json:"next_cursor"`
	HasMore    bool               `json:"has_more"`
}
