package service

import (
	"HeartSnaps/config"
	"HeartSnaps/dao"
	"HeartSnaps/models"
	"HeartSnaps/pkg/log"
	"HeartSnaps/pkg/response"
	"HeartSnaps/types"
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"
)

var _ IAdminService = (*AdminService)(nil)

type IAdminService interface {
	Stats(ctx context.Context) (*types.StatsResponse, error)

	ListAdmins(ctx context.Context) ([]*models.Admin, error)
	UpsertAdmin(ctx context.Context, actor *Principal, req *types.UpsertAdminRequest) error
	RemoveAdmin(ctx context.Context, actor *Principal, email string) error

	ListCustomers(ctx context.Context, cursor uint64, pageSize int) (*types.CustomerListResponse, error)
	CustomerDetail(ctx context.Context, customerID uint64) (*types.CustomerDetailResponse, error)
	ListLogs(ctx context.Context, cursor uint64, pageSize int) (*types.AdminLogListResponse, error)

	// Audit 落审计日志，尽力而为，失败不影响主操作
	Audit(ctx context.Context, actorEmail, action, targetType, targetID string, details any)
}

type AdminService struct {
	Shop        *config.ShopConfig
	AdminDAO    *dao.Admin
	LogDAO      *dao.AdminLog
	OrderDAO    *dao.Order
	CustomerDAO *dao.Customer
	Authz       IAuthzService
}

func NewAdminService(
	shop *config.ShopConfig,
	adminDAO *dao.Admin,
	logDAO *dao.AdminLog,
	orderDAO *dao.Order,
	customerDAO *dao.Customer,
	authz IAuthzService,
) *AdminService {
	return &AdminService{
		Shop:        shop,
		AdminDAO:    adminDAO,
		LogDAO:      logDAO,
		OrderDAO:    orderDAO,
		CustomerDAO: customerDAO,
		Authz:       authz,
	}
}

// Stats 后台看板汇总
func (s *AdminService) Stats(ctx context.Context) (*types.StatsResponse, error) {
	counts, err := s.OrderDAO.StatusCounts(ctx)
	if err != nil {
		return nil, err
	}
	revenue, err := s.OrderDAO.Revenue(ctx)
	if err != nil {
		return nil, err
	}
	customers, err := s.CustomerDAO.Count(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	today, err := s.OrderDAO.CountSince(ctx, dayStart)
	if err != nil {
		return nil, err
	}

	return &types.StatsResponse{
		StatusCounts: counts,
		Revenue:      revenue,
		Customers:    customers,
		OrdersToday:  today,
	}, nil
}

func (s *AdminService) ListAdmins(ctx context.Context) ([]*models.Admin, error) {
	admins, err := s.AdminDAO.List(ctx)
	if err != nil {
		return nil, err
	}

	// 白名单 owner 也出现在列表里，方便后台看全貌
	for _, email := range s.Shop.OwnerEmails {
		found := false
		for _, a := range admins {
			if strings.EqualFold(a.Email, email) {
				found = true
				break
			}
		}
		if !found {
			admins = append(admins, &models.Admin{Email: email, Role: string(RoleOwner)})
		}
	}
	return admins, nil
}

// UpsertAdmin 授予或调整角色。只能操作比自己低的角色，白名单 owner 不可动
func (s *AdminService) UpsertAdmin(ctx context.Context, actor *Principal, req *types.UpsertAdminRequest) error {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if err := s.Authz.CheckMutable(email); err != nil {
		return response.Forbidden(err.Error())
	}

	role, err := ParseRole(req.Role)
	if err != nil {
		return response.BadRequest("无效角色")
	}
	if !actor.Role.Allows(role) || (actor.Role == role && actor.Role != RoleOwner) {
		return response.Forbidden("不能授予不低于自己的角色")
	}

	if err := s.AdminDAO.Upsert(ctx, email, req.Name, string(role)); err != nil {
		return err
	}

	s.Audit(ctx, actor.Email, "admin.upsert", "admin", email, map[string]string{"role": string(role)})
	return nil
}

func (s *AdminService) RemoveAdmin(ctx context.Context, actor *Principal, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	if err := s.Authz.CheckMutable(email); err != nil {
		return response.Forbidden(err.Error())
	}

	existing, err := s.AdminDAO.FindByEmail(ctx, email)
	if err != nil {
		return response.NotFound("该账号不是管理员")
	}
	targetRole, err := ParseRole(existing.Role)
	if err == nil && !actor.Role.Allows(targetRole) {
		return response.Forbidden("不能移除角色高于自己的账号")
	}

	if err := s.AdminDAO.DeleteByEmail(ctx, email); err != nil {
		return err
	}

	s.Audit(ctx, actor.Email, "admin.remove", "admin", email, nil)
	return nil
}

func (s *AdminService) ListCustomers(ctx context.Context, cursor uint64, pageSize int) (*types.CustomerListResponse, error) {
	if pageSize <= 0 {
		pageSize = 20
	}

	customers, err := s.CustomerDAO.List(ctx, cursor, pageSize+1)
	if err != nil {
		return nil, err
	}

	hasMore := false
	if len(customers) > pageSize {
		hasMore = true
		customers = customers[:pageSize]
	}
	var nextCursor uint64
	if len(customers) > 0 {
		nextCursor = customers[len(customers)-1].ID
	}

	return &types.CustomerListResponse{
		Customers:  customers,
		NextCursor: nextCursor,
		HasMore:    hasMore,
	}, nil
}

func (s *AdminService) CustomerDetail(ctx context.Context, customerID uint64) (*types.CustomerDetailResponse, error) {
	customer, err := s.CustomerDAO.FindById(ctx, customerID)
	if err != nil {
		return nil, response.NotFound("客户不存在")
	}

	orders, err := s.OrderDAO.ListByCustomer(ctx, customerID, 50)
	if err != nil {
		return nil, err
	}

	return &types.CustomerDetailResponse{
		Customer: customer,
		Orders:   orders,
	}, nil
}

func (s *AdminService) ListLogs(ctx context.Context, cursor uint64, pageSize int) (*types.AdminLogListResponse, error) {
	if pageSize <= 0 {
		pageSize = 50
	}

	logs, err := s.LogDAO.List(ctx, cursor, pageSize+1)
	if err != nil {
		return nil, err
	}

	hasMore := false
	if len(logs) > pageSize {
		hasMore = true
		logs = logs[:pageSize]
	}
	var nextCursor uint64
	if len(logs) > 0 {
		nextCursor = logs[len(logs)-1].ID
	}

	return &types.AdminLogListResponse{
		Logs:       logs,
		NextCursor: nextCursor,
		HasMore:    hasMore,
	}, nil
}

func (s *AdminService) Audit(ctx context.Context, actorEmail, action, targetType, targetID string, details any) {
	entry := &models.AdminLog{
		ActorEmail: actorEmail,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
	}
	if details != nil {
		if raw, err := json.Marshal(details); err == nil {
			entry.Details = raw
		}
	}
	if err := s.LogDAO.Append(ctx, entry); err != nil {
		log.L.Warn("append admin log failed",
			zap.String("actor", actorEmail),
			zap.String("action", action),
			zap.Error(err))
	}
}
