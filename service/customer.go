package service

import (
	"HeartSnaps/dao"
	"HeartSnaps/models"
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

var _ ICustomerService = (*CustomerService)(nil)

type ICustomerService interface {
	// ResolveOrCreate 手机号匹配客户，命中则覆盖资料快照，未命中新建
	// 这里不动 order_count / total_spent，统计只认支付成功
	ResolveOrCreate(ctx context.Context, phone, name, email, address string) (*models.Customer, error)
	FindByPhone(ctx context.Context, phone string) (*models.Customer, error)
	FindByEmail(ctx context.Context, email string) (*models.Customer, error)
}

type CustomerService struct {
	CustomerDAO *dao.Customer
}

func NewCustomerService(customerDAO *dao.Customer) *CustomerService {
	return &CustomerService{CustomerDAO: customerDAO}
}

func (s *CustomerService) ResolveOrCreate(ctx context.Context, phone, name, email, address string) (*models.Customer, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, errors.New("手机号不能为空")
	}
	return s.CustomerDAO.UpsertByPhone(ctx, phone, strings.TrimSpace(name), strings.TrimSpace(email), strings.TrimSpace(address))
}

func (s *CustomerService) FindByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	customer, err := s.CustomerDAO.FindByPhone(ctx, strings.TrimSpace(phone))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return customer, err
}

func (s *CustomerService) FindByEmail(ctx context.Context, email string) (*models.Customer, error) {
	customer, err := s.CustomerDAO.FindByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return customer, err
}
