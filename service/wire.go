package service

import (
	"HeartSnaps/pkg/socket"

	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	wire.Struct(new(PricingService), "*"),
	wire.Bind(new(IPricingService), new(*PricingService)),

	NewPromoService,
	wire.Bind(new(IPromoService), new(*PromoService)),

	NewCustomerService,
	wire.Bind(new(ICustomerService), new(*CustomerService)),

	NewAuthzService,
	wire.Bind(new(IAuthzService), new(*AuthzService)),

	NewOssService,

	NewOrderService,
	wire.Bind(new(IOrderService), new(*OrderService)),

	NewNotifyService,
	wire.Bind(new(INotifyService), new(*NotifyService)),

	NewPayService,
	wire.Bind(new(IPayService), new(*PayService)),
	wire.Bind(new(orderAnnouncer), new(*socket.Hub)),

	NewGalleryService,
	wire.Bind(new(IGalleryService), new(*GalleryService)),

	NewAdminService,
	wire.Bind(new(IAdminService), new(*AdminService)),

	NewAuthService,
	wire.Bind(new(IAuthService), new(*AuthService)),
)
