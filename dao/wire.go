//go:build wireinject

package dao

import (
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewOrder,
	NewCustomer,
	NewPromo,
	NewAdmin,
	NewAdminLog,
	NewGallery,
	NewPay,
)
