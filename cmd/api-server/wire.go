//go:build wireinject
// +build wireinject

package main

import (
	"HeartSnaps/config"
	"HeartSnaps/dao"
	"HeartSnaps/dao/cache"
	"HeartSnaps/handler"
	"HeartSnaps/pkg/client"
	"HeartSnaps/pkg/database"
	"HeartSnaps/pkg/server"
	"HeartSnaps/pkg/socket"
	"HeartSnaps/service"

	"github.com/google/wire"
)

func InitServer(cfg *config.Config) *server.AppProvider {
	wire.Build(
		database.NewDB,
		client.NewRedisClient,
		config.ProvideOssConfig,
		config.ProvideWechatPayConfig,
		config.ProvideShopConfig,
		config.ProvideNotifyConfig,
		config.ProvideJwtConfig,
		socket.NewHub,

		cache.ProviderSet,
		dao.ProviderSet,
		service.ProviderSet,

		wire.Struct(new(handler.Shop), "*"),
		wire.Struct(new(handler.Auth), "*"),
		wire.Struct(new(handler.Order), "*"),
		wire.Struct(new(handler.Pay), "*"),
		wire.Struct(new(handler.Promo), "*"),
		wire.Struct(new(handler.Customer), "*"),
		wire.Struct(new(handler.Gallery), "*"),
		wire.Struct(new(handler.Admin), "*"),
		wire.Struct(new(handler.Ws), "*"),

		wire.Struct(new(server.Handlers), "*"),
		server.NewGinEngine,
		wire.Struct(new(server.AppProvider), "*"),
	)
	return nil
}
