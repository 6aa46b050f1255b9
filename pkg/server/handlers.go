package server

import (
	"HeartSnaps/handler"
)

type Handlers struct {
	Shop     *handler.Shop
	Auth     *handler.Auth
	Order    *handler.Order
	Pay      *handler.Pay
	Promo    *handler.Promo
	Customer *handler.Customer
	Gallery  *handler.Gallery
	Admin    *handler.Admin
	Ws       *handler.Ws
}
