package config

import "strings"

// ShopConfig 店铺相关配置
type ShopConfig struct {
	// 订单号前缀，最终格式: PFX-20240301-003
	OrderPrefix string `json:"order_prefix" yaml:"order_prefix"`
	// 快递配送固定运费（分），自提免运费
	ShippingFee int64 `json:"shipping_fee" yaml:"shipping_fee"`
	// 站长邮箱白名单，无条件视为 owner，且不可被移除
	OwnerEmails []string `json:"owner_emails" yaml:"owner_emails"`
	// 追踪码 hashid 盐
	TrackSalt string `json:"track_salt" yaml:"track_salt"`
}

func ProvideShopConfig(cfg *Config) *ShopConfig {
	return cfg.Shop
}

// IsOwner 判断邮箱是否在站长白名单内，大小写不敏感
func (s *ShopConfig) IsOwner(email string) bool {
	for _, e := range s.OwnerEmails {
		if strings.EqualFold(e, email) {
			return true
		}
	}
	return false
}
