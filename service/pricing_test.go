package service

import (
	"HeartSnaps/config"
	"HeartSnaps/models"
	"testing"
)

func TestUnitPrice(t *testing.T) {
	cases := []struct {
		quantity int
		want     int64
	}{
		{1, 1000},
		{5, 1000},
		{6, 800},
		{11, 800},
		{12, 700},
		{50, 700},
	}
	for _, c := range cases {
		if got := UnitPrice(c.quantity); got != c.want {
			t.Errorf("UnitPrice(%d) = %d, want %d", c.quantity, got, c.want)
		}
	}
}

func TestSubtotal(t *testing.T) {
	cases := []struct {
		quantity int
		want     int64
	}{
		{1, 1000},
		{5, 5000},
		{6, 4800},
		{11, 8800},
		{12, 8400},
	}
	for _, c := range cases {
		if got := Subtotal(c.quantity, "magnet"); got != c.want {
			t.Errorf("Subtotal(%d) = %d, want %d", c.quantity, got, c.want)
		}
	}
}

// 整单统一档位计价，跨档位时多买反而更便宜是预期行为
func TestSubtotalTierJump(t *testing.T) {
	if s5, s6 := Subtotal(5, "magnet"), Subtotal(6, "magnet"); s6 >= s5 {
		// 5 张 5000 分，6 张 4800 分
		t.Errorf("expected 6 items cheaper than 5, got %d vs %d", s6, s5)
	}
}

func TestQuoteShipping(t *testing.T) {
	p := &PricingService{Shop: &config.ShopConfig{ShippingFee: 1000}}

	pickup := p.Quote(6, "magnet", models.ShippingPickup)
	if pickup.ShippingFee != 0 {
		t.Errorf("pickup shipping = %d, want 0", pickup.ShippingFee)
	}
	if pickup.Total != 4800 {
		t.Errorf("pickup total = %d, want 4800", pickup.Total)
	}

	delivery := p.Quote(6, "magnet", models.ShippingDelivery)
	if delivery.ShippingFee != 1000 {
		t.Errorf("delivery shipping = %d, want 1000", delivery.ShippingFee)
	}
	if delivery.Total != 5800 {
		t.Errorf("delivery total = %d, want 5800", delivery.Total)
	}
}

func TestTiersCopy(t *testing.T) {
	p := &PricingService{Shop: &config.ShopConfig{}}
	tiers := p.Tiers()
	tiers[0].UnitPrice = 1

	if UnitPrice(tiers[0].MinQuantity) == 1 {
		t.Error("Tiers() must return a copy, not the internal table")
	}
}
