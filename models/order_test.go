package models

import (
	"testing"
	"time"
)

func TestStampStatus_SetOnce(t *testing.T) {
	o := &Order{Status: OrderStatusPaid}

	t1 := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	o.StampStatus(OrderStatusPrinting, t1)
	if o.PrintedAt == nil || !o.PrintedAt.Equal(t1) {
		t.Fatalf("printed_at not stamped: %v", o.PrintedAt)
	}

	// 重复进入同一状态不应覆盖时间戳
	t2 := t1.Add(2 * time.Hour)
	o.StampStatus(OrderStatusPrinting, t2)
	if !o.PrintedAt.Equal(t1) {
		t.Fatalf("printed_at overwritten: %v", o.PrintedAt)
	}
}

func TestStampStatus_SharedShippedStamp(t *testing.T) {
	// shipped 与 ready_pickup 共用 shipped_at
	now := time.Now()

	o := &Order{Status: OrderStatusPaid}
	o.StampStatus(OrderStatusReadyPickup, now)
	if o.ShippedAt == nil {
		t.Fatal("ready_pickup should stamp shipped_at")
	}

	later := now.Add(time.Hour)
	o.StampStatus(OrderStatusShipped, later)
	if !o.ShippedAt.Equal(now) {
		t.Fatalf("shipped_at overwritten: %v", o.ShippedAt)
	}
	if o.Status != OrderStatusShipped {
		t.Fatalf("status = %s, want shipped", o.Status)
	}
}

func TestStampStatus_Milestones(t *testing.T) {
	now := time.Now()

	o := &Order{Status: OrderStatusPending}
	o.StampStatus(OrderStatusPaid, now)
	if o.PaidAt == nil {
		t.Fatal("paid_at not stamped")
	}
	o.StampStatus(OrderStatusCompleted, now)
	if o.CompletedAt == nil {
		t.Fatal("completed_at not stamped")
	}
	// cancelled 没有里程碑时间戳
	o2 := &Order{Status: OrderStatusPending}
	o2.StampStatus(OrderStatusCancelled, now)
	if o2.PaidAt != nil || o2.PrintedAt != nil || o2.ShippedAt != nil || o2.CompletedAt != nil {
		t.Fatal("cancelled should not stamp any milestone")
	}
}

func TestOrderStatusValid(t *testing.T) {
	cases := []struct {
		status OrderStatus
		want   bool
	}{
		{OrderStatusPrinting, true},
		{OrderStatusShipped, true},
		{OrderStatusReadyPickup, true},
		{OrderStatusCompleted, true},
		{OrderStatusCancelled, true},
		{OrderStatusArchived, true},
		{OrderStatusPending, false},
		{OrderStatusPaid, false},
		{OrderStatus("refunded"), false},
	}
	for _, c := range cases {
		if got := c.status.Valid(); got != c.want {
			t.Errorf("Valid(%s) = %v, want %v", c.status, got, c.want)
		}
	}
}
