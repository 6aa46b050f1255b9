package utils

import (
	"testing"
	"time"
)

func TestFormatOrderNo(t *testing.T) {
	day := time.Date(2026, 8, 29, 15, 4, 5, 0, time.Local)

	tests := []struct {
		seq  int64
		want string
	}{
		{3, "HS-20260829-003"},
		{42, "HS-20260829-042"},
		{123, "HS-20260829-123"},
		{1234, "HS-20260829-1234"}, // 超过三位不截断
	}
	for _, tt := range tests {
		if got := FormatOrderNo("HS", day, tt.seq); got != tt.want {
			t.Errorf("FormatOrderNo(HS, _, %d) = %s, want %s", tt.seq, got, tt.want)
		}
	}
}

func TestSeqDayKey(t *testing.T) {
	day := time.Date(2026, 1, 2, 23, 59, 59, 0, time.Local)
	if got := SeqDayKey(day); got != "20260102" {
		t.Errorf("SeqDayKey = %s, want 20260102", got)
	}
}

func TestGenHashID(t *testing.T) {
	a := GenHashID("salt-a", 42)
	b := GenHashID("salt-a", 42)
	if a != b {
		t.Errorf("same salt+id must be deterministic: %s != %s", a, b)
	}
	if len(a) < 12 {
		t.Errorf("len(%s) = %d, want >= 12", a, len(a))
	}

	if GenHashID("salt-b", 42) == a {
		t.Error("different salt must change the code")
	}
	if GenHashID("salt-a", 43) == a {
		t.Error("different id must change the code")
	}
}
