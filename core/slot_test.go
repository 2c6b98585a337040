package core_test

import (
	"testing"
	"time"

	"github.com/synnergy-chain/txcore/core"
)

func TestSlotNumberBoundary(t *testing.T) {
	cal := core.NewSlotCalendar(unixEpoch, tenSeconds)
	if got := cal.SlotNumber(0); got != 0 {
		t.Fatalf("expected slot 0 at epoch, got %d", got)
	}
	if got := cal.SlotNumber(9); got != 0 {
		t.Fatalf("expected slot 0 at 9s, got %d", got)
	}
	if got := cal.SlotNumber(10); got != 1 {
		t.Fatalf("expected slot 1 at 10s, got %d", got)
	}
	if got := cal.SlotNumber(-5); got != 0 {
		t.Fatalf("expected negative timestamps to clamp to slot 0, got %d", got)
	}
}

func TestCurrentSlotUsesInjectedNow(t *testing.T) {
	cal := core.NewSlotCalendar(unixEpoch, tenSeconds)
	cal.Now = func() time.Time { return unixEpoch.Add(25 * time.Second) }
	if got := cal.CurrentSlot(); got != 2 {
		t.Fatalf("expected slot 2, got %d", got)
	}
}
