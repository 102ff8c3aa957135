package cache

import (
	"context"
	"testing"
)

func TestDashboardKeyScoping(t *testing.T) {
	a := DashboardKey("u1", "acc1", "live", 2025)
	b := DashboardKey("u1", "acc1", "live", 2024)
	c := DashboardKey("u1", "acc2", "live", 2025)
	d := DashboardKey("u1", "acc1", "demo", 2025)

	keys := map[string]bool{a: true, b: true, c: true, d: true}
	if len(keys) != 4 {
		t.Errorf("expected 4 distinct keys, got %d: %v", len(keys), keys)
	}
}

func TestMonthlyKeyDistinctFromDashboard(t *testing.T) {
	if DashboardKey("u", "a", "live", 2025) == MonthlyKey("u", "a", "live", 2025) {
		t.Error("dashboard and monthly keys must not collide")
	}
}

func TestAccountPatternCoversAggregates(t *testing.T) {
	pattern := AccountPattern("u1", "acc1")
	want := "stats:user:u1:account:acc1:*"
	if pattern != want {
		t.Errorf("AccountPattern = %q, want %q", pattern, want)
	}
}

func TestNilStatsCacheNoOps(t *testing.T) {
	var sc *StatsCache
	ctx := context.Background()

	if _, ok := sc.GetDashboard(ctx, "u", "a", "live", 2025); ok {
		t.Error("nil cache reported a hit")
	}
	if _, ok := sc.GetMonthly(ctx, "u", "a", "live", 2025); ok {
		t.Error("nil cache reported a hit")
	}
	// Must not panic.
	sc.SetDashboard(ctx, "u", "a", "live", 2025, nil)
	sc.InvalidateAccount(ctx, "u", "a")
}
