package stats

import (
	"reflect"
	"testing"
	"time"
)

func TestFilter_NeedsRecompute(t *testing.T) {
	cases := []struct {
		name string
		f    Filter
		want bool
	}{
		{"yearlyNoFilters", Filter{Mode: ViewYearly, Year: 2024}, false},
		{"yearlyMarket", Filter{Mode: ViewYearly, Year: 2024, Market: "EURUSD"}, true},
		// Execution filtering does not apply in yearly mode.
		{"yearlyExecution", Filter{Mode: ViewYearly, Year: 2024, Execution: ExecutionExecuted}, false},
		{"rangeNoFilters", Filter{Mode: ViewDateRange, From: day(1), To: day(28)}, false},
		{"rangeMarket", Filter{Mode: ViewDateRange, Market: "EURUSD"}, true},
		{"rangeExecution", Filter{Mode: ViewDateRange, Execution: ExecutionPlanned}, true},
		{"rangeExecutionAll", Filter{Mode: ViewDateRange, Execution: ExecutionAll}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.f.NeedsRecompute(); got != c.want {
				t.Errorf("NeedsRecompute() = %v, want %v", got, c.want)
			}
		})
	}
}

func TestFilter_ApplyYearAndMarket(t *testing.T) {
	thisYear := mkTrade(tradeSpec{market: "EURUSD", outcome: OutcomeWin, date: day(3), executed: true})
	otherMarket := mkTrade(tradeSpec{market: "GBPUSD", outcome: OutcomeWin, date: day(4), executed: true})
	lastYear := mkTrade(tradeSpec{market: "EURUSD", outcome: OutcomeLose, executed: true})
	lastYear.TradeDate = time.Date(2023, time.March, 1, 0, 0, 0, 0, time.UTC)

	trades := []Trade{thisYear, otherMarket, lastYear}
	f := Filter{Mode: ViewYearly, Year: 2024, Market: "EURUSD"}

	got := f.Apply(trades)
	if len(got) != 1 || !got[0].TradeDate.Equal(day(3)) {
		t.Fatalf("Apply returned %d trades, want only the 2024 EURUSD trade", len(got))
	}
}

func TestFilter_ApplyDateRange(t *testing.T) {
	trades := []Trade{
		mkTrade(tradeSpec{outcome: OutcomeWin, date: day(1), executed: true}),
		mkTrade(tradeSpec{outcome: OutcomeWin, date: day(10), executed: true}),
		mkTrade(tradeSpec{outcome: OutcomeWin, date: day(20), executed: true}),
	}
	f := Filter{Mode: ViewDateRange, From: day(5), To: day(15)}
	got := f.Apply(trades)
	if len(got) != 1 || !got[0].TradeDate.Equal(day(10)) {
		t.Fatalf("Apply returned %+v, want only the day-10 trade", got)
	}
}

func TestFilter_ApplyExecution(t *testing.T) {
	planned := mkTrade(tradeSpec{outcome: OutcomeWin, date: day(2)})
	taken := mkTrade(tradeSpec{outcome: OutcomeLose, date: day(3), executed: true})
	trades := []Trade{planned, taken}

	f := Filter{Mode: ViewDateRange, Execution: ExecutionPlanned}
	got := f.Apply(trades)
	if len(got) != 1 || got[0].Executed {
		t.Fatalf("planned filter returned %+v", got)
	}

	// Yearly mode ignores the execution dimension.
	fy := Filter{Mode: ViewYearly, Year: 2024, Execution: ExecutionPlanned}
	if got := fy.Apply(trades); len(got) != 2 {
		t.Fatalf("yearly mode applied execution filter: %d trades", len(got))
	}
}

func TestSelect_ReusesCachedStats(t *testing.T) {
	cached := &Dashboard{Basic: BasicStats{TotalTrades: 42}}
	f := Filter{Mode: ViewYearly, Year: 2024}
	got := Select(cached, []Trade{win()}, f, AccountSettings{AccountBalance: 10000}, DefaultConfig())
	if got != cached {
		t.Error("expected cached dashboard to be reused when no filter is active")
	}
}

func TestSelect_RecomputesOnMarketFilter(t *testing.T) {
	cached := &Dashboard{Basic: BasicStats{TotalTrades: 42}}
	trades := []Trade{
		mkTrade(tradeSpec{market: "EURUSD", outcome: OutcomeWin, date: day(1), executed: true}),
		mkTrade(tradeSpec{market: "GBPUSD", outcome: OutcomeLose, date: day(2), executed: true}),
	}
	f := Filter{Mode: ViewYearly, Year: 2024, Market: "EURUSD"}
	got := Select(cached, trades, f, AccountSettings{AccountBalance: 10000}, DefaultConfig())
	if got == cached {
		t.Fatal("expected recomputation when market filter is active")
	}
	if got.Basic.TotalTrades != 1 || got.Basic.Wins != 1 {
		t.Errorf("recomputed basic = %+v, want the single EURUSD win", got.Basic)
	}
}

func TestCompute_EmptyInputBaseline(t *testing.T) {
	d := Compute(nil, AccountSettings{AccountBalance: 10000}, DefaultConfig(), 2024)
	if d.Basic.TotalTrades != 0 || d.ProfitFactor != 0 || d.MaxDrawdown != 0 ||
		d.SharpeRatio != 0 || d.TradeQualityIndex != 0 || d.RMultipleTotal != 0 {
		t.Errorf("non-zero baseline on empty input: %+v", d)
	}
	if len(d.ByMarket) != 0 || len(d.ByGrade) != 0 {
		t.Error("expected empty breakdowns on empty input")
	}
}

// Every aggregator must be referentially transparent and leave its input
// untouched.
func TestCompute_IdempotentAndNonMutating(t *testing.T) {
	trades := []Trade{
		mkTrade(tradeSpec{market: "GBPUSD", outcome: OutcomeLose, date: day(9), tradeTime: "14:00", executed: true}),
		mkTrade(tradeSpec{market: "EURUSD", outcome: OutcomeWin, date: day(1), tradeTime: "09:00", executed: true}),
		mkTrade(tradeSpec{outcome: OutcomeWin, breakEven: true, date: day(5), executed: true}),
	}
	snapshot := make([]Trade, len(trades))
	copy(snapshot, trades)

	settings := AccountSettings{AccountBalance: 10000}
	cfg := DefaultConfig()

	first := Compute(trades, settings, cfg, 2024)
	second := Compute(trades, settings, cfg, 2024)

	if !reflect.DeepEqual(first, second) {
		t.Error("two computations over the same input differ")
	}
	if !reflect.DeepEqual(trades, snapshot) {
		t.Error("input slice was mutated")
	}
}
