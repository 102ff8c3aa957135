package stats

import (
	"math"
	"testing"
)

// Profit-factor scenario: a plain win, a plain loss, and a break-even with
// partials taken (always a win).
func TestProfitFactor_MixedTrades(t *testing.T) {
	cfg := DefaultConfig()
	trades := []Trade{
		mkTrade(tradeSpec{outcome: OutcomeWin, risk: f64(0.5), rr: f64(2), executed: true}),
		mkTrade(tradeSpec{outcome: OutcomeLose, executed: true}),
		mkTrade(tradeSpec{outcome: OutcomeWin, breakEven: true, partials: true, risk: f64(1), rr: f64(3), executed: true}),
	}
	// grossProfit = 10000*0.5%*2 + 10000*1%*3 = 100 + 300 = 400
	// grossLoss   = 10000*0.5% = 50
	got := ProfitFactor(trades, 10000, cfg)
	if !almostEqual(got, 8) {
		t.Errorf("profit factor = %v, want 8", got)
	}
}

func TestProfitFactor_ZeroGrossLoss(t *testing.T) {
	cfg := DefaultConfig()
	if got := ProfitFactor([]Trade{win(), win()}, 10000, cfg); got != 0 {
		t.Errorf("profit factor with no losses = %v, want 0", got)
	}
	if got := ProfitFactor(nil, 10000, cfg); got != 0 {
		t.Errorf("profit factor on empty input = %v, want 0", got)
	}
}

func TestProfitFactor_PlainBreakEvenExcluded(t *testing.T) {
	cfg := DefaultConfig()
	trades := []Trade{win(), loss(), breakEven()}
	// BE without partials carries no P&L weight: 100/50.
	if got := ProfitFactor(trades, 10000, cfg); !almostEqual(got, 2) {
		t.Errorf("profit factor = %v, want 2", got)
	}
}

func TestConsistencyScore(t *testing.T) {
	trades := []Trade{win(), win(), loss(), breakEven()}
	// 2 profitable of 3 real trades (plain BE excluded).
	if got, want := ConsistencyScore(trades), 2.0/3.0*100; !almostEqual(got, want) {
		t.Errorf("consistency = %v, want %v", got, want)
	}
	if got := ConsistencyScore(nil); got != 0 {
		t.Errorf("consistency on empty input = %v, want 0", got)
	}
}

func TestConsistencyScore_BEWithPartialsCountsAsWin(t *testing.T) {
	bePartials := mkTrade(tradeSpec{outcome: OutcomeLose, breakEven: true, partials: true, executed: true})
	if got := ConsistencyScore([]Trade{bePartials}); got != 100 {
		t.Errorf("consistency = %v, want 100 for BE-with-partials", got)
	}
}

func TestConsistencyScoreWithBE_DayBased(t *testing.T) {
	cfg := DefaultConfig()
	trades := []Trade{
		onDay(win(), 1),       // day 1 positive
		onDay(loss(), 2),      // day 2 negative
		onDay(breakEven(), 3), // day 3 zero, still a trading day
	}
	if got, want := ConsistencyScoreWithBE(trades, 10000, cfg), 1.0/3.0*100; !almostEqual(got, want) {
		t.Errorf("day consistency = %v, want %v", got, want)
	}
}

func TestStdDev_PopulationVsSample(t *testing.T) {
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	if got := PopulationStdDev(values); !almostEqual(got, 2) {
		t.Errorf("population stddev = %v, want 2", got)
	}
	wantSample := math.Sqrt(32.0 / 7.0)
	if got := SampleStdDev(values); !almostEqual(got, wantSample) {
		t.Errorf("sample stddev = %v, want %v", got, wantSample)
	}
	// The two conventions are distinct primitives.
	if PopulationStdDev(values) == SampleStdDev(values) {
		t.Error("population and sample stddev should differ on this input")
	}
}

func TestStdDev_DegenerateInputs(t *testing.T) {
	if got := PopulationStdDev(nil); got != 0 {
		t.Errorf("population stddev of empty = %v, want 0", got)
	}
	if got := SampleStdDev([]float64{5}); got != 0 {
		t.Errorf("sample stddev of one value = %v, want 0", got)
	}
}

func TestRMultipleTotal_LossesAlwaysMinusOne(t *testing.T) {
	cfg := DefaultConfig()
	trades := []Trade{
		mkTrade(tradeSpec{outcome: OutcomeLose, rr: f64(5), executed: true}),
		mkTrade(tradeSpec{outcome: OutcomeLose, rr: f64(10), executed: true}),
		mkTrade(tradeSpec{outcome: OutcomeLose, executed: true}),
	}
	if got := RMultipleTotal(trades, cfg); got != -3 {
		t.Errorf("r-multiple total = %v, want -3 independent of RR", got)
	}
}

func TestRMultipleTotal_Mixed(t *testing.T) {
	cfg := DefaultConfig()
	trades := []Trade{
		mkTrade(tradeSpec{outcome: OutcomeWin, rr: f64(3), executed: true}),
		loss(),
		breakEven(),
	}
	if got := RMultipleTotal(trades, cfg); !almostEqual(got, 2) {
		t.Errorf("r-multiple total = %v, want 3 - 1 + 0 = 2", got)
	}
}

func TestSharpeRatio_DegenerateInputs(t *testing.T) {
	cfg := DefaultConfig()
	if got := SharpeRatio(nil, cfg); got != 0 {
		t.Errorf("sharpe on empty input = %v, want 0", got)
	}
	if got := SharpeRatio([]Trade{win()}, cfg); got != 0 {
		t.Errorf("sharpe on single trade = %v, want 0", got)
	}
	// Zero variance: identical outcomes.
	if got := SharpeRatio([]Trade{win(), win(), win()}, cfg); got != 0 {
		t.Errorf("sharpe with zero variance = %v, want 0", got)
	}
}

func TestSharpeRatio_MixedOutcomes(t *testing.T) {
	cfg := DefaultConfig()
	// R series {2, -1}: mean 0.5, sample stddev sqrt(4.5).
	got := SharpeRatio([]Trade{win(), loss()}, cfg)
	want := 0.5 / math.Sqrt(4.5)
	if !almostEqual(got, want) {
		t.Errorf("sharpe = %v, want %v", got, want)
	}
}

func TestTradeQualityIndex(t *testing.T) {
	cfg := DefaultConfig()
	if got := TradeQualityIndex(nil, cfg); got != 0 {
		t.Errorf("TQI on empty input = %v, want 0", got)
	}

	// All wins at RR 2: winRate 1, R stddev 0 -> TQI exactly 1.
	if got := TradeQualityIndex([]Trade{win(), win()}, cfg); !almostEqual(got, 1) {
		t.Errorf("TQI for uniform wins = %v, want 1", got)
	}

	// Mixed set stays inside (0,1].
	trades := []Trade{win(), loss(), breakEven()}
	got := TradeQualityIndex(trades, cfg)
	if got <= 0 || got > 1 {
		t.Errorf("TQI = %v, want in (0,1]", got)
	}
	// winRate counts BE in total, never as a win: 1/3.
	rValues := []float64{2, -1, 0}
	want := (1.0 / 3.0) * (1 / (1 + PopulationStdDev(rValues)))
	if !almostEqual(got, want) {
		t.Errorf("TQI = %v, want %v", got, want)
	}
}
