package stats

import (
	"testing"
)

func TestByMarket_TwoMarkets(t *testing.T) {
	trades := []Trade{
		mkTrade(tradeSpec{market: "EURUSD", outcome: OutcomeWin, executed: true}),
		mkTrade(tradeSpec{market: "EURUSD", outcome: OutcomeLose, executed: true}),
		mkTrade(tradeSpec{market: "GBPUSD", outcome: OutcomeWin, executed: true}),
	}

	buckets := ByMarket(trades)
	if len(buckets) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(buckets))
	}

	eur := buckets[0]
	if eur.Key != "EURUSD" || eur.Wins != 1 || eur.Losses != 1 || eur.WinRate != 50 {
		t.Errorf("EURUSD bucket = %+v, want wins=1 losses=1 winRate=50", eur)
	}
	gbp := buckets[1]
	if gbp.Key != "GBPUSD" || gbp.Wins != 1 || gbp.Losses != 0 || gbp.WinRate != 100 {
		t.Errorf("GBPUSD bucket = %+v, want wins=1 losses=0 winRate=100", gbp)
	}
}

func TestBreakdown_MissingKeyFallsIntoUnknown(t *testing.T) {
	tr := win()
	tr.SetupType = ""
	buckets := BySetup([]Trade{tr})
	if len(buckets) != 1 || buckets[0].Key != UnknownBucket {
		t.Fatalf("expected single %q bucket, got %+v", UnknownBucket, buckets)
	}
	if buckets[0].Total != 1 {
		t.Errorf("trade with missing key was dropped")
	}
}

func TestBreakdown_BESplit(t *testing.T) {
	trades := []Trade{
		breakEven(),
		mkTrade(tradeSpec{outcome: OutcomeLose, breakEven: true, executed: true}),
		win(),
	}
	buckets := ByMarket(trades)
	if len(buckets) != 1 {
		t.Fatalf("expected 1 bucket, got %d", len(buckets))
	}
	b := buckets[0]
	if b.BEWins != 1 || b.BELosses != 1 || b.Wins != 1 {
		t.Errorf("beWins/beLosses/wins = %d/%d/%d, want 1/1/1", b.BEWins, b.BELosses, b.Wins)
	}
	// winRateWithBE uses total trades as denominator.
	if want := 1.0 / 3.0 * 100; !almostEqual(b.WinRateWithBE, want) {
		t.Errorf("winRateWithBE = %v, want %v", b.WinRateWithBE, want)
	}
}

func TestByDay_FixedOrder(t *testing.T) {
	mon := win()
	mon.DayOfWeek = "Monday"
	fri := loss()
	fri.DayOfWeek = "Friday"
	wed := win()
	wed.DayOfWeek = "Wednesday"

	buckets := ByDay([]Trade{fri, wed, mon})
	got := []string{buckets[0].Key, buckets[1].Key, buckets[2].Key}
	want := []string{"Monday", "Wednesday", "Friday"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("day order = %v, want %v", got, want)
		}
	}
}

func TestByNewsEvent_ExcludesNonNewsTrades(t *testing.T) {
	news := win()
	news.NewsRelated = true
	news.NewsName = "NFP"
	quiet := loss()

	buckets := ByNewsEvent([]Trade{news, quiet})
	if len(buckets) != 1 || buckets[0].Key != "NFP" || buckets[0].Total != 1 {
		t.Fatalf("expected single NFP bucket with 1 trade, got %+v", buckets)
	}
}

func TestByRiskBucket_DefaultsAppliedForMissingRisk(t *testing.T) {
	cfg := DefaultConfig()
	tr := win() // no risk set -> default 0.5, which lands in [0.5,1)
	buckets := ByRiskBucket([]Trade{tr}, cfg)
	if len(buckets) != 1 || buckets[0].Key != "0.5-1%" {
		t.Fatalf("expected default risk in 0.5-1%% bucket, got %+v", buckets)
	}
}

func TestBySLSizeRange_HalfOpenEdges(t *testing.T) {
	cfg := DefaultConfig()
	cases := []struct {
		size float64
		want string
	}{
		{9.99, "0-10"},
		{10, "10-20"},
		{19.99, "10-20"},
		{20, "20-30"},
		{40, "40+"},
		{500, "40+"},
	}
	for _, c := range cases {
		tr := win()
		tr.SLSize = f64(c.size)
		buckets := BySLSizeRange([]Trade{tr}, cfg)
		if len(buckets) != 1 || buckets[0].Key != c.want {
			t.Errorf("size %v bucketed as %+v, want %q", c.size, buckets, c.want)
		}
	}
}

func TestBySLSizeRange_MissingSizeGoesToUnknown(t *testing.T) {
	buckets := BySLSizeRange([]Trade{win()}, DefaultConfig())
	if len(buckets) != 1 || buckets[0].Key != UnknownBucket {
		t.Fatalf("expected %q bucket, got %+v", UnknownBucket, buckets)
	}
}

func TestByTimeInterval_Buckets(t *testing.T) {
	cfg := DefaultConfig()
	tr := win()
	tr.TradeTime = "09:30"
	buckets := ByTimeInterval([]Trade{tr}, cfg)
	if len(buckets) != 1 || buckets[0].Key != "08:00-12:00" {
		t.Fatalf("expected 08:00-12:00 bucket, got %+v", buckets)
	}
}

func TestByGrade_PriorityOrderAndSingleBEBucket(t *testing.T) {
	cfg := DefaultConfig()
	graded := func(grade string, tr Trade) Trade {
		tr.EvaluationGrade = grade
		return tr
	}
	trades := []Trade{
		graded("B", win()),
		graded("A+", loss()),
		graded("A+", breakEven()),
		graded("X", win()), // not in priority list, dropped
		graded("A+", win()),
	}

	out := ByGrade(trades, cfg)
	if len(out) != 2 {
		t.Fatalf("expected 2 grades, got %d: %+v", len(out), out)
	}
	if out[0].Grade != "A+" || out[1].Grade != "B" {
		t.Errorf("grade order = %s,%s, want A+,B", out[0].Grade, out[1].Grade)
	}
	aPlus := out[0]
	if aPlus.Wins != 1 || aPlus.Losses != 1 || aPlus.BreakEvens != 1 {
		t.Errorf("A+ = %+v, want wins=1 losses=1 breakEvens=1", aPlus)
	}
}

func TestAverageSLSizeByMarket(t *testing.T) {
	withSL := func(market string, size float64) Trade {
		tr := mkTrade(tradeSpec{market: market, outcome: OutcomeWin, executed: true})
		tr.SLSize = f64(size)
		return tr
	}
	trades := []Trade{
		withSL("EURUSD", 10),
		withSL("EURUSD", 15),
		withSL("GBPUSD", 33.333),
		mkTrade(tradeSpec{market: "XAUUSD", outcome: OutcomeLose, executed: true}), // no SL recorded
	}

	out := AverageSLSizeByMarket(trades)
	if len(out) != 2 {
		t.Fatalf("expected 2 markets (XAUUSD omitted), got %+v", out)
	}
	if out[0].Market != "EURUSD" || out[0].Average != 12.5 {
		t.Errorf("EURUSD average = %+v, want 12.5", out[0])
	}
	if out[1].Market != "GBPUSD" || out[1].Average != 33.33 {
		t.Errorf("GBPUSD average = %+v, want 33.33 (2-decimal rounding)", out[1])
	}
}

func TestBreakdown_DoesNotMutateInput(t *testing.T) {
	trades := []Trade{
		mkTrade(tradeSpec{market: "B", outcome: OutcomeWin, executed: true}),
		mkTrade(tradeSpec{market: "A", outcome: OutcomeLose, executed: true}),
	}
	ByMarket(trades)
	if trades[0].Market != "B" || trades[1].Market != "A" {
		t.Error("input slice was reordered")
	}
}
