package stats

import (
	"testing"
	"time"
)

func inMonth(tr Trade, m time.Month, d int) Trade {
	tr.TradeDate = time.Date(2024, m, d, 0, 0, 0, 0, time.UTC)
	return tr
}

func TestMonthly_Rollup(t *testing.T) {
	cfg := DefaultConfig()
	trades := []Trade{
		inMonth(win(), time.January, 5),
		inMonth(win(), time.January, 10),
		inMonth(loss(), time.January, 15),
		inMonth(loss(), time.March, 2),
		inMonth(breakEven(), time.March, 3),
		inMonth(win(), time.May, 1),
	}

	report := Monthly(trades, 2024, 10000, cfg)
	if len(report.Months) != 12 {
		t.Fatalf("expected 12 months, got %d", len(report.Months))
	}

	jan := report.Months[0]
	if jan.Wins != 2 || jan.Losses != 1 {
		t.Errorf("january = %+v, want wins=2 losses=1", jan)
	}
	// 2 wins * 100 - 1 loss * 50 at default 0.5% risk, RR 2 on 10000.
	if !almostEqual(jan.Profit, 150) {
		t.Errorf("january profit = %v, want 150", jan.Profit)
	}
	if want := 2.0 / 3.0 * 100; !almostEqual(jan.WinRate, want) {
		t.Errorf("january winRate = %v, want %v", jan.WinRate, want)
	}

	mar := report.Months[2]
	if mar.Losses != 1 || mar.BEWins != 1 {
		t.Errorf("march = %+v, want losses=1 beWins=1", mar)
	}
	if !almostEqual(mar.Profit, -50) {
		t.Errorf("march profit = %v, want -50 (plain BE contributes 0)", mar.Profit)
	}

	if report.Best == nil || report.Best.Month != time.January {
		t.Errorf("best month = %+v, want January", report.Best)
	}
	if report.Worst == nil || report.Worst.Month != time.March {
		t.Errorf("worst month = %+v, want March", report.Worst)
	}
}

func TestMonthly_IgnoresOtherYears(t *testing.T) {
	cfg := DefaultConfig()
	old := win()
	old.TradeDate = time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC)

	report := Monthly([]Trade{old}, 2024, 10000, cfg)
	for _, m := range report.Months {
		if m.Wins != 0 || m.Profit != 0 {
			t.Fatalf("2023 trade leaked into 2024 rollup: %+v", m)
		}
	}
	if report.Best != nil || report.Worst != nil {
		t.Error("best/worst set with no decided months")
	}
}

func TestMonthly_BEWithPartialsContributesWinProfit(t *testing.T) {
	cfg := DefaultConfig()
	be := mkTrade(tradeSpec{outcome: OutcomeWin, breakEven: true, partials: true, executed: true})
	report := Monthly([]Trade{inMonth(be, time.April, 1)}, 2024, 10000, cfg)
	apr := report.Months[3]
	if !almostEqual(apr.Profit, 100) {
		t.Errorf("april profit = %v, want 100 for BE-with-partials", apr.Profit)
	}
	// BE-only month has no decided trades, so it cannot be best/worst.
	if report.Best != nil {
		t.Errorf("best month = %+v, want nil", report.Best)
	}
}

func TestMonthly_EmptyInput(t *testing.T) {
	report := Monthly(nil, 2024, 10000, DefaultConfig())
	if report.Best != nil || report.Worst != nil {
		t.Error("best/worst set on empty input")
	}
	for _, m := range report.Months {
		if m.WinRate != 0 || m.Profit != 0 {
			t.Fatalf("non-zero baseline month: %+v", m)
		}
	}
}
