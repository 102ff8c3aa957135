package stats

import (
	"testing"
)

func onDay(tr Trade, d int) Trade {
	tr.TradeDate = day(d)
	return tr
}

func TestStreaks_AllWins(t *testing.T) {
	trades := []Trade{onDay(win(), 1), onDay(win(), 2), onDay(win(), 3)}
	s := Streaks(trades, StreakOptions{})
	if s.Current != 3 || s.MaxWinning != 3 || s.MaxLosing != 0 {
		t.Errorf("streaks = %+v, want current=3 maxWin=3 maxLose=0", s)
	}
}

func TestStreaks_SignTracksLastOutcome(t *testing.T) {
	trades := []Trade{
		onDay(win(), 1), onDay(win(), 2),
		onDay(loss(), 3), onDay(loss(), 4), onDay(loss(), 5),
	}
	s := Streaks(trades, StreakOptions{})
	if s.Current != -3 {
		t.Errorf("current = %d, want -3 after three losses", s.Current)
	}
	if s.MaxWinning != 2 || s.MaxLosing != 3 {
		t.Errorf("max streaks = %+v, want maxWin=2 maxLose=3", s)
	}
}

func TestStreaks_BreakEvenNeitherExtendsNorBreaks(t *testing.T) {
	trades := []Trade{
		onDay(win(), 1),
		onDay(breakEven(), 2),
		onDay(win(), 3),
	}
	s := Streaks(trades, StreakOptions{})
	if s.Current != 2 || s.MaxWinning != 2 {
		t.Errorf("streaks = %+v, want BE skipped and win run of 2", s)
	}
}

func TestStreaks_CountNonWinsAsLosses(t *testing.T) {
	trades := []Trade{
		onDay(win(), 1),
		onDay(breakEven(), 2),
	}
	s := Streaks(trades, StreakOptions{CountNonWinsAsLosses: true})
	if s.Current != -1 || s.MaxLosing != 1 {
		t.Errorf("streaks = %+v, want BE counted as a loss", s)
	}
}

func TestStreaks_UnsortedInput(t *testing.T) {
	// Aggregators must not assume chronological input.
	trades := []Trade{onDay(loss(), 5), onDay(win(), 1), onDay(win(), 2)}
	s := Streaks(trades, StreakOptions{})
	if s.Current != -1 || s.MaxWinning != 2 {
		t.Errorf("streaks = %+v over unsorted input, want current=-1 maxWin=2", s)
	}
	if !trades[0].TradeDate.Equal(day(5)) {
		t.Error("input slice was reordered")
	}
}

func TestAverageDaysBetweenTrades(t *testing.T) {
	cases := []struct {
		name   string
		trades []Trade
		want   float64
	}{
		{"empty", nil, 0},
		{"single", []Trade{onDay(win(), 1)}, 0},
		{"evenGaps", []Trade{onDay(win(), 1), onDay(loss(), 3), onDay(win(), 5)}, 2},
		{"unevenGaps", []Trade{onDay(win(), 1), onDay(win(), 2), onDay(win(), 5)}, 2}, // (1+3)/2
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := AverageDaysBetweenTrades(c.trades); got != c.want {
				t.Errorf("got %v, want %v", got, c.want)
			}
		})
	}
}

func TestMaxDrawdown_NeverNegative(t *testing.T) {
	cfg := DefaultConfig()
	if dd := MaxDrawdown(nil, 10000, cfg); dd != 0 {
		t.Errorf("drawdown on empty input = %v, want 0", dd)
	}
}

func TestMaxDrawdown_ZeroOnMonotonicBalance(t *testing.T) {
	cfg := DefaultConfig()
	trades := []Trade{onDay(win(), 1), onDay(win(), 2), onDay(breakEven(), 3), onDay(win(), 4)}
	if dd := MaxDrawdown(trades, 10000, cfg); dd != 0 {
		t.Errorf("drawdown on non-decreasing balance = %v, want 0", dd)
	}
}

func TestMaxDrawdown_SyntheticWalk(t *testing.T) {
	cfg := DefaultConfig()
	// Win then two losses at default 0.5% risk, RR 2, balance 10000:
	// 10000 -> 10100 (peak) -> 10050 -> 10000. Drawdown = 100/10100.
	trades := []Trade{onDay(win(), 1), onDay(loss(), 2), onDay(loss(), 3)}
	want := 100.0 / 10100.0 * 100
	if got := MaxDrawdown(trades, 10000, cfg); !almostEqual(got, want) {
		t.Errorf("drawdown = %v, want %v", got, want)
	}
}

func TestMaxDrawdown_ExcludesPlannedTrades(t *testing.T) {
	cfg := DefaultConfig()
	planned := onDay(loss(), 2)
	planned.Executed = false
	trades := []Trade{onDay(win(), 1), planned}
	if dd := MaxDrawdown(trades, 10000, cfg); dd != 0 {
		t.Errorf("planned trade affected drawdown: %v", dd)
	}
}

func TestMaxDrawdownRealized_UsesStoredProfit(t *testing.T) {
	up := onDay(win(), 1)
	up.CalculatedProfit = 500
	down := onDay(loss(), 2)
	down.CalculatedProfit = -210

	// 1000 -> 1500 (peak) -> 1290. Drawdown = 210/1500 = 14%.
	got := MaxDrawdownRealized([]Trade{up, down}, 1000)
	if !almostEqual(got, 14) {
		t.Errorf("drawdown = %v, want 14", got)
	}
}
