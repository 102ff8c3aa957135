package stats

import "testing"

func TestBasic_EmptyInput(t *testing.T) {
	s := Basic(nil)
	if s.TotalTrades != 0 || s.Wins != 0 || s.Losses != 0 || s.BreakEvens != 0 {
		t.Errorf("expected zero counts, got %+v", s)
	}
	if s.WinRate != 0 || s.WinRateWithBE != 0 {
		t.Errorf("expected zero rates on empty input, got winRate=%v withBE=%v", s.WinRate, s.WinRateWithBE)
	}
}

func TestBasic_Counts(t *testing.T) {
	trades := []Trade{win(), win(), loss(), breakEven()}
	s := Basic(trades)

	if s.TotalTrades != 4 {
		t.Errorf("total = %d, want 4", s.TotalTrades)
	}
	if s.Wins != 2 || s.Losses != 1 || s.BreakEvens != 1 {
		t.Errorf("wins/losses/be = %d/%d/%d, want 2/1/1", s.Wins, s.Losses, s.BreakEvens)
	}
	// 2 wins / 3 decided
	if got, want := s.WinRate, 2.0/3.0*100; !almostEqual(got, want) {
		t.Errorf("winRate = %v, want %v", got, want)
	}
	// 2 wins / 4 including BE
	if got, want := s.WinRateWithBE, 50.0; !almostEqual(got, want) {
		t.Errorf("winRateWithBE = %v, want %v", got, want)
	}
}

func TestBasic_RatesStayInBounds(t *testing.T) {
	cases := [][]Trade{
		nil,
		{win()},
		{loss()},
		{breakEven()},
		{win(), loss(), breakEven(), breakEven()},
	}
	for _, trades := range cases {
		s := Basic(trades)
		if s.WinRate < 0 || s.WinRate > 100 {
			t.Errorf("winRate out of bounds: %v for %d trades", s.WinRate, len(trades))
		}
		if s.WinRateWithBE < 0 || s.WinRateWithBE > 100 {
			t.Errorf("winRateWithBE out of bounds: %v for %d trades", s.WinRateWithBE, len(trades))
		}
	}
}

// Adding break-evens while holding wins/losses fixed must strictly decrease
// winRateWithBE and leave winRate untouched.
func TestBasic_BreakEvenOnlyInflatesWithBEDenominator(t *testing.T) {
	base := []Trade{win(), win(), loss()}
	withBE := append(append([]Trade{}, base...), breakEven(), breakEven())

	s1, s2 := Basic(base), Basic(withBE)
	if s1.WinRate != s2.WinRate {
		t.Errorf("winRate changed by BE trades: %v -> %v", s1.WinRate, s2.WinRate)
	}
	if s2.WinRateWithBE >= s1.WinRateWithBE {
		t.Errorf("winRateWithBE did not decrease: %v -> %v", s1.WinRateWithBE, s2.WinRateWithBE)
	}
}

// A break-even trade with a recorded final result attributes win/lose by that
// result, not the original close outcome.
func TestBasic_BEFinalResultOverride(t *testing.T) {
	tr := mkTrade(tradeSpec{outcome: OutcomeLose, breakEven: true, beResult: OutcomeWin, executed: true})
	s := Basic([]Trade{tr})
	if s.BEWins != 1 || s.BELosses != 0 {
		t.Errorf("beWins/beLosses = %d/%d, want 1/0", s.BEWins, s.BELosses)
	}
}

func TestBasic_OnlyBreakEvens(t *testing.T) {
	s := Basic([]Trade{breakEven(), breakEven()})
	if s.WinRate != 0 {
		t.Errorf("winRate = %v, want 0 with no decided trades", s.WinRate)
	}
	if s.WinRateWithBE != 0 {
		t.Errorf("winRateWithBE = %v, want 0 with no wins", s.WinRateWithBE)
	}
}

func almostEqual(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}
