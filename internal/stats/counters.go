package stats

// BasicStats holds the headline counters for a set of trades.
type BasicStats struct {
	TotalTrades   int     `json:"total_trades"`
	Wins          int     `json:"wins"`   // non-BE wins
	Losses        int     `json:"losses"` // non-BE losses
	BreakEvens    int     `json:"break_evens"`
	BEWins        int     `json:"be_wins"`
	BELosses      int     `json:"be_losses"`
	WinRate       float64 `json:"win_rate"`         // BE excluded from both sides
	WinRateWithBE float64 `json:"win_rate_with_be"` // BE inflates the denominator only
}

// Basic tallies wins, losses and break-evens and derives both win-rate
// variants. Break-even trades never count as wins in either variant.
func Basic(trades []Trade) BasicStats {
	s := BasicStats{TotalTrades: len(trades)}
	for i := range trades {
		t := &trades[i]
		switch {
		case t.BreakEven && t.IsWin():
			s.BreakEvens++
			s.BEWins++
		case t.BreakEven:
			s.BreakEvens++
			s.BELosses++
		case t.IsWin():
			s.Wins++
		default:
			s.Losses++
		}
	}
	s.WinRate = percentage(s.Wins, s.Wins+s.Losses)
	s.WinRateWithBE = percentage(s.Wins, s.Wins+s.Losses+s.BreakEvens)
	return s
}

// percentage returns num/den as a 0-100 percentage, 0 on a zero denominator.
func percentage(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den) * 100
}
