package stats

// StreakStats tracks win/loss runs over a chronologically ordered trade
// sequence. Current is signed: positive for an active win run, negative for
// an active loss run, 0 when no trade counted.
type StreakStats struct {
	Current    int `json:"current"`
	MaxWinning int `json:"max_winning"`
	MaxLosing  int `json:"max_losing"`
}

// StreakOptions controls how non-decided trades enter the streak state
// machine.
type StreakOptions struct {
	// CountNonWinsAsLosses treats break-even trades as losses instead of
	// skipping them.
	CountNonWinsAsLosses bool
}

// Streaks walks the trade sequence in chronological order and tracks the
// current run plus the longest winning and losing runs. Break-even trades
// are skipped entirely unless CountNonWinsAsLosses is set: they neither
// extend nor break a streak.
func Streaks(trades []Trade, opts StreakOptions) StreakStats {
	var s StreakStats
	for _, t := range sortedByDate(trades) {
		if t.BreakEven && !opts.CountNonWinsAsLosses {
			continue
		}
		win := !t.BreakEven && t.IsWin()
		if win {
			if s.Current > 0 {
				s.Current++
			} else {
				s.Current = 1
			}
			if s.Current > s.MaxWinning {
				s.MaxWinning = s.Current
			}
		} else {
			if s.Current < 0 {
				s.Current--
			} else {
				s.Current = -1
			}
			if -s.Current > s.MaxLosing {
				s.MaxLosing = -s.Current
			}
		}
	}
	return s
}

// AverageDaysBetweenTrades returns the mean gap in days between consecutive
// trades, rounded to 1 decimal. Fewer than two trades yields 0.
func AverageDaysBetweenTrades(trades []Trade) float64 {
	if len(trades) < 2 {
		return 0
	}
	sorted := sortedByDate(trades)
	var total float64
	for i := 1; i < len(sorted); i++ {
		total += sorted[i].TradeDate.Sub(sorted[i-1].TradeDate).Hours() / 24
	}
	return round1(total / float64(len(sorted)-1))
}

// MaxDrawdown walks a running balance from the starting balance, applying a
// risk-derived synthetic P&L per executed trade, and returns the largest
// peak-to-trough decline as a percentage of the peak. Result is never
// negative; a monotonically non-decreasing balance yields exactly 0.
func MaxDrawdown(trades []Trade, startingBalance float64, cfg Config) float64 {
	return maxDrawdown(trades, startingBalance, func(t *Trade) float64 {
		return syntheticPnL(t, startingBalance, cfg)
	})
}

// MaxDrawdownRealized is the stored-P&L variant of MaxDrawdown: the running
// balance applies each executed trade's calculated_profit instead of a
// risk-derived amount.
func MaxDrawdownRealized(trades []Trade, startingBalance float64) float64 {
	return maxDrawdown(trades, startingBalance, func(t *Trade) float64 {
		return t.CalculatedProfit
	})
}

func maxDrawdown(trades []Trade, startingBalance float64, pnl func(*Trade) float64) float64 {
	balance := startingBalance
	peak := startingBalance
	var maxDD float64
	for _, t := range sortedByDate(trades) {
		if !t.Executed {
			continue
		}
		balance += pnl(&t)
		if balance > peak {
			peak = balance
		}
		if peak > 0 {
			dd := (peak - balance) / peak * 100
			if dd > maxDD {
				maxDD = dd
			}
		}
	}
	return maxDD
}

// syntheticPnL derives a trade's P&L from the risked percent of the starting
// balance: +balance*risk%*RR on a win, -balance*risk% on a loss. A plain
// break-even contributes 0; a break-even with partials taken always
// contributes the win amount.
func syntheticPnL(t *Trade, balance float64, cfg Config) float64 {
	riskAmount := balance * t.RiskPercent(cfg) / 100
	if t.BreakEven {
		if t.PartialsTaken {
			return riskAmount * t.RewardRatio(cfg)
		}
		return 0
	}
	if t.IsWin() {
		return riskAmount * t.RewardRatio(cfg)
	}
	return -riskAmount
}
