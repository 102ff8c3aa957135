package stats

import "math"

// realTrade reports whether the trade carries P&L weight for profit-factor
// and consistency purposes: executed and either decided (non-BE) or a
// break-even with partials taken, which always counts as a win.
func realTrade(t *Trade) bool {
	if !t.Executed {
		return false
	}
	return !t.BreakEven || t.PartialsTaken
}

// profitable reports whether a real trade resolved in profit.
func profitable(t *Trade) bool {
	if t.BreakEven {
		return t.PartialsTaken
	}
	return t.IsWin()
}

// ProfitFactor returns gross profit divided by gross loss over real trades,
// using the risk-derived synthetic P&L. Returns 0 when gross loss is 0.
func ProfitFactor(trades []Trade, startingBalance float64, cfg Config) float64 {
	var grossProfit, grossLoss float64
	for i := range trades {
		t := &trades[i]
		if !realTrade(t) {
			continue
		}
		pnl := syntheticPnL(t, startingBalance, cfg)
		if pnl > 0 {
			grossProfit += pnl
		} else {
			grossLoss += -pnl
		}
	}
	if grossLoss == 0 {
		return 0
	}
	return grossProfit / grossLoss
}

// ConsistencyScore returns the percentage of real trades that were
// profitable. Break-even trades without partials are excluded entirely.
func ConsistencyScore(trades []Trade) float64 {
	var total, won int
	for i := range trades {
		t := &trades[i]
		if !realTrade(t) {
			continue
		}
		total++
		if profitable(t) {
			won++
		}
	}
	return percentage(won, total)
}

// ConsistencyScoreWithBE returns the percentage of calendar days whose net
// synthetic P&L was positive. Days holding only plain break-evens contribute
// 0 P&L but still count as trading days.
func ConsistencyScoreWithBE(trades []Trade, startingBalance float64, cfg Config) float64 {
	daily := make(map[string]float64)
	for i := range trades {
		t := &trades[i]
		if !t.Executed {
			continue
		}
		day := t.TradeDate.Format("2006-01-02")
		daily[day] += syntheticPnL(t, startingBalance, cfg)
	}
	if len(daily) == 0 {
		return 0
	}
	var positive int
	for _, pnl := range daily {
		if pnl > 0 {
			positive++
		}
	}
	return percentage(positive, len(daily))
}

// PopulationStdDev is the standard deviation with the n denominator. Used for
// R-multiple stability; do not swap with SampleStdDev.
func PopulationStdDev(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	mean := meanOf(values)
	var sum float64
	for _, v := range values {
		d := v - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(n))
}

// SampleStdDev is the standard deviation with the n-1 denominator. Used for
// the Sharpe ratio; do not swap with PopulationStdDev.
func SampleStdDev(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	mean := meanOf(values)
	var sum float64
	for _, v := range values {
		d := v - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(n-1))
}

func meanOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// rValue maps a trade onto the R scale: +RR for a non-BE win, -1 for a non-BE
// loss, 0 for any break-even. Losses ignore the planned ratio entirely.
func rValue(t *Trade, cfg Config) float64 {
	if t.BreakEven {
		return 0
	}
	if t.IsWin() {
		return t.RewardRatio(cfg)
	}
	return -1
}

// RMultipleTotal sums the R-values of all executed trades. A list of N losses
// totals exactly -N regardless of each trade's planned ratio.
func RMultipleTotal(trades []Trade, cfg Config) float64 {
	var total float64
	for i := range trades {
		t := &trades[i]
		if !t.Executed {
			continue
		}
		total += rValue(t, cfg)
	}
	return total
}

// SharpeRatio divides the sample mean of the executed trades' R-value series
// by its sample standard deviation. Fewer than 2 trades or zero variance
// yields 0.
func SharpeRatio(trades []Trade, cfg Config) float64 {
	var returns []float64
	for i := range trades {
		t := &trades[i]
		if !t.Executed {
			continue
		}
		returns = append(returns, rValue(t, cfg))
	}
	if len(returns) < 2 {
		return 0
	}
	sd := SampleStdDev(returns)
	if sd == 0 {
		return 0
	}
	return meanOf(returns) / sd
}

// TradeQualityIndex combines win rate with R-multiple stability:
// winRate * (1 / (1 + populationStdDev(R-values))). Win rate here counts
// break-evens in the total but never as wins; result is 0 for an empty
// input and stays within (0,1] otherwise.
func TradeQualityIndex(trades []Trade, cfg Config) float64 {
	var rValues []float64
	var wins, total int
	for i := range trades {
		t := &trades[i]
		if !t.Executed {
			continue
		}
		total++
		if !t.BreakEven && t.IsWin() {
			wins++
		}
		rValues = append(rValues, rValue(t, cfg))
	}
	if total == 0 {
		return 0
	}
	winRate := float64(wins) / float64(total)
	return winRate * (1 / (1 + PopulationStdDev(rValues)))
}
