package stats

import "time"

// MonthStats is the rollup for one calendar month.
type MonthStats struct {
	Month         time.Month `json:"-"`
	Label         string     `json:"month"`
	Wins          int        `json:"wins"`
	Losses        int        `json:"losses"`
	BEWins        int        `json:"be_wins"`
	BELosses      int        `json:"be_losses"`
	Profit        float64    `json:"profit"`
	WinRate       float64    `json:"win_rate"`
	WinRateWithBE float64    `json:"win_rate_with_be"`
}

// decided reports whether the month saw at least one non-BE decided trade;
// only decided months compete for best/worst.
func (m *MonthStats) decided() bool { return m.Wins+m.Losses > 0 }

// MonthlyReport holds the per-month rollups for one year plus the best and
// worst months by profit. Best/Worst are nil when no month had a decided
// trade.
type MonthlyReport struct {
	Year   int          `json:"year"`
	Months []MonthStats `json:"months"` // January..December
	Best   *MonthStats  `json:"best_month,omitempty"`
	Worst  *MonthStats  `json:"worst_month,omitempty"`
}

// Monthly partitions the year's executed trades by calendar month and rolls
// up counts, win rates and the risk-derived synthetic profit. Trades outside
// the requested year are ignored.
func Monthly(trades []Trade, year int, startingBalance float64, cfg Config) MonthlyReport {
	report := MonthlyReport{Year: year, Months: make([]MonthStats, 12)}
	for i := range report.Months {
		m := time.Month(i + 1)
		report.Months[i].Month = m
		report.Months[i].Label = m.String()
	}

	for i := range trades {
		t := &trades[i]
		if t.TradeDate.Year() != year || !t.Executed {
			continue
		}
		m := &report.Months[int(t.TradeDate.Month())-1]
		switch {
		case t.BreakEven && t.IsWin():
			m.BEWins++
		case t.BreakEven:
			m.BELosses++
		case t.IsWin():
			m.Wins++
		default:
			m.Losses++
		}
		m.Profit += syntheticPnL(t, startingBalance, cfg)
	}

	for i := range report.Months {
		m := &report.Months[i]
		be := m.BEWins + m.BELosses
		m.WinRate = percentage(m.Wins, m.Wins+m.Losses)
		m.WinRateWithBE = percentage(m.Wins, m.Wins+m.Losses+be)
		m.Profit = round2(m.Profit)

		if !m.decided() {
			continue
		}
		if report.Best == nil || m.Profit > report.Best.Profit {
			report.Best = m
		}
		if report.Worst == nil || m.Profit < report.Worst.Profit {
			report.Worst = m
		}
	}
	return report
}
