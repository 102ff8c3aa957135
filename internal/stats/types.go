// Package stats computes trading-journal performance metrics: win rates,
// categorical breakdowns, streaks, drawdown, profit factor, consistency,
// Sharpe ratio, trade quality index and monthly rollups. Every function is a
// pure aggregation over a snapshot of trades; nothing here mutates its input.
package stats

import (
	"sort"
	"time"
)

// Outcome is the recorded close result of a trade.
type Outcome string

const (
	OutcomeWin  Outcome = "Win"
	OutcomeLose Outcome = "Lose"
)

// Direction of a trade.
const (
	DirectionLong  = "Long"
	DirectionShort = "Short"
)

// TradingMode distinguishes journal entries by account type.
const (
	ModeLive        = "live"
	ModeDemo        = "demo"
	ModeBacktesting = "backtesting"
)

// Trade is a single journal entry. Outcome is always Win or Lose; BreakEven is
// an orthogonal modifier. When BreakEven is set and BEFinalResult is non-empty,
// BEFinalResult is authoritative for win/lose attribution.
type Trade struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	AccountID string `json:"account_id"`
	Mode      string `json:"trading_mode"`

	TradeDate time.Time `json:"trade_date"`
	TradeTime string    `json:"trade_time"` // "HH:MM", used for same-day ordering and interval buckets
	DayOfWeek string    `json:"day_of_week"`

	Market          string `json:"market"`
	SetupType       string `json:"setup_type"`
	Liquidity       string `json:"liquidity"`
	Direction       string `json:"direction"`
	MSS             string `json:"mss"`
	EvaluationGrade string `json:"evaluation_grade"`
	NewsRelated     bool   `json:"news_related"`
	NewsName        string `json:"news_name"`
	NewsIntensity   string `json:"news_intensity"`
	LocalHighLow    bool   `json:"local_high_low"`

	Outcome       Outcome `json:"trade_outcome"`
	BreakEven     bool    `json:"break_even"`
	BEFinalResult Outcome `json:"be_final_result,omitempty"`
	Reentry       bool    `json:"reentry"`
	PartialsTaken bool    `json:"partials_taken"`
	Executed      bool    `json:"executed"`
	LaunchHour    int     `json:"launch_hour"`

	RiskPerTrade     *float64 `json:"risk_per_trade"`    // percent of account, nil -> Config default
	RiskReward       *float64 `json:"risk_reward_ratio"` // planned R multiple, nil -> Config default
	SLSize           *float64 `json:"sl_size"`
	DisplacementSize *float64 `json:"displacement_size"`

	CalculatedProfit float64 `json:"calculated_profit"`
	PnLPercentage    float64 `json:"pnl_percentage"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FinalOutcome resolves the authoritative win/lose attribution: for a
// break-even trade with a recorded final result that result wins, otherwise
// the original close outcome is used.
func (t *Trade) FinalOutcome() Outcome {
	if t.BreakEven && t.BEFinalResult != "" {
		return t.BEFinalResult
	}
	return t.Outcome
}

// IsWin reports whether the trade resolved to a win under FinalOutcome.
func (t *Trade) IsWin() bool { return t.FinalOutcome() == OutcomeWin }

// RiskPercent returns the percent of account risked, applying the configured
// default when the field is absent.
func (t *Trade) RiskPercent(cfg Config) float64 {
	if t.RiskPerTrade != nil {
		return *t.RiskPerTrade
	}
	return cfg.DefaultRiskPercent
}

// RewardRatio returns the planned R multiple, applying the configured default
// when the field is absent.
func (t *Trade) RewardRatio(cfg Config) float64 {
	if t.RiskReward != nil {
		return *t.RiskReward
	}
	return cfg.DefaultRiskReward
}

// AccountSettings is the read-only account context required by profit-bearing
// aggregators.
type AccountSettings struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Name           string    `json:"name"`
	AccountBalance float64   `json:"account_balance"`
	Currency       string    `json:"currency"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// chronoLess orders trades chronologically, using time-of-day to break
// same-day ties. TradeTime is "HH:MM" so plain string comparison is enough.
func chronoLess(a, b *Trade) bool {
	if !a.TradeDate.Equal(b.TradeDate) {
		return a.TradeDate.Before(b.TradeDate)
	}
	return a.TradeTime < b.TradeTime
}

// sortedByDate returns a copy of trades in ascending chronological order.
// Aggregators must never reorder the caller's slice.
func sortedByDate(trades []Trade) []Trade {
	out := make([]Trade, len(trades))
	copy(out, trades)
	sort.SliceStable(out, func(i, j int) bool {
		return chronoLess(&out[i], &out[j])
	})
	return out
}
