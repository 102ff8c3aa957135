package stats

import "time"

// ViewMode selects the dashboard's time window.
type ViewMode string

const (
	ViewYearly    ViewMode = "yearly"
	ViewDateRange ViewMode = "range"
)

// ExecutionFilter narrows the trade set by execution status. Planned trades
// are journal entries that were never taken.
type ExecutionFilter string

const (
	ExecutionAll      ExecutionFilter = "all"
	ExecutionExecuted ExecutionFilter = "executed"
	ExecutionPlanned  ExecutionFilter = "planned"
)

// Filter combines the three independent dashboard dimensions: view mode,
// market filter and execution filter.
type Filter struct {
	Mode      ViewMode        `json:"mode"`
	Year      int             `json:"year"`
	From      time.Time       `json:"from"`
	To        time.Time       `json:"to"`
	Market    string          `json:"market"` // "" means all markets
	Execution ExecutionFilter `json:"execution"`
}

// NeedsRecompute decides whether cached aggregate stats can be reused. In
// yearly mode only the market filter forces a recompute; execution filtering
// does not apply there. In date-range mode either filter forces one.
func (f Filter) NeedsRecompute() bool {
	if f.Mode == ViewYearly {
		return f.Market != ""
	}
	return f.Market != "" || (f.Execution != "" && f.Execution != ExecutionAll)
}

// Apply returns the subset of trades matching the filter. The input slice is
// never modified.
func (f Filter) Apply(trades []Trade) []Trade {
	out := make([]Trade, 0, len(trades))
	for _, t := range trades {
		if !f.matchWindow(&t) || !f.matchMarket(&t) || !f.matchExecution(&t) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func (f Filter) matchWindow(t *Trade) bool {
	switch f.Mode {
	case ViewDateRange:
		if !f.From.IsZero() && t.TradeDate.Before(f.From) {
			return false
		}
		if !f.To.IsZero() && t.TradeDate.After(f.To) {
			return false
		}
		return true
	default:
		return f.Year == 0 || t.TradeDate.Year() == f.Year
	}
}

func (f Filter) matchMarket(t *Trade) bool {
	return f.Market == "" || t.Market == f.Market
}

func (f Filter) matchExecution(t *Trade) bool {
	// Execution filtering only applies in date-range mode.
	if f.Mode == ViewYearly {
		return true
	}
	switch f.Execution {
	case ExecutionExecuted:
		return t.Executed
	case ExecutionPlanned:
		return !t.Executed
	default:
		return true
	}
}

// Dashboard is the full aggregate the dashboards render: every metric group
// computed over one trade subset.
type Dashboard struct {
	Basic BasicStats `json:"basic"`

	ByMarket            []BucketStats `json:"by_market"`
	BySetup             []BucketStats `json:"by_setup"`
	ByLiquidity         []BucketStats `json:"by_liquidity"`
	ByDirection         []BucketStats `json:"by_direction"`
	ByDay               []BucketStats `json:"by_day"`
	ByMSS               []BucketStats `json:"by_mss"`
	ByNewsEvent         []BucketStats `json:"by_news_event"`
	ByLocalHighLow      []BucketStats `json:"by_local_high_low"`
	ByRiskBucket        []BucketStats `json:"by_risk_bucket"`
	ByTimeInterval      []BucketStats `json:"by_time_interval"`
	BySLSizeRange       []BucketStats `json:"by_sl_size_range"`
	ByDisplacementRange []BucketStats `json:"by_displacement_range"`
	ByGrade             []GradeStats  `json:"by_grade"`

	AvgSLSizeByMarket       []MarketAverage `json:"avg_sl_size_by_market"`
	AvgDisplacementByMarket []MarketAverage `json:"avg_displacement_by_market"`

	Streaks              StreakStats `json:"streaks"`
	AvgDaysBetweenTrades float64     `json:"avg_days_between_trades"`
	MaxDrawdown          float64     `json:"max_drawdown"`

	ProfitFactor           float64 `json:"profit_factor"`
	ConsistencyScore       float64 `json:"consistency_score"`
	ConsistencyScoreWithBE float64 `json:"consistency_score_with_be"`
	SharpeRatio            float64 `json:"sharpe_ratio"`
	TradeQualityIndex      float64 `json:"trade_quality_index"`
	RMultipleTotal         float64 `json:"r_multiple_total"`

	Monthly MonthlyReport `json:"monthly"`
}

// Compute runs every aggregator over the given trade subset. The monthly
// rollup uses year; pass 0 to roll up the year of the latest trade.
func Compute(trades []Trade, settings AccountSettings, cfg Config, year int) *Dashboard {
	if year == 0 {
		for i := range trades {
			if y := trades[i].TradeDate.Year(); y > year {
				year = y
			}
		}
	}
	balance := settings.AccountBalance

	return &Dashboard{
		Basic: Basic(trades),

		ByMarket:            ByMarket(trades),
		BySetup:             BySetup(trades),
		ByLiquidity:         ByLiquidity(trades),
		ByDirection:         ByDirection(trades),
		ByDay:               ByDay(trades),
		ByMSS:               ByMSS(trades),
		ByNewsEvent:         ByNewsEvent(trades),
		ByLocalHighLow:      ByLocalHighLow(trades),
		ByRiskBucket:        ByRiskBucket(trades, cfg),
		ByTimeInterval:      ByTimeInterval(trades, cfg),
		BySLSizeRange:       BySLSizeRange(trades, cfg),
		ByDisplacementRange: ByDisplacementRange(trades, cfg),
		ByGrade:             ByGrade(trades, cfg),

		AvgSLSizeByMarket:       AverageSLSizeByMarket(trades),
		AvgDisplacementByMarket: AverageDisplacementByMarket(trades),

		Streaks:              Streaks(trades, StreakOptions{}),
		AvgDaysBetweenTrades: AverageDaysBetweenTrades(trades),
		MaxDrawdown:          MaxDrawdown(trades, balance, cfg),

		ProfitFactor:           ProfitFactor(trades, balance, cfg),
		ConsistencyScore:       ConsistencyScore(trades),
		ConsistencyScoreWithBE: ConsistencyScoreWithBE(trades, balance, cfg),
		SharpeRatio:            SharpeRatio(trades, cfg),
		TradeQualityIndex:      TradeQualityIndex(trades, cfg),
		RMultipleTotal:         RMultipleTotal(trades, cfg),

		Monthly: Monthly(trades, year, balance, cfg),
	}
}

// Select returns cached aggregate stats when the filter allows reuse,
// otherwise recomputes every metric group from the filtered subset.
func Select(cached *Dashboard, trades []Trade, f Filter, settings AccountSettings, cfg Config) *Dashboard {
	if cached != nil && !f.NeedsRecompute() {
		return cached
	}
	return Compute(f.Apply(trades), settings, cfg, f.Year)
}
