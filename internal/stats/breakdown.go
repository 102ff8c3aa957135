package stats

import (
	"math"
	"sort"
)

// UnknownBucket is the fallback bucket for trades missing a grouping key.
// Trades are never silently dropped by a categorical breakdown.
const UnknownBucket = "Unknown"

// NotEvaluated is the fallback grade for trades without an evaluation grade.
const NotEvaluated = "Not Evaluated"

// BucketStats is one group of a categorical breakdown.
type BucketStats struct {
	Key           string  `json:"key"`
	Total         int     `json:"total"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	BEWins        int     `json:"be_wins"`
	BELosses      int     `json:"be_losses"`
	WinRate       float64 `json:"win_rate"`
	WinRateWithBE float64 `json:"win_rate_with_be"`
}

// keyFunc extracts the grouping key for a trade. Return "" to map the trade
// into the fallback bucket, or skip=true to exclude it from the breakdown.
type keyFunc func(*Trade) (key string, skip bool)

// breakdown partitions trades by key and tallies each bucket. Output is
// sorted by key; use orderedBreakdown for a fixed order.
func breakdown(trades []Trade, key keyFunc) []BucketStats {
	buckets := groupTally(trades, key)
	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]BucketStats, 0, len(keys))
	for _, k := range keys {
		out = append(out, *buckets[k])
	}
	return out
}

// orderedBreakdown is breakdown with a fixed output order. Buckets not named
// in order are dropped when dropUnlisted is set, otherwise appended sorted.
func orderedBreakdown(trades []Trade, key keyFunc, order []string, dropUnlisted bool) []BucketStats {
	buckets := groupTally(trades, key)

	out := make([]BucketStats, 0, len(buckets))
	listed := make(map[string]bool, len(order))
	for _, k := range order {
		listed[k] = true
		if b, ok := buckets[k]; ok {
			out = append(out, *b)
		}
	}
	if dropUnlisted {
		return out
	}

	rest := make([]string, 0)
	for k := range buckets {
		if !listed[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	for _, k := range rest {
		out = append(out, *buckets[k])
	}
	return out
}

func groupTally(trades []Trade, key keyFunc) map[string]*BucketStats {
	buckets := make(map[string]*BucketStats)
	for i := range trades {
		t := &trades[i]
		k, skip := key(t)
		if skip {
			continue
		}
		if k == "" {
			k = UnknownBucket
		}
		b, ok := buckets[k]
		if !ok {
			b = &BucketStats{Key: k}
			buckets[k] = b
		}
		b.Total++
		switch {
		case t.BreakEven && t.IsWin():
			b.BEWins++
		case t.BreakEven:
			b.BELosses++
		case t.IsWin():
			b.Wins++
		default:
			b.Losses++
		}
	}
	for _, b := range buckets {
		b.WinRate = percentage(b.Wins, b.Wins+b.Losses)
		b.WinRateWithBE = percentage(b.Wins, b.Total)
	}
	return buckets
}

// ByMarket breaks trades down by market symbol.
func ByMarket(trades []Trade) []BucketStats {
	return breakdown(trades, func(t *Trade) (string, bool) { return t.Market, false })
}

// BySetup breaks trades down by setup type.
func BySetup(trades []Trade) []BucketStats {
	return breakdown(trades, func(t *Trade) (string, bool) { return t.SetupType, false })
}

// ByLiquidity breaks trades down by the liquidity taken.
func ByLiquidity(trades []Trade) []BucketStats {
	return breakdown(trades, func(t *Trade) (string, bool) { return t.Liquidity, false })
}

// ByDirection breaks trades down by Long/Short.
func ByDirection(trades []Trade) []BucketStats {
	return orderedBreakdown(trades, func(t *Trade) (string, bool) {
		return t.Direction, false
	}, []string{DirectionLong, DirectionShort}, false)
}

// ByMSS breaks trades down by market structure shift type.
func ByMSS(trades []Trade) []BucketStats {
	return breakdown(trades, func(t *Trade) (string, bool) { return t.MSS, false })
}

// weekdays fixes the output order of the day-of-week breakdown.
var weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// ByDay breaks trades down by day of week, Monday first.
func ByDay(trades []Trade) []BucketStats {
	return orderedBreakdown(trades, func(t *Trade) (string, bool) {
		if t.DayOfWeek != "" {
			return t.DayOfWeek, false
		}
		return t.TradeDate.Weekday().String(), false
	}, weekdays, false)
}

// ByNewsEvent breaks news-related trades down by event name. Trades without
// the news flag are excluded; a flagged trade without a name falls into the
// Unknown bucket.
func ByNewsEvent(trades []Trade) []BucketStats {
	return breakdown(trades, func(t *Trade) (string, bool) {
		if !t.NewsRelated {
			return "", true
		}
		return t.NewsName, false
	})
}

// ByLocalHighLow splits trades by whether they targeted a local high/low.
func ByLocalHighLow(trades []Trade) []BucketStats {
	return orderedBreakdown(trades, func(t *Trade) (string, bool) {
		if t.LocalHighLow {
			return "Local High/Low", false
		}
		return "No Local High/Low", false
	}, []string{"Local High/Low", "No Local High/Low"}, false)
}

// ByRiskBucket breaks trades down by risked percent, using the configured
// bucket edges and the default risk for trades missing the field.
func ByRiskBucket(trades []Trade, cfg Config) []BucketStats {
	order := make([]string, 0, len(cfg.RiskBuckets))
	for _, r := range cfg.RiskBuckets {
		order = append(order, r.Label)
	}
	return orderedBreakdown(trades, func(t *Trade) (string, bool) {
		return rangeLabel(cfg.RiskBuckets, t.RiskPercent(cfg)), false
	}, order, false)
}

// ByTimeInterval breaks trades down by entry-time session bucket.
func ByTimeInterval(trades []Trade, cfg Config) []BucketStats {
	order := make([]string, 0, len(cfg.TimeIntervals))
	for _, iv := range cfg.TimeIntervals {
		order = append(order, iv.Label)
	}
	return orderedBreakdown(trades, func(t *Trade) (string, bool) {
		for _, iv := range cfg.TimeIntervals {
			if t.TradeTime != "" && iv.Contains(t.TradeTime) {
				return iv.Label, false
			}
		}
		return "", false
	}, order, false)
}

// BySLSizeRange breaks trades down by stop-loss size range. Trades without a
// recorded SL size fall into the Unknown bucket.
func BySLSizeRange(trades []Trade, cfg Config) []BucketStats {
	order := make([]string, 0, len(cfg.SLSizeRanges))
	for _, r := range cfg.SLSizeRanges {
		order = append(order, r.Label)
	}
	return orderedBreakdown(trades, func(t *Trade) (string, bool) {
		if t.SLSize == nil {
			return "", false
		}
		return rangeLabel(cfg.SLSizeRanges, *t.SLSize), false
	}, order, false)
}

// ByDisplacementRange breaks trades down by displacement size range.
func ByDisplacementRange(trades []Trade, cfg Config) []BucketStats {
	order := make([]string, 0, len(cfg.DisplacementRanges))
	for _, r := range cfg.DisplacementRanges {
		order = append(order, r.Label)
	}
	return orderedBreakdown(trades, func(t *Trade) (string, bool) {
		if t.DisplacementSize == nil {
			return "", false
		}
		return rangeLabel(cfg.DisplacementRanges, *t.DisplacementSize), false
	}, order, false)
}

func rangeLabel(ranges []Range, v float64) string {
	for _, r := range ranges {
		if r.Contains(v) {
			return r.Label
		}
	}
	return UnknownBucket
}

// GradeStats is one evaluation-grade bucket. Break-evens are a single count
// here rather than a win/loss split; evaluation grading treats BE as one
// outcome bucket.
type GradeStats struct {
	Grade         string  `json:"grade"`
	Total         int     `json:"total"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	BreakEvens    int     `json:"break_evens"`
	WinRate       float64 `json:"win_rate"`
	WinRateWithBE float64 `json:"win_rate_with_be"`
}

// ByGrade breaks trades down by evaluation grade in the configured priority
// order. Grades outside the priority list are dropped from the output;
// ungraded trades map to NotEvaluated, which is likewise dropped unless the
// caller lists it.
func ByGrade(trades []Trade, cfg Config) []GradeStats {
	buckets := make(map[string]*GradeStats)
	for i := range trades {
		t := &trades[i]
		grade := t.EvaluationGrade
		if grade == "" {
			grade = NotEvaluated
		}
		g, ok := buckets[grade]
		if !ok {
			g = &GradeStats{Grade: grade}
			buckets[grade] = g
		}
		g.Total++
		switch {
		case t.BreakEven:
			g.BreakEvens++
		case t.IsWin():
			g.Wins++
		default:
			g.Losses++
		}
	}

	out := make([]GradeStats, 0, len(cfg.GradePriority))
	for _, grade := range cfg.GradePriority {
		g, ok := buckets[grade]
		if !ok {
			continue
		}
		g.WinRate = percentage(g.Wins, g.Wins+g.Losses)
		g.WinRateWithBE = percentage(g.Wins, g.Total)
		out = append(out, *g)
	}
	return out
}

// MarketAverage is the mean of a numeric trade attribute for one market.
type MarketAverage struct {
	Market  string  `json:"market"`
	Average float64 `json:"average"`
}

// AverageSLSizeByMarket returns the mean stop-loss size per market, rounded
// to 2 decimals. Markets with no recorded SL sizes are omitted.
func AverageSLSizeByMarket(trades []Trade) []MarketAverage {
	return averageByMarket(trades, func(t *Trade) *float64 { return t.SLSize })
}

// AverageDisplacementByMarket returns the mean displacement size per market,
// rounded to 2 decimals. Markets with no recorded sizes are omitted.
func AverageDisplacementByMarket(trades []Trade) []MarketAverage {
	return averageByMarket(trades, func(t *Trade) *float64 { return t.DisplacementSize })
}

func averageByMarket(trades []Trade, attr func(*Trade) *float64) []MarketAverage {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for i := range trades {
		t := &trades[i]
		v := attr(t)
		if v == nil {
			continue
		}
		market := t.Market
		if market == "" {
			market = UnknownBucket
		}
		sums[market] += *v
		counts[market]++
	}

	markets := make([]string, 0, len(sums))
	for m := range sums {
		markets = append(markets, m)
	}
	sort.Strings(markets)

	out := make([]MarketAverage, 0, len(markets))
	for _, m := range markets {
		out = append(out, MarketAverage{
			Market:  m,
			Average: round2(sums[m] / float64(counts[m])),
		})
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
