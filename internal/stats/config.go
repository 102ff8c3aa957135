package stats

import "fmt"

// Range is a half-open numeric bucket [Min, Max). Open marks an unbounded
// upper range.
type Range struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Open  bool    `json:"open"` // no upper bound
	Label string  `json:"label"`
}

// Contains reports whether v falls inside the range.
func (r Range) Contains(v float64) bool {
	if v < r.Min {
		return false
	}
	return r.Open || v < r.Max
}

// Interval is a time-of-day bucket [Start, End) in "HH:MM" form.
type Interval struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Label string `json:"label"`
}

// Contains reports whether the "HH:MM" timestamp falls inside the interval.
func (iv Interval) Contains(hhmm string) bool {
	return hhmm >= iv.Start && hhmm < iv.End
}

// Config carries the defaults and bucket edges the aggregators depend on.
// It is passed explicitly so tests can exercise different default regimes.
type Config struct {
	// DefaultRiskPercent substitutes a missing risk_per_trade, as percent of
	// account balance.
	DefaultRiskPercent float64 `json:"default_risk_percent"`
	// DefaultRiskReward substitutes a missing risk_reward_ratio.
	DefaultRiskReward float64 `json:"default_risk_reward"`

	// RiskBuckets partition risk_per_trade for the risk breakdown.
	RiskBuckets []Range `json:"risk_buckets"`
	// SLSizeRanges partition sl_size for the stop-loss breakdown.
	SLSizeRanges []Range `json:"sl_size_ranges"`
	// DisplacementRanges partition displacement_size.
	DisplacementRanges []Range `json:"displacement_ranges"`
	// TimeIntervals partition trade_time for the session breakdown.
	TimeIntervals []Interval `json:"time_intervals"`
	// GradePriority fixes the output order of evaluation grades; trades whose
	// grade is not listed are dropped from the evaluation breakdown.
	GradePriority []string `json:"grade_priority"`
}

// DefaultConfig returns the dashboard's stock configuration.
func DefaultConfig() Config {
	return Config{
		DefaultRiskPercent: 0.5,
		DefaultRiskReward:  2,
		RiskBuckets: []Range{
			{Min: 0, Max: 0.25, Label: "0-0.25%"},
			{Min: 0.25, Max: 0.5, Label: "0.25-0.5%"},
			{Min: 0.5, Max: 1, Label: "0.5-1%"},
			{Min: 1, Open: true, Label: "1%+"},
		},
		SLSizeRanges: []Range{
			{Min: 0, Max: 10, Label: "0-10"},
			{Min: 10, Max: 20, Label: "10-20"},
			{Min: 20, Max: 30, Label: "20-30"},
			{Min: 30, Max: 40, Label: "30-40"},
			{Min: 40, Open: true, Label: "40+"},
		},
		DisplacementRanges: []Range{
			{Min: 0, Max: 10, Label: "0-10"},
			{Min: 10, Max: 20, Label: "10-20"},
			{Min: 20, Max: 30, Label: "20-30"},
			{Min: 30, Max: 40, Label: "30-40"},
			{Min: 40, Open: true, Label: "40+"},
		},
		TimeIntervals: []Interval{
			{Start: "00:00", End: "08:00", Label: "00:00-08:00"},
			{Start: "08:00", End: "12:00", Label: "08:00-12:00"},
			{Start: "12:00", End: "16:00", Label: "12:00-16:00"},
			{Start: "16:00", End: "20:00", Label: "16:00-20:00"},
			{Start: "20:00", End: "24:00", Label: "20:00-24:00"},
		},
		GradePriority: []string{"A+", "A", "B", "C"},
	}
}

// Validate checks the configuration is usable by the aggregators.
func (c Config) Validate() error {
	if c.DefaultRiskPercent < 0 {
		return fmt.Errorf("default risk percent must be >= 0, got %v", c.DefaultRiskPercent)
	}
	if c.DefaultRiskReward < 0 {
		return fmt.Errorf("default risk reward must be >= 0, got %v", c.DefaultRiskReward)
	}
	if len(c.GradePriority) == 0 {
		return fmt.Errorf("grade priority list cannot be empty")
	}
	return nil
}
