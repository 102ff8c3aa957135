package stats

import (
	"time"
)

// Test fixtures shared across the package tests.

func day(d int) time.Time {
	return time.Date(2024, time.March, d, 0, 0, 0, 0, time.UTC)
}

func f64(v float64) *float64 { return &v }

type tradeSpec struct {
	outcome   Outcome
	breakEven bool
	beResult  Outcome
	partials  bool
	market    string
	date      time.Time
	tradeTime string
	risk      *float64
	rr        *float64
	executed  bool
}

func mkTrade(s tradeSpec) Trade {
	date := s.date
	if date.IsZero() {
		date = day(1)
	}
	market := s.market
	if market == "" {
		market = "EURUSD"
	}
	return Trade{
		ID:            "t",
		Market:        market,
		Direction:     DirectionLong,
		TradeDate:     date,
		TradeTime:     s.tradeTime,
		Outcome:       s.outcome,
		BreakEven:     s.breakEven,
		BEFinalResult: s.beResult,
		PartialsTaken: s.partials,
		Executed:      s.executed,
		RiskPerTrade:  s.risk,
		RiskReward:    s.rr,
	}
}

func win() Trade {
	return mkTrade(tradeSpec{outcome: OutcomeWin, executed: true})
}

func loss() Trade {
	return mkTrade(tradeSpec{outcome: OutcomeLose, executed: true})
}

func breakEven() Trade {
	return mkTrade(tradeSpec{outcome: OutcomeWin, breakEven: true, executed: true})
}
