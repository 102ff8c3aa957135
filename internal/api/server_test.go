package api

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DragosCt10/trading-tracker-sub007/internal/stats"
)

func TestRateLimiterAllowsWithinLimit(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !rl.Allow("/api/trades") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.Allow("/api/trades") {
		t.Error("fourth request should be rejected")
	}
}

func TestRateLimiterIsolatesKeys(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)

	if !rl.Allow("/a") {
		t.Fatal("first request on /a should be allowed")
	}
	if !rl.Allow("/b") {
		t.Error("limit on /a must not affect /b")
	}
}

func TestRateLimiterWindowExpiry(t *testing.T) {
	rl := NewRateLimiter(1, 10*time.Millisecond)

	if !rl.Allow("/a") {
		t.Fatal("first request should be allowed")
	}
	if rl.Allow("/a") {
		t.Fatal("second immediate request should be rejected")
	}

	time.Sleep(20 * time.Millisecond)
	if !rl.Allow("/a") {
		t.Error("request after window expiry should be allowed")
	}
}

func testContext(t *testing.T, url string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", url, nil)
	return c
}

func TestParseStatsQueryYearly(t *testing.T) {
	c := testContext(t, "/api/stats/dashboard?account_id=acc1&year=2025&market=EURUSD")

	q, err := parseStatsQuery(c)
	if err != nil {
		t.Fatalf("parseStatsQuery: %v", err)
	}
	if q.AccountID != "acc1" {
		t.Errorf("account = %q", q.AccountID)
	}
	if q.Mode != stats.ModeLive {
		t.Errorf("mode = %q, want live default", q.Mode)
	}
	if q.Filter.Mode != stats.ViewYearly || q.Filter.Year != 2025 {
		t.Errorf("filter = %+v", q.Filter)
	}
	if q.Filter.Market != "EURUSD" {
		t.Errorf("market = %q", q.Filter.Market)
	}
}

func TestParseStatsQueryRange(t *testing.T) {
	c := testContext(t, "/api/stats/dashboard?account_id=a&view=range&from=2025-01-01&to=2025-03-31&execution=executed")

	q, err := parseStatsQuery(c)
	if err != nil {
		t.Fatalf("parseStatsQuery: %v", err)
	}
	if q.Filter.Mode != stats.ViewDateRange {
		t.Errorf("view = %q", q.Filter.Mode)
	}
	if q.Filter.From.IsZero() || q.Filter.To.IsZero() {
		t.Error("range bounds should be set")
	}
	if q.Filter.Execution != stats.ExecutionExecuted {
		t.Errorf("execution = %q", q.Filter.Execution)
	}
}

func TestParseStatsQueryErrors(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"missing account", "/x?year=2025"},
		{"bad mode", "/x?account_id=a&mode=paper"},
		{"bad view", "/x?account_id=a&view=weekly"},
		{"bad year", "/x?account_id=a&year=twenty"},
		{"bad from", "/x?account_id=a&view=range&from=01-01-2025"},
		{"bad execution", "/x?account_id=a&execution=virtual"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseStatsQuery(testContext(t, tt.url)); err == nil {
				t.Errorf("expected error for %s", tt.url)
			}
		})
	}
}

func TestValidateTradeDefaultsMode(t *testing.T) {
	trade := stats.Trade{
		AccountID: "acc",
		TradeDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Outcome:   stats.OutcomeWin,
	}
	if err := validateTrade(&trade); err != nil {
		t.Fatalf("validateTrade: %v", err)
	}
	if trade.Mode != stats.ModeLive {
		t.Errorf("mode = %q, want live default", trade.Mode)
	}
}

func TestValidateTradeRejectsBadOutcome(t *testing.T) {
	trade := stats.Trade{
		AccountID: "acc",
		TradeDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Outcome:   "Breakeven",
	}
	if err := validateTrade(&trade); err == nil {
		t.Error("expected error for unknown outcome")
	}
}
