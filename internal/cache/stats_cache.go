package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/DragosCt10/trading-tracker-sub007/internal/stats"
)

// Key formats for computed aggregates. Keys are scoped so a write to one
// account never invalidates another.
const (
	prefixDashboard = "stats:user:%s:account:%s:mode:%s:year:%d:dashboard"
	prefixMonthly   = "stats:user:%s:account:%s:mode:%s:year:%d:monthly"
	prefixAccount   = "stats:user:%s:account:%s:*"
)

// DefaultStatsTTL bounds staleness if an invalidation is ever missed.
const DefaultStatsTTL = time.Hour

// DashboardKey builds the cache key for a yearly dashboard aggregate.
func DashboardKey(userID, accountID, mode string, year int) string {
	return fmt.Sprintf(prefixDashboard, userID, accountID, mode, year)
}

// MonthlyKey builds the cache key for a monthly report.
func MonthlyKey(userID, accountID, mode string, year int) string {
	return fmt.Sprintf(prefixMonthly, userID, accountID, mode, year)
}

// AccountPattern matches every cached aggregate for an account.
func AccountPattern(userID, accountID string) string {
	return fmt.Sprintf(prefixAccount, userID, accountID)
}

// StatsCache stores computed dashboards keyed by user, account, trading mode
// and year. A nil StatsCache is a no-op, so callers need no Redis guard.
type StatsCache struct {
	service *CacheService
	ttl     time.Duration
}

// NewStatsCache wraps a CacheService for dashboard aggregates.
func NewStatsCache(service *CacheService, ttl time.Duration) *StatsCache {
	if ttl <= 0 {
		ttl = DefaultStatsTTL
	}
	return &StatsCache{service: service, ttl: ttl}
}

// GetDashboard fetches a cached dashboard. ok is false on miss or degraded
// cache.
func (sc *StatsCache) GetDashboard(ctx context.Context, userID, accountID, mode string, year int) (*stats.Dashboard, bool) {
	if sc == nil || sc.service == nil {
		return nil, false
	}

	var dash stats.Dashboard
	if err := sc.service.GetJSON(ctx, DashboardKey(userID, accountID, mode, year), &dash); err != nil {
		return nil, false
	}
	return &dash, true
}

// SetDashboard stores a computed dashboard. Errors are swallowed; the cache
// is best effort.
func (sc *StatsCache) SetDashboard(ctx context.Context, userID, accountID, mode string, year int, dash *stats.Dashboard) {
	if sc == nil || sc.service == nil || dash == nil {
		return
	}
	_ = sc.service.SetJSON(ctx, DashboardKey(userID, accountID, mode, year), dash, sc.ttl)
}

// GetMonthly fetches a cached monthly report.
func (sc *StatsCache) GetMonthly(ctx context.Context, userID, accountID, mode string, year int) (*stats.MonthlyReport, bool) {
	if sc == nil || sc.service == nil {
		return nil, false
	}

	var report stats.MonthlyReport
	if err := sc.service.GetJSON(ctx, MonthlyKey(userID, accountID, mode, year), &report); err != nil {
		return nil, false
	}
	return &report, true
}

// SetMonthly stores a computed monthly report.
func (sc *StatsCache) SetMonthly(ctx context.Context, userID, accountID, mode string, year int, report *stats.MonthlyReport) {
	if sc == nil || sc.service == nil || report == nil {
		return
	}
	_ = sc.service.SetJSON(ctx, MonthlyKey(userID, accountID, mode, year), report, sc.ttl)
}

// InvalidateAccount drops every cached aggregate for an account. Called after
// any trade or account-settings write.
func (sc *StatsCache) InvalidateAccount(ctx context.Context, userID, accountID string) {
	if sc == nil || sc.service == nil {
		return
	}
	_ = sc.service.DeletePattern(ctx, AccountPattern(userID, accountID))
}
