package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DragosCt10/trading-tracker-sub007/internal/auth"
	"github.com/DragosCt10/trading-tracker-sub007/internal/database"
	"github.com/DragosCt10/trading-tracker-sub007/internal/stats"
)

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// statsQuery is the parsed form of the dashboard query parameters.
type statsQuery struct {
	AccountID string
	Mode      string
	Filter    stats.Filter
}

// parseStatsQuery reads the dashboard dimensions from the request: account,
// trading mode, view mode with its window, market and execution filters.
func parseStatsQuery(c *gin.Context) (statsQuery, error) {
	var q statsQuery

	q.AccountID = c.Query("account_id")
	if q.AccountID == "" {
		return q, errors.New("account_id is required")
	}

	q.Mode = c.DefaultQuery("mode", stats.ModeLive)
	switch q.Mode {
	case stats.ModeLive, stats.ModeDemo, stats.ModeBacktesting:
	default:
		return q, errors.New("mode must be live, demo or backtesting")
	}

	switch c.DefaultQuery("view", string(stats.ViewYearly)) {
	case string(stats.ViewYearly):
		q.Filter.Mode = stats.ViewYearly
		if year := c.Query("year"); year != "" {
			y, err := strconv.Atoi(year)
			if err != nil {
				return q, errors.New("invalid year")
			}
			q.Filter.Year = y
		}
	case string(stats.ViewDateRange):
		q.Filter.Mode = stats.ViewDateRange
		if from := c.Query("from"); from != "" {
			t, err := parseDate(from)
			if err != nil {
				return q, errors.New("invalid from date, expected YYYY-MM-DD")
			}
			q.Filter.From = t
		}
		if to := c.Query("to"); to != "" {
			t, err := parseDate(to)
			if err != nil {
				return q, errors.New("invalid to date, expected YYYY-MM-DD")
			}
			q.Filter.To = t
		}
	default:
		return q, errors.New("view must be yearly or range")
	}

	q.Filter.Market = c.Query("market")

	switch ex := c.Query("execution"); ex {
	case "", string(stats.ExecutionAll):
		q.Filter.Execution = stats.ExecutionAll
	case string(stats.ExecutionExecuted):
		q.Filter.Execution = stats.ExecutionExecuted
	case string(stats.ExecutionPlanned):
		q.Filter.Execution = stats.ExecutionPlanned
	default:
		return q, errors.New("execution must be all, executed or planned")
	}

	return q, nil
}

// loadAccount fetches the caller's account or writes the error response.
func (s *Server) loadAccount(c *gin.Context, userID, accountID string) (*stats.AccountSettings, bool) {
	settings, err := s.db.GetAccountSettings(c.Request.Context(), userID, accountID)
	if errors.Is(err, database.ErrNotFound) {
		errorResponse(c, http.StatusNotFound, "account not found")
		return nil, false
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get account")
		errorResponse(c, http.StatusInternalServerError, "failed to load account")
		return nil, false
	}
	return settings, true
}

// handleDashboard returns the full aggregate for the requested window. The
// unfiltered yearly baseline is cached; a market or execution filter forces a
// recompute over the filtered subset.
// GET /api/stats/dashboard
func (s *Server) handleDashboard(c *gin.Context) {
	userID := auth.GetUserID(c)

	q, err := parseStatsQuery(c)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	settings, ok := s.loadAccount(c, userID, q.AccountID)
	if !ok {
		return
	}

	ctx := c.Request.Context()

	var cached *stats.Dashboard
	cacheable := q.Filter.Mode == stats.ViewYearly
	if cacheable {
		if hit, ok := s.statsCache.GetDashboard(ctx, userID, q.AccountID, q.Mode, q.Filter.Year); ok {
			cached = hit
		}
	}

	var trades []stats.Trade
	if cached == nil || q.Filter.NeedsRecompute() {
		trades, err = s.db.FetchAllTrades(ctx, userID, q.AccountID, database.TradeFilter{Mode: q.Mode})
		if err != nil {
			s.logger.Error().Err(err).Msg("failed to fetch trades")
			errorResponse(c, http.StatusInternalServerError, "failed to compute stats")
			return
		}
	}

	dash := stats.Select(cached, trades, q.Filter, *settings, s.statsConfig)

	if cacheable && cached == nil && !q.Filter.NeedsRecompute() {
		s.statsCache.SetDashboard(ctx, userID, q.AccountID, q.Mode, q.Filter.Year, dash)
	}

	successResponse(c, dash)
}

// handleMonthly returns the month-by-month rollup for a year.
// GET /api/stats/monthly
func (s *Server) handleMonthly(c *gin.Context) {
	userID := auth.GetUserID(c)

	accountID := c.Query("account_id")
	if accountID == "" {
		errorResponse(c, http.StatusBadRequest, "account_id is required")
		return
	}

	mode := c.DefaultQuery("mode", stats.ModeLive)
	year := time.Now().Year()
	if ys := c.Query("year"); ys != "" {
		y, err := strconv.Atoi(ys)
		if err != nil {
			errorResponse(c, http.StatusBadRequest, "invalid year")
			return
		}
		year = y
	}

	settings, ok := s.loadAccount(c, userID, accountID)
	if !ok {
		return
	}

	ctx := c.Request.Context()

	if report, ok := s.statsCache.GetMonthly(ctx, userID, accountID, mode, year); ok {
		successResponse(c, report)
		return
	}

	trades, err := s.db.FetchAllTrades(ctx, userID, accountID, database.TradeFilter{Mode: mode, Year: year})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to fetch trades")
		errorResponse(c, http.StatusInternalServerError, "failed to compute monthly stats")
		return
	}

	report := stats.Monthly(trades, year, settings.AccountBalance, s.statsConfig)
	s.statsCache.SetMonthly(ctx, userID, accountID, mode, year, &report)

	successResponse(c, report)
}

// handleTradeYears returns the years that have journal entries.
// GET /api/stats/years
func (s *Server) handleTradeYears(c *gin.Context) {
	userID := auth.GetUserID(c)

	accountID := c.Query("account_id")
	if accountID == "" {
		errorResponse(c, http.StatusBadRequest, "account_id is required")
		return
	}

	years, err := s.db.TradeYears(c.Request.Context(), userID, accountID)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list years")
		errorResponse(c, http.StatusInternalServerError, "failed to list years")
		return
	}

	successResponse(c, years)
}
