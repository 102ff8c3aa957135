package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/DragosCt10/trading-tracker-sub007/internal/auth"
	"github.com/DragosCt10/trading-tracker-sub007/internal/database"
	"github.com/DragosCt10/trading-tracker-sub007/internal/stats"
)

// parseTradeFilter builds the repository filter from list query parameters.
func parseTradeFilter(c *gin.Context) (database.TradeFilter, error) {
	var filter database.TradeFilter

	filter.Mode = c.Query("mode")
	filter.Market = c.Query("market")

	if year := c.Query("year"); year != "" {
		y, err := strconv.Atoi(year)
		if err != nil {
			return filter, errors.New("invalid year")
		}
		filter.Year = y
	}
	if from := c.Query("from"); from != "" {
		t, err := parseDate(from)
		if err != nil {
			return filter, errors.New("invalid from date, expected YYYY-MM-DD")
		}
		filter.DateFrom = t
	}
	if to := c.Query("to"); to != "" {
		t, err := parseDate(to)
		if err != nil {
			return filter, errors.New("invalid to date, expected YYYY-MM-DD")
		}
		filter.DateTo = t
	}
	return filter, nil
}

// handleListTrades returns one page of trades for an account.
// GET /api/trades?account_id=...&page=1
func (s *Server) handleListTrades(c *gin.Context) {
	userID := auth.GetUserID(c)

	accountID := c.Query("account_id")
	if accountID == "" {
		errorResponse(c, http.StatusBadRequest, "account_id is required")
		return
	}

	filter, err := parseTradeFilter(c)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	page := 1
	if p := c.Query("page"); p != "" {
		if page, err = strconv.Atoi(p); err != nil || page < 1 {
			errorResponse(c, http.StatusBadRequest, "invalid page")
			return
		}
	}

	trades, total, err := s.db.ListTrades(c.Request.Context(), userID, accountID, filter, page)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list trades")
		errorResponse(c, http.StatusInternalServerError, "failed to list trades")
		return
	}

	successResponse(c, gin.H{
		"trades":    trades,
		"total":     total,
		"page":      page,
		"page_size": database.TradePageSize,
	})
}

// handleGetTrade returns a single trade.
// GET /api/trades/:id
func (s *Server) handleGetTrade(c *gin.Context) {
	userID := auth.GetUserID(c)

	trade, err := s.db.GetTradeByID(c.Request.Context(), userID, c.Param("id"))
	if errors.Is(err, database.ErrNotFound) {
		errorResponse(c, http.StatusNotFound, "trade not found")
		return
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get trade")
		errorResponse(c, http.StatusInternalServerError, "failed to get trade")
		return
	}

	successResponse(c, trade)
}

// validateTrade rejects entries the aggregators cannot attribute.
func validateTrade(t *stats.Trade) error {
	if t.AccountID == "" {
		return errors.New("account_id is required")
	}
	if t.TradeDate.IsZero() {
		return errors.New("trade_date is required")
	}
	if t.Outcome != stats.OutcomeWin && t.Outcome != stats.OutcomeLose {
		return errors.New("trade_outcome must be Win or Lose")
	}
	if t.BEFinalResult != "" && t.BEFinalResult != stats.OutcomeWin && t.BEFinalResult != stats.OutcomeLose {
		return errors.New("be_final_result must be Win, Lose or empty")
	}
	switch t.Mode {
	case "":
		t.Mode = stats.ModeLive
	case stats.ModeLive, stats.ModeDemo, stats.ModeBacktesting:
	default:
		return errors.New("trading_mode must be live, demo or backtesting")
	}
	return nil
}

// handleCreateTrade inserts a journal entry and invalidates cached aggregates.
// POST /api/trades
func (s *Server) handleCreateTrade(c *gin.Context) {
	userID := auth.GetUserID(c)

	var trade stats.Trade
	if err := c.ShouldBindJSON(&trade); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	trade.UserID = userID

	if err := validateTrade(&trade); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	// The account must belong to the caller.
	settings, err := s.db.GetAccountSettings(c.Request.Context(), userID, trade.AccountID)
	if errors.Is(err, database.ErrNotFound) {
		errorResponse(c, http.StatusNotFound, "account not found")
		return
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to check account")
		errorResponse(c, http.StatusInternalServerError, "failed to create trade")
		return
	}

	if err := s.db.CreateTrade(c.Request.Context(), &trade); err != nil {
		s.logger.Error().Err(err).Msg("failed to create trade")
		errorResponse(c, http.StatusInternalServerError, "failed to create trade")
		return
	}

	s.afterTradeWrite(c, userID, settings)
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": trade})
}

// handleUpdateTrade rewrites a journal entry and invalidates cached aggregates.
// PUT /api/trades/:id
func (s *Server) handleUpdateTrade(c *gin.Context) {
	userID := auth.GetUserID(c)

	var trade stats.Trade
	if err := c.ShouldBindJSON(&trade); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	trade.ID = c.Param("id")
	trade.UserID = userID

	if err := validateTrade(&trade); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	settings, err := s.db.GetAccountSettings(c.Request.Context(), userID, trade.AccountID)
	if errors.Is(err, database.ErrNotFound) {
		errorResponse(c, http.StatusNotFound, "account not found")
		return
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to check account")
		errorResponse(c, http.StatusInternalServerError, "failed to update trade")
		return
	}

	err = s.db.UpdateTrade(c.Request.Context(), &trade)
	if errors.Is(err, database.ErrNotFound) {
		errorResponse(c, http.StatusNotFound, "trade not found")
		return
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to update trade")
		errorResponse(c, http.StatusInternalServerError, "failed to update trade")
		return
	}

	s.afterTradeWrite(c, userID, settings)
	successResponse(c, trade)
}

// handleDeleteTrade removes a journal entry and invalidates cached aggregates.
// DELETE /api/trades/:id
func (s *Server) handleDeleteTrade(c *gin.Context) {
	userID := auth.GetUserID(c)

	trade, err := s.db.GetTradeByID(c.Request.Context(), userID, c.Param("id"))
	if errors.Is(err, database.ErrNotFound) {
		errorResponse(c, http.StatusNotFound, "trade not found")
		return
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get trade")
		errorResponse(c, http.StatusInternalServerError, "failed to delete trade")
		return
	}

	if err := s.db.DeleteTrade(c.Request.Context(), userID, trade.ID); err != nil {
		s.logger.Error().Err(err).Msg("failed to delete trade")
		errorResponse(c, http.StatusInternalServerError, "failed to delete trade")
		return
	}

	settings, err := s.db.GetAccountSettings(c.Request.Context(), userID, trade.AccountID)
	if err == nil {
		s.afterTradeWrite(c, userID, settings)
	} else {
		s.statsCache.InvalidateAccount(c.Request.Context(), userID, trade.AccountID)
	}
	successResponse(c, gin.H{"deleted": trade.ID})
}

// afterTradeWrite invalidates the account's cached aggregates and pushes a
// fresh dashboard to the account's websocket subscribers.
func (s *Server) afterTradeWrite(c *gin.Context, userID string, settings *stats.AccountSettings) {
	ctx := c.Request.Context()
	s.statsCache.InvalidateAccount(ctx, userID, settings.ID)

	trades, err := s.db.FetchAllTrades(ctx, userID, settings.ID, database.TradeFilter{Mode: stats.ModeLive})
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to refresh stats after trade write")
		return
	}

	dash := stats.Compute(trades, *settings, s.statsConfig, 0)
	s.hub.BroadcastStats(userID, settings.ID, dash)
}
