package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DragosCt10/trading-tracker-sub007/internal/auth"
	"github.com/DragosCt10/trading-tracker-sub007/internal/database"
)

type accountRequest struct {
	Name           string  `json:"name" binding:"required,min=1,max=100"`
	AccountBalance float64 `json:"account_balance" binding:"gte=0"`
	Currency       string  `json:"currency"`
}

// handleListAccounts returns the caller's trading accounts.
// GET /api/account-settings
func (s *Server) handleListAccounts(c *gin.Context) {
	userID := auth.GetUserID(c)

	accounts, err := s.db.ListAccountSettings(c.Request.Context(), userID)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list accounts")
		errorResponse(c, http.StatusInternalServerError, "failed to list accounts")
		return
	}

	successResponse(c, accounts)
}

// handleCreateAccount creates a trading account.
// POST /api/account-settings
func (s *Server) handleCreateAccount(c *gin.Context) {
	userID := auth.GetUserID(c)

	var req accountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.Currency == "" {
		req.Currency = "EUR"
	}

	account, err := s.db.CreateAccountSettings(c.Request.Context(), userID, req.Name, req.AccountBalance, req.Currency)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create account")
		errorResponse(c, http.StatusInternalServerError, "failed to create account")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": account})
}

// handleUpdateAccount updates a trading account. Balance changes shift the
// synthetic profit scale, so cached aggregates are invalidated.
// PUT /api/account-settings/:id
func (s *Server) handleUpdateAccount(c *gin.Context) {
	userID := auth.GetUserID(c)
	accountID := c.Param("id")

	var req accountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	account, err := s.db.GetAccountSettings(c.Request.Context(), userID, accountID)
	if errors.Is(err, database.ErrNotFound) {
		errorResponse(c, http.StatusNotFound, "account not found")
		return
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get account")
		errorResponse(c, http.StatusInternalServerError, "failed to update account")
		return
	}

	account.Name = req.Name
	account.AccountBalance = req.AccountBalance
	if req.Currency != "" {
		account.Currency = req.Currency
	}

	if err := s.db.UpdateAccountSettings(c.Request.Context(), account); err != nil {
		s.logger.Error().Err(err).Msg("failed to update account")
		errorResponse(c, http.StatusInternalServerError, "failed to update account")
		return
	}

	s.statsCache.InvalidateAccount(c.Request.Context(), userID, accountID)
	successResponse(c, account)
}

// handleDeleteAccount removes a trading account and its trades.
// DELETE /api/account-settings/:id
func (s *Server) handleDeleteAccount(c *gin.Context) {
	userID := auth.GetUserID(c)
	accountID := c.Param("id")

	err := s.db.DeleteAccountSettings(c.Request.Context(), userID, accountID)
	if errors.Is(err, database.ErrNotFound) {
		errorResponse(c, http.StatusNotFound, "account not found")
		return
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to delete account")
		errorResponse(c, http.StatusInternalServerError, "failed to delete account")
		return
	}

	s.statsCache.InvalidateAccount(c.Request.Context(), userID, accountID)
	successResponse(c, gin.H{"deleted": accountID})
}
