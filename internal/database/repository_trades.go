package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/DragosCt10/trading-tracker-sub007/internal/stats"
)

// TradePageSize is the fixed page size for trade listings.
const TradePageSize = 50

// TradeFilter narrows trade queries. Zero values mean "no constraint".
type TradeFilter struct {
	Mode     string
	Market   string
	Year     int
	DateFrom time.Time
	DateTo   time.Time
}

const tradeColumns = `
	id, user_id, account_id, trading_mode,
	trade_date, trade_time, day_of_week,
	market, setup_type, liquidity, direction, mss, evaluation_grade,
	news_related, news_name, news_intensity, local_high_low,
	trade_outcome, break_even, be_final_result, reentry, partials_taken,
	executed, launch_hour,
	risk_per_trade, risk_reward_ratio, sl_size, displacement_size,
	calculated_profit, pnl_percentage, created_at, updated_at`

func scanTrade(row pgx.Row, t *stats.Trade) error {
	return row.Scan(
		&t.ID, &t.UserID, &t.AccountID, &t.Mode,
		&t.TradeDate, &t.TradeTime, &t.DayOfWeek,
		&t.Market, &t.SetupType, &t.Liquidity, &t.Direction, &t.MSS, &t.EvaluationGrade,
		&t.NewsRelated, &t.NewsName, &t.NewsIntensity, &t.LocalHighLow,
		&t.Outcome, &t.BreakEven, &t.BEFinalResult, &t.Reentry, &t.PartialsTaken,
		&t.Executed, &t.LaunchHour,
		&t.RiskPerTrade, &t.RiskReward, &t.SLSize, &t.DisplacementSize,
		&t.CalculatedProfit, &t.PnLPercentage, &t.CreatedAt, &t.UpdatedAt,
	)
}

// filterClause builds the WHERE tail for the given filter, appending bind
// arguments after the user and account scoping parameters.
func filterClause(f TradeFilter, args []interface{}) (string, []interface{}) {
	var sb strings.Builder
	if f.Mode != "" {
		args = append(args, f.Mode)
		fmt.Fprintf(&sb, " AND trading_mode = $%d", len(args))
	}
	if f.Market != "" {
		args = append(args, f.Market)
		fmt.Fprintf(&sb, " AND market = $%d", len(args))
	}
	if f.Year != 0 {
		args = append(args, f.Year)
		fmt.Fprintf(&sb, " AND EXTRACT(YEAR FROM trade_date) = $%d", len(args))
	}
	if !f.DateFrom.IsZero() {
		args = append(args, f.DateFrom)
		fmt.Fprintf(&sb, " AND trade_date >= $%d", len(args))
	}
	if !f.DateTo.IsZero() {
		args = append(args, f.DateTo)
		fmt.Fprintf(&sb, " AND trade_date <= $%d", len(args))
	}
	return sb.String(), args
}

// CreateTrade inserts a trade and fills in its generated ID and timestamps.
func (db *DB) CreateTrade(ctx context.Context, t *stats.Trade) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}

	query := `
		INSERT INTO trades (
			id, user_id, account_id, trading_mode,
			trade_date, trade_time, day_of_week,
			market, setup_type, liquidity, direction, mss, evaluation_grade,
			news_related, news_name, news_intensity, local_high_low,
			trade_outcome, break_even, be_final_result, reentry, partials_taken,
			executed, launch_hour,
			risk_per_trade, risk_reward_ratio, sl_size, displacement_size,
			calculated_profit, pnl_percentage
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
			$21, $22, $23, $24, $25, $26, $27, $28, $29, $30
		)
		RETURNING created_at, updated_at`

	err := db.Pool.QueryRow(ctx, query,
		t.ID, t.UserID, t.AccountID, t.Mode,
		t.TradeDate, t.TradeTime, t.DayOfWeek,
		t.Market, t.SetupType, t.Liquidity, t.Direction, t.MSS, t.EvaluationGrade,
		t.NewsRelated, t.NewsName, t.NewsIntensity, t.LocalHighLow,
		t.Outcome, t.BreakEven, t.BEFinalResult, t.Reentry, t.PartialsTaken,
		t.Executed, t.LaunchHour,
		t.RiskPerTrade, t.RiskReward, t.SLSize, t.DisplacementSize,
		t.CalculatedProfit, t.PnLPercentage,
	).Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create trade: %w", err)
	}
	return nil
}

// UpdateTrade rewrites all mutable trade fields, scoped to the owning user.
func (db *DB) UpdateTrade(ctx context.Context, t *stats.Trade) error {
	query := `
		UPDATE trades SET
			trading_mode = $1, trade_date = $2, trade_time = $3, day_of_week = $4,
			market = $5, setup_type = $6, liquidity = $7, direction = $8,
			mss = $9, evaluation_grade = $10,
			news_related = $11, news_name = $12, news_intensity = $13, local_high_low = $14,
			trade_outcome = $15, break_even = $16, be_final_result = $17,
			reentry = $18, partials_taken = $19, executed = $20, launch_hour = $21,
			risk_per_trade = $22, risk_reward_ratio = $23, sl_size = $24, displacement_size = $25,
			calculated_profit = $26, pnl_percentage = $27,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $28 AND user_id = $29`

	tag, err := db.Pool.Exec(ctx, query,
		t.Mode, t.TradeDate, t.TradeTime, t.DayOfWeek,
		t.Market, t.SetupType, t.Liquidity, t.Direction,
		t.MSS, t.EvaluationGrade,
		t.NewsRelated, t.NewsName, t.NewsIntensity, t.LocalHighLow,
		t.Outcome, t.BreakEven, t.BEFinalResult,
		t.Reentry, t.PartialsTaken, t.Executed, t.LaunchHour,
		t.RiskPerTrade, t.RiskReward, t.SLSize, t.DisplacementSize,
		t.CalculatedProfit, t.PnLPercentage,
		t.ID, t.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update trade: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteTrade removes a trade, scoped to the owning user.
func (db *DB) DeleteTrade(ctx context.Context, userID, tradeID string) error {
	tag, err := db.Pool.Exec(ctx,
		`DELETE FROM trades WHERE id = $1 AND user_id = $2`, tradeID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete trade: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// GetTradeByID fetches a single trade, scoped to the owning user.
func (db *DB) GetTradeByID(ctx context.Context, userID, tradeID string) (*stats.Trade, error) {
	query := `SELECT` + tradeColumns + ` FROM trades WHERE id = $1 AND user_id = $2`

	t := &stats.Trade{}
	err := scanTrade(db.Pool.QueryRow(ctx, query, tradeID, userID), t)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trade: %w", err)
	}
	return t, nil
}

// ListTrades returns one page of trades for an account, newest first, together
// with the total count of matching rows. Pages are numbered from 1.
func (db *DB) ListTrades(ctx context.Context, userID, accountID string, filter TradeFilter, page int) ([]stats.Trade, int, error) {
	if page < 1 {
		page = 1
	}

	args := []interface{}{userID, accountID}
	clause, args := filterClause(filter, args)

	countQuery := `SELECT COUNT(*) FROM trades WHERE user_id = $1 AND account_id = $2` + clause
	var total int
	if err := db.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count trades: %w", err)
	}

	args = append(args, TradePageSize, (page-1)*TradePageSize)
	query := fmt.Sprintf(
		`SELECT%s FROM trades WHERE user_id = $1 AND account_id = $2%s
		 ORDER BY trade_date DESC, trade_time DESC, created_at DESC
		 LIMIT $%d OFFSET $%d`,
		tradeColumns, clause, len(args)-1, len(args),
	)

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list trades: %w", err)
	}
	defer rows.Close()

	var trades []stats.Trade
	for rows.Next() {
		var t stats.Trade
		if err := scanTrade(rows, &t); err != nil {
			return nil, 0, fmt.Errorf("failed to scan trade: %w", err)
		}
		trades = append(trades, t)
	}
	return trades, total, rows.Err()
}

// FetchAllTrades loads every matching trade for an account in chronological
// order. Used by the stats pipeline, which needs the full history.
func (db *DB) FetchAllTrades(ctx context.Context, userID, accountID string, filter TradeFilter) ([]stats.Trade, error) {
	args := []interface{}{userID, accountID}
	clause, args := filterClause(filter, args)

	query := `SELECT` + tradeColumns + ` FROM trades WHERE user_id = $1 AND account_id = $2` +
		clause + ` ORDER BY trade_date, trade_time, created_at`

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch trades: %w", err)
	}
	defer rows.Close()

	var trades []stats.Trade
	for rows.Next() {
		var t stats.Trade
		if err := scanTrade(rows, &t); err != nil {
			return nil, fmt.Errorf("failed to scan trade: %w", err)
		}
		trades = append(trades, t)
	}
	return trades, rows.Err()
}

// TradeYears returns the distinct years that have trades for an account,
// newest first.
func (db *DB) TradeYears(ctx context.Context, userID, accountID string) ([]int, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT DISTINCT EXTRACT(YEAR FROM trade_date)::int AS year
		 FROM trades WHERE user_id = $1 AND account_id = $2 ORDER BY year DESC`,
		userID, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list trade years: %w", err)
	}
	defer rows.Close()

	var years []int
	for rows.Next() {
		var year int
		if err := rows.Scan(&year); err != nil {
			return nil, fmt.Errorf("failed to scan year: %w", err)
		}
		years = append(years, year)
	}
	return years, rows.Err()
}
