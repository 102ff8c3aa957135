// Package database provides the PostgreSQL store for users, account settings
// and journal trades.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps the PostgreSQL connection pool.
type DB struct {
	Pool *pgxpool.Pool
}

// Config holds database configuration.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// NewDB creates a new database connection pool and verifies connectivity.
func NewDB(cfg Config) (*DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, cfg.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database config: %w", err)
	}

	poolConfig.MaxConns = 25
	poolConfig.MinConns = 5
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return &DB{Pool: pool}, nil
}

// Close closes the database connection pool.
func (db *DB) Close() {
	if db.Pool != nil {
		db.Pool.Close()
	}
}

// RunMigrations creates the schema if it does not exist yet.
func (db *DB) RunMigrations(ctx context.Context) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			email VARCHAR(255) UNIQUE NOT NULL,
			name VARCHAR(255) NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			last_login_at TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS refresh_tokens (
			token VARCHAR(255) PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			expires_at TIMESTAMP NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_refresh_tokens_user ON refresh_tokens(user_id)`,
		`CREATE TABLE IF NOT EXISTS account_settings (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			name VARCHAR(100) NOT NULL DEFAULT 'Main',
			account_balance DECIMAL(20, 2) NOT NULL DEFAULT 0,
			currency VARCHAR(10) NOT NULL DEFAULT 'EUR',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_account_settings_user ON account_settings(user_id)`,
		`CREATE TABLE IF NOT EXISTS trades (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			account_id UUID NOT NULL REFERENCES account_settings(id) ON DELETE CASCADE,
			trading_mode VARCHAR(20) NOT NULL DEFAULT 'live',
			trade_date DATE NOT NULL,
			trade_time VARCHAR(5) NOT NULL DEFAULT '',
			day_of_week VARCHAR(10) NOT NULL DEFAULT '',
			market VARCHAR(20) NOT NULL DEFAULT '',
			setup_type VARCHAR(50) NOT NULL DEFAULT '',
			liquidity VARCHAR(50) NOT NULL DEFAULT '',
			direction VARCHAR(10) NOT NULL DEFAULT '',
			mss VARCHAR(50) NOT NULL DEFAULT '',
			evaluation_grade VARCHAR(20) NOT NULL DEFAULT '',
			news_related BOOLEAN NOT NULL DEFAULT FALSE,
			news_name VARCHAR(100) NOT NULL DEFAULT '',
			news_intensity VARCHAR(20) NOT NULL DEFAULT '',
			local_high_low BOOLEAN NOT NULL DEFAULT FALSE,
			trade_outcome VARCHAR(10) NOT NULL,
			break_even BOOLEAN NOT NULL DEFAULT FALSE,
			be_final_result VARCHAR(10) NOT NULL DEFAULT '',
			reentry BOOLEAN NOT NULL DEFAULT FALSE,
			partials_taken BOOLEAN NOT NULL DEFAULT FALSE,
			executed BOOLEAN NOT NULL DEFAULT TRUE,
			launch_hour INT NOT NULL DEFAULT 0,
			risk_per_trade DECIMAL(10, 4),
			risk_reward_ratio DECIMAL(10, 4),
			sl_size DECIMAL(10, 4),
			displacement_size DECIMAL(10, 4),
			calculated_profit DECIMAL(20, 2) NOT NULL DEFAULT 0,
			pnl_percentage DECIMAL(10, 4) NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_trades_user_account ON trades(user_id, account_id)`,
		`CREATE INDEX IF NOT EXISTS idx_trades_date ON trades(trade_date)`,
		`CREATE INDEX IF NOT EXISTS idx_trades_market ON trades(market)`,
		`CREATE INDEX IF NOT EXISTS idx_trades_mode ON trades(trading_mode)`,
	}

	for i, migration := range migrations {
		if _, err := db.Pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
