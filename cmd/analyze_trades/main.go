// Command analyze_trades prints the full statistics dashboard for one
// account straight from the database, without going through the API.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/DragosCt10/trading-tracker-sub007/config"
	"github.com/DragosCt10/trading-tracker-sub007/internal/database"
	"github.com/DragosCt10/trading-tracker-sub007/internal/stats"
)

func main() {
	email := flag.String("email", "", "user email (required)")
	accountName := flag.String("account", "Main", "account name")
	year := flag.Int("year", 0, "year to analyze (0 = latest)")
	mode := flag.String("mode", stats.ModeLive, "trading mode: live, demo or backtesting")
	market := flag.String("market", "", "restrict to one market")
	flag.Parse()

	if *email == "" {
		fmt.Println("usage: analyze_trades -email user@example.com [-account Main] [-year 2025] [-mode live] [-market EURUSD]")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fail("failed to load configuration: %v", err)
	}

	db, err := database.NewDB(database.Config{
		Host:     cfg.DatabaseConfig.Host,
		Port:     cfg.DatabaseConfig.Port,
		User:     cfg.DatabaseConfig.User,
		Password: cfg.DatabaseConfig.Password,
		Database: cfg.DatabaseConfig.Database,
		SSLMode:  cfg.DatabaseConfig.SSLMode,
	})
	if err != nil {
		fail("failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()

	user, err := db.GetUserByEmail(ctx, *email)
	if err != nil {
		fail("user %s not found: %v", *email, err)
	}

	accounts, err := db.ListAccountSettings(ctx, user.ID)
	if err != nil {
		fail("failed to list accounts: %v", err)
	}

	var settings *stats.AccountSettings
	for i := range accounts {
		if accounts[i].Name == *accountName {
			settings = &accounts[i]
			break
		}
	}
	if settings == nil {
		fail("account %q not found for %s", *accountName, *email)
	}

	trades, err := db.FetchAllTrades(ctx, user.ID, settings.ID, database.TradeFilter{Mode: *mode})
	if err != nil {
		fail("failed to fetch trades: %v", err)
	}

	filter := stats.Filter{Mode: stats.ViewYearly, Year: *year, Market: *market}
	dash := stats.Compute(filter.Apply(trades), *settings, cfg.StatsConfig, *year)

	printDashboard(dash, settings, *mode)
}

func fail(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func printDashboard(d *stats.Dashboard, settings *stats.AccountSettings, mode string) {
	rule := strings.Repeat("=", 72)

	fmt.Println(rule)
	fmt.Printf("TRADING PERFORMANCE - %s (%s, %s)\n", settings.Name, settings.Currency, mode)
	fmt.Println(rule)

	b := d.Basic
	fmt.Printf("\nTrades: %d  |  Wins: %d  Losses: %d  Break-even: %d (W %d / L %d)\n",
		b.TotalTrades, b.Wins, b.Losses, b.BreakEvens, b.BEWins, b.BELosses)
	fmt.Printf("Win rate: %.2f%%  |  Win rate incl. BE: %.2f%%\n", b.WinRate, b.WinRateWithBE)

	fmt.Printf("\nProfit factor:       %.2f\n", d.ProfitFactor)
	fmt.Printf("Max drawdown:        %.2f%%\n", d.MaxDrawdown)
	fmt.Printf("Sharpe ratio:        %.2f\n", d.SharpeRatio)
	fmt.Printf("Trade quality index: %.2f\n", d.TradeQualityIndex)
	fmt.Printf("Total R multiple:    %.2f\n", d.RMultipleTotal)
	fmt.Printf("Consistency:         %.2f%% (%.2f%% incl. BE)\n", d.ConsistencyScore, d.ConsistencyScoreWithBE)
	fmt.Printf("Streaks:             current %+d, best win %d, worst loss %d\n",
		d.Streaks.Current, d.Streaks.MaxWinning, d.Streaks.MaxLosing)
	fmt.Printf("Avg days between trades: %.1f\n", d.AvgDaysBetweenTrades)

	printBuckets("BY MARKET", d.ByMarket)
	printBuckets("BY SETUP", d.BySetup)
	printBuckets("BY DAY", d.ByDay)
	printBuckets("BY RISK BUCKET", d.ByRiskBucket)

	if len(d.ByGrade) > 0 {
		fmt.Printf("\n--- BY GRADE ---\n")
		for _, g := range d.ByGrade {
			fmt.Printf("%-14s %4d trades  W %3d  L %3d  BE %3d  win rate %6.2f%%\n",
				g.Grade, g.Total, g.Wins, g.Losses, g.BreakEvens, g.WinRate)
		}
	}

	fmt.Printf("\n--- MONTHLY %d ---\n", d.Monthly.Year)
	for _, m := range d.Monthly.Months {
		total := m.Wins + m.Losses + m.BEWins + m.BELosses
		if total == 0 {
			continue
		}
		fmt.Printf("%-10s %4d trades  W %3d  L %3d  profit %10.2f  win rate %6.2f%%\n",
			m.Label, total, m.Wins, m.Losses, m.Profit, m.WinRate)
	}
	if d.Monthly.Best != nil {
		fmt.Printf("Best month:  %s (%.2f)\n", d.Monthly.Best.Label, d.Monthly.Best.Profit)
	}
	if d.Monthly.Worst != nil {
		fmt.Printf("Worst month: %s (%.2f)\n", d.Monthly.Worst.Label, d.Monthly.Worst.Profit)
	}

	fmt.Println(rule)
}

func printBuckets(title string, buckets []stats.BucketStats) {
	if len(buckets) == 0 {
		return
	}
	fmt.Printf("\n--- %s ---\n", title)
	for _, bs := range buckets {
		fmt.Printf("%-14s %4d trades  W %3d  L %3d  BE %3d  win rate %6.2f%%\n",
			bs.Key, bs.Total, bs.Wins, bs.Losses, bs.BEWins+bs.BELosses, bs.WinRate)
	}
}
