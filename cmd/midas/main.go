package main

import (
	"context"
	"fmt"
	"time"

	"midas/internal/cli"
	"midas/internal/report"
)

func main() {
	cli.LoadEnvFile()

	logger := cli.SetupLogger(0)
	cfg := cli.LoadAndValidateConfig(logger)
	if level := cfg.SlogLevel(); level != 0 {
		logger = cli.SetupLogger(level)
	}

	ctx := context.Background()

	backing := cli.OpenBackend(logger, cfg)
	defer backing.Close()

	stores := cli.OpenStores(ctx, logger, backing)
	if cfg.SeedDemo {
		cli.SeedDemoData(ctx, logger, stores.Transactions)
	}

	calc := report.NewCalculator(stores.Transactions, stores.Budget)
	now := time.Now()
	overview := calc.Overview(now)

	fmt.Printf("Accounts (%d)\n", len(stores.Accounts.List()))
	for _, a := range stores.Accounts.List() {
		fmt.Printf("  %-20s %12s\n", a.Name, a.Balance)
	}
	fmt.Printf("  %-20s %12s\n", "Total", stores.Accounts.TotalBalance())

	fmt.Printf("\n%s %d\n", now.Month(), now.Year())
	fmt.Printf("  Spend this month     %12s (%d transactions)\n", overview.TotalSpend, overview.Count)
	fmt.Printf("  Average per day      %12s\n", overview.AverageDaily)
	fmt.Printf("  Budget               %12s\n", overview.Budget)
	fmt.Printf("  Remaining            %12s\n", overview.Remaining)
	fmt.Printf("  Progress             %11.0f%%\n", overview.ProgressPct)

	if len(overview.Recent) > 0 {
		fmt.Printf("\nRecent transactions\n")
		for _, t := range overview.Recent {
			fmt.Printf("  %s  %-30s %12s\n", t.Date, t.Description, t.Amount)
		}
	}

	logger.Info("Dashboard rendered",
		"backend", cfg.Backend,
		"accounts", len(stores.Accounts.List()),
		"transactions", len(stores.Transactions.List()))
}
