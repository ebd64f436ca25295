// Package cli provides common initialization for the midas binary:
// environment loading, logging, configuration and backend/store setup.
package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"midas/internal/config"
	"midas/internal/core"
	"midas/internal/kv"
	applog "midas/internal/log"
	"midas/internal/store"
)

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// SetupLogger initializes structured logging at the given level and sets
// it as the process default.
func SetupLogger(level slog.Level) *applog.Logger {
	logger := applog.New(applog.Config{
		Level:     level,
		Component: applog.ComponentApp,
	})
	applog.SetDefault(logger)
	return logger
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *applog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// OpenBackend opens the configured key-value backend.
// Returns the store or exits the process on failure.
func OpenBackend(logger *applog.Logger, cfg *config.Config) kv.Store {
	backing, err := kv.Open(kv.Config{
		Type:       kv.BackendType(cfg.Backend),
		DataDir:    cfg.DataDir,
		SQLitePath: cfg.SQLitePath,
	}, logger.Logger)
	if err != nil {
		logger.Error("Failed to open storage backend",
			applog.FieldError, err,
			applog.FieldBackend, cfg.Backend)
		os.Exit(1)
	}
	return backing
}

// Stores bundles the three session stores over one backend.
type Stores struct {
	Accounts     *store.AccountStore
	Transactions *store.TransactionStore
	Budget       *store.BudgetStore
}

// OpenStores constructs the stores over the backend, loading persisted
// state. Unparseable stored content is fatal and exits the process.
func OpenStores(ctx context.Context, logger *applog.Logger, backing kv.Store) *Stores {
	accounts, err := store.NewAccountStore(ctx, backing)
	if err != nil {
		logger.Error("Failed to load accounts", applog.FieldError, err)
		os.Exit(1)
	}
	transactions, err := store.NewTransactionStore(ctx, backing)
	if err != nil {
		logger.Error("Failed to load transactions", applog.FieldError, err)
		os.Exit(1)
	}
	budget, err := store.NewBudgetStore(ctx, backing)
	if err != nil {
		logger.Error("Failed to load budget", applog.FieldError, err)
		os.Exit(1)
	}
	return &Stores{Accounts: accounts, Transactions: transactions, Budget: budget}
}

// SeedDemoData adds a handful of demo transactions when the store is
// empty, so a fresh install has something to show on the dashboard.
func SeedDemoData(ctx context.Context, logger *applog.Logger, transactions *store.TransactionStore) {
	if len(transactions.List()) > 0 {
		return
	}
	demo := []core.Transaction{
		{Date: core.NewDate(2024, 1, 15), Description: "Groceries", Amount: core.Money{Cents: 10000}},
		{Date: core.NewDate(2024, 7, 20), Description: "Summer holiday", Amount: core.Money{Cents: 20000}},
		{Date: core.NewDate(2025, 1, 10), Description: "Dinner out", Amount: core.Money{Cents: 15000}},
	}
	for _, t := range demo {
		if _, err := transactions.Add(ctx, t); err != nil {
			logger.Warn("Failed to seed demo transaction",
				applog.FieldError, err,
				"description", t.Description)
			return
		}
	}
	logger.Info("Seeded demo transactions", applog.FieldCount, len(demo))
}
