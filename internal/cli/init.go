// Package cli provides the initialization steps shared by cmd/gastos and
// cmd/gastos-dashboard.
package cli

import (
	"os"

	"github.com/joho/godotenv"

	"gastos/internal/config"
	"gastos/internal/ledger"
	"gastos/internal/log"
)

// Setup loads the optional .env file, builds the default logger, and loads
// and validates configuration. Exits the process on validation failure.
func Setup(component string) (*log.Logger, *config.Config) {
	// .env is optional; missing files are fine in production.
	_ = godotenv.Load()

	logger := log.New(log.Config{Component: component})
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	return logger, cfg
}

// OpenLedger constructs the ledger store for the configured record file.
func OpenLedger(cfg *config.Config) *ledger.Store {
	return ledger.NewStore(cfg.LedgerPath)
}
