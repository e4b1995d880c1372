package main

import (
	"context"
	"os"

	"gastos/internal/cli"
	"gastos/internal/console"
	"gastos/internal/log"
)

func main() {
	logger, cfg := cli.Setup(log.ComponentConsole)
	store := cli.OpenLedger(cfg)

	logger.Info("Starting expense manager",
		log.FieldLedgerPath, cfg.LedgerPath)

	c := console.New(os.Stdin, os.Stdout, store, cfg.PlotPath, logger)
	if err := c.Run(context.Background()); err != nil {
		logger.Error("Console loop failed", log.FieldError, err)
		os.Exit(1)
	}
}
