package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/lox/flip7/internal/advisor"
	"github.com/lox/flip7/internal/server"
)

// ServeCmd runs the websocket analysis service
type ServeCmd struct {
	Config string `short:"c" help:"Path to an HCL server config file" type:"path"`
	Debug  bool   `short:"d" help:"Enable debug logging"`
}

func (c *ServeCmd) Run() error {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
	if c.Debug {
		logger.SetLevel(log.DebugLevel)
	}

	cfg, err := server.LoadConfig(c.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	strategy, err := advisor.LoadStrategy(cfg.Server.StrategyFile)
	if err != nil {
		return fmt.Errorf("failed to load strategy: %w", err)
	}

	logger.Info("Starting analysis server", "addr", cfg.Server.Addr())
	return server.New(cfg, strategy, logger).Start()
}
