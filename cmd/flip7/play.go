package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lox/flip7/internal/advisor"
	"github.com/lox/flip7/internal/session"
	"github.com/lox/flip7/internal/tui"
)

// PlayCmd runs the interactive advisor shell
type PlayCmd struct {
	Strategy string `help:"Path to an HCL strategy override file" type:"path"`
	Debug    bool   `help:"Write debug logs to flip7.log"`
}

func (c *PlayCmd) Run() error {
	// The TUI owns the terminal, so logs go to a file
	logger := log.New(os.Stderr)
	logger.SetLevel(log.FatalLevel)
	if c.Debug {
		debugFile, err := os.OpenFile("flip7.log", os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
		if err != nil {
			return fmt.Errorf("failed to create debug log: %w", err)
		}
		defer func() {
			_ = debugFile.Close()
		}()
		logger = log.NewWithOptions(debugFile, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05",
			Level:           log.DebugLevel,
		})
	}

	strategy, err := advisor.LoadStrategy(c.Strategy)
	if err != nil {
		return fmt.Errorf("failed to load strategy: %w", err)
	}

	sess := session.New(logger, strategy)
	model := tui.NewModel(sess, logger)

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run interface: %w", err)
	}
	return nil
}
