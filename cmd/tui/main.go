package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"wallet-analyzer-go/internal/analysis"
	"wallet-analyzer-go/internal/config"
	"wallet-analyzer-go/internal/dashboard"
	"wallet-analyzer-go/internal/export"
	"wallet-analyzer-go/internal/logger"
	"wallet-analyzer-go/internal/tui"
	"wallet-analyzer-go/internal/view"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const (
	configDir      = "./configs"
	defaultLogFile = "logs/tui.log"
)

func main() {
	if err := run(configDir); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// run owns every resource of the dashboard, so its defers complete before main exits.
func run(dir string) error {
	// Load application configuration
	cfg, err := config.LoadConfig(dir)
	if err != nil {
		return fmt.Errorf("could not load config: %w", err)
	}

	// The terminal belongs to the dashboard, so logs only go to a file.
	cfg.Logger.Console = false
	if cfg.Logger.File == "" {
		cfg.Logger.File = defaultLogFile
	}
	log, err := logger.NewLogger(cfg.Logger)
	if err != nil {
		return fmt.Errorf("could not initialize logger: %w", err)
	}
	defer log.Sync()
	log.Info("Configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fs := afero.NewOsFs()
	client := analysis.NewClient(&cfg.Analyzer, log)
	ctrl := dashboard.NewController(client, log)
	exporter := export.NewLedgerExporter(fs, cfg.Export.SpoolDir, log)
	defer func() {
		if err := exporter.Close(); err != nil {
			log.Warn("Failed to release spooled export", zap.Error(err))
		}
	}()

	model := tui.New(ctx, ctrl, exporter, fs, cfg.Export.Dir, view.Options{
		Location:    cfg.Display.Location(),
		TimeLayout:  cfg.Display.TimeLayout,
		ChartWidth:  cfg.Display.ChartWidth,
		ChartHeight: cfg.Display.ChartHeight,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		log.Error("Dashboard exited with error", zap.Error(err))
		return fmt.Errorf("dashboard error: %w", err)
	}
	log.Info("Dashboard closed")
	return nil
}
