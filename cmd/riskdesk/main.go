// Command riskdesk is the terminal dashboard for the portfolio risk backend.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/aristath/riskdesk/internal/api"
	"github.com/aristath/riskdesk/internal/config"
	"github.com/aristath/riskdesk/internal/ui"
	"github.com/aristath/riskdesk/pkg/logger"
	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	flag.StringVar(&cfg.APIBaseURL, "api-url", cfg.APIBaseURL, "Backend base URL (overrides RISKDESK_API_URL)")
	maxWidth := flag.Int("max-width", 0, "Max columns (0 = no limit)")
	flag.Parse()

	if err := cfg.RequireAPIURL(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	// The UI owns the terminal, so logs go to a file.
	logFile, err := logger.OpenFile(cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: open log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.DevMode, Output: logFile})
	logger.SetGlobalLogger(log)
	log.Info().Str("api_url", cfg.APIBaseURL).Msg("Starting riskdesk")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := api.NewClient(cfg.APIBaseURL, log)
	m := ui.NewModel(ctx, client, log, ui.Options{
		APIURL:          cfg.APIBaseURL,
		DashboardAlerts: cfg.DashboardAlerts,
		HistoryLimit:    cfg.HistoryLimit,
		HorizonDays:     cfg.DefaultHorizon,
		Confidence:      cfg.DefaultConfidence,
		MaxWidth:        *maxWidth,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		log.Error().Err(err).Msg("UI exited with error")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	log.Info().Msg("riskdesk stopped")
}
