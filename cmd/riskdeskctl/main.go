// Command riskdeskctl is the scriptable command line for the portfolio risk backend.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path"
	"syscall"

	"github.com/aristath/riskdesk/internal/api"
	"github.com/aristath/riskdesk/internal/cli"
	"github.com/aristath/riskdesk/internal/config"
	"github.com/aristath/riskdesk/internal/views"
	"github.com/aristath/riskdesk/pkg/logger"
	"github.com/google/subcommands"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	flag.StringVar(&cfg.APIBaseURL, "api-url", cfg.APIBaseURL, "Backend base URL (overrides RISKDESK_API_URL)")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	cli.Register(commander)
	flag.Parse()

	if err := cfg.RequireAPIURL(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(int(subcommands.ExitUsageError))
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: true})
	logger.SetGlobalLogger(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	env := &cli.Env{
		Backend: api.NewClient(cfg.APIBaseURL, log),
		Log:     log,
		Out:     os.Stdout,
		Err:     os.Stderr,
		Risk: views.RiskOptions{
			HistoryLimit: cfg.HistoryLimit,
			HorizonDays:  cfg.DefaultHorizon,
			Confidence:   cfg.DefaultConfidence,
		},
	}
	status := commander.Execute(ctx, env)
	stop()
	os.Exit(int(status))
}
