// Command riskdesk-stub serves an in-memory stand-in for the risk backend,
// for local development of riskdesk and riskdeskctl.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aristath/riskdesk/internal/config"
	"github.com/aristath/riskdesk/internal/stubapi"
	"github.com/aristath/riskdesk/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{Level: "info", Pretty: true})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: true})
	logger.SetGlobalLogger(log)

	store := stubapi.NewStore()
	if cfg.Stub.Seed {
		if err := stubapi.Seed(store); err != nil {
			log.Fatal().Err(err).Msg("Failed to seed store")
		}
		log.Info().Int("portfolios", len(store.Portfolios())).Msg("Store seeded")
	}

	srv := stubapi.New(stubapi.Config{
		Log:         log,
		Store:       store,
		Port:        cfg.Stub.Port,
		CORSOrigins: cfg.Stub.CORSOrigins,
	})

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()
	log.Info().Int("port", cfg.Stub.Port).Msg("Stub backend started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down stub backend...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Stub backend stopped")
}
