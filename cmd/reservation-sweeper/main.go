// Command reservation-sweeper marks lapsed serial number reservations as
// expired. It is intended to be invoked by an external cron job.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/doccontrol-backend/internal/adapter/postgres"
	"github.com/heartmarshall/doccontrol-backend/internal/app"
	"github.com/heartmarshall/doccontrol-backend/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	expired, err := app.SweepReservations(ctx, cfg, logger, pool)
	if err != nil {
		logger.Error("reservation sweep failed", slog.String("error", err.Error()))
		pool.Close()
		os.Exit(1)
	}

	logger.Info("reservation sweep completed", slog.Int64("expired", expired))
}
