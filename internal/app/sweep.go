package app

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/doccontrol-backend/internal/adapter/postgres"
	auditrepo "github.com/heartmarshall/doccontrol-backend/internal/adapter/postgres/audit"
	serialrepo "github.com/heartmarshall/doccontrol-backend/internal/adapter/postgres/serial"
	"github.com/heartmarshall/doccontrol-backend/internal/config"
	"github.com/heartmarshall/doccontrol-backend/internal/service/serial"
)

// SweepReservations marks every lapsed serial reservation as expired and
// returns how many were updated.
func SweepReservations(ctx context.Context, cfg *config.Config, logger *slog.Logger, pool *pgxpool.Pool) (int64, error) {
	svc := serial.NewService(logger, serialrepo.New(pool), auditrepo.New(pool), postgres.NewTxManager(pool), serialConfig(cfg.Serial))
	return svc.ExpireLapsed(ctx)
}
