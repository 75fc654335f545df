package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"cloud.google.com/go/storage"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"google.golang.org/api/option"

	"github.com/heartmarshall/doccontrol-backend/internal/adapter/gcs"
	"github.com/heartmarshall/doccontrol-backend/internal/adapter/pdf"
	"github.com/heartmarshall/doccontrol-backend/internal/adapter/postgres"
	approvalrepo "github.com/heartmarshall/doccontrol-backend/internal/adapter/postgres/approval"
	auditrepo "github.com/heartmarshall/doccontrol-backend/internal/adapter/postgres/audit"
	revisionrepo "github.com/heartmarshall/doccontrol-backend/internal/adapter/postgres/revision"
	serialrepo "github.com/heartmarshall/doccontrol-backend/internal/adapter/postgres/serial"
	transmittalrepo "github.com/heartmarshall/doccontrol-backend/internal/adapter/postgres/transmittal"
	userrepo "github.com/heartmarshall/doccontrol-backend/internal/adapter/postgres/user"
	workflowrepo "github.com/heartmarshall/doccontrol-backend/internal/adapter/postgres/workflow"
	redisadapter "github.com/heartmarshall/doccontrol-backend/internal/adapter/redis"
	"github.com/heartmarshall/doccontrol-backend/internal/auth"
	"github.com/heartmarshall/doccontrol-backend/internal/config"
	"github.com/heartmarshall/doccontrol-backend/internal/domain"
	"github.com/heartmarshall/doccontrol-backend/internal/notify"
	"github.com/heartmarshall/doccontrol-backend/internal/service/approval"
	auditsvc "github.com/heartmarshall/doccontrol-backend/internal/service/audit"
	"github.com/heartmarshall/doccontrol-backend/internal/service/revision"
	"github.com/heartmarshall/doccontrol-backend/internal/service/serial"
	"github.com/heartmarshall/doccontrol-backend/internal/service/transmittal"
	"github.com/heartmarshall/doccontrol-backend/internal/transport/middleware"
	"github.com/heartmarshall/doccontrol-backend/internal/transport/rest"
	"github.com/heartmarshall/doccontrol-backend/internal/workflow"
)

// container holds the long-lived objects that need closing on exit.
type container struct {
	handler    http.Handler
	dispatcher *notify.Dispatcher
	limiter    *middleware.WriteLimiter
	redis      *goredis.Client
	storage    *storage.Client

	newStorage func(ctx context.Context) (*storage.Client, error)
}

func newContainer() *container {
	return &container{
		newStorage: func(ctx context.Context) (*storage.Client, error) {
			return storage.NewClient(ctx, option.WithScopes(storage.ScopeReadWrite))
		},
	}
}

// build wires every component into c.handler. On failure whatever was
// already started is closed again.
func (c *container) build(ctx context.Context, cfg *config.Config, logger *slog.Logger, pool *pgxpool.Pool) (err error) {
	defer func() {
		if err != nil {
			c.close(logger)
		}
	}()

	registry, err := loadRegistry(cfg.Workflow)
	if err != nil {
		return err
	}
	logger.Info("workflows loaded", slog.Any("domains", registry.Domains()))

	sink, err := c.notificationSink(ctx, cfg.Notify, logger)
	if err != nil {
		return err
	}
	c.dispatcher = notify.NewDispatcher(logger, sink, cfg.Notify.QueueSize, cfg.Notify.Workers)

	tx := postgres.NewTxManager(pool)
	audits := auditrepo.New(pool)
	serials := serialrepo.New(pool)

	serialSvc := serial.NewService(logger, serials, audits, tx, serialConfig(cfg.Serial))
	approvalSvc := approval.NewService(logger, registry, workflowrepo.New(pool), approvalrepo.New(pool),
		userrepo.New(pool), c.dispatcher, audits, tx)
	revisionSvc := revision.NewService(logger, revisionrepo.New(pool), audits, tx, cfg.Revision.MaxRetries)
	transmittalSvc := transmittal.NewService(logger, transmittalrepo.New(pool), serialSvc, c.dispatcher,
		audits, tx, pdf.NewCoverRenderer())
	auditSvc := auditsvc.NewService(logger, audits)

	if cfg.Storage.Bucket != "" {
		c.storage, err = c.newStorage(ctx)
		if err != nil {
			return fmt.Errorf("create storage client: %w", err)
		}
		transmittalSvc.WithArchive(gcs.NewArchive(c.storage, cfg.Storage.Bucket))
		logger.Info("cover sheet archive enabled", slog.String("bucket", cfg.Storage.Bucket))
	}

	components := []rest.Component{{Name: "database", Check: pool.Ping, Critical: true}}
	if c.redis != nil {
		rdb := c.redis
		components = append(components, rest.Component{
			Name:  "redis",
			Check: func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		})
	}

	handlers := rest.Handlers{
		Health:      rest.NewHealthHandler(BuildVersion(), components...),
		Approval:    rest.NewApprovalHandler(approvalSvc, logger),
		Workflow:    rest.NewWorkflowHandler(registry, logger),
		Serial:      rest.NewSerialHandler(serialSvc, logger),
		Revision:    rest.NewRevisionHandler(revisionSvc, logger),
		Transmittal: rest.NewTransmittalHandler(transmittalSvc, logger),
		Audit:       rest.NewAuditHandler(auditSvc, logger),
	}

	c.limiter = middleware.NewWriteLimiter(cfg.Server.WritesPerMinute, time.Minute)
	jwt := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer)
	apiMW := middleware.Chain(
		middleware.CORS(cfg.CORS),
		middleware.Auth(jwt),
		c.limiter.Middleware(),
	)

	c.handler = middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.Logger(logger),
	)(rest.NewRouter(handlers, apiMW))

	return nil
}

func (c *container) notificationSink(ctx context.Context, cfg config.NotifyConfig, logger *slog.Logger) (notify.Sink, error) {
	if cfg.RedisAddr == "" {
		return notify.NewLogSink(logger), nil
	}
	rdb, err := redisadapter.Dial(ctx, cfg.RedisAddr)
	if err != nil {
		return nil, err
	}
	c.redis = rdb
	logger.Info("notifications via redis", slog.String("addr", cfg.RedisAddr), slog.String("channel", cfg.RedisChannel))
	return redisadapter.NewSink(rdb, cfg.RedisChannel), nil
}

func (c *container) close(logger *slog.Logger) {
	if c.limiter != nil {
		c.limiter.Stop()
	}
	if c.dispatcher != nil {
		ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
		defer cancel()
		if err := c.dispatcher.Close(ctx); err != nil {
			logger.Warn("notification queue not drained", slog.String("error", err.Error()))
		}
	}
	if c.redis != nil {
		_ = c.redis.Close()
	}
	if c.storage != nil {
		_ = c.storage.Close()
	}
}

func loadRegistry(cfg config.WorkflowConfig) (*workflow.Registry, error) {
	defs, err := workflow.BuiltIn()
	if err != nil {
		return nil, fmt.Errorf("load built-in workflows: %w", err)
	}
	if cfg.DefinitionsDir != "" {
		extra, err := workflow.LoadDir(cfg.DefinitionsDir)
		if err != nil {
			return nil, fmt.Errorf("load workflows from %s: %w", cfg.DefinitionsDir, err)
		}
		defs = append(defs, extra...)
	}
	return workflow.NewRegistry(defs...)
}

func serialConfig(cfg config.SerialConfig) serial.Config {
	cats := make([]domain.SerialCategory, len(cfg.Categories))
	for i, r := range cfg.Categories {
		cats[i] = domain.SerialCategory{Code: r.Code, Start: r.Start, Width: r.Width}
	}
	return serial.Config{
		Prefix:         cfg.Prefix,
		Categories:     cats,
		ReservationTTL: cfg.ReservationTTL,
		MaxRetries:     cfg.MaxRetries,
	}
}
