// Package serial issues unique, formatted serial numbers per document
// category and manages short-lived reservations of them.
package serial

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/doccontrol-backend/internal/domain"
)

const (
	DefaultLedgerLimit = 50
	MaxLedgerLimit     = 500

	defaultWidth = 4
)

type serialRepo interface {
	NextValue(ctx context.Context, category, period string, start int64) (int64, error)
	AppendLedger(ctx context.Context, e domain.SerialLedgerEntry) error
	ListLedger(ctx context.Context, category string, limit int) ([]domain.SerialLedgerEntry, error)
	CreateReservation(ctx context.Context, res domain.SerialReservation) error
	ConsumeReservation(ctx context.Context, id, holderID uuid.UUID, now time.Time) (domain.SerialReservation, error)
	ExpireLapsed(ctx context.Context, now time.Time) (int64, error)
}

type auditLogger interface {
	Log(ctx context.Context, entry domain.AuditLogEntry) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Config controls numbering.
type Config struct {
	Prefix         string
	Categories     []domain.SerialCategory
	ReservationTTL time.Duration
	MaxRetries     int
}

// Service issues serial numbers.
type Service struct {
	repo       serialRepo
	audit      auditLogger
	tx         txManager
	log        *slog.Logger
	prefix     string
	categories map[string]domain.SerialCategory
	ttl        time.Duration
	maxRetries int
	now        func() time.Time
}

// NewService creates a new Serial service.
func NewService(log *slog.Logger, repo serialRepo, audit auditLogger, tx txManager, cfg Config) *Service {
	cats := make(map[string]domain.SerialCategory, len(cfg.Categories))
	for _, c := range cfg.Categories {
		cats[strings.ToUpper(c.Code)] = c
	}
	ttl := cfg.ReservationTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Service{
		repo:       repo,
		audit:      audit,
		tx:         tx,
		log:        log.With("service", "serial"),
		prefix:     cfg.Prefix,
		categories: cats,
		ttl:        ttl,
		maxRetries: cfg.MaxRetries,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Category returns the numbering rule of code. Unknown categories start at 1
// with four digits.
func (s *Service) Category(code string) domain.SerialCategory {
	code = strings.ToUpper(strings.TrimSpace(code))
	if c, ok := s.categories[code]; ok {
		c.Code = code
		return c
	}
	return domain.SerialCategory{Code: code, Start: 1, Width: defaultWidth}
}
