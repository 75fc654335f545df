// Package transmittal tracks the dispatch of document sets between parties.
package transmittal

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/doccontrol-backend/internal/domain"
)

type transmittalRepo interface {
	Create(ctx context.Context, t domain.Transmittal) error
	UpdateStatus(ctx context.Context, id uuid.UUID, action string, change domain.TransmittalStatusChange) (domain.Transmittal, error)
	AppendHistory(ctx context.Context, e domain.TransmittalHistoryEntry) error
	GetByID(ctx context.Context, id uuid.UUID) (domain.Transmittal, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.Transmittal, error)
	ListPendingFor(ctx context.Context, recipientID uuid.UUID) ([]domain.Transmittal, error)
	History(ctx context.Context, id uuid.UUID) ([]domain.TransmittalHistoryEntry, error)
}

type numberIssuer interface {
	IssueTransmittalNumber(ctx context.Context, projectCode *string) (domain.SerialLedgerEntry, error)
}

type notifier interface {
	Notify(ctx context.Context, notes ...domain.Notification)
}

type auditLogger interface {
	Log(ctx context.Context, entry domain.AuditLogEntry) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type coverRenderer interface {
	Render(ctx context.Context, t domain.Transmittal) ([]byte, error)
}

type coverArchive interface {
	Put(ctx context.Context, key string, data []byte) error
}

// Service provides transmittal operations.
type Service struct {
	transmittals transmittalRepo
	numbers      numberIssuer
	notifier     notifier
	audit        auditLogger
	tx           txManager
	renderer     coverRenderer
	archive      coverArchive
	log          *slog.Logger
	now          func() time.Time
}

// NewService creates a new Transmittal service.
func NewService(
	log *slog.Logger,
	transmittals transmittalRepo,
	numbers numberIssuer,
	notifier notifier,
	audit auditLogger,
	tx txManager,
	renderer coverRenderer,
) *Service {
	return &Service{
		transmittals: transmittals,
		numbers:      numbers,
		notifier:     notifier,
		audit:        audit,
		tx:           tx,
		renderer:     renderer,
		log:          log.With("service", "transmittal"),
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// WithArchive stores every generated cover sheet in archive.
func (s *Service) WithArchive(archive coverArchive) *Service {
	s.archive = archive
	return s
}
