// Package revision controls the letter/version history of documents.
package revision

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/doccontrol-backend/internal/domain"
)

type revisionRepo interface {
	LatestForUpdate(ctx context.Context, documentID string) (domain.DocumentRevision, error)
	Supersede(ctx context.Context, id uuid.UUID) error
	Create(ctx context.Context, rev domain.DocumentRevision) error
	GetByID(ctx context.Context, id uuid.UUID) (domain.DocumentRevision, error)
	GetByLetter(ctx context.Context, documentID, letter string) (domain.DocumentRevision, error)
	CurrentApproved(ctx context.Context, documentID string) (domain.DocumentRevision, error)
	ListByDocument(ctx context.Context, documentID string) ([]domain.DocumentRevision, error)
	ListBetween(ctx context.Context, documentID string, fromVersion, toVersion int) ([]domain.DocumentRevision, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, change domain.RevisionStatusChange) (domain.DocumentRevision, error)
}

type auditLogger interface {
	Log(ctx context.Context, entry domain.AuditLogEntry) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides revision control operations.
type Service struct {
	revisions  revisionRepo
	audit      auditLogger
	tx         txManager
	log        *slog.Logger
	maxRetries int
	now        func() time.Time
}

// NewService creates a new Revision service. maxRetries bounds how often a
// lost race on the version sequence is retried.
func NewService(log *slog.Logger, revisions revisionRepo, audit auditLogger, tx txManager, maxRetries int) *Service {
	return &Service{
		revisions:  revisions,
		audit:      audit,
		tx:         tx,
		log:        log.With("service", "revision"),
		maxRetries: maxRetries,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func revisionName(rev domain.DocumentRevision) string {
	return rev.DocumentID + " rev " + rev.Letter
}
