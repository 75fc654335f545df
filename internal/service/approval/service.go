// Package approval runs role-gated approval requests on top of the workflow
// engine.
package approval

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/doccontrol-backend/internal/domain"
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

type workflowRegistry interface {
	Get(workflowDomain string) (*domain.WorkflowDefinition, error)
	ForEntityType(entityType string) (*domain.WorkflowDefinition, error)
	AuthorizedStages(role string) []domain.StageRef
}

type instanceRepo interface {
	Create(ctx context.Context, inst domain.WorkflowInstance) error
	GetByID(ctx context.Context, id uuid.UUID) (domain.WorkflowInstance, error)
	CompareAndSwap(ctx context.Context, next domain.WorkflowInstance) (domain.WorkflowInstance, error)
	AppendHistory(ctx context.Context, seq int, entry domain.WorkflowHistoryEntry) error
}

type requestRepo interface {
	Create(ctx context.Context, req domain.ApprovalRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (domain.ApprovalRequest, error)
	UpdateState(ctx context.Context, req domain.ApprovalRequest) error
	ListPendingAt(ctx context.Context, stages []domain.StageRef, limit int) ([]domain.ApprovalRequest, error)
	ListForActor(ctx context.Context, actorID uuid.UUID, limit int) ([]domain.ApprovalRequest, error)
}

type userDirectory interface {
	ListByRoles(ctx context.Context, roles []string) ([]domain.User, error)
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

// Service provides approval request operations.
type Service struct {
	registry  workflowRegistry
	instances instanceRepo
	requests  requestRepo
	users     userDirectory
	notifier  notifier
	audit     auditLogger
	tx        txManager
	log       *slog.Logger
	now       func() time.Time
}

// NewService creates a new Approval service.
func NewService(
	log *slog.Logger,
	registry workflowRegistry,
	instances instanceRepo,
	requests requestRepo,
	users userDirectory,
	notifier notifier,
	audit auditLogger,
	tx txManager,
) *Service {
	return &Service{
		registry:  registry,
		instances: instances,
		requests:  requests,
		users:     users,
		notifier:  notifier,
		audit:     audit,
		tx:        tx,
		log:       log.With("service", "approval"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Detail is an approval request together with its workflow instance.
type Detail struct {
	Request  domain.ApprovalRequest
	Instance domain.WorkflowInstance
}

// trimOrNil trims whitespace. Returns nil if result is empty.
func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
