// Package audit exposes the append-only audit log for compliance queries.
package audit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/doccontrol-backend/internal/domain"
	"github.com/heartmarshall/doccontrol-backend/pkg/ctxutil"
)

const (
	DefaultLimit = 50
	MaxLimit     = 500
)

type auditRepo interface {
	Query(ctx context.Context, f domain.AuditFilter) ([]domain.AuditLogEntry, error)
}

// Service provides audit log queries.
type Service struct {
	repo auditRepo
	log  *slog.Logger
}

// NewService creates a new Audit service.
func NewService(log *slog.Logger, repo auditRepo) *Service {
	return &Service{repo: repo, log: log.With("service", "audit")}
}

// Query returns audit entries matching f, newest first.
func (s *Service) Query(ctx context.Context, f domain.AuditFilter) ([]domain.AuditLogEntry, error) {
	if _, ok := ctxutil.ActorFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}

	var errs []domain.FieldError
	if f.Limit < 0 || f.Limit > MaxLimit {
		errs = append(errs, domain.FieldError{Field: "limit", Message: fmt.Sprintf("must be between 0 and %d", MaxLimit)})
	}
	if f.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be non-negative"})
	}
	if f.From != nil && f.To != nil && !f.From.Before(*f.To) {
		errs = append(errs, domain.FieldError{Field: "to", Message: "must be after from"})
	}
	if f.EntityType != nil && !f.EntityType.IsValid() {
		errs = append(errs, domain.FieldError{Field: "entity_type", Message: "unknown entity type"})
	}
	if len(errs) > 0 {
		return nil, domain.NewValidationErrors(errs)
	}
	if f.Limit == 0 {
		f.Limit = DefaultLimit
	}

	entries, err := s.repo.Query(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("query audit log: %w", err)
	}
	return entries, nil
}
