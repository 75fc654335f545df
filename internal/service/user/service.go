// Package user maintains the local mirror of the identity provider's users.
package user

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/doccontrol-backend/internal/domain"
	"github.com/heartmarshall/doccontrol-backend/pkg/ctxutil"
)

type userRepo interface {
	GetByEmailForUpdate(ctx context.Context, email string) (domain.User, error)
	SetRole(ctx context.Context, id uuid.UUID, role string) error
}

type auditLogger interface {
	Log(ctx context.Context, entry domain.AuditLogEntry) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides user directory maintenance.
type Service struct {
	users userRepo
	audit auditLogger
	tx    txManager
	log   *slog.Logger
}

// NewService creates a new user service.
func NewService(log *slog.Logger, users userRepo, audit auditLogger, tx txManager) *Service {
	return &Service{
		users: users,
		audit: audit,
		tx:    tx,
		log:   log.With("service", "user"),
	}
}

// ChangeRole assigns role to the user with email and records the change in
// the audit log in the same transaction. Assigning the role a user already
// holds is ErrConflict.
func (s *Service) ChangeRole(ctx context.Context, email, role string) (domain.User, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return domain.User{}, domain.ErrUnauthorized
	}

	email, role = strings.TrimSpace(email), strings.TrimSpace(role)
	var errs []domain.FieldError
	if email == "" {
		errs = append(errs, domain.FieldError{Field: "email", Message: "required"})
	}
	if role == "" {
		errs = append(errs, domain.FieldError{Field: "role", Message: "required"})
	}
	if len(errs) > 0 {
		return domain.User{}, domain.NewValidationErrors(errs)
	}

	var updated domain.User
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		u, err := s.users.GetByEmailForUpdate(txCtx, email)
		if err != nil {
			return err
		}
		if u.Role == role {
			return fmt.Errorf("user %s already has role %q: %w", u.Email, role, domain.ErrConflict)
		}
		if err := s.users.SetRole(txCtx, u.ID, role); err != nil {
			return fmt.Errorf("set role: %w", err)
		}

		entry := domain.NewAuditEntry(actor, domain.AuditActionUserRoleChanged, domain.EntityTypeUser, u.ID.String())
		entry.EntityName = u.Email
		entry.Before = map[string]any{"role": u.Role}
		entry.After = map[string]any{"role": role}
		if err := s.audit.Log(txCtx, entry); err != nil {
			return fmt.Errorf("audit log: %w", err)
		}

		updated = u
		updated.Role = role
		return nil
	})
	if err != nil {
		return domain.User{}, err
	}

	s.log.InfoContext(ctx, "user role changed",
		slog.String("user_id", updated.ID.String()),
		slog.String("role", role),
		slog.String("actor_id", actor.ID.String()),
	)
	return updated, nil
}
