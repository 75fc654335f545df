package approval

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/doccontrol-backend/internal/domain"
	"github.com/heartmarshall/doccontrol-backend/internal/workflow"
	"github.com/heartmarshall/doccontrol-backend/pkg/ctxutil"
)

// ProcessApproval applies an action to a pending request on behalf of the
// calling actor.
//
// The instance is advanced with a compare-and-set on its version; a
// concurrent transition that won first yields domain.ErrConflict. Rejected
// attempts (permission denied, invalid transition) leave the instance
// untouched and are recorded in the audit log on a best-effort basis.
// Notifications go out only after commit.
func (s *Service) ProcessApproval(ctx context.Context, input ProcessInput) (Detail, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return Detail{}, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return Detail{}, err
	}
	action := strings.TrimSpace(input.Action)
	comment := trimOrNil(input.Comment)

	req, err := s.requests.GetByID(ctx, input.RequestID)
	if err != nil {
		return Detail{}, fmt.Errorf("get approval request: %w", err)
	}
	inst, err := s.instances.GetByID(ctx, req.WorkflowInstanceID)
	if err != nil {
		return Detail{}, fmt.Errorf("get workflow instance: %w", err)
	}
	def, err := s.registry.Get(inst.Domain)
	if err != nil {
		return Detail{}, err
	}

	now := s.now()
	next, err := workflow.Transition(def, inst, action, actor, comment, now)
	if err != nil {
		if errors.Is(err, domain.ErrPermissionDenied) || errors.Is(err, domain.ErrInvalidTransition) {
			s.recordDenied(ctx, actor, req, action, err)
		}
		return Detail{}, err
	}

	entry := next.History[len(next.History)-1]
	updated := req
	updated.CurrentStage = next.CurrentStage
	updated.Status = domain.ApprovalStatusPending
	if next.Completed {
		updated.Status = workflow.Outcome(def, next.CurrentStage).ApprovalStatus()
	}
	updated.CurrentApproverID = &actor.ID
	updated.UpdatedAt = now

	var saved domain.WorkflowInstance
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var casErr error
		saved, casErr = s.instances.CompareAndSwap(txCtx, next)
		if casErr != nil {
			return fmt.Errorf("advance workflow instance: %w", casErr)
		}
		if err := s.instances.AppendHistory(txCtx, len(next.History), entry); err != nil {
			return fmt.Errorf("append workflow history: %w", err)
		}
		if err := s.requests.UpdateState(txCtx, updated); err != nil {
			return fmt.Errorf("update approval request: %w", err)
		}

		audit := domain.NewAuditEntry(actor, domain.AuditActionApprovalTransition, domain.EntityTypeApprovalRequest, req.ID.String())
		audit.EntityName = req.EntityType + " " + req.EntityID
		audit.Before = map[string]any{"stage": req.CurrentStage, "status": string(req.Status)}
		audit.After = map[string]any{"stage": updated.CurrentStage, "status": string(updated.Status)}
		audit.Metadata = map[string]any{
			"action":           action,
			"role":             actor.Role,
			"instance_version": saved.Version,
		}
		if comment != nil {
			audit.Metadata["comment"] = *comment
		}
		if err := s.audit.Log(txCtx, audit); err != nil {
			return fmt.Errorf("audit log: %w", err)
		}
		return nil
	})
	if err != nil {
		return Detail{}, err
	}

	s.log.InfoContext(ctx, "approval processed",
		slog.String("request_id", req.ID.String()),
		slog.String("action", action),
		slog.String("from_stage", entry.Stage),
		slog.String("to_stage", entry.ToStage),
		slog.String("status", string(updated.Status)),
		slog.String("actor_id", actor.ID.String()),
	)

	s.notifyRequester(ctx, updated, entry)
	if updated.Status == domain.ApprovalStatusPending {
		s.notifyStage(ctx, def, updated, actor,
			fmt.Sprintf("Approval needed: %s %s", updated.EntityType, updated.EntityID),
			fmt.Sprintf("%s moved the request to stage %q; your action is required.", actor.Name, updated.CurrentStage),
		)
	}

	return Detail{Request: updated, Instance: saved}, nil
}

// recordDenied writes an approval.denied audit entry outside any transaction.
// Failure to record is logged, never returned.
func (s *Service) recordDenied(ctx context.Context, actor domain.Actor, req domain.ApprovalRequest, action string, cause error) {
	reason := "invalid_transition"
	if errors.Is(cause, domain.ErrPermissionDenied) {
		reason = "permission_denied"
	}

	s.log.WarnContext(ctx, "approval action denied",
		slog.String("request_id", req.ID.String()),
		slog.String("action", action),
		slog.String("stage", req.CurrentStage),
		slog.String("role", actor.Role),
		slog.String("reason", reason),
	)

	entry := domain.NewAuditEntry(actor, domain.AuditActionApprovalDenied, domain.EntityTypeApprovalRequest, req.ID.String())
	entry.EntityName = req.EntityType + " " + req.EntityID
	entry.Metadata = map[string]any{
		"action": action,
		"stage":  req.CurrentStage,
		"role":   actor.Role,
		"reason": reason,
	}
	if err := s.audit.Log(ctx, entry); err != nil {
		s.log.WarnContext(ctx, "record denied approval attempt",
			slog.String("request_id", req.ID.String()),
			slog.String("error", err.Error()),
		)
	}
}
