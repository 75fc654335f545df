package approval

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/doccontrol-backend/internal/domain"
	"github.com/heartmarshall/doccontrol-backend/internal/workflow"
	"github.com/heartmarshall/doccontrol-backend/pkg/ctxutil"
)

// CreateApprovalRequest starts the workflow governing input.EntityType for
// the entity and opens a pending request on behalf of the calling actor.
// Users holding a role of the initial stage are notified after commit.
func (s *Service) CreateApprovalRequest(ctx context.Context, input CreateRequestInput) (Detail, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return Detail{}, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return Detail{}, err
	}

	def, err := s.registry.ForEntityType(strings.TrimSpace(input.EntityType))
	if err != nil {
		return Detail{}, err
	}

	now := s.now()
	inst := workflow.NewInstance(def, strings.TrimSpace(input.EntityID), now)
	req := domain.ApprovalRequest{
		ID:                 uuid.New(),
		EntityType:         inst.EntityType,
		EntityID:           inst.EntityID,
		WorkflowInstanceID: inst.ID,
		RequesterID:        actor.ID,
		RequesterName:      actor.Name,
		Status:             domain.ApprovalStatusPending,
		CurrentStage:       inst.CurrentStage,
		Comment:            trimOrNil(input.Comment),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if inst.Completed {
		req.Status = workflow.Outcome(def, inst.CurrentStage).ApprovalStatus()
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.instances.Create(txCtx, inst); err != nil {
			return fmt.Errorf("create workflow instance: %w", err)
		}
		if err := s.requests.Create(txCtx, req); err != nil {
			return fmt.Errorf("create approval request: %w", err)
		}

		entry := domain.NewAuditEntry(actor, domain.AuditActionApprovalRequested, domain.EntityTypeApprovalRequest, req.ID.String())
		entry.EntityName = req.EntityType + " " + req.EntityID
		entry.After = map[string]any{
			"status": string(req.Status),
			"stage":  req.CurrentStage,
		}
		entry.Metadata = map[string]any{
			"workflow_domain":      def.Domain,
			"workflow_instance_id": inst.ID.String(),
		}
		if err := s.audit.Log(txCtx, entry); err != nil {
			return fmt.Errorf("audit log: %w", err)
		}
		return nil
	})
	if err != nil {
		return Detail{}, err
	}

	s.log.InfoContext(ctx, "approval requested",
		slog.String("request_id", req.ID.String()),
		slog.String("entity_type", req.EntityType),
		slog.String("entity_id", req.EntityID),
		slog.String("stage", req.CurrentStage),
		slog.String("requester_id", actor.ID.String()),
	)

	if !inst.Completed {
		s.notifyStage(ctx, def, req, actor,
			fmt.Sprintf("Approval requested: %s %s", req.EntityType, req.EntityID),
			fmt.Sprintf("%s requested approval; the request is waiting at stage %q.", actor.Name, req.CurrentStage),
		)
	}

	return Detail{Request: req, Instance: inst}, nil
}
