package approval

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/doccontrol-backend/internal/domain"
	"github.com/heartmarshall/doccontrol-backend/internal/workflow"
	"github.com/heartmarshall/doccontrol-backend/pkg/ctxutil"
)

// GetApprovalRequests returns the calling actor's inbox: pending requests
// whose current stage authorizes the actor's role, oldest first.
func (s *Service) GetApprovalRequests(ctx context.Context, input ListInput) ([]domain.ApprovalRequest, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	stages := s.registry.AuthorizedStages(actor.Role)
	if len(stages) == 0 {
		return []domain.ApprovalRequest{}, nil
	}

	reqs, err := s.requests.ListPendingAt(ctx, stages, input.limit())
	if err != nil {
		return nil, fmt.Errorf("list inbox: %w", err)
	}
	return reqs, nil
}

// GetApprovalHistory returns requests the calling actor raised, currently
// holds, or acted on, most recently updated first.
func (s *Service) GetApprovalHistory(ctx context.Context, input ListInput) ([]domain.ApprovalRequest, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	reqs, err := s.requests.ListForActor(ctx, actor.ID, input.limit())
	if err != nil {
		return nil, fmt.Errorf("list approval history: %w", err)
	}
	return reqs, nil
}

// GetApprovalRequest returns a request with its workflow instance and full
// history.
func (s *Service) GetApprovalRequest(ctx context.Context, id uuid.UUID) (Detail, error) {
	if _, ok := ctxutil.ActorFromCtx(ctx); !ok {
		return Detail{}, domain.ErrUnauthorized
	}
	if id == uuid.Nil {
		return Detail{}, domain.NewValidationError("request_id", "required")
	}

	req, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return Detail{}, fmt.Errorf("get approval request: %w", err)
	}
	inst, err := s.instances.GetByID(ctx, req.WorkflowInstanceID)
	if err != nil {
		return Detail{}, fmt.Errorf("get workflow instance: %w", err)
	}
	return Detail{Request: req, Instance: inst}, nil
}

// GetWorkflow returns the definition of a workflow domain so clients can
// render the actions available at each stage.
func (s *Service) GetWorkflow(workflowDomain string) (*domain.WorkflowDefinition, error) {
	return s.registry.Get(workflowDomain)
}

// AvailableActions lists the actions the calling actor may perform on the
// request in its current stage.
func (s *Service) AvailableActions(ctx context.Context, d Detail) ([]string, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	def, err := s.registry.Get(d.Instance.Domain)
	if err != nil {
		return nil, err
	}
	actions := []string{}
	stage, ok := def.Stage(d.Instance.CurrentStage)
	if !ok || d.Instance.Completed {
		return actions, nil
	}
	for _, a := range stage.AllowedActions {
		if workflow.CanPerformAction(def, stage.ID, a, actor.Role) {
			actions = append(actions, a)
		}
	}
	return actions, nil
}
