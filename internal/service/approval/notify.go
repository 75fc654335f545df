package approval

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/doccontrol-backend/internal/domain"
)

// notifyStage enqueues a notification for every user who holds a role of the
// request's current stage, except the actor. Stages open to any role have no
// audience. Lookup failures are logged and swallowed.
func (s *Service) notifyStage(ctx context.Context, def *domain.WorkflowDefinition, req domain.ApprovalRequest, actor domain.Actor, title, message string) {
	stage, ok := def.Stage(req.CurrentStage)
	if !ok || len(stage.RequiredRoles) == 0 {
		return
	}

	users, err := s.users.ListByRoles(ctx, stage.RequiredRoles)
	if err != nil {
		s.log.WarnContext(ctx, "resolve stage approvers",
			slog.String("request_id", req.ID.String()),
			slog.String("stage", req.CurrentStage),
			slog.String("error", err.Error()),
		)
		return
	}

	notes := make([]domain.Notification, 0, len(users))
	for _, u := range users {
		if u.ID == actor.ID {
			continue
		}
		notes = append(notes, domain.Notification{
			UserID:     u.ID,
			Title:      title,
			Message:    message,
			EntityType: req.EntityType,
			EntityID:   req.EntityID,
		})
	}
	if len(notes) > 0 {
		s.notifier.Notify(ctx, notes...)
	}
}

// notifyRequester tells the requester what happened to their request.
func (s *Service) notifyRequester(ctx context.Context, req domain.ApprovalRequest, entry domain.WorkflowHistoryEntry) {
	var title string
	switch req.Status {
	case domain.ApprovalStatusApproved:
		title = fmt.Sprintf("Approved: %s %s", req.EntityType, req.EntityID)
	case domain.ApprovalStatusRejected:
		title = fmt.Sprintf("Rejected: %s %s", req.EntityType, req.EntityID)
	default:
		title = fmt.Sprintf("Update: %s %s", req.EntityType, req.EntityID)
	}

	msg := fmt.Sprintf("%s (%s) performed %q: %s -> %s.",
		entry.Actor.Name, entry.Actor.Role, entry.Action, entry.Stage, entry.ToStage)
	if entry.Comment != nil {
		msg += " Comment: " + *entry.Comment
	}

	s.notifier.Notify(ctx, domain.Notification{
		UserID:     req.RequesterID,
		Title:      title,
		Message:    msg,
		EntityType: req.EntityType,
		EntityID:   req.EntityID,
	})
}
