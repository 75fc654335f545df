package revision

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/doccontrol-backend/internal/domain"
	"github.com/heartmarshall/doccontrol-backend/pkg/ctxutil"
)

// SubmitForReview moves a draft revision to review.
func (s *Service) SubmitForReview(ctx context.Context, revisionID uuid.UUID) (domain.DocumentRevision, error) {
	return s.changeStatus(ctx, revisionID, domain.AuditActionRevisionSubmitted, func(actor domain.Actor) domain.RevisionStatusChange {
		return domain.RevisionStatusChange{
			From: []domain.RevisionStatus{domain.RevisionStatusDraft},
			To:   domain.RevisionStatusReview,
		}
	})
}

// ApproveRevision approves a draft or in-review revision on behalf of the
// calling actor. Approved and superseded revisions yield
// domain.ErrInvalidTransition.
func (s *Service) ApproveRevision(ctx context.Context, revisionID uuid.UUID) (domain.DocumentRevision, error) {
	return s.changeStatus(ctx, revisionID, domain.AuditActionRevisionApproved, func(actor domain.Actor) domain.RevisionStatusChange {
		now := s.now()
		return domain.RevisionStatusChange{
			From:       []domain.RevisionStatus{domain.RevisionStatusDraft, domain.RevisionStatusReview},
			To:         domain.RevisionStatusApproved,
			ApprovedBy: &actor.ID,
			ApprovedAt: &now,
		}
	})
}

func (s *Service) changeStatus(
	ctx context.Context,
	revisionID uuid.UUID,
	action domain.AuditAction,
	change func(actor domain.Actor) domain.RevisionStatusChange,
) (domain.DocumentRevision, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return domain.DocumentRevision{}, domain.ErrUnauthorized
	}
	if revisionID == uuid.Nil {
		return domain.DocumentRevision{}, domain.NewValidationError("revision_id", "required")
	}

	c := change(actor)
	var rev domain.DocumentRevision
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		rev, err = s.revisions.UpdateStatus(txCtx, revisionID, c)
		if err != nil {
			return err
		}

		entry := domain.NewAuditEntry(actor, action, domain.EntityTypeDocumentRevision, rev.ID.String())
		entry.EntityName = revisionName(rev)
		entry.After = map[string]any{"status": string(rev.Status)}
		if err := s.audit.Log(txCtx, entry); err != nil {
			return fmt.Errorf("audit log: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.DocumentRevision{}, err
	}

	s.log.InfoContext(ctx, "revision status changed",
		slog.String("document_id", rev.DocumentID),
		slog.String("letter", rev.Letter),
		slog.String("status", string(rev.Status)),
		slog.String("actor_id", actor.ID.String()),
	)
	return rev, nil
}
