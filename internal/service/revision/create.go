package revision

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/doccontrol-backend/internal/domain"
	"github.com/heartmarshall/doccontrol-backend/internal/retry"
	"github.com/heartmarshall/doccontrol-backend/pkg/ctxutil"
)

// CreateRevision adds the next revision of a document in draft status and
// supersedes the previous one, whatever its status.
//
// The latest revision is locked for the duration of the transaction. The first
// revision of a document has nothing to lock, so two concurrent first
// creations race on the (document, version) constraint; the loser is retried.
func (s *Service) CreateRevision(ctx context.Context, input CreateInput) (domain.DocumentRevision, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return domain.DocumentRevision{}, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return domain.DocumentRevision{}, err
	}
	docID := strings.TrimSpace(input.DocumentID)
	changes := trimOrNil(input.Changes)

	var (
		created    domain.DocumentRevision
		supersedes *domain.DocumentRevision
	)
	err := retry.OnConflict(ctx, retry.DefaultPolicy(s.maxRetries), func(ctx context.Context) error {
		supersedes = nil
		return s.tx.RunInTx(ctx, func(txCtx context.Context) error {
			latest, err := s.revisions.LatestForUpdate(txCtx, docID)
			switch {
			case errors.Is(err, domain.ErrNotFound):
				latest = domain.DocumentRevision{}
			case err != nil:
				return fmt.Errorf("lock latest revision: %w", err)
			default:
				supersedes = &latest
			}

			letter, err := NextRevisionLetter(latest.Letter)
			if err != nil {
				return err
			}
			now := s.now()
			created = domain.DocumentRevision{
				ID:          uuid.New(),
				DocumentID:  docID,
				Letter:      letter,
				Version:     latest.Version + 1,
				Status:      domain.RevisionStatusDraft,
				ArtifactRef: strings.TrimSpace(input.ArtifactRef),
				Size:        input.Size,
				CreatedBy:   actor.ID,
				Changes:     changes,
				CreatedAt:   now,
			}

			if supersedes != nil && supersedes.Status != domain.RevisionStatusSuperseded {
				if err := s.revisions.Supersede(txCtx, supersedes.ID); err != nil {
					return fmt.Errorf("supersede revision %s: %w", supersedes.Letter, err)
				}
			}
			if err := s.revisions.Create(txCtx, created); err != nil {
				return fmt.Errorf("create revision: %w", err)
			}

			entry := domain.NewAuditEntry(actor, domain.AuditActionRevisionCreated, domain.EntityTypeDocumentRevision, created.ID.String())
			entry.EntityName = revisionName(created)
			entry.After = map[string]any{
				"letter":       created.Letter,
				"version":      created.Version,
				"status":       string(created.Status),
				"artifact_ref": created.ArtifactRef,
			}
			if supersedes != nil {
				entry.Before = map[string]any{
					"letter":  supersedes.Letter,
					"version": supersedes.Version,
					"status":  string(supersedes.Status),
				}
			}
			if err := s.audit.Log(txCtx, entry); err != nil {
				return fmt.Errorf("audit log: %w", err)
			}
			return nil
		})
	}, func(attempt int, err error) {
		s.log.WarnContext(ctx, "revision sequence conflict, retrying",
			slog.String("document_id", docID),
			slog.Int("attempt", attempt),
		)
	}, domain.ErrSequenceConflict)
	if err != nil {
		return domain.DocumentRevision{}, err
	}

	attrs := []any{
		slog.String("document_id", docID),
		slog.String("letter", created.Letter),
		slog.Int("version", created.Version),
		slog.String("actor_id", actor.ID.String()),
	}
	if supersedes != nil {
		attrs = append(attrs, slog.String("superseded", supersedes.Letter))
	}
	s.log.InfoContext(ctx, "revision created", attrs...)

	return created, nil
}
