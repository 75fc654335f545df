package revision

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/doccontrol-backend/internal/domain"
	"github.com/heartmarshall/doccontrol-backend/pkg/ctxutil"
)

// GetCurrentRevision returns the highest-version approved revision of a
// document, or domain.ErrNotFound when none is approved.
func (s *Service) GetCurrentRevision(ctx context.Context, documentID string) (domain.DocumentRevision, error) {
	if _, ok := ctxutil.ActorFromCtx(ctx); !ok {
		return domain.DocumentRevision{}, domain.ErrUnauthorized
	}
	documentID = strings.TrimSpace(documentID)
	if documentID == "" {
		return domain.DocumentRevision{}, domain.NewValidationError("document_id", "required")
	}
	return s.revisions.CurrentApproved(ctx, documentID)
}

// GetRevision returns a revision by id.
func (s *Service) GetRevision(ctx context.Context, id uuid.UUID) (domain.DocumentRevision, error) {
	if _, ok := ctxutil.ActorFromCtx(ctx); !ok {
		return domain.DocumentRevision{}, domain.ErrUnauthorized
	}
	return s.revisions.GetByID(ctx, id)
}

// ListRevisions returns every revision of a document, newest first.
func (s *Service) ListRevisions(ctx context.Context, documentID string) ([]domain.DocumentRevision, error) {
	if _, ok := ctxutil.ActorFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}
	documentID = strings.TrimSpace(documentID)
	if documentID == "" {
		return nil, domain.NewValidationError("document_id", "required")
	}
	return s.revisions.ListByDocument(ctx, documentID)
}

// CompareRevisions returns two revisions of a document ordered by version
// and the change descriptions recorded after the older one, up to and
// including the newer one. No content diff is performed.
func (s *Service) CompareRevisions(ctx context.Context, input CompareInput) (domain.RevisionComparison, error) {
	if _, ok := ctxutil.ActorFromCtx(ctx); !ok {
		return domain.RevisionComparison{}, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return domain.RevisionComparison{}, err
	}
	docID := strings.TrimSpace(input.DocumentID)

	var a, b domain.DocumentRevision
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		a, err = s.revisions.GetByLetter(gctx, docID, input.A)
		return err
	})
	g.Go(func() error {
		var err error
		b, err = s.revisions.GetByLetter(gctx, docID, input.B)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.RevisionComparison{}, err
	}

	older, newer := a, b
	if older.Version > newer.Version {
		older, newer = newer, older
	}

	between, err := s.revisions.ListBetween(ctx, docID, older.Version, newer.Version)
	if err != nil {
		return domain.RevisionComparison{}, fmt.Errorf("list revisions between %s and %s: %w", older.Letter, newer.Letter, err)
	}

	summary := make([]string, 0, len(between))
	for _, rev := range between {
		if rev.Changes == nil {
			continue
		}
		summary = append(summary, rev.Letter+": "+*rev.Changes)
	}

	return domain.RevisionComparison{Old: older, New: newer, ChangeSummary: summary}, nil
}
