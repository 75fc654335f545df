package transmittal

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/doccontrol-backend/internal/domain"
	"github.com/heartmarshall/doccontrol-backend/pkg/ctxutil"
)

// Get returns a transmittal with its line items.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (domain.Transmittal, error) {
	if _, ok := ctxutil.ActorFromCtx(ctx); !ok {
		return domain.Transmittal{}, domain.ErrUnauthorized
	}
	return s.transmittals.GetByID(ctx, id)
}

// ListForProject returns the transmittals of a project, newest first.
func (s *Service) ListForProject(ctx context.Context, projectID uuid.UUID) ([]domain.Transmittal, error) {
	if _, ok := ctxutil.ActorFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}
	if projectID == uuid.Nil {
		return nil, domain.NewValidationError("project_id", "required")
	}
	return s.transmittals.ListByProject(ctx, projectID)
}

// ListPendingFor returns transmittals addressed to userID that still await a
// response. A nil userID means the calling actor.
func (s *Service) ListPendingFor(ctx context.Context, userID uuid.UUID) ([]domain.Transmittal, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if userID == uuid.Nil {
		userID = actor.ID
	}
	return s.transmittals.ListPendingFor(ctx, userID)
}

// History returns the actions taken on a transmittal, oldest first.
func (s *Service) History(ctx context.Context, id uuid.UUID) ([]domain.TransmittalHistoryEntry, error) {
	if _, ok := ctxutil.ActorFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}
	if _, err := s.transmittals.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.transmittals.History(ctx, id)
}

// GenerateCoverSheet renders the transmittal's cover sheet as PDF. With an
// archive configured the first rendering is also stored under
// transmittals/{number}.pdf; later renderings leave it untouched.
func (s *Service) GenerateCoverSheet(ctx context.Context, id uuid.UUID) ([]byte, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	pdf, err := s.renderer.Render(ctx, t)
	if err != nil {
		return nil, err
	}

	if s.archive != nil {
		key := CoverSheetKey(t.Number)
		if err := s.archive.Put(ctx, key, pdf); err != nil && !errors.Is(err, domain.ErrAlreadyExists) {
			s.log.WarnContext(ctx, "archive cover sheet",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
		}
	}
	return pdf, nil
}

// CoverSheetKey is the archive object name of a transmittal's cover sheet.
func CoverSheetKey(number string) string {
	return "transmittals/" + number + ".pdf"
}
