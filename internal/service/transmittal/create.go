package transmittal

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/doccontrol-backend/internal/domain"
	"github.com/heartmarshall/doccontrol-backend/pkg/ctxutil"
)

// Create numbers a new transmittal and stores it as a draft.
//
// The number is issued before the transmittal transaction; a transmittal that
// then fails to store leaves a gap in the monthly sequence.
func (s *Service) Create(ctx context.Context, input CreateInput) (domain.Transmittal, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return domain.Transmittal{}, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return domain.Transmittal{}, err
	}

	sender := input.Sender
	if sender.ID == uuid.Nil {
		sender = domain.Party{ID: actor.ID, Name: actor.Name, Organization: input.Sender.Organization}
	}
	if sender.ID == input.Recipient.ID {
		return domain.Transmittal{}, domain.NewValidationError("recipient.id", "must differ from sender")
	}

	number, err := s.numbers.IssueTransmittalNumber(ctx, input.ProjectCode)
	if err != nil {
		return domain.Transmittal{}, fmt.Errorf("issue transmittal number: %w", err)
	}

	docs := make([]domain.TransmittalDocument, len(input.Documents))
	for i, d := range input.Documents {
		d.DocumentID = strings.TrimSpace(d.DocumentID)
		d.DocumentNumber = strings.TrimSpace(d.DocumentNumber)
		d.Revision = strings.TrimSpace(d.Revision)
		docs[i] = d
	}

	now := s.now()
	t := domain.Transmittal{
		ID:          uuid.New(),
		Number:      number.Serial,
		ProjectID:   input.ProjectID,
		ProjectCode: number.ProjectCode,
		Subject:     strings.TrimSpace(input.Subject),
		Type:        input.Type,
		Status:      domain.TransmittalStatusDraft,
		Sender:      sender,
		Recipient:   input.Recipient,
		DueAt:       input.DueAt,
		Documents:   docs,
		Notes:       trimOrNil(input.Notes),
		CreatedBy:   actor.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.transmittals.Create(txCtx, t); err != nil {
			return fmt.Errorf("create transmittal: %w", err)
		}
		if err := s.transmittals.AppendHistory(txCtx, domain.TransmittalHistoryEntry{
			ID:            uuid.New(),
			TransmittalID: t.ID,
			Action:        "created",
			ToStatus:      t.Status,
			Actor:         actor,
			CreatedAt:     now,
		}); err != nil {
			return fmt.Errorf("append transmittal history: %w", err)
		}

		entry := domain.NewAuditEntry(actor, domain.AuditActionTransmittalCreated, domain.EntityTypeTransmittal, t.ID.String())
		entry.EntityName = t.Number
		entry.After = map[string]any{
			"number":    t.Number,
			"status":    string(t.Status),
			"recipient": t.Recipient.ID.String(),
			"documents": len(t.Documents),
		}
		if err := s.audit.Log(txCtx, entry); err != nil {
			return fmt.Errorf("audit log: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Transmittal{}, err
	}

	s.log.InfoContext(ctx, "transmittal created",
		slog.String("transmittal_id", t.ID.String()),
		slog.String("number", t.Number),
		slog.Int("documents", len(t.Documents)),
		slog.String("actor_id", actor.ID.String()),
	)
	return t, nil
}
