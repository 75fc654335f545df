package transmittal

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"github.com/heartmarshall/doccontrol-backend/internal/domain"
	"github.com/heartmarshall/doccontrol-backend/pkg/ctxutil"
)

type party int

const (
	bySender party = iota
	byRecipient
)

// move is one legal status change.
type move struct {
	action string
	from   []domain.TransmittalStatus
	to     domain.TransmittalStatus
	by     party
}

var (
	moveSend        = move{"send", []domain.TransmittalStatus{domain.TransmittalStatusDraft}, domain.TransmittalStatusSent, bySender}
	moveReceive     = move{"receive", []domain.TransmittalStatus{domain.TransmittalStatusSent}, domain.TransmittalStatusReceived, byRecipient}
	moveAcknowledge = move{"acknowledge", []domain.TransmittalStatus{domain.TransmittalStatusSent, domain.TransmittalStatusReceived}, domain.TransmittalStatusAcknowledged, byRecipient}
	moveReject      = move{"reject", []domain.TransmittalStatus{domain.TransmittalStatusSent, domain.TransmittalStatusReceived}, domain.TransmittalStatusRejected, byRecipient}
)

// Send dispatches a draft to its recipient and stamps the issue time.
// Only the sender or the creator may send.
func (s *Service) Send(ctx context.Context, id uuid.UUID) (domain.Transmittal, error) {
	return s.apply(ctx, id, moveSend, nil)
}

// MarkReceived records that the recipient has the documents.
func (s *Service) MarkReceived(ctx context.Context, id uuid.UUID) (domain.Transmittal, error) {
	return s.apply(ctx, id, moveReceive, nil)
}

// Acknowledge closes a sent or received transmittal on behalf of the recipient.
func (s *Service) Acknowledge(ctx context.Context, id uuid.UUID, comment *string) (domain.Transmittal, error) {
	return s.apply(ctx, id, moveAcknowledge, comment)
}

// Reject returns a sent or received transmittal to the sender. A comment is
// required.
func (s *Service) Reject(ctx context.Context, id uuid.UUID, comment string) (domain.Transmittal, error) {
	c := trimOrNil(&comment)
	if c == nil {
		return domain.Transmittal{}, domain.NewValidationError("comment", "required")
	}
	return s.apply(ctx, id, moveReject, c)
}

func (s *Service) apply(ctx context.Context, id uuid.UUID, m move, comment *string) (domain.Transmittal, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return domain.Transmittal{}, domain.ErrUnauthorized
	}
	if id == uuid.Nil {
		return domain.Transmittal{}, domain.NewValidationError("transmittal_id", "required")
	}
	comment = trimOrNil(comment)

	var before, after domain.Transmittal
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		before, err = s.transmittals.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if !mayAct(before, actor, m.by) {
			return &domain.TransitionError{
				EntityType: string(domain.EntityTypeTransmittal),
				EntityID:   before.Number,
				Stage:      string(before.Status),
				Action:     m.action,
				Role:       actor.Role,
				Err:        domain.ErrPermissionDenied,
			}
		}
		if !slices.Contains(m.from, before.Status) {
			return &domain.TransitionError{
				EntityType: string(domain.EntityTypeTransmittal),
				EntityID:   before.Number,
				Stage:      string(before.Status),
				Action:     m.action,
				Err:        domain.ErrInvalidTransition,
			}
		}

		now := s.now()
		change := domain.TransmittalStatusChange{From: m.from, To: m.to, UpdatedAt: now}
		if m.to == domain.TransmittalStatusSent {
			change.IssuedAt = &now
		}
		after, err = s.transmittals.UpdateStatus(txCtx, id, m.action, change)
		if err != nil {
			return err
		}

		from := before.Status
		if err := s.transmittals.AppendHistory(txCtx, domain.TransmittalHistoryEntry{
			ID:            uuid.New(),
			TransmittalID: id,
			Action:        m.action,
			FromStatus:    &from,
			ToStatus:      after.Status,
			Actor:         actor,
			Comment:       comment,
			CreatedAt:     now,
		}); err != nil {
			return fmt.Errorf("append transmittal history: %w", err)
		}

		entry := domain.NewAuditEntry(actor, domain.AuditActionTransmittalStatus, domain.EntityTypeTransmittal, id.String())
		entry.EntityName = after.Number
		entry.Before = map[string]any{"status": string(before.Status)}
		entry.After = map[string]any{"status": string(after.Status)}
		entry.Metadata = map[string]any{"action": m.action}
		if comment != nil {
			entry.Metadata["comment"] = *comment
		}
		if err := s.audit.Log(txCtx, entry); err != nil {
			return fmt.Errorf("audit log: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Transmittal{}, err
	}

	s.log.InfoContext(ctx, "transmittal status changed",
		slog.String("transmittal_id", id.String()),
		slog.String("number", after.Number),
		slog.String("action", m.action),
		slog.String("from", string(before.Status)),
		slog.String("to", string(after.Status)),
	)
	s.notifyCounterparty(ctx, after, m, actor, comment)

	return after, nil
}

func mayAct(t domain.Transmittal, actor domain.Actor, by party) bool {
	if by == byRecipient {
		return actor.ID == t.Recipient.ID
	}
	return actor.ID == t.Sender.ID || actor.ID == t.CreatedBy
}

// notifyCounterparty tells the other side of the transmittal what happened.
func (s *Service) notifyCounterparty(ctx context.Context, t domain.Transmittal, m move, actor domain.Actor, comment *string) {
	to := t.Sender.ID
	if m.by == bySender {
		to = t.Recipient.ID
	}
	if to == actor.ID || to == uuid.Nil {
		return
	}

	msg := fmt.Sprintf("%s marked transmittal %s %q: %s.", actor.Name, t.Number, t.Subject, t.Status)
	if comment != nil {
		msg += " Comment: " + *comment
	}
	s.notifier.Notify(ctx, domain.Notification{
		UserID:     to,
		Title:      fmt.Sprintf("Transmittal %s %s", t.Number, t.Status),
		Message:    msg,
		EntityType: string(domain.EntityTypeTransmittal),
		EntityID:   t.ID.String(),
	})
}
