package serial

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/doccontrol-backend/internal/domain"
	"github.com/heartmarshall/doccontrol-backend/pkg/ctxutil"
)

// Reserve issues a serial eagerly and leases it to the holder until the
// reservation TTL elapses. A lapsed lease leaves a permanent gap; the serial
// is never reissued.
func (s *Service) Reserve(ctx context.Context, input ReserveInput) (domain.SerialReservation, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return domain.SerialReservation{}, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return domain.SerialReservation{}, err
	}
	holder := input.HolderID
	if holder == uuid.Nil {
		holder = actor.ID
	}

	cat := s.Category(input.Category)
	var res domain.SerialReservation
	_, err := s.allocate(ctx, actor, allocation{
		category: cat.Code,
		start:    cat.Start,
		format: func(n int64) string {
			return Format(s.prefix, cat.Code, n, cat.Width, "")
		},
		action: domain.AuditActionSerialReserved,
		attach: func(txCtx context.Context, e *domain.SerialLedgerEntry) error {
			res = domain.SerialReservation{
				ID:        uuid.New(),
				Serial:    e.Serial,
				Category:  e.Category,
				HolderID:  holder,
				ExpiresAt: e.IssuedAt.Add(s.ttl),
				CreatedAt: e.IssuedAt,
			}
			if err := s.repo.CreateReservation(txCtx, res); err != nil {
				return fmt.Errorf("create reservation: %w", err)
			}
			e.ReservationID = &res.ID
			return nil
		},
	})
	if err != nil {
		return domain.SerialReservation{}, err
	}
	return res, nil
}

// Consume marks a live reservation as used by its holder. A nil holderID
// consumes on behalf of the calling actor.
//
// Errors: domain.ErrNotFound, domain.ErrReservationExpired when the lease
// lapsed, domain.ErrConflict when already consumed or held by someone else.
func (s *Service) Consume(ctx context.Context, reservationID, holderID uuid.UUID) (domain.SerialReservation, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return domain.SerialReservation{}, domain.ErrUnauthorized
	}
	if reservationID == uuid.Nil {
		return domain.SerialReservation{}, domain.NewValidationError("reservation_id", "required")
	}
	if holderID == uuid.Nil {
		holderID = actor.ID
	}

	var res domain.SerialReservation
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		res, err = s.repo.ConsumeReservation(txCtx, reservationID, holderID, s.now())
		if err != nil {
			return err
		}

		entry := domain.NewAuditEntry(actor, domain.AuditActionSerialConsumed, domain.EntityTypeSerialReservation, res.ID.String())
		entry.EntityName = res.Serial
		entry.After = map[string]any{"consumed_at": res.ConsumedAt}
		if err := s.audit.Log(txCtx, entry); err != nil {
			return fmt.Errorf("audit log: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.SerialReservation{}, err
	}

	s.log.InfoContext(ctx, "serial reservation consumed",
		slog.String("reservation_id", res.ID.String()),
		slog.String("serial", res.Serial),
	)
	return res, nil
}

// ExpireLapsed marks every lease that ended before now as expired. It runs
// without an actor.
func (s *Service) ExpireLapsed(ctx context.Context) (int64, error) {
	n, err := s.repo.ExpireLapsed(ctx, s.now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.log.InfoContext(ctx, "serial reservations expired", slog.Int64("count", n))
	}
	return n, nil
}
