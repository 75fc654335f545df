package serial

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/doccontrol-backend/internal/domain"
	"github.com/heartmarshall/doccontrol-backend/internal/retry"
	"github.com/heartmarshall/doccontrol-backend/pkg/ctxutil"
)

// allocation describes one ledger append.
type allocation struct {
	category string
	period   string
	start    int64
	project  *string
	format   func(n int64) string
	action   domain.AuditAction
	// attach runs inside the transaction before the ledger append.
	attach func(ctx context.Context, e *domain.SerialLedgerEntry) error
}

// Issue allocates the next serial of input.Category and records it in the
// ledger. Sequence clashes are retried up to the configured bound, after which
// domain.ErrSequenceConflict is returned.
func (s *Service) Issue(ctx context.Context, input IssueInput) (domain.SerialLedgerEntry, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return domain.SerialLedgerEntry{}, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return domain.SerialLedgerEntry{}, err
	}

	cat := s.Category(input.Category)
	project := normalizeProject(input.ProjectCode)
	return s.allocate(ctx, actor, allocation{
		category: cat.Code,
		start:    cat.Start,
		project:  project,
		format: func(n int64) string {
			return Format(s.prefix, cat.Code, n, cat.Width, deref(project))
		},
		action: domain.AuditActionSerialIssued,
	})
}

// IssueTransmittalNumber allocates the next transmittal number of the current
// UTC month. Numbering restarts at 1 every month.
func (s *Service) IssueTransmittalNumber(ctx context.Context, projectCode *string) (domain.SerialLedgerEntry, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return domain.SerialLedgerEntry{}, domain.ErrUnauthorized
	}
	if errs := validateProject(projectCode); len(errs) > 0 {
		return domain.SerialLedgerEntry{}, domain.NewValidationErrors(errs)
	}

	period := Period(s.now())
	project := normalizeProject(projectCode)
	return s.allocate(ctx, actor, allocation{
		category: TransmittalCategory,
		period:   period,
		start:    1,
		project:  project,
		format: func(n int64) string {
			return FormatTransmittal(s.prefix, period, n, deref(project))
		},
		action: domain.AuditActionSerialIssued,
	})
}

// Ledger lists issued serials newest first. An empty category lists all.
func (s *Service) Ledger(ctx context.Context, category string, limit int) ([]domain.SerialLedgerEntry, error) {
	if _, ok := ctxutil.ActorFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}
	switch {
	case limit < 0:
		return nil, domain.NewValidationError("limit", "must be non-negative")
	case limit > MaxLedgerLimit:
		return nil, domain.NewValidationError("limit", "max 500")
	case limit == 0:
		limit = DefaultLedgerLimit
	}

	entries, err := s.repo.ListLedger(ctx, category, limit)
	if err != nil {
		return nil, fmt.Errorf("list ledger: %w", err)
	}
	return entries, nil
}

func (s *Service) allocate(ctx context.Context, actor domain.Actor, a allocation) (domain.SerialLedgerEntry, error) {
	var entry domain.SerialLedgerEntry

	err := retry.OnConflict(ctx, retry.DefaultPolicy(s.maxRetries), func(ctx context.Context) error {
		return s.tx.RunInTx(ctx, func(txCtx context.Context) error {
			n, err := s.repo.NextValue(txCtx, a.category, a.period, a.start)
			if err != nil {
				return fmt.Errorf("allocate %s sequence: %w", a.category, err)
			}

			entry = domain.SerialLedgerEntry{
				ID:          uuid.New(),
				Category:    a.category,
				Serial:      a.format(n),
				Sequence:    n,
				Period:      a.period,
				ProjectCode: a.project,
				IssuedAt:    s.now(),
			}
			if a.attach != nil {
				if err := a.attach(txCtx, &entry); err != nil {
					return err
				}
			}
			if err := s.repo.AppendLedger(txCtx, entry); err != nil {
				return fmt.Errorf("append ledger: %w", err)
			}

			audit := domain.NewAuditEntry(actor, a.action, domain.EntityTypeSerialNumber, entry.Serial)
			audit.EntityName = entry.Serial
			audit.After = map[string]any{
				"category": entry.Category,
				"sequence": entry.Sequence,
			}
			if entry.Period != "" {
				audit.After["period"] = entry.Period
			}
			if entry.ReservationID != nil {
				audit.Metadata = map[string]any{"reservation_id": entry.ReservationID.String()}
			}
			if err := s.audit.Log(txCtx, audit); err != nil {
				return fmt.Errorf("audit log: %w", err)
			}
			return nil
		})
	}, func(attempt int, err error) {
		s.log.WarnContext(ctx, "serial sequence conflict, retrying",
			slog.String("category", a.category),
			slog.Int("attempt", attempt),
		)
	}, domain.ErrSequenceConflict)
	if err != nil {
		return domain.SerialLedgerEntry{}, err
	}

	s.log.InfoContext(ctx, "serial issued",
		slog.String("serial", entry.Serial),
		slog.String("category", entry.Category),
		slog.String("actor_id", actor.ID.String()),
	)
	return entry, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
