// Package serial persists serial counters, the issued-serial ledger and
// serial reservations.
package serial

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/heartmarshall/doccontrol-backend/internal/adapter/postgres"
	"github.com/heartmarshall/doccontrol-backend/internal/domain"
)

const defaultLedgerLimit = 50

// Every allocation lands past the highest sequence already in the ledger, so
// a wiped or lagging counter row never reissues a serial.
const nextValueSQL = `
INSERT INTO serial_counters (category, period, last_value, updated_at)
VALUES ($1, $2, GREATEST($3::bigint, COALESCE(
    (SELECT MAX(sequence) FROM serial_ledger WHERE category = $1 AND period = $2), 0) + 1), now())
ON CONFLICT (category, period)
DO UPDATE SET last_value = GREATEST(serial_counters.last_value, COALESCE(
    (SELECT MAX(sequence) FROM serial_ledger WHERE category = $1 AND period = $2), 0)) + 1,
    updated_at = now()
RETURNING last_value`

var (
	ledgerColumns = []string{
		"id", "category", "serial", "sequence", "period", "project_code", "reservation_id", "issued_at",
	}
	reservationColumns = []string{
		"id", "serial", "category", "holder_id", "expires_at", "consumed_at", "expired_at", "created_at",
	}
)

// Repo provides serial number persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new serial repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type ledgerRow struct {
	ID            uuid.UUID  `db:"id"`
	Category      string     `db:"category"`
	Serial        string     `db:"serial"`
	Sequence      int64      `db:"sequence"`
	Period        string     `db:"period"`
	ProjectCode   *string    `db:"project_code"`
	ReservationID *uuid.UUID `db:"reservation_id"`
	IssuedAt      time.Time  `db:"issued_at"`
}

func (r ledgerRow) toDomain() domain.SerialLedgerEntry {
	return domain.SerialLedgerEntry{
		ID:            r.ID,
		Category:      r.Category,
		Serial:        r.Serial,
		Sequence:      r.Sequence,
		Period:        r.Period,
		ProjectCode:   r.ProjectCode,
		ReservationID: r.ReservationID,
		IssuedAt:      r.IssuedAt,
	}
}

type reservationRow struct {
	ID         uuid.UUID  `db:"id"`
	Serial     string     `db:"serial"`
	Category   string     `db:"category"`
	HolderID   uuid.UUID  `db:"holder_id"`
	ExpiresAt  time.Time  `db:"expires_at"`
	ConsumedAt *time.Time `db:"consumed_at"`
	ExpiredAt  *time.Time `db:"expired_at"`
	CreatedAt  time.Time  `db:"created_at"`
}

func (r reservationRow) toDomain() domain.SerialReservation {
	return domain.SerialReservation{
		ID:         r.ID,
		Serial:     r.Serial,
		Category:   r.Category,
		HolderID:   r.HolderID,
		ExpiresAt:  r.ExpiresAt,
		ConsumedAt: r.ConsumedAt,
		ExpiredAt:  r.ExpiredAt,
		CreatedAt:  r.CreatedAt,
	}
}

// ---------------------------------------------------------------------------
// Counters and ledger
// ---------------------------------------------------------------------------

// NextValue atomically allocates the next sequence number of (category,
// period). The first allocation is max(start, highest ledger sequence + 1).
func (r *Repo) NextValue(ctx context.Context, category, period string, start int64) (int64, error) {
	var next int64
	err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, nextValueSQL, category, period, start).Scan(&next)
	if err != nil {
		return 0, postgres.MapError(err, "serial_counter", category)
	}
	return next, nil
}

// AppendLedger records an issued serial. A clash on the serial or on
// (category, period, sequence) is domain.ErrSequenceConflict.
func (r *Repo) AppendLedger(ctx context.Context, e domain.SerialLedgerEntry) error {
	sql, args, err := postgres.Builder().
		Insert("serial_ledger").
		Columns(ledgerColumns...).
		Values(e.ID, e.Category, e.Serial, e.Sequence, e.Period, e.ProjectCode, e.ReservationID, e.IssuedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build ledger insert: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...); err != nil {
		return postgres.MapSequenceError(err, "serial_ledger", e.Serial)
	}
	return nil
}

// ListLedger returns issued serials of a category, newest first. An empty
// category lists every category.
func (r *Repo) ListLedger(ctx context.Context, category string, limit int) ([]domain.SerialLedgerEntry, error) {
	if limit <= 0 {
		limit = defaultLedgerLimit
	}

	b := postgres.Builder().
		Select(ledgerColumns...).
		From("serial_ledger").
		OrderBy("issued_at DESC", "sequence DESC").
		Limit(uint64(limit))
	if category != "" {
		b = b.Where(squirrel.Eq{"category": strings.ToUpper(category)})
	}

	sql, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build ledger query: %w", err)
	}

	var rows []ledgerRow
	if err := postgres.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list serial ledger: %w", err)
	}

	out := make([]domain.SerialLedgerEntry, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Reservations
// ---------------------------------------------------------------------------

// CreateReservation inserts a reservation.
func (r *Repo) CreateReservation(ctx context.Context, res domain.SerialReservation) error {
	sql, args, err := postgres.Builder().
		Insert("serial_reservations").
		Columns(reservationColumns...).
		Values(res.ID, res.Serial, res.Category, res.HolderID, res.ExpiresAt, res.ConsumedAt, res.ExpiredAt, res.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build reservation insert: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "serial_reservation", res.ID)
	}
	return nil
}

// GetReservation returns a reservation by primary key.
func (r *Repo) GetReservation(ctx context.Context, id uuid.UUID) (domain.SerialReservation, error) {
	sql, args, err := postgres.Builder().
		Select(reservationColumns...).
		From("serial_reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return domain.SerialReservation{}, fmt.Errorf("build reservation query: %w", err)
	}

	var row reservationRow
	if err := postgres.GetOne(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, sql, args...); err != nil {
		return domain.SerialReservation{}, postgres.MapError(err, "serial_reservation", id)
	}
	return row.toDomain(), nil
}

// ConsumeReservation marks a live reservation held by holderID as used.
//
// Errors: domain.ErrNotFound for an unknown id, domain.ErrReservationExpired
// when the lease lapsed, domain.ErrConflict when it was already consumed or
// belongs to someone else.
func (r *Repo) ConsumeReservation(ctx context.Context, id, holderID uuid.UUID, now time.Time) (domain.SerialReservation, error) {
	sql, args, err := postgres.Builder().
		Update("serial_reservations").
		Set("consumed_at", now).
		Where(squirrel.Eq{"id": id, "holder_id": holderID, "consumed_at": nil, "expired_at": nil}).
		Where(squirrel.Gt{"expires_at": now}).
		Suffix("RETURNING " + strings.Join(reservationColumns, ", ")).
		ToSql()
	if err != nil {
		return domain.SerialReservation{}, fmt.Errorf("build reservation consume: %w", err)
	}

	var row reservationRow
	err = postgres.GetOne(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, sql, args...)
	if err == nil {
		return row.toDomain(), nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return domain.SerialReservation{}, postgres.MapError(err, "serial_reservation", id)
	}

	res, err := r.GetReservation(ctx, id)
	if err != nil {
		return domain.SerialReservation{}, err
	}
	switch {
	case res.ConsumedAt != nil:
		return domain.SerialReservation{}, fmt.Errorf("serial_reservation %s already consumed: %w", id, domain.ErrConflict)
	case res.ExpiredAt != nil || res.IsExpired(now):
		return domain.SerialReservation{}, fmt.Errorf("serial_reservation %s: %w", id, domain.ErrReservationExpired)
	default:
		return domain.SerialReservation{}, fmt.Errorf("serial_reservation %s held by another user: %w", id, domain.ErrConflict)
	}
}

// ExpireLapsed marks every open reservation whose lease ended at or before
// now as expired and returns how many were marked.
func (r *Repo) ExpireLapsed(ctx context.Context, now time.Time) (int64, error) {
	sql, args, err := postgres.Builder().
		Update("serial_reservations").
		Set("expired_at", now).
		Where(squirrel.Eq{"consumed_at": nil, "expired_at": nil}).
		Where(squirrel.LtOrEq{"expires_at": now}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build reservation expiry: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("expire lapsed reservations: %w", err)
	}
	return tag.RowsAffected(), nil
}
