// Package audit implements the append-only audit log using PostgreSQL.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/heartmarshall/doccontrol-backend/internal/adapter/postgres"
	"github.com/heartmarshall/doccontrol-backend/internal/domain"
)

var auditColumns = []string{
	"id", "actor_id", "actor_name", "action", "entity_type", "entity_id",
	"entity_name", "before", "after", "metadata", "created_at",
}

// Repo provides audit log persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new audit repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type auditRow struct {
	ID         uuid.UUID `db:"id"`
	ActorID    uuid.UUID `db:"actor_id"`
	ActorName  string    `db:"actor_name"`
	Action     string    `db:"action"`
	EntityType string    `db:"entity_type"`
	EntityID   string    `db:"entity_id"`
	EntityName string    `db:"entity_name"`
	Before     []byte    `db:"before"`
	After      []byte    `db:"after"`
	Metadata   []byte    `db:"metadata"`
	CreatedAt  time.Time `db:"created_at"`
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Log appends an entry. A zero ID or CreatedAt is filled in.
// Satisfies the auditLogger interface of every service.
func (r *Repo) Log(ctx context.Context, e domain.AuditLogEntry) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	before, err := marshalJSON(e.Before)
	if err != nil {
		return fmt.Errorf("audit_log marshal before: %w", err)
	}
	after, err := marshalJSON(e.After)
	if err != nil {
		return fmt.Errorf("audit_log marshal after: %w", err)
	}
	metadata, err := marshalJSON(e.Metadata)
	if err != nil {
		return fmt.Errorf("audit_log marshal metadata: %w", err)
	}

	sql, args, err := postgres.Builder().
		Insert("audit_log").
		Columns(auditColumns...).
		Values(e.ID, e.ActorID, e.ActorName, string(e.Action), string(e.EntityType), e.EntityID,
			e.EntityName, before, after, metadata, e.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build audit insert: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "audit_log", e.ID)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// Query returns entries matching f, newest first. Limit and Offset are used
// as given; the service clamps them.
func (r *Repo) Query(ctx context.Context, f domain.AuditFilter) ([]domain.AuditLogEntry, error) {
	b := postgres.Builder().
		Select(auditColumns...).
		From("audit_log").
		OrderBy("created_at DESC", "id DESC")

	if f.ActorID != nil {
		b = b.Where(squirrel.Eq{"actor_id": *f.ActorID})
	}
	if f.EntityType != nil {
		b = b.Where(squirrel.Eq{"entity_type": string(*f.EntityType)})
	}
	if f.EntityID != nil {
		b = b.Where(squirrel.Eq{"entity_id": *f.EntityID})
	}
	if f.Action != nil {
		b = b.Where(squirrel.Eq{"action": string(*f.Action)})
	}
	if f.From != nil {
		b = b.Where(squirrel.GtOrEq{"created_at": *f.From})
	}
	if f.To != nil {
		b = b.Where(squirrel.Lt{"created_at": *f.To})
	}
	if f.Limit > 0 {
		b = b.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		b = b.Offset(uint64(f.Offset))
	}

	sql, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build audit query: %w", err)
	}

	var rows []auditRow
	if err := postgres.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("query audit_log: %w", err)
	}

	entries := make([]domain.AuditLogEntry, len(rows))
	for i, row := range rows {
		e, err := toDomainEntry(row)
		if err != nil {
			return nil, err
		}
		entries[i] = e
	}
	return entries, nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

func toDomainEntry(row auditRow) (domain.AuditLogEntry, error) {
	e := domain.AuditLogEntry{
		ID:         row.ID,
		ActorID:    row.ActorID,
		ActorName:  row.ActorName,
		Action:     domain.AuditAction(row.Action),
		EntityType: domain.EntityType(row.EntityType),
		EntityID:   row.EntityID,
		EntityName: row.EntityName,
		CreatedAt:  row.CreatedAt,
	}

	var err error
	if e.Before, err = unmarshalJSON(row.Before); err != nil {
		return domain.AuditLogEntry{}, fmt.Errorf("audit_log %s unmarshal before: %w", row.ID, err)
	}
	if e.After, err = unmarshalJSON(row.After); err != nil {
		return domain.AuditLogEntry{}, fmt.Errorf("audit_log %s unmarshal after: %w", row.ID, err)
	}
	if e.Metadata, err = unmarshalJSON(row.Metadata); err != nil {
		return domain.AuditLogEntry{}, fmt.Errorf("audit_log %s unmarshal metadata: %w", row.ID, err)
	}
	return e, nil
}

// marshalJSON encodes m for a JSONB column; nil stays SQL NULL.
func marshalJSON(m map[string]any) ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func unmarshalJSON(data []byte) (map[string]any, error) {
	if len(data) == 0 {
		return nil, nil
	}
	m := make(map[string]any)
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}
