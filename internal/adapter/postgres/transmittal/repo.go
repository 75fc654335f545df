// Package transmittal persists transmittals, their line items and their
// action history.
package transmittal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/heartmarshall/doccontrol-backend/internal/adapter/postgres"
	"github.com/heartmarshall/doccontrol-backend/internal/domain"
)

var (
	transmittalColumns = []string{
		"id", "number", "project_id", "project_code", "subject", "type", "status",
		"sender_id", "sender_name", "sender_organization",
		"recipient_id", "recipient_name", "recipient_organization",
		"issued_at", "due_at", "notes", "created_by", "created_at", "updated_at",
	}
	documentColumns = []string{
		"transmittal_id", "position", "document_id", "document_number", "revision", "copies", "format", "action",
	}
	historyColumns = []string{
		"id", "transmittal_id", "action", "from_status", "to_status",
		"actor_id", "actor_name", "actor_role", "comment", "created_at",
	}
)

// Repo provides transmittal persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new transmittal repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type transmittalRow struct {
	ID                    uuid.UUID  `db:"id"`
	Number                string     `db:"number"`
	ProjectID             uuid.UUID  `db:"project_id"`
	ProjectCode           *string    `db:"project_code"`
	Subject               string     `db:"subject"`
	Type                  string     `db:"type"`
	Status                string     `db:"status"`
	SenderID              uuid.UUID  `db:"sender_id"`
	SenderName            string     `db:"sender_name"`
	SenderOrganization    string     `db:"sender_organization"`
	RecipientID           uuid.UUID  `db:"recipient_id"`
	RecipientName         string     `db:"recipient_name"`
	RecipientOrganization string     `db:"recipient_organization"`
	IssuedAt              *time.Time `db:"issued_at"`
	DueAt                 *time.Time `db:"due_at"`
	Notes                 *string    `db:"notes"`
	CreatedBy             uuid.UUID  `db:"created_by"`
	CreatedAt             time.Time  `db:"created_at"`
	UpdatedAt             time.Time  `db:"updated_at"`
}

func (r transmittalRow) toDomain() domain.Transmittal {
	return domain.Transmittal{
		ID:          r.ID,
		Number:      r.Number,
		ProjectID:   r.ProjectID,
		ProjectCode: r.ProjectCode,
		Subject:     r.Subject,
		Type:        domain.TransmittalType(r.Type),
		Status:      domain.TransmittalStatus(r.Status),
		Sender:      domain.Party{ID: r.SenderID, Name: r.SenderName, Organization: r.SenderOrganization},
		Recipient:   domain.Party{ID: r.RecipientID, Name: r.RecipientName, Organization: r.RecipientOrganization},
		IssuedAt:    r.IssuedAt,
		DueAt:       r.DueAt,
		Documents:   []domain.TransmittalDocument{},
		Notes:       r.Notes,
		CreatedBy:   r.CreatedBy,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type documentRow struct {
	TransmittalID  uuid.UUID `db:"transmittal_id"`
	Position       int       `db:"position"`
	DocumentID     string    `db:"document_id"`
	DocumentNumber string    `db:"document_number"`
	Revision       string    `db:"revision"`
	Copies         int       `db:"copies"`
	Format         string    `db:"format"`
	Action         string    `db:"action"`
}

func (r documentRow) toDomain() domain.TransmittalDocument {
	return domain.TransmittalDocument{
		DocumentID:     r.DocumentID,
		DocumentNumber: r.DocumentNumber,
		Revision:       r.Revision,
		Copies:         r.Copies,
		Format:         domain.DocumentFormat(r.Format),
		Action:         domain.TransmittalAction(r.Action),
	}
}

type historyRow struct {
	ID            uuid.UUID `db:"id"`
	TransmittalID uuid.UUID `db:"transmittal_id"`
	Action        string    `db:"action"`
	FromStatus    *string   `db:"from_status"`
	ToStatus      string    `db:"to_status"`
	ActorID       uuid.UUID `db:"actor_id"`
	ActorName     string    `db:"actor_name"`
	ActorRole     string    `db:"actor_role"`
	Comment       *string   `db:"comment"`
	CreatedAt     time.Time `db:"created_at"`
}

func (r historyRow) toDomain() domain.TransmittalHistoryEntry {
	e := domain.TransmittalHistoryEntry{
		ID:            r.ID,
		TransmittalID: r.TransmittalID,
		Action:        r.Action,
		ToStatus:      domain.TransmittalStatus(r.ToStatus),
		Actor:         domain.Actor{ID: r.ActorID, Name: r.ActorName, Role: r.ActorRole},
		Comment:       r.Comment,
		CreatedAt:     r.CreatedAt,
	}
	if r.FromStatus != nil {
		from := domain.TransmittalStatus(*r.FromStatus)
		e.FromStatus = &from
	}
	return e
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a transmittal and its line items. Run it inside a
// transaction so a failed line item leaves nothing behind.
func (r *Repo) Create(ctx context.Context, t domain.Transmittal) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder().
		Insert("transmittals").
		Columns(transmittalColumns...).
		Values(t.ID, t.Number, t.ProjectID, t.ProjectCode, t.Subject, string(t.Type), string(t.Status),
			t.Sender.ID, t.Sender.Name, t.Sender.Organization,
			t.Recipient.ID, t.Recipient.Name, t.Recipient.Organization,
			t.IssuedAt, t.DueAt, t.Notes, t.CreatedBy, t.CreatedAt, t.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build transmittal insert: %w", err)
	}
	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "transmittal", t.Number)
	}

	if len(t.Documents) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for i, d := range t.Documents {
		batch.Queue(
			`INSERT INTO transmittal_documents (transmittal_id, position, document_id, document_number, revision, copies, format, action)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			t.ID, i+1, d.DocumentID, d.DocumentNumber, d.Revision, d.Copies, string(d.Format), string(d.Action),
		)
	}

	results := q.SendBatch(ctx, batch)
	defer results.Close()

	for range batch.Len() {
		if _, err := results.Exec(); err != nil {
			return postgres.MapError(err, "transmittal_document", t.Number)
		}
	}
	return nil
}

// UpdateStatus moves a transmittal to change.To if it is currently in one of
// change.From and returns the updated record. A transmittal in any other
// status yields a *domain.TransitionError wrapping domain.ErrInvalidTransition.
func (r *Repo) UpdateStatus(ctx context.Context, id uuid.UUID, action string, change domain.TransmittalStatusChange) (domain.Transmittal, error) {
	from := make([]string, len(change.From))
	for i, s := range change.From {
		from[i] = string(s)
	}

	b := postgres.Builder().
		Update("transmittals").
		Set("status", string(change.To)).
		Set("updated_at", change.UpdatedAt)
	if change.IssuedAt != nil {
		b = b.Set("issued_at", change.IssuedAt)
	}
	sql, args, err := b.
		Where(squirrel.Eq{"id": id, "status": from}).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return domain.Transmittal{}, fmt.Errorf("build transmittal status update: %w", err)
	}

	var updated uuid.UUID
	err = postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&updated)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return domain.Transmittal{}, postgres.MapError(err, "transmittal", id)
	}

	current, getErr := r.GetByID(ctx, id)
	if getErr != nil {
		return domain.Transmittal{}, getErr
	}
	if err != nil {
		return domain.Transmittal{}, &domain.TransitionError{
			EntityType: string(domain.EntityTypeTransmittal),
			EntityID:   current.Number,
			Stage:      string(current.Status),
			Action:     action,
			Err:        domain.ErrInvalidTransition,
		}
	}
	return current, nil
}

// AppendHistory records an action on a transmittal.
func (r *Repo) AppendHistory(ctx context.Context, e domain.TransmittalHistoryEntry) error {
	var from *string
	if e.FromStatus != nil {
		s := string(*e.FromStatus)
		from = &s
	}

	sql, args, err := postgres.Builder().
		Insert("transmittal_history").
		Columns(historyColumns...).
		Values(e.ID, e.TransmittalID, e.Action, from, string(e.ToStatus),
			e.Actor.ID, e.Actor.Name, e.Actor.Role, e.Comment, e.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build transmittal history insert: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "transmittal_history", e.TransmittalID)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a transmittal with its line items in order.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.Transmittal, error) {
	list, err := r.list(ctx, squirrel.Eq{"id": id}, "")
	if err != nil {
		return domain.Transmittal{}, err
	}
	if len(list) == 0 {
		return domain.Transmittal{}, fmt.Errorf("transmittal %s: %w", id, domain.ErrNotFound)
	}
	return list[0], nil
}

// ListByProject returns the transmittals of a project, newest first.
func (r *Repo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.Transmittal, error) {
	return r.list(ctx, squirrel.Eq{"project_id": projectID}, "created_at DESC")
}

// ListPendingFor returns transmittals addressed to recipientID that still
// await a response, oldest due date first.
func (r *Repo) ListPendingFor(ctx context.Context, recipientID uuid.UUID) ([]domain.Transmittal, error) {
	return r.list(ctx, squirrel.Eq{
		"recipient_id": recipientID,
		"status":       []string{string(domain.TransmittalStatusSent), string(domain.TransmittalStatusReceived)},
	}, "due_at ASC NULLS LAST, issued_at ASC")
}

// History returns the actions taken on a transmittal in order.
func (r *Repo) History(ctx context.Context, id uuid.UUID) ([]domain.TransmittalHistoryEntry, error) {
	sql, args, err := postgres.Builder().
		Select(historyColumns...).
		From("transmittal_history").
		Where(squirrel.Eq{"transmittal_id": id}).
		OrderBy("created_at", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build transmittal history query: %w", err)
	}

	var rows []historyRow
	if err := postgres.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list transmittal history %s: %w", id, err)
	}

	out := make([]domain.TransmittalHistoryEntry, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out, nil
}

func (r *Repo) list(ctx context.Context, where squirrel.Sqlizer, orderBy string) ([]domain.Transmittal, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	b := postgres.Builder().
		Select(transmittalColumns...).
		From("transmittals").
		Where(where)
	if orderBy != "" {
		b = b.OrderBy(orderBy)
	}
	sql, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build transmittal query: %w", err)
	}

	var rows []transmittalRow
	if err := postgres.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list transmittals: %w", err)
	}
	if len(rows) == 0 {
		return []domain.Transmittal{}, nil
	}

	ids := make([]uuid.UUID, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	docs, err := r.documents(ctx, q, ids)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Transmittal, len(rows))
	for i, row := range rows {
		t := row.toDomain()
		if d, ok := docs[row.ID]; ok {
			t.Documents = d
		}
		out[i] = t
	}
	return out, nil
}

// documents loads the line items of every transmittal in ids, keyed by
// transmittal and ordered by position.
func (r *Repo) documents(ctx context.Context, q postgres.Querier, ids []uuid.UUID) (map[uuid.UUID][]domain.TransmittalDocument, error) {
	sql, args, err := postgres.Builder().
		Select(documentColumns...).
		From("transmittal_documents").
		Where(squirrel.Eq{"transmittal_id": ids}).
		OrderBy("transmittal_id", "position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build transmittal documents query: %w", err)
	}

	var rows []documentRow
	if err := postgres.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list transmittal documents: %w", err)
	}

	out := make(map[uuid.UUID][]domain.TransmittalDocument, len(ids))
	for _, row := range rows {
		out[row.TransmittalID] = append(out[row.TransmittalID], row.toDomain())
	}
	return out, nil
}
