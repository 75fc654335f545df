// Package revision persists document revisions.
package revision

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

var revisionColumns = []string{
	"id", "document_id", "letter", "version", "status", "artifact_ref", "size",
	"created_by", "approved_by", "approved_at", "changes", "created_at",
}

// Repo provides document revision persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new revision repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type revisionRow struct {
	ID          uuid.UUID  `db:"id"`
	DocumentID  string     `db:"document_id"`
	Letter      string     `db:"letter"`
	Version     int        `db:"version"`
	Status      string     `db:"status"`
	ArtifactRef string     `db:"artifact_ref"`
	Size        int64      `db:"size"`
	CreatedBy   uuid.UUID  `db:"created_by"`
	ApprovedBy  *uuid.UUID `db:"approved_by"`
	ApprovedAt  *time.Time `db:"approved_at"`
	Changes     *string    `db:"changes"`
	CreatedAt   time.Time  `db:"created_at"`
}

func (r revisionRow) toDomain() domain.DocumentRevision {
	return domain.DocumentRevision{
		ID:          r.ID,
		DocumentID:  r.DocumentID,
		Letter:      r.Letter,
		Version:     r.Version,
		Status:      domain.RevisionStatus(r.Status),
		ArtifactRef: r.ArtifactRef,
		Size:        r.Size,
		CreatedBy:   r.CreatedBy,
		ApprovedBy:  r.ApprovedBy,
		ApprovedAt:  r.ApprovedAt,
		Changes:     r.Changes,
		CreatedAt:   r.CreatedAt,
	}
}

func selectRevisions() squirrel.SelectBuilder {
	return postgres.Builder().Select(revisionColumns...).From("document_revisions")
}

func (r *Repo) getOne(ctx context.Context, b squirrel.Sqlizer, id any) (domain.DocumentRevision, error) {
	sql, args, err := b.ToSql()
	if err != nil {
		return domain.DocumentRevision{}, fmt.Errorf("build revision query: %w", err)
	}

	var row revisionRow
	if err := postgres.GetOne(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, sql, args...); err != nil {
		return domain.DocumentRevision{}, postgres.MapError(err, "document_revision", id)
	}
	return row.toDomain(), nil
}

func (r *Repo) list(ctx context.Context, b squirrel.Sqlizer, documentID string) ([]domain.DocumentRevision, error) {
	sql, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build revision list query: %w", err)
	}

	var rows []revisionRow
	if err := postgres.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list revisions of %s: %w", documentID, err)
	}

	out := make([]domain.DocumentRevision, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out, nil
}

// LatestForUpdate returns the highest-version revision of a document and
// locks it until the surrounding transaction ends. Returns
// domain.ErrNotFound when the document has no revisions yet.
func (r *Repo) LatestForUpdate(ctx context.Context, documentID string) (domain.DocumentRevision, error) {
	return r.getOne(ctx, selectRevisions().
		Where(squirrel.Eq{"document_id": documentID}).
		OrderBy("version DESC").
		Limit(1).
		Suffix("FOR UPDATE"), documentID)
}

// Supersede marks a revision superseded.
func (r *Repo) Supersede(ctx context.Context, id uuid.UUID) error {
	sql, args, err := postgres.Builder().
		Update("document_revisions").
		Set("status", string(domain.RevisionStatusSuperseded)).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build supersede: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "document_revision", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("document_revision %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Create inserts a revision. A clash on (document, version), (document,
// letter) or the single-live-revision index is reported as
// domain.ErrSequenceConflict.
func (r *Repo) Create(ctx context.Context, rev domain.DocumentRevision) error {
	sql, args, err := postgres.Builder().
		Insert("document_revisions").
		Columns(revisionColumns...).
		Values(rev.ID, rev.DocumentID, rev.Letter, rev.Version, string(rev.Status), rev.ArtifactRef,
			rev.Size, rev.CreatedBy, rev.ApprovedBy, rev.ApprovedAt, rev.Changes, rev.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build revision insert: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...); err != nil {
		return postgres.MapSequenceError(err, "document_revision", rev.DocumentID)
	}
	return nil
}

// GetByID returns a revision by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.DocumentRevision, error) {
	return r.getOne(ctx, selectRevisions().Where(squirrel.Eq{"id": id}), id)
}

// GetByLetter returns the revision of documentID carrying letter.
func (r *Repo) GetByLetter(ctx context.Context, documentID, letter string) (domain.DocumentRevision, error) {
	return r.getOne(ctx, selectRevisions().
		Where(squirrel.Eq{"document_id": documentID, "letter": letter}), documentID+"/"+letter)
}

// CurrentApproved returns the highest-version approved revision of a document.
func (r *Repo) CurrentApproved(ctx context.Context, documentID string) (domain.DocumentRevision, error) {
	return r.getOne(ctx, selectRevisions().
		Where(squirrel.Eq{"document_id": documentID, "status": string(domain.RevisionStatusApproved)}).
		OrderBy("version DESC").
		Limit(1), documentID)
}

// ListByDocument returns every revision of a document, newest first.
func (r *Repo) ListByDocument(ctx context.Context, documentID string) ([]domain.DocumentRevision, error) {
	return r.list(ctx, selectRevisions().
		Where(squirrel.Eq{"document_id": documentID}).
		OrderBy("version DESC"), documentID)
}

// ListBetween returns revisions with fromVersion < version <= toVersion in
// ascending version order.
func (r *Repo) ListBetween(ctx context.Context, documentID string, fromVersion, toVersion int) ([]domain.DocumentRevision, error) {
	return r.list(ctx, selectRevisions().
		Where(squirrel.Eq{"document_id": documentID}).
		Where(squirrel.Gt{"version": fromVersion}).
		Where(squirrel.LtOrEq{"version": toVersion}).
		OrderBy("version"), documentID)
}

// UpdateStatus moves a revision to change.To if its current status is one of
// change.From. A revision in any other status yields a *domain.TransitionError
// wrapping domain.ErrInvalidTransition.
func (r *Repo) UpdateStatus(ctx context.Context, id uuid.UUID, change domain.RevisionStatusChange) (domain.DocumentRevision, error) {
	from := make([]string, len(change.From))
	for i, s := range change.From {
		from[i] = string(s)
	}

	b := postgres.Builder().
		Update("document_revisions").
		Set("status", string(change.To))
	if change.ApprovedBy != nil {
		b = b.Set("approved_by", change.ApprovedBy).Set("approved_at", change.ApprovedAt)
	}
	sql, args, err := b.
		Where(squirrel.Eq{"id": id, "status": from}).
		Suffix("RETURNING " + strings.Join(revisionColumns, ", ")).
		ToSql()
	if err != nil {
		return domain.DocumentRevision{}, fmt.Errorf("build revision status update: %w", err)
	}

	var row revisionRow
	err = postgres.GetOne(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, sql, args...)
	if err == nil {
		return row.toDomain(), nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return domain.DocumentRevision{}, postgres.MapError(err, "document_revision", id)
	}

	current, err := r.GetByID(ctx, id)
	if err != nil {
		return domain.DocumentRevision{}, err
	}
	return domain.DocumentRevision{}, &domain.TransitionError{
		EntityType: string(domain.EntityTypeDocumentRevision),
		EntityID:   current.DocumentID + " rev " + current.Letter,
		Stage:      string(current.Status),
		Action:     string(change.To),
		Err:        domain.ErrInvalidTransition,
	}
}
