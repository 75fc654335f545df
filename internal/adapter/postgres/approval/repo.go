// Package approval persists approval requests, the denormalized handle on a
// workflow instance.
package approval

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/heartmarshall/doccontrol-backend/internal/adapter/postgres"
	"github.com/heartmarshall/doccontrol-backend/internal/domain"
)

const defaultListLimit = 100

var requestColumns = []string{
	"id", "entity_type", "entity_id", "workflow_instance_id", "requester_id",
	"requester_name", "current_approver_id", "status", "current_stage",
	"comment", "created_at", "updated_at",
}

// Repo provides approval request persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new approval request repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type requestRow struct {
	ID                 uuid.UUID  `db:"id"`
	EntityType         string     `db:"entity_type"`
	EntityID           string     `db:"entity_id"`
	WorkflowInstanceID uuid.UUID  `db:"workflow_instance_id"`
	RequesterID        uuid.UUID  `db:"requester_id"`
	RequesterName      string     `db:"requester_name"`
	CurrentApproverID  *uuid.UUID `db:"current_approver_id"`
	Status             string     `db:"status"`
	CurrentStage       string     `db:"current_stage"`
	Comment            *string    `db:"comment"`
	CreatedAt          time.Time  `db:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at"`
}

func (r requestRow) toDomain() domain.ApprovalRequest {
	return domain.ApprovalRequest{
		ID:                 r.ID,
		EntityType:         r.EntityType,
		EntityID:           r.EntityID,
		WorkflowInstanceID: r.WorkflowInstanceID,
		RequesterID:        r.RequesterID,
		RequesterName:      r.RequesterName,
		CurrentApproverID:  r.CurrentApproverID,
		Status:             domain.ApprovalStatus(r.Status),
		CurrentStage:       r.CurrentStage,
		Comment:            r.Comment,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

func toDomainList(rows []requestRow) []domain.ApprovalRequest {
	out := make([]domain.ApprovalRequest, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out
}

// Create inserts a new approval request.
func (r *Repo) Create(ctx context.Context, req domain.ApprovalRequest) error {
	sql, args, err := postgres.Builder().
		Insert("approval_requests").
		Columns(requestColumns...).
		Values(req.ID, req.EntityType, req.EntityID, req.WorkflowInstanceID, req.RequesterID,
			req.RequesterName, req.CurrentApproverID, string(req.Status), req.CurrentStage,
			req.Comment, req.CreatedAt, req.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build approval request insert: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "approval_request", req.ID)
	}
	return nil
}

// GetByID returns an approval request by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.ApprovalRequest, error) {
	sql, args, err := postgres.Builder().
		Select(requestColumns...).
		From("approval_requests").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return domain.ApprovalRequest{}, fmt.Errorf("build approval request query: %w", err)
	}

	var row requestRow
	if err := postgres.GetOne(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, sql, args...); err != nil {
		return domain.ApprovalRequest{}, postgres.MapError(err, "approval_request", id)
	}
	return row.toDomain(), nil
}

// UpdateState writes the denormalized stage, status and approver of req.
// Callers serialize writers through the workflow instance version.
func (r *Repo) UpdateState(ctx context.Context, req domain.ApprovalRequest) error {
	sql, args, err := postgres.Builder().
		Update("approval_requests").
		Set("status", string(req.Status)).
		Set("current_stage", req.CurrentStage).
		Set("current_approver_id", req.CurrentApproverID).
		Set("updated_at", req.UpdatedAt).
		Where(squirrel.Eq{"id": req.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build approval request update: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "approval_request", req.ID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("approval_request %s: %w", req.ID, domain.ErrNotFound)
	}
	return nil
}

// ListPendingAt returns pending requests sitting in any of the given stages,
// oldest first.
func (r *Repo) ListPendingAt(ctx context.Context, stages []domain.StageRef, limit int) ([]domain.ApprovalRequest, error) {
	if len(stages) == 0 {
		return []domain.ApprovalRequest{}, nil
	}
	if limit <= 0 {
		limit = defaultListLimit
	}

	anyStage := make(squirrel.Or, 0, len(stages))
	for _, s := range stages {
		anyStage = append(anyStage, squirrel.Eq{"entity_type": s.EntityType, "current_stage": s.Stage})
	}

	sql, args, err := postgres.Builder().
		Select(requestColumns...).
		From("approval_requests").
		Where(squirrel.Eq{"status": string(domain.ApprovalStatusPending)}).
		Where(anyStage).
		OrderBy("created_at", "id").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build inbox query: %w", err)
	}

	var rows []requestRow
	if err := postgres.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list pending approval requests: %w", err)
	}
	return toDomainList(rows), nil
}

// ListForActor returns requests the actor raised, currently holds, or acted
// on at any stage, most recently updated first.
func (r *Repo) ListForActor(ctx context.Context, actorID uuid.UUID, limit int) ([]domain.ApprovalRequest, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	sql, args, err := postgres.Builder().
		Select(requestColumns...).
		From("approval_requests ar").
		Where(squirrel.Or{
			squirrel.Eq{"ar.requester_id": actorID},
			squirrel.Eq{"ar.current_approver_id": actorID},
			squirrel.Expr(`EXISTS (SELECT 1 FROM workflow_history h
				WHERE h.instance_id = ar.workflow_instance_id AND h.actor_id = ?)`, actorID),
		}).
		OrderBy("ar.updated_at DESC", "ar.id").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build approval history query: %w", err)
	}

	var rows []requestRow
	if err := postgres.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list approval requests for actor %s: %w", actorID, err)
	}
	return toDomainList(rows), nil
}
