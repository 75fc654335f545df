// Package workflow persists workflow instances and their append-only history.
package workflow

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
	instanceColumns = []string{
		"id", "domain", "entity_type", "entity_id", "current_stage",
		"completed", "version", "created_at", "updated_at",
	}
	historyColumns = []string{
		"id", "instance_id", "stage", "to_stage", "action",
		"actor_id", "actor_name", "actor_role", "comment", "created_at",
	}
)

// Repo provides workflow instance persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new workflow repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type instanceRow struct {
	ID           uuid.UUID `db:"id"`
	Domain       string    `db:"domain"`
	EntityType   string    `db:"entity_type"`
	EntityID     string    `db:"entity_id"`
	CurrentStage string    `db:"current_stage"`
	Completed    bool      `db:"completed"`
	Version      int       `db:"version"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (r instanceRow) toDomain() domain.WorkflowInstance {
	return domain.WorkflowInstance{
		ID:           r.ID,
		Domain:       r.Domain,
		EntityType:   r.EntityType,
		EntityID:     r.EntityID,
		CurrentStage: r.CurrentStage,
		History:      []domain.WorkflowHistoryEntry{},
		Completed:    r.Completed,
		Version:      r.Version,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

type historyRow struct {
	ID         uuid.UUID `db:"id"`
	InstanceID uuid.UUID `db:"instance_id"`
	Stage      string    `db:"stage"`
	ToStage    string    `db:"to_stage"`
	Action     string    `db:"action"`
	ActorID    uuid.UUID `db:"actor_id"`
	ActorName  string    `db:"actor_name"`
	ActorRole  string    `db:"actor_role"`
	Comment    *string   `db:"comment"`
	CreatedAt  time.Time `db:"created_at"`
}

func (r historyRow) toDomain() domain.WorkflowHistoryEntry {
	return domain.WorkflowHistoryEntry{
		ID:         r.ID,
		InstanceID: r.InstanceID,
		Stage:      r.Stage,
		ToStage:    r.ToStage,
		Action:     r.Action,
		Actor:      domain.Actor{ID: r.ActorID, Name: r.ActorName, Role: r.ActorRole},
		Comment:    r.Comment,
		CreatedAt:  r.CreatedAt,
	}
}

// Create inserts a new instance. A second live instance for the same entity
// is rejected with domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, inst domain.WorkflowInstance) error {
	sql, args, err := postgres.Builder().
		Insert("workflow_instances").
		Columns(instanceColumns...).
		Values(inst.ID, inst.Domain, inst.EntityType, inst.EntityID, inst.CurrentStage,
			inst.Completed, inst.Version, inst.CreatedAt, inst.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build workflow instance insert: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "workflow_instance", inst.EntityID)
	}
	return nil
}

// GetByID returns the instance with its full history in append order.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.WorkflowInstance, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder().
		Select(instanceColumns...).
		From("workflow_instances").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return domain.WorkflowInstance{}, fmt.Errorf("build workflow instance query: %w", err)
	}

	var row instanceRow
	if err := postgres.GetOne(ctx, q, &row, sql, args...); err != nil {
		return domain.WorkflowInstance{}, postgres.MapError(err, "workflow_instance", id)
	}
	inst := row.toDomain()

	history, err := r.History(ctx, id)
	if err != nil {
		return domain.WorkflowInstance{}, err
	}
	inst.History = history
	return inst, nil
}

// History returns the history entries of an instance ordered by sequence.
func (r *Repo) History(ctx context.Context, instanceID uuid.UUID) ([]domain.WorkflowHistoryEntry, error) {
	sql, args, err := postgres.Builder().
		Select(historyColumns...).
		From("workflow_history").
		Where(squirrel.Eq{"instance_id": instanceID}).
		OrderBy("seq").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build workflow history query: %w", err)
	}

	var rows []historyRow
	if err := postgres.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list workflow history %s: %w", instanceID, err)
	}

	entries := make([]domain.WorkflowHistoryEntry, len(rows))
	for i, row := range rows {
		entries[i] = row.toDomain()
	}
	return entries, nil
}

// CompareAndSwap persists the stage and completion of next, provided the
// stored version still equals next.Version. It returns next with the bumped
// version, or domain.ErrConflict when another writer got there first.
func (r *Repo) CompareAndSwap(ctx context.Context, next domain.WorkflowInstance) (domain.WorkflowInstance, error) {
	sql, args, err := postgres.Builder().
		Update("workflow_instances").
		Set("current_stage", next.CurrentStage).
		Set("completed", next.Completed).
		Set("updated_at", next.UpdatedAt).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": next.ID, "version": next.Version}).
		Suffix("RETURNING version").
		ToSql()
	if err != nil {
		return domain.WorkflowInstance{}, fmt.Errorf("build workflow instance update: %w", err)
	}

	var version int
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&version); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.WorkflowInstance{}, fmt.Errorf("workflow_instance %s at version %d: %w", next.ID, next.Version, domain.ErrConflict)
		}
		return domain.WorkflowInstance{}, postgres.MapError(err, "workflow_instance", next.ID)
	}

	next.Version = version
	return next, nil
}

// AppendHistory stores entry as the seq-th action on its instance.
func (r *Repo) AppendHistory(ctx context.Context, seq int, entry domain.WorkflowHistoryEntry) error {
	sql, args, err := postgres.Builder().
		Insert("workflow_history").
		Columns(append([]string{"seq"}, historyColumns...)...).
		Values(seq, entry.ID, entry.InstanceID, entry.Stage, entry.ToStage, entry.Action,
			entry.Actor.ID, entry.Actor.Name, entry.Actor.Role, entry.Comment, entry.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build workflow history insert: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...); err != nil {
		return postgres.MapSequenceError(err, "workflow_history", entry.InstanceID)
	}
	return nil
}
