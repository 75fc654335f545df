// Package user implements the directory mirror used to resolve users by role.
package user

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/heartmarshall/doccontrol-backend/internal/adapter/postgres"
	"github.com/heartmarshall/doccontrol-backend/internal/domain"
)

var userColumns = []string{"id", "name", "email", "role", "created_at"}

// Repo provides read access to the users table.
type Repo struct {
	db postgres.Querier
}

// New creates a new user repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type userRow struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Role      string    `db:"role"`
	CreatedAt time.Time `db:"created_at"`
}

func (r userRow) toDomain() domain.User {
	return domain.User{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		Role:      r.Role,
		CreatedAt: r.CreatedAt,
	}
}

// GetByID returns a user by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	sql, args, err := postgres.Builder().
		Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return domain.User{}, fmt.Errorf("build user query: %w", err)
	}

	var row userRow
	if err := postgres.GetOne(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, sql, args...); err != nil {
		return domain.User{}, postgres.MapError(err, "user", id)
	}
	return row.toDomain(), nil
}

// ListByRoles returns every user holding one of roles, ordered by name.
// An empty role list matches nobody.
func (r *Repo) ListByRoles(ctx context.Context, roles []string) ([]domain.User, error) {
	if len(roles) == 0 {
		return []domain.User{}, nil
	}

	sql, args, err := postgres.Builder().
		Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"role": roles}).
		OrderBy("name", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build users-by-role query: %w", err)
	}

	var rows []userRow
	if err := postgres.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list users by roles: %w", err)
	}

	users := make([]domain.User, len(rows))
	for i, row := range rows {
		users[i] = row.toDomain()
	}
	return users, nil
}

// GetByEmailForUpdate returns the user with email (case-insensitive) and
// locks the row until the surrounding transaction ends.
func (r *Repo) GetByEmailForUpdate(ctx context.Context, email string) (domain.User, error) {
	sql, args, err := postgres.Builder().
		Select(userColumns...).
		From("users").
		Where(squirrel.Expr("lower(email) = lower(?)", email)).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return domain.User{}, fmt.Errorf("build user-by-email query: %w", err)
	}

	var row userRow
	if err := postgres.GetOne(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, sql, args...); err != nil {
		return domain.User{}, postgres.MapError(err, "user", email)
	}
	return row.toDomain(), nil
}

// SetRole replaces the workflow role of a user.
func (r *Repo) SetRole(ctx context.Context, id uuid.UUID, role string) error {
	sql, args, err := postgres.Builder().
		Update("users").
		Set("role", role).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build set role: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "user", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
