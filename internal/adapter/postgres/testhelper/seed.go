package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/doccontrol-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// UniqueCode returns a unique upper-case token usable as a document id,
// category or project code in tests that share one database.
func UniqueCode(prefix string) string {
	return prefix + "-" + uuid.New().String()[:8]
}

// SeedUser creates a directory user holding role.
func SeedUser(t *testing.T, pool *pgxpool.Pool, role string) domain.User {
	t.Helper()

	suffix := uniqueSuffix()
	user := domain.User{
		ID:        uuid.New(),
		Name:      "Test User " + suffix,
		Email:     "testuser-" + suffix + "@example.com",
		Role:      role,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO users (id, name, email, role, created_at) VALUES ($1, $2, $3, $4, $5)`,
		user.ID, user.Name, user.Email, user.Role, user.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser: %v", err)
	}

	return user
}

// Actor returns an actor for user.
func Actor(u domain.User) domain.Actor {
	return domain.Actor{ID: u.ID, Name: u.Name, Role: u.Role}
}
