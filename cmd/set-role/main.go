// Command set-role changes the workflow role of a user in the local user
// mirror and records the change in the audit log. It is used to bootstrap
// approvers before the identity provider sync has run, and to correct a role
// by hand.
//
// Usage:
//
//	set-role --email=user@example.com --role=qa_manager [--operator=name]
//
// Requires DATABASE_DSN environment variable to be set.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/doccontrol-backend/internal/adapter/postgres"
	auditrepo "github.com/heartmarshall/doccontrol-backend/internal/adapter/postgres/audit"
	userrepo "github.com/heartmarshall/doccontrol-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/doccontrol-backend/internal/domain"
	"github.com/heartmarshall/doccontrol-backend/internal/service/user"
	"github.com/heartmarshall/doccontrol-backend/pkg/ctxutil"
)

func main() {
	email := flag.String("email", "", "email of the user to update")
	role := flag.String("role", "", "workflow role to assign, e.g. qa_manager")
	operator := flag.String("operator", os.Getenv("USER"), "name recorded as the actor in the audit log")
	flag.Parse()

	if *email == "" || *role == "" || *operator == "" {
		fmt.Fprintln(os.Stderr, "Usage: set-role --email=user@example.com --role=qa_manager [--operator=name]")
		os.Exit(1)
	}

	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		log.Fatal("DATABASE_DSN environment variable is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	defer pool.Close()

	svc := user.NewService(slog.Default(), userrepo.New(pool), auditrepo.New(pool), postgres.NewTxManager(pool))

	// Operators have no identity provider account; the actor id is derived
	// from the operator name.
	actor := domain.Actor{
		ID:   uuid.NewSHA1(uuid.NameSpaceURL, []byte("doccontrol:operator:"+*operator)),
		Name: *operator + " (set-role)",
		Role: "operator",
	}

	u, err := svc.ChangeRole(ctxutil.WithActor(ctx, actor), *email, *role)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		fmt.Printf("No user found with email %q.\n", *email)
		os.Exit(1)
	case errors.Is(err, domain.ErrConflict):
		fmt.Printf("User %q already has role %q.\n", *email, *role)
		os.Exit(1)
	case err != nil:
		pool.Close()
		log.Fatalf("change role: %v", err)
	}

	fmt.Printf("User %q now has role %q.\n", u.Email, u.Role)
}
