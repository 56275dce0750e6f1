// Command cleanup-tokens deletes expired and revoked refresh tokens
// and spent password reset tokens.
// Meant to run on a schedule (cron, systemd timer).
//
// Usage:
//
//	cleanup-tokens
//
// Requires DATABASE_DSN environment variable to be set.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	tokenrepo "github.com/triptribe/backend/internal/adapter/postgres/token"
)

func main() {
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

	repo := tokenrepo.New(pool)

	deleted, err := repo.DeleteExpired(ctx)
	if err != nil {
		log.Fatalf("cleanup refresh tokens: %v", err)
	}

	resetsDeleted, err := repo.DeleteExpiredResets(ctx)
	if err != nil {
		log.Fatalf("cleanup password reset tokens: %v", err)
	}

	fmt.Printf("Deleted %d expired/revoked refresh tokens.\n", deleted)
	fmt.Printf("Deleted %d expired/used password reset tokens.\n", resetsDeleted)
}
