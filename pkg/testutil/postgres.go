// Package testutil starts disposable infrastructure for integration tests.
package testutil

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	pgpkg "github.com/bibbank/leapneo/pkg/postgres"
)

const postgresImage = "postgres:16-alpine"

// Postgres is a running container with a connected pool.
type Postgres struct {
	DSN  string
	Pool *pgxpool.Pool
}

// StartPostgres runs a fresh PostgreSQL container for t and applies the
// migrations in migrationsDir when it is non-empty. The pool and container
// are released by t.Cleanup.
func StartPostgres(t *testing.T, migrationsDir string) *Postgres {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	ctr, err := postgres.Run(ctx, postgresImage,
		postgres.WithDatabase("leapneo_test"),
		postgres.WithUsername("leapneo"),
		postgres.WithPassword("leapneo"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("start postgres: %v", err)
	}
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(ctr); err != nil {
			t.Logf("terminate postgres: %v", err)
		}
	})

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("postgres dsn: %v", err)
	}
	if migrationsDir != "" {
		if err := pgpkg.RunMigrations(dsn, migrationsDir); err != nil {
			t.Fatalf("migrate %s: %v", migrationsDir, err)
		}
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("postgres pool: %v", err)
	}
	t.Cleanup(pool.Close)
	if err := pgpkg.HealthCheck(ctx, pool); err != nil {
		t.Fatalf("postgres not ready: %v", err)
	}

	return &Postgres{DSN: dsn, Pool: pool}
}

// Truncate empties tables in one statement.
func (p *Postgres) Truncate(t *testing.T, tables ...string) {
	t.Helper()
	if len(tables) == 0 {
		return
	}
	names := make([]string, len(tables))
	for i, table := range tables {
		names[i] = pgx.Identifier{table}.Sanitize()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := p.Pool.Exec(ctx, "TRUNCATE "+strings.Join(names, ", ")+" RESTART IDENTITY"); err != nil {
		t.Fatalf("truncate %v: %v", tables, err)
	}
}
