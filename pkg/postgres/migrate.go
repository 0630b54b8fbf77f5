package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // register postgres driver
	_ "github.com/golang-migrate/migrate/v4/source/file"       // register file source driver
)

// MigrationSource turns a directory path into a golang-migrate source URL.
// Values that already carry a scheme are returned unchanged.
func MigrationSource(dir string) string {
	if strings.Contains(dir, "://") {
		return dir
	}
	return "file://" + dir
}

// RunMigrations applies all pending migrations found in migrationsDir.
// It returns nil when the schema is already current.
func RunMigrations(dsn string, migrationsDir string) error {
	m, err := migrate.New(MigrationSource(migrationsDir), dsn)
	if err != nil {
		return fmt.Errorf("postgres: create migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("postgres: run migrations up: %w", err)
	}

	return nil
}

// RunMigrationsDown rolls back all database migrations.
// If there are no migrations to roll back the function returns nil.
func RunMigrationsDown(dsn string, migrationsDir string) error {
	m, err := migrate.New(MigrationSource(migrationsDir), dsn)
	if err != nil {
		return fmt.Errorf("postgres: create migrator: %w", err)
	}
	defer m.Close()

	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("postgres: run migrations down: %w", err)
	}

	return nil
}
