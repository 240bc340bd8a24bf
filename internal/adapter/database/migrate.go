package database

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationsFS embed.FS

// Migrate applies every pending embedded migration for the dialect. The
// migrate instance is not closed: closing it would close db as well.
func Migrate(db *DB) error {
	var (
		driver database.Driver
		dir    string
		dbName string
		err    error
	)

	switch db.Dialect {
	case SQLite:
		dir, dbName = "migrations/sqlite", "sqlite3"
		driver, err = sqlite3.WithInstance(db.DB, &sqlite3.Config{})
	case Postgres:
		dir, dbName = "migrations/postgres", "pgx5"
		driver, err = pgxmigrate.WithInstance(db.DB, &pgxmigrate.Config{})
	default:
		return fmt.Errorf("unsupported dialect %q", db.Dialect)
	}

	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	source, err := iofs.New(migrationsFS, dir)

	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, dbName, driver)

	if err != nil {
		return fmt.Errorf("create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}
