package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	sqldblogger "github.com/simukti/sqldb-logger"
	"github.com/simukti/sqldb-logger/logadapter/zerologadapter"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"

	"taskmanager/pkg/config"
)

type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

type DB struct {
	*sql.DB
	QueryBuilder sq.StatementBuilderType
	Dialect      Dialect
}

func New(db *sql.DB, dialect Dialect) *DB {
	var placeholder sq.PlaceholderFormat = sq.Question

	if dialect == Postgres {
		placeholder = sq.Dollar
	}

	return &DB{
		DB:           db,
		QueryBuilder: sq.StatementBuilder.PlaceholderFormat(placeholder),
		Dialect:      dialect,
	}
}

// Open connects to the configured backend. Statements are traced through
// otelsql and logged through sqldb-logger.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*DB, error) {
	var (
		driverName string
		dsn        string
		dialect    Dialect
	)

	switch cfg.Type {
	case config.DBTypeSQLite:
		var err error

		if dsn, err = sqliteDSN(cfg.SQLiteFilename); err != nil {
			return nil, err
		}

		driverName, dialect = "sqlite3", SQLite
	case config.DBTypePostgres:
		driverName, dsn, dialect = "pgx", cfg.PostgresDSN(), Postgres
	default:
		return nil, fmt.Errorf("unsupported database type %q", cfg.Type)
	}

	tracedDB, err := otelsql.Open(driverName, dsn,
		otelsql.WithDBSystem(string(dialect)),
		otelsql.WithDBName(cfg.Name),
	)

	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialect, err)
	}

	minLevel := sqldblogger.LevelError

	if cfg.LogQueries {
		minLevel = sqldblogger.LevelDebug
	}

	queryLogger := zerolog.New(os.Stdout).With().Timestamp().Str("component", "sql").Logger()

	sqlDB := sqldblogger.OpenDriver(dsn, tracedDB.Driver(), zerologadapter.New(queryLogger),
		sqldblogger.WithMinimumLevel(minLevel),
	)

	// Only the driver of tracedDB is used from here on.
	_ = tracedDB.Close()

	if isInMemory(dsn) {
		// Every connection to a private in-memory database sees its own
		// schema, and the database disappears with its last connection.
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("ping %s: %w", dialect, err)
	}

	return New(sqlDB, dialect), nil
}

func sqliteDSN(filename string) (string, error) {
	if strings.HasPrefix(filename, "file:") || filename == ":memory:" {
		return filename, nil
	}

	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create sqlite directory: %w", err)
		}
	}

	return filename + "?_foreign_keys=on&_busy_timeout=5000", nil
}

func isInMemory(dsn string) bool {
	return dsn == ":memory:" || strings.Contains(dsn, "mode=memory")
}
