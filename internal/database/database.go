package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/diegoclair/availability-bot/migrator"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Dialect identifies the SQL backend behind a DB
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite3"
)

// dbConn interface allows repositories to work with both *sql.DB and *sql.Tx
type dbConn interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type DB struct {
	conn    *sql.DB
	dialect Dialect
}

// DialectFor picks the backend from a connection string: postgres URLs select
// PostgreSQL, anything else is treated as a SQLite file path.
func DialectFor(dsn string) Dialect {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return Postgres
	}
	return SQLite
}

func New(dsn string) (*DB, error) {
	dialect := DialectFor(dsn)

	conn, err := sql.Open(string(dialect), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite serializes writers anyway, and ":memory:" is per connection
	if dialect == SQLite {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{conn: conn, dialect: dialect}, nil
}

// Migrate applies the embedded schema for the DB's dialect. It is safe to run
// on every startup.
func (db *DB) Migrate() error {
	switch db.dialect {
	case Postgres:
		return migrator.Postgres(db.conn)
	case SQLite:
		return migrator.SQLite(db.conn)
	default:
		return fmt.Errorf("no migrations for dialect %q", db.dialect)
	}
}

func (db *DB) DB() *sql.DB {
	return db.conn
}

func (db *DB) Dialect() Dialect {
	return db.dialect
}

func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) Begin(ctx context.Context) (*sql.Tx, error) {
	return db.conn.BeginTx(ctx, nil)
}
