package migrator

import (
	"database/sql"
	"embed"

	"github.com/GuiaBolso/darwin"
	"github.com/diegoclair/sqlmigrator"
)

//go:embed sql/postgres/*.sql sql/sqlite/*.sql
var SqlFiles embed.FS

// Postgres applies the PostgreSQL schema, where day columns are BIGINT[]
func Postgres(db *sql.DB) error {
	return sqlmigrator.New(db, darwin.PostgresDialect{}).Migrate(SqlFiles, "sql/postgres")
}

// SQLite applies the SQLite schema, where day columns hold JSON arrays
func SQLite(db *sql.DB) error {
	return sqlmigrator.New(db, darwin.SqliteDialect{}).Migrate(SqlFiles, "sql/sqlite")
}
