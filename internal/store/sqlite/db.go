// Package sqlite opens a single-file store for development and tests. Writers are
// serialized by a single connection and overlaps are rejected by triggers.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const overlapConstraint = "appointments_no_overlap"

//go:embed schema.sql
var schema string

func Open(path string) (*bun.DB, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("sqlite path is required")
	}

	q := url.Values{}
	q.Add("_pragma", "busy_timeout(5000)")
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_pragma", "synchronous(NORMAL)")

	sqlDB, err := sql.Open("sqlite", "file:"+path+"?"+q.Encode())
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	return bun.NewDB(sqlDB, sqlitedialect.New()), nil
}

// Migrate creates the schema if it does not exist yet.
func Migrate(ctx context.Context, db *bun.DB) error {
	_, err := db.DB.ExecContext(ctx, schema)
	return err
}

func Close(db *bun.DB) error {
	if db == nil {
		return nil
	}
	return db.Close()
}

// Dialect plugs SQLite behavior into the shared repository.
type Dialect struct{}

// LockSalon is a no-op: the pool holds one connection, so transactions never interleave.
func (Dialect) LockSalon(context.Context, bun.Tx, uuid.UUID) error {
	return nil
}

func (Dialect) IsOverlapViolation(err error) bool {
	return isConstraint(err, overlapConstraint)
}

func (Dialect) IsUniqueViolation(err error) bool {
	return isConstraint(err, "UNIQUE constraint failed")
}

func isConstraint(err error, text string) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	if sqliteErr.Code()&0xff != sqlite3.SQLITE_CONSTRAINT {
		return false
	}
	return strings.Contains(sqliteErr.Error(), text)
}
