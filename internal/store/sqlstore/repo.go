// Package sqlstore implements the store interfaces on top of bun. Engine specific
// behavior (write locks and constraint error codes) comes from a Dialect.
package sqlstore

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Dialect describes what differs between the SQL engines.
type Dialect interface {
	// LockSalon serializes writers of one salon for the rest of tx.
	LockSalon(ctx context.Context, tx bun.Tx, salonID uuid.UUID) error
	// IsOverlapViolation reports whether err is the appointments_no_overlap guard firing.
	IsOverlapViolation(err error) bool
	IsUniqueViolation(err error) bool
}

type Repo struct {
	db      *bun.DB
	dialect Dialect
}

func New(db *bun.DB, dialect Dialect) *Repo {
	return &Repo{db: db, dialect: dialect}
}

// Ping is used by readiness checks.
func (r *Repo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
